package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/adapter/metrics"
	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

// WebsiteDraft carries the caller-supplied fields of a new website.
type WebsiteDraft struct {
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

// WebsiteService handles website lifecycle within a tenant. Website creation
// is guarded against the tenant itself since no narrower resource exists yet.
type WebsiteService struct {
	guard    *TenantGuard
	websites domain.WebsiteRepository
	tenants  domain.TenantRepository
	plans    domain.PlanResolver
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewWebsiteService creates a new WebsiteService.
func NewWebsiteService(guard *TenantGuard, websites domain.WebsiteRepository, tenants domain.TenantRepository, plans domain.PlanResolver, logger *slog.Logger, m *metrics.Metrics) *WebsiteService {
	return &WebsiteService{
		guard:    guard,
		websites: websites,
		tenants:  tenants,
		plans:    plans,
		logger:   logger,
		metrics:  m,
	}
}

// Create adds a website to the tenant, subject to the MaxWebsites plan limit.
func (s *WebsiteService) Create(ctx context.Context, actor domain.Actor, tenantID uuid.UUID, draft WebsiteDraft) (*domain.Website, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, tenant, domain.CapWebsitesCreate); err != nil {
		return nil, err
	}

	count, err := s.websites.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("count websites: %w", err)
	}
	limits, err := s.plans.GetPlanLimits(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("resolve plan limits: %w", err)
	}
	if count >= limits.MaxWebsites {
		if s.metrics != nil {
			s.metrics.PlanLimitRejections.Inc()
		}
		return nil, &domain.PlanLimitError{Resource: "websites", Current: count, Limit: limits.MaxWebsites}
	}

	now := time.Now().UTC()
	site := &domain.Website{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      draft.Name,
		Subdomain: draft.Subdomain,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.websites.Store(ctx, site); err != nil {
		return nil, fmt.Errorf("store website: %w", err)
	}

	s.logger.Info("website created", "website_id", site.ID, "tenant_id", tenantID)
	return site, nil
}

// List returns the tenant's websites.
func (s *WebsiteService) List(ctx context.Context, actor domain.Actor, tenantID uuid.UUID) ([]domain.Website, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, tenant, domain.CapWebsitesView); err != nil {
		return nil, err
	}
	return s.websites.ListByTenant(ctx, tenantID)
}

// Delete removes a website and, through the store's cascading rules, its
// pages and components.
func (s *WebsiteService) Delete(ctx context.Context, actor domain.Actor, tenantID, websiteID uuid.UUID) error {
	site, err := s.websites.FindByID(ctx, websiteID)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, site, domain.CapWebsitesDelete); err != nil {
		return err
	}
	if err := s.websites.Delete(ctx, websiteID); err != nil {
		return fmt.Errorf("delete website: %w", err)
	}

	s.logger.Info("website deleted", "website_id", websiteID, "tenant_id", tenantID)
	return nil
}
