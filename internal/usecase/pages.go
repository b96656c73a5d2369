package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/adapter/metrics"
	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
	"github.com/Pushkar3232/SitePilot-sub001/internal/pkg/orderkey"
)

// maxKeyAttempts bounds how often an ordering mutation recomputes its key
// after colliding with a concurrent writer on the same gap.
const maxKeyAttempts = 3

// retryOnKeyConflict runs attempt until it succeeds, fails with something
// other than a key collision, or exhausts the retry budget. Collisions are
// recovered here and never escape to callers as such.
func retryOnKeyConflict(ctx context.Context, logger *slog.Logger, m *metrics.Metrics, attempt func(context.Context) error) error {
	var err error
	for i := 0; i < maxKeyAttempts; i++ {
		err = attempt(ctx)
		if err == nil || !errors.Is(err, domain.ErrOrderKeyConflict) {
			return err
		}
		if m != nil {
			m.KeyCollisionsTotal.Inc()
		}
		logger.Warn("order key collision, recomputing against current siblings", "attempt", i+1)
	}
	return fmt.Errorf("ordering mutation failed: key conflicts persisted across %d attempts", maxKeyAttempts)
}

// PageDraft carries the caller-supplied fields of a new page.
type PageDraft struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// PageService owns the sibling set of pages under a website: insert, move,
// bulk reorder and ordered listing, each gated by the tenant guard. Only the
// mutated page's row is ever written; sibling keys are never jointly
// rewritten, so no multi-row transaction is needed.
type PageService struct {
	guard    *TenantGuard
	pages    domain.PageRepository
	websites domain.WebsiteRepository
	plans    domain.PlanResolver
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewPageService creates a new PageService.
func NewPageService(guard *TenantGuard, pages domain.PageRepository, websites domain.WebsiteRepository, plans domain.PlanResolver, logger *slog.Logger, m *metrics.Metrics) *PageService {
	return &PageService{
		guard:    guard,
		pages:    pages,
		websites: websites,
		plans:    plans,
		logger:   logger,
		metrics:  m,
	}
}

// Insert creates a page at the requested position among the website's pages.
// The plan limit is checked before any key computation.
func (s *PageService) Insert(ctx context.Context, actor domain.Actor, tenantID, websiteID uuid.UUID, draft PageDraft, pos Position) (*domain.Page, error) {
	site, err := s.websites.FindByID(ctx, websiteID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, site, domain.CapPagesCreate); err != nil {
		return nil, err
	}

	count, err := s.pages.CountByWebsite(ctx, websiteID)
	if err != nil {
		return nil, fmt.Errorf("count pages: %w", err)
	}
	limits, err := s.plans.GetPlanLimits(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("resolve plan limits: %w", err)
	}
	if count >= limits.MaxPages {
		if s.metrics != nil {
			s.metrics.PlanLimitRejections.Inc()
		}
		return nil, &domain.PlanLimitError{Resource: "pages", Current: count, Limit: limits.MaxPages}
	}

	now := time.Now().UTC()
	page := &domain.Page{
		ID:        uuid.New(),
		TenantID:  tenantID,
		WebsiteID: websiteID,
		Title:     draft.Title,
		Slug:      draft.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = retryOnKeyConflict(ctx, s.logger, s.metrics, func(ctx context.Context) error {
		siblings, err := s.siblings(ctx, websiteID)
		if err != nil {
			return err
		}
		lo, hi, err := resolveGap(siblings, pos, uuid.Nil)
		if err != nil {
			return err
		}
		key, err := orderkey.Between(lo, hi)
		if err != nil {
			return fmt.Errorf("compute order key: %w", err)
		}
		page.OrderKey = key
		return s.pages.Store(ctx, page)
	})
	if err != nil {
		return nil, err
	}

	s.observeMutation("insert", page.OrderKey)
	return page, nil
}

// Move repositions a page among its siblings. Only the moved page's key is
// reassigned; a move never shifts keys in place.
func (s *PageService) Move(ctx context.Context, actor domain.Actor, tenantID, pageID uuid.UUID, pos Position) error {
	page, err := s.pages.FindByID(ctx, pageID)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, page, domain.CapPagesReorder); err != nil {
		return err
	}

	var key string
	err = retryOnKeyConflict(ctx, s.logger, s.metrics, func(ctx context.Context) error {
		siblings, err := s.siblings(ctx, page.WebsiteID)
		if err != nil {
			return err
		}
		lo, hi, err := resolveGap(siblings, pos, pageID)
		if err != nil {
			return err
		}
		key, err = orderkey.Between(lo, hi)
		if err != nil {
			return fmt.Errorf("compute order key: %w", err)
		}
		return s.pages.UpdateKey(ctx, pageID, key)
	})
	if err != nil {
		return err
	}

	s.observeMutation("move", key)
	return nil
}

// Reorder realizes a full desired ordering of the website's pages, rewriting
// keys only for pages whose relative position changed.
func (s *PageService) Reorder(ctx context.Context, actor domain.Actor, tenantID, websiteID uuid.UUID, order []uuid.UUID) error {
	site, err := s.websites.FindByID(ctx, websiteID)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, site, domain.CapPagesReorder); err != nil {
		return err
	}

	err = retryOnKeyConflict(ctx, s.logger, s.metrics, func(ctx context.Context) error {
		siblings, err := s.siblings(ctx, websiteID)
		if err != nil {
			return err
		}
		plan, err := planReorder(siblings, order)
		if err != nil {
			return err
		}
		for _, assign := range plan {
			if err := s.pages.UpdateKey(ctx, assign.ID, assign.Key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.OrderOpsTotal.WithLabelValues("reorder").Inc()
	}
	return nil
}

// ListOrdered returns the website's pages sorted ascending by order key,
// reflecting the persisted snapshot at read time.
func (s *PageService) ListOrdered(ctx context.Context, actor domain.Actor, tenantID, websiteID uuid.UUID) ([]domain.Page, error) {
	site, err := s.websites.FindByID(ctx, websiteID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, site, domain.CapPagesView); err != nil {
		return nil, err
	}
	return s.pages.ListByWebsite(ctx, websiteID)
}

// SetHome marks the page as its website's home page. The repository flips the
// flag transactionally so exactly one page per website stays home.
func (s *PageService) SetHome(ctx context.Context, actor domain.Actor, tenantID, pageID uuid.UUID) error {
	page, err := s.pages.FindByID(ctx, pageID)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, page, domain.CapPagesEdit); err != nil {
		return err
	}
	return s.pages.SetHome(ctx, page.WebsiteID, pageID)
}

// Delete removes a page. Survivors keep their keys; no renumbering happens.
func (s *PageService) Delete(ctx context.Context, actor domain.Actor, tenantID, pageID uuid.UUID) error {
	page, err := s.pages.FindByID(ctx, pageID)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, page, domain.CapPagesDelete); err != nil {
		return err
	}
	return s.pages.Delete(ctx, pageID)
}

func (s *PageService) siblings(ctx context.Context, websiteID uuid.UUID) ([]sibling, error) {
	pages, err := s.pages.ListByWebsite(ctx, websiteID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	out := make([]sibling, len(pages))
	for i, p := range pages {
		out[i] = sibling{ID: p.ID, Key: p.OrderKey}
	}
	return out, nil
}

func (s *PageService) observeMutation(op, key string) {
	if s.metrics == nil {
		return
	}
	s.metrics.OrderOpsTotal.WithLabelValues(op).Inc()
	s.metrics.OrderKeyLength.Observe(float64(len(key)))
}
