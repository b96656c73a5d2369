// Package billing implements the plan-limits collaborator consumed by the
// ordering services. Checkout and portal flows live with the payment
// provider; this core only ever asks "what are this tenant's ceilings".
package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

// PlanService resolves a tenant's plan limits from the plans table, fronted
// by an expiring LRU so every insert doesn't pay a join. Plan changes land
// within the cache TTL, which is acceptable for limit enforcement.
type PlanService struct {
	db     *sql.DB
	cache  *expirable.LRU[uuid.UUID, domain.PlanLimits]
	logger *slog.Logger
}

// NewPlanService creates a new PlanService.
func NewPlanService(db *sql.DB, logger *slog.Logger, cacheSize int, cacheTTL time.Duration) *PlanService {
	return &PlanService{
		db:     db,
		cache:  expirable.NewLRU[uuid.UUID, domain.PlanLimits](cacheSize, nil, cacheTTL),
		logger: logger,
	}
}

// GetPlanLimits returns the limits of the tenant's current plan.
func (s *PlanService) GetPlanLimits(ctx context.Context, tenantID uuid.UUID) (domain.PlanLimits, error) {
	if limits, ok := s.cache.Get(tenantID); ok {
		return limits, nil
	}

	query := `
        SELECT p.max_websites, p.max_pages, p.max_components, p.max_members
        FROM tenants t
        JOIN plans p ON p.name = t.plan
        WHERE t.id = $1
    `

	var limits domain.PlanLimits
	err := s.db.QueryRowContext(ctx, query, tenantID).Scan(
		&limits.MaxWebsites,
		&limits.MaxPages,
		&limits.MaxComponents,
		&limits.MaxMembers,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PlanLimits{}, domain.ErrNotFound
		}
		return domain.PlanLimits{}, fmt.Errorf("resolve plan limits: %w", err)
	}

	s.cache.Add(tenantID, limits)
	return limits, nil
}

// Invalidate drops the cached limits for a tenant. Called when a billing
// webhook reports a plan change so new ceilings apply immediately.
func (s *PlanService) Invalidate(tenantID uuid.UUID) {
	s.cache.Remove(tenantID)
}
