package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/adapter/metrics"
	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
	"github.com/Pushkar3232/SitePilot-sub001/internal/pkg/orderkey"
)

// ComponentDraft carries the caller-supplied fields of a new component.
type ComponentDraft struct {
	Type  domain.ComponentType `json:"type"`
	Props json.RawMessage      `json:"props,omitempty"`
}

// ComponentService owns the sibling set of components under a page. Same
// contract as PageService, with one extra operation: re-parenting a component
// onto another page of the same tenant.
type ComponentService struct {
	guard      *TenantGuard
	components domain.ComponentRepository
	pages      domain.PageRepository
	plans      domain.PlanResolver
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewComponentService creates a new ComponentService.
func NewComponentService(guard *TenantGuard, components domain.ComponentRepository, pages domain.PageRepository, plans domain.PlanResolver, logger *slog.Logger, m *metrics.Metrics) *ComponentService {
	return &ComponentService{
		guard:      guard,
		components: components,
		pages:      pages,
		plans:      plans,
		logger:     logger,
		metrics:    m,
	}
}

// Insert creates a component at the requested position on the page. The plan
// limit is checked before any key computation.
func (s *ComponentService) Insert(ctx context.Context, actor domain.Actor, tenantID, pageID uuid.UUID, draft ComponentDraft, pos Position) (*domain.SiteComponent, error) {
	if !draft.Type.Valid() {
		return nil, fmt.Errorf("unknown component type %q", draft.Type)
	}

	page, err := s.pages.FindByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, page, domain.CapComponentsCreate); err != nil {
		return nil, err
	}

	if err := s.checkComponentLimit(ctx, tenantID, pageID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	component := &domain.SiteComponent{
		ID:        uuid.New(),
		TenantID:  tenantID,
		PageID:    pageID,
		Type:      draft.Type,
		Props:     draft.Props,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = retryOnKeyConflict(ctx, s.logger, s.metrics, func(ctx context.Context) error {
		siblings, err := s.siblings(ctx, pageID)
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
		component.OrderKey = key
		return s.components.Store(ctx, component)
	})
	if err != nil {
		return nil, err
	}

	s.observeMutation("insert", component.OrderKey)
	return component, nil
}

// Move repositions a component among its current page's siblings.
func (s *ComponentService) Move(ctx context.Context, actor domain.Actor, tenantID, componentID uuid.UUID, pos Position) error {
	component, err := s.components.FindByID(ctx, componentID)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, component, domain.CapComponentsReorder); err != nil {
		return err
	}

	var key string
	err = retryOnKeyConflict(ctx, s.logger, s.metrics, func(ctx context.Context) error {
		siblings, err := s.siblings(ctx, component.PageID)
		if err != nil {
			return err
		}
		lo, hi, err := resolveGap(siblings, pos, componentID)
		if err != nil {
			return err
		}
		key, err = orderkey.Between(lo, hi)
		if err != nil {
			return fmt.Errorf("compute order key: %w", err)
		}
		return s.components.UpdateKey(ctx, componentID, key)
	})
	if err != nil {
		return err
	}

	s.observeMutation("move", key)
	return nil
}

// MoveToPage re-parents a component onto another page. Both pages must belong
// to the request's tenant; moving content across tenants is not a supported
// operation.
func (s *ComponentService) MoveToPage(ctx context.Context, actor domain.Actor, tenantID, componentID, targetPageID uuid.UUID, pos Position) error {
	component, err := s.components.FindByID(ctx, componentID)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, component, domain.CapComponentsEdit); err != nil {
		return err
	}

	target, err := s.pages.FindByID(ctx, targetPageID)
	if err != nil {
		return err
	}
	if target.TenantID != tenantID {
		return domain.ErrWrongTenant
	}

	if target.ID != component.PageID {
		if err := s.checkComponentLimit(ctx, tenantID, targetPageID); err != nil {
			return err
		}
	}

	var key string
	err = retryOnKeyConflict(ctx, s.logger, s.metrics, func(ctx context.Context) error {
		siblings, err := s.siblings(ctx, targetPageID)
		if err != nil {
			return err
		}
		lo, hi, err := resolveGap(siblings, pos, componentID)
		if err != nil {
			return err
		}
		key, err = orderkey.Between(lo, hi)
		if err != nil {
			return fmt.Errorf("compute order key: %w", err)
		}
		return s.components.UpdateParent(ctx, componentID, targetPageID, key)
	})
	if err != nil {
		return err
	}

	s.observeMutation("reparent", key)
	return nil
}

// Reorder realizes a full desired ordering of the page's components.
func (s *ComponentService) Reorder(ctx context.Context, actor domain.Actor, tenantID, pageID uuid.UUID, order []uuid.UUID) error {
	page, err := s.pages.FindByID(ctx, pageID)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, page, domain.CapComponentsReorder); err != nil {
		return err
	}

	err = retryOnKeyConflict(ctx, s.logger, s.metrics, func(ctx context.Context) error {
		siblings, err := s.siblings(ctx, pageID)
		if err != nil {
			return err
		}
		plan, err := planReorder(siblings, order)
		if err != nil {
			return err
		}
		for _, assign := range plan {
			if err := s.components.UpdateKey(ctx, assign.ID, assign.Key); err != nil {
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

// ListOrdered returns the page's components sorted ascending by order key.
func (s *ComponentService) ListOrdered(ctx context.Context, actor domain.Actor, tenantID, pageID uuid.UUID) ([]domain.SiteComponent, error) {
	page, err := s.pages.FindByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, page, domain.CapComponentsView); err != nil {
		return nil, err
	}
	return s.components.ListByPage(ctx, pageID)
}

// Delete removes a component without renumbering survivors.
func (s *ComponentService) Delete(ctx context.Context, actor domain.Actor, tenantID, componentID uuid.UUID) error {
	component, err := s.components.FindByID(ctx, componentID)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, component, domain.CapComponentsDelete); err != nil {
		return err
	}
	return s.components.Delete(ctx, componentID)
}

func (s *ComponentService) checkComponentLimit(ctx context.Context, tenantID, pageID uuid.UUID) error {
	count, err := s.components.CountByPage(ctx, pageID)
	if err != nil {
		return fmt.Errorf("count components: %w", err)
	}
	limits, err := s.plans.GetPlanLimits(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("resolve plan limits: %w", err)
	}
	if count >= limits.MaxComponents {
		if s.metrics != nil {
			s.metrics.PlanLimitRejections.Inc()
		}
		return &domain.PlanLimitError{Resource: "components", Current: count, Limit: limits.MaxComponents}
	}
	return nil
}

func (s *ComponentService) siblings(ctx context.Context, pageID uuid.UUID) ([]sibling, error) {
	components, err := s.components.ListByPage(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	out := make([]sibling, len(components))
	for i, c := range components {
		out[i] = sibling{ID: c.ID, Key: c.OrderKey}
	}
	return out, nil
}

func (s *ComponentService) observeMutation(op, key string) {
	if s.metrics == nil {
		return
	}
	s.metrics.OrderOpsTotal.WithLabelValues(op).Inc()
	s.metrics.OrderKeyLength.Observe(float64(len(key)))
}
