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

// MemberService manages tenant team membership. The owner's membership is
// fixed: it can neither be removed nor re-roled, and the owner role itself is
// only ever assigned at tenant creation.
type MemberService struct {
	guard   *TenantGuard
	members domain.MembershipRepository
	tenants domain.TenantRepository
	plans   domain.PlanResolver
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewMemberService creates a new MemberService.
func NewMemberService(guard *TenantGuard, members domain.MembershipRepository, tenants domain.TenantRepository, plans domain.PlanResolver, logger *slog.Logger, m *metrics.Metrics) *MemberService {
	return &MemberService{
		guard:   guard,
		members: members,
		tenants: tenants,
		plans:   plans,
		logger:  logger,
		metrics: m,
	}
}

// List returns the tenant's memberships.
func (s *MemberService) List(ctx context.Context, actor domain.Actor, tenantID uuid.UUID) ([]domain.Membership, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, tenant, domain.CapTeamView); err != nil {
		return nil, err
	}
	return s.members.ListByTenant(ctx, tenantID)
}

// Add grants a user a role in the tenant, subject to the MaxMembers plan limit.
func (s *MemberService) Add(ctx context.Context, actor domain.Actor, tenantID, userID uuid.UUID, role domain.Role) (*domain.Membership, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, tenant, domain.CapTeamInvite); err != nil {
		return nil, err
	}
	if !role.Valid() || role == domain.RoleOwner {
		return nil, fmt.Errorf("role %q cannot be granted", role)
	}

	existing, err := s.members.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	limits, err := s.plans.GetPlanLimits(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("resolve plan limits: %w", err)
	}
	if len(existing) >= limits.MaxMembers {
		if s.metrics != nil {
			s.metrics.PlanLimitRejections.Inc()
		}
		return nil, &domain.PlanLimitError{Resource: "members", Current: len(existing), Limit: limits.MaxMembers}
	}

	now := time.Now().UTC()
	m := &domain.Membership{
		UserID:    userID,
		TenantID:  tenantID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.members.Store(ctx, m); err != nil {
		return nil, fmt.Errorf("store membership: %w", err)
	}

	s.logger.Info("member added", "user_id", userID, "tenant_id", tenantID, "role", string(role))
	return m, nil
}

// Remove deletes a user's membership. The tenant owner cannot be removed.
func (s *MemberService) Remove(ctx context.Context, actor domain.Actor, tenantID, userID uuid.UUID) error {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, tenant, domain.CapTeamRemove); err != nil {
		return err
	}
	if userID == tenant.OwnerUserID {
		return domain.ErrOwnerImmutable
	}
	if err := s.members.Delete(ctx, userID, tenantID); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}

	s.logger.Info("member removed", "user_id", userID, "tenant_id", tenantID)
	return nil
}

// ChangeRole updates a member's role. The owner keeps the owner role for the
// tenant's lifetime.
func (s *MemberService) ChangeRole(ctx context.Context, actor domain.Actor, tenantID, userID uuid.UUID, role domain.Role) error {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(ctx, actor, tenantID, tenant, domain.CapTeamRole); err != nil {
		return err
	}
	if userID == tenant.OwnerUserID {
		return domain.ErrOwnerImmutable
	}
	if !role.Valid() || role == domain.RoleOwner {
		return fmt.Errorf("role %q cannot be granted", role)
	}
	if err := s.members.UpdateRole(ctx, userID, tenantID, role); err != nil {
		return fmt.Errorf("update membership role: %w", err)
	}

	s.logger.Info("member role changed", "user_id", userID, "tenant_id", tenantID, "role", string(role))
	return nil
}
