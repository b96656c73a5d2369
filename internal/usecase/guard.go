package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/adapter/metrics"
	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

// TenantGuard gates every mutating operation. For a request carrying
// (actor, tenant, resource, capability) it verifies, in order:
//
//  1. the resource belongs to the request's tenant (ErrWrongTenant),
//  2. the actor holds a membership in that tenant (ErrNotAMember),
//  3. the membership's role grants the capability (ErrPermissionDenied).
//
// The three failures are distinguished here, in logs and in metrics; the API
// boundary collapses all of them into a generic not-found so that a
// cross-tenant probe is indistinguishable from a missing resource.
//
// The role is resolved from the membership table, not taken from the actor's
// session claims: claims describe the tenant the session was opened for,
// which is not necessarily the tenant this request targets.
type TenantGuard struct {
	members domain.MembershipRepository
	authz   *Authorizer
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewTenantGuard creates a new TenantGuard.
func NewTenantGuard(members domain.MembershipRepository, authz *Authorizer, logger *slog.Logger, m *metrics.Metrics) *TenantGuard {
	return &TenantGuard{
		members: members,
		authz:   authz,
		logger:  logger,
		metrics: m,
	}
}

// Authorize checks the actor against the tenant-scoped resource for the given
// capability.
func (g *TenantGuard) Authorize(ctx context.Context, actor domain.Actor, tenantID uuid.UUID, res domain.Resource, c domain.Capability) error {
	if res.ResourceTenant() != tenantID {
		g.deny(actor, tenantID, c, "wrong_tenant")
		return domain.ErrWrongTenant
	}

	role, err := g.members.FindRole(ctx, actor.UserID, tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotAMember) || errors.Is(err, domain.ErrNotFound) {
			g.deny(actor, tenantID, c, "not_a_member")
			return domain.ErrNotAMember
		}
		return err
	}

	if err := g.authz.Authorize(role, c); err != nil {
		g.deny(actor, tenantID, c, "permission_denied")
		return err
	}

	if g.metrics != nil {
		g.metrics.AuthzChecksTotal.WithLabelValues("allowed").Inc()
	}
	return nil
}

func (g *TenantGuard) deny(actor domain.Actor, tenantID uuid.UUID, c domain.Capability, reason string) {
	g.logger.Warn("authorization denied",
		"reason", reason,
		"user_id", actor.UserID,
		"tenant_id", tenantID,
		"capability", string(c),
	)
	if g.metrics != nil {
		g.metrics.AuthzChecksTotal.WithLabelValues("denied").Inc()
		g.metrics.AuthzDenialsTotal.WithLabelValues(reason).Inc()
	}
}
