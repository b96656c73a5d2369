package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated customer account. Every website, page and
// component transitively belongs to exactly one tenant, and a resource's
// tenant is immutable after creation.
type Tenant struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	OwnerUserID uuid.UUID `json:"owner_user_id"`
	Plan        string    `json:"plan"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ResourceTenant implements Resource so that tenant-level operations
// (website creation, team management) pass through the same guard as
// resource-level ones.
func (t *Tenant) ResourceTenant() uuid.UUID { return t.ID }

// TenantRepository defines the interface for tenant persistence.
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	Store(ctx context.Context, t *Tenant) error
}

// Resource is anything owned by a tenant. The guard uses it to verify that a
// request's tenant scope matches the resource it targets.
type Resource interface {
	ResourceTenant() uuid.UUID
}

// PlanLimits are the per-tenant ceilings supplied by the billing collaborator.
type PlanLimits struct {
	MaxWebsites   int `json:"max_websites"`
	MaxPages      int `json:"max_pages"`
	MaxComponents int `json:"max_components"`
	MaxMembers    int `json:"max_members"`
}

// PlanResolver is the billing collaborator contract. Limit checks precede any
// order-key computation on insert paths.
type PlanResolver interface {
	GetPlanLimits(ctx context.Context, tenantID uuid.UUID) (PlanLimits, error)
}
