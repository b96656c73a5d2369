package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role defines the permission level of a user within a tenant. Roles carry no
// implicit hierarchy; what a role may do is encoded solely in the capability
// matrix.
type Role string

const (
	RoleOwner     Role = "owner"
	RoleAdmin     Role = "admin"
	RoleEditor    Role = "editor"
	RoleDeveloper Role = "developer"
	RoleViewer    Role = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEditor, RoleDeveloper, RoleViewer:
		return true
	}
	return false
}

// User represents a user account. Tenancy is expressed through Membership,
// not on the user itself: one user may belong to several tenants.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actor is the identity attached to an incoming request, as resolved by the
// session provider. The core trusts it for identity but re-resolves the role
// against the membership table for the tenant actually being targeted.
type Actor struct {
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Role     Role      `json:"role"`
}

// Membership grants a user a role within a tenant.
type Membership struct {
	UserID    uuid.UUID `json:"user_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MembershipRepository defines the interface for tenant membership persistence.
type MembershipRepository interface {
	// FindRole returns the role the user holds in the tenant, or ErrNotAMember.
	FindRole(ctx context.Context, userID, tenantID uuid.UUID) (Role, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]Membership, error)
	Store(ctx context.Context, m *Membership) error
	UpdateRole(ctx context.Context, userID, tenantID uuid.UUID, role Role) error
	Delete(ctx context.Context, userID, tenantID uuid.UUID) error
}
