package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when the actor's role does not grant
	// the requested capability.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotAMember is returned when the actor holds no role in the target tenant.
	ErrNotAMember = errors.New("not a member of tenant")

	// ErrWrongTenant is returned when the target resource belongs to a
	// different tenant than the one the request is scoped to.
	ErrWrongTenant = errors.New("resource belongs to another tenant")

	// ErrSiblingNotFound is returned when a position references a sibling
	// that is not part of the target parent's sibling set.
	ErrSiblingNotFound = errors.New("sibling not found in parent")

	// ErrSelfReferential is returned when a move positions an entity
	// relative to itself.
	ErrSelfReferential = errors.New("position references the entity being moved")

	// ErrOrderKeyConflict signals that a write collided with an existing
	// (parent, order key) pair. It is retried internally and never surfaces
	// to API callers as such.
	ErrOrderKeyConflict = errors.New("order key conflict")

	// ErrOwnerImmutable is returned when a team operation would remove or
	// demote the tenant's owning user.
	ErrOwnerImmutable = errors.New("tenant owner membership cannot be changed")
)

// PlanLimitError is returned when an insert would push a tenant past one of
// its plan limits. It carries enough detail for callers to prompt an upgrade.
type PlanLimitError struct {
	Resource string
	Current  int
	Limit    int
}

func (e *PlanLimitError) Error() string {
	return fmt.Sprintf("plan limit exceeded for %s: %d of %d used", e.Resource, e.Current, e.Limit)
}
