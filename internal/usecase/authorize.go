package usecase

import (
	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

// Authorizer evaluates the static capability matrix. It is side-effect free
// and denies by default: an unknown capability or role is never granted.
// A capability check alone is necessary but not sufficient for resource
// mutations; TenantGuard layers tenant ownership on top.
type Authorizer struct{}

// NewAuthorizer creates a new Authorizer.
func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// Authorize returns nil when the role may exercise the capability, and
// domain.ErrPermissionDenied otherwise.
func (a *Authorizer) Authorize(role domain.Role, c domain.Capability) error {
	if !domain.Allows(c, role) {
		return domain.ErrPermissionDenied
	}
	return nil
}
