package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Website belongs to one tenant and owns an ordered collection of pages.
type Website struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	Subdomain string    `json:"subdomain"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Website) ResourceTenant() uuid.UUID { return w.TenantID }

// WebsiteRepository defines the interface for website persistence.
type WebsiteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Website, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]Website, error)
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error)
	Store(ctx context.Context, w *Website) error
	Delete(ctx context.Context, id uuid.UUID) error
}
