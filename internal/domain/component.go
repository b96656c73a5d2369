package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ComponentType tags a site component with its renderer. The set is closed;
// the builder UI only ever submits one of these.
type ComponentType string

const (
	ComponentHeader  ComponentType = "header"
	ComponentHero    ComponentType = "hero"
	ComponentText    ComponentType = "text"
	ComponentImage   ComponentType = "image"
	ComponentGallery ComponentType = "gallery"
	ComponentForm    ComponentType = "form"
	ComponentButton  ComponentType = "button"
	ComponentFooter  ComponentType = "footer"
)

// Valid reports whether t is one of the known component types.
func (t ComponentType) Valid() bool {
	switch t {
	case ComponentHeader, ComponentHero, ComponentText, ComponentImage,
		ComponentGallery, ComponentForm, ComponentButton, ComponentFooter:
		return true
	}
	return false
}

// SiteComponent belongs to one page. Props is an opaque property bag owned by
// the renderer; this core never inspects it.
type SiteComponent struct {
	ID        uuid.UUID       `json:"id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	PageID    uuid.UUID       `json:"page_id"`
	Type      ComponentType   `json:"type"`
	Props     json.RawMessage `json:"props,omitempty"`
	OrderKey  string          `json:"order_key"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (c *SiteComponent) ResourceTenant() uuid.UUID { return c.TenantID }

// ComponentRepository defines the interface for component persistence. The
// store enforces uniqueness on (page_id, order_key); key-writing methods
// return ErrOrderKeyConflict on collision.
type ComponentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SiteComponent, error)
	// ListByPage returns the page's components sorted ascending by order key.
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]SiteComponent, error)
	CountByPage(ctx context.Context, pageID uuid.UUID) (int, error)
	Store(ctx context.Context, c *SiteComponent) error
	// UpdateKey rewrites only the given component's order key.
	UpdateKey(ctx context.Context, id uuid.UUID, key string) error
	// UpdateParent re-parents the component onto another page of the same
	// tenant, assigning its position there in the same row write.
	UpdateParent(ctx context.Context, id, pageID uuid.UUID, key string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
