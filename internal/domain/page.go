package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Page belongs to one website. OrderKey establishes its position among
// sibling pages; keys are opaque, unique per website, and compared as plain
// strings. TenantID is denormalized from the website so the guard can check
// ownership without a join.
type Page struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	WebsiteID uuid.UUID `json:"website_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	OrderKey  string    `json:"order_key"`
	IsHome    bool      `json:"is_home"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Page) ResourceTenant() uuid.UUID { return p.TenantID }

// PageRepository defines the interface for page persistence. The store
// enforces uniqueness on (website_id, order_key); Store and UpdateKey return
// ErrOrderKeyConflict when a write lands on an already-taken key.
type PageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Page, error)
	// ListByWebsite returns the website's pages sorted ascending by order key.
	ListByWebsite(ctx context.Context, websiteID uuid.UUID) ([]Page, error)
	CountByWebsite(ctx context.Context, websiteID uuid.UUID) (int, error)
	Store(ctx context.Context, p *Page) error
	// UpdateKey rewrites only the given page's order key. No sibling row is touched.
	UpdateKey(ctx context.Context, id uuid.UUID, key string) error
	// SetHome marks the page as the website's home page and unmarks the
	// previous one within a single transaction.
	SetHome(ctx context.Context, websiteID, pageID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
