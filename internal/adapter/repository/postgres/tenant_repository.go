package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

type tenantRepository struct {
	db *sql.DB
}

// NewTenantRepository creates a PostgreSQL-backed tenant repository.
func NewTenantRepository(db *sql.DB) domain.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `
        SELECT id, name, owner_user_id, plan, created_at, updated_at
        FROM tenants
        WHERE id = $1
    `

	var t domain.Tenant
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.Name,
		&t.OwnerUserID,
		&t.Plan,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find tenant by ID: %w", err)
	}

	return &t, nil
}

func (r *tenantRepository) Store(ctx context.Context, t *domain.Tenant) error {
	query := `
        INSERT INTO tenants (id, name, owner_user_id, plan, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.OwnerUserID,
		t.Plan,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("store tenant: %w", err)
	}

	return nil
}
