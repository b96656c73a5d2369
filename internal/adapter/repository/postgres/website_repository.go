package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

type websiteRepository struct {
	db *sql.DB
}

// NewWebsiteRepository creates a PostgreSQL-backed website repository.
func NewWebsiteRepository(db *sql.DB) domain.WebsiteRepository {
	return &websiteRepository{db: db}
}

func (r *websiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Website, error) {
	query := `
        SELECT id, tenant_id, name, subdomain, created_at, updated_at
        FROM websites
        WHERE id = $1
    `

	var w domain.Website
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID,
		&w.TenantID,
		&w.Name,
		&w.Subdomain,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find website by ID: %w", err)
	}

	return &w, nil
}

func (r *websiteRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Website, error) {
	query := `
        SELECT id, tenant_id, name, subdomain, created_at, updated_at
        FROM websites
        WHERE tenant_id = $1
        ORDER BY created_at ASC
    `

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list websites by tenant: %w", err)
	}
	defer rows.Close()

	var websites []domain.Website
	for rows.Next() {
		var w domain.Website
		if err := rows.Scan(
			&w.ID,
			&w.TenantID,
			&w.Name,
			&w.Subdomain,
			&w.CreatedAt,
			&w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan website: %w", err)
		}
		websites = append(websites, w)
	}

	return websites, rows.Err()
}

func (r *websiteRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM websites WHERE tenant_id = $1`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count websites: %w", err)
	}
	return count, nil
}

func (r *websiteRepository) Store(ctx context.Context, w *domain.Website) error {
	query := `
        INSERT INTO websites (id, tenant_id, name, subdomain, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.TenantID,
		w.Name,
		w.Subdomain,
		w.CreatedAt,
		w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("store website: %w", err)
	}

	return nil
}

func (r *websiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM websites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete website: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete website: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
