package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

type componentRepository struct {
	db *sql.DB
}

// NewComponentRepository creates a PostgreSQL-backed component repository.
// The components table carries a unique constraint
// components_page_id_order_key_key on (page_id, order_key).
func NewComponentRepository(db *sql.DB) domain.ComponentRepository {
	return &componentRepository{db: db}
}

func (r *componentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SiteComponent, error) {
	query := `
        SELECT id, tenant_id, page_id, type, props, order_key, created_at, updated_at
        FROM components
        WHERE id = $1
    `

	var c domain.SiteComponent
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.TenantID,
		&c.PageID,
		&c.Type,
		&c.Props,
		&c.OrderKey,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find component by ID: %w", err)
	}

	return &c, nil
}

func (r *componentRepository) ListByPage(ctx context.Context, pageID uuid.UUID) ([]domain.SiteComponent, error) {
	query := `
        SELECT id, tenant_id, page_id, type, props, order_key, created_at, updated_at
        FROM components
        WHERE page_id = $1
        ORDER BY order_key ASC
    `

	rows, err := r.db.QueryContext(ctx, query, pageID)
	if err != nil {
		return nil, fmt.Errorf("list components by page: %w", err)
	}
	defer rows.Close()

	var components []domain.SiteComponent
	for rows.Next() {
		var c domain.SiteComponent
		if err := rows.Scan(
			&c.ID,
			&c.TenantID,
			&c.PageID,
			&c.Type,
			&c.Props,
			&c.OrderKey,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		components = append(components, c)
	}

	return components, rows.Err()
}

func (r *componentRepository) CountByPage(ctx context.Context, pageID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM components WHERE page_id = $1`, pageID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count components: %w", err)
	}
	return count, nil
}

func (r *componentRepository) Store(ctx context.Context, c *domain.SiteComponent) error {
	query := `
        INSERT INTO components (id, tenant_id, page_id, type, props, order_key, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.TenantID,
		c.PageID,
		c.Type,
		c.Props,
		c.OrderKey,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isOrderKeyConflict(err) {
			return domain.ErrOrderKeyConflict
		}
		return fmt.Errorf("store component: %w", err)
	}

	return nil
}

func (r *componentRepository) UpdateKey(ctx context.Context, id uuid.UUID, key string) error {
	query := `
        UPDATE components
        SET order_key = $2, updated_at = NOW()
        WHERE id = $1
    `

	res, err := r.db.ExecContext(ctx, query, id, key)
	if err != nil {
		if isOrderKeyConflict(err) {
			return domain.ErrOrderKeyConflict
		}
		return fmt.Errorf("update component order key: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update component order key: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *componentRepository) UpdateParent(ctx context.Context, id, pageID uuid.UUID, key string) error {
	query := `
        UPDATE components
        SET page_id = $2, order_key = $3, updated_at = NOW()
        WHERE id = $1
    `

	res, err := r.db.ExecContext(ctx, query, id, pageID, key)
	if err != nil {
		if isOrderKeyConflict(err) {
			return domain.ErrOrderKeyConflict
		}
		return fmt.Errorf("update component parent: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update component parent: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *componentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM components WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete component: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete component: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
