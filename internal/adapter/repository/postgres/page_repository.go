package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

type pageRepository struct {
	db *sql.DB
}

// NewPageRepository creates a PostgreSQL-backed page repository. The pages
// table carries a unique constraint pages_website_id_order_key_key on
// (website_id, order_key); writes that collide on it surface as
// domain.ErrOrderKeyConflict so the caller can recompute and retry.
func NewPageRepository(db *sql.DB) domain.PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Page, error) {
	query := `
        SELECT id, tenant_id, website_id, title, slug, order_key, is_home, created_at, updated_at
        FROM pages
        WHERE id = $1
    `

	var p domain.Page
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.TenantID,
		&p.WebsiteID,
		&p.Title,
		&p.Slug,
		&p.OrderKey,
		&p.IsHome,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find page by ID: %w", err)
	}

	return &p, nil
}

func (r *pageRepository) ListByWebsite(ctx context.Context, websiteID uuid.UUID) ([]domain.Page, error) {
	query := `
        SELECT id, tenant_id, website_id, title, slug, order_key, is_home, created_at, updated_at
        FROM pages
        WHERE website_id = $1
        ORDER BY order_key ASC
    `

	rows, err := r.db.QueryContext(ctx, query, websiteID)
	if err != nil {
		return nil, fmt.Errorf("list pages by website: %w", err)
	}
	defer rows.Close()

	var pages []domain.Page
	for rows.Next() {
		var p domain.Page
		if err := rows.Scan(
			&p.ID,
			&p.TenantID,
			&p.WebsiteID,
			&p.Title,
			&p.Slug,
			&p.OrderKey,
			&p.IsHome,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, p)
	}

	return pages, rows.Err()
}

func (r *pageRepository) CountByWebsite(ctx context.Context, websiteID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages WHERE website_id = $1`, websiteID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return count, nil
}

func (r *pageRepository) Store(ctx context.Context, p *domain.Page) error {
	query := `
        INSERT INTO pages (id, tenant_id, website_id, title, slug, order_key, is_home, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.TenantID,
		p.WebsiteID,
		p.Title,
		p.Slug,
		p.OrderKey,
		p.IsHome,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isOrderKeyConflict(err) {
			return domain.ErrOrderKeyConflict
		}
		return fmt.Errorf("store page: %w", err)
	}

	return nil
}

func (r *pageRepository) UpdateKey(ctx context.Context, id uuid.UUID, key string) error {
	query := `
        UPDATE pages
        SET order_key = $2, updated_at = NOW()
        WHERE id = $1
    `

	res, err := r.db.ExecContext(ctx, query, id, key)
	if err != nil {
		if isOrderKeyConflict(err) {
			return domain.ErrOrderKeyConflict
		}
		return fmt.Errorf("update page order key: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update page order key: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *pageRepository) SetHome(ctx context.Context, websiteID, pageID uuid.UUID) error {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set home page: %w", err)
	}
	defer txn.Rollback() // Rollback is a no-op if Commit() is called

	_, err = txn.ExecContext(ctx,
		`UPDATE pages SET is_home = FALSE, updated_at = NOW() WHERE website_id = $1 AND is_home`,
		websiteID,
	)
	if err != nil {
		return fmt.Errorf("unset previous home page: %w", err)
	}

	res, err := txn.ExecContext(ctx,
		`UPDATE pages SET is_home = TRUE, updated_at = NOW() WHERE id = $1 AND website_id = $2`,
		pageID, websiteID,
	)
	if err != nil {
		return fmt.Errorf("set home page: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set home page: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return txn.Commit()
}

func (r *pageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
