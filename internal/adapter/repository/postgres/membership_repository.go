package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

type membershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a PostgreSQL-backed membership repository.
func NewMembershipRepository(db *sql.DB) domain.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) FindRole(ctx context.Context, userID, tenantID uuid.UUID) (domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRowContext(ctx,
		`SELECT role FROM memberships WHERE user_id = $1 AND tenant_id = $2`,
		userID, tenantID,
	).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotAMember
		}
		return "", fmt.Errorf("find membership role: %w", err)
	}

	return role, nil
}

func (r *membershipRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Membership, error) {
	query := `
        SELECT user_id, tenant_id, role, created_at, updated_at
        FROM memberships
        WHERE tenant_id = $1
        ORDER BY created_at ASC
    `

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list memberships by tenant: %w", err)
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(
			&m.UserID,
			&m.TenantID,
			&m.Role,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}

func (r *membershipRepository) Store(ctx context.Context, m *domain.Membership) error {
	query := `
        INSERT INTO memberships (user_id, tenant_id, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `

	_, err := r.db.ExecContext(ctx, query,
		m.UserID,
		m.TenantID,
		m.Role,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("store membership: %w", err)
	}

	return nil
}

func (r *membershipRepository) UpdateRole(ctx context.Context, userID, tenantID uuid.UUID, role domain.Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE memberships SET role = $3, updated_at = NOW() WHERE user_id = $1 AND tenant_id = $2`,
		userID, tenantID, role,
	)
	if err != nil {
		return fmt.Errorf("update membership role: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update membership role: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotAMember
	}

	return nil
}

func (r *membershipRepository) Delete(ctx context.Context, userID, tenantID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM memberships WHERE user_id = $1 AND tenant_id = $2`,
		userID, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotAMember
	}

	return nil
}
