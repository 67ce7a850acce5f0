// Package organizations persists organization rows and membership
// lookups.
package organizations

import (
	"context"
	"errors"
	"fmt"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// GetByOrgID looks an organization up by its external identifier.
// Returns nil when no row exists.
func (s *Store) GetByOrgID(ctx context.Context, orgExtID string) (*models.Organization, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, org_id, name, created_by_user_id, created_at, updated_at
		 FROM organizations WHERE org_id = $1`, orgExtID)

	var org models.Organization
	err := row.Scan(&org.ID, &org.OrgID, &org.Name, &org.CreatedByUserID, &org.CreatedAt, &org.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &org, nil
}

// Membership is an organization paired with the user's role in it.
type Membership struct {
	Organization models.Organization
	Role         string
}

// ListForUser returns the organizations the user belongs to, newest
// membership first.
func (s *Store) ListForUser(ctx context.Context, userID int64) ([]Membership, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT o.id, o.org_id, o.name, o.created_by_user_id, o.created_at, o.updated_at, uo.role
		 FROM organizations o
		 JOIN user_organizations uo ON uo.org_id = o.id
		 WHERE uo.user_id = $1
		 ORDER BY uo.joined_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list organizations for user: %w", err)
	}
	defer rows.Close()

	var out []Membership
	for rows.Next() {
		var m Membership
		if err := rows.Scan(&m.Organization.ID, &m.Organization.OrgID, &m.Organization.Name,
			&m.Organization.CreatedByUserID, &m.Organization.CreatedAt, &m.Organization.UpdatedAt,
			&m.Role); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RoleOf returns the user's role in the organization, or "" when the
// user is not a member.
func (s *Store) RoleOf(ctx context.Context, userID, orgID int64) (string, error) {
	var role string
	err := s.pool.QueryRow(ctx,
		`SELECT role FROM user_organizations WHERE user_id = $1 AND org_id = $2`,
		userID, orgID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

// MemberCount returns how many users belong to the organization.
func (s *Store) MemberCount(ctx context.Context, orgID int64) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_organizations WHERE org_id = $1`, orgID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return n, nil
}
