// Package users persists account rows keyed by the identity provider's
// email/subject string.
package users

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

// GetByEmail returns the user, or nil when no row exists.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, created_at, updated_at FROM users WHERE email = $1`, email)

	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// GetByID returns the user, or nil when no row exists.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, created_at, updated_at FROM users WHERE id = $1`, id)

	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// EnsureWithOrganization gets or creates the user, the organization, and
// the membership link in a single transaction, so a first-time trigger
// action cannot leave a user without their org link.
func (s *Store) EnsureWithOrganization(ctx context.Context, email, orgExtID, orgName, role string) (models.User, models.Organization, error) {
	var u models.User
	var org models.Organization

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return u, org, fmt.Errorf("begin ensure tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO users (email) VALUES ($1)
		 ON CONFLICT (email) DO UPDATE SET updated_at = CURRENT_TIMESTAMP
		 RETURNING id, email, created_at, updated_at`, email).
		Scan(&u.ID, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return u, org, fmt.Errorf("ensure user %q: %w", email, err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO organizations (org_id, name, created_by_user_id) VALUES ($1, $2, $3)
		 ON CONFLICT (org_id) DO UPDATE SET
		   name = COALESCE(NULLIF(EXCLUDED.name, ''), organizations.name),
		   updated_at = CURRENT_TIMESTAMP
		 RETURNING id, org_id, name, created_by_user_id, created_at, updated_at`,
		orgExtID, orgName, u.ID).
		Scan(&org.ID, &org.OrgID, &org.Name, &org.CreatedByUserID, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return u, org, fmt.Errorf("ensure organization %q: %w", orgExtID, err)
	}

	if role == "" {
		role = "member"
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO user_organizations (user_id, org_id, role) VALUES ($1, $2, $3)
		 ON CONFLICT ON CONSTRAINT unique_user_org DO NOTHING`,
		u.ID, org.ID, role)
	if err != nil {
		return u, org, fmt.Errorf("ensure membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return u, org, fmt.Errorf("commit ensure tx: %w", err)
	}
	return u, org, nil
}
