// Package testutil holds helpers shared by store and handler tests.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SetupTestDB connects to the database named by LEADSCOUT_TEST_POSTGRES_URL
// and truncates all tables so each test starts clean. Tests that need a
// real database are skipped when the variable is unset.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("LEADSCOUT_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("LEADSCOUT_TEST_POSTGRES_URL not set; skipping database test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping test database: %v", err)
	}

	_, err = pool.Exec(ctx,
		`TRUNCATE company_contacts, jobs, searches, user_organizations, organizations, users
		 RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate test tables: %v", err)
	}

	return pool
}
