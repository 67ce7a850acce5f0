package users

import (
	"context"
	"testing"

	"github.com/TurtleTaco/lead-explorer/internal/testutil"
)

func TestEnsureWithOrganization(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()

	store := New(pool)

	u1, org1, err := store.EnsureWithOrganization(ctx, "dev@example.com", "org_ext_1", "Acme", "owner")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if u1.ID == 0 || org1.ID == 0 {
		t.Fatalf("ids not assigned: user=%+v org=%+v", u1, org1)
	}

	// Second call with the same identity must reuse the same rows.
	u2, org2, err := store.EnsureWithOrganization(ctx, "dev@example.com", "org_ext_1", "Acme", "owner")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if u2.ID != u1.ID {
		t.Errorf("user id changed: %d then %d", u1.ID, u2.ID)
	}
	if org2.ID != org1.ID {
		t.Errorf("org id changed: %d then %d", org1.ID, org2.ID)
	}

	var links int
	if err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_organizations WHERE user_id = $1 AND org_id = $2`,
		u1.ID, org1.ID).Scan(&links); err != nil {
		t.Fatal(err)
	}
	if links != 1 {
		t.Errorf("membership rows = %d, want 1", links)
	}
}

func TestEnsureKeepsExistingOrgName(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()

	store := New(pool)

	if _, _, err := store.EnsureWithOrganization(ctx, "a@example.com", "org_x", "Real Name", "member"); err != nil {
		t.Fatal(err)
	}

	// A later ensure with a blank name must not wipe the stored one.
	_, org, err := store.EnsureWithOrganization(ctx, "b@example.com", "org_x", "", "member")
	if err != nil {
		t.Fatal(err)
	}
	if org.Name != "Real Name" {
		t.Errorf("org name = %q, want %q", org.Name, "Real Name")
	}
}

func TestGetByEmailMissing(t *testing.T) {
	pool := testutil.SetupTestDB(t)

	store := New(pool)
	u, err := store.GetByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}
}
