package searches

import (
	"context"
	"testing"

	"github.com/TurtleTaco/lead-explorer/internal/testutil"
)

func TestCreateAndMarkComplete(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()

	org := testutil.InsertOrg(t, pool, "org_1", "Acme")
	store := New(pool)

	sr, err := store.Create(ctx, org.ID, "golang engineer", "linkedin-jobs-scraper",
		map[string]any{"run_id": "run-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sr.JobCount != 0 || sr.SearchTerm != "golang engineer" {
		t.Errorf("unexpected search: %+v", sr)
	}

	if err := store.MarkComplete(ctx, sr.ID, 42, "dataset-xyz"); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	got, err := store.GetForOrg(ctx, sr.ID, org.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.JobCount != 42 || got.DataFileName == nil || *got.DataFileName != "dataset-xyz" {
		t.Errorf("after completion: %+v", got)
	}
}

func TestGetForOrgScoping(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()

	orgA := testutil.InsertOrg(t, pool, "org_a", "A")
	orgB := testutil.InsertOrg(t, pool, "org_b", "B")
	store := New(pool)

	sr, err := store.Create(ctx, orgA.ID, "term", "linkedin-jobs-scraper", nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.GetForOrg(ctx, sr.ID, orgB.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("org B can read org A's search: %+v", got)
	}
}

func TestDeleteScoping(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()

	orgA := testutil.InsertOrg(t, pool, "org_a", "A")
	orgB := testutil.InsertOrg(t, pool, "org_b", "B")
	store := New(pool)

	sr, err := store.Create(ctx, orgA.ID, "term", "linkedin-jobs-scraper", nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(ctx, sr.ID, orgB.ID); err == nil {
		t.Error("cross-tenant delete should fail")
	}
	if err := store.Delete(ctx, sr.ID, orgA.ID); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}

	n, err := store.CountForOrg(ctx, orgA.ID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("searches remaining = %d, want 0", n)
	}
}
