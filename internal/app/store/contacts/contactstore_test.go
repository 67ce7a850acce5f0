package contacts

import (
	"context"
	"testing"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/TurtleTaco/lead-explorer/internal/testutil"
	"go.uber.org/zap"
)

func TestInsertManyAndListByWebsites(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()

	store := New(pool, zap.NewNop())

	items := []models.CompanyContact{
		testutil.SampleContact("Ann Lee", "https://acme.example", "VP"),
		testutil.SampleContact("Bob Roy", "https://acme.example", "Manager"),
		testutil.SampleContact("Cal Day", "https://beta.example", "C-Suite"),
	}

	inserted, skipped := store.InsertMany(ctx, items)
	if inserted != 3 || skipped != 0 {
		t.Fatalf("inserted=%d skipped=%d, want 3/0", inserted, skipped)
	}

	got, err := store.ListByWebsites(ctx, []string{"https://acme.example"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d contacts for acme, want 2", len(got))
	}

	n, err := store.CountByWebsite(ctx, "https://beta.example")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("beta count = %d, want 1", n)
	}
}

func TestListByWebsitesEmptyInput(t *testing.T) {
	pool := testutil.SetupTestDB(t)

	store := New(pool, zap.NewNop())
	got, err := store.ListByWebsites(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no contacts, got %d", len(got))
	}
}
