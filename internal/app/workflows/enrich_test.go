package workflows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/runs"
	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"go.uber.org/zap"
)

type fakeContacts struct {
	existing int
	got      []models.CompanyContact
}

func (f *fakeContacts) InsertMany(ctx context.Context, items []models.CompanyContact) (int, int) {
	f.got = items
	return len(items), 0
}

func (f *fakeContacts) CountByWebsite(ctx context.Context, website string) (int, error) {
	return f.existing, nil
}

func TestEnrichRunnerFullFlow(t *testing.T) {
	actors := &fakeActors{
		items: `[
			{"full_name": "Ann Lee", "seniority_level": "VP"},
			{"full_name": "Bob Roy", "seniority_level": "Manager"}
		]`,
	}
	contacts := &fakeContacts{}

	r := NewEnrichRunner(actors, contacts, "actor-contacts",
		runs.Waiter{Interval: time.Millisecond, MaxAttempts: 5}, zap.NewNop())

	res, err := r.Run(context.Background(), "https://www.acme.example")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Domain != "acme.example" {
		t.Errorf("domain = %q", res.Domain)
	}
	input, _ := actors.startInput.(map[string]any)
	domains, _ := input["company_domain"].([]string)
	if len(domains) != 1 || domains[0] != "acme.example" {
		t.Errorf("actor input domains = %v", domains)
	}

	if res.Inserted != 2 {
		t.Errorf("inserted = %d, want 2", res.Inserted)
	}
	for _, c := range contacts.got {
		if c.CompanyWebsite != "https://www.acme.example" {
			t.Errorf("contact website = %q, want the triggering website", c.CompanyWebsite)
		}
	}
}

func TestEnrichRunnerAlreadyEnriched(t *testing.T) {
	contacts := &fakeContacts{existing: 4}
	r := NewEnrichRunner(&fakeActors{}, contacts, "actor-contacts",
		runs.Waiter{Interval: time.Millisecond, MaxAttempts: 5}, zap.NewNop())

	_, err := r.Run(context.Background(), "https://acme.example")
	var already *ErrAlreadyEnriched
	if !errors.As(err, &already) {
		t.Fatalf("err = %v, want ErrAlreadyEnriched", err)
	}
	if already.Count != 4 {
		t.Errorf("count = %d", already.Count)
	}
}

func TestEnrichRunnerBadWebsite(t *testing.T) {
	r := NewEnrichRunner(&fakeActors{}, &fakeContacts{}, "actor-contacts",
		runs.Waiter{Interval: time.Millisecond, MaxAttempts: 5}, zap.NewNop())

	if _, err := r.Run(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank website")
	}
}
