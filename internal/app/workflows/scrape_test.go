package workflows

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/apify"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/runs"
	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"go.uber.org/zap"
)

// fakeActors drives the workflow without a network.
type fakeActors struct {
	startInput   any
	startActorID string
	pollsLeft    int
	items        string
}

func (f *fakeActors) StartRun(ctx context.Context, actorID string, input any) (apify.Run, error) {
	f.startActorID = actorID
	f.startInput = input
	return apify.Run{ID: "run-1", Status: apify.StatusRunning}, nil
}

func (f *fakeActors) GetRun(ctx context.Context, runID string) (apify.Run, error) {
	if f.pollsLeft > 0 {
		f.pollsLeft--
		return apify.Run{ID: runID, Status: apify.StatusRunning}, nil
	}
	return apify.Run{ID: runID, Status: apify.StatusSucceeded, DefaultDatasetID: "ds-1"}, nil
}

func (f *fakeActors) DatasetItems(ctx context.Context, datasetID string, v any) error {
	return json.Unmarshal([]byte(f.items), v)
}

type fakeSearches struct {
	created   *models.Search
	completed bool
	jobCount  int
	dataFile  string
}

func (f *fakeSearches) Create(ctx context.Context, orgID int64, term, source string, metadata map[string]any) (models.Search, error) {
	sr := models.Search{ID: 7, OrgID: orgID, SearchTerm: term, Source: source, Metadata: metadata}
	f.created = &sr
	return sr, nil
}

func (f *fakeSearches) MarkComplete(ctx context.Context, id int64, jobCount int, dataFileName string) error {
	f.completed = true
	f.jobCount = jobCount
	f.dataFile = dataFileName
	return nil
}

type fakeJobs struct {
	got []models.Job
}

func (f *fakeJobs) UpsertBatch(ctx context.Context, searchID int64, items []models.Job) (int, error) {
	f.got = items
	return len(items), nil
}

func TestScrapeRunnerFullFlow(t *testing.T) {
	actors := &fakeActors{
		pollsLeft: 2,
		items: `[
			{"id": "j1", "title": "Engineer", "companyName": "Acme", "descriptionHtml": "<p>ok</p><script>x</script>"},
			{"id": "j2", "title": "Designer", "companyName": "Beta"},
			{"title": "Missing ID"}
		]`,
	}
	searches := &fakeSearches{}
	jobs := &fakeJobs{}

	r := NewScrapeRunner(actors, searches, jobs, "actor-jobs",
		runs.Waiter{Interval: time.Millisecond, MaxAttempts: 10}, zap.NewNop())

	search, err := r.Run(context.Background(), 3, "golang engineer")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if actors.startActorID != "actor-jobs" {
		t.Errorf("actor id = %q", actors.startActorID)
	}
	input, ok := actors.startInput.(map[string]any)
	if !ok {
		t.Fatalf("input type %T", actors.startInput)
	}
	if input["scrapeCompany"] != true {
		t.Errorf("scrapeCompany = %v", input["scrapeCompany"])
	}
	urls, _ := input["urls"].([]string)
	if len(urls) != 1 || !strings.Contains(urls[0], "keywords=golang+engineer") {
		t.Errorf("urls = %v", urls)
	}

	// The malformed third item is skipped, not fatal.
	if len(jobs.got) != 2 {
		t.Fatalf("upserted %d jobs, want 2", len(jobs.got))
	}
	if jobs.got[0].DescriptionHTML == nil || strings.Contains(*jobs.got[0].DescriptionHTML, "script") {
		t.Errorf("description not sanitized: %v", jobs.got[0].DescriptionHTML)
	}

	if !searches.completed || searches.jobCount != 2 || searches.dataFile != "apify_run_run-1" {
		t.Errorf("completion record: %+v", searches)
	}
	if search.JobCount != 2 {
		t.Errorf("returned search job count = %d", search.JobCount)
	}
}

func TestScrapeRunnerActorFailure(t *testing.T) {
	actors := &failingActors{}
	searches := &fakeSearches{}
	jobs := &fakeJobs{}

	r := NewScrapeRunner(actors, searches, jobs, "actor-jobs",
		runs.Waiter{Interval: time.Millisecond, MaxAttempts: 3}, zap.NewNop())

	_, err := r.Run(context.Background(), 3, "golang")
	if err == nil {
		t.Fatal("expected error when actor run fails")
	}
	// The search row exists for the audit trail even though the run failed.
	if searches.created == nil {
		t.Error("search record was not created")
	}
	if searches.completed {
		t.Error("failed run must not be marked complete")
	}
}

type failingActors struct{}

func (f *failingActors) StartRun(ctx context.Context, actorID string, input any) (apify.Run, error) {
	return apify.Run{ID: "run-f", Status: apify.StatusRunning}, nil
}

func (f *failingActors) GetRun(ctx context.Context, runID string) (apify.Run, error) {
	return apify.Run{ID: runID, Status: apify.StatusFailed}, nil
}

func (f *failingActors) DatasetItems(ctx context.Context, datasetID string, v any) error {
	return nil
}
