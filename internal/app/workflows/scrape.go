// Package workflows runs the long-lived trigger flows: launch an actor,
// poll it to completion, ingest the dataset, and record the outcome.
package workflows

import (
	"context"
	"fmt"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/apify"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/runs"
	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// actorClient is the slice of the apify client the workflows need.
type actorClient interface {
	StartRun(ctx context.Context, actorID string, input any) (apify.Run, error)
	GetRun(ctx context.Context, runID string) (apify.Run, error)
	DatasetItems(ctx context.Context, datasetID string, v any) error
}

type searchWriter interface {
	Create(ctx context.Context, orgID int64, term, source string, metadata map[string]any) (models.Search, error)
	MarkComplete(ctx context.Context, id int64, jobCount int, dataFileName string) error
}

type jobWriter interface {
	UpsertBatch(ctx context.Context, searchID int64, items []models.Job) (int, error)
}

// ScrapeSource is the value stored in searches.source for runs started
// through the job scraper.
const ScrapeSource = "linkedin-jobs-scraper"

// ScrapeRunner launches a job-scrape run and ingests its output.
type ScrapeRunner struct {
	Actors   actorClient
	Searches searchWriter
	Jobs     jobWriter
	ActorID  string
	Waiter   runs.Waiter
	Logger   *zap.Logger

	sanitizer *bluemonday.Policy
}

// NewScrapeRunner wires a runner with the UGC sanitizer used on scraped
// description markup.
func NewScrapeRunner(actors actorClient, searches searchWriter, jobs jobWriter, actorID string, waiter runs.Waiter, logger *zap.Logger) *ScrapeRunner {
	return &ScrapeRunner{
		Actors:    actors,
		Searches:  searches,
		Jobs:      jobs,
		ActorID:   actorID,
		Waiter:    waiter,
		Logger:    logger,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Run executes the whole scrape flow synchronously: create the search
// record, start the actor, wait for it, then upsert the dataset. The
// search row is created first so a failed run still leaves an audit
// trail with job_count 0.
func (r *ScrapeRunner) Run(ctx context.Context, orgID int64, term string) (models.Search, error) {
	searchURL := BuildSearchURL(term)

	search, err := r.Searches.Create(ctx, orgID, term, ScrapeSource, map[string]any{
		"search_url": searchURL,
	})
	if err != nil {
		return models.Search{}, err
	}

	log := r.Logger.With(
		zap.Int64("search_id", search.ID),
		zap.Int64("org_id", orgID),
		zap.String("term", term))

	run, err := r.Actors.StartRun(ctx, r.ActorID, map[string]any{
		"scrapeCompany": true,
		"urls":          []string{searchURL},
	})
	if err != nil {
		return search, fmt.Errorf("start scrape run: %w", err)
	}
	log.Info("scrape run started", zap.String("run_id", run.ID))

	final, err := r.Waiter.Wait(ctx, run, r.Actors.GetRun)
	if err != nil {
		return search, fmt.Errorf("scrape run %s: %w", run.ID, err)
	}

	var items []jobItem
	if err := r.Actors.DatasetItems(ctx, final.DefaultDatasetID, &items); err != nil {
		return search, fmt.Errorf("fetch scrape dataset: %w", err)
	}

	rows := make([]models.Job, 0, len(items))
	for _, item := range items {
		j, err := mapJobItem(item, r.sanitizer.Sanitize)
		if err != nil {
			log.Warn("skipping malformed job item", zap.Error(err))
			continue
		}
		rows = append(rows, j)
	}

	written, err := r.Jobs.UpsertBatch(ctx, search.ID, rows)
	if err != nil {
		return search, fmt.Errorf("store scraped jobs: %w", err)
	}

	dataFile := "apify_run_" + final.ID
	if err := r.Searches.MarkComplete(ctx, search.ID, written, dataFile); err != nil {
		return search, err
	}
	search.JobCount = written
	search.DataFileName = &dataFile

	log.Info("scrape run complete",
		zap.String("run_id", final.ID),
		zap.Int("jobs", written))
	return search, nil
}
