package workflows

import (
	"context"
	"fmt"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/runs"
	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"go.uber.org/zap"
)

type contactWriter interface {
	InsertMany(ctx context.Context, items []models.CompanyContact) (inserted, skipped int)
	CountByWebsite(ctx context.Context, website string) (int, error)
}

// ErrAlreadyEnriched is returned when contacts already exist for the
// requested website, so the caller can report "already fetched" instead
// of paying for a second run.
type ErrAlreadyEnriched struct {
	Website string
	Count   int
}

func (e *ErrAlreadyEnriched) Error() string {
	return fmt.Sprintf("%d contacts already stored for %s", e.Count, e.Website)
}

// EnrichResult summarizes one completed enrichment run.
type EnrichResult struct {
	Website  string
	Domain   string
	Inserted int
	Skipped  int
}

// EnrichRunner launches a contact-enrichment run for one company
// website and stores the resulting contacts.
type EnrichRunner struct {
	Actors   actorClient
	Contacts contactWriter
	ActorID  string
	Waiter   runs.Waiter
	Logger   *zap.Logger
}

func NewEnrichRunner(actors actorClient, contacts contactWriter, actorID string, waiter runs.Waiter, logger *zap.Logger) *EnrichRunner {
	return &EnrichRunner{
		Actors:   actors,
		Contacts: contacts,
		ActorID:  actorID,
		Waiter:   waiter,
		Logger:   logger,
	}
}

// Run executes the enrichment flow for a company website. It refuses to
// re-run when contacts are already stored for the website.
func (r *EnrichRunner) Run(ctx context.Context, website string) (EnrichResult, error) {
	res := EnrichResult{Website: website}

	domain, err := EnrichmentDomain(website)
	if err != nil {
		return res, err
	}
	res.Domain = domain

	if n, err := r.Contacts.CountByWebsite(ctx, website); err != nil {
		return res, err
	} else if n > 0 {
		return res, &ErrAlreadyEnriched{Website: website, Count: n}
	}

	log := r.Logger.With(zap.String("website", website), zap.String("domain", domain))

	run, err := r.Actors.StartRun(ctx, r.ActorID, map[string]any{
		"company_domain": []string{domain},
	})
	if err != nil {
		return res, fmt.Errorf("start enrichment run: %w", err)
	}
	log.Info("enrichment run started", zap.String("run_id", run.ID))

	final, err := r.Waiter.Wait(ctx, run, r.Actors.GetRun)
	if err != nil {
		return res, fmt.Errorf("enrichment run %s: %w", run.ID, err)
	}

	var items []contactItem
	if err := r.Actors.DatasetItems(ctx, final.DefaultDatasetID, &items); err != nil {
		return res, fmt.Errorf("fetch enrichment dataset: %w", err)
	}

	rows := make([]models.CompanyContact, 0, len(items))
	for _, item := range items {
		rows = append(rows, mapContactItem(item, website))
	}

	res.Inserted, res.Skipped = r.Contacts.InsertMany(ctx, rows)

	log.Info("enrichment run complete",
		zap.String("run_id", final.ID),
		zap.Int("inserted", res.Inserted),
		zap.Int("skipped", res.Skipped))
	return res, nil
}
