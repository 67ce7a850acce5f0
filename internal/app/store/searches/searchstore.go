// Package searches persists triggered scrape runs. Every read is scoped
// by organization so one tenant can never see another's runs.
package searches

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

const searchCols = `id, org_id, search_term, source, data_file_name, job_count, created_at, updated_at, metadata`

func scanSearch(row pgx.Row) (models.Search, error) {
	var sr models.Search
	err := row.Scan(&sr.ID, &sr.OrgID, &sr.SearchTerm, &sr.Source, &sr.DataFileName,
		&sr.JobCount, &sr.CreatedAt, &sr.UpdatedAt, &sr.Metadata)
	return sr, err
}

// Create inserts a new search record for a just-launched scrape run.
func (s *Store) Create(ctx context.Context, orgID int64, term, source string, metadata map[string]any) (models.Search, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	sr, err := scanSearch(s.pool.QueryRow(ctx,
		`INSERT INTO searches (org_id, search_term, source, metadata)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+searchCols, orgID, term, source, metadata))
	if err != nil {
		return sr, fmt.Errorf("create search: %w", err)
	}
	return sr, nil
}

// GetForOrg returns the search, or nil when it does not exist or belongs
// to a different organization.
func (s *Store) GetForOrg(ctx context.Context, id, orgID int64) (*models.Search, error) {
	sr, err := scanSearch(s.pool.QueryRow(ctx,
		`SELECT `+searchCols+` FROM searches WHERE id = $1 AND org_id = $2`, id, orgID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get search: %w", err)
	}
	return &sr, nil
}

// ListForOrg returns the organization's searches, newest first.
func (s *Store) ListForOrg(ctx context.Context, orgID int64) ([]models.Search, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+searchCols+` FROM searches WHERE org_id = $1 ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	defer rows.Close()

	var out []models.Search
	for rows.Next() {
		sr, err := scanSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// MarkComplete records the final job count and the dataset reference
// once the scrape run has been ingested.
func (s *Store) MarkComplete(ctx context.Context, id int64, jobCount int, dataFileName string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE searches
		 SET job_count = $2, data_file_name = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1`, id, jobCount, dataFileName)
	if err != nil {
		return fmt.Errorf("mark search complete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark search complete: search %d not found", id)
	}
	return nil
}

// Delete removes a search and, via cascade, its jobs. The org scope
// guards against deleting another tenant's data.
func (s *Store) Delete(ctx context.Context, id, orgID int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM searches WHERE id = $1 AND org_id = $2`, id, orgID)
	if err != nil {
		return fmt.Errorf("delete search: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete search: search %d not found in org %d", id, orgID)
	}
	return nil
}

// CountForOrg returns how many searches the organization has run.
func (s *Store) CountForOrg(ctx context.Context, orgID int64) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM searches WHERE org_id = $1`, orgID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count searches: %w", err)
	}
	return n, nil
}
