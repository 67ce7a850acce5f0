// Package jobs persists scraped job postings. Writes are idempotent
// upserts keyed on (search_id, job_id) so re-ingesting a dataset never
// duplicates rows.
package jobs

import (
	"context"
	"fmt"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// upsertChunkSize bounds how many rows go into one batched round trip.
const upsertChunkSize = 50

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const jobCols = `id, search_id, job_id, tracking_id, ref_id, title, link, apply_url,
	description_html, description_text,
	company_name, company_linkedin_url, company_logo, company_website, company_slogan,
	company_description, company_employees_count,
	location, salary, salary_info, posted_at, applicants_count, benefits,
	seniority_level, employment_type, job_function, industries,
	company_address, input_url, created_at, updated_at`

const upsertSQL = `INSERT INTO jobs (
	search_id, job_id, tracking_id, ref_id, title, link, apply_url,
	description_html, description_text,
	company_name, company_linkedin_url, company_logo, company_website, company_slogan,
	company_description, company_employees_count,
	location, salary, salary_info, posted_at, applicants_count, benefits,
	seniority_level, employment_type, job_function, industries,
	company_address, input_url
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28)
ON CONFLICT ON CONSTRAINT unique_job_per_search DO UPDATE SET
	tracking_id = EXCLUDED.tracking_id,
	ref_id = EXCLUDED.ref_id,
	title = EXCLUDED.title,
	link = EXCLUDED.link,
	apply_url = EXCLUDED.apply_url,
	description_html = EXCLUDED.description_html,
	description_text = EXCLUDED.description_text,
	company_name = EXCLUDED.company_name,
	company_linkedin_url = EXCLUDED.company_linkedin_url,
	company_logo = EXCLUDED.company_logo,
	company_website = EXCLUDED.company_website,
	company_slogan = EXCLUDED.company_slogan,
	company_description = EXCLUDED.company_description,
	company_employees_count = EXCLUDED.company_employees_count,
	location = EXCLUDED.location,
	salary = EXCLUDED.salary,
	salary_info = EXCLUDED.salary_info,
	posted_at = EXCLUDED.posted_at,
	applicants_count = EXCLUDED.applicants_count,
	benefits = EXCLUDED.benefits,
	seniority_level = EXCLUDED.seniority_level,
	employment_type = EXCLUDED.employment_type,
	job_function = EXCLUDED.job_function,
	industries = EXCLUDED.industries,
	company_address = EXCLUDED.company_address,
	input_url = EXCLUDED.input_url,
	updated_at = CURRENT_TIMESTAMP`

func upsertArgs(searchID int64, j models.Job) []any {
	salaryInfo := j.SalaryInfo
	if salaryInfo == nil {
		salaryInfo = []any{}
	}
	benefits := j.Benefits
	if benefits == nil {
		benefits = []any{}
	}
	return []any{
		searchID, j.JobID, j.TrackingID, j.RefID, j.Title, j.Link, j.ApplyURL,
		j.DescriptionHTML, j.DescriptionText,
		j.CompanyName, j.CompanyLinkedinURL, j.CompanyLogo, j.CompanyWebsite, j.CompanySlogan,
		j.CompanyDescription, j.CompanyEmployeesCount,
		j.Location, j.Salary, salaryInfo, j.PostedAt, j.ApplicantsCount, benefits,
		j.SeniorityLevel, j.EmploymentType, j.JobFunction, j.Industries,
		j.CompanyAddress, j.InputURL,
	}
}

// UpsertBatch writes the jobs in chunks of 50 and returns how many rows
// were written. Each chunk runs as one batched round trip.
func (s *Store) UpsertBatch(ctx context.Context, searchID int64, items []models.Job) (int, error) {
	written := 0
	for start := 0; start < len(items); start += upsertChunkSize {
		end := start + upsertChunkSize
		if end > len(items) {
			end = len(items)
		}

		b := &pgx.Batch{}
		for _, j := range items[start:end] {
			b.Queue(upsertSQL, upsertArgs(searchID, j)...)
		}

		br := s.pool.SendBatch(ctx, b)
		for i := start; i < end; i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return written, fmt.Errorf("upsert job %q: %w", items[i].JobID, err)
			}
			written++
		}
		if err := br.Close(); err != nil {
			return written, fmt.Errorf("close upsert batch: %w", err)
		}
	}
	return written, nil
}

func scanJob(rows pgx.Rows) (models.Job, error) {
	var j models.Job
	err := rows.Scan(&j.ID, &j.SearchID, &j.JobID, &j.TrackingID, &j.RefID, &j.Title,
		&j.Link, &j.ApplyURL, &j.DescriptionHTML, &j.DescriptionText,
		&j.CompanyName, &j.CompanyLinkedinURL, &j.CompanyLogo, &j.CompanyWebsite,
		&j.CompanySlogan, &j.CompanyDescription, &j.CompanyEmployeesCount,
		&j.Location, &j.Salary, &j.SalaryInfo, &j.PostedAt, &j.ApplicantsCount, &j.Benefits,
		&j.SeniorityLevel, &j.EmploymentType, &j.JobFunction, &j.Industries,
		&j.CompanyAddress, &j.InputURL, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}

func (s *Store) collect(rows pgx.Rows) ([]models.Job, error) {
	defer rows.Close()
	var out []models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// ListBySearch returns every job of a search, newest posting first.
// Grouping and pagination happen in the feature layer.
func (s *Store) ListBySearch(ctx context.Context, searchID int64) ([]models.Job, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobCols+` FROM jobs WHERE search_id = $1
		 ORDER BY posted_at DESC NULLS LAST, id`, searchID)
	if err != nil {
		return nil, fmt.Errorf("list jobs by search: %w", err)
	}
	return s.collect(rows)
}

// ListForOrg returns every job across all of the organization's
// searches, for the leads view.
func (s *Store) ListForOrg(ctx context.Context, orgID int64) ([]models.Job, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobCols+` FROM jobs j
		 WHERE search_id IN (SELECT id FROM searches WHERE org_id = $1)
		 ORDER BY posted_at DESC NULLS LAST, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list jobs for org: %w", err)
	}
	return s.collect(rows)
}

// CountBySearch returns how many jobs a search produced.
func (s *Store) CountBySearch(ctx context.Context, searchID int64) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE search_id = $1`, searchID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

// CountForOrg returns how many jobs exist across the organization's
// searches.
func (s *Store) CountForOrg(ctx context.Context, orgID int64) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs
		 WHERE search_id IN (SELECT id FROM searches WHERE org_id = $1)`, orgID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs for org: %w", err)
	}
	return n, nil
}
