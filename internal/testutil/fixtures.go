package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ptr returns a pointer to v, for the many optional model fields.
func Ptr[T any](v T) *T { return &v }

// InsertUser creates a user row and returns it.
func InsertUser(t *testing.T, pool *pgxpool.Pool, email string) models.User {
	t.Helper()
	var u models.User
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (email) VALUES ($1)
		 RETURNING id, email, created_at, updated_at`, email).
		Scan(&u.ID, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return u
}

// InsertOrg creates an organization row and returns it.
func InsertOrg(t *testing.T, pool *pgxpool.Pool, extID, name string) models.Organization {
	t.Helper()
	var org models.Organization
	err := pool.QueryRow(context.Background(),
		`INSERT INTO organizations (org_id, name) VALUES ($1, $2)
		 RETURNING id, org_id, name, created_by_user_id, created_at, updated_at`, extID, name).
		Scan(&org.ID, &org.OrgID, &org.Name, &org.CreatedByUserID, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		t.Fatalf("insert organization: %v", err)
	}
	return org
}

// LinkUserOrg creates a membership row.
func LinkUserOrg(t *testing.T, pool *pgxpool.Pool, userID, orgID int64, role string) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO user_organizations (user_id, org_id, role) VALUES ($1, $2, $3)`,
		userID, orgID, role)
	if err != nil {
		t.Fatalf("link user to org: %v", err)
	}
}

// InsertSearch creates a search row and returns it.
func InsertSearch(t *testing.T, pool *pgxpool.Pool, orgID int64, term string) models.Search {
	t.Helper()
	var sr models.Search
	err := pool.QueryRow(context.Background(),
		`INSERT INTO searches (org_id, search_term, metadata) VALUES ($1, $2, '{}'::jsonb)
		 RETURNING id, org_id, search_term, source, data_file_name, job_count, created_at, updated_at, metadata`,
		orgID, term).
		Scan(&sr.ID, &sr.OrgID, &sr.SearchTerm, &sr.Source, &sr.DataFileName,
			&sr.JobCount, &sr.CreatedAt, &sr.UpdatedAt, &sr.Metadata)
	if err != nil {
		t.Fatalf("insert search: %v", err)
	}
	return sr
}

// SampleJob builds a job posting with the common fields filled in.
func SampleJob(jobID, title, companyName, website string) models.Job {
	posted := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return models.Job{
		JobID:          jobID,
		Title:          title,
		CompanyName:    Ptr(companyName),
		CompanyWebsite: Ptr(website),
		Location:       Ptr("Remote"),
		PostedAt:       Ptr(posted),
		SalaryInfo:     []any{},
		Benefits:       []any{},
	}
}

// SampleContact builds a contact row for the given company website.
func SampleContact(fullName, website, seniority string) models.CompanyContact {
	return models.CompanyContact{
		FullName:       Ptr(fullName),
		Email:          Ptr("person@example.com"),
		JobTitle:       Ptr("Engineer"),
		SeniorityLevel: Ptr(seniority),
		CompanyName:    Ptr("Example Co"),
		CompanyWebsite: website,
	}
}
