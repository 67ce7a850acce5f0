package models

import "time"

// Job is one scraped job posting. Rows are unique on (SearchID, JobID);
// re-running a scrape replaces the non-key fields of matching rows.
type Job struct {
	ID       int64
	SearchID int64

	JobID      string
	TrackingID *string
	RefID      *string

	Title           string
	Link            *string
	ApplyURL        *string
	DescriptionHTML *string
	DescriptionText *string

	CompanyName           *string
	CompanyLinkedinURL    *string
	CompanyLogo           *string
	CompanyWebsite        *string
	CompanySlogan         *string
	CompanyDescription    *string
	CompanyEmployeesCount *int

	Location        *string
	Salary          *string
	SalaryInfo      []any
	PostedAt        *time.Time
	ApplicantsCount *string
	Benefits        []any

	SeniorityLevel *string
	EmploymentType *string
	JobFunction    *string
	Industries     *string

	CompanyAddress map[string]any
	InputURL       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyKey groups jobs that belong to the same company. Website wins
// over name because several companies can share a display name.
func (j Job) CompanyKey() string {
	if j.CompanyWebsite != nil && *j.CompanyWebsite != "" {
		return *j.CompanyWebsite
	}
	if j.CompanyName != nil {
		return *j.CompanyName
	}
	return ""
}
