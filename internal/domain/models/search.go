package models

import "time"

// Search records one triggered job-scrape run and its scope.
type Search struct {
	ID           int64
	OrgID        int64
	SearchTerm   string
	Source       string
	DataFileName *string
	JobCount     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Metadata     map[string]any
}
