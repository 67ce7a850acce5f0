// Package paging provides the offset pagination used by the jobs and
// leads listings.
package paging

import (
	"net/http"
	"strconv"
)

const (
	// JobsPerPage is the fixed page size for job listings.
	JobsPerPage = 10
	// LeadsPerPage is the fixed page size for lead company listings.
	LeadsPerPage = 5
)

// ParsePage reads the "page" query parameter, defaulting to 1.
// Values below 1 are clamped to 1.
func ParsePage(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// TotalPages is ceil(total/perPage); zero items yield zero pages.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Offset converts a 1-based page number to a slice/SQL offset.
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}

// Nav carries the template state for pagination controls.
type Nav struct {
	Page       int
	TotalPages int
	Total      int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

// BuildNav computes pagination navigation for a 1-based page against a
// total item count.
func BuildNav(page, total, perPage int) Nav {
	tp := TotalPages(total, perPage)
	if page < 1 {
		page = 1
	}
	n := Nav{
		Page:       page,
		TotalPages: tp,
		Total:      total,
		HasPrev:    page > 1,
		HasNext:    page < tp,
	}
	if n.HasPrev {
		n.PrevPage = page - 1
	}
	if n.HasNext {
		n.NextPage = page + 1
	}
	return n
}

// Slice returns the window of items for a 1-based page. Pages past the
// end return an empty slice.
func Slice[T any](items []T, page, perPage int) []T {
	start := Offset(page, perPage)
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
