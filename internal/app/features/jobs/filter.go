package jobs

import (
	"sort"
	"strings"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
)

// Sort keys recognized on the jobs listing.
const (
	SortRecent  = "recent"
	SortTitle   = "title"
	SortCompany = "company"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FilterJobs applies the free-text and company filters over an
// already-fetched batch. Matching is case-insensitive substring on
// title, company name, and location.
func FilterJobs(items []models.Job, q, company string) []models.Job {
	if q == "" && company == "" {
		return items
	}

	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Job, 0, len(items))
	for _, j := range items {
		if company != "" && deref(j.CompanyName) != company {
			continue
		}
		if q != "" {
			hay := strings.ToLower(j.Title + " " + deref(j.CompanyName) + " " + deref(j.Location))
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, j)
	}
	return out
}

// SortJobs orders the batch by the given key. The input arrives newest
// posting first, so SortRecent keeps it as is. Sorting is stable so
// equal keys keep their posting-date order.
func SortJobs(items []models.Job, key string) []models.Job {
	switch key {
	case SortTitle:
		sort.SliceStable(items, func(i, k int) bool {
			return strings.ToLower(items[i].Title) < strings.ToLower(items[k].Title)
		})
	case SortCompany:
		sort.SliceStable(items, func(i, k int) bool {
			return strings.ToLower(deref(items[i].CompanyName)) < strings.ToLower(deref(items[k].CompanyName))
		})
	}
	return items
}

// CompanyOptions returns the distinct company names in the batch,
// sorted, for the filter dropdown.
func CompanyOptions(items []models.Job) []string {
	seen := map[string]bool{}
	var out []string
	for _, j := range items {
		name := deref(j.CompanyName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
