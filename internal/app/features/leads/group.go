package leads

import (
	"sort"
	"strings"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
)

// UnknownCompany is the display name for jobs without company data.
const UnknownCompany = "Unknown Company"

// Sort keys recognized on the leads listing.
const (
	SortJobCount    = "job_count"
	SortCompanyName = "company_name"
	SortCompanySize = "company_size"
)

// CompanyLead is one company aggregated from the org's scraped jobs.
type CompanyLead struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	Website        string `json:"website"`
	Logo           string `json:"logo"`
	Industry       string `json:"industry"`
	Location       string `json:"location"`
	EmployeesCount *int   `json:"employees_count"`

	Jobs        []models.Job `json:"jobs"`
	JobCount    int          `json:"job_count"`
	HasContacts bool         `json:"has_contacts"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GroupJobsByCompany partitions every job into exactly one group keyed
// by the job's company key (website, else name, else ""), preserving
// first-seen order. Jobs without any company data collapse into one
// "Unknown Company" group.
func GroupJobsByCompany(items []models.Job) []CompanyLead {
	index := map[string]int{}
	var out []CompanyLead

	for _, j := range items {
		key := j.CompanyKey()

		i, ok := index[key]
		if !ok {
			name := deref(j.CompanyName)
			if name == "" {
				name = UnknownCompany
			}
			lead := CompanyLead{
				Key:      key,
				Name:     name,
				Website:  deref(j.CompanyWebsite),
				Logo:     deref(j.CompanyLogo),
				Industry: deref(j.Industries),
				Location: deref(j.Location),
			}
			index[key] = len(out)
			out = append(out, lead)
			i = index[key]
		}

		lead := &out[i]
		lead.Jobs = append(lead.Jobs, j)
		lead.JobCount++

		// Later jobs can fill fields the first job lacked.
		if lead.Website == "" {
			lead.Website = deref(j.CompanyWebsite)
		}
		if lead.Logo == "" {
			lead.Logo = deref(j.CompanyLogo)
		}
		if lead.Industry == "" {
			lead.Industry = deref(j.Industries)
		}
		if lead.EmployeesCount == nil && j.CompanyEmployeesCount != nil {
			lead.EmployeesCount = j.CompanyEmployeesCount
		}
	}

	return out
}

func employees(l CompanyLead) int {
	if l.EmployeesCount == nil {
		return 0
	}
	return *l.EmployeesCount
}

// SortLeads orders the groups. The default (and SortJobCount) is most
// jobs first; SortCompanyName is alphabetical; SortCompanySize is
// largest headcount first with missing counts treated as zero.
func SortLeads(items []CompanyLead, key string) []CompanyLead {
	switch key {
	case SortCompanyName:
		sort.SliceStable(items, func(i, k int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[k].Name)
		})
	case SortCompanySize:
		sort.SliceStable(items, func(i, k int) bool {
			return employees(items[i]) > employees(items[k])
		})
	default:
		sort.SliceStable(items, func(i, k int) bool {
			return items[i].JobCount > items[k].JobCount
		})
	}
	return items
}

// LeadFilter is the recognized filter set for the leads listing.
type LeadFilter struct {
	Query        string
	Industry     string
	Location     string
	MinEmployees int
	MaxEmployees int
	HasContacts  bool
}

// FilterLeads applies the filter over the grouped batch.
func FilterLeads(items []CompanyLead, f LeadFilter) []CompanyLead {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]CompanyLead, 0, len(items))

	for _, l := range items {
		if q != "" {
			hay := strings.ToLower(l.Name + " " + l.Website + " " + l.Industry)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		if f.Industry != "" && !industryMatch(l.Industry, f.Industry) {
			continue
		}
		if f.Location != "" && !locationMatch(l, f.Location) {
			continue
		}
		if f.MinEmployees > 0 && employees(l) < f.MinEmployees {
			continue
		}
		if f.MaxEmployees > 0 && employees(l) > f.MaxEmployees {
			continue
		}
		if f.HasContacts && !l.HasContacts {
			continue
		}
		out = append(out, l)
	}
	return out
}

// locationMatch checks the filter against every job in the group, not
// just the first-seen location.
func locationMatch(l CompanyLead, want string) bool {
	w := strings.ToLower(strings.TrimSpace(want))
	for _, j := range l.Jobs {
		if j.Location != nil && strings.Contains(strings.ToLower(*j.Location), w) {
			return true
		}
	}
	return false
}

func industryMatch(industries, want string) bool {
	w := strings.ToLower(strings.TrimSpace(want))
	return strings.Contains(strings.ToLower(industries), w)
}

// IndustryOptions returns the distinct industries across the groups,
// split on commas, trimmed, de-duplicated, and sorted.
func IndustryOptions(items []CompanyLead) []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range items {
		for _, part := range strings.Split(l.Industry, ",") {
			v := strings.TrimSpace(part)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
