package contacts

import (
	"sort"
	"strings"
	"time"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
)

// Sort keys recognized on the contacts listing.
const (
	SortName    = "name"
	SortCompany = "company"
	SortRecent  = "recent"
)

// seniorityRank orders contacts inside a company, most senior first.
// Unlisted levels sink to the bottom.
var seniorityRank = map[string]int{
	"C-Suite":  1,
	"VP":       2,
	"Director": 3,
	"Manager":  4,
	"Senior":   5,
	"Entry":    6,
}

func rankOf(c models.CompanyContact) int {
	if c.SeniorityLevel == nil {
		return 999
	}
	if r, ok := seniorityRank[*c.SeniorityLevel]; ok {
		return r
	}
	return 999
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ContactCompany is one company's enriched contacts.
type ContactCompany struct {
	Website      string                  `json:"website"`
	Name         string                  `json:"name"`
	Industry     string                  `json:"industry"`
	Size         *int                    `json:"size"`
	Contacts     []models.CompanyContact `json:"contacts"`
	ContactCount int                     `json:"contact_count"`
	NewestAt     time.Time               `json:"newest_at"`

	JobCount        int        `json:"job_count"`
	LatestJobTitle  string     `json:"latest_job_title"`
	LatestJobPosted *time.Time `json:"latest_job_posted"`
}

// CompanyJobInfo summarizes the org's scraped jobs for one company
// website.
type CompanyJobInfo struct {
	Count        int
	LatestTitle  string
	LatestPosted *time.Time
}

// BuildJobInfo indexes the org's job batch by company website, keeping
// the most recently posted job's title and date per company.
func BuildJobInfo(batch []models.Job) map[string]CompanyJobInfo {
	out := map[string]CompanyJobInfo{}
	for _, j := range batch {
		if j.CompanyWebsite == nil || *j.CompanyWebsite == "" {
			continue
		}
		info := out[*j.CompanyWebsite]
		info.Count++
		if j.PostedAt != nil && (info.LatestPosted == nil || j.PostedAt.After(*info.LatestPosted)) {
			info.LatestPosted = j.PostedAt
			info.LatestTitle = j.Title
		}
		out[*j.CompanyWebsite] = info
	}
	return out
}

// AttachJobInfo annotates each company with the org's matching job
// count and latest posting.
func AttachJobInfo(view ContactsView, infos map[string]CompanyJobInfo) ContactsView {
	for i := range view.Companies {
		info := infos[view.Companies[i].Website]
		view.Companies[i].JobCount = info.Count
		view.Companies[i].LatestJobTitle = info.LatestTitle
		view.Companies[i].LatestJobPosted = info.LatestPosted
	}
	return view
}

// ContactsView is the aggregated result for the contacts page.
type ContactsView struct {
	Companies     []ContactCompany `json:"companies"`
	TotalContacts int              `json:"total_contacts"`
}

// GroupContactsByCompany aggregates contacts by company_website,
// preserving first-seen order and sorting each company's contacts most
// senior first. Zero input yields an empty (non-nil) company list.
func GroupContactsByCompany(items []models.CompanyContact) ContactsView {
	view := ContactsView{Companies: []ContactCompany{}}
	index := map[string]int{}

	for _, c := range items {
		key := c.CompanyWebsite

		i, ok := index[key]
		if !ok {
			company := ContactCompany{
				Website:  key,
				Name:     deref(c.CompanyName),
				Industry: deref(c.Industry),
				Size:     c.CompanySize,
			}
			if company.Name == "" {
				company.Name = key
			}
			index[key] = len(view.Companies)
			view.Companies = append(view.Companies, company)
			i = index[key]
		}

		company := &view.Companies[i]
		company.Contacts = append(company.Contacts, c)
		company.ContactCount++
		if c.CreatedAt.After(company.NewestAt) {
			company.NewestAt = c.CreatedAt
		}
		if company.Size == nil && c.CompanySize != nil {
			company.Size = c.CompanySize
		}
		view.TotalContacts++
	}

	for i := range view.Companies {
		cs := view.Companies[i].Contacts
		sort.SliceStable(cs, func(a, b int) bool {
			return rankOf(cs[a]) < rankOf(cs[b])
		})
	}

	return view
}

func latestPosted(c ContactCompany) time.Time {
	if c.LatestJobPosted == nil {
		return time.Time{}
	}
	return *c.LatestJobPosted
}

// SortCompanies orders the aggregated companies. The default is most
// contacts first; "name" and "company" are both alphabetical by
// company name; "recent" is latest job posting first, companies with
// no matched jobs last.
func SortCompanies(items []ContactCompany, key string) []ContactCompany {
	switch key {
	case SortName, SortCompany:
		sort.SliceStable(items, func(i, k int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[k].Name)
		})
	case SortRecent:
		sort.SliceStable(items, func(i, k int) bool {
			return latestPosted(items[i]).After(latestPosted(items[k]))
		})
	default:
		sort.SliceStable(items, func(i, k int) bool {
			return items[i].ContactCount > items[k].ContactCount
		})
	}
	return items
}

// ContactFilter is the recognized filter set for the contacts listing.
type ContactFilter struct {
	Query     string
	Seniority string
	Industry  string
	Location  string
	HasEmail  bool
	HasPhone  bool
}

// matchesLocation checks the contact's formatted city/state/country.
func matchesLocation(c models.CompanyContact, want string) bool {
	w := strings.ToLower(strings.TrimSpace(want))
	return strings.Contains(strings.ToLower(contactLocation(c)), w)
}

// FilterContacts drops contacts that don't match and then companies
// left with no contacts.
func FilterContacts(view ContactsView, f ContactFilter) ContactsView {
	out := ContactsView{Companies: []ContactCompany{}}
	q := strings.ToLower(strings.TrimSpace(f.Query))

	for _, company := range view.Companies {
		kept := ContactCompany{
			Website:         company.Website,
			Name:            company.Name,
			Industry:        company.Industry,
			Size:            company.Size,
			NewestAt:        company.NewestAt,
			JobCount:        company.JobCount,
			LatestJobTitle:  company.LatestJobTitle,
			LatestJobPosted: company.LatestJobPosted,
		}
		for _, c := range company.Contacts {
			if f.Seniority != "" && deref(c.SeniorityLevel) != f.Seniority {
				continue
			}
			if f.Industry != "" && !strings.Contains(strings.ToLower(deref(c.Industry)), strings.ToLower(f.Industry)) {
				continue
			}
			if f.Location != "" && !matchesLocation(c, f.Location) {
				continue
			}
			if f.HasEmail && deref(c.Email) == "" {
				continue
			}
			if f.HasPhone && deref(c.MobileNumber) == "" {
				continue
			}
			if q != "" {
				hay := strings.ToLower(c.DisplayName() + " " + deref(c.Email) + " " + deref(c.JobTitle) + " " + deref(c.CompanyName) + " " + company.Name)
				if !strings.Contains(hay, q) {
					continue
				}
			}
			kept.Contacts = append(kept.Contacts, c)
			kept.ContactCount++
		}
		if kept.ContactCount > 0 {
			out.Companies = append(out.Companies, kept)
			out.TotalContacts += kept.ContactCount
		}
	}
	return out
}

// LocationOptions returns the distinct formatted locations present,
// sorted.
func LocationOptions(items []models.CompanyContact) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range items {
		v := contactLocation(c)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// SeniorityOptions returns the distinct seniority levels present,
// ordered by rank.
func SeniorityOptions(items []models.CompanyContact) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range items {
		v := deref(c.SeniorityLevel)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, k int) bool {
		ri, ok1 := seniorityRank[out[i]]
		rk, ok2 := seniorityRank[out[k]]
		if !ok1 {
			ri = 999
		}
		if !ok2 {
			rk = 999
		}
		if ri != rk {
			return ri < rk
		}
		return out[i] < out[k]
	})
	return out
}
