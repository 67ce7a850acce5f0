package contacts

import (
	"sort"
	"strings"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
)

// IndustryCount is one slice of the industry distribution.
type IndustryCount struct {
	Industry string `json:"industry"`
	Count    int    `json:"count"`
}

// SizeBucket is one employee-count band.
type SizeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Statistics summarizes the org's enriched contact pool.
type Statistics struct {
	TotalContacts  int             `json:"total_contacts"`
	TotalCompanies int             `json:"total_companies"`
	WithEmail      int             `json:"with_email"`
	WithPhone      int             `json:"with_phone"`
	TopIndustries  []IndustryCount `json:"top_industries"`
	SizeBuckets    []SizeBucket    `json:"size_buckets"`
}

// topIndustriesLimit caps the industry distribution.
const topIndustriesLimit = 20

var sizeBands = []struct {
	label    string
	min, max int
}{
	{"1-10", 1, 10},
	{"10-50", 10, 50},
	{"50-200", 50, 200},
	{"200-500", 200, 500},
	{"500-1000", 500, 1000},
	{"1000-5000", 1000, 5000},
	{"5000+", 5000, 1 << 30},
}

// BuildStatistics computes the contact-pool summary shown on the
// contacts page.
func BuildStatistics(items []models.CompanyContact) Statistics {
	stats := Statistics{
		TopIndustries: []IndustryCount{},
		SizeBuckets:   []SizeBucket{},
	}

	industries := map[string]int{}
	companies := map[string]*int{}

	for _, c := range items {
		stats.TotalContacts++
		if deref(c.Email) != "" {
			stats.WithEmail++
		}
		if deref(c.MobileNumber) != "" || deref(c.CompanyPhone) != "" {
			stats.WithPhone++
		}

		for _, part := range strings.Split(deref(c.Industry), ",") {
			v := strings.TrimSpace(part)
			if v != "" {
				industries[v]++
			}
		}

		if _, ok := companies[c.CompanyWebsite]; !ok {
			companies[c.CompanyWebsite] = c.CompanySize
		} else if companies[c.CompanyWebsite] == nil && c.CompanySize != nil {
			companies[c.CompanyWebsite] = c.CompanySize
		}
	}

	stats.TotalCompanies = len(companies)

	for industry, count := range industries {
		stats.TopIndustries = append(stats.TopIndustries, IndustryCount{Industry: industry, Count: count})
	}
	sort.SliceStable(stats.TopIndustries, func(i, k int) bool {
		if stats.TopIndustries[i].Count != stats.TopIndustries[k].Count {
			return stats.TopIndustries[i].Count > stats.TopIndustries[k].Count
		}
		return stats.TopIndustries[i].Industry < stats.TopIndustries[k].Industry
	})
	if len(stats.TopIndustries) > topIndustriesLimit {
		stats.TopIndustries = stats.TopIndustries[:topIndustriesLimit]
	}

	for _, band := range sizeBands {
		bucket := SizeBucket{Label: band.label}
		for _, size := range companies {
			if size == nil {
				continue
			}
			if *size >= band.min && *size < band.max {
				bucket.Count++
			}
		}
		stats.SizeBuckets = append(stats.SizeBuckets, bucket)
	}

	return stats
}
