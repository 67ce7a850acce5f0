package dashboard

import (
	"sort"
	"strings"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
)

// LocationCount is one slice of the job-location distribution.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// IndustryCount is one slice of the industry distribution.
type IndustryCount struct {
	Industry string `json:"industry"`
	Count    int    `json:"count"`
}

// SizeBucket is one company-headcount band.
type SizeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// JobStatistics summarizes the org's scraped jobs for the dashboard
// charts.
type JobStatistics struct {
	TotalJobs     int             `json:"total_jobs"`
	Locations     []LocationCount `json:"locations"`
	TopIndustries []IndustryCount `json:"top_industries"`
	SizeBuckets   []SizeBucket    `json:"size_buckets"`
}

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

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BuildJobStatistics computes the distributions over the org's full job
// batch. Headcount buckets count distinct companies (keyed like the
// leads grouping), not individual postings.
func BuildJobStatistics(items []models.Job) JobStatistics {
	stats := JobStatistics{
		Locations:     []LocationCount{},
		TopIndustries: []IndustryCount{},
		SizeBuckets:   []SizeBucket{},
	}

	locations := map[string]int{}
	industries := map[string]int{}
	companies := map[string]*int{}

	for _, j := range items {
		stats.TotalJobs++

		if loc := deref(j.Location); loc != "" {
			locations[loc]++
		}

		for _, part := range strings.Split(deref(j.Industries), ",") {
			v := strings.TrimSpace(part)
			if v != "" {
				industries[v]++
			}
		}

		key := j.CompanyKey()
		if _, ok := companies[key]; !ok {
			companies[key] = j.CompanyEmployeesCount
		} else if companies[key] == nil && j.CompanyEmployeesCount != nil {
			companies[key] = j.CompanyEmployeesCount
		}
	}

	for loc, count := range locations {
		stats.Locations = append(stats.Locations, LocationCount{Location: loc, Count: count})
	}
	sort.SliceStable(stats.Locations, func(i, k int) bool {
		if stats.Locations[i].Count != stats.Locations[k].Count {
			return stats.Locations[i].Count > stats.Locations[k].Count
		}
		return stats.Locations[i].Location < stats.Locations[k].Location
	})

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
