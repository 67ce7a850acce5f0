package dashboard

import (
	"testing"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/TurtleTaco/lead-explorer/internal/testutil"
)

func TestBuildJobStatisticsEmpty(t *testing.T) {
	stats := BuildJobStatistics(nil)
	if stats.TotalJobs != 0 {
		t.Errorf("total = %d, want 0", stats.TotalJobs)
	}
	if stats.Locations == nil || stats.TopIndustries == nil || stats.SizeBuckets == nil {
		t.Error("distributions must be empty slices, not nil")
	}
	if len(stats.SizeBuckets) != 7 {
		t.Errorf("buckets = %d, want 7", len(stats.SizeBuckets))
	}
}

func TestBuildJobStatistics(t *testing.T) {
	sf := testutil.Ptr("San Francisco, CA")
	remote := testutil.Ptr("Remote")

	a := testutil.SampleJob("j1", "Engineer", "Acme", "https://acme.example")
	a.Location = sf
	a.Industries = testutil.Ptr("Software, Fintech")
	a.CompanyEmployeesCount = testutil.Ptr(120)

	b := testutil.SampleJob("j2", "Designer", "Acme", "https://acme.example")
	b.Location = sf
	b.Industries = testutil.Ptr("Software")

	c := testutil.SampleJob("j3", "Analyst", "Beta", "https://beta.example")
	c.Location = remote
	c.Industries = testutil.Ptr("Retail")
	c.CompanyEmployeesCount = testutil.Ptr(5000)

	stats := BuildJobStatistics([]models.Job{a, b, c})

	if stats.TotalJobs != 3 {
		t.Errorf("total = %d, want 3", stats.TotalJobs)
	}

	if len(stats.Locations) != 2 || stats.Locations[0].Location != "San Francisco, CA" || stats.Locations[0].Count != 2 {
		t.Errorf("locations = %+v", stats.Locations)
	}

	if len(stats.TopIndustries) == 0 || stats.TopIndustries[0].Industry != "Software" || stats.TopIndustries[0].Count != 2 {
		t.Errorf("industries = %+v", stats.TopIndustries)
	}

	// 120 falls in 50-200; 5000 in 5000+ (bands are [min, max)).
	for _, bucket := range stats.SizeBuckets {
		switch bucket.Label {
		case "50-200":
			if bucket.Count != 1 {
				t.Errorf("bucket %s = %d, want 1", bucket.Label, bucket.Count)
			}
		case "5000+":
			if bucket.Count != 1 {
				t.Errorf("bucket %s = %d, want 1", bucket.Label, bucket.Count)
			}
		case "1000-5000":
			if bucket.Count != 0 {
				t.Errorf("bucket %s = %d, want 0", bucket.Label, bucket.Count)
			}
		}
	}
}

func TestBuildJobStatisticsBackfillsCompanySize(t *testing.T) {
	a := testutil.SampleJob("j1", "Engineer", "Acme", "https://acme.example")
	b := testutil.SampleJob("j2", "Designer", "Acme", "https://acme.example")
	b.CompanyEmployeesCount = testutil.Ptr(30)

	stats := BuildJobStatistics([]models.Job{a, b})

	// The later job supplies the headcount the first lacked; the
	// company is still counted once.
	for _, bucket := range stats.SizeBuckets {
		if bucket.Label == "10-50" && bucket.Count != 1 {
			t.Errorf("bucket 10-50 = %d, want 1", bucket.Count)
		}
	}
}
