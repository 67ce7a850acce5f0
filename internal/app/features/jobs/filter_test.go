package jobs

import (
	"testing"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/TurtleTaco/lead-explorer/internal/testutil"
)

func batch() []models.Job {
	return []models.Job{
		testutil.SampleJob("1", "Backend Engineer", "Acme", "https://acme.example"),
		testutil.SampleJob("2", "Frontend Engineer", "Beta", "https://beta.example"),
		testutil.SampleJob("3", "Designer", "Acme", "https://acme.example"),
		testutil.SampleJob("4", "Data Engineer", "Gamma", "https://gamma.example"),
	}
}

func TestFilterJobsByCompany(t *testing.T) {
	got := FilterJobs(batch(), "", "Acme")
	if len(got) != 2 {
		t.Fatalf("got %d jobs, want 2", len(got))
	}
	for _, j := range got {
		if *j.CompanyName != "Acme" {
			t.Errorf("unexpected company %q", *j.CompanyName)
		}
	}
}

func TestFilterJobsFreeText(t *testing.T) {
	got := FilterJobs(batch(), "engineer", "")
	if len(got) != 3 {
		t.Fatalf("got %d jobs, want 3", len(got))
	}

	got = FilterJobs(batch(), "ENGINEER", "Beta")
	if len(got) != 1 || got[0].JobID != "2" {
		t.Errorf("combined filter got %+v", got)
	}
}

func TestSortJobs(t *testing.T) {
	got := SortJobs(batch(), SortTitle)
	if got[0].Title != "Backend Engineer" || got[len(got)-1].Title != "Frontend Engineer" {
		t.Errorf("title sort order wrong: first=%q last=%q", got[0].Title, got[len(got)-1].Title)
	}

	got = SortJobs(batch(), SortCompany)
	if *got[0].CompanyName != "Acme" || *got[len(got)-1].CompanyName != "Gamma" {
		t.Errorf("company sort order wrong")
	}

	// Unknown key leaves the recency order untouched.
	got = SortJobs(batch(), "bogus")
	if got[0].JobID != "1" {
		t.Errorf("unknown sort key reordered the batch")
	}
}

func TestCompanyOptions(t *testing.T) {
	got := CompanyOptions(batch())
	want := []string{"Acme", "Beta", "Gamma"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("options[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
