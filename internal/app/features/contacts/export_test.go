package contacts

import (
	"strings"
	"testing"

	"github.com/TurtleTaco/lead-explorer/internal/testutil"
)

func TestExportCSVShape(t *testing.T) {
	view := GroupContactsByCompany(pool())
	counts := map[string]int{"https://acme.example": 3}

	body := ExportCSV(view, counts)
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")

	// Header plus one row per contact.
	if len(lines) != 1+view.TotalContacts {
		t.Fatalf("got %d lines, want %d", len(lines), 1+view.TotalContacts)
	}

	// Every line has exactly 11 fields and every field is quoted.
	for n, line := range lines {
		fields := strings.Split(line, `","`)
		if len(fields) != 11 {
			t.Errorf("line %d has %d fields: %q", n, len(fields), line)
		}
		if !strings.HasPrefix(line, `"`) || !strings.HasSuffix(line, `"`) {
			t.Errorf("line %d not fully quoted: %q", n, line)
		}
	}

	if !strings.HasPrefix(lines[0], `"Full Name","Email","Phone"`) {
		t.Errorf("header = %q", lines[0])
	}

	// Job counts flow through; unenriched companies export 0.
	if !strings.Contains(body, `"3"`) {
		t.Error("acme job count missing")
	}
	if !strings.Contains(body, `"0"`) {
		t.Error("missing zero job count for company without jobs")
	}
}

func TestCSVFieldEscaping(t *testing.T) {
	got := csvField(`He said "hi", twice`)
	want := `"He said ""hi"", twice"`
	if got != want {
		t.Errorf("csvField = %q, want %q", got, want)
	}

	got = csvField("line one\nline two\r\nthree")
	if strings.ContainsAny(got, "\n\r") {
		t.Errorf("newlines not flattened: %q", got)
	}
}

func TestExportCSVEmbeddedCommaStaysInField(t *testing.T) {
	items := pool()[:1]
	items[0].JobTitle = testutil.Ptr("VP, Engineering")

	body := ExportCSV(GroupContactsByCompany(items), nil)
	if !strings.Contains(body, `"VP, Engineering"`) {
		t.Errorf("comma-bearing field not preserved: %q", body)
	}
}

func TestBuildStatistics(t *testing.T) {
	items := pool()
	items[0].Industry = testutil.Ptr("Software, Fintech")
	items[1].Industry = testutil.Ptr("Software")
	items[2].CompanySize = testutil.Ptr(120)
	items[3].CompanySize = testutil.Ptr(7000)

	stats := BuildStatistics(items)

	if stats.TotalContacts != 4 || stats.TotalCompanies != 2 {
		t.Errorf("totals: %+v", stats)
	}
	if len(stats.TopIndustries) == 0 || stats.TopIndustries[0].Industry != "Software" {
		t.Errorf("top industries = %+v", stats.TopIndustries)
	}

	bucketByLabel := map[string]int{}
	for _, b := range stats.SizeBuckets {
		bucketByLabel[b.Label] = b.Count
	}
	if bucketByLabel["50-200"] != 1 {
		t.Errorf("50-200 bucket = %d, want 1", bucketByLabel["50-200"])
	}
	if bucketByLabel["5000+"] != 1 {
		t.Errorf("5000+ bucket = %d, want 1", bucketByLabel["5000+"])
	}
}
