package leads

import (
	"testing"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/TurtleTaco/lead-explorer/internal/testutil"
)

func jobWith(id, name, website string, employees *int) models.Job {
	j := testutil.SampleJob(id, "Role "+id, name, website)
	if name == "" {
		j.CompanyName = nil
	}
	if website == "" {
		j.CompanyWebsite = nil
	}
	j.CompanyEmployeesCount = employees
	return j
}

func TestGroupJobsByCompanyPartition(t *testing.T) {
	n := func(v int) *int { return &v }
	input := []models.Job{
		jobWith("1", "Acme", "https://acme.example", n(100)),
		jobWith("2", "Acme", "https://acme.example", nil),
		jobWith("3", "Beta", "https://beta.example", n(50)),
		jobWith("4", "", "", nil),
		jobWith("5", "", "", nil),
		jobWith("6", "NoSite Co", "", nil),
	}

	groups := GroupJobsByCompany(input)

	// Every job lands in exactly one group and the counts sum to the
	// input length.
	total := 0
	for _, g := range groups {
		if g.JobCount != len(g.Jobs) {
			t.Errorf("group %q count %d != len(jobs) %d", g.Name, g.JobCount, len(g.Jobs))
		}
		total += g.JobCount
	}
	if total != len(input) {
		t.Fatalf("group counts sum to %d, want %d", total, len(input))
	}

	if len(groups) != 4 {
		t.Fatalf("got %d groups, want 4: %+v", len(groups), groups)
	}

	byName := map[string]CompanyLead{}
	for _, g := range groups {
		byName[g.Name] = g
	}
	if byName["Acme"].JobCount != 2 {
		t.Errorf("Acme count = %d, want 2", byName["Acme"].JobCount)
	}
	if byName[UnknownCompany].JobCount != 2 {
		t.Errorf("unknown-company count = %d, want 2", byName[UnknownCompany].JobCount)
	}
	if byName["NoSite Co"].JobCount != 1 {
		t.Errorf("name-keyed company count = %d, want 1", byName["NoSite Co"].JobCount)
	}

	// A later job fills in the employees count the first job lacked.
	if e := byName["Acme"].EmployeesCount; e == nil || *e != 100 {
		t.Errorf("Acme employees = %v, want 100", e)
	}
}

func TestSortLeadsCompanySizeNonIncreasing(t *testing.T) {
	n := func(v int) *int { return &v }
	leads := []CompanyLead{
		{Name: "A", EmployeesCount: n(10)},
		{Name: "B"},
		{Name: "C", EmployeesCount: n(5000)},
		{Name: "D", EmployeesCount: n(300)},
		{Name: "E"},
	}

	got := SortLeads(leads, SortCompanySize)

	prev := int(^uint(0) >> 1)
	for _, l := range got {
		cur := 0
		if l.EmployeesCount != nil {
			cur = *l.EmployeesCount
		}
		if cur > prev {
			t.Fatalf("sequence not non-increasing: %d after %d", cur, prev)
		}
		prev = cur
	}
	if got[0].Name != "C" {
		t.Errorf("largest company first, got %q", got[0].Name)
	}
}

func TestSortLeadsDefault(t *testing.T) {
	leads := []CompanyLead{
		{Name: "A", JobCount: 1},
		{Name: "B", JobCount: 7},
		{Name: "C", JobCount: 3},
	}
	got := SortLeads(leads, "")
	if got[0].Name != "B" || got[1].Name != "C" || got[2].Name != "A" {
		t.Errorf("default sort = %v", []string{got[0].Name, got[1].Name, got[2].Name})
	}
}

func TestFilterLeads(t *testing.T) {
	n := func(v int) *int { return &v }
	leads := []CompanyLead{
		{Name: "Acme", Industry: "Software, Fintech", EmployeesCount: n(100)},
		{Name: "Beta", Industry: "Retail", EmployeesCount: n(5000), HasContacts: true},
		{Name: "Gamma", Industry: "Software"},
	}

	got := FilterLeads(leads, LeadFilter{Industry: "Software"})
	if len(got) != 2 {
		t.Errorf("industry filter got %d, want 2", len(got))
	}

	// Partial, case-insensitive matches count too.
	got = FilterLeads(leads, LeadFilter{Industry: "soft"})
	if len(got) != 2 {
		t.Errorf("industry substring filter got %d, want 2", len(got))
	}

	got = FilterLeads(leads, LeadFilter{MinEmployees: 50, MaxEmployees: 200})
	if len(got) != 1 || got[0].Name != "Acme" {
		t.Errorf("size range filter got %+v", got)
	}

	got = FilterLeads(leads, LeadFilter{HasContacts: true})
	if len(got) != 1 || got[0].Name != "Beta" {
		t.Errorf("has-contacts filter got %+v", got)
	}

	got = FilterLeads(leads, LeadFilter{Query: "acme"})
	if len(got) != 1 || got[0].Name != "Acme" {
		t.Errorf("query filter got %+v", got)
	}
}

func TestFilterLeadsLocation(t *testing.T) {
	loc := func(v string) *string { return &v }
	leads := []CompanyLead{
		{Name: "Acme", Jobs: []models.Job{{Location: loc("Berlin, Germany")}}},
		{Name: "Beta", Jobs: []models.Job{{Location: loc("Remote")}, {Location: loc("Austin, TX")}}},
	}

	got := FilterLeads(leads, LeadFilter{Location: "berlin"})
	if len(got) != 1 || got[0].Name != "Acme" {
		t.Errorf("location filter got %+v", got)
	}

	// Any job in the group can match, not just the first.
	got = FilterLeads(leads, LeadFilter{Location: "austin"})
	if len(got) != 1 || got[0].Name != "Beta" {
		t.Errorf("location filter got %+v", got)
	}
}

func TestIndustryOptions(t *testing.T) {
	leads := []CompanyLead{
		{Industry: "Software, Fintech"},
		{Industry: " Software ,Retail"},
		{Industry: ""},
	}
	got := IndustryOptions(leads)
	want := []string{"Fintech", "Retail", "Software"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("options[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
