package contacts

import (
	"testing"
	"time"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/TurtleTaco/lead-explorer/internal/testutil"
)

func pool() []models.CompanyContact {
	return []models.CompanyContact{
		testutil.SampleContact("Eve Entry", "https://acme.example", "Entry"),
		testutil.SampleContact("Cara Chief", "https://acme.example", "C-Suite"),
		testutil.SampleContact("Mo Manager", "https://acme.example", "Manager"),
		testutil.SampleContact("Vic VP", "https://beta.example", "VP"),
	}
}

func TestGroupContactsByCompanyEmpty(t *testing.T) {
	view := GroupContactsByCompany(nil)
	if view.Companies == nil {
		t.Fatal("companies must be an empty slice, not nil")
	}
	if len(view.Companies) != 0 || view.TotalContacts != 0 {
		t.Errorf("empty input gave %+v", view)
	}
}

func TestGroupContactsByCompany(t *testing.T) {
	view := GroupContactsByCompany(pool())

	if view.TotalContacts != 4 {
		t.Errorf("total = %d, want 4", view.TotalContacts)
	}
	if len(view.Companies) != 2 {
		t.Fatalf("companies = %d, want 2", len(view.Companies))
	}

	acme := view.Companies[0]
	if acme.Website != "https://acme.example" || acme.ContactCount != 3 {
		t.Fatalf("first company: %+v", acme)
	}

	// Seniority rank ordering within a company, most senior first.
	want := []string{"C-Suite", "Manager", "Entry"}
	for i, c := range acme.Contacts {
		if *c.SeniorityLevel != want[i] {
			t.Errorf("contact %d seniority = %q, want %q", i, *c.SeniorityLevel, want[i])
		}
	}
}

func TestSeniorityRankUnknownSinks(t *testing.T) {
	items := []models.CompanyContact{
		testutil.SampleContact("Zed Odd", "https://x.example", "Wizard"),
		testutil.SampleContact("Sue Senior", "https://x.example", "Senior"),
	}
	view := GroupContactsByCompany(items)
	first := view.Companies[0].Contacts[0]
	if *first.SeniorityLevel != "Senior" {
		t.Errorf("unlisted seniority should sort last, got %q first", *first.SeniorityLevel)
	}
}

func TestSortCompanies(t *testing.T) {
	now := time.Now()
	older := now.Add(-24 * time.Hour)
	companies := []ContactCompany{
		{Name: "Beta", ContactCount: 1, LatestJobPosted: &now},
		{Name: "Acme", ContactCount: 5, LatestJobPosted: &older},
		{Name: "Gamma", ContactCount: 3},
	}

	got := SortCompanies(append([]ContactCompany(nil), companies...), "")
	if got[0].Name != "Acme" {
		t.Errorf("default sort: most contacts first, got %q", got[0].Name)
	}

	got = SortCompanies(append([]ContactCompany(nil), companies...), SortName)
	if got[0].Name != "Acme" {
		t.Errorf("name sort got %q first", got[0].Name)
	}

	// Recent orders by the company's latest job posting; companies with
	// no matched jobs sink to the bottom.
	got = SortCompanies(append([]ContactCompany(nil), companies...), SortRecent)
	if got[0].Name != "Beta" || got[2].Name != "Gamma" {
		t.Errorf("recent sort got %v", []string{got[0].Name, got[1].Name, got[2].Name})
	}
}

func TestFilterContactsDropsEmptyCompanies(t *testing.T) {
	view := GroupContactsByCompany(pool())

	filtered := FilterContacts(view, ContactFilter{Seniority: "VP"})
	if len(filtered.Companies) != 1 || filtered.Companies[0].Website != "https://beta.example" {
		t.Fatalf("filtered = %+v", filtered.Companies)
	}
	if filtered.TotalContacts != 1 {
		t.Errorf("total = %d, want 1", filtered.TotalContacts)
	}
}

func TestFilterContactsHasEmail(t *testing.T) {
	items := pool()
	items[0].Email = nil

	view := FilterContacts(GroupContactsByCompany(items), ContactFilter{HasEmail: true})
	if view.TotalContacts != 3 {
		t.Errorf("total = %d, want 3", view.TotalContacts)
	}
}

func TestFilterContactsHasPhoneMobileOnly(t *testing.T) {
	items := pool()
	items[0].MobileNumber = testutil.Ptr("+1 555 0100")
	items[1].CompanyPhone = testutil.Ptr("+1 555 0199")

	// Only a mobile number counts; a company switchboard does not.
	view := FilterContacts(GroupContactsByCompany(items), ContactFilter{HasPhone: true})
	if view.TotalContacts != 1 || *view.Companies[0].Contacts[0].MobileNumber != "+1 555 0100" {
		t.Errorf("has-phone filter gave %+v", view)
	}
}

func TestFilterContactsQueryMatchesEmail(t *testing.T) {
	items := pool()
	items[0].Email = testutil.Ptr("jane.doe@acme.com")

	view := FilterContacts(GroupContactsByCompany(items), ContactFilter{Query: "jane.doe@acme.com"})
	if view.TotalContacts != 1 || *view.Companies[0].Contacts[0].Email != "jane.doe@acme.com" {
		t.Errorf("email query gave %+v", view)
	}
}

func TestFilterContactsIndustrySubstring(t *testing.T) {
	items := pool()
	items[0].Industry = testutil.Ptr("Computer Software")
	items[3].Industry = testutil.Ptr("Retail")

	view := FilterContacts(GroupContactsByCompany(items), ContactFilter{Industry: "software"})
	if view.TotalContacts != 1 || view.Companies[0].Website != "https://acme.example" {
		t.Errorf("industry filter gave %+v", view)
	}
}

func TestFilterContactsLocation(t *testing.T) {
	items := pool()
	items[0].City = testutil.Ptr("Berlin")
	items[0].Country = testutil.Ptr("Germany")
	items[3].City = testutil.Ptr("Austin")
	items[3].State = testutil.Ptr("TX")

	view := FilterContacts(GroupContactsByCompany(items), ContactFilter{Location: "germany"})
	if view.TotalContacts != 1 || view.Companies[0].Website != "https://acme.example" {
		t.Fatalf("location filter gave %+v", view)
	}

	view = FilterContacts(GroupContactsByCompany(items), ContactFilter{Location: "TX"})
	if view.TotalContacts != 1 || view.Companies[0].Website != "https://beta.example" {
		t.Fatalf("location filter gave %+v", view)
	}
}

func TestBuildJobInfoKeepsLatestPosting(t *testing.T) {
	older := testutil.SampleJob("j1", "Engineer", "Acme", "https://acme.example")
	newer := testutil.SampleJob("j2", "Staff Engineer", "Acme", "https://acme.example")
	newerPosted := older.PostedAt.Add(48 * time.Hour)
	newer.PostedAt = &newerPosted
	elsewhere := testutil.SampleJob("j3", "Analyst", "Beta", "https://beta.example")

	infos := BuildJobInfo([]models.Job{older, newer, elsewhere})

	acme := infos["https://acme.example"]
	if acme.Count != 2 || acme.LatestTitle != "Staff Engineer" {
		t.Errorf("acme info = %+v", acme)
	}
	if acme.LatestPosted == nil || !acme.LatestPosted.Equal(newerPosted) {
		t.Errorf("latest posted = %v, want %v", acme.LatestPosted, newerPosted)
	}

	view := AttachJobInfo(GroupContactsByCompany(pool()), infos)
	for _, company := range view.Companies {
		if company.Website == "https://acme.example" {
			if company.JobCount != 2 || company.LatestJobTitle != "Staff Engineer" {
				t.Errorf("attached info = %+v", company)
			}
		}
	}
}

func TestLocationOptions(t *testing.T) {
	items := pool()
	items[0].City = testutil.Ptr("Berlin")
	items[1].City = testutil.Ptr("Berlin")
	items[3].City = testutil.Ptr("Austin")
	items[3].State = testutil.Ptr("TX")

	got := LocationOptions(items)
	want := []string{"Austin, TX", "Berlin"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("options[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSeniorityOptionsOrderedByRank(t *testing.T) {
	got := SeniorityOptions(pool())
	want := []string{"C-Suite", "VP", "Manager", "Entry"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("options[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
