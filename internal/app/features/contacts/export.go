package contacts

import (
	"strconv"
	"strings"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
)

// csvHeader is the fixed column set of the contact export.
var csvHeader = []string{
	"Full Name", "Email", "Phone", "Job Title", "Company", "Company Website",
	"Location", "Seniority", "LinkedIn", "Industry", "Job Count",
}

// csvField quotes one value. Every field is quoted, embedded quotes are
// doubled, and newlines are flattened to spaces so a row is always one
// line. encoding/csv quotes conditionally, which breaks consumers that
// expect the uniform format, so the row is built by hand.
func csvField(v string) string {
	v = strings.ReplaceAll(v, "\r\n", " ")
	v = strings.ReplaceAll(v, "\n", " ")
	v = strings.ReplaceAll(v, "\r", " ")
	v = strings.ReplaceAll(v, `"`, `""`)
	return `"` + v + `"`
}

func csvRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = csvField(f)
	}
	return strings.Join(quoted, ",")
}

func contactLocation(c models.CompanyContact) string {
	var parts []string
	for _, p := range []*string{c.City, c.State, c.Country} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, ", ")
}

func contactPhone(c models.CompanyContact) string {
	if v := deref(c.MobileNumber); v != "" {
		return v
	}
	return deref(c.CompanyPhone)
}

// ExportCSV flattens the aggregated companies into the fixed 11-column
// export: header plus one row per contact. jobCounts maps a company
// website to its open-role count; missing entries export as 0.
func ExportCSV(view ContactsView, jobCounts map[string]int) string {
	var b strings.Builder
	b.WriteString(csvRow(csvHeader))
	b.WriteString("\n")

	for _, company := range view.Companies {
		jobs := jobCounts[company.Website]
		for _, c := range company.Contacts {
			row := []string{
				c.DisplayName(),
				deref(c.Email),
				contactPhone(c),
				deref(c.JobTitle),
				company.Name,
				company.Website,
				contactLocation(c),
				deref(c.SeniorityLevel),
				deref(c.Linkedin),
				deref(c.Industry),
				strconv.Itoa(jobs),
			}
			b.WriteString(csvRow(row))
			b.WriteString("\n")
		}
	}
	return b.String()
}
