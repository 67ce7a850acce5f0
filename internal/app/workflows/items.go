package workflows

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
)

// flexString tolerates scraped fields that arrive as either a JSON
// string or a number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// jobItem is one record of the job-scraper dataset.
type jobItem struct {
	ID                    string         `json:"id"`
	TrackingID            string         `json:"trackingId"`
	RefID                 string         `json:"refId"`
	Title                 string         `json:"title"`
	Link                  string         `json:"link"`
	ApplyURL              string         `json:"applyUrl"`
	DescriptionHTML       string         `json:"descriptionHtml"`
	DescriptionText       string         `json:"descriptionText"`
	CompanyName           string         `json:"companyName"`
	CompanyLinkedinURL    string         `json:"companyLinkedinUrl"`
	CompanyLogo           string         `json:"companyLogo"`
	CompanyWebsite        string         `json:"companyWebsite"`
	CompanySlogan         string         `json:"companySlogan"`
	CompanyDescription    string         `json:"companyDescription"`
	CompanyEmployeesCount *int           `json:"companyEmployeesCount"`
	Location              string         `json:"location"`
	Salary                string         `json:"salary"`
	SalaryInfo            []any          `json:"salaryInfo"`
	PostedAt              string         `json:"postedAt"`
	ApplicantsCount       flexString     `json:"applicantsCount"`
	Benefits              []any          `json:"benefits"`
	SeniorityLevel        string         `json:"seniorityLevel"`
	EmploymentType        string         `json:"employmentType"`
	JobFunction           string         `json:"jobFunction"`
	Industries            string         `json:"industries"`
	CompanyAddress        map[string]any `json:"companyAddress"`
	InputURL              string         `json:"inputUrl"`
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// mapJobItem converts a dataset record to a Job row. sanitize cleans
// the scraped description markup before it is stored.
func mapJobItem(item jobItem, sanitize func(string) string) (models.Job, error) {
	if item.ID == "" {
		return models.Job{}, fmt.Errorf("job item missing id (title %q)", item.Title)
	}

	j := models.Job{
		JobID:                 item.ID,
		TrackingID:            optStr(item.TrackingID),
		RefID:                 optStr(item.RefID),
		Title:                 item.Title,
		Link:                  optStr(item.Link),
		ApplyURL:              optStr(item.ApplyURL),
		DescriptionText:       optStr(item.DescriptionText),
		CompanyName:           optStr(item.CompanyName),
		CompanyLinkedinURL:    optStr(item.CompanyLinkedinURL),
		CompanyLogo:           optStr(item.CompanyLogo),
		CompanyWebsite:        optStr(item.CompanyWebsite),
		CompanySlogan:         optStr(item.CompanySlogan),
		CompanyDescription:    optStr(item.CompanyDescription),
		CompanyEmployeesCount: item.CompanyEmployeesCount,
		Location:              optStr(item.Location),
		Salary:                optStr(item.Salary),
		SalaryInfo:            item.SalaryInfo,
		ApplicantsCount:       optStr(string(item.ApplicantsCount)),
		Benefits:              item.Benefits,
		SeniorityLevel:        optStr(item.SeniorityLevel),
		EmploymentType:        optStr(item.EmploymentType),
		JobFunction:           optStr(item.JobFunction),
		Industries:            optStr(item.Industries),
		CompanyAddress:        item.CompanyAddress,
		InputURL:              optStr(item.InputURL),
	}

	if item.DescriptionHTML != "" && sanitize != nil {
		clean := sanitize(item.DescriptionHTML)
		j.DescriptionHTML = optStr(clean)
	} else {
		j.DescriptionHTML = optStr(item.DescriptionHTML)
	}

	if item.PostedAt != "" {
		if t, err := time.Parse("2006-01-02", item.PostedAt); err == nil {
			j.PostedAt = &t
		} else if t, err := time.Parse(time.RFC3339, item.PostedAt); err == nil {
			j.PostedAt = &t
		}
	}

	return j, nil
}

// contactItem is one record of the contact-enrichment dataset.
type contactItem struct {
	FirstName            string     `json:"first_name"`
	LastName             string     `json:"last_name"`
	FullName             string     `json:"full_name"`
	Email                string     `json:"email"`
	MobileNumber         flexString `json:"mobile_number"`
	PersonalEmail        string     `json:"personal_email"`
	JobTitle             string     `json:"job_title"`
	Headline             string     `json:"headline"`
	SeniorityLevel       string     `json:"seniority_level"`
	FunctionalLevel      string     `json:"functional_level"`
	Industry             string     `json:"industry"`
	Linkedin             string     `json:"linkedin"`
	City                 string     `json:"city"`
	State                string     `json:"state"`
	Country              string     `json:"country"`
	CompanyName          string     `json:"company_name"`
	CompanyLinkedin      string     `json:"company_linkedin"`
	CompanyLinkedinUID   string     `json:"company_linkedin_uid"`
	CompanyDomain        string     `json:"company_domain"`
	CompanyDescription   string     `json:"company_description"`
	CompanySlogan        string     `json:"company_slogan"`
	CompanySize          flexString `json:"company_size"`
	CompanyPhone         flexString `json:"company_phone"`
	CompanyAnnualRevenue flexString `json:"company_annual_revenue"`
	CompanyTotalFunding  flexString `json:"company_total_funding"`
	CompanyFoundedYear   flexString `json:"company_founded_year"`
	CompanyStreetAddress string     `json:"company_street_address"`
	CompanyFullAddress   string     `json:"company_full_address"`
	CompanyCity          string     `json:"company_city"`
	CompanyState         string     `json:"company_state"`
	CompanyCountry       string     `json:"company_country"`
	CompanyPostalCode    flexString `json:"company_postal_code"`
	Keywords             string     `json:"keywords"`
	CompanyTechnologies  string     `json:"company_technologies"`
}

func optInt(f flexString) *int {
	if f == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(f)))
	if err != nil {
		return nil
	}
	return &n
}

func numericClean(f flexString) *float64 {
	if f == "" {
		return nil
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, string(f))
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// mapContactItem converts a dataset record to a contact row. website is
// the company website that triggered the enrichment; it becomes the
// read-time association key.
func mapContactItem(item contactItem, website string) models.CompanyContact {
	return models.CompanyContact{
		FirstName:               optStr(item.FirstName),
		LastName:                optStr(item.LastName),
		FullName:                optStr(item.FullName),
		Email:                   optStr(item.Email),
		MobileNumber:            optStr(string(item.MobileNumber)),
		PersonalEmail:           optStr(item.PersonalEmail),
		JobTitle:                optStr(item.JobTitle),
		Headline:                optStr(item.Headline),
		SeniorityLevel:          optStr(item.SeniorityLevel),
		FunctionalLevel:         optStr(item.FunctionalLevel),
		Industry:                optStr(item.Industry),
		Linkedin:                optStr(item.Linkedin),
		City:                    optStr(item.City),
		State:                   optStr(item.State),
		Country:                 optStr(item.Country),
		CompanyName:             optStr(item.CompanyName),
		CompanyWebsite:          website,
		CompanyLinkedin:         optStr(item.CompanyLinkedin),
		CompanyLinkedinUID:      optStr(item.CompanyLinkedinUID),
		CompanyDomain:           optStr(item.CompanyDomain),
		CompanyDescription:      optStr(item.CompanyDescription),
		CompanySlogan:           optStr(item.CompanySlogan),
		CompanySize:             optInt(item.CompanySize),
		CompanyPhone:            optStr(string(item.CompanyPhone)),
		CompanyAnnualRevenue:    optStr(string(item.CompanyAnnualRevenue)),
		CompanyAnnualRevenueNum: numericClean(item.CompanyAnnualRevenue),
		CompanyTotalFunding:     optStr(string(item.CompanyTotalFunding)),
		CompanyTotalFundingNum:  numericClean(item.CompanyTotalFunding),
		CompanyFoundedYear:      optInt(item.CompanyFoundedYear),
		CompanyStreetAddress:    optStr(item.CompanyStreetAddress),
		CompanyFullAddress:      optStr(item.CompanyFullAddress),
		CompanyCity:             optStr(item.CompanyCity),
		CompanyState:            optStr(item.CompanyState),
		CompanyCountry:          optStr(item.CompanyCountry),
		CompanyPostalCode:       optStr(string(item.CompanyPostalCode)),
		Keywords:                optStr(item.Keywords),
		CompanyTechnologies:     optStr(item.CompanyTechnologies),
	}
}

// BuildSearchURL builds the job-search URL the scraper actor crawls.
func BuildSearchURL(term string) string {
	return "https://www.linkedin.com/jobs/search/?keywords=" + url.QueryEscape(term) + "&position=1&pageNum=10"
}

// EnrichmentDomain reduces a company website to the bare domain the
// enrichment actor expects. A leading "www." is stripped.
func EnrichmentDomain(website string) (string, error) {
	raw := strings.TrimSpace(website)
	if raw == "" {
		return "", fmt.Errorf("empty company website")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "", fmt.Errorf("cannot derive domain from %q", website)
	}
	return strings.TrimPrefix(u.Hostname(), "www."), nil
}
