package models

import "time"

// CompanyContact is an enriched contact record. There is no foreign key
// to Job or Search; company association is a read-time match on
// CompanyWebsite, which is set to the website that triggered the
// enrichment run.
type CompanyContact struct {
	ID int64

	FirstName     *string
	LastName      *string
	FullName      *string
	Email         *string
	MobileNumber  *string
	PersonalEmail *string

	JobTitle        *string
	Headline        *string
	SeniorityLevel  *string
	FunctionalLevel *string
	Industry        *string
	Linkedin        *string

	City    *string
	State   *string
	Country *string

	CompanyName             *string
	CompanyWebsite          string
	CompanyLinkedin         *string
	CompanyLinkedinUID      *string
	CompanyDomain           *string
	CompanyDescription      *string
	CompanySlogan           *string
	CompanySize             *int
	CompanyPhone            *string
	CompanyAnnualRevenue    *string
	CompanyAnnualRevenueNum *float64
	CompanyTotalFunding     *string
	CompanyTotalFundingNum  *float64
	CompanyFoundedYear      *int
	CompanyStreetAddress    *string
	CompanyFullAddress      *string
	CompanyCity             *string
	CompanyState            *string
	CompanyCountry          *string
	CompanyPostalCode       *string

	Keywords            *string
	CompanyTechnologies *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns FullName when present, otherwise first+last.
func (c CompanyContact) DisplayName() string {
	if c.FullName != nil && *c.FullName != "" {
		return *c.FullName
	}
	name := ""
	if c.FirstName != nil {
		name = *c.FirstName
	}
	if c.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *c.LastName
	}
	return name
}
