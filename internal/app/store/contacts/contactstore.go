// Package contacts persists enriched contact rows. Inserts are
// per-row; a malformed record is logged and skipped rather than failing
// the whole enrichment run.
package contacts

import (
	"context"
	"fmt"

	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func New(pool *pgxpool.Pool, logger *zap.Logger) *Store {
	return &Store{pool: pool, logger: logger}
}

const contactCols = `id, first_name, last_name, full_name, email, mobile_number, personal_email,
	job_title, headline, seniority_level, functional_level, industry, linkedin,
	city, state, country,
	company_name, company_website, company_linkedin, company_linkedin_uid, company_domain,
	company_description, company_slogan, company_size, company_phone,
	company_annual_revenue, company_annual_revenue_clean,
	company_total_funding, company_total_funding_clean,
	company_founded_year, company_street_address, company_full_address,
	company_city, company_state, company_country, company_postal_code,
	keywords, company_technologies, created_at, updated_at`

const insertSQL = `INSERT INTO company_contacts (
	first_name, last_name, full_name, email, mobile_number, personal_email,
	job_title, headline, seniority_level, functional_level, industry, linkedin,
	city, state, country,
	company_name, company_website, company_linkedin, company_linkedin_uid, company_domain,
	company_description, company_slogan, company_size, company_phone,
	company_annual_revenue, company_annual_revenue_clean,
	company_total_funding, company_total_funding_clean,
	company_founded_year, company_street_address, company_full_address,
	company_city, company_state, company_country, company_postal_code,
	keywords, company_technologies
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
	$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37)`

// InsertMany writes contacts one row at a time. Rows that fail to
// insert are logged and skipped; the returned counts let the caller
// report partial success.
func (s *Store) InsertMany(ctx context.Context, items []models.CompanyContact) (inserted, skipped int) {
	for _, c := range items {
		_, err := s.pool.Exec(ctx, insertSQL,
			c.FirstName, c.LastName, c.FullName, c.Email, c.MobileNumber, c.PersonalEmail,
			c.JobTitle, c.Headline, c.SeniorityLevel, c.FunctionalLevel, c.Industry, c.Linkedin,
			c.City, c.State, c.Country,
			c.CompanyName, c.CompanyWebsite, c.CompanyLinkedin, c.CompanyLinkedinUID, c.CompanyDomain,
			c.CompanyDescription, c.CompanySlogan, c.CompanySize, c.CompanyPhone,
			c.CompanyAnnualRevenue, c.CompanyAnnualRevenueNum,
			c.CompanyTotalFunding, c.CompanyTotalFundingNum,
			c.CompanyFoundedYear, c.CompanyStreetAddress, c.CompanyFullAddress,
			c.CompanyCity, c.CompanyState, c.CompanyCountry, c.CompanyPostalCode,
			c.Keywords, c.CompanyTechnologies)
		if err != nil {
			skipped++
			if s.logger != nil {
				s.logger.Warn("skipping contact row",
					zap.String("company_website", c.CompanyWebsite),
					zap.Error(err))
			}
			continue
		}
		inserted++
	}
	return inserted, skipped
}

func scanContact(rows pgx.Rows) (models.CompanyContact, error) {
	var c models.CompanyContact
	err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.FullName, &c.Email, &c.MobileNumber,
		&c.PersonalEmail, &c.JobTitle, &c.Headline, &c.SeniorityLevel, &c.FunctionalLevel,
		&c.Industry, &c.Linkedin, &c.City, &c.State, &c.Country,
		&c.CompanyName, &c.CompanyWebsite, &c.CompanyLinkedin, &c.CompanyLinkedinUID,
		&c.CompanyDomain, &c.CompanyDescription, &c.CompanySlogan, &c.CompanySize,
		&c.CompanyPhone, &c.CompanyAnnualRevenue, &c.CompanyAnnualRevenueNum,
		&c.CompanyTotalFunding, &c.CompanyTotalFundingNum, &c.CompanyFoundedYear,
		&c.CompanyStreetAddress, &c.CompanyFullAddress, &c.CompanyCity, &c.CompanyState,
		&c.CompanyCountry, &c.CompanyPostalCode, &c.Keywords, &c.CompanyTechnologies,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (s *Store) collect(rows pgx.Rows) ([]models.CompanyContact, error) {
	defer rows.Close()
	var out []models.CompanyContact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListByWebsites returns contacts whose company_website matches one of
// the given websites. This is the only link between contacts and jobs.
func (s *Store) ListByWebsites(ctx context.Context, websites []string) ([]models.CompanyContact, error) {
	if len(websites) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+contactCols+` FROM company_contacts
		 WHERE company_website = ANY($1)
		 ORDER BY company_website, id`, websites)
	if err != nil {
		return nil, fmt.Errorf("list contacts by websites: %w", err)
	}
	return s.collect(rows)
}

// CountByWebsite reports how many contacts exist for a single website.
// Used to tell "fetch contacts" apart from "contacts already fetched".
func (s *Store) CountByWebsite(ctx context.Context, website string) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM company_contacts WHERE company_website = $1`, website).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}
