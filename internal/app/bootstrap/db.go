// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectDB establishes the Postgres pool and, when configured, the
// Redis client. Both connections are verified with a ping so bad
// configuration fails at startup.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	pool, err := pgxpool.New(ctx, appCfg.PostgresURL)
	if err != nil {
		return DBDeps{}, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return DBDeps{}, fmt.Errorf("postgres ping failed: %w", err)
	}
	logger.Info("connected to Postgres")

	deps := DBDeps{PG: pool}

	if appCfg.RedisURL != "" {
		opts, err := redis.ParseURL(appCfg.RedisURL)
		if err != nil {
			pool.Close()
			return DBDeps{}, fmt.Errorf("redis.ParseURL(%q): %w", appCfg.RedisURL, err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			pool.Close()
			return DBDeps{}, fmt.Errorf("redis ping failed: %w", err)
		}
		deps.Redis = rdb
		logger.Info("connected to Redis cache")
	}

	return deps, nil
}

// schemaStatements creates the LeadScout tables. Statements are
// idempotent so EnsureSchema can run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,

	`CREATE TABLE IF NOT EXISTS organizations (
		id SERIAL PRIMARY KEY,
		org_id VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255),
		created_by_user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_organizations_org_id ON organizations(org_id)`,

	`CREATE TABLE IF NOT EXISTS user_organizations (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		org_id INTEGER NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
		role VARCHAR(50) DEFAULT 'member',
		joined_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT unique_user_org UNIQUE(user_id, org_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_organizations_user_id ON user_organizations(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_organizations_org_id ON user_organizations(org_id)`,

	`CREATE TABLE IF NOT EXISTS searches (
		id SERIAL PRIMARY KEY,
		org_id INTEGER NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
		search_term VARCHAR(512) NOT NULL,
		source VARCHAR(255) DEFAULT 'linkedin-jobs-scraper',
		data_file_name VARCHAR(512),
		job_count INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		metadata JSONB DEFAULT '{}'::jsonb
	)`,
	`CREATE INDEX IF NOT EXISTS idx_searches_org_id ON searches(org_id)`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id SERIAL PRIMARY KEY,
		search_id INTEGER NOT NULL REFERENCES searches(id) ON DELETE CASCADE,
		job_id VARCHAR(255) NOT NULL,
		tracking_id VARCHAR(255),
		ref_id VARCHAR(255),
		title TEXT NOT NULL,
		link TEXT,
		apply_url TEXT,
		description_html TEXT,
		description_text TEXT,
		company_name VARCHAR(512),
		company_linkedin_url TEXT,
		company_logo TEXT,
		company_website TEXT,
		company_slogan TEXT,
		company_description TEXT,
		company_employees_count INTEGER,
		location VARCHAR(512),
		salary VARCHAR(255),
		salary_info JSONB DEFAULT '[]'::jsonb,
		posted_at DATE,
		applicants_count VARCHAR(50),
		benefits JSONB DEFAULT '[]'::jsonb,
		seniority_level VARCHAR(255),
		employment_type VARCHAR(255),
		job_function VARCHAR(512),
		industries VARCHAR(512),
		company_address JSONB,
		input_url TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT unique_job_per_search UNIQUE(search_id, job_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_search_id ON jobs(search_id)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_company_name ON jobs(company_name)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_posted_at ON jobs(posted_at)`,

	`CREATE TABLE IF NOT EXISTS company_contacts (
		id SERIAL PRIMARY KEY,
		first_name VARCHAR(255),
		last_name VARCHAR(255),
		full_name VARCHAR(512),
		email VARCHAR(255),
		mobile_number VARCHAR(100),
		personal_email VARCHAR(255),
		job_title VARCHAR(512),
		headline TEXT,
		seniority_level VARCHAR(255),
		functional_level VARCHAR(255),
		industry VARCHAR(512),
		linkedin TEXT,
		city VARCHAR(255),
		state VARCHAR(255),
		country VARCHAR(255),
		company_name VARCHAR(512),
		company_website TEXT NOT NULL,
		company_linkedin TEXT,
		company_linkedin_uid VARCHAR(255),
		company_domain VARCHAR(255),
		company_description TEXT,
		company_slogan TEXT,
		company_size INTEGER,
		company_phone VARCHAR(100),
		company_annual_revenue VARCHAR(100),
		company_annual_revenue_clean NUMERIC,
		company_total_funding VARCHAR(100),
		company_total_funding_clean NUMERIC,
		company_founded_year INTEGER,
		company_street_address TEXT,
		company_full_address TEXT,
		company_city VARCHAR(255),
		company_state VARCHAR(255),
		company_country VARCHAR(255),
		company_postal_code VARCHAR(50),
		keywords TEXT,
		company_technologies TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_company_contacts_website ON company_contacts(company_website)`,
}

// EnsureSchema creates tables and indexes as needed.
// company_contacts intentionally has no foreign key to jobs or searches;
// company association happens at read time by website match.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := deps.PG.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	logger.Info("schema verified")
	return nil
}
