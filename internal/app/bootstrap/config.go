// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for LeadScout.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: postgres_url, session_name, etc.
//   - Environment variables: LEADSCOUT_POSTGRES_URL, LEADSCOUT_SESSION_NAME, etc.
//   - Command-line flags: --postgres_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "postgres_url", Default: "postgres://localhost:5432/leadscout", Desc: "Postgres connection URL"},
	{Name: "redis_url", Default: "", Desc: "Redis URL for the filter-option cache (blank disables caching)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "leadscout-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Actor-run API configuration
	{Name: "apify_base_url", Default: "https://api.apify.com", Desc: "Actor-run API root URL"},
	{Name: "apify_token", Default: "", Desc: "Actor-run API token (required for scrape/enrich triggers)"},
	{Name: "jobs_actor_id", Default: "hKByXkMQaC5Qt9UMN", Desc: "Actor ID for the LinkedIn jobs scraper"},
	{Name: "contacts_actor_id", Default: "IoSHqwTR9YGhzccez", Desc: "Actor ID for contact enrichment"},
	{Name: "poll_interval", Default: "5s", Desc: "Delay between actor-run status polls"},
	{Name: "poll_max_attempts", Default: 60, Desc: "Maximum status polls before a run is treated as timed out"},

	// Identity provider (OAuth2)
	{Name: "identity_client_id", Default: "", Desc: "Identity provider OAuth2 client ID"},
	{Name: "identity_client_secret", Default: "", Desc: "Identity provider OAuth2 client secret"},
	{Name: "identity_auth_url", Default: "", Desc: "Identity provider authorization endpoint"},
	{Name: "identity_token_url", Default: "", Desc: "Identity provider token endpoint"},
	{Name: "identity_userinfo_url", Default: "", Desc: "Identity provider userinfo endpoint"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "LEADSCOUT", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		PostgresURL: appValues.String("postgres_url"),
		RedisURL:    appValues.String("redis_url"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		ApifyBaseURL:    appValues.String("apify_base_url"),
		ApifyToken:      appValues.String("apify_token"),
		JobsActorID:     appValues.String("jobs_actor_id"),
		ContactsActorID: appValues.String("contacts_actor_id"),

		PollInterval:    appValues.Duration("poll_interval", 5*time.Second),
		PollMaxAttempts: appValues.Int("poll_max_attempts"),

		IdentityClientID:     appValues.String("identity_client_id"),
		IdentityClientSecret: appValues.String("identity_client_secret"),
		IdentityAuthURL:      appValues.String("identity_auth_url"),
		IdentityTokenURL:     appValues.String("identity_token_url"),
		IdentityUserInfoURL:  appValues.String("identity_userinfo_url"),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The Postgres URL is checked up front so a bad connection string fails
// at startup rather than on the first query. The Apify token is allowed
// to be blank: browsing persisted data works without it, and the trigger
// workflows surface a configuration error before any network call.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if !strings.HasPrefix(appCfg.PostgresURL, "postgres://") && !strings.HasPrefix(appCfg.PostgresURL, "postgresql://") {
		return fmt.Errorf("postgres_url must start with postgres:// or postgresql://, got %q", appCfg.PostgresURL)
	}

	if appCfg.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	if appCfg.PollMaxAttempts < 1 {
		return fmt.Errorf("poll_max_attempts must be at least 1")
	}

	if appCfg.ApifyToken == "" {
		logger.Warn("apify_token is not set; scrape and enrichment triggers will be unavailable")
	}

	return nil
}
