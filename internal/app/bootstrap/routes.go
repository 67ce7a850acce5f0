// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	contactsfeature "github.com/TurtleTaco/lead-explorer/internal/app/features/contacts"
	dashboardfeature "github.com/TurtleTaco/lead-explorer/internal/app/features/dashboard"
	errorsfeature "github.com/TurtleTaco/lead-explorer/internal/app/features/errors"
	healthfeature "github.com/TurtleTaco/lead-explorer/internal/app/features/health"
	homefeature "github.com/TurtleTaco/lead-explorer/internal/app/features/home"
	jobsfeature "github.com/TurtleTaco/lead-explorer/internal/app/features/jobs"
	leadsfeature "github.com/TurtleTaco/lead-explorer/internal/app/features/leads"
	loginfeature "github.com/TurtleTaco/lead-explorer/internal/app/features/login"
	logoutfeature "github.com/TurtleTaco/lead-explorer/internal/app/features/logout"
	selectorgfeature "github.com/TurtleTaco/lead-explorer/internal/app/features/selectorg"
	settingsfeature "github.com/TurtleTaco/lead-explorer/internal/app/features/settings"
	contactstore "github.com/TurtleTaco/lead-explorer/internal/app/store/contacts"
	jobstore "github.com/TurtleTaco/lead-explorer/internal/app/store/jobs"
	orgstore "github.com/TurtleTaco/lead-explorer/internal/app/store/organizations"
	searchstore "github.com/TurtleTaco/lead-explorer/internal/app/store/searches"
	userstore "github.com/TurtleTaco/lead-explorer/internal/app/store/users"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/apify"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/cache"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/runs"
	"github.com/TurtleTaco/lead-explorer/internal/app/workflows"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for the app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	// Stores
	users := userstore.New(deps.PG)
	orgs := orgstore.New(deps.PG)
	searches := searchstore.New(deps.PG)
	jobs := jobstore.New(deps.PG)
	contacts := contactstore.New(deps.PG, logger)

	// External actor client and the trigger workflows
	actors := apify.New(appCfg.ApifyBaseURL, appCfg.ApifyToken)
	waiter := runs.Waiter{
		Interval:    appCfg.PollInterval,
		MaxAttempts: appCfg.PollMaxAttempts,
		Logger:      logger,
	}
	scraper := workflows.NewScrapeRunner(actors, searches, jobs, appCfg.JobsActorID, waiter, logger)
	enricher := workflows.NewEnrichRunner(actors, contacts, appCfg.ContactsActorID, waiter, logger)

	viewCache := cache.New(deps.Redis, 5*time.Minute, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.PG, deps.Redis, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication (delegated to the identity provider)
	loginHandler := loginfeature.NewHandler(users, errLog, logger,
		appCfg.IdentityClientID, appCfg.IdentityClientSecret,
		appCfg.IdentityAuthURL, appCfg.IdentityTokenURL, appCfg.IdentityUserInfoURL,
		appCfg.BaseURL)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Organization picker
	selectHandler := selectorgfeature.NewHandler(users, orgs, errLog, logger)
	r.Mount("/select-organization", selectorgfeature.Routes(selectHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.NotFound(errorsHandler.NotFound)

	// Dashboard and the scrape trigger
	dashboardHandler := dashboardfeature.NewHandler(users, orgs, searches, jobs, scraper, viewCache, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))

	// Per-search job listings
	jobsHandler := jobsfeature.NewHandler(users, searches, jobs, errLog, logger)
	r.Mount("/searches", jobsfeature.Routes(jobsHandler))

	// Aggregated company leads and the enrichment trigger
	leadsHandler := leadsfeature.NewHandler(users, jobs, contacts, enricher, viewCache, errLog, logger)
	r.Mount("/leads", leadsfeature.Routes(leadsHandler))

	// Contacts, statistics, CSV export
	contactsHandler := contactsfeature.NewHandler(users, jobs, contacts, viewCache, errLog, logger)
	r.Mount("/contacts", contactsfeature.Routes(contactsHandler))

	// Settings
	settingsHandler := settingsfeature.NewHandler(users, orgs, searches, errLog, logger)
	r.Mount("/settings", settingsfeature.Routes(settingsHandler))

	return r, nil
}
