// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/TurtleTaco/lead-explorer/internal/app/features/errors"
	"github.com/TurtleTaco/lead-explorer/internal/app/policy/searchpolicy"
	jobstore "github.com/TurtleTaco/lead-explorer/internal/app/store/jobs"
	orgstore "github.com/TurtleTaco/lead-explorer/internal/app/store/organizations"
	searchstore "github.com/TurtleTaco/lead-explorer/internal/app/store/searches"
	userstore "github.com/TurtleTaco/lead-explorer/internal/app/store/users"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/cache"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/timeouts"
	"github.com/TurtleTaco/lead-explorer/internal/app/workflows"
	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the org dashboard and the add-search trigger.
type Handler struct {
	Users    *userstore.Store
	Orgs     *orgstore.Store
	Searches *searchstore.Store
	Jobs     *jobstore.Store
	Scraper  *workflows.ScrapeRunner
	Cache    *cache.Cache
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, orgs *orgstore.Store, searches *searchstore.Store,
	jobs *jobstore.Store, scraper *workflows.ScrapeRunner, c *cache.Cache,
	errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users,
		Orgs:     orgs,
		Searches: searches,
		Jobs:     jobs,
		Scraper:  scraper,
		Cache:    c,
		ErrLog:   errLog,
		Log:      logger,
	}
}

type dashboardData struct {
	Title       string
	IsLoggedIn  bool
	Role        string
	UserName    string
	OrgName     string
	Searches    []models.Search
	SearchCount int
	JobCount    int
	Stats       JobStatistics
	Flash       string
}

// resolveOrg maps the session's external org id to the local row,
// creating user/org/link rows on first contact.
func (h *Handler) resolveOrg(ctx context.Context, u *auth.SessionUser) (models.Organization, error) {
	_, org, err := h.Users.EnsureWithOrganization(ctx, u.Email, u.OrgID, u.OrgName, u.Role)
	return org, err
}

// loadStatistics returns the org's job distributions with a Redis
// read-through; write paths invalidate the key.
func (h *Handler) loadStatistics(ctx context.Context, orgExtID string, orgID int64) (JobStatistics, error) {
	key := cache.StatisticsKey(orgExtID)

	var cached JobStatistics
	if err := h.Cache.GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	}

	batch, err := h.Jobs.ListForOrg(ctx, orgID)
	if err != nil {
		return JobStatistics{}, err
	}

	stats := BuildJobStatistics(batch)
	h.Cache.SetJSON(ctx, key, stats)
	return stats, nil
}

// ServeDashboard handles GET /dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.resolveOrg(ctx, u)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "resolve organization failed", err, "Unable to load your dashboard.", "/")
		return
	}

	list, err := h.Searches.ListForOrg(ctx, org.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list searches failed", err, "Unable to load your searches.", "/")
		return
	}

	stats, err := h.loadStatistics(ctx, u.OrgID, org.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load job statistics failed", err, "Unable to load your dashboard.", "/")
		return
	}

	templates.Render(w, r, "dashboard_home", dashboardData{
		Title:       "Dashboard",
		IsLoggedIn:  true,
		Role:        u.Role,
		UserName:    u.Name,
		OrgName:     u.OrgName,
		Searches:    list,
		SearchCount: len(list),
		JobCount:    stats.TotalJobs,
		Stats:       stats,
		Flash:       r.URL.Query().Get("flash"),
	})
}

// HandleAddSearch handles POST /dashboard/searches. The scrape flow is
// synchronous: the request returns once the actor run has finished and
// its jobs are stored.
func (h *Handler) HandleAddSearch(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	if !searchpolicy.CanCreateSearch(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse add-search form failed", err, "")
		return
	}
	term := strings.TrimSpace(r.PostFormValue("search_term"))
	if term == "" {
		h.ErrLog.LogBadRequest(w, r, "add-search missing term", nil, "Enter a search term.")
		return
	}

	// The whole run can take minutes; bound it with the batch budget,
	// not a page-load budget.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	org, err := h.resolveOrg(ctx, u)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "resolve organization failed", err, "Unable to start the search.", "/dashboard")
		return
	}

	search, err := h.Scraper.Run(ctx, org.ID, term)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "scrape run failed", err,
			"The search could not be completed. Please try again.", "/dashboard")
		return
	}

	h.Cache.Invalidate(ctx, cache.OrgKeys(org.OrgID)...)

	http.Redirect(w, r, "/searches/"+strconv.FormatInt(search.ID, 10)+"/jobs", http.StatusSeeOther)
}

// HandleDeleteSearch handles POST /dashboard/searches/{id}/delete.
func (h *Handler) HandleDeleteSearch(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	if !searchpolicy.CanDeleteSearch(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad search id", err, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.resolveOrg(ctx, u)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "resolve organization failed", err, "Unable to delete the search.", "/dashboard")
		return
	}

	if err := h.Searches.Delete(ctx, id, org.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "delete search failed", err, "Unable to delete the search.", "/dashboard")
		return
	}

	h.Cache.Invalidate(ctx, cache.OrgKeys(org.OrgID)...)
	h.Log.Info("search deleted", zap.Int64("search_id", id), zap.Int64("org_id", org.ID))

	http.Redirect(w, r, "/dashboard?flash=Search+deleted", http.StatusSeeOther)
}
