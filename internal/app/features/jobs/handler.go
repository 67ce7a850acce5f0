// internal/app/features/jobs/handler.go
package jobs

import (
	"context"
	"html/template"
	"net/http"
	"strconv"

	uierrors "github.com/TurtleTaco/lead-explorer/internal/app/features/errors"
	jobstore "github.com/TurtleTaco/lead-explorer/internal/app/store/jobs"
	searchstore "github.com/TurtleTaco/lead-explorer/internal/app/store/searches"
	userstore "github.com/TurtleTaco/lead-explorer/internal/app/store/users"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/paging"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/timeouts"
	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the per-search job listings.
type Handler struct {
	Users    *userstore.Store
	Searches *searchstore.Store
	Jobs     *jobstore.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, searches *searchstore.Store, jobs *jobstore.Store,
	errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Searches: searches, Jobs: jobs, ErrLog: errLog, Log: logger}
}

// jobRow adapts a Job for the template; the description markup was
// sanitized at ingest time, so it is safe to mark trusted here.
type jobRow struct {
	models.Job
	DescriptionSafe template.HTML
}

type listData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
	Search     models.Search
	Jobs       []jobRow
	Companies  []string
	Query      string
	Company    string
	Sort       string
	Nav        paging.Nav
}

// ServeList handles GET /searches/{id}/jobs with ?q=, ?company=,
// ?sort=, ?page=. Filtering and sorting run in memory over the fetched
// batch; pagination is 10 jobs per page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	searchID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad search id", err, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.resolveOrg(ctx, u)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "resolve organization failed", err, "Unable to load jobs.", "/dashboard")
		return
	}

	search, err := h.Searches.GetForOrg(ctx, searchID, org.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get search failed", err, "Unable to load jobs.", "/dashboard")
		return
	}
	if search == nil {
		http.NotFound(w, r)
		return
	}

	all, err := h.Jobs.ListBySearch(ctx, searchID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list jobs failed", err, "Unable to load jobs.", "/dashboard")
		return
	}

	q := r.URL.Query().Get("q")
	company := r.URL.Query().Get("company")
	sortKey := r.URL.Query().Get("sort")

	filtered := SortJobs(FilterJobs(all, q, company), sortKey)

	page := paging.ParsePage(r)
	nav := paging.BuildNav(page, len(filtered), paging.JobsPerPage)
	window := paging.Slice(filtered, page, paging.JobsPerPage)

	rows := make([]jobRow, 0, len(window))
	for _, j := range window {
		row := jobRow{Job: j}
		if j.DescriptionHTML != nil {
			row.DescriptionSafe = template.HTML(*j.DescriptionHTML)
		}
		rows = append(rows, row)
	}

	templates.Render(w, r, "jobs_list", listData{
		Title:      search.SearchTerm,
		IsLoggedIn: true,
		Role:       u.Role,
		UserName:   u.Name,
		Search:     *search,
		Jobs:       rows,
		Companies:  CompanyOptions(all),
		Query:      q,
		Company:    company,
		Sort:       sortKey,
		Nav:        nav,
	})
}

func (h *Handler) resolveOrg(ctx context.Context, u *auth.SessionUser) (models.Organization, error) {
	_, org, err := h.Users.EnsureWithOrganization(ctx, u.Email, u.OrgID, u.OrgName, u.Role)
	return org, err
}
