// internal/app/features/leads/handler.go
package leads

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/TurtleTaco/lead-explorer/internal/app/features/errors"
	"github.com/TurtleTaco/lead-explorer/internal/app/policy/exportpolicy"
	contactstore "github.com/TurtleTaco/lead-explorer/internal/app/store/contacts"
	jobstore "github.com/TurtleTaco/lead-explorer/internal/app/store/jobs"
	userstore "github.com/TurtleTaco/lead-explorer/internal/app/store/users"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/cache"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/paging"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/timeouts"
	"github.com/TurtleTaco/lead-explorer/internal/app/workflows"
	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the aggregated company leads view and the
// fetch-contacts trigger.
type Handler struct {
	Users    *userstore.Store
	Jobs     *jobstore.Store
	Contacts *contactstore.Store
	Enricher *workflows.EnrichRunner
	Cache    *cache.Cache
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, jobs *jobstore.Store, contacts *contactstore.Store,
	enricher *workflows.EnrichRunner, c *cache.Cache, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users,
		Jobs:     jobs,
		Contacts: contacts,
		Enricher: enricher,
		Cache:    c,
		ErrLog:   errLog,
		Log:      logger,
	}
}

type listData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
	Leads      []CompanyLead
	Industries []string
	Filter     LeadFilter
	Sort       string
	Nav        paging.Nav
	Flash      string
}

// ServeList handles GET /leads with ?q=, ?industry=, ?location=,
// ?min_employees=, ?max_employees=, ?has_contacts=, ?sort=, ?page=.
// Grouping runs in memory over the org's full job batch; pagination is
// 5 companies per page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	grouped, err := h.loadLeads(ctx, u)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load leads failed", err, "Unable to load your leads.", "/dashboard")
		return
	}

	qs := r.URL.Query()
	f := LeadFilter{
		Query:        qs.Get("q"),
		Industry:     qs.Get("industry"),
		Location:     qs.Get("location"),
		MinEmployees: atoiOrZero(qs.Get("min_employees")),
		MaxEmployees: atoiOrZero(qs.Get("max_employees")),
		HasContacts:  qs.Get("has_contacts") == "1",
	}
	sortKey := qs.Get("sort")

	filtered := SortLeads(FilterLeads(grouped, f), sortKey)

	page := paging.ParsePage(r)
	nav := paging.BuildNav(page, len(filtered), paging.LeadsPerPage)
	window := paging.Slice(filtered, page, paging.LeadsPerPage)

	templates.Render(w, r, "leads_list", listData{
		Title:      "Leads",
		IsLoggedIn: true,
		Role:       u.Role,
		UserName:   u.Name,
		Leads:      window,
		Industries: IndustryOptions(grouped),
		Filter:     f,
		Sort:       sortKey,
		Nav:        nav,
		Flash:      qs.Get("flash"),
	})
}

// HandleFetchContacts handles POST /leads/fetch-contacts with a
// website form value. The enrichment run is synchronous, like the
// scrape trigger.
func (h *Handler) HandleFetchContacts(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	if !exportpolicy.CanFetchContacts(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse fetch-contacts form failed", err, "")
		return
	}
	website := strings.TrimSpace(r.PostFormValue("website"))
	if website == "" {
		h.ErrLog.LogBadRequest(w, r, "fetch-contacts missing website", nil, "This company has no website to enrich.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	res, err := h.Enricher.Run(ctx, website)
	if err != nil {
		if already, ok := err.(*workflows.ErrAlreadyEnriched); ok {
			h.Log.Info("contacts already fetched",
				zap.String("website", already.Website),
				zap.Int("count", already.Count))
			http.Redirect(w, r, "/contacts?flash=Contacts+already+fetched", http.StatusSeeOther)
			return
		}
		h.ErrLog.LogServerError(w, r, "enrichment run failed", err,
			"Contacts could not be fetched. Please try again.", "/leads")
		return
	}

	h.Cache.Invalidate(ctx, cache.OrgKeys(u.OrgID)...)
	h.Log.Info("contacts fetched",
		zap.String("website", res.Website),
		zap.Int("inserted", res.Inserted),
		zap.Int("skipped", res.Skipped))

	http.Redirect(w, r, "/contacts?flash=Contacts+fetched", http.StatusSeeOther)
}

// loadLeads builds the grouped company list, with a Redis read-through
// so repeated listing requests skip the full-batch query.
func (h *Handler) loadLeads(ctx context.Context, u *auth.SessionUser) ([]CompanyLead, error) {
	key := cache.LeadsKey(u.OrgID)

	var cached []CompanyLead
	if err := h.Cache.GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	}

	org, err := h.resolveOrg(ctx, u)
	if err != nil {
		return nil, err
	}

	batch, err := h.Jobs.ListForOrg(ctx, org.ID)
	if err != nil {
		return nil, err
	}

	grouped := GroupJobsByCompany(batch)
	if err := h.markContacts(ctx, grouped); err != nil {
		return nil, err
	}

	h.Cache.SetJSON(ctx, key, grouped)
	return grouped, nil
}

// markContacts flips HasContacts for every lead whose website has
// stored contact rows.
func (h *Handler) markContacts(ctx context.Context, grouped []CompanyLead) error {
	var websites []string
	for _, l := range grouped {
		if l.Website != "" {
			websites = append(websites, l.Website)
		}
	}
	if len(websites) == 0 {
		return nil
	}

	rows, err := h.Contacts.ListByWebsites(ctx, websites)
	if err != nil {
		return err
	}

	have := map[string]bool{}
	for _, c := range rows {
		have[c.CompanyWebsite] = true
	}
	for i := range grouped {
		grouped[i].HasContacts = have[grouped[i].Website]
	}
	return nil
}

func (h *Handler) resolveOrg(ctx context.Context, u *auth.SessionUser) (models.Organization, error) {
	_, org, err := h.Users.EnsureWithOrganization(ctx, u.Email, u.OrgID, u.OrgName, u.Role)
	return org, err
}

func atoiOrZero(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
