// internal/app/features/contacts/handler.go
package contacts

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/TurtleTaco/lead-explorer/internal/app/features/errors"
	"github.com/TurtleTaco/lead-explorer/internal/app/policy/exportpolicy"
	contactstore "github.com/TurtleTaco/lead-explorer/internal/app/store/contacts"
	jobstore "github.com/TurtleTaco/lead-explorer/internal/app/store/jobs"
	userstore "github.com/TurtleTaco/lead-explorer/internal/app/store/users"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/cache"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/timeouts"
	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the aggregated contacts view, statistics, and the CSV
// export.
type Handler struct {
	Users    *userstore.Store
	Jobs     *jobstore.Store
	Contacts *contactstore.Store
	Cache    *cache.Cache
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, jobs *jobstore.Store, contacts *contactstore.Store,
	c *cache.Cache, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Jobs: jobs, Contacts: contacts, Cache: c, ErrLog: errLog, Log: logger}
}

type listData struct {
	Title       string
	IsLoggedIn  bool
	Role        string
	UserName    string
	View        ContactsView
	Stats       Statistics
	Seniorities []string
	Locations   []string
	Filter      ContactFilter
	Sort        string
	ExportQuery string
	Flash       string
}

// filterFromQuery reads the filter set shared by the listing and the
// export.
func filterFromQuery(r *http.Request) ContactFilter {
	qs := r.URL.Query()
	return ContactFilter{
		Query:     qs.Get("q"),
		Seniority: qs.Get("seniority"),
		Industry:  qs.Get("industry"),
		Location:  qs.Get("location"),
		HasEmail:  qs.Get("has_email") == "1",
		HasPhone:  qs.Get("has_phone") == "1",
	}
}

// ServeList handles GET /contacts with ?q=, ?seniority=, ?industry=,
// ?location=, ?has_email=, ?has_phone=, ?sortBy=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	pool, err := h.loadContacts(ctx, u)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load contacts failed", err, "Unable to load your contacts.", "/dashboard")
		return
	}

	f := filterFromQuery(r)
	sortKey := r.URL.Query().Get("sortBy")

	infos, err := h.jobInfo(ctx, u)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load job info failed", err, "Unable to load your contacts.", "/dashboard")
		return
	}

	view := AttachJobInfo(GroupContactsByCompany(pool), infos)
	view = FilterContacts(view, f)
	view.Companies = SortCompanies(view.Companies, sortKey)

	templates.Render(w, r, "contacts_list", listData{
		Title:       "Contacts",
		IsLoggedIn:  true,
		Role:        u.Role,
		UserName:    u.Name,
		View:        view,
		Stats:       BuildStatistics(pool),
		Seniorities: SeniorityOptions(pool),
		Locations:   LocationOptions(pool),
		Filter:      f,
		Sort:        sortKey,
		ExportQuery: r.URL.RawQuery,
		Flash:       r.URL.Query().Get("flash"),
	})
}

// ServeExport handles GET /contacts/export. The same filter query
// params as the listing apply, so the download matches what is on
// screen.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	if !exportpolicy.CanExportContacts(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	pool, err := h.loadContacts(ctx, u)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load contacts for export failed", err, "Unable to export contacts.", "/contacts")
		return
	}

	view := FilterContacts(GroupContactsByCompany(pool), filterFromQuery(r))
	infos, err := h.jobInfo(ctx, u)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load job info for export failed", err, "Unable to export contacts.", "/contacts")
		return
	}

	jobCounts := make(map[string]int, len(infos))
	for website, info := range infos {
		jobCounts[website] = info.Count
	}

	body := ExportCSV(view, jobCounts)
	filename := "contacts-" + time.Now().UTC().Format("2006-01-02") + ".csv"

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := w.Write([]byte(body)); err != nil {
		h.Log.Error("write csv export failed", zap.Error(err))
	}

	h.Log.Info("contacts exported",
		zap.String("org_id", u.OrgID),
		zap.Int("contacts", view.TotalContacts))
}

// loadContacts returns the contact rows matched to the org's job
// companies by website, with a Redis read-through.
func (h *Handler) loadContacts(ctx context.Context, u *auth.SessionUser) ([]models.CompanyContact, error) {
	key := cache.ContactsKey(u.OrgID)

	var cached []models.CompanyContact
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

	websites := distinctWebsites(batch)
	if len(websites) == 0 {
		return nil, nil
	}

	pool, err := h.Contacts.ListByWebsites(ctx, websites)
	if err != nil {
		return nil, err
	}

	h.Cache.SetJSON(ctx, key, pool)
	return pool, nil
}

func (h *Handler) jobInfo(ctx context.Context, u *auth.SessionUser) (map[string]CompanyJobInfo, error) {
	org, err := h.resolveOrg(ctx, u)
	if err != nil {
		return nil, err
	}
	batch, err := h.Jobs.ListForOrg(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	return BuildJobInfo(batch), nil
}

func distinctWebsites(batch []models.Job) []string {
	seen := map[string]bool{}
	var out []string
	for _, j := range batch {
		if j.CompanyWebsite == nil || *j.CompanyWebsite == "" || seen[*j.CompanyWebsite] {
			continue
		}
		seen[*j.CompanyWebsite] = true
		out = append(out, *j.CompanyWebsite)
	}
	return out
}

func (h *Handler) resolveOrg(ctx context.Context, u *auth.SessionUser) (models.Organization, error) {
	_, org, err := h.Users.EnsureWithOrganization(ctx, u.Email, u.OrgID, u.OrgName, u.Role)
	return org, err
}
