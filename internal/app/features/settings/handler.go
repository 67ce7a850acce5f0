// internal/app/features/settings/handler.go
package settings

import (
	"context"
	"net/http"

	uierrors "github.com/TurtleTaco/lead-explorer/internal/app/features/errors"
	orgstore "github.com/TurtleTaco/lead-explorer/internal/app/store/organizations"
	searchstore "github.com/TurtleTaco/lead-explorer/internal/app/store/searches"
	userstore "github.com/TurtleTaco/lead-explorer/internal/app/store/users"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/timeouts"
	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the organization settings page.
type Handler struct {
	Users    *userstore.Store
	Orgs     *orgstore.Store
	Searches *searchstore.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, orgs *orgstore.Store, searches *searchstore.Store,
	errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Orgs: orgs, Searches: searches, ErrLog: errLog, Log: logger}
}

type settingsData struct {
	Title       string
	IsLoggedIn  bool
	Role        string
	UserName    string
	Email       string
	Org         models.Organization
	MemberCount int
	SearchCount int
	Plans       []models.Plan
}

// ServeSettings handles GET /settings.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, org, err := h.Users.EnsureWithOrganization(ctx, u.Email, u.OrgID, u.OrgName, u.Role)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "resolve organization failed", err, "Unable to load settings.", "/dashboard")
		return
	}

	members, err := h.Orgs.MemberCount(ctx, org.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count members failed", err, "Unable to load settings.", "/dashboard")
		return
	}

	searchCount, err := h.Searches.CountForOrg(ctx, org.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count searches failed", err, "Unable to load settings.", "/dashboard")
		return
	}

	templates.Render(w, r, "settings_page", settingsData{
		Title:       "Settings",
		IsLoggedIn:  true,
		Role:        u.Role,
		UserName:    u.Name,
		Email:       u.Email,
		Org:         org,
		MemberCount: members,
		SearchCount: searchCount,
		Plans:       models.Plans,
	})
}
