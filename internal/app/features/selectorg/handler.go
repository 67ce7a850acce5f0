// internal/app/features/selectorg/handler.go
package selectorg

import (
	"context"
	"net/http"

	uierrors "github.com/TurtleTaco/lead-explorer/internal/app/features/errors"
	orgstore "github.com/TurtleTaco/lead-explorer/internal/app/store/organizations"
	userstore "github.com/TurtleTaco/lead-explorer/internal/app/store/users"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler lets a signed-in user pick which of their organizations is
// active for this session.
type Handler struct {
	Users  *userstore.Store
	Orgs   *orgstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(users *userstore.Store, orgs *orgstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Orgs: orgs, ErrLog: errLog, Log: logger}
}

type orgOption struct {
	ExtID string
	Name  string
	Role  string
}

type pickerData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
	Options    []orgOption
}

// ServePicker handles GET /select-organization.
func (h *Handler) ServePicker(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	options, err := h.loadOptions(ctx, u.Email)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load organization options failed", err, "Unable to load your organizations.", "/")
		return
	}

	templates.Render(w, r, "selectorg_picker", pickerData{
		Title:      "Choose an organization",
		IsLoggedIn: true,
		Role:       u.Role,
		UserName:   u.Name,
		Options:    options,
	})
}

// HandlePick handles POST /select-organization. The chosen org must be
// one the user is already a member of.
func (h *Handler) HandlePick(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse picker form failed", err, "")
		return
	}
	extID := r.PostFormValue("org_id")
	if extID == "" {
		h.ErrLog.LogBadRequest(w, r, "picker missing org_id", nil, "Choose an organization.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	options, err := h.loadOptions(ctx, u.Email)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "verify membership failed", err, "Unable to switch organization.", "/select-organization")
		return
	}

	for _, opt := range options {
		if opt.ExtID == extID {
			if err := auth.SetActiveOrg(w, r, opt.ExtID, opt.Name, opt.Role); err != nil {
				h.ErrLog.LogServerError(w, r, "save active org failed", err, "Unable to switch organization.", "/select-organization")
				return
			}
			h.Log.Info("active organization changed",
				zap.String("email", u.Email),
				zap.String("org_id", opt.ExtID))
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}

	h.ErrLog.LogBadRequest(w, r, "picker org not in memberships", nil, "You are not a member of that organization.")
}

func (h *Handler) loadOptions(ctx context.Context, email string) ([]orgOption, error) {
	user, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	memberships, err := h.Orgs.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	options := make([]orgOption, 0, len(memberships))
	for _, m := range memberships {
		options = append(options, orgOption{
			ExtID: m.Organization.OrgID,
			Name:  m.Organization.Name,
			Role:  m.Role,
		})
	}
	return options, nil
}
