// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	uierrors "github.com/TurtleTaco/lead-explorer/internal/app/features/errors"
	userstore "github.com/TurtleTaco/lead-explorer/internal/app/store/users"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/TurtleTaco/lead-explorer/internal/app/system/timeouts"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Handler delegates authentication to the external identity provider
// and mirrors the provider's user/org identity into local rows.
type Handler struct {
	Users  *userstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger

	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	RedirectURL  string
}

func NewHandler(users *userstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger,
	clientID, clientSecret, authURL, tokenURL, userInfoURL, baseURL string) *Handler {
	return &Handler{
		Users:        users,
		ErrLog:       errLog,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		AuthURL:      authURL,
		TokenURL:     tokenURL,
		UserInfoURL:  userInfoURL,
		RedirectURL:  baseURL + "/login/callback",
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  h.AuthURL,
			TokenURL: h.TokenURL,
		},
	}
}

// IsConfigured reports whether provider credentials are present.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin handles GET /login: redirect to the provider's consent
// screen with a fresh CSRF state.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("identity provider not configured")
		http.Error(w, "sign-in is not configured", http.StatusServiceUnavailable)
		return
	}

	state := uuid.NewString()
	returnTo := sanitizeReturn(r.URL.Query().Get("return"))
	if err := auth.SetOAuthState(w, r, state, returnTo); err != nil {
		h.ErrLog.LogServerError(w, r, "save oauth state failed", err, "Unable to start sign-in.", "/")
		return
	}

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state), http.StatusSeeOther)
}

// userInfo is the provider's identity payload. The provider is the
// source of truth for organization membership.
type userInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	OrgID   string `json:"org_id"`
	OrgName string `json:"org_name"`
	OrgRole string `json:"org_role"`
}

// ServeCallback handles GET /login/callback: verify state, exchange the
// code, fetch the identity, and mirror it into local rows.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	wantState, returnTo := auth.PopOAuthState(w, r)
	if wantState == "" || r.URL.Query().Get("state") != wantState {
		h.ErrLog.LogBadRequest(w, r, "oauth state mismatch", nil, "Sign-in session expired. Please try again.")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.ErrLog.LogBadRequest(w, r, "oauth callback missing code", nil, "Sign-in was cancelled.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	tok, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "oauth code exchange failed", err, "Sign-in failed. Please try again.", "/login")
		return
	}

	info, err := h.fetchUserInfo(ctx, tok)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch user info failed", err, "Sign-in failed. Please try again.", "/login")
		return
	}

	identity := info.Email
	if identity == "" {
		identity = info.Sub
	}
	if identity == "" {
		h.ErrLog.LogBadRequest(w, r, "provider returned empty identity", nil, "Sign-in failed.")
		return
	}

	sessionUser := auth.SessionUser{
		ID:    info.Sub,
		Name:  info.Name,
		Email: identity,
	}

	// Mirror identity into local rows only when the provider already
	// scoped the session to an organization; otherwise the picker
	// completes it.
	if info.OrgID != "" {
		if _, _, err := h.Users.EnsureWithOrganization(ctx, identity, info.OrgID, info.OrgName, info.OrgRole); err != nil {
			h.ErrLog.LogServerError(w, r, "ensure user and org failed", err, "Sign-in failed. Please try again.", "/login")
			return
		}
		sessionUser.OrgID = info.OrgID
		sessionUser.OrgName = info.OrgName
		sessionUser.Role = info.OrgRole
	}

	if err := auth.SignIn(w, r, sessionUser); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Sign-in failed. Please try again.", "/login")
		return
	}

	h.Log.Info("user signed in",
		zap.String("email", identity),
		zap.String("org_id", info.OrgID))

	dest := "/dashboard"
	if sessionUser.OrgID == "" {
		dest = "/select-organization"
	}
	if returnTo != "" {
		dest = returnTo
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) fetchUserInfo(ctx context.Context, tok *oauth2.Token) (userInfo, error) {
	var info userInfo

	client := h.oauth2Config().Client(ctx, tok)
	resp, err := client.Get(h.UserInfoURL)
	if err != nil {
		return info, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return info, fmt.Errorf("decode userinfo: %w", err)
	}
	return info, nil
}

// sanitizeReturn keeps redirects on-site.
func sanitizeReturn(v string) string {
	if v == "" || !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") {
		return ""
	}
	return v
}
