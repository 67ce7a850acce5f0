package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants & globals                                                |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey  = "is_authenticated"
	userIDKey  = "user_id"
	userName   = "user_name"
	userEmail  = "user_email"
	orgIDKey   = "org_id"
	orgNameKey = "org_name"
	roleKey    = "org_role"
)

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

// sessionName is set by InitSessionStore; defaults for tests.
var sessionName = "leadscout-session"

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we cache in the session & inject into r.Context().
// ID is the identity provider's subject; OrgID is the provider's
// identifier of the active organization (may be blank until the user
// picks one on /select-organization).
type SessionUser struct {
	ID      string
	Name    string
	Email   string
	OrgID   string
	OrgName string
	Role    string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// LoadSessionUser injects the user into context if they are logged in.
// If the session store has not been initialized yet, it is a no-op.
func LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Store == nil {
			next.ServeHTTP(w, r)
			return
		}

		sess, _ := Store.Get(r, sessionName)

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:      getString(sess, userIDKey),
				Name:    getString(sess, userName),
				Email:   getString(sess, userEmail),
				OrgID:   getString(sess, orgIDKey),
				OrgName: getString(sess, orgNameKey),
				Role:    getString(sess, roleKey),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		ret := url.QueryEscape(currentURI(r))

		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", "/login?return="+ret)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if wantsHTML(r) {
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}

		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// RequireOrganization ensures the signed-in user has an active
// organization. Users without one are sent to the organization picker,
// matching the provider-driven onboarding flow.
func RequireOrganization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if u.OrgID == "" {
			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", "/select-organization")
				w.WriteHeader(http.StatusForbidden)
				return
			}
			http.Redirect(w, r, "/select-organization", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session mutation                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// SignIn writes the authenticated user into the session cookie.
func SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, _ := Store.Get(r, sessionName)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userName] = u.Name
	sess.Values[userEmail] = u.Email
	sess.Values[orgIDKey] = u.OrgID
	sess.Values[orgNameKey] = u.OrgName
	sess.Values[roleKey] = u.Role
	return sess.Save(r, w)
}

// SetActiveOrg records the chosen organization in the session.
func SetActiveOrg(w http.ResponseWriter, r *http.Request, orgID, orgName, role string) error {
	sess, _ := Store.Get(r, sessionName)
	sess.Values[orgIDKey] = orgID
	sess.Values[orgNameKey] = orgName
	sess.Values[roleKey] = role
	return sess.Save(r, w)
}

// SignOut clears the session.
func SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := Store.Get(r, sessionName)
	sess.Options.MaxAge = -1
	sess.Values = map[any]any{}
	return sess.Save(r, w)
}

// SetOAuthState stashes the CSRF state for an in-flight provider login.
func SetOAuthState(w http.ResponseWriter, r *http.Request, state, returnTo string) error {
	sess, _ := Store.Get(r, sessionName)
	sess.Values["oauth_state"] = state
	sess.Values["oauth_return"] = returnTo
	return sess.Save(r, w)
}

// PopOAuthState retrieves and clears the stashed CSRF state.
func PopOAuthState(w http.ResponseWriter, r *http.Request) (state, returnTo string) {
	sess, _ := Store.Get(r, sessionName)
	state = getString(sess, "oauth_state")
	returnTo = getString(sess, "oauth_return")
	delete(sess.Values, "oauth_state")
	delete(sess.Values, "oauth_return")
	_ = sess.Save(r, w)
	return state, returnTo
}

// InitSessionStore initializes the global session Store using the provided
// session key, cookie name, and domain. The secure flag controls whether
// cookies are marked Secure and which SameSite mode is used.
func InitSessionStore(sessionKey, name, domain string, secure bool, logger *zap.Logger) error {
	if sessionKey == "" {
		return fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}

	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}

	store.Options = opts
	Store = store
	if name != "" {
		sessionName = name
	}

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return nil
}

// WithTestUser injects a user into the request context for handler tests,
// bypassing the session middleware.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
