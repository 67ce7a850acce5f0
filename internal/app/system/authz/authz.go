// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
)

// UserCtx returns the user's role (lowercased), display name, and a
// found flag. Missing user → ("visitor", "", false) so callers can
// trust ok=true means an authenticated user.
func UserCtx(r *http.Request) (role string, name string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", false
	}
	return strings.ToLower(user.Role), user.Name, true
}
