package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
)

// AuthedRequest builds a request carrying a signed-in test user with an
// active organization, bypassing the session middleware.
func AuthedRequest(method, target string, orgExtID string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:      "user_test",
		Name:    "Test User",
		Email:   "test@example.com",
		OrgID:   orgExtID,
		OrgName: "Test Org",
		Role:    "owner",
	})
}
