// Package searchpolicy provides authorization policies for search management.
//
// Authorization rules:
//   - Owners can create and delete searches in their organization
//   - Members can create searches but not delete them
//   - Other roles (viewer) have read-only access
package searchpolicy

import (
	"net/http"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/authz"
)

// CanCreateSearch reports whether the current user may start a new
// job-scrape search for the active organization.
//
// Authorization:
//   - Owner/Member: can create searches
//   - Others: cannot
func CanCreateSearch(r *http.Request) bool {
	role, _, ok := authz.UserCtx(r)
	if !ok {
		return false
	}

	switch role {
	case "owner", "member":
		return true
	default:
		return false
	}
}

// CanDeleteSearch reports whether the current user may delete a search
// and its scraped jobs.
//
// Authorization:
//   - Owner: can delete searches
//   - Others: cannot
func CanDeleteSearch(r *http.Request) bool {
	role, _, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	return role == "owner"
}
