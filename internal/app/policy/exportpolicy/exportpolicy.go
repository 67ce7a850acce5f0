// Package exportpolicy provides authorization policies for data export
// and contact enrichment.
//
// Authorization rules:
//   - Owners and Members can export contacts and trigger enrichment
//   - Other roles (viewer) have read-only access
package exportpolicy

import (
	"net/http"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/authz"
)

// CanExportContacts reports whether the current user may download the
// organization's contact pool as CSV.
func CanExportContacts(r *http.Request) bool {
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

// CanFetchContacts reports whether the current user may trigger an
// enrichment run for a company. Enrichment spends external API credits,
// so it follows the same rule as export.
func CanFetchContacts(r *http.Request) bool {
	return CanExportContacts(r)
}
