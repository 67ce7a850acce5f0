// internal/app/features/contacts/routes.go
package contacts

import (
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the contacts routes, mounted at "/contacts".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireOrganization)

	r.Get("/", h.ServeList)
	r.Get("/export", h.ServeExport)

	return r
}
