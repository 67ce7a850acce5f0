// internal/app/features/leads/routes.go
package leads

import (
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the leads routes, mounted at "/leads".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireOrganization)

	r.Get("/", h.ServeList)
	r.Post("/fetch-contacts", h.HandleFetchContacts)

	return r
}
