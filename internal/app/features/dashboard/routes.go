// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the dashboard routes, mounted at "/dashboard".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireOrganization)

	r.Get("/", h.ServeDashboard)
	r.Post("/searches", h.HandleAddSearch)
	r.Post("/searches/{id}/delete", h.HandleDeleteSearch)

	return r
}
