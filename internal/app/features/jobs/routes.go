// internal/app/features/jobs/routes.go
package jobs

import (
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the job listing routes, mounted at "/searches".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireOrganization)
	r.Get("/{id}/jobs", h.ServeList)
	return r
}
