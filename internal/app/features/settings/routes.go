// internal/app/features/settings/routes.go
package settings

import (
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the settings routes, mounted at "/settings".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireOrganization)
	r.Get("/", h.ServeSettings)
	return r
}
