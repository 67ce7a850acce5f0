// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/authz"
	"github.com/TurtleTaco/lead-explorer/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the public landing and pricing pages.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type landingData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
}

type pricingData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
	Plans      []models.Plan
}

// ServeLanding handles GET /.
func (h *Handler) ServeLanding(w http.ResponseWriter, r *http.Request) {
	role, name, signedIn := authz.UserCtx(r)

	templates.Render(w, r, "home_landing", landingData{
		Title:      "Find your next customers",
		IsLoggedIn: signedIn,
		Role:       role,
		UserName:   name,
	})
}

// ServePricing handles GET /pricing.
func (h *Handler) ServePricing(w http.ResponseWriter, r *http.Request) {
	role, name, signedIn := authz.UserCtx(r)

	templates.Render(w, r, "home_pricing", pricingData{
		Title:      "Pricing",
		IsLoggedIn: signedIn,
		Role:       role,
		UserName:   name,
		Plans:      models.Plans,
	})
}
