package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/metrics", h.HandleGetMetrics)
		r.Get("/deploy-status", h.HandleGetDeployStatus)
		r.Post("/deploy", h.HandleDeploy)
		r.Get("/snapshot", h.HandleGetSnapshot)
	})
}
