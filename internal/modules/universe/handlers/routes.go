package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers universe routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/universe", func(r chi.Router) {
		r.Get("/strategies", h.HandleGetStrategies)
		r.Get("/strategies/{id}", h.HandleGetStrategy)
		r.Get("/types", h.HandleGetTypes)
		r.Get("/stats", h.HandleGetStats)
		r.Post("/regenerate", h.HandleRegenerate)
	})
}
