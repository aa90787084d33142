package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers risk profile routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/risk", func(r chi.Router) {
		r.Get("/profiles", h.HandleGetProfiles)
		r.Get("/profiles/{label}", h.HandleGetProfile)
	})
}
