package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers allocation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/allocation", func(r chi.Router) {
		r.Get("/", h.HandleGetPortfolio)
		r.Delete("/", h.HandleClear)

		r.Post("/strategies", h.HandleAddStrategy)
		r.Put("/strategies/{id}", h.HandleSetAllocation)
		r.Delete("/strategies/{id}", h.HandleRemoveStrategy)

		r.Post("/balance/{method}", h.HandleBalance)
	})
}
