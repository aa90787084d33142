// Package handlers provides HTTP handlers for building the strategy portfolio.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/strategy-builder/internal/modules/allocation"
	"github.com/aristath/strategy-builder/internal/modules/universe"
)

// Handler handles allocation HTTP requests
type Handler struct {
	service *allocation.Service
	log     zerolog.Logger
}

// NewHandler creates a new allocation handler
func NewHandler(service *allocation.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "allocation").Logger(),
	}
}

type addStrategyRequest struct {
	ID string `json:"id"`
}

type setAllocationRequest struct {
	Allocation *float64 `json:"allocation"`
}

// HandleGetPortfolio returns the current selection with its phase and totals
func (h *Handler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, http.StatusOK, h.service.State())
}

// HandleAddStrategy adds a strategy from the universe with the suggested allocation
func (h *Handler) HandleAddStrategy(w http.ResponseWriter, r *http.Request) {
	var req addStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == "" {
		h.writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	state, err := h.service.Add(req.ID)
	if err != nil {
		if errors.Is(err, universe.ErrStrategyNotFound) {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error().Err(err).Str("strategy_id", req.ID).Msg("Failed to add strategy")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeState(w, http.StatusOK, state)
}

// HandleSetAllocation updates the allocation of one selected strategy
func (h *Handler) HandleSetAllocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req setAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Allocation == nil {
		h.writeError(w, http.StatusBadRequest, "allocation is required")
		return
	}

	h.writeState(w, http.StatusOK, h.service.SetAllocation(id, *req.Allocation))
}

// HandleRemoveStrategy drops a strategy from the portfolio
func (h *Handler) HandleRemoveStrategy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.writeState(w, http.StatusOK, h.service.Remove(id))
}

// HandleBalance redistributes allocations with the method named in the path
func (h *Handler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	method, err := allocation.ParseBalanceMethod(chi.URLParam(r, "method"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.service.Balance(method)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeState(w, http.StatusOK, state)
}

// HandleClear empties the portfolio
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, http.StatusOK, h.service.Clear())
}

func (h *Handler) writeState(w http.ResponseWriter, status int, state allocation.PortfolioState) {
	h.writeJSON(w, status, map[string]interface{}{
		"data": map[string]interface{}{
			"phase":                state.Phase(),
			"strategies":           state.Selected(),
			"strategy_count":       state.Len(),
			"total_allocation":     state.TotalAllocation(),
			"suggested_allocation": state.SuggestedAllocation(),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
