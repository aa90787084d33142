// Package handlers provides HTTP handlers for the risk profile catalog.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/strategy-builder/internal/modules/risk"
)

// Handler handles risk profile HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new risk profile handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "risk").Logger(),
	}
}

// HandleGetProfiles returns every preset in display order
func (h *Handler) HandleGetProfiles(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"profiles": risk.All(),
			"custom_slider": map[string]float64{
				"min":     risk.MinCustomRisk,
				"max":     risk.MaxCustomRisk,
				"default": risk.DefaultCustomRisk,
			},
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetProfile returns one preset. For the custom label, max_risk sets
// the slider value.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := risk.ParseProfile(chi.URLParam(r, "label"), r.URL.Query().Get("max_risk"), "")
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, risk.ErrUnknownProfile) {
			status = http.StatusNotFound
		}
		h.writeError(w, status, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": profile,
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
