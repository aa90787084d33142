// Package handlers provides HTTP handlers for portfolio metrics and deployment.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/strategy-builder/internal/modules/portfolio"
)

// MsgpackContentType is served for snapshot requests with format=msgpack
const MsgpackContentType = "application/msgpack"

// Handler handles portfolio HTTP requests
type Handler struct {
	service *portfolio.Service
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *portfolio.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleGetMetrics returns the aggregate metrics of the current selection
func (h *Handler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, http.StatusOK, h.service.Metrics())
}

// HandleGetDeployStatus reports whether the portfolio can be deployed
func (h *Handler) HandleGetDeployStatus(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, http.StatusOK, h.service.DeployStatus())
}

// HandleDeploy requests deployment of the current portfolio.
// Returns 202 when the request was accepted and 409 when the gate rejects it.
func (h *Handler) HandleDeploy(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.RequestDeploy()
	if err != nil {
		if errors.Is(err, portfolio.ErrDeployNotAllowed) {
			h.writeJSON(w, http.StatusConflict, map[string]interface{}{
				"error": err.Error(),
				"data":  status,
			})
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeData(w, http.StatusAccepted, status)
}

// HandleGetSnapshot returns selection, metrics and deploy status in one payload.
// format=msgpack switches the encoding to MessagePack.
func (h *Handler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot := h.service.Snapshot()

	switch r.URL.Query().Get("format") {
	case "", "json":
		h.writeData(w, http.StatusOK, snapshot)
	case "msgpack":
		body, err := EncodeSnapshot(snapshot)
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to encode snapshot")
			h.writeError(w, http.StatusInternalServerError, "failed to encode snapshot")
			return
		}
		w.Header().Set("Content-Type", MsgpackContentType)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			h.log.Error().Err(err).Msg("Failed to write snapshot")
		}
	default:
		h.writeError(w, http.StatusBadRequest, "unsupported format")
	}
}

func (h *Handler) writeData(w http.ResponseWriter, status int, data interface{}) {
	h.writeJSON(w, status, map[string]interface{}{
		"data": data,
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
