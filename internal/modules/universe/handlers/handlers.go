// Package handlers provides HTTP handlers for browsing and regenerating the strategy universe.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/strategy-builder/internal/modules/risk"
	"github.com/aristath/strategy-builder/internal/modules/universe"
)

// Handler handles universe HTTP requests
type Handler struct {
	service        *universe.Service
	defaultProfile risk.ProfileLabel
	defaultCount   int
	log            zerolog.Logger
}

// NewHandler creates a new universe handler. defaultProfile applies when a
// request names no profile; defaultCount when a regenerate names no count.
func NewHandler(service *universe.Service, defaultProfile risk.ProfileLabel, defaultCount int, log zerolog.Logger) *Handler {
	return &Handler{
		service:        service,
		defaultProfile: defaultProfile,
		defaultCount:   defaultCount,
		log:            log.With().Str("handler", "universe").Logger(),
	}
}

type regenerateRequest struct {
	Count *int   `json:"count"`
	Seed  *int64 `json:"seed"`
}

// HandleGetStrategies returns the strategies admitted by a risk profile,
// narrowed by search term and type and ordered by the sort key.
//
// Query: profile, max_risk, search, type, sort, limit
func (h *Handler) HandleGetStrategies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	profile, err := risk.ParseProfile(q.Get("profile"), q.Get("max_risk"), h.defaultProfile)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
	}

	opts := universe.FilterOptions{
		SearchTerm: q.Get("search"),
		TypeFilter: q.Get("type"),
		SortKey:    universe.ParseSortKey(q.Get("sort")),
	}
	strategies := h.service.Search(profile, opts)
	matched := len(strategies)
	if limit > 0 && limit < matched {
		strategies = strategies[:limit]
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"strategies": strategies,
			"matched":    matched,
			"total":      h.service.Count(),
			"profile":    profile,
			"sort":       opts.SortKey,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetStrategy returns one strategy by id
func (h *Handler) HandleGetStrategy(w http.ResponseWriter, r *http.Request) {
	strategy, err := h.service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, universe.ErrStrategyNotFound) {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeData(w, http.StatusOK, strategy)
}

// HandleGetTypes returns the strategy types present in the universe
func (h *Handler) HandleGetTypes(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, http.StatusOK, map[string]interface{}{
		"types":   h.service.Types(),
		"catalog": universe.StrategyTypes,
	})
}

// HandleGetStats returns summary statistics of the universe
func (h *Handler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, http.StatusOK, h.service.Stats())
}

// HandleRegenerate replaces the universe. An empty body regenerates with the
// configured size and a time-derived seed.
func (h *Handler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	count := h.defaultCount
	if req.Count != nil {
		count = *req.Count
	}
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	generated, err := h.service.Regenerate(count, seed)
	if err != nil {
		if errors.Is(err, universe.ErrInvalidCount) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("Failed to regenerate universe")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeData(w, http.StatusOK, map[string]interface{}{
		"count": generated,
		"seed":  seed,
	})
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
