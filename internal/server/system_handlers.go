package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/strategy-builder/internal/modules/allocation"
)

// UniverseInfo exposes the size and seed of the current universe
type UniverseInfo interface {
	Count() int
	Seed() int64
}

// SelectionProvider exposes the current portfolio selection
type SelectionProvider interface {
	State() allocation.PortfolioState
}

// SystemStatusResponse represents the system status payload
type SystemStatusResponse struct {
	Status          string  `json:"status"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	CPUPercent      float64 `json:"cpu_percent"`
	MemoryPercent   float64 `json:"memory_percent"`
	Goroutines      int     `json:"goroutines"`
	UniverseSize    int     `json:"universe_size"`
	UniverseSeed    int64   `json:"universe_seed"`
	PortfolioPhase  string  `json:"portfolio_phase"`
	StrategyCount   int     `json:"strategy_count"`
	TotalAllocation float64 `json:"total_allocation"`
}

// SystemHandlers handles health and status endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	universe    UniverseInfo
	selection   SelectionProvider
	sampleStats func() (float64, float64)
}

// NewSystemHandlers creates new system handlers
func NewSystemHandlers(log zerolog.Logger, universe UniverseInfo, selection SelectionProvider) *SystemHandlers {
	h := &SystemHandlers{
		log:         log.With().Str("service", "system").Logger(),
		startupTime: time.Now(),
		universe:    universe,
		selection:   selection,
	}
	h.sampleStats = h.getSystemStats
	return h
}

// HandleHealth reports liveness
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "strategy-builder",
	})
}

// HandleSystemStatus returns process and domain status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")
	h.writeJSON(w, http.StatusOK, h.GetSystemStatusSnapshot())
}

// GetSystemStatusSnapshot returns a snapshot of the current system status.
func (h *SystemHandlers) GetSystemStatusSnapshot() SystemStatusResponse {
	cpuPercent, memPercent := h.sampleStats()
	state := h.selection.State()

	return SystemStatusResponse{
		Status:          "healthy",
		UptimeSeconds:   time.Since(h.startupTime).Seconds(),
		CPUPercent:      cpuPercent,
		MemoryPercent:   memPercent,
		Goroutines:      runtime.NumGoroutine(),
		UniverseSize:    h.universe.Count(),
		UniverseSeed:    h.universe.Seed(),
		PortfolioPhase:  string(state.Phase()),
		StrategyCount:   state.Len(),
		TotalAllocation: state.TotalAllocation(),
	}
}

// getSystemStats calculates CPU and RAM usage percentages
// Uses a short interval (100ms) so the status call stays fast
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
