package portfolio

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/strategy-builder/internal/events"
	"github.com/aristath/strategy-builder/internal/modules/allocation"
	"github.com/aristath/strategy-builder/internal/observability"
)

// ErrDeployNotAllowed is returned when a deploy is requested for a portfolio
// that fails the deploy gate
var ErrDeployNotAllowed = errors.New("deploy not allowed")

// SelectionProvider exposes the current portfolio selection
type SelectionProvider interface {
	State() allocation.PortfolioState
}

// Snapshot is a point-in-time view of the portfolio and its aggregate metrics
type Snapshot struct {
	Phase      allocation.Phase              `json:"phase"`
	Strategies []allocation.SelectedStrategy `json:"strategies"`
	Metrics    PortfolioMetrics              `json:"metrics"`
	Deploy     DeployStatus                  `json:"deploy"`
	Timestamp  time.Time                     `json:"timestamp"`
}

// Service derives metrics and the deploy gate from the live selection.
// It never executes trades; an accepted deploy is published as an event for
// downstream consumers.
type Service struct {
	selection SelectionProvider
	events    events.Emitter
	metrics   *observability.Metrics
	log       zerolog.Logger
	now       func() time.Time
}

// NewService creates a portfolio service. emitter and metrics may be nil.
func NewService(selection SelectionProvider, emitter events.Emitter, metrics *observability.Metrics, log zerolog.Logger) *Service {
	return &Service{
		selection: selection,
		events:    emitter,
		metrics:   metrics,
		log:       log.With().Str("service", "portfolio").Logger(),
		now:       time.Now,
	}
}

// Metrics computes PortfolioMetrics for the current selection
func (s *Service) Metrics() PortfolioMetrics {
	return ComputeMetrics(s.selection.State().Selected())
}

// DeployStatus evaluates the deploy gate for the current selection
func (s *Service) DeployStatus() DeployStatus {
	state := s.selection.State()
	return EvaluateDeploy(state.TotalAllocation(), state.Len())
}

// RequestDeploy checks the deploy gate and, when it passes, publishes a
// deploy request carrying the selection and its headline metrics.
func (s *Service) RequestDeploy() (DeployStatus, error) {
	state := s.selection.State()
	status := EvaluateDeploy(state.TotalAllocation(), state.Len())
	s.metrics.RecordDeployRequest(status.Allowed)

	if !status.Allowed {
		s.log.Warn().
			Float64("total_allocation", status.TotalAllocation).
			Int("strategy_count", status.StrategyCount).
			Str("reason", status.Reason).
			Msg("Deploy rejected")
		return status, fmt.Errorf("%w: %s", ErrDeployNotAllowed, status.Reason)
	}

	m := ComputeMetrics(state.Selected())
	s.log.Info().
		Int("strategy_count", status.StrategyCount).
		Float64("expected_return", m.ExpectedReturn).
		Float64("avg_risk", m.AvgRisk).
		Msg("Deploy requested")

	if s.events != nil {
		s.events.EmitTyped(events.PortfolioDeployRequested, "portfolio", &events.DeployRequestedData{
			StrategyIDs:     state.IDs(),
			TotalAllocation: status.TotalAllocation,
			ExpectedReturn:  m.ExpectedReturn,
			AvgRisk:         m.AvgRisk,
		})
	}
	return status, nil
}

// Snapshot captures the selection, metrics and deploy status together
func (s *Service) Snapshot() Snapshot {
	state := s.selection.State()
	selected := state.Selected()
	return Snapshot{
		Phase:      state.Phase(),
		Strategies: selected,
		Metrics:    ComputeMetrics(selected),
		Deploy:     EvaluateDeploy(state.TotalAllocation(), state.Len()),
		Timestamp:  s.now().UTC(),
	}
}
