package portfolio

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aristath/strategy-builder/internal/events"
	"github.com/aristath/strategy-builder/internal/modules/allocation"
	"github.com/aristath/strategy-builder/internal/modules/universe"
	"github.com/aristath/strategy-builder/internal/observability"
)

type staticSelection struct {
	state allocation.PortfolioState
}

func (s *staticSelection) State() allocation.PortfolioState {
	return s.state
}

type mockEmitter struct {
	mock.Mock
}

func (m *mockEmitter) EmitTyped(eventType events.EventType, module string, data events.EventData) {
	m.Called(eventType, module, data)
}

func twoStrategies(first, second float64) allocation.PortfolioState {
	return allocation.NewPortfolioState(
		allocation.SelectedStrategy{
			Strategy:   universe.Strategy{ID: "a", Type: "Momentum", RiskScore: 2, Profitability: 10},
			Allocation: first,
		},
		allocation.SelectedStrategy{
			Strategy:   universe.Strategy{ID: "b", Type: "Breakout", RiskScore: 8, Profitability: 20},
			Allocation: second,
		},
	)
}

func TestService_DeployStatus(t *testing.T) {
	selection := &staticSelection{state: twoStrategies(50, 49)}
	svc := NewService(selection, nil, nil, zerolog.Nop())

	status := svc.DeployStatus()
	assert.False(t, status.Allowed)
	assert.Equal(t, 99.0, status.TotalAllocation)
	assert.Equal(t, 2, status.StrategyCount)

	selection.state = twoStrategies(50, 50)
	assert.True(t, svc.DeployStatus().Allowed)
}

func TestService_RequestDeploy_Rejected(t *testing.T) {
	emitter := &mockEmitter{}
	metrics := observability.NewMetrics("test")
	svc := NewService(&staticSelection{state: twoStrategies(50, 49)}, emitter, metrics, zerolog.Nop())

	status, err := svc.RequestDeploy()

	assert.ErrorIs(t, err, ErrDeployNotAllowed)
	assert.False(t, status.Allowed)
	emitter.AssertNotCalled(t, "EmitTyped", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DeployRequests.WithLabelValues("rejected")))
}

func TestService_RequestDeploy_Accepted(t *testing.T) {
	emitter := &mockEmitter{}
	emitter.On("EmitTyped", events.PortfolioDeployRequested, "portfolio", &events.DeployRequestedData{
		StrategyIDs:     []string{"a", "b"},
		TotalAllocation: 100,
		ExpectedReturn:  15,
		AvgRisk:         5,
	}).Once()
	metrics := observability.NewMetrics("test")
	svc := NewService(&staticSelection{state: twoStrategies(50, 50)}, emitter, metrics, zerolog.Nop())

	status, err := svc.RequestDeploy()

	require.NoError(t, err)
	assert.True(t, status.Allowed)
	emitter.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DeployRequests.WithLabelValues("accepted")))
}

func TestService_MetricsAndSnapshot(t *testing.T) {
	svc := NewService(&staticSelection{state: twoStrategies(50, 50)}, nil, nil, zerolog.Nop())
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	m := svc.Metrics()
	assert.InDelta(t, 5.0, m.AvgRisk, 1e-9)
	assert.InDelta(t, 15.0, m.ExpectedReturn, 1e-9)

	snap := svc.Snapshot()
	assert.Equal(t, allocation.HasPositions, snap.Phase)
	assert.Len(t, snap.Strategies, 2)
	assert.Equal(t, m, snap.Metrics)
	assert.True(t, snap.Deploy.Allowed)
	assert.Equal(t, fixed, snap.Timestamp)
}

func TestService_EmptySnapshot(t *testing.T) {
	svc := NewService(&staticSelection{}, nil, nil, zerolog.Nop())

	snap := svc.Snapshot()
	assert.Equal(t, allocation.NoPositions, snap.Phase)
	assert.Empty(t, snap.Strategies)
	assert.Equal(t, PortfolioMetrics{}, snap.Metrics)
	assert.Equal(t, ReasonEmpty, snap.Deploy.Reason)
}
