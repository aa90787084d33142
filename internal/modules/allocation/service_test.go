package allocation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aristath/strategy-builder/internal/events"
	"github.com/aristath/strategy-builder/internal/modules/universe"
	"github.com/aristath/strategy-builder/internal/observability"
)

type stubProvider map[string]universe.Strategy

func (p stubProvider) GetByID(id string) (universe.Strategy, error) {
	s, ok := p[id]
	if !ok {
		return universe.Strategy{}, fmt.Errorf("%w: %s", universe.ErrStrategyNotFound, id)
	}
	return s, nil
}

type mockEmitter struct {
	mock.Mock
}

func (m *mockEmitter) EmitTyped(eventType events.EventType, module string, data events.EventData) {
	m.Called(eventType, module, data)
}

func newProvider() stubProvider {
	return stubProvider{
		"low":  {ID: "low", Type: "Momentum", RiskScore: 2, SharpeRatio: 1.0},
		"high": {ID: "high", Type: "Breakout", RiskScore: 8, SharpeRatio: 0.2},
	}
}

func TestService_AddResolvesFromProvider(t *testing.T) {
	emitter := &mockEmitter{}
	emitter.On("EmitTyped", events.PortfolioChanged, "allocation", &events.PortfolioChangedData{
		Operation:       "add",
		StrategyID:      "low",
		TotalAllocation: 100,
		StrategyCount:   1,
	}).Once()

	svc := NewService(newProvider(), emitter, nil, zerolog.Nop())
	state, err := svc.Add("low")

	require.NoError(t, err)
	assert.Equal(t, []string{"low"}, state.IDs())
	assert.Equal(t, HasPositions, svc.State().Phase())
	emitter.AssertExpectations(t)
}

func TestService_AddUnknownID(t *testing.T) {
	svc := NewService(newProvider(), nil, nil, zerolog.Nop())

	state, err := svc.Add("nope")
	assert.ErrorIs(t, err, universe.ErrStrategyNotFound)
	assert.Equal(t, 0, state.Len())
}

func TestService_DuplicateAddEmitsOnce(t *testing.T) {
	emitter := &mockEmitter{}
	emitter.On("EmitTyped", events.PortfolioChanged, "allocation", mock.Anything).Once()

	svc := NewService(newProvider(), emitter, nil, zerolog.Nop())
	_, err := svc.Add("low")
	require.NoError(t, err)
	_, err = svc.Add("low")
	require.NoError(t, err)

	assert.Equal(t, 1, svc.State().Len())
	emitter.AssertNumberOfCalls(t, "EmitTyped", 1)
}

func TestService_RemoveAndSetAllocation(t *testing.T) {
	svc := NewService(newProvider(), nil, nil, zerolog.Nop())
	_, err := svc.Add("low")
	require.NoError(t, err)
	_, err = svc.Add("high")
	require.NoError(t, err)

	state := svc.SetAllocation("low", 60)
	low, _ := state.Get("low")
	assert.Equal(t, 60.0, low.Allocation)

	state = svc.Remove("low")
	assert.Equal(t, []string{"high"}, state.IDs())

	// Unknown ids are no-ops
	assert.Equal(t, state.Selected(), svc.Remove("low").Selected())
	assert.Equal(t, state.Selected(), svc.SetAllocation("ghost", 10).Selected())
}

func TestService_Balance(t *testing.T) {
	svc := NewService(newProvider(), nil, nil, zerolog.Nop())
	_, _ = svc.Add("low")
	_, _ = svc.Add("high")

	state, err := svc.Balance(BalanceRisk)
	require.NoError(t, err)
	low, _ := state.Get("low")
	high, _ := state.Get("high")
	assert.Equal(t, 80.0, low.Allocation)
	assert.Equal(t, 20.0, high.Allocation)

	state, err = svc.Balance(BalanceEqual)
	require.NoError(t, err)
	assert.Equal(t, 100.0, state.TotalAllocation())

	_, err = svc.Balance("random")
	assert.ErrorIs(t, err, ErrUnknownBalanceMethod)
}

func TestService_Clear(t *testing.T) {
	svc := NewService(newProvider(), nil, nil, zerolog.Nop())
	_, _ = svc.Add("low")

	assert.Equal(t, NoPositions, svc.Clear().Phase())
}

func TestService_RecordsMetrics(t *testing.T) {
	metrics := observability.NewMetrics("test")
	svc := NewService(newProvider(), nil, metrics, zerolog.Nop())

	_, _ = svc.Add("low")
	_, _ = svc.Add("high")
	svc.SetAllocation("low", 30)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.AllocatorOperations.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AllocatorOperations.WithLabelValues("set_allocation")))
	assert.Equal(t, 30.0, testutil.ToFloat64(metrics.TotalAllocation))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.SelectedStrategies))
}

func TestService_ConcurrentMutationsStayConsistent(t *testing.T) {
	provider := stubProvider{}
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("s%d", i)
		provider[id] = universe.Strategy{ID: id, RiskScore: float64(3 + i%7), SharpeRatio: float64(i%4) / 2}
	}
	svc := NewService(provider, nil, nil, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i)
			_, _ = svc.Add(id)
			_, _ = svc.Add(id)
			_, _ = svc.Balance(BalanceEqual)
		}(i)
	}
	wg.Wait()

	state := svc.State()
	assert.Equal(t, 20, state.Len())

	seen := make(map[string]bool)
	for _, id := range state.IDs() {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	final, err := svc.Balance(BalanceEqual)
	require.NoError(t, err)
	assert.Equal(t, 100.0, final.TotalAllocation())
}

func TestParseBalanceMethod(t *testing.T) {
	m, err := ParseBalanceMethod(" Sharpe ")
	require.NoError(t, err)
	assert.Equal(t, BalanceSharpe, m)

	_, err = ParseBalanceMethod("kelly")
	assert.ErrorIs(t, err, ErrUnknownBalanceMethod)
}
