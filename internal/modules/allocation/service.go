package allocation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aristath/strategy-builder/internal/events"
	"github.com/aristath/strategy-builder/internal/modules/universe"
	"github.com/aristath/strategy-builder/internal/observability"
)

// ErrUnknownBalanceMethod is returned for a balance method outside equal, risk and sharpe
var ErrUnknownBalanceMethod = errors.New("unknown balance method")

// StrategyProvider resolves strategy ids against the current universe
type StrategyProvider interface {
	GetByID(id string) (universe.Strategy, error)
}

// Service holds the live portfolio. Each operation runs as one atomic step so
// readers always observe a consistent selection.
type Service struct {
	mu    sync.Mutex
	state PortfolioState

	provider StrategyProvider
	events   events.Emitter
	metrics  *observability.Metrics
	log      zerolog.Logger
}

// NewService creates an allocator service with an empty portfolio.
// emitter and metrics may be nil.
func NewService(provider StrategyProvider, emitter events.Emitter, metrics *observability.Metrics, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		events:   emitter,
		metrics:  metrics,
		log:      log.With().Str("service", "allocation").Logger(),
	}
}

// ParseBalanceMethod validates a balance method name
func ParseBalanceMethod(s string) (BalanceMethod, error) {
	method := BalanceMethod(strings.ToLower(strings.TrimSpace(s)))
	switch method {
	case BalanceEqual, BalanceRisk, BalanceSharpe:
		return method, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBalanceMethod, s)
	}
}

// State returns the current portfolio snapshot
func (s *Service) State() PortfolioState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Selected returns the current selection
func (s *Service) Selected() []SelectedStrategy {
	return s.State().Selected()
}

// Add looks id up in the universe and adds it with the suggested allocation.
// Adding an already selected id leaves the portfolio unchanged.
func (s *Service) Add(id string) (PortfolioState, error) {
	strategy, err := s.provider.GetByID(id)
	if err != nil {
		return s.State(), fmt.Errorf("failed to resolve strategy: %w", err)
	}
	return s.AddStrategy(strategy), nil
}

// AddStrategy adds a strategy that was resolved by the caller
func (s *Service) AddStrategy(strategy universe.Strategy) PortfolioState {
	return s.apply("add", strategy.ID, func(p PortfolioState) PortfolioState {
		return p.Add(SelectedStrategy{Strategy: strategy})
	})
}

// Remove drops id from the portfolio; unknown ids are ignored
func (s *Service) Remove(id string) PortfolioState {
	return s.apply("remove", id, func(p PortfolioState) PortfolioState {
		return p.Remove(id)
	})
}

// SetAllocation sets the allocation of id, clamped to [0, 100]
func (s *Service) SetAllocation(id string, pct float64) PortfolioState {
	return s.apply("set_allocation", id, func(p PortfolioState) PortfolioState {
		return p.SetAllocation(id, pct)
	})
}

// Balance redistributes capital with the named heuristic
func (s *Service) Balance(method BalanceMethod) (PortfolioState, error) {
	if _, err := ParseBalanceMethod(string(method)); err != nil {
		return s.State(), err
	}
	return s.apply("balance_"+string(method), "", func(p PortfolioState) PortfolioState {
		next, _ := p.Balance(method)
		return next
	}), nil
}

// Clear removes every strategy
func (s *Service) Clear() PortfolioState {
	return s.apply("clear", "", func(p PortfolioState) PortfolioState {
		return p.Clear()
	})
}

func (s *Service) apply(operation, id string, transition func(PortfolioState) PortfolioState) PortfolioState {
	s.mu.Lock()
	prev := s.state
	next := transition(prev)
	s.state = next
	s.mu.Unlock()

	total := next.TotalAllocation()
	s.metrics.RecordAllocatorOperation(operation, total, next.Len())

	if sameSelection(prev, next) {
		s.log.Debug().Str("operation", operation).Str("strategy_id", id).Msg("Portfolio unchanged")
		return next
	}

	s.log.Info().
		Str("operation", operation).
		Str("strategy_id", id).
		Float64("total_allocation", total).
		Int("strategy_count", next.Len()).
		Msg("Portfolio changed")

	if s.events != nil {
		s.events.EmitTyped(events.PortfolioChanged, "allocation", &events.PortfolioChangedData{
			Operation:       operation,
			StrategyID:      id,
			TotalAllocation: total,
			StrategyCount:   next.Len(),
		})
	}
	return next
}

func sameSelection(a, b PortfolioState) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.selected {
		if a.selected[i].ID != b.selected[i].ID || a.selected[i].Allocation != b.selected[i].Allocation {
			return false
		}
	}
	return true
}
