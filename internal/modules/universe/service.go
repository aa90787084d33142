package universe

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/aristath/strategy-builder/internal/events"
	"github.com/aristath/strategy-builder/internal/modules/risk"
	"github.com/aristath/strategy-builder/internal/observability"
	"github.com/aristath/strategy-builder/pkg/formulas"
)

var (
	// ErrStrategyNotFound is returned when an id is not part of the current universe
	ErrStrategyNotFound = errors.New("strategy not found")
	// ErrInvalidCount is returned when a regeneration size is negative or above MaxUniverseSize
	ErrInvalidCount = errors.New("universe size out of range")
)

// MaxUniverseSize bounds a single regeneration
const MaxUniverseSize = 100_000

// Service owns the current strategy universe
type Service struct {
	mu         sync.RWMutex
	strategies []Strategy
	index      map[string]int
	seed       int64

	group   singleflight.Group
	events  events.Emitter
	metrics *observability.Metrics
	log     zerolog.Logger
}

// NewService creates an empty universe service. emitter and metrics may be nil.
func NewService(emitter events.Emitter, metrics *observability.Metrics, log zerolog.Logger) *Service {
	return &Service{
		index:   make(map[string]int),
		events:  emitter,
		metrics: metrics,
		log:     log.With().Str("service", "universe").Logger(),
	}
}

// Regenerate replaces the universe with count strategies drawn from seed.
// Concurrent calls with the same arguments share one generation.
func (s *Service) Regenerate(count int, seed int64) (int, error) {
	if count < 0 || count > MaxUniverseSize {
		return 0, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidCount, count, MaxUniverseSize)
	}

	key := fmt.Sprintf("%d:%d", count, seed)
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		start := time.Now()
		strategies := Generate(count, seed)
		s.replace(strategies, seed)

		s.log.Info().
			Int("count", len(strategies)).
			Int64("seed", seed).
			Dur("duration", time.Since(start)).
			Msg("Universe regenerated")

		s.metrics.RecordUniverseRegenerated(len(strategies))
		if s.events != nil {
			s.events.EmitTyped(events.UniverseRegenerated, "universe", &events.UniverseRegeneratedData{
				Count: len(strategies),
				Seed:  seed,
			})
		}
		return len(strategies), nil
	})
	if err != nil {
		return 0, err
	}
	if shared {
		s.log.Debug().Str("key", key).Msg("Joined in-flight universe regeneration")
	}
	return v.(int), nil
}

// Load installs a fixed set of strategies in place of a generated universe.
// Tests use it to seed hand-built fixtures; the recorded seed is 0.
func (s *Service) Load(strategies []Strategy) {
	cp := make([]Strategy, len(strategies))
	copy(cp, strategies)
	s.replace(cp, 0)
	s.metrics.RecordUniverseRegenerated(len(cp))
}

func (s *Service) replace(strategies []Strategy, seed int64) {
	index := make(map[string]int, len(strategies))
	for i, st := range strategies {
		index[st.ID] = i
	}

	s.mu.Lock()
	s.strategies = strategies
	s.index = index
	s.seed = seed
	s.mu.Unlock()
}

// Seed returns the seed of the current universe
func (s *Service) Seed() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seed
}

// Count returns the size of the current universe
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.strategies)
}

// Strategies returns a copy of the current universe
func (s *Service) Strategies() []Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make([]Strategy, len(s.strategies))
	copy(cp, s.strategies)
	return cp
}

// GetByID returns the strategy with the given id
func (s *Service) GetByID(id string) (Strategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return Strategy{}, fmt.Errorf("%w: %s", ErrStrategyNotFound, id)
	}
	return s.strategies[i], nil
}

// Types returns the catalog labels present in the universe, in catalog order
func (s *Service) Types() []string {
	s.mu.RLock()
	present := make(map[string]bool)
	for _, st := range s.strategies {
		present[st.Type] = true
	}
	s.mu.RUnlock()

	types := make([]string, 0, len(present))
	for _, t := range StrategyTypes {
		if present[t] {
			types = append(types, t)
		}
	}
	return types
}

// Search filters the current universe
func (s *Service) Search(profile risk.RiskProfile, opts FilterOptions) []Strategy {
	start := time.Now()
	s.mu.RLock()
	result := Filter(s.strategies, profile, opts)
	s.mu.RUnlock()

	s.metrics.ObserveFilter(time.Since(start))
	return result
}

// Stats summarises the current universe
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sharpes := make([]float64, len(s.strategies))
	risks := make([]float64, len(s.strategies))
	typeCounts := make(map[string]int)
	for i, st := range s.strategies {
		sharpes[i] = st.SharpeRatio
		risks[i] = st.RiskScore
		typeCounts[st.Type]++
	}

	return Stats{
		Count:       len(s.strategies),
		MeanSharpe:  formulas.Round(formulas.Mean(sharpes), 4),
		MeanRisk:    formulas.Round(formulas.Mean(risks), 4),
		SharpeStdev: formulas.Round(formulas.StdDev(sharpes), 4),
		TypeCounts:  typeCounts,
	}
}
