package universe

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/aristath/strategy-builder/pkg/formulas"
)

// Attribute ranges for generated strategies
const (
	minProfitability = -12.0
	maxProfitability = 28.0
	minLeverage      = 1.0
	maxLeverage      = 5.0
	minWinRate       = 40.0
	maxWinRate       = 85.0
	minRiskScore     = 3.0
	maxRiskScore     = 10.0
	minSharpe        = -0.6
	maxSharpe        = 2.4
	minDrawdown      = -20.0
	maxDrawdown      = 0.0
	minVolatility    = 5.0
	maxVolatility    = 30.0
	minBeta          = 0.5
	maxBeta          = 2.0
	minAlpha         = -4.5
	maxAlpha         = 10.5
)

// Generator draws synthetic strategies from an injected random source.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator over rng
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate returns count strategies drawn from a source seeded with seed.
// The same (count, seed) pair always yields the same universe.
func Generate(count int, seed int64) []Strategy {
	return NewGenerator(rand.New(rand.NewSource(seed))).Generate(count)
}

// Generate draws count strategies. Non-positive counts yield an empty slice.
func (g *Generator) Generate(count int) []Strategy {
	if count <= 0 {
		return []Strategy{}
	}

	strategies := make([]Strategy, 0, count)
	for i := 0; i < count; i++ {
		strategies = append(strategies, g.next())
	}
	return strategies
}

func (g *Generator) next() Strategy {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// rand.Rand.Read never fails
		panic(err)
	}

	prefix := g.pick(stylePrefixes)
	strategyType := g.pick(StrategyTypes)
	asset := g.pick(assetClasses)

	return Strategy{
		ID:            id.String(),
		Name:          prefix + " " + strategyType + " " + asset,
		Type:          strategyType,
		Profitability: g.uniform(minProfitability, maxProfitability, 2),
		Leverage:      g.uniform(minLeverage, maxLeverage, 1),
		WinRate:       g.uniform(minWinRate, maxWinRate, 1),
		RiskScore:     g.uniform(minRiskScore, maxRiskScore, 1),
		SharpeRatio:   g.uniform(minSharpe, maxSharpe, 2),
		MaxDrawdown:   g.uniform(minDrawdown, maxDrawdown, 2),
		Volatility:    g.uniform(minVolatility, maxVolatility, 2),
		Beta:          g.uniform(minBeta, maxBeta, 2),
		Alpha:         g.uniform(minAlpha, maxAlpha, 2),
	}
}

// uniform draws from [lo, hi] and rounds for display. Rounding can only land on
// the bounds, never outside them.
func (g *Generator) uniform(lo, hi float64, decimals int) float64 {
	return formulas.Clamp(formulas.Round(lo+g.rng.Float64()*(hi-lo), decimals), lo, hi)
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}
