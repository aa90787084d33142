package testing

import (
	"github.com/aristath/strategy-builder/internal/modules/allocation"
	"github.com/aristath/strategy-builder/internal/modules/universe"
)

// NewStrategyFixtures returns a small hand-built universe covering every risk
// profile: the first is admitted everywhere, the last only by aggressive.
func NewStrategyFixtures() []universe.Strategy {
	return []universe.Strategy{
		{
			ID:            "fx-steady",
			Name:          "Alpha Momentum Equities",
			Type:          "Momentum",
			Profitability: 9.5,
			Leverage:      1.5,
			WinRate:       62,
			RiskScore:     3.5,
			SharpeRatio:   1.6,
			MaxDrawdown:   -4.2,
			Volatility:    8,
			Beta:          0.7,
			Alpha:         2.1,
		},
		{
			ID:            "fx-carry",
			Name:          "Smart Carry Trade Forex",
			Type:          "Carry Trade",
			Profitability: 12.3,
			Leverage:      2.8,
			WinRate:       58,
			RiskScore:     6.2,
			SharpeRatio:   1.1,
			MaxDrawdown:   -9.5,
			Volatility:    14,
			Beta:          1.1,
			Alpha:         3.4,
		},
		{
			ID:            "fx-grid",
			Name:          "Adaptive Grid Trading ETH",
			Type:          "Grid Trading",
			Profitability: 15.8,
			Leverage:      3.0,
			WinRate:       71,
			RiskScore:     6.8,
			SharpeRatio:   1.1,
			MaxDrawdown:   -11.0,
			Volatility:    17,
			Beta:          1.3,
			Alpha:         4.9,
		},
		{
			ID:            "fx-hft",
			Name:          "Hyper High Frequency BTC",
			Type:          "High Frequency",
			Profitability: 24.1,
			Leverage:      4.6,
			WinRate:       52,
			RiskScore:     9.4,
			SharpeRatio:   0.3,
			MaxDrawdown:   -18.7,
			Volatility:    28,
			Beta:          1.9,
			Alpha:         9.8,
		},
	}
}

// NewSelectionFixture pairs the strategy fixtures with the given allocations,
// in fixture order
func NewSelectionFixture(allocations ...float64) allocation.PortfolioState {
	strategies := NewStrategyFixtures()
	selected := make([]allocation.SelectedStrategy, 0, len(allocations))
	for i, a := range allocations {
		if i >= len(strategies) {
			break
		}
		selected = append(selected, allocation.SelectedStrategy{Strategy: strategies[i], Allocation: a})
	}
	return allocation.NewPortfolioState(selected...)
}
