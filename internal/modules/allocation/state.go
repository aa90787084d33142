// Package allocation maintains the user's selected strategies and the heuristics
// that distribute capital across them.
package allocation

import (
	"math"

	"github.com/aristath/strategy-builder/pkg/formulas"
)

const (
	fullAllocation = 100.0
	// riskCeiling is the score at which a strategy receives no risk-based weight
	riskCeiling = 10.0
)

// PortfolioState is an immutable snapshot of the selected strategies.
// Every transition returns a new state and leaves the receiver untouched.
// The zero value is an empty portfolio.
type PortfolioState struct {
	selected []SelectedStrategy
}

// NewPortfolioState builds a state from existing selections. Allocations are
// clamped to [0, 100] and repeated ids keep their first occurrence.
func NewPortfolioState(selected ...SelectedStrategy) PortfolioState {
	seen := make(map[string]bool, len(selected))
	out := make([]SelectedStrategy, 0, len(selected))
	for _, s := range selected {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		s.Allocation = formulas.Clamp(s.Allocation, 0, fullAllocation)
		out = append(out, s)
	}
	return PortfolioState{selected: out}
}

// Selected returns a copy of the selected strategies in insertion order
func (p PortfolioState) Selected() []SelectedStrategy {
	cp := make([]SelectedStrategy, len(p.selected))
	copy(cp, p.selected)
	return cp
}

// Len returns the number of selected strategies
func (p PortfolioState) Len() int {
	return len(p.selected)
}

// Phase reports NoPositions for an empty portfolio, HasPositions otherwise
func (p PortfolioState) Phase() Phase {
	if len(p.selected) == 0 {
		return NoPositions
	}
	return HasPositions
}

// TotalAllocation sums the allocations of every selected strategy
func (p PortfolioState) TotalAllocation() float64 {
	total := 0.0
	for _, s := range p.selected {
		total += s.Allocation
	}
	return total
}

// IDs returns the selected strategy ids in insertion order
func (p PortfolioState) IDs() []string {
	ids := make([]string, len(p.selected))
	for i, s := range p.selected {
		ids[i] = s.ID
	}
	return ids
}

// Get returns the selection with the given id
func (p PortfolioState) Get(id string) (SelectedStrategy, bool) {
	i := p.indexOf(id)
	if i < 0 {
		return SelectedStrategy{}, false
	}
	return p.selected[i], true
}

// Contains reports whether id is selected
func (p PortfolioState) Contains(id string) bool {
	return p.indexOf(id) >= 0
}

func (p PortfolioState) indexOf(id string) int {
	for i, s := range p.selected {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// SuggestedAllocation is the allocation a newly added strategy would receive:
// an equal share among n+1 strategies, capped by the unallocated capacity.
func (p PortfolioState) SuggestedAllocation() float64 {
	equalShare := math.Round(fullAllocation / float64(len(p.selected)+1))
	remaining := fullAllocation - p.TotalAllocation()
	return math.Max(0, math.Min(remaining, equalShare))
}

// Add appends s with the suggested allocation. Adding an id that is already
// selected returns the state unchanged.
func (p PortfolioState) Add(s SelectedStrategy) PortfolioState {
	if p.Contains(s.ID) {
		return p
	}

	s.Allocation = p.SuggestedAllocation()
	next := make([]SelectedStrategy, len(p.selected), len(p.selected)+1)
	copy(next, p.selected)
	return PortfolioState{selected: append(next, s)}
}

// Remove drops id from the portfolio. Remaining allocations are left as they are.
func (p PortfolioState) Remove(id string) PortfolioState {
	i := p.indexOf(id)
	if i < 0 {
		return p
	}

	next := make([]SelectedStrategy, 0, len(p.selected)-1)
	next = append(next, p.selected[:i]...)
	next = append(next, p.selected[i+1:]...)
	return PortfolioState{selected: next}
}

// SetAllocation sets the allocation of id, clamped to [0, 100]. Other
// allocations are not adjusted. Unknown ids are ignored.
func (p PortfolioState) SetAllocation(id string, pct float64) PortfolioState {
	i := p.indexOf(id)
	if i < 0 {
		return p
	}

	next := p.Selected()
	next[i].Allocation = formulas.Clamp(pct, 0, fullAllocation)
	return PortfolioState{selected: next}
}

// Clear empties the portfolio
func (p PortfolioState) Clear() PortfolioState {
	return PortfolioState{}
}

// AutoBalanceEqual gives every strategy floor(100/n); the first strategy also
// absorbs the integer remainder so allocations sum to exactly 100.
func (p PortfolioState) AutoBalanceEqual() PortfolioState {
	n := len(p.selected)
	if n == 0 {
		return p
	}

	share := math.Floor(fullAllocation / float64(n))
	next := p.Selected()
	for i := range next {
		next[i].Allocation = share
	}
	next[0].Allocation += fullAllocation - float64(n)*share
	return PortfolioState{selected: next}
}

// RiskBasedAllocation weights each strategy by (10 - riskScore). Each share is
// rounded independently, so the total can differ from 100 by a few points.
// Scores above 10 receive no weight; if no strategy has weight the portfolio
// falls back to AutoBalanceEqual.
func (p PortfolioState) RiskBasedAllocation() PortfolioState {
	return p.weighted(func(s SelectedStrategy) float64 {
		return math.Max(0, riskCeiling-s.RiskScore)
	})
}

// SharpeBasedAllocation weights each strategy by max(0, sharpeRatio), falling
// back to AutoBalanceEqual when every Sharpe ratio is non-positive. Shares are
// rounded independently as in RiskBasedAllocation.
func (p PortfolioState) SharpeBasedAllocation() PortfolioState {
	return p.weighted(func(s SelectedStrategy) float64 {
		return math.Max(0, s.SharpeRatio)
	})
}

func (p PortfolioState) weighted(weight func(SelectedStrategy) float64) PortfolioState {
	if len(p.selected) == 0 {
		return p
	}

	weights := make([]float64, len(p.selected))
	for i, s := range p.selected {
		weights[i] = weight(s)
	}
	total := formulas.Sum(weights)
	if total <= 0 {
		return p.AutoBalanceEqual()
	}

	next := p.Selected()
	for i := range next {
		next[i].Allocation = math.Round(fullAllocation * weights[i] / total)
	}
	return PortfolioState{selected: next}
}

// Balance applies the batch heuristic named by method
func (p PortfolioState) Balance(method BalanceMethod) (PortfolioState, bool) {
	switch method {
	case BalanceEqual:
		return p.AutoBalanceEqual(), true
	case BalanceRisk:
		return p.RiskBasedAllocation(), true
	case BalanceSharpe:
		return p.SharpeBasedAllocation(), true
	default:
		return p, false
	}
}
