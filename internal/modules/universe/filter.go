package universe

import (
	"sort"
	"strings"

	"github.com/aristath/strategy-builder/internal/modules/risk"
)

// SortKey selects the ordering of filtered strategies
type SortKey string

const (
	SortByProfitability SortKey = "profitability" // descending
	SortByRisk          SortKey = "risk"          // ascending riskScore
	SortBySharpe        SortKey = "sharpe"        // descending, default
)

// AllTypes is the type filter value that matches every strategy type
const AllTypes = "all"

// FilterOptions are the browse controls applied on top of a risk profile
type FilterOptions struct {
	SearchTerm string
	TypeFilter string
	SortKey    SortKey
}

// ParseSortKey maps user input to a sort key, falling back to sharpe
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByProfitability:
		return SortByProfitability
	case SortByRisk:
		return SortByRisk
	default:
		return SortBySharpe
	}
}

// Admits reports whether s satisfies every admission threshold of profile
func Admits(profile risk.RiskProfile, s Strategy) bool {
	return s.RiskScore <= profile.MaxRisk &&
		s.Leverage <= profile.MaxLeverage &&
		s.MaxDrawdown >= profile.MaxDrawdown
}

// Filter returns the strategies of universe admitted by profile that match the
// search term and type filter, ordered by opts.SortKey. Ties keep their input
// order. The input slice is not modified.
func Filter(universe []Strategy, profile risk.RiskProfile, opts FilterOptions) []Strategy {
	term := strings.ToLower(strings.TrimSpace(opts.SearchTerm))
	typeFilter := strings.TrimSpace(opts.TypeFilter)

	result := make([]Strategy, 0, len(universe))
	for _, s := range universe {
		if !Admits(profile, s) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(s.Name), term) &&
			!strings.Contains(strings.ToLower(s.Type), term) {
			continue
		}
		if typeFilter != "" && typeFilter != AllTypes && s.Type != typeFilter {
			continue
		}
		result = append(result, s)
	}

	switch ParseSortKey(string(opts.SortKey)) {
	case SortByProfitability:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Profitability > result[j].Profitability
		})
	case SortByRisk:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].RiskScore < result[j].RiskScore
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].SharpeRatio > result[j].SharpeRatio
		})
	}

	return result
}
