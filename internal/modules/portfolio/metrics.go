package portfolio

import (
	"math"

	"github.com/aristath/strategy-builder/internal/modules/allocation"
	"github.com/aristath/strategy-builder/pkg/formulas"
)

// MaxDiversificationTypes caps the denominator of the diversification score
const MaxDiversificationTypes = 10

// PortfolioMetrics is the aggregate view of a selection. It is derived on
// demand and never stored.
type PortfolioMetrics struct {
	TotalAllocation      float64 `json:"total_allocation"`
	AvgRisk              float64 `json:"avg_risk"`
	AvgSharpe            float64 `json:"avg_sharpe"`
	AvgDrawdown          float64 `json:"avg_drawdown"`
	ExpectedReturn       float64 `json:"expected_return"`
	PortfolioVolatility  float64 `json:"portfolio_volatility"`
	DiversificationScore float64 `json:"diversification_score"`
	AvgBeta              float64 `json:"avg_beta"`
	AvgAlpha             float64 `json:"avg_alpha"`
	InformationRatio     float64 `json:"information_ratio"`
	SortinoLikeRatio     float64 `json:"sortino_like_ratio"`
}

// ComputeMetrics reduces a selection into PortfolioMetrics.
//
// Weights are allocation/100 and are not renormalized, so an under- or
// over-allocated portfolio reports a proportionally scaled aggregate.
// Volatility is combined in quadrature, which assumes the strategies are
// uncorrelated.
func ComputeMetrics(selected []allocation.SelectedStrategy) PortfolioMetrics {
	n := len(selected)
	if n == 0 {
		return PortfolioMetrics{}
	}

	allocations := make([]float64, n)
	weights := make([]float64, n)
	risk := make([]float64, n)
	sharpe := make([]float64, n)
	drawdown := make([]float64, n)
	profitability := make([]float64, n)
	beta := make([]float64, n)
	alpha := make([]float64, n)
	weightedVol := make([]float64, n)
	types := make(map[string]struct{}, n)

	for i, s := range selected {
		allocations[i] = s.Allocation
		weights[i] = s.Allocation / 100
		risk[i] = s.RiskScore
		sharpe[i] = s.SharpeRatio
		drawdown[i] = s.MaxDrawdown
		profitability[i] = s.Profitability
		beta[i] = s.Beta
		alpha[i] = s.Alpha
		weightedVol[i] = s.Volatility * weights[i]
		types[s.Type] = struct{}{}
	}

	m := PortfolioMetrics{
		TotalAllocation:     formulas.Sum(allocations),
		AvgRisk:             formulas.WeightedSum(risk, weights),
		AvgSharpe:           formulas.WeightedSum(sharpe, weights),
		AvgDrawdown:         formulas.WeightedSum(drawdown, weights),
		ExpectedReturn:      formulas.WeightedSum(profitability, weights),
		PortfolioVolatility: formulas.QuadratureSum(weightedVol),
		AvgBeta:             formulas.WeightedSum(beta, weights),
		AvgAlpha:            formulas.WeightedSum(alpha, weights),
	}

	m.DiversificationScore = math.Min(100, float64(len(types))/float64(min(n, MaxDiversificationTypes))*100)
	m.InformationRatio = formulas.DivideOrUnit(m.AvgAlpha, m.PortfolioVolatility)
	m.SortinoLikeRatio = formulas.DivideOrUnit(m.ExpectedReturn, math.Abs(m.AvgDrawdown))

	return m
}
