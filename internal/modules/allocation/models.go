package allocation

import "github.com/aristath/strategy-builder/internal/modules/universe"

// SelectedStrategy is a strategy held in the portfolio with its share of capital.
// Allocation is a percentage in [0, 100]; allocations are not forced to sum to 100.
type SelectedStrategy struct {
	universe.Strategy
	Allocation float64 `json:"allocation"`
}

// Phase describes whether the portfolio holds any strategies
type Phase string

const (
	NoPositions  Phase = "NO_POSITIONS"
	HasPositions Phase = "HAS_POSITIONS"
)

// BalanceMethod selects a batch allocation heuristic
type BalanceMethod string

const (
	BalanceEqual  BalanceMethod = "equal"
	BalanceRisk   BalanceMethod = "risk"
	BalanceSharpe BalanceMethod = "sharpe"
)
