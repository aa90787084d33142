package portfolio

import (
	"math"
)

// FullAllocation is the total a portfolio must reach before it can be deployed
const FullAllocation = 100.0

// allocationEpsilon absorbs float noise from fractional manual allocations
const allocationEpsilon = 1e-9

// Deploy gate rejection reasons
const (
	ReasonEmpty          = "portfolio has no strategies"
	ReasonUnderAllocated = "total allocation is below 100%"
	ReasonOverAllocated  = "total allocation exceeds 100%"
)

// DeployStatus reports whether the current selection may be deployed
type DeployStatus struct {
	Allowed             bool    `json:"allowed"`
	TotalAllocation     float64 `json:"total_allocation"`
	StrategyCount       int     `json:"strategy_count"`
	RemainingAllocation float64 `json:"remaining_allocation"`
	Reason              string  `json:"reason,omitempty"`
}

// CanDeploy is the deploy gate: the selection must be non-empty and
// allocate exactly 100%.
func CanDeploy(totalAllocation float64, count int) bool {
	return count > 0 && math.Abs(totalAllocation-FullAllocation) < allocationEpsilon
}

// EvaluateDeploy builds the DeployStatus for a total and strategy count
func EvaluateDeploy(totalAllocation float64, count int) DeployStatus {
	status := DeployStatus{
		Allowed:             CanDeploy(totalAllocation, count),
		TotalAllocation:     totalAllocation,
		StrategyCount:       count,
		RemainingAllocation: FullAllocation - totalAllocation,
	}

	switch {
	case status.Allowed:
	case count == 0:
		status.Reason = ReasonEmpty
	case totalAllocation < FullAllocation:
		status.Reason = ReasonUnderAllocated
	default:
		status.Reason = ReasonOverAllocated
	}
	return status
}
