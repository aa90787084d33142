package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanDeploy(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		count int
		want  bool
	}{
		{"exactly 100", 100, 3, true},
		{"99 is not enough", 99, 3, false},
		{"over allocated", 101, 2, false},
		{"empty portfolio", 100, 0, false},
		{"fractional sum", 33.3 + 33.3 + 33.4, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDeploy(tt.total, tt.count))
		})
	}
}

func TestEvaluateDeploy(t *testing.T) {
	status := EvaluateDeploy(99, 2)
	assert.False(t, status.Allowed)
	assert.Equal(t, 1.0, status.RemainingAllocation)
	assert.Equal(t, ReasonUnderAllocated, status.Reason)

	status = EvaluateDeploy(120, 2)
	assert.False(t, status.Allowed)
	assert.Equal(t, -20.0, status.RemainingAllocation)
	assert.Equal(t, ReasonOverAllocated, status.Reason)

	status = EvaluateDeploy(0, 0)
	assert.Equal(t, ReasonEmpty, status.Reason)

	status = EvaluateDeploy(100, 1)
	assert.True(t, status.Allowed)
	assert.Empty(t, status.Reason)
	assert.Equal(t, 0.0, status.RemainingAllocation)
}
