package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev([]float64{5}))
	assert.InDelta(t, 1.0, StdDev([]float64{1, 2, 3}), 1e-12)
}

func TestWeightedSum(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		weights  []float64
		expected float64
	}{
		{"empty", nil, nil, 0},
		{"length mismatch", []float64{1, 2}, []float64{1}, 0},
		{"half and half", []float64{2, 8}, []float64{0.5, 0.5}, 5},
		{"weights not normalised", []float64{10, 10}, []float64{0.5, 0.4}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, WeightedSum(tt.values, tt.weights), 1e-12)
		})
	}
}

func TestQuadratureSum(t *testing.T) {
	assert.Equal(t, 0.0, QuadratureSum(nil))
	assert.InDelta(t, 5.0, QuadratureSum([]float64{3, 4}), 1e-12)
	assert.InDelta(t, math.Sqrt(125), QuadratureSum([]float64{5, 10}), 1e-12)
}

func TestDivideOrUnit(t *testing.T) {
	assert.Equal(t, 6.0, DivideOrUnit(6, 0))
	assert.Equal(t, 3.0, DivideOrUnit(6, 2))
	assert.Equal(t, -3.0, DivideOrUnit(6, -2))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(150, 0, 100))
	assert.Equal(t, 42.5, Clamp(42.5, 0, 100))
	assert.Equal(t, 0.0, Clamp(math.NaN(), 0, 100))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.23, Round(1.2345, 2))
	assert.Equal(t, 2.0, Round(1.5, 0))
}
