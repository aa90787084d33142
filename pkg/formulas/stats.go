// Package formulas holds the small numeric helpers shared by the portfolio calculations.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Sum adds up all values.
func Sum(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Sum(data)
}

// WeightedSum returns Σ values[i]*weights[i]. Weights are used as given, without
// normalisation. Slices of different length yield 0.
func WeightedSum(values, weights []float64) float64 {
	if len(values) == 0 || len(values) != len(weights) {
		return 0
	}
	return floats.Dot(values, weights)
}

// QuadratureSum returns sqrt(Σ values[i]²), the Euclidean norm of values.
func QuadratureSum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Norm(values, 2)
}

// DivideOrUnit divides numerator by denominator, substituting 1 for a zero denominator.
func DivideOrUnit(numerator, denominator float64) float64 {
	if denominator == 0 {
		denominator = 1
	}
	return numerator / denominator
}

// Clamp bounds v to [lo, hi]. NaN clamps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round rounds a float64 to n decimal places
func Round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
