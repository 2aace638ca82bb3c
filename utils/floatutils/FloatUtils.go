// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ArgMax returns the index of the maximum value in a slice of float64.
// If multiple equal max values exist, the first index is returned.
func ArgMax(values []float64) int {
	max, idx := values[0], 0

	for i, value := range values {
		if value > max {
			max = value
			idx = i
		}
	}
	return idx
}

// Max calculates and returns the maximum float64 in a list
func Max(floats ...float64) float64 {
	max := floats[0]
	for _, val := range floats {
		if val > max {
			max = val
		}
	}
	return max
}

// Softmax computes the softmax of values at inverse temperature temp.
// Higher temp sharpens the distribution towards the maximum value, and
// temp == 0 yields the uniform distribution. The largest value is
// subtracted from each exponent so that large inputs do not overflow.
func Softmax(values []float64, temp float64) []float64 {
	max := Max(values...)

	probs := make([]float64, len(values))
	var total float64
	for i, value := range values {
		probs[i] = math.Exp(temp * (value - max))
		total += probs[i]
	}
	for i := range probs {
		probs[i] /= total
	}
	return probs
}
