package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RollingStd computes the trailing-window sample standard deviation at each
// index. Positions with fewer than minPeriods observations yield NaN. A
// window of constant values yields zero.
func RollingStd(xs []float64, window, minPeriods int) []float64 {
	if minPeriods < 2 {
		minPeriods = 2
	}
	out := make([]float64, len(xs))
	for i := range xs {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		win := xs[lo : i+1]
		if len(win) < minPeriods {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Sqrt(stat.Variance(win, nil))
	}
	return out
}

// RollingSum computes the trailing-window sum at each index. Short leading
// windows sum whatever is available, matching a min_periods of one.
func RollingSum(xs []float64, window int) []float64 {
	out := make([]float64, len(xs))
	var sum float64
	for i, x := range xs {
		sum += x
		if i >= window {
			sum -= xs[i-window]
		}
		out[i] = sum
	}
	return out
}
