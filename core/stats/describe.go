package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the descriptive statistics reported for a price or error
// series.
type Summary struct {
	N      int
	Mean   float64
	Std    float64
	Min    float64
	Median float64
	P90    float64
	Max    float64
}

// Describe computes a Summary over xs. NaN entries are ignored. An empty
// series yields a Summary of NaNs with N zero.
func Describe(xs []float64) Summary {
	clean := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			clean = append(clean, x)
		}
	}
	if len(clean) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, Std: nan, Min: nan, Median: nan, P90: nan, Max: nan}
	}
	sort.Float64s(clean)
	return Summary{
		N:      len(clean),
		Mean:   stat.Mean(clean, nil),
		Std:    math.Sqrt(stat.Variance(clean, nil)),
		Min:    clean[0],
		Median: Quantile(clean, 0.5),
		P90:    Quantile(clean, 0.9),
		Max:    clean[len(clean)-1],
	}
}

// Quantile returns the p-quantile of sorted xs by linear interpolation
// between the order statistics at (n-1)p, the pandas default convention the
// trim cutoffs rely on.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo < 0 {
		return sorted[0]
	}
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
