package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRollingStdConstantSeries(t *testing.T) {
	xs := make([]float64, 20)
	for i := range xs {
		xs[i] = 42
	}
	out := RollingStd(xs, 10, 5)
	require.True(t, math.IsNaN(out[3]))
	require.Equal(t, 0.0, out[10])
	require.Equal(t, 0.0, out[19])
}

func TestRollingStdWindowed(t *testing.T) {
	// after the window passes the jump, the std settles back to zero
	xs := []float64{0, 0, 0, 100, 100, 100, 100, 100, 100}
	out := RollingStd(xs, 3, 2)
	require.Greater(t, out[3], 0.0)
	require.Equal(t, 0.0, out[6])
}

func TestRollingSum(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	out := RollingSum(xs, 3)
	require.Equal(t, []float64{1, 3, 6, 9, 12}, out)
}

func TestDescribe(t *testing.T) {
	s := Describe([]float64{1, 2, 3, 4, 5})
	require.Equal(t, 5, s.N)
	require.InDelta(t, 3.0, s.Mean, 1e-12)
	require.InDelta(t, 3.0, s.Median, 1e-12)
	require.Equal(t, 1.0, s.Min)
	require.Equal(t, 5.0, s.Max)
}

func TestQuantileInterpolatesBetweenOrderStatistics(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	require.InDelta(t, 3.0, Quantile(sorted, 0.5), 1e-12)
	require.InDelta(t, 4.6, Quantile(sorted, 0.9), 1e-12)
	require.Equal(t, 1.0, Quantile(sorted, 0))
	require.Equal(t, 5.0, Quantile(sorted, 1))
	require.InDelta(t, 2.5, Quantile([]float64{1, 2, 3, 4}, 0.5), 1e-12)
	require.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestDescribeIgnoresNaN(t *testing.T) {
	s := Describe([]float64{math.NaN(), 2, 4})
	require.Equal(t, 2, s.N)
	require.InDelta(t, 3.0, s.Mean, 1e-12)
}

func TestDescribeEmpty(t *testing.T) {
	s := Describe(nil)
	require.Equal(t, 0, s.N)
	require.True(t, math.IsNaN(s.Mean))
}
