package logit

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// synthDesign draws n observations from a logit with the given coefficients
// over a constant and len(beta)-1 uniform regressors.
func synthDesign(n int, beta []float64, seed int64) Design {
	rng := rand.New(rand.NewSource(seed))
	k := len(beta)
	data := make([]float64, 0, n*k)
	y := make([]float64, n)
	groups := make([]string, n)
	for i := 0; i < n; i++ {
		row := make([]float64, k)
		row[0] = 1
		for j := 1; j < k; j++ {
			row[j] = rng.Float64()*4 - 2
		}
		var eta float64
		for j := range row {
			eta += beta[j] * row[j]
		}
		p := 1 / (1 + math.Exp(-eta))
		if rng.Float64() < p {
			y[i] = 1
		}
		data = append(data, row...)
		groups[i] = fmt.Sprintf("g%d", i/10)
	}
	names := make([]string, k)
	names[0] = "const"
	for j := 1; j < k; j++ {
		names[j] = fmt.Sprintf("x%d", j)
	}
	return Design{Names: names, X: mat.NewDense(n, k, data), Y: y, Groups: groups}
}

func TestFitRecoversCoefficients(t *testing.T) {
	truth := []float64{-0.5, 1.5, -1.0}
	d := synthDesign(4000, truth, 1)

	res, err := Fit(d, Options{})
	require.NoError(t, err)
	require.Equal(t, 4000, res.N)
	require.Less(t, res.Iterations, 30)

	for j, want := range truth {
		c := res.Coefficients[j]
		require.InDeltaf(t, want, c.Value, 0.4, "coefficient %s", c.Name)
		require.Equalf(t, want > 0, c.Value > 0, "sign of %s", c.Name)
		require.Greater(t, c.StdErr, 0.0)
	}
	// strong effects should be significant at any reasonable level
	require.Less(t, res.Coefficients[1].P, 0.01)
	require.Less(t, res.Coefficients[2].P, 0.01)
}

func TestFitNoVariation(t *testing.T) {
	d := synthDesign(100, []float64{0, 1}, 2)
	for i := range d.Y {
		d.Y[i] = 0
	}
	_, err := Fit(d, Options{})
	require.ErrorIs(t, err, ErrNoVariation)
}

func TestFitSeparation(t *testing.T) {
	// outcome is exactly the sign of the regressor
	n := 60
	data := make([]float64, 0, n*2)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i-n/2) / 10
		if x >= 0 {
			x += 1
			y[i] = 1
		} else {
			x -= 1
		}
		data = append(data, 1, x)
	}
	d := Design{Names: []string{"const", "x1"}, X: mat.NewDense(n, 2, data), Y: y}
	_, err := Fit(d, Options{MaxIterations: 200})
	require.ErrorIs(t, err, ErrSeparation)
}

func TestFitRankDeficient(t *testing.T) {
	base := synthDesign(200, []float64{0.2, 0.8}, 3)
	n, _ := base.X.Dims()
	data := make([]float64, 0, n*3)
	for i := 0; i < n; i++ {
		x := base.X.At(i, 1)
		data = append(data, 1, x, 2*x) // third column is collinear
	}
	d := Design{
		Names: []string{"const", "x1", "x1_twice"},
		X:     mat.NewDense(n, 3, data),
		Y:     base.Y,
	}
	_, err := Fit(d, Options{})
	require.ErrorIs(t, err, ErrRankDeficient)
}

func TestFitClusteredErrors(t *testing.T) {
	d := synthDesign(2000, []float64{-0.2, 1.0}, 4)

	plain, err := Fit(d, Options{})
	require.NoError(t, err)
	require.Equal(t, 0, plain.Clusters)

	clustered, err := Fit(d, Options{ClusterSE: true})
	require.NoError(t, err)
	require.Equal(t, 200, clustered.Clusters)

	// same point estimates, different uncertainty
	require.InDelta(t, plain.Coefficients[1].Value, clustered.Coefficients[1].Value, 1e-9)
	require.Greater(t, clustered.Coefficients[1].StdErr, 0.0)
	require.NotEqual(t, plain.Coefficients[1].StdErr, clustered.Coefficients[1].StdErr)
}

func TestFitClusteredErrorsNeedGroups(t *testing.T) {
	d := synthDesign(100, []float64{0, 1}, 5)
	d.Groups = nil
	_, err := Fit(d, Options{ClusterSE: true})
	require.Error(t, err)
}

func TestWald(t *testing.T) {
	d := synthDesign(2000, []float64{-0.2, 1.0}, 6)
	res, err := Fit(d, Options{})
	require.NoError(t, err)

	// restriction at the fitted value is never rejected
	b1 := res.Coefficients[1].Value
	w, err := res.Wald([]float64{0, 1}, b1)
	require.NoError(t, err)
	require.InDelta(t, 0, w.Statistic, 1e-9)
	require.Greater(t, w.P, 0.99)

	// restriction far from the fitted value is rejected
	w, err = res.Wald([]float64{0, 1}, b1+10)
	require.NoError(t, err)
	require.Less(t, w.P, 1e-6)
}

func TestSummaryContainsNames(t *testing.T) {
	d := synthDesign(500, []float64{0.1, 0.5}, 7)
	res, err := Fit(d, Options{})
	require.NoError(t, err)
	s := res.Summary()
	require.Contains(t, s, "const")
	require.Contains(t, s, "x1")
	require.Contains(t, s, "log-likelihood")
}
