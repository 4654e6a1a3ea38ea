package logit

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// WaldTest is the outcome of a single linear restriction r'beta = q.
type WaldTest struct {
	Statistic float64
	P         float64
}

// Wald tests the restriction sum_j r[j]*beta[j] = q against the fitted
// covariance. r must align with the design columns.
func (res *Result) Wald(r []float64, q float64) (WaldTest, error) {
	k := len(res.Coefficients)
	if len(r) != k {
		return WaldTest{}, fmt.Errorf("logit: restriction has %d terms for %d coefficients", len(r), k)
	}
	var diff float64
	for j, c := range res.Coefficients {
		diff += r[j] * c.Value
	}
	diff -= q

	var v float64
	for j := 0; j < k; j++ {
		if r[j] == 0 {
			continue
		}
		for l := 0; l < k; l++ {
			if r[l] == 0 {
				continue
			}
			v += r[j] * r[l] * res.Covariance(j, l)
		}
	}
	if v <= 0 {
		return WaldTest{}, fmt.Errorf("logit: restriction variance is not positive")
	}
	w := diff * diff / v
	chi2 := distuv.ChiSquared{K: 1}
	return WaldTest{Statistic: w, P: chi2.Survival(w)}, nil
}
