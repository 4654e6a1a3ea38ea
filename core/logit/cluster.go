package logit

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// clusterCovariance computes the sandwich estimator H^-1 M H^-1 where M sums
// the outer products of per-cluster score vectors, with the usual G/(G-1)
// small-sample factor. Scores within a cluster are correlated freely; the
// stacked variants cluster on the dispatch interval so observations of every
// market and unit at the same time may co-move.
func clusterCovariance(d Design, mu []float64, hessInv *mat.SymDense) (*mat.SymDense, int, error) {
	n, k := d.X.Dims()

	scores := make(map[string][]float64)
	var order []string
	for i := 0; i < n; i++ {
		g := d.Groups[i]
		s, ok := scores[g]
		if !ok {
			s = make([]float64, k)
			scores[g] = s
			order = append(order, g)
		}
		r := d.Y[i] - mu[i]
		for j := 0; j < k; j++ {
			s[j] += d.X.At(i, j) * r
		}
	}
	nG := len(order)
	if nG < 2 {
		return nil, 0, ErrRankDeficient
	}

	meat := mat.NewSymDense(k, nil)
	for _, g := range order {
		s := scores[g]
		for j := 0; j < k; j++ {
			for l := j; l < k; l++ {
				meat.SetSym(j, l, meat.At(j, l)+s[j]*s[l])
			}
		}
	}

	var tmp, sandwich mat.Dense
	tmp.Mul(hessInv, meat)
	sandwich.Mul(&tmp, hessInv)

	factor := float64(nG) / float64(nG-1)
	cov := mat.NewSymDense(k, nil)
	for j := 0; j < k; j++ {
		for l := j; l < k; l++ {
			cov.SetSym(j, l, factor*sandwich.At(j, l))
		}
	}
	return cov, nG, nil
}

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// pValue is the two-sided p of a standard-normal z statistic.
func pValue(z float64) float64 {
	if z < 0 {
		z = -z
	}
	return 2 * stdNormal.Survival(z)
}
