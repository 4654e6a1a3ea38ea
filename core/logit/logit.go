// Package logit fits binary logistic regressions by Newton-Raphson on
// gonum matrices, with conventional or cluster-robust standard errors.
package logit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoVariation indicates the outcome is constant, leaving nothing to
	// estimate.
	ErrNoVariation = errors.New("logit: outcome has no variation")
	// ErrSeparation indicates a perfect predictor drove the likelihood to
	// its boundary.
	ErrSeparation = errors.New("logit: perfect separation detected")
	// ErrNoConvergence indicates the Newton iterations ran out.
	ErrNoConvergence = errors.New("logit: estimation did not converge")
	// ErrRankDeficient indicates collinear regressors.
	ErrRankDeficient = errors.New("logit: design matrix is rank deficient")
)

// Design is a prepared estimation problem. The first column of X is the
// constant.
type Design struct {
	Names []string
	X     *mat.Dense
	Y     []float64
	// Groups carries the cluster label of each row; it may be nil when no
	// clustered errors are requested.
	Groups []string
}

// Options tune the fit.
type Options struct {
	MaxIterations int
	Tolerance     float64
	// ClusterSE selects cluster-robust standard errors using Groups.
	ClusterSE bool
}

// Coefficient is one fitted regressor.
type Coefficient struct {
	Name   string  `json:"name"`
	Value  float64 `json:"coef"`
	StdErr float64 `json:"std_err"`
	Z      float64 `json:"z"`
	P      float64 `json:"p_value"`
}

// Result is a converged fit.
type Result struct {
	Coefficients []Coefficient `json:"coefficients"`
	LogLik       float64       `json:"log_likelihood"`
	Iterations   int           `json:"iterations"`
	N            int           `json:"n"`
	// Clusters is the number of clusters behind the standard errors, zero
	// when conventional errors were used.
	Clusters int `json:"clusters,omitempty"`

	cov *mat.SymDense
}

// etaBound flags the likelihood boundary: beyond it exp(eta) has saturated
// and a perfect predictor is the only way to keep pushing.
const etaBound = 500

// sepTol bounds how close every fitted probability may sit to its label
// before the fit is declared separated. Under separation the coefficients
// diverge and the weights mu(1-mu) underflow, so the check has to fire
// before the Hessian goes numerically singular.
const sepTol = 1e-8

// perfectlyClassified reports whether every observation is fitted within
// sepTol of its label, the signature of a divergent maximum likelihood.
func perfectlyClassified(y, mu []float64) bool {
	for i := range y {
		if y[i] == 1 {
			if 1-mu[i] > sepTol {
				return false
			}
		} else if mu[i] > sepTol {
			return false
		}
	}
	return true
}

// Fit estimates the model. It surfaces, rather than recovers from,
// separation, non-convergence, rank deficiency and a constant outcome.
func Fit(d Design, opts Options) (*Result, error) {
	n, k := d.X.Dims()
	if n == 0 {
		return nil, fmt.Errorf("logit: empty design")
	}
	if len(d.Y) != n {
		return nil, fmt.Errorf("logit: outcome length %d does not match %d rows", len(d.Y), n)
	}
	if len(d.Names) != k {
		return nil, fmt.Errorf("logit: %d names for %d columns", len(d.Names), k)
	}
	ones := 0
	for _, y := range d.Y {
		switch y {
		case 0:
		case 1:
			ones++
		default:
			return nil, fmt.Errorf("logit: outcome must be 0/1, got %g", y)
		}
	}
	if ones == 0 || ones == n {
		return nil, ErrNoVariation
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 100
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = 1e-8
	}

	beta := mat.NewVecDense(k, nil)
	eta := mat.NewVecDense(n, nil)
	mu := make([]float64, n)
	w := make([]float64, n)
	grad := mat.NewVecDense(k, nil)
	hess := mat.NewSymDense(k, nil)
	delta := mat.NewVecDense(k, nil)
	var chol mat.Cholesky

	converged := false
	iters := 0
	for iter := 0; iter < opts.MaxIterations; iter++ {
		iters = iter + 1
		eta.MulVec(d.X, beta)
		for i := 0; i < n; i++ {
			e := eta.AtVec(i)
			if math.Abs(e) > etaBound {
				return nil, ErrSeparation
			}
			mu[i] = 1 / (1 + math.Exp(-e))
			w[i] = mu[i] * (1 - mu[i])
		}
		if iter > 0 && perfectlyClassified(d.Y, mu) {
			return nil, ErrSeparation
		}

		// grad = X^T (y - mu), hess = X^T W X
		for j := 0; j < k; j++ {
			var g float64
			for i := 0; i < n; i++ {
				g += d.X.At(i, j) * (d.Y[i] - mu[i])
			}
			grad.SetVec(j, g)
			for l := j; l < k; l++ {
				var h float64
				for i := 0; i < n; i++ {
					h += w[i] * d.X.At(i, j) * d.X.At(i, l)
				}
				hess.SetSym(j, l, h)
			}
		}

		if ok := chol.Factorize(hess); !ok {
			return nil, ErrRankDeficient
		}
		if err := chol.SolveVecTo(delta, grad); err != nil {
			return nil, ErrRankDeficient
		}
		beta.AddVec(beta, delta)

		if mat.Norm(delta, math.Inf(1)) < opts.Tolerance {
			converged = true
			break
		}
	}
	if !converged {
		return nil, ErrNoConvergence
	}

	// covariance at the optimum
	var hessInv mat.SymDense
	if err := chol.InverseTo(&hessInv); err != nil {
		return nil, ErrRankDeficient
	}
	cov := &hessInv
	clusters := 0
	if opts.ClusterSE {
		if len(d.Groups) != n {
			return nil, fmt.Errorf("logit: clustered errors need a group per row")
		}
		var err error
		cov, clusters, err = clusterCovariance(d, mu, &hessInv)
		if err != nil {
			return nil, err
		}
	}

	res := &Result{
		Iterations: iters,
		N:          n,
		Clusters:   clusters,
		LogLik:     logLikelihood(d.Y, mu),
		cov:        cov,
	}
	res.Coefficients = make([]Coefficient, k)
	for j := 0; j < k; j++ {
		b := beta.AtVec(j)
		se := math.Sqrt(cov.At(j, j))
		res.Coefficients[j] = Coefficient{
			Name:   d.Names[j],
			Value:  b,
			StdErr: se,
			Z:      b / se,
			P:      pValue(b / se),
		}
	}
	return res, nil
}

func logLikelihood(y, mu []float64) float64 {
	var ll float64
	for i := range y {
		if y[i] == 1 {
			ll += math.Log(mu[i])
		} else {
			ll += math.Log(1 - mu[i])
		}
	}
	return ll
}

// Covariance returns the estimated variance of the coefficient pair (i, j).
func (r *Result) Covariance(i, j int) float64 { return r.cov.At(i, j) }

// Lookup returns the fitted coefficient with the given name.
func (r *Result) Lookup(name string) (Coefficient, bool) {
	for _, c := range r.Coefficients {
		if c.Name == name {
			return c, true
		}
	}
	return Coefficient{}, false
}
