package logit

import (
	"fmt"
	"strings"
)

// Summary renders a fixed-width coefficient table.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "n=%d  log-likelihood=%.4f  iterations=%d", r.N, r.LogLik, r.Iterations)
	if r.Clusters > 0 {
		fmt.Fprintf(&b, "  clusters=%d", r.Clusters)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-28s %12s %12s %9s %9s\n", "", "coef", "std err", "z", "P>|z|")
	b.WriteString(strings.Repeat("-", 74))
	b.WriteString("\n")
	for _, c := range r.Coefficients {
		fmt.Fprintf(&b, "%-28s %12.4f %12.4f %9.3f %9.3f\n",
			c.Name, c.Value, c.StdErr, c.Z, c.P)
	}
	return b.String()
}

// SignedSymmetryRestriction builds the restriction vector testing whether the
// battery-adjusted response to positive surprises equals the response to
// negative surprises in the signed variant:
//
//	fe_pos + battery_x_fe_pos = fe_neg + battery_x_fe_neg
func SignedSymmetryRestriction(d Design) ([]float64, error) {
	r := make([]float64, len(d.Names))
	weights := map[string]float64{
		"fe_pos":           1,
		"battery_x_fe_pos": 1,
		"fe_neg":           -1,
		"battery_x_fe_neg": -1,
	}
	found := 0
	for j, name := range d.Names {
		if w, ok := weights[name]; ok {
			r[j] = w
			found++
		}
	}
	if found != len(weights) {
		return nil, fmt.Errorf("design is not the signed variant")
	}
	return r, nil
}
