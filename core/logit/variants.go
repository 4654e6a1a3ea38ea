package logit

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ydereck/nembid/core/model"
	"github.com/ydereck/nembid/core/panel"
)

// Variant selects the regressor set of the difference-in-differences logit.
type Variant string

const (
	// VariantPlain regresses the energy-market revision outcome on the log
	// forecast-error magnitude with a battery interaction.
	VariantPlain Variant = "plain"
	// VariantSigned splits the forecast error into positive and negative
	// log-magnitude parts, each with a battery interaction.
	VariantSigned Variant = "signed"
	// VariantStacked pools all markets with market dummies, revenue-share
	// interactions and hour effects, clustered on the interval.
	VariantStacked Variant = "stacked"
	// VariantVolatility augments the stacked set with the trailing realised
	// volatility of each market's price.
	VariantVolatility Variant = "volatility"
)

// Variants lists the supported model variants.
func Variants() []Variant {
	return []Variant{VariantPlain, VariantSigned, VariantStacked, VariantVolatility}
}

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown model variant %q", s)
}

// sigmaFloor and feFloor clip the log arguments of the stacked regressors
// away from zero.
const (
	sigmaFloor = 1e-3
	feFloor    = 1e-3
)

// BuildDesign turns panel rows into the design matrix of the requested
// variant. Rows are expected to be trimmed already; the volatility variant
// additionally drops rows whose volatility window was too short.
func BuildDesign(v Variant, rows []panel.Row) (Design, error) {
	switch v {
	case VariantPlain:
		return plainDesign(rows)
	case VariantSigned:
		return signedDesign(rows)
	case VariantStacked:
		return stackedDesign(rows, false)
	case VariantVolatility:
		return stackedDesign(rows, true)
	}
	return Design{}, fmt.Errorf("unknown model variant %q", v)
}

func energyOnly(rows []panel.Row) []panel.Row {
	out := rows[:0:0]
	for _, r := range rows {
		if r.Market == model.MarketEnergy {
			out = append(out, r)
		}
	}
	return out
}

func groupLabel(t time.Time) string { return t.Format(time.RFC3339) }

func plainDesign(rows []panel.Row) (Design, error) {
	rows = energyOnly(rows)
	if len(rows) == 0 {
		return Design{}, fmt.Errorf("no energy-market rows in panel")
	}
	d := Design{
		Names:  []string{"const", "ln_abs_fe", "battery", "battery_x_ln_abs_fe", "log_cap"},
		Y:      make([]float64, len(rows)),
		Groups: make([]string, len(rows)),
	}
	data := make([]float64, 0, len(rows)*len(d.Names))
	for i, r := range rows {
		b := float64(r.Battery)
		data = append(data, 1, r.LnAbsFE, b, b*r.LnAbsFE, r.LogCap)
		d.Y[i] = float64(r.Revised)
		d.Groups[i] = groupLabel(r.Interval)
	}
	d.X = mat.NewDense(len(rows), len(d.Names), data)
	return d, nil
}

func signedDesign(rows []panel.Row) (Design, error) {
	rows = energyOnly(rows)
	if len(rows) == 0 {
		return Design{}, fmt.Errorf("no energy-market rows in panel")
	}
	d := Design{
		Names: []string{"const", "fe_pos", "fe_neg", "battery",
			"battery_x_fe_pos", "battery_x_fe_neg", "log_cap"},
		Y:      make([]float64, len(rows)),
		Groups: make([]string, len(rows)),
	}
	data := make([]float64, 0, len(rows)*len(d.Names))
	for i, r := range rows {
		logMag := math.Log1p(r.AbsFE)
		pos, neg := 0.0, 0.0
		if r.FE > 0 {
			pos = logMag
		} else if r.FE < 0 {
			neg = logMag
		}
		b := float64(r.Battery)
		data = append(data, 1, pos, neg, b, b*pos, b*neg, r.LogCap)
		d.Y[i] = float64(r.Revised)
		d.Groups[i] = groupLabel(r.Interval)
	}
	d.X = mat.NewDense(len(rows), len(d.Names), data)
	return d, nil
}

func stackedDesign(rows []panel.Row, withVolatility bool) (Design, error) {
	if withVolatility {
		kept := rows[:0:0]
		for _, r := range rows {
			if !math.IsNaN(r.Sigma) {
				kept = append(kept, r)
			}
		}
		rows = kept
	}
	if len(rows) == 0 {
		return Design{}, fmt.Errorf("no rows in panel")
	}

	// market dummies with the energy market as baseline
	markets := panel.Markets(rows)
	var dummies []model.Market
	for _, m := range markets {
		if m != model.MarketEnergy {
			dummies = append(dummies, m)
		}
	}
	if len(dummies) == len(markets) && len(dummies) > 0 {
		dummies = dummies[1:] // energy absent: first present market is baseline
	}

	// hour dummies for the hours present, smallest as baseline
	hourSet := make(map[int]bool)
	for _, r := range rows {
		hourSet[r.Interval.Hour()] = true
	}
	var hours []int
	for h := range hourSet {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	if len(hours) > 0 {
		hours = hours[1:]
	}

	names := []string{"const", "ln_fe", "share30", "ln_fe_x_share", "log_cap"}
	if withVolatility {
		names = append(names, "ln_sigma", "ln_sigma_x_share", "ln_sigma_x_ln_fe")
	}
	for _, m := range dummies {
		mn := "m_" + string(m)
		names = append(names, mn, mn+"_x_ln_fe", mn+"_x_share", mn+"_x_ln_fe_x_share")
		if withVolatility {
			names = append(names, mn+"_x_ln_sigma", mn+"_x_ln_sigma_x_share")
		}
	}
	for _, h := range hours {
		names = append(names, fmt.Sprintf("h_%d", h))
	}

	d := Design{
		Names:  names,
		Y:      make([]float64, len(rows)),
		Groups: make([]string, len(rows)),
	}
	data := make([]float64, 0, len(rows)*len(names))
	for i, r := range rows {
		lnFE := math.Log(math.Max(r.AbsFE, feFloor))
		share := r.Share30
		data = append(data, 1, lnFE, share, lnFE*share, r.LogCap)
		var lnSigma float64
		if withVolatility {
			lnSigma = math.Log(math.Max(r.Sigma, sigmaFloor))
			data = append(data, lnSigma, lnSigma*share, lnSigma*lnFE)
		}
		for _, m := range dummies {
			dummy := 0.0
			if r.Market == m {
				dummy = 1
			}
			data = append(data, dummy, dummy*lnFE, dummy*share, dummy*lnFE*share)
			if withVolatility {
				data = append(data, dummy*lnSigma, dummy*lnSigma*share)
			}
		}
		hour := r.Interval.Hour()
		for _, h := range hours {
			if hour == h {
				data = append(data, 1)
			} else {
				data = append(data, 0)
			}
		}
		d.Y[i] = float64(r.Revised)
		d.Groups[i] = groupLabel(r.Interval)
	}
	d.X = mat.NewDense(len(rows), len(names), data)
	return d, nil
}
