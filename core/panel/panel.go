// Package panel builds the regression panel: one row per unit, market and
// dispatch interval, carrying the revision outcome at t+2 and the derived
// regressors observed at t.
package panel

import (
	"sort"
	"time"

	"github.com/ydereck/nembid/core/model"
)

// Row is one observation of the regression panel.
type Row struct {
	Interval time.Time
	DUID     string
	Market   model.Market

	// Revised is 1 when the unit changed any band availability in this
	// market two intervals after the forecast error was observed.
	Revised int

	// FE is the signed forecast error (realised minus PD-5 forecast) of the
	// market price at Interval; AbsFE its magnitude; LnAbsFE the shifted log
	// magnitude used by the plain variant.
	FE      float64
	AbsFE   float64
	LnAbsFE float64

	// Sigma is the trailing 24-hour realised volatility of the market price.
	Sigma float64

	// ShareEnergy is the unit's lagged 24-hour energy share of revenue;
	// Share30 its 30-day revenue share earned in this market.
	ShareEnergy float64
	Share30     float64

	// LogCap is ln of the unit's maximum observed dispatched MW; zero when
	// the unit never cleared.
	LogCap  float64
	Battery int
}

// Sort orders rows by unit, market, interval, the canonical panel order.
func Sort(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.DUID != b.DUID {
			return a.DUID < b.DUID
		}
		if a.Market != b.Market {
			return a.Market < b.Market
		}
		return a.Interval.Before(b.Interval)
	})
}

// Markets returns the distinct markets present in rows, in canonical order.
func Markets(rows []Row) []model.Market {
	seen := make(map[model.Market]bool)
	for _, r := range rows {
		seen[r.Market] = true
	}
	var out []model.Market
	for _, m := range model.AllMarkets() {
		if seen[m] {
			out = append(out, m)
		}
	}
	return out
}
