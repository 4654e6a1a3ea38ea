package panel

import (
	"time"

	"github.com/ydereck/nembid/core/model"
	"github.com/ydereck/nembid/core/stats"
)

// Share30Window is the rolling revenue-share window for the stacked
// variants: 30 days of 5-minute intervals.
const Share30Window = 30 * model.IntervalsPerDay

// intervalHours converts a 5-minute dispatch quantity to an energy quantity.
const intervalHours = 5.0 / 60.0

type shareKey struct {
	DUID     string
	Interval time.Time
}

type marketShareKey struct {
	DUID     string
	Market   model.Market
	Interval time.Time
}

// RevenueShares computes two rolling revenue shares from dispatched MW and
// realised prices:
//
//   - EnergyShare: the unit's trailing 24-hour energy revenue over its total
//     revenue across all markets, lagged one interval so the regressor is
//     predetermined. A window with no revenue at all takes the neutral value
//     0.5.
//   - MarketShare: the unit's trailing 30-day revenue earned in each market
//     over its total across markets at the same interval; zero when the
//     window has no revenue.
type RevenueShares struct {
	EnergyShare map[shareKey]float64
	MarketShare map[marketShareKey]float64
}

// ComputeRevenueShares derives both shares. Load records must be free of
// duplicate (unit, interval) rows.
func ComputeRevenueShares(load []model.DispatchRecord, prices []model.PriceRecord) RevenueShares {
	priceAt := make(map[time.Time]model.PriceRecord, len(prices))
	for _, p := range prices {
		priceAt[p.Interval] = p
	}

	sorted := make([]model.DispatchRecord, len(load))
	copy(sorted, load)
	model.SortDispatch(sorted)

	// interval revenue per market for each unit, in interval order per unit
	type series struct {
		intervals []time.Time
		revenue   map[model.Market][]float64
	}
	byUnit := make(map[string]*series)
	var units []string
	for _, rec := range sorted {
		p, ok := priceAt[rec.Interval]
		if !ok {
			continue
		}
		s := byUnit[rec.DUID]
		if s == nil {
			s = &series{revenue: make(map[model.Market][]float64)}
			byUnit[rec.DUID] = s
			units = append(units, rec.DUID)
		}
		s.intervals = append(s.intervals, rec.Interval)
		for _, m := range model.AllMarkets() {
			s.revenue[m] = append(s.revenue[m], rec.MW[m]*p.Actual[m]*intervalHours)
		}
	}

	out := RevenueShares{
		EnergyShare: make(map[shareKey]float64),
		MarketShare: make(map[marketShareKey]float64),
	}
	for _, duid := range units {
		s := byUnit[duid]
		n := len(s.intervals)

		// 24-hour energy vs FCAS split
		fcas := make([]float64, n)
		for _, m := range model.FCASMarkets() {
			for i, r := range s.revenue[m] {
				fcas[i] += r
			}
		}
		rollE := stats.RollingSum(s.revenue[model.MarketEnergy], model.IntervalsPerDay)
		rollF := stats.RollingSum(fcas, model.IntervalsPerDay)
		for i, ts := range s.intervals {
			if i == 0 {
				continue // lagged share undefined at the first interval
			}
			share := 0.5
			if total := rollE[i-1] + rollF[i-1]; total != 0 {
				share = rollE[i-1] / total
			}
			out.EnergyShare[shareKey{DUID: duid, Interval: ts}] = share
		}

		// 30-day per-market share
		roll := make(map[model.Market][]float64, len(model.AllMarkets()))
		total := make([]float64, n)
		for _, m := range model.AllMarkets() {
			roll[m] = stats.RollingSum(s.revenue[m], Share30Window)
			for i, r := range roll[m] {
				total[i] += r
			}
		}
		for _, m := range model.AllMarkets() {
			for i, ts := range s.intervals {
				share := 0.0
				if total[i] != 0 {
					share = roll[m][i] / total[i]
				}
				out.MarketShare[marketShareKey{DUID: duid, Market: m, Interval: ts}] = share
			}
		}
	}
	return out
}
