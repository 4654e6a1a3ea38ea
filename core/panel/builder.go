package panel

import (
	"fmt"
	"math"
	"time"

	"github.com/ydereck/nembid/core/model"
)

// OutcomeShift is how many intervals after the forecast error the revision
// outcome is read: the first interval a participant can react to the PD-5
// miss is t+2.
const OutcomeShift = 2

// Inputs are the three fetched tables the panel is built from.
type Inputs struct {
	Load   []model.DispatchRecord
	Prices []model.PriceRecord
	Bids   []model.BidRecord
}

// Options tune the build.
type Options struct {
	// Start and End bound the sample, inclusive.
	Start time.Time
	End   time.Time
	// Batteries flags the treated units.
	Batteries map[string]bool
	// LogShift is added to |FE| before the log transform so it is defined at
	// zero error.
	LogShift float64
}

// Build joins the fetched tables into the regression panel. Duplicate keys in
// any input are rejected; bid observations without a matching price record
// are dropped, as are observations without a revision outcome at t+2. The
// result is sorted by unit, market, interval and is deterministic for a given
// input.
func Build(in Inputs, opts Options) ([]Row, error) {
	if opts.LogShift <= 0 {
		return nil, fmt.Errorf("log shift must be positive, got %g", opts.LogShift)
	}
	if err := checkDuplicates(in); err != nil {
		return nil, err
	}

	load := filterLoad(in.Load, opts.Start, opts.End)
	prices := filterPrices(in.Prices, opts.Start, opts.End)
	bids := filterBids(in.Bids, opts.Start, opts.End)

	flags := RevisionFlags(bids)
	outcomes := ShiftOutcome(bids, flags, OutcomeShift)
	caps := Capacities(load)
	shares := ComputeRevenueShares(load, prices)
	sigmas := Volatilities(prices)

	priceAt := make(map[time.Time]model.PriceRecord, len(prices))
	for _, p := range prices {
		priceAt[p.Interval] = p
	}

	rows := make([]Row, 0, len(bids))
	for _, b := range bids {
		k := model.BidKey{DUID: b.DUID, Market: b.Market, Interval: b.Interval}
		outcome, ok := outcomes[k]
		if !ok {
			continue // no observation two intervals ahead
		}
		p, ok := priceAt[b.Interval]
		if !ok {
			continue // no price for this interval
		}

		fe := p.Actual[b.Market] - p.Forecast[b.Market]
		logCap := 0.0
		if c := caps[b.DUID]; c > 0 {
			logCap = math.Log(c)
		}
		battery := 0
		if opts.Batteries[b.DUID] {
			battery = 1
		}

		rows = append(rows, Row{
			Interval:    b.Interval,
			DUID:        b.DUID,
			Market:      b.Market,
			Revised:     outcome,
			FE:          fe,
			AbsFE:       math.Abs(fe),
			LnAbsFE:     math.Log(math.Abs(fe) + opts.LogShift),
			Sigma:       sigmas[b.Market][b.Interval],
			ShareEnergy: shares.EnergyShare[shareKey{DUID: b.DUID, Interval: b.Interval}],
			Share30:     shares.MarketShare[marketShareKey{DUID: b.DUID, Market: b.Market, Interval: b.Interval}],
			LogCap:      logCap,
			Battery:     battery,
		})
	}
	Sort(rows)
	return rows, nil
}

// checkDuplicates enforces the key invariant on every input table: no two
// rows may share a (unit, market, timestamp).
func checkDuplicates(in Inputs) error {
	bidSeen := make(map[model.BidKey]bool, len(in.Bids))
	for _, b := range in.Bids {
		k := model.BidKey{DUID: b.DUID, Market: b.Market, Interval: b.Interval}
		if bidSeen[k] {
			return fmt.Errorf("duplicate bid row %s %s %s",
				b.DUID, b.Market, b.Interval.Format(time.RFC3339))
		}
		bidSeen[k] = true
	}
	priceSeen := make(map[time.Time]bool, len(in.Prices))
	for _, p := range in.Prices {
		if priceSeen[p.Interval] {
			return fmt.Errorf("duplicate price row %s", p.Interval.Format(time.RFC3339))
		}
		priceSeen[p.Interval] = true
	}
	loadSeen := make(map[shareKey]bool, len(in.Load))
	for _, l := range in.Load {
		k := shareKey{DUID: l.DUID, Interval: l.Interval}
		if loadSeen[k] {
			return fmt.Errorf("duplicate load row %s %s",
				l.DUID, l.Interval.Format(time.RFC3339))
		}
		loadSeen[k] = true
	}
	return nil
}

func filterLoad(recs []model.DispatchRecord, start, end time.Time) []model.DispatchRecord {
	out := recs[:0:0]
	for _, r := range recs {
		if inWindow(r.Interval, start, end) {
			out = append(out, r)
		}
	}
	return out
}

func filterPrices(recs []model.PriceRecord, start, end time.Time) []model.PriceRecord {
	out := recs[:0:0]
	for _, r := range recs {
		if inWindow(r.Interval, start, end) {
			out = append(out, r)
		}
	}
	return out
}

func filterBids(recs []model.BidRecord, start, end time.Time) []model.BidRecord {
	out := recs[:0:0]
	for _, r := range recs {
		if inWindow(r.Interval, start, end) {
			out = append(out, r)
		}
	}
	return out
}
