package panel

import (
	"time"

	"github.com/ydereck/nembid/core/model"
)

// revisionKey addresses one unit-market series.
type revisionKey struct {
	DUID   string
	Market model.Market
}

// RevisionFlags marks, for each bid record, whether any band availability
// differs from the unit's previous interval in the same market. The first
// interval of each series is unmarked: with no predecessor there is nothing
// to revise against. Input must be free of duplicate (unit, market,
// interval) rows.
func RevisionFlags(bids []model.BidRecord) map[model.BidKey]int {
	sorted := make([]model.BidRecord, len(bids))
	copy(sorted, bids)
	model.SortBids(sorted)

	flags := make(map[model.BidKey]int, len(sorted))
	var prev *model.BidRecord
	for i := range sorted {
		rec := &sorted[i]
		k := model.BidKey{DUID: rec.DUID, Market: rec.Market, Interval: rec.Interval}
		changed := 0
		if prev != nil && prev.DUID == rec.DUID && prev.Market == rec.Market {
			if prev.Bands != rec.Bands {
				changed = 1
			}
		}
		flags[k] = changed
		prev = rec
	}
	return flags
}

// ShiftOutcome maps each bid observation at t to the revision flag at
// t+shift within the same unit-market series. Observations without a row
// shift intervals ahead are absent from the result.
func ShiftOutcome(bids []model.BidRecord, flags map[model.BidKey]int, shift int) map[model.BidKey]int {
	sorted := make([]model.BidRecord, len(bids))
	copy(sorted, bids)
	model.SortBids(sorted)

	out := make(map[model.BidKey]int, len(sorted))
	for i := range sorted {
		if i+shift >= len(sorted) {
			break
		}
		cur, ahead := sorted[i], sorted[i+shift]
		if cur.DUID != ahead.DUID || cur.Market != ahead.Market {
			continue
		}
		k := model.BidKey{DUID: cur.DUID, Market: cur.Market, Interval: cur.Interval}
		ak := model.BidKey{DUID: ahead.DUID, Market: ahead.Market, Interval: ahead.Interval}
		out[k] = flags[ak]
	}
	return out
}

// Capacities returns each unit's maximum dispatched energy MW over the
// sample, the capacity proxy used for the logCap regressor.
func Capacities(load []model.DispatchRecord) map[string]float64 {
	caps := make(map[string]float64)
	for _, rec := range load {
		if mw := rec.MW[model.MarketEnergy]; mw > caps[rec.DUID] {
			caps[rec.DUID] = mw
		}
	}
	return caps
}

// inWindow reports whether t lies in [start, end].
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
