package model

import (
	"sort"
	"time"
)

// IntervalLength is the NEM dispatch interval.
const IntervalLength = 5 * time.Minute

// IntervalsPerDay is the number of dispatch intervals in 24 hours.
const IntervalsPerDay = 288

// BandCount is the number of price bands in a unit's bid.
const BandCount = 10

// DispatchRecord holds the cleared MW of one unit in one interval, for energy
// and every FCAS market.
type DispatchRecord struct {
	Interval time.Time
	DUID     string
	MW       map[Market]float64
}

// PriceRecord holds the realised and PD-5 forecast price of every market in
// one region and interval. LastChanged is the publication stamp used to pick
// the final record when the API returns revisions.
type PriceRecord struct {
	Interval    time.Time
	Region      string
	Actual      map[Market]float64
	Forecast    map[Market]float64
	LastChanged time.Time
}

// BidRecord holds the ten band availabilities of one unit in one market and
// interval.
type BidRecord struct {
	Interval    time.Time
	DUID        string
	Market      Market
	Bands       [BandCount]float64
	LastChanged time.Time
}

// DedupPrices keeps one record per interval, the one with the greatest
// LastChanged stamp. On equal stamps the earlier record wins, so the result
// is deterministic for a given input order. The result is sorted by interval.
func DedupPrices(recs []PriceRecord) []PriceRecord {
	best := make(map[time.Time]PriceRecord, len(recs))
	for _, r := range recs {
		cur, ok := best[r.Interval]
		if !ok || r.LastChanged.After(cur.LastChanged) {
			best[r.Interval] = r
		}
	}
	out := make([]PriceRecord, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Interval.Before(out[j].Interval) })
	return out
}

// BidKey identifies a bid observation.
type BidKey struct {
	DUID     string
	Market   Market
	Interval time.Time
}

// DedupBids keeps one record per (unit, market, interval), the one with the
// greatest LastChanged stamp; on equal stamps the earlier record wins. The
// result is sorted by unit, market, interval.
func DedupBids(recs []BidRecord) []BidRecord {
	best := make(map[BidKey]BidRecord, len(recs))
	for _, r := range recs {
		k := BidKey{DUID: r.DUID, Market: r.Market, Interval: r.Interval}
		cur, ok := best[k]
		if !ok || r.LastChanged.After(cur.LastChanged) {
			best[k] = r
		}
	}
	out := make([]BidRecord, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	SortBids(out)
	return out
}

// SortBids orders records by unit, then market, then interval.
func SortBids(recs []BidRecord) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.DUID != b.DUID {
			return a.DUID < b.DUID
		}
		if a.Market != b.Market {
			return a.Market < b.Market
		}
		return a.Interval.Before(b.Interval)
	})
}

// DedupDispatch keeps the first record per (unit, interval). Dispatch has no
// revision stamp; duplicates only arise from overlapping fetch windows and
// carry identical values. The result is sorted by unit, interval.
func DedupDispatch(recs []DispatchRecord) []DispatchRecord {
	type key struct {
		duid     string
		interval time.Time
	}
	seen := make(map[key]bool, len(recs))
	out := make([]DispatchRecord, 0, len(recs))
	for _, r := range recs {
		k := key{r.DUID, r.Interval}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	SortDispatch(out)
	return out
}

// SortDispatch orders records by unit, then interval.
func SortDispatch(recs []DispatchRecord) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.DUID != b.DUID {
			return a.DUID < b.DUID
		}
		return a.Interval.Before(b.Interval)
	})
}
