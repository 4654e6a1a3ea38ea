// Package report computes the descriptive side of a study: revision counts
// per unit, forecast-error distributions by month and market, and price
// summaries, with HTML charts alongside.
package report

import (
	"sort"

	"github.com/ydereck/nembid/core/model"
	"github.com/ydereck/nembid/core/panel"
	"github.com/ydereck/nembid/core/stats"
)

// RevisionCount aggregates bid revisions for one unit in one market.
type RevisionCount struct {
	DUID      string
	Market    model.Market
	Battery   bool
	Intervals int
	Revisions int
}

// Share is the fraction of intervals on which the unit revised its bid.
func (c RevisionCount) Share() float64 {
	if c.Intervals == 0 {
		return 0
	}
	return float64(c.Revisions) / float64(c.Intervals)
}

// RevisionCounts tallies revisions per unit and market, ordered by unit then
// canonical market order.
func RevisionCounts(rows []panel.Row) []RevisionCount {
	type key struct {
		duid   string
		market model.Market
	}
	acc := make(map[key]*RevisionCount)
	for _, r := range rows {
		k := key{r.DUID, r.Market}
		c, ok := acc[k]
		if !ok {
			c = &RevisionCount{DUID: r.DUID, Market: r.Market, Battery: r.Battery == 1}
			acc[k] = c
		}
		c.Intervals++
		c.Revisions += r.Revised
	}
	order := make(map[model.Market]int, len(model.AllMarkets()))
	for i, m := range model.AllMarkets() {
		order[m] = i
	}
	out := make([]RevisionCount, 0, len(acc))
	for _, c := range acc {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DUID != out[j].DUID {
			return out[i].DUID < out[j].DUID
		}
		return order[out[i].Market] < order[out[j].Market]
	})
	return out
}

// MonthlyFE summarises absolute forecast errors for one market in one month.
type MonthlyFE struct {
	Month   string // 2006-01
	Market  model.Market
	Summary stats.Summary
}

// tradingMonth buckets an interval into a month, with the midnight interval
// counted against the previous trading day.
func tradingMonth(r panel.Row) string {
	t := r.Interval
	if t.Hour() == 0 && t.Minute() == 0 {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format("2006-01")
}

// MonthlyStats describes the |FE| distribution per month and market, ordered
// by month then canonical market order.
func MonthlyStats(rows []panel.Row) []MonthlyFE {
	type key struct {
		month  string
		market model.Market
	}
	acc := make(map[key][]float64)
	for _, r := range rows {
		k := key{tradingMonth(r), r.Market}
		acc[k] = append(acc[k], r.AbsFE)
	}
	order := make(map[model.Market]int, len(model.AllMarkets()))
	for i, m := range model.AllMarkets() {
		order[m] = i
	}
	out := make([]MonthlyFE, 0, len(acc))
	for k, xs := range acc {
		out = append(out, MonthlyFE{Month: k.month, Market: k.market, Summary: stats.Describe(xs)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return order[out[i].Market] < order[out[j].Market]
	})
	return out
}

// MonthlyPrice is the mean realised price of one market in one month.
type MonthlyPrice struct {
	Month  string
	Market model.Market
	Mean   float64
}

// MonthlyPrices averages realised prices per month and market, with the same
// trading-day convention as MonthlyStats.
func MonthlyPrices(recs []model.PriceRecord) []MonthlyPrice {
	type key struct {
		month  string
		market model.Market
	}
	acc := make(map[key][]float64)
	for _, r := range recs {
		t := r.Interval
		if t.Hour() == 0 && t.Minute() == 0 {
			t = t.AddDate(0, 0, -1)
		}
		month := t.Format("2006-01")
		for m, v := range r.Actual {
			k := key{month, m}
			acc[k] = append(acc[k], v)
		}
	}
	order := make(map[model.Market]int, len(model.AllMarkets()))
	for i, m := range model.AllMarkets() {
		order[m] = i
	}
	out := make([]MonthlyPrice, 0, len(acc))
	for k, xs := range acc {
		out = append(out, MonthlyPrice{Month: k.month, Market: k.market, Mean: stats.Describe(xs).Mean})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return order[out[i].Market] < order[out[j].Market]
	})
	return out
}

// PriceSummary describes the actual price distribution of each market that
// appears in the records, in canonical market order.
type PriceSummary struct {
	Market  model.Market
	Summary stats.Summary
}

// PriceSummaries computes per-market price distributions.
func PriceSummaries(recs []model.PriceRecord) []PriceSummary {
	acc := make(map[model.Market][]float64)
	for _, r := range recs {
		for m, v := range r.Actual {
			acc[m] = append(acc[m], v)
		}
	}
	var out []PriceSummary
	for _, m := range model.AllMarkets() {
		xs, ok := acc[m]
		if !ok {
			continue
		}
		out = append(out, PriceSummary{Market: m, Summary: stats.Describe(xs)})
	}
	return out
}
