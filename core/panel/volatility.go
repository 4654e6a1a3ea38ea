package panel

import (
	"sort"
	"time"

	"github.com/ydereck/nembid/core/model"
	"github.com/ydereck/nembid/core/stats"
)

// VolatilityWindow is the trailing realised-volatility window: 24 hours of
// 5-minute intervals.
const VolatilityWindow = model.IntervalsPerDay

// minVolPeriods requires the window to be at least a quarter full before a
// volatility value is produced.
const minVolPeriods = VolatilityWindow / 4

// Volatilities computes, per market, the trailing 24-hour sample standard
// deviation of the realised price at each interval. Prices must be free of
// duplicate intervals; they are processed in interval order.
func Volatilities(prices []model.PriceRecord) map[model.Market]map[time.Time]float64 {
	sorted := make([]model.PriceRecord, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Interval.Before(sorted[j].Interval) })

	out := make(map[model.Market]map[time.Time]float64, len(model.AllMarkets()))
	series := make([]float64, len(sorted))
	for _, m := range model.AllMarkets() {
		for i, p := range sorted {
			series[i] = p.Actual[m]
		}
		sigmas := stats.RollingStd(series, VolatilityWindow, minVolPeriods)
		byInterval := make(map[time.Time]float64, len(sorted))
		for i, p := range sorted {
			byInterval[p.Interval] = sigmas[i]
		}
		out[m] = byInterval
	}
	return out
}
