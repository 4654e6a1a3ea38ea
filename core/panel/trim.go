package panel

import (
	"sort"

	"github.com/ydereck/nembid/core/model"
	"github.com/ydereck/nembid/core/stats"
)

// TrimExtremeErrors drops rows whose |FE| exceeds the per-market quantile
// cutoff, removing the most extreme forecast errors before the log transform.
// With quantile 0.99 this trims the top 1% of |FE| within each market and
// keeps everything else untouched, including row order.
func TrimExtremeErrors(rows []Row, quantile float64) []Row {
	byMarket := make(map[model.Market][]float64)
	for _, r := range rows {
		byMarket[r.Market] = append(byMarket[r.Market], r.AbsFE)
	}
	cutoff := make(map[model.Market]float64, len(byMarket))
	for m, xs := range byMarket {
		sort.Float64s(xs)
		cutoff[m] = stats.Quantile(xs, quantile)
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.AbsFE <= cutoff[r.Market] {
			out = append(out, r)
		}
	}
	return out
}
