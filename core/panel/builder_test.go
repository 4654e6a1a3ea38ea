package panel

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ydereck/nembid/core/model"
)

var t0 = time.Date(2019, 11, 1, 0, 5, 0, 0, time.UTC)

func interval(i int) time.Time { return t0.Add(time.Duration(i) * model.IntervalLength) }

// synthInputs builds n intervals of one unit bidding in ENERGY, changing its
// first band at every interval in changed.
func synthInputs(n int, duid string, changed map[int]bool) Inputs {
	var in Inputs
	band := 10.0
	for i := 0; i < n; i++ {
		ts := interval(i)
		if changed[i] {
			band += 1
		}
		in.Bids = append(in.Bids, model.BidRecord{
			Interval: ts, DUID: duid, Market: model.MarketEnergy,
			Bands: [model.BandCount]float64{band},
		})
		in.Prices = append(in.Prices, model.PriceRecord{
			Interval: ts, Region: "SA1",
			Actual:   map[model.Market]float64{model.MarketEnergy: 50 + float64(i)},
			Forecast: map[model.Market]float64{model.MarketEnergy: 50},
		})
		in.Load = append(in.Load, model.DispatchRecord{
			Interval: ts, DUID: duid,
			MW: map[model.Market]float64{model.MarketEnergy: 100},
		})
	}
	return in
}

func buildOpts() Options {
	return Options{
		Start:     t0,
		End:       interval(10000),
		Batteries: map[string]bool{"HPRG1": true},
		LogShift:  1,
	}
}

func TestBuildOutcomeShift(t *testing.T) {
	// revision at interval 4 must show up as the outcome of interval 2
	in := synthInputs(6, "HPRG1", map[int]bool{4: true})
	rows, err := Build(in, buildOpts())
	require.NoError(t, err)
	// last two intervals have no t+2 observation
	require.Len(t, rows, 4)
	for _, r := range rows {
		want := 0
		if r.Interval.Equal(interval(2)) {
			want = 1
		}
		require.Equalf(t, want, r.Revised, "interval %s", r.Interval)
	}
}

func TestBuildDerivedColumns(t *testing.T) {
	in := synthInputs(6, "HPRG1", nil)
	rows, err := Build(in, buildOpts())
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	r := rows[3] // far enough in for the lagged energy share
	require.Equal(t, 3.0, r.FE)
	require.Equal(t, 3.0, r.AbsFE)
	require.InDelta(t, math.Log(4), r.LnAbsFE, 1e-12)
	require.InDelta(t, math.Log(100), r.LogCap, 1e-12)
	require.Equal(t, 1, r.Battery)
	require.Equal(t, 1.0, r.ShareEnergy) // energy-only unit
	require.Equal(t, 1.0, r.Share30)
}

func TestBuildRejectsDuplicates(t *testing.T) {
	in := synthInputs(4, "HPRG1", nil)
	in.Bids = append(in.Bids, in.Bids[0])
	_, err := Build(in, buildOpts())
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate bid row")

	in = synthInputs(4, "HPRG1", nil)
	in.Prices = append(in.Prices, in.Prices[2])
	_, err = Build(in, buildOpts())
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate price row")
}

func TestBuildDeterministic(t *testing.T) {
	in := synthInputs(40, "HPRG1", map[int]bool{3: true, 17: true, 30: true})
	a, err := Build(in, buildOpts())
	require.NoError(t, err)
	b, err := Build(in, buildOpts())
	require.NoError(t, err)

	// short windows leave Sigma NaN, which never compares equal to itself
	require.Equal(t, len(a), len(b))
	for i := range a {
		x, y := a[i], b[i]
		require.Equal(t, math.IsNaN(x.Sigma), math.IsNaN(y.Sigma), "row %d", i)
		if math.IsNaN(x.Sigma) {
			x.Sigma, y.Sigma = 0, 0
		}
		require.Equalf(t, x, y, "row %d", i)
	}
}

func TestBuildDropsRowsWithoutPrices(t *testing.T) {
	in := synthInputs(6, "HPRG1", nil)
	in.Prices = in.Prices[:3] // intervals 3..5 lose their price record
	rows, err := Build(in, buildOpts())
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

func TestRevisionFlagsFirstIntervalUnmarked(t *testing.T) {
	in := synthInputs(3, "HPRG1", map[int]bool{0: true, 1: true})
	flags := RevisionFlags(in.Bids)
	require.Equal(t, 0, flags[model.BidKey{DUID: "HPRG1", Market: model.MarketEnergy, Interval: interval(0)}])
	require.Equal(t, 1, flags[model.BidKey{DUID: "HPRG1", Market: model.MarketEnergy, Interval: interval(1)}])
	require.Equal(t, 0, flags[model.BidKey{DUID: "HPRG1", Market: model.MarketEnergy, Interval: interval(2)}])
}
