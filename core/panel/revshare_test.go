package panel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ydereck/nembid/core/model"
)

func TestEnergyShareNeutralWhenNoRevenue(t *testing.T) {
	var in Inputs
	for i := 0; i < 4; i++ {
		in.Load = append(in.Load, model.DispatchRecord{
			Interval: interval(i), DUID: "QPS1",
			MW: map[model.Market]float64{model.MarketEnergy: 0},
		})
		in.Prices = append(in.Prices, model.PriceRecord{
			Interval: interval(i),
			Actual:   map[model.Market]float64{model.MarketEnergy: 100},
		})
	}
	shares := ComputeRevenueShares(in.Load, in.Prices)
	require.Equal(t, 0.5, shares.EnergyShare[shareKey{DUID: "QPS1", Interval: interval(2)}])
}

func TestMarketShareSplitsAcrossMarkets(t *testing.T) {
	var in Inputs
	for i := 0; i < 4; i++ {
		in.Load = append(in.Load, model.DispatchRecord{
			Interval: interval(i), DUID: "HPRG1",
			MW: map[model.Market]float64{
				model.MarketEnergy:   30,
				model.MarketRaiseReg: 10,
			},
		})
		in.Prices = append(in.Prices, model.PriceRecord{
			Interval: interval(i),
			Actual: map[model.Market]float64{
				model.MarketEnergy:   100,
				model.MarketRaiseReg: 100,
			},
		})
	}
	shares := ComputeRevenueShares(in.Load, in.Prices)
	k := marketShareKey{DUID: "HPRG1", Market: model.MarketEnergy, Interval: interval(3)}
	require.InDelta(t, 0.75, shares.MarketShare[k], 1e-12)
	k.Market = model.MarketRaiseReg
	require.InDelta(t, 0.25, shares.MarketShare[k], 1e-12)
}

func TestEnergyShareIsLagged(t *testing.T) {
	var in Inputs
	// revenue only in energy from interval 1 onwards; the share at interval 1
	// still reflects the empty window before it
	for i := 0; i < 3; i++ {
		mw := 0.0
		if i >= 1 {
			mw = 50
		}
		in.Load = append(in.Load, model.DispatchRecord{
			Interval: interval(i), DUID: "HPRG1",
			MW: map[model.Market]float64{model.MarketEnergy: mw},
		})
		in.Prices = append(in.Prices, model.PriceRecord{
			Interval: interval(i),
			Actual:   map[model.Market]float64{model.MarketEnergy: 100},
		})
	}
	shares := ComputeRevenueShares(in.Load, in.Prices)
	require.Equal(t, 0.5, shares.EnergyShare[shareKey{DUID: "HPRG1", Interval: interval(1)}])
	require.Equal(t, 1.0, shares.EnergyShare[shareKey{DUID: "HPRG1", Interval: interval(2)}])
	_, ok := shares.EnergyShare[shareKey{DUID: "HPRG1", Interval: interval(0)}]
	require.False(t, ok)
}
