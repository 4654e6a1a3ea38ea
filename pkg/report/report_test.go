package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ydereck/nembid/core/model"
	"github.com/ydereck/nembid/core/panel"
	"github.com/ydereck/nembid/infra/logger"
)

func row(ts time.Time, duid string, market model.Market, revised, battery int, absFE float64) panel.Row {
	return panel.Row{
		Interval: ts,
		DUID:     duid,
		Market:   market,
		Revised:  revised,
		AbsFE:    absFE,
		FE:       absFE,
		Battery:  battery,
	}
}

func TestRevisionCounts(t *testing.T) {
	t0 := time.Date(2019, 11, 1, 0, 5, 0, 0, time.UTC)
	rows := []panel.Row{
		row(t0, "HPRG1", model.MarketEnergy, 1, 1, 2),
		row(t0.Add(model.IntervalLength), "HPRG1", model.MarketEnergy, 0, 1, 1),
		row(t0, "AGLHAL", model.MarketEnergy, 0, 0, 3),
		row(t0, "HPRG1", model.MarketRaiseReg, 1, 1, 0.5),
	}
	counts := RevisionCounts(rows)
	require.Len(t, counts, 3)

	// ordered by unit, then canonical market order
	require.Equal(t, "AGLHAL", counts[0].DUID)
	require.Equal(t, "HPRG1", counts[1].DUID)
	require.Equal(t, model.MarketEnergy, counts[1].Market)
	require.Equal(t, model.MarketRaiseReg, counts[2].Market)

	require.Equal(t, 2, counts[1].Intervals)
	require.Equal(t, 1, counts[1].Revisions)
	require.Equal(t, 0.5, counts[1].Share())
	require.True(t, counts[1].Battery)
	require.False(t, counts[0].Battery)
}

func TestMonthlyStatsMidnightConvention(t *testing.T) {
	// the midnight interval belongs to the previous trading day, so the
	// first of December still counts against November
	lastNov := time.Date(2019, 12, 1, 0, 0, 0, 0, time.UTC)
	firstDec := time.Date(2019, 12, 1, 0, 5, 0, 0, time.UTC)
	rows := []panel.Row{
		row(lastNov, "HPRG1", model.MarketEnergy, 0, 1, 2),
		row(firstDec, "HPRG1", model.MarketEnergy, 0, 1, 4),
	}
	monthly := MonthlyStats(rows)
	require.Len(t, monthly, 2)
	require.Equal(t, "2019-11", monthly[0].Month)
	require.Equal(t, "2019-12", monthly[1].Month)
	require.Equal(t, 1, monthly[0].Summary.N)
	require.Equal(t, 2.0, monthly[0].Summary.Mean)
	require.Equal(t, 4.0, monthly[1].Summary.Mean)
}

func priceRecords() []model.PriceRecord {
	t0 := time.Date(2019, 11, 1, 0, 5, 0, 0, time.UTC)
	var recs []model.PriceRecord
	for i := 0; i < 4; i++ {
		recs = append(recs, model.PriceRecord{
			Interval: t0.Add(time.Duration(i) * model.IntervalLength),
			Region:   "SA1",
			Actual: map[model.Market]float64{
				model.MarketEnergy:   60 + float64(i),
				model.MarketRaiseReg: 5,
			},
			Forecast: map[model.Market]float64{model.MarketEnergy: 60},
		})
	}
	return recs
}

func TestPriceSummaries(t *testing.T) {
	summaries := PriceSummaries(priceRecords())
	require.Len(t, summaries, 2)
	require.Equal(t, model.MarketEnergy, summaries[0].Market)
	require.Equal(t, 4, summaries[0].Summary.N)
	require.Equal(t, 61.5, summaries[0].Summary.Mean)
	require.Equal(t, model.MarketRaiseReg, summaries[1].Market)
	require.Equal(t, 5.0, summaries[1].Summary.Max)
}

func TestPriceChartHTML(t *testing.T) {
	html, err := PriceChartHTML(priceRecords(), model.MarketEnergy)
	require.NoError(t, err)
	require.Contains(t, html, "ENERGY Price")
	require.Contains(t, html, "2019-11-01 00:05")

	_, err = PriceChartHTML(nil, model.MarketEnergy)
	require.Error(t, err)
}

func TestWriterRun(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, logger.NopLogger{})
	require.NoError(t, err)

	t0 := time.Date(2019, 11, 1, 0, 5, 0, 0, time.UTC)
	rows := []panel.Row{
		row(t0, "HPRG1", model.MarketEnergy, 1, 1, 2),
		row(t0, "AGLHAL", model.MarketEnergy, 0, 0, 3),
	}
	require.NoError(t, w.Run(rows, priceRecords()))

	data, err := os.ReadFile(filepath.Join(dir, "summary.md"))
	require.NoError(t, err)
	md := string(data)
	require.Contains(t, md, "HPRG1")
	require.Contains(t, md, "## Prices")

	for _, name := range []string{
		"price_energy.html", "price_raisereg.html", "revisions.html", "fe_monthly.html",
		"revision_counts.csv", "monthly_fe.csv", "monthly_prices.csv", "price_summary.csv",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoErrorf(t, err, "expected %s", name)
	}
	require.True(t, strings.Contains(md, "ENERGY"))

	data, err = os.ReadFile(filepath.Join(dir, "revision_counts.csv"))
	require.NoError(t, err)
	require.Contains(t, string(data), "duid,market,battery,intervals,revisions,share")
}

func TestMonthlyPrices(t *testing.T) {
	prices := MonthlyPrices(priceRecords())
	require.Len(t, prices, 2)
	require.Equal(t, "2019-11", prices[0].Month)
	require.Equal(t, model.MarketEnergy, prices[0].Market)
	require.Equal(t, 61.5, prices[0].Mean)
	require.Equal(t, 5.0, prices[1].Mean)
}

func TestFEChartHTML(t *testing.T) {
	t0 := time.Date(2019, 11, 1, 0, 5, 0, 0, time.UTC)
	monthly := MonthlyStats([]panel.Row{
		row(t0, "HPRG1", model.MarketEnergy, 0, 1, 2),
		row(t0.AddDate(0, 1, 0), "HPRG1", model.MarketEnergy, 0, 1, 4),
	})
	html, err := FEChartHTML(monthly)
	require.NoError(t, err)
	require.Contains(t, html, "Monthly Forecast Error")
	require.Contains(t, html, "2019-11")

	_, err = FEChartHTML(nil)
	require.Error(t, err)
}
