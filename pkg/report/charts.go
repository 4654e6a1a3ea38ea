package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ydereck/nembid/core/model"
)

// PriceChartHTML renders the actual price series of one market as a line
// chart.
func PriceChartHTML(recs []model.PriceRecord, market model.Market) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s Price", market)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date & Time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price ($/MWh)"}),
	)

	sorted := append([]model.PriceRecord(nil), recs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Interval.Before(sorted[j].Interval) })

	var xAxis []string
	var yAxis []opts.LineData
	for _, r := range sorted {
		v, ok := r.Actual[market]
		if !ok {
			continue
		}
		xAxis = append(xAxis, r.Interval.Format("2006-01-02 15:04"))
		yAxis = append(yAxis, opts.LineData{Value: v})
	}
	if len(xAxis) == 0 {
		return "", fmt.Errorf("report: no %s prices to chart", market)
	}

	line.SetXAxis(xAxis).AddSeries("Price", yAxis)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render chart: %v", err)
	}
	return buf.String(), nil
}

// FEChartHTML renders the monthly mean |FE| of each market as a line chart,
// one series per market.
func FEChartHTML(monthly []MonthlyFE) (string, error) {
	if len(monthly) == 0 {
		return "", fmt.Errorf("report: no forecast errors to chart")
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Monthly Forecast Error"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Mean |FE| ($/MWh)"}),
	)

	monthSet := make(map[string]bool)
	series := make(map[model.Market]map[string]float64)
	for _, m := range monthly {
		monthSet[m.Month] = true
		if series[m.Market] == nil {
			series[m.Market] = make(map[string]float64)
		}
		series[m.Market][m.Month] = m.Summary.Mean
	}
	var months []string
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	line.SetXAxis(months)
	for _, market := range model.AllMarkets() {
		byMonth, ok := series[market]
		if !ok {
			continue
		}
		var data []opts.LineData
		for _, m := range months {
			if v, present := byMonth[m]; present {
				data = append(data, opts.LineData{Value: v})
			} else {
				data = append(data, opts.LineData{Value: "-"})
			}
		}
		line.AddSeries(string(market), data)
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render chart: %v", err)
	}
	return buf.String(), nil
}

// RevisionChartHTML renders per-unit revision shares in one market as a bar
// chart, battery and thermal units as separate series.
func RevisionChartHTML(counts []RevisionCount, market model.Market) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s Revision Share", market)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Unit"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Share of intervals revised"}),
	)

	var xAxis []string
	var battery, thermal []opts.BarData
	for _, c := range counts {
		if c.Market != market {
			continue
		}
		xAxis = append(xAxis, c.DUID)
		if c.Battery {
			battery = append(battery, opts.BarData{Value: c.Share()})
			thermal = append(thermal, opts.BarData{Value: "-"})
		} else {
			battery = append(battery, opts.BarData{Value: "-"})
			thermal = append(thermal, opts.BarData{Value: c.Share()})
		}
	}
	if len(xAxis) == 0 {
		return "", fmt.Errorf("report: no %s revision counts to chart", market)
	}

	bar.SetXAxis(xAxis).
		AddSeries("Battery", battery).
		AddSeries("Thermal", thermal)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render chart: %v", err)
	}
	return buf.String(), nil
}
