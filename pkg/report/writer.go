package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ydereck/nembid/core/model"
	"github.com/ydereck/nembid/core/panel"
	"github.com/ydereck/nembid/infra/logger"
)

// Writer assembles the descriptive report files under a directory.
type Writer struct {
	dir string
	log logger.Logger
}

// NewWriter creates the report directory if needed.
func NewWriter(dir string, log logger.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: create %s: %w", dir, err)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Writer{dir: dir, log: log}, nil
}

// Run writes the summary tables (markdown and CSV) plus the charts: monthly
// |FE| lines, one price series per market present, and the energy-market
// revision bars.
func (w *Writer) Run(rows []panel.Row, prices []model.PriceRecord) error {
	runID := uuid.NewString()
	counts := RevisionCounts(rows)
	monthly := MonthlyStats(rows)
	monthlyPrices := MonthlyPrices(prices)
	priceSummaries := PriceSummaries(prices)

	if err := w.writeFile("summary.md", summaryMarkdown(runID, counts, monthly, monthlyPrices, priceSummaries)); err != nil {
		return err
	}
	if err := w.writeCSVs(counts, monthly, monthlyPrices, priceSummaries); err != nil {
		return err
	}

	if html, err := FEChartHTML(monthly); err != nil {
		w.log.Warnf("skipping forecast-error chart: %v", err)
	} else if err := w.writeFile("fe_monthly.html", html); err != nil {
		return err
	}

	for _, ps := range priceSummaries {
		html, err := PriceChartHTML(prices, ps.Market)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("price_%s.html", strings.ToLower(string(ps.Market)))
		if err := w.writeFile(name, html); err != nil {
			return err
		}
	}

	if html, err := RevisionChartHTML(counts, model.MarketEnergy); err != nil {
		w.log.Warnf("skipping revision chart: %v", err)
	} else if err := w.writeFile("revisions.html", html); err != nil {
		return err
	}

	w.log.Infof("run %s: report written to %s", runID, w.dir)
	return nil
}

func (w *Writer) writeFile(name, content string) error {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", name, err)
	}
	w.log.Debugf("wrote %s", path)
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	var b strings.Builder
	cw := csv.NewWriter(&b)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return w.writeFile(name, b.String())
}

func ff(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func (w *Writer) writeCSVs(counts []RevisionCount, monthly []MonthlyFE, monthlyPrices []MonthlyPrice, prices []PriceSummary) error {
	var countRows [][]string
	for _, c := range counts {
		countRows = append(countRows, []string{
			c.DUID, string(c.Market), strconv.FormatBool(c.Battery),
			strconv.Itoa(c.Intervals), strconv.Itoa(c.Revisions), ff(c.Share()),
		})
	}
	if err := w.writeCSV("revision_counts.csv",
		[]string{"duid", "market", "battery", "intervals", "revisions", "share"},
		countRows); err != nil {
		return err
	}

	var feRows [][]string
	for _, m := range monthly {
		s := m.Summary
		feRows = append(feRows, []string{
			m.Month, string(m.Market), strconv.Itoa(s.N),
			ff(s.Mean), ff(s.Std), ff(s.Median), ff(s.P90), ff(s.Max),
		})
	}
	if err := w.writeCSV("monthly_fe.csv",
		[]string{"month", "market", "n", "mean", "std", "median", "p90", "max"},
		feRows); err != nil {
		return err
	}

	var priceRows [][]string
	for _, p := range monthlyPrices {
		priceRows = append(priceRows, []string{p.Month, string(p.Market), ff(p.Mean)})
	}
	if err := w.writeCSV("monthly_prices.csv",
		[]string{"month", "market", "mean_rrp"}, priceRows); err != nil {
		return err
	}

	var summaryRows [][]string
	for _, p := range prices {
		s := p.Summary
		summaryRows = append(summaryRows, []string{
			string(p.Market), strconv.Itoa(s.N),
			ff(s.Mean), ff(s.Std), ff(s.Min), ff(s.Median), ff(s.P90), ff(s.Max),
		})
	}
	return w.writeCSV("price_summary.csv",
		[]string{"market", "n", "mean", "std", "min", "median", "p90", "max"},
		summaryRows)
}

func summaryMarkdown(runID string, counts []RevisionCount, monthly []MonthlyFE, monthlyPrices []MonthlyPrice, prices []PriceSummary) string {
	var b strings.Builder

	b.WriteString("# Bid Revision Study\n\n")
	fmt.Fprintf(&b, "Run `%s`, generated %s.\n", runID, time.Now().UTC().Format("2006-01-02 15:04"))

	b.WriteString("## Revision counts\n\n")
	b.WriteString("| Unit | Market | Battery | Intervals | Revisions | Share |\n")
	b.WriteString("|------|--------|---------|-----------|-----------|-------|\n")
	for _, c := range counts {
		fmt.Fprintf(&b, "| %s | %s | %t | %d | %d | %.4f |\n",
			c.DUID, c.Market, c.Battery, c.Intervals, c.Revisions, c.Share())
	}

	b.WriteString("\n## Forecast error by month\n\n")
	b.WriteString("| Month | Market | N | Mean | Std | Median | P90 | Max |\n")
	b.WriteString("|-------|--------|---|------|-----|--------|-----|-----|\n")
	for _, m := range monthly {
		s := m.Summary
		fmt.Fprintf(&b, "| %s | %s | %d | %.3f | %.3f | %.3f | %.3f | %.3f |\n",
			m.Month, m.Market, s.N, s.Mean, s.Std, s.Median, s.P90, s.Max)
	}

	b.WriteString("\n## Mean price by month\n\n")
	b.WriteString("| Month | Market | Mean |\n")
	b.WriteString("|-------|--------|------|\n")
	for _, p := range monthlyPrices {
		fmt.Fprintf(&b, "| %s | %s | %.3f |\n", p.Month, p.Market, p.Mean)
	}

	b.WriteString("\n## Prices\n\n")
	b.WriteString("| Market | N | Mean | Std | Min | Median | P90 | Max |\n")
	b.WriteString("|--------|---|------|-----|-----|--------|-----|-----|\n")
	for _, p := range prices {
		s := p.Summary
		fmt.Fprintf(&b, "| %s | %d | %.3f | %.3f | %.3f | %.3f | %.3f | %.3f |\n",
			p.Market, s.N, s.Mean, s.Std, s.Min, s.Median, s.P90, s.Max)
	}

	return b.String()
}
