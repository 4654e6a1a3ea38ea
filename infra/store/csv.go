package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ydereck/nembid/config"
	"github.com/ydereck/nembid/core/model"
	"github.com/ydereck/nembid/core/panel"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseTime(s string) (time.Time, error) {
	return time.ParseInLocation(config.TimeLayout, s, time.UTC)
}

func dispatchHeader() []string {
	h := []string{"INTERVAL", "DUID"}
	for _, m := range model.AllMarkets() {
		h = append(h, string(m))
	}
	return h
}

// WriteDispatch writes dispatch records with one column per market.
func WriteDispatch(w io.Writer, recs []model.DispatchRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dispatchHeader()); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{r.Interval.Format(config.TimeLayout), r.DUID}
		for _, m := range model.AllMarkets() {
			row = append(row, formatFloat(r.MW[m]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadDispatch reads records written by WriteDispatch.
func ReadDispatch(r io.Reader) ([]model.DispatchRecord, error) {
	rows, err := readTable(r, dispatchHeader())
	if err != nil {
		return nil, err
	}
	out := make([]model.DispatchRecord, 0, len(rows))
	for _, row := range rows {
		ts, err := parseTime(row[0])
		if err != nil {
			return nil, fmt.Errorf("store: dispatch interval: %w", err)
		}
		rec := model.DispatchRecord{Interval: ts, DUID: row[1], MW: make(map[model.Market]float64)}
		for i, m := range model.AllMarkets() {
			v, err := parseFloat(row[2+i])
			if err != nil {
				return nil, fmt.Errorf("store: dispatch %s: %w", m, err)
			}
			rec.MW[m] = v
		}
		out = append(out, rec)
	}
	return out, nil
}

func priceHeader() []string {
	h := []string{"INTERVAL", "REGION"}
	for _, m := range model.AllMarkets() {
		h = append(h, "RRP_"+string(m))
	}
	for _, m := range model.AllMarkets() {
		h = append(h, "FC_"+string(m))
	}
	return append(h, "LASTCHANGED")
}

// WritePrices writes price records with actual and forecast columns per market.
func WritePrices(w io.Writer, recs []model.PriceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(priceHeader()); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{r.Interval.Format(config.TimeLayout), r.Region}
		for _, m := range model.AllMarkets() {
			row = append(row, formatFloat(r.Actual[m]))
		}
		for _, m := range model.AllMarkets() {
			row = append(row, formatFloat(r.Forecast[m]))
		}
		row = append(row, r.LastChanged.Format(config.TimeLayout))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadPrices reads records written by WritePrices.
func ReadPrices(r io.Reader) ([]model.PriceRecord, error) {
	rows, err := readTable(r, priceHeader())
	if err != nil {
		return nil, err
	}
	nm := len(model.AllMarkets())
	out := make([]model.PriceRecord, 0, len(rows))
	for _, row := range rows {
		ts, err := parseTime(row[0])
		if err != nil {
			return nil, fmt.Errorf("store: price interval: %w", err)
		}
		lc, err := parseTime(row[2+2*nm])
		if err != nil {
			return nil, fmt.Errorf("store: price lastchanged: %w", err)
		}
		rec := model.PriceRecord{
			Interval:    ts,
			Region:      row[1],
			Actual:      make(map[model.Market]float64),
			Forecast:    make(map[model.Market]float64),
			LastChanged: lc,
		}
		for i, m := range model.AllMarkets() {
			a, err := parseFloat(row[2+i])
			if err != nil {
				return nil, fmt.Errorf("store: price %s: %w", m, err)
			}
			f, err := parseFloat(row[2+nm+i])
			if err != nil {
				return nil, fmt.Errorf("store: forecast %s: %w", m, err)
			}
			rec.Actual[m] = a
			rec.Forecast[m] = f
		}
		out = append(out, rec)
	}
	return out, nil
}

func bidHeader() []string {
	h := []string{"INTERVAL", "DUID", "BIDTYPE"}
	for i := 1; i <= model.BandCount; i++ {
		h = append(h, fmt.Sprintf("BANDAVAIL%d", i))
	}
	return append(h, "LASTCHANGED")
}

// WriteBids writes bid records with the ten availability bands.
func WriteBids(w io.Writer, recs []model.BidRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(bidHeader()); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{r.Interval.Format(config.TimeLayout), r.DUID, string(r.Market)}
		for _, b := range r.Bands {
			row = append(row, formatFloat(b))
		}
		row = append(row, r.LastChanged.Format(config.TimeLayout))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadBids reads records written by WriteBids.
func ReadBids(r io.Reader) ([]model.BidRecord, error) {
	rows, err := readTable(r, bidHeader())
	if err != nil {
		return nil, err
	}
	out := make([]model.BidRecord, 0, len(rows))
	for _, row := range rows {
		ts, err := parseTime(row[0])
		if err != nil {
			return nil, fmt.Errorf("store: bid interval: %w", err)
		}
		market, err := model.ParseMarket(row[2])
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		lc, err := parseTime(row[3+model.BandCount])
		if err != nil {
			return nil, fmt.Errorf("store: bid lastchanged: %w", err)
		}
		rec := model.BidRecord{Interval: ts, DUID: row[1], Market: market, LastChanged: lc}
		for i := 0; i < model.BandCount; i++ {
			v, err := parseFloat(row[3+i])
			if err != nil {
				return nil, fmt.Errorf("store: bid band %d: %w", i+1, err)
			}
			rec.Bands[i] = v
		}
		out = append(out, rec)
	}
	return out, nil
}

var panelHeader = []string{
	"interval", "duid", "market", "revised",
	"fe", "abs_fe", "ln_abs_fe", "sigma",
	"share_energy", "share30", "log_cap", "battery",
}

// WritePanel writes built panel rows.
func WritePanel(w io.Writer, rows []panel.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(panelHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Interval.Format(config.TimeLayout),
			r.DUID,
			string(r.Market),
			strconv.Itoa(r.Revised),
			formatFloat(r.FE),
			formatFloat(r.AbsFE),
			formatFloat(r.LnAbsFE),
			formatFloat(r.Sigma),
			formatFloat(r.ShareEnergy),
			formatFloat(r.Share30),
			formatFloat(r.LogCap),
			strconv.Itoa(r.Battery),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadPanel reads rows written by WritePanel.
func ReadPanel(r io.Reader) ([]panel.Row, error) {
	rows, err := readTable(r, panelHeader)
	if err != nil {
		return nil, err
	}
	out := make([]panel.Row, 0, len(rows))
	for _, rec := range rows {
		ts, err := parseTime(rec[0])
		if err != nil {
			return nil, fmt.Errorf("store: panel interval: %w", err)
		}
		market, err := model.ParseMarket(rec[2])
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		revised, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("store: panel revised: %w", err)
		}
		battery, err := strconv.Atoi(rec[11])
		if err != nil {
			return nil, fmt.Errorf("store: panel battery: %w", err)
		}
		row := panel.Row{
			Interval: ts,
			DUID:     rec[1],
			Market:   market,
			Revised:  revised,
			Battery:  battery,
		}
		floats := []*float64{&row.FE, &row.AbsFE, &row.LnAbsFE, &row.Sigma,
			&row.ShareEnergy, &row.Share30, &row.LogCap}
		for i, dst := range floats {
			v, err := parseFloat(rec[4+i])
			if err != nil {
				return nil, fmt.Errorf("store: panel %s: %w", panelHeader[4+i], err)
			}
			*dst = v
		}
		out = append(out, row)
	}
	return out, nil
}

// readTable reads all records and checks the header matches want.
func readTable(r io.Reader, want []string) ([][]string, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("store: read header: %w", err)
	}
	if len(header) != len(want) {
		return nil, fmt.Errorf("store: header has %d columns, want %d", len(header), len(want))
	}
	for i := range want {
		if header[i] != want[i] {
			return nil, fmt.Errorf("store: header column %d is %q, want %q", i, header[i], want[i])
		}
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return rows, nil
}
