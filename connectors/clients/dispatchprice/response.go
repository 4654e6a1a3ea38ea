package dispatchprice

import (
	"github.com/ydereck/nembid/connectors"
	"github.com/ydereck/nembid/core/model"
)

// Response is the dispatch_price payload.
type Response struct {
	Rows []Row `json:"rows"`
}

// Row is one region-interval of realised prices and last PD-5 forecasts.
// Intervention pricing runs are flagged so only the base-case dispatch is
// kept.
type Row struct {
	SettlementDate string `json:"settlement_date"`
	RegionID       string `json:"region_id"`
	Intervention   int    `json:"intervention"`
	LastChanged    string `json:"lastchanged"`

	RRP           float64 `json:"rrp"`
	Raise6SecRRP  float64 `json:"raise6secrrp"`
	Raise60SecRRP float64 `json:"raise60secrrp"`
	Raise5MinRRP  float64 `json:"raise5minrrp"`
	RaiseRegRRP   float64 `json:"raiseregrrp"`
	Lower6SecRRP  float64 `json:"lower6secrrp"`
	Lower60SecRRP float64 `json:"lower60secrrp"`
	Lower5MinRRP  float64 `json:"lower5minrrp"`
	LowerRegRRP   float64 `json:"lowerregrrp"`

	ForecastRRP           float64 `json:"fc_rrp"`
	ForecastRaise6SecRRP  float64 `json:"fc_raise6secrrp"`
	ForecastRaise60SecRRP float64 `json:"fc_raise60secrrp"`
	ForecastRaise5MinRRP  float64 `json:"fc_raise5minrrp"`
	ForecastRaiseRegRRP   float64 `json:"fc_raiseregrrp"`
	ForecastLower6SecRRP  float64 `json:"fc_lower6secrrp"`
	ForecastLower60SecRRP float64 `json:"fc_lower60secrrp"`
	ForecastLower5MinRRP  float64 `json:"fc_lower5minrrp"`
	ForecastLowerRegRRP   float64 `json:"fc_lowerregrrp"`
}

// Len implements connectors.Response.
func (r *Response) Len() int { return len(r.Rows) }

// Records converts the payload to price records. Intervention runs are
// dropped and revisions of the same interval are collapsed onto the record
// with the greatest lastchanged stamp.
func (r *Response) Records() ([]model.PriceRecord, error) {
	out := make([]model.PriceRecord, 0, len(r.Rows))
	for _, row := range r.Rows {
		if row.Intervention != 0 {
			continue
		}
		ts, err := connectors.ParseTime(row.SettlementDate)
		if err != nil {
			return nil, err
		}
		lc := ts
		if row.LastChanged != "" {
			if lc, err = connectors.ParseTime(row.LastChanged); err != nil {
				return nil, err
			}
		}
		out = append(out, model.PriceRecord{
			Interval:    ts,
			Region:      row.RegionID,
			LastChanged: lc,
			Actual: map[model.Market]float64{
				model.MarketEnergy:     row.RRP,
				model.MarketRaise6Sec:  row.Raise6SecRRP,
				model.MarketRaise60Sec: row.Raise60SecRRP,
				model.MarketRaise5Min:  row.Raise5MinRRP,
				model.MarketRaiseReg:   row.RaiseRegRRP,
				model.MarketLower6Sec:  row.Lower6SecRRP,
				model.MarketLower60Sec: row.Lower60SecRRP,
				model.MarketLower5Min:  row.Lower5MinRRP,
				model.MarketLowerReg:   row.LowerRegRRP,
			},
			Forecast: map[model.Market]float64{
				model.MarketEnergy:     row.ForecastRRP,
				model.MarketRaise6Sec:  row.ForecastRaise6SecRRP,
				model.MarketRaise60Sec: row.ForecastRaise60SecRRP,
				model.MarketRaise5Min:  row.ForecastRaise5MinRRP,
				model.MarketRaiseReg:   row.ForecastRaiseRegRRP,
				model.MarketLower6Sec:  row.ForecastLower6SecRRP,
				model.MarketLower60Sec: row.ForecastLower60SecRRP,
				model.MarketLower5Min:  row.ForecastLower5MinRRP,
				model.MarketLowerReg:   row.ForecastLowerRegRRP,
			},
		})
	}
	return model.DedupPrices(out), nil
}
