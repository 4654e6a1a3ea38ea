package dispatchload

import (
	"github.com/ydereck/nembid/connectors"
	"github.com/ydereck/nembid/core/model"
)

// Response is the dispatch_load payload.
type Response struct {
	Rows []Row `json:"rows"`
}

// Row is one unit-interval of cleared MW.
type Row struct {
	SettlementDate string  `json:"settlement_date"`
	DUID           string  `json:"duid"`
	TotalCleared   float64 `json:"total_cleared"`
	Raise6Sec      float64 `json:"raise6sec"`
	Raise60Sec     float64 `json:"raise60sec"`
	Raise5Min      float64 `json:"raise5min"`
	RaiseReg       float64 `json:"raisereg"`
	Lower6Sec      float64 `json:"lower6sec"`
	Lower60Sec     float64 `json:"lower60sec"`
	Lower5Min      float64 `json:"lower5min"`
	LowerReg       float64 `json:"lowerreg"`
}

// Len implements connectors.Response.
func (r *Response) Len() int { return len(r.Rows) }

// Records converts the payload to dispatch records sorted by unit and
// interval.
func (r *Response) Records() ([]model.DispatchRecord, error) {
	out := make([]model.DispatchRecord, 0, len(r.Rows))
	for _, row := range r.Rows {
		ts, err := connectors.ParseTime(row.SettlementDate)
		if err != nil {
			return nil, err
		}
		out = append(out, model.DispatchRecord{
			Interval: ts,
			DUID:     row.DUID,
			MW: map[model.Market]float64{
				model.MarketEnergy:     row.TotalCleared,
				model.MarketRaise6Sec:  row.Raise6Sec,
				model.MarketRaise60Sec: row.Raise60Sec,
				model.MarketRaise5Min:  row.Raise5Min,
				model.MarketRaiseReg:   row.RaiseReg,
				model.MarketLower6Sec:  row.Lower6Sec,
				model.MarketLower60Sec: row.Lower60Sec,
				model.MarketLower5Min:  row.Lower5Min,
				model.MarketLowerReg:   row.LowerReg,
			},
		})
	}
	model.SortDispatch(out)
	return out, nil
}
