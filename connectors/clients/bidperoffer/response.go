package bidperoffer

import (
	"github.com/ydereck/nembid/connectors"
	"github.com/ydereck/nembid/core/model"
)

// Response is the bid_per_offer payload.
type Response struct {
	Rows []Row `json:"rows"`
}

// Row is one unit-market-interval of band availabilities.
type Row struct {
	IntervalDatetime string  `json:"interval_datetime"`
	DUID             string  `json:"duid"`
	BidType          string  `json:"bidtype"`
	LastChanged      string  `json:"lastchanged"`
	BandAvail1       float64 `json:"bandavail1"`
	BandAvail2       float64 `json:"bandavail2"`
	BandAvail3       float64 `json:"bandavail3"`
	BandAvail4       float64 `json:"bandavail4"`
	BandAvail5       float64 `json:"bandavail5"`
	BandAvail6       float64 `json:"bandavail6"`
	BandAvail7       float64 `json:"bandavail7"`
	BandAvail8       float64 `json:"bandavail8"`
	BandAvail9       float64 `json:"bandavail9"`
	BandAvail10      float64 `json:"bandavail10"`
}

// Len implements connectors.Response.
func (r *Response) Len() int { return len(r.Rows) }

// Records converts the payload to bid records. Rows with a bid type outside
// the known markets are skipped; duplicate (unit, market, interval) rows are
// collapsed onto the record with the greatest lastchanged stamp.
func (r *Response) Records() ([]model.BidRecord, error) {
	out := make([]model.BidRecord, 0, len(r.Rows))
	for _, row := range r.Rows {
		market, err := model.ParseMarket(row.BidType)
		if err != nil {
			continue
		}
		ts, err := connectors.ParseTime(row.IntervalDatetime)
		if err != nil {
			return nil, err
		}
		lc := ts
		if row.LastChanged != "" {
			if lc, err = connectors.ParseTime(row.LastChanged); err != nil {
				return nil, err
			}
		}
		out = append(out, model.BidRecord{
			Interval:    ts,
			DUID:        row.DUID,
			Market:      market,
			LastChanged: lc,
			Bands: [model.BandCount]float64{
				row.BandAvail1, row.BandAvail2, row.BandAvail3, row.BandAvail4,
				row.BandAvail5, row.BandAvail6, row.BandAvail7, row.BandAvail8,
				row.BandAvail9, row.BandAvail10,
			},
		})
	}
	return model.DedupBids(out), nil
}
