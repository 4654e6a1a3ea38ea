// Package export writes fitted model results to CSV and JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/ydereck/nembid/core/logit"
)

// WriteJSON writes the fit result to w in JSON format.
func WriteJSON(w io.Writer, res *logit.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes the coefficient table to w in CSV format.
func WriteCSV(w io.Writer, res *logit.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "coef", "std_err", "z", "p_value"}); err != nil {
		return err
	}
	for _, c := range res.Coefficients {
		rec := []string{
			c.Name,
			strconv.FormatFloat(c.Value, 'f', -1, 64),
			strconv.FormatFloat(c.StdErr, 'f', -1, 64),
			strconv.FormatFloat(c.Z, 'f', -1, 64),
			strconv.FormatFloat(c.P, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
