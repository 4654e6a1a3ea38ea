package dispatchload

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ydereck/nembid/config"
	"github.com/ydereck/nembid/core/model"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/dispatch_load", r.URL.Path)
		_, _ = w.Write([]byte(`{"rows":[
			{"settlement_date":"2019/11/01 00:10:00","duid":"PPCCGT","total_cleared":120,"raisereg":4},
			{"settlement_date":"2019/11/01 00:05:00","duid":"PPCCGT","total_cleared":118}
		]}`))
	}))
	defer srv.Close()

	c := New(config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5, RateLimitPerSecond: 100})
	start := time.Date(2019, 11, 1, 0, 0, 0, 0, time.UTC)
	resp, err := c.Fetch(context.Background(),
		WithStartDate(start), WithEndDate(start.Add(time.Hour)), WithUnits([]string{"PPCCGT"}))
	require.NoError(t, err)
	require.Equal(t, 2, resp.Len())

	recs, err := resp.(*Response).Records()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	// sorted by interval within unit
	require.Equal(t, 118.0, recs[0].MW[model.MarketEnergy])
	require.Equal(t, 120.0, recs[1].MW[model.MarketEnergy])
	require.Equal(t, 4.0, recs[1].MW[model.MarketRaiseReg])
}

func TestRecordsRejectsBadTimestamp(t *testing.T) {
	resp := &Response{Rows: []Row{{SettlementDate: "yesterday", DUID: "PPCCGT"}}}
	_, err := resp.Records()
	require.Error(t, err)
}
