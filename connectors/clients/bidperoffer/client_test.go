package bidperoffer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ydereck/nembid/config"
	"github.com/ydereck/nembid/connectors"
	"github.com/ydereck/nembid/core/model"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5, RateLimitPerSecond: 100}
	return New(cfg)
}

func TestFetch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/bid_per_offer", r.URL.Path)
		require.Equal(t, "2019/11/01 00:00:00", r.URL.Query().Get("start"))
		require.Equal(t, "HPRG1,PPCCGT", r.URL.Query().Get("duids"))
		_, _ = w.Write([]byte(`{"rows":[
			{"interval_datetime":"2019/11/01 00:05:00","duid":"HPRG1","bidtype":"ENERGY","lastchanged":"2019/11/01 00:01:00","bandavail1":10,"bandavail2":5},
			{"interval_datetime":"2019/11/01 00:05:00","duid":"HPRG1","bidtype":"ENERGY","lastchanged":"2019/11/01 00:03:00","bandavail1":12,"bandavail2":5},
			{"interval_datetime":"2019/11/01 00:05:00","duid":"HPRG1","bidtype":"MNSP","bandavail1":1}
		]}`))
	})

	start := time.Date(2019, 11, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	resp, err := c.Fetch(context.Background(),
		WithStartDate(start), WithEndDate(end), WithUnits([]string{"HPRG1", "PPCCGT"}))
	require.NoError(t, err)
	require.Equal(t, 3, resp.Len())

	recs, err := resp.(*Response).Records()
	require.NoError(t, err)
	// unknown bid type dropped, duplicate collapsed onto latest lastchanged
	require.Len(t, recs, 1)
	require.Equal(t, model.MarketEnergy, recs[0].Market)
	require.Equal(t, 12.0, recs[0].Bands[0])
}

func TestFetchRequiresAllOptions(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := c.Fetch(context.Background(), WithStartDate(time.Now()))
	require.Error(t, err)
}

func TestFetchSurfacesAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "archive offline", http.StatusBadGateway)
	})
	_, err := c.Fetch(context.Background(),
		WithStartDate(time.Now()), WithEndDate(time.Now()), WithUnits([]string{"HPRG1"}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestOptionRejectsWrongClient(t *testing.T) {
	err := WithUnits([]string{"HPRG1"})(fakeClient{})
	require.Error(t, err)
}

type fakeClient struct{}

func (fakeClient) Fetch(context.Context, ...connectors.Option) (connectors.Response, error) {
	return nil, nil
}
