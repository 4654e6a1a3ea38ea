package connectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestGetJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such table", http.StatusNotFound)
	}))
	defer srv.Close()

	var out struct{}
	err := GetJSON(context.Background(), srv.Client(), nil, srv.URL, &out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
	require.Contains(t, err.Error(), "no such table")
}

func TestGetJSONDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rows":[{"duid":"HPRG1"}]}`))
	}))
	defer srv.Close()

	var out struct {
		Rows []struct {
			DUID string `json:"duid"`
		} `json:"rows"`
	}
	lim := rate.NewLimiter(rate.Inf, 1)
	err := GetJSON(context.Background(), srv.Client(), lim, srv.URL, &out)
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	require.Equal(t, "HPRG1", out.Rows[0].DUID)
}

func TestParseTime(t *testing.T) {
	ts, err := ParseTime("2019/11/01 00:05:00")
	require.NoError(t, err)
	require.Equal(t, "2019/11/01 00:05:00", FormatTime(ts))

	_, err = ParseTime("01-11-2019")
	require.Error(t, err)
}
