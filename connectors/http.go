package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// TimeLayout is the timestamp format used by the market-data API.
const TimeLayout = "2006/01/02 15:04:05"

// ParseTime decodes an API timestamp. Timestamps are local market time; the
// NEM runs on a fixed offset with no daylight saving.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatTime encodes a timestamp for an API query parameter.
func FormatTime(t time.Time) string { return t.Format(TimeLayout) }

// GetJSON performs a rate-limited GET against url and decodes the JSON body
// into v. Non-200 responses are returned as errors with the response body;
// there is no automatic retry.
func GetJSON(ctx context.Context, client *http.Client, limiter *rate.Limiter, url string, v any) error {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
