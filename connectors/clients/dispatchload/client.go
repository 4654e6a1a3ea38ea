package dispatchload

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ydereck/nembid/config"
	"github.com/ydereck/nembid/connectors"
)

const path = "/v1/dispatch_load"

// Client fetches unit-level cleared MW (energy plus FCAS) per dispatch
// interval from the market-data API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter

	startDate time.Time
	endDate   time.Time
	units     []string
}

// New builds a Client from the API configuration.
func New(cfg config.APIConfig) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitPerSecond),
	}
}

// Fetch retrieves dispatch load for the configured date range and units.
// Exactly three options must be provided: start date, end date and units.
func (c *Client) Fetch(ctx context.Context, opts ...connectors.Option) (connectors.Response, error) {
	if len(opts) != 3 {
		return nil, fmt.Errorf("missing options: %d are set", len(opts))
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	q := url.Values{}
	q.Set("start", connectors.FormatTime(c.startDate))
	q.Set("end", connectors.FormatTime(c.endDate))
	q.Set("duids", strings.Join(c.units, ","))
	u := c.baseURL + path + "?" + q.Encode()

	var resp Response
	if err := connectors.GetJSON(ctx, c.http, c.limiter, u, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
