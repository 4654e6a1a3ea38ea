package connectors

import "context"

// Client is a typed fetcher for one market-data table.
type Client interface {
	Fetch(ctx context.Context, opts ...Option) (Response, error)
}

// Response is the decoded payload of one fetch.
type Response interface {
	Len() int
}

// Option configures a Client before a fetch.
type Option func(Client) error

// ErrIncompatibleOption is the error format used when an option is applied to
// a client of the wrong type.
const ErrIncompatibleOption = "option %s is not compatible with client %s"
