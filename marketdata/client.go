// Package marketdata implements the external market-data source behind the
// Gateway, speaking the EODHD REST API (https://eodhd.com/financial-apis/).
// It is the only place the process performs network I/O for financial data;
// responses are cached on disk with daily expiry so repeated agent calls do
// not hammer the upstream.
package marketdata

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/finkg/financekg"
)

const defaultBaseURL = "https://eodhd.com/api"

// Client fetches market data from an EODHD-compatible endpoint. It
// implements financekg.Source.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	market  *time.Location
}

var _ financekg.Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root, typically a test
// server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the default daily-caching HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a Client for the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    newDailyCachingClient(),
		logger:  slog.Default(),
		market:  marketLocation(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// marketLocation returns the US equity market time zone. Intraday bars are
// keyed in this zone so the 09:30–15:59 session filter lands on wall-clock
// trading hours.
func marketLocation() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// No tz database on this host; EST keeps keys deterministic.
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}
