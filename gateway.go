package financekg

import (
	"context"
	"time"

	"github.com/finkg/financekg/date"
	"github.com/shopspring/decimal"
)

// Bar is one OHLCV bucket.
type Bar struct {
	Open   decimal.Decimal `json:"Open"`
	High   decimal.Decimal `json:"High"`
	Low    decimal.Decimal `json:"Low"`
	Close  decimal.Decimal `json:"Close"`
	Volume int64           `json:"Volume"`
}

// DailyBar is a daily OHLCV bar.
type DailyBar struct {
	Day date.Date
	Bar
}

// IntradayBar is a one-minute OHLCV bar. Time carries the market-local
// timestamp of the bar's start. The 09:30 open and 15:59 close of a session
// are not guaranteed to equal the daily Open/Close, nor does the one-minute
// Volume sum reconcile with the daily Volume.
type IntradayBar struct {
	Time time.Time
	Bar
}

// Dividend is a single dividend distribution.
type Dividend struct {
	Day    date.Date
	Amount decimal.Decimal
	// Currency of the distribution when the source reports it, e.g. "USD".
	Currency string
}

// Info is the source's metadata record for a ticker, kept as-is.
type Info map[string]any

// Source is the external market-data store the Gateway forwards to. Every
// call takes a context so the caller can bound the upstream latency with a
// timeout; resolution itself never blocks and needs no such bound.
type Source interface {
	// DailyHistory returns one year of daily OHLCV bars.
	DailyHistory(ctx context.Context, symbol string) ([]DailyBar, error)
	// IntradayHistory returns five trading days of one-minute bars covering
	// the 09:30–15:59 regular session in market local time.
	IntradayHistory(ctx context.Context, symbol string) ([]IntradayBar, error)
	// Dividends returns the dividend distribution history.
	Dividends(ctx context.Context, symbol string) ([]Dividend, error)
	MarketCapitalization(ctx context.Context, symbol string) (decimal.Decimal, error)
	EarningsPerShare(ctx context.Context, symbol string) (decimal.Decimal, error)
	PriceEarningsRatio(ctx context.Context, symbol string) (decimal.Decimal, error)
	Info(ctx context.Context, symbol string) (Info, error)
}

// Gateway gates market-data requests behind a normalized ticker. It
// normalizes the ticker to symbol form, forwards to the Source, and returns
// the payload verbatim. It deliberately does not check the ticker against the
// index: identity decisions belong to the Resolver, and the Gateway trusts
// its caller already resolved the identifier. Unknown-ticker and transport
// failures are the source's to report and are propagated unchanged.
type Gateway struct {
	source Source
}

// NewGateway returns a Gateway forwarding to the given source.
func NewGateway(source Source) *Gateway {
	return &Gateway{source: source}
}

func (g *Gateway) DailyHistory(ctx context.Context, ticker string) ([]DailyBar, error) {
	return g.source.DailyHistory(ctx, SymbolForm(ticker))
}

func (g *Gateway) IntradayHistory(ctx context.Context, ticker string) ([]IntradayBar, error) {
	return g.source.IntradayHistory(ctx, SymbolForm(ticker))
}

func (g *Gateway) Dividends(ctx context.Context, ticker string) ([]Dividend, error) {
	return g.source.Dividends(ctx, SymbolForm(ticker))
}

func (g *Gateway) MarketCapitalization(ctx context.Context, ticker string) (decimal.Decimal, error) {
	return g.source.MarketCapitalization(ctx, SymbolForm(ticker))
}

func (g *Gateway) EarningsPerShare(ctx context.Context, ticker string) (decimal.Decimal, error) {
	return g.source.EarningsPerShare(ctx, SymbolForm(ticker))
}

func (g *Gateway) PriceEarningsRatio(ctx context.Context, ticker string) (decimal.Decimal, error) {
	return g.source.PriceEarningsRatio(ctx, SymbolForm(ticker))
}

func (g *Gateway) Info(ctx context.Context, ticker string) (Info, error) {
	return g.source.Info(ctx, SymbolForm(ticker))
}
