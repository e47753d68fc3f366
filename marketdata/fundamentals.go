package marketdata

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/finkg/financekg"
	"github.com/shopspring/decimal"
)

// The fundamentals endpoint returns one large nested JSON document per
// ticker. Rather than modelling the whole thing, the scalar metrics are
// plucked out of the raw payload with jsonpath.

const (
	marketCapPath = "$.Highlights.MarketCapitalization"
	epsPath       = "$.Highlights.EarningsShare"
	peRatioPath   = "$.Highlights.PERatio"
	generalPath   = "$.General"
)

// fundamentals fetches the raw fundamentals document for a symbol.
func (c *Client) fundamentals(ctx context.Context, symbol string) (any, error) {
	addr := fmt.Sprintf("%s/fundamentals/%s?fmt=json&api_token=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.apiKey))
	var jobj any
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return nil, err
	}
	return jobj, nil
}

// pluckNumber extracts a numeric value at path from the fundamentals payload.
func pluckNumber(jobj any, symbol, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("no value at %q for %s: %w", path, symbol, err)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("value at %q for %s is %T, not a number", path, symbol, jval)
	}
	return decimal.NewFromFloat(val), nil
}

// MarketCapitalization returns the market capitalization for the symbol.
func (c *Client) MarketCapitalization(ctx context.Context, symbol string) (decimal.Decimal, error) {
	jobj, err := c.fundamentals(ctx, symbol)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return pluckNumber(jobj, symbol, marketCapPath)
}

// EarningsPerShare returns the trailing earnings per share for the symbol.
func (c *Client) EarningsPerShare(ctx context.Context, symbol string) (decimal.Decimal, error) {
	jobj, err := c.fundamentals(ctx, symbol)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return pluckNumber(jobj, symbol, epsPath)
}

// PriceEarningsRatio returns the price-to-earnings ratio for the symbol.
func (c *Client) PriceEarningsRatio(ctx context.Context, symbol string) (decimal.Decimal, error) {
	jobj, err := c.fundamentals(ctx, symbol)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return pluckNumber(jobj, symbol, peRatioPath)
}

// Info returns the source's metadata record for the symbol: the General
// section of the fundamentals document, or the whole document when the
// source does not structure it.
func (c *Client) Info(ctx context.Context, symbol string) (financekg.Info, error) {
	jobj, err := c.fundamentals(ctx, symbol)
	if err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get(generalPath, jobj)
	if err != nil {
		if whole, ok := jobj.(map[string]any); ok {
			return financekg.Info(whole), nil
		}
		return nil, fmt.Errorf("metadata for %s has no %q section: %w", symbol, generalPath, err)
	}
	general, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("metadata %q for %s is %T, not an object", generalPath, symbol, jval)
	}
	return financekg.Info(general), nil
}
