package financekg

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// The tool surface emits series as JSON objects keyed by timestamp strings
// like "2023-02-28 00:00:00 EST", the shape tool-calling agents were trained
// against. Daily keys pin the midnight of the trading day; intraday keys
// carry the bar's market-local time.

const stampFormat = "2006-01-02 15:04:05 MST"

// KeyedDaily converts daily bars into a timestamp-keyed object.
func KeyedDaily(bars []DailyBar) map[string]Bar {
	keyed := make(map[string]Bar, len(bars))
	for _, b := range bars {
		keyed[fmt.Sprintf("%s 00:00:00 EST", b.Day)] = b.Bar
	}
	return keyed
}

// KeyedIntraday converts intraday bars into a timestamp-keyed object.
func KeyedIntraday(bars []IntradayBar) map[string]Bar {
	keyed := make(map[string]Bar, len(bars))
	for _, b := range bars {
		keyed[b.Time.Format(stampFormat)] = b.Bar
	}
	return keyed
}

// KeyedDividends converts a dividend history into a timestamp-keyed object of
// scalar amounts.
func KeyedDividends(divs []Dividend) map[string]decimal.Decimal {
	keyed := make(map[string]decimal.Decimal, len(divs))
	for _, d := range divs {
		keyed[fmt.Sprintf("%s 00:00:00 EST", d.Day)] = d.Amount
	}
	return keyed
}
