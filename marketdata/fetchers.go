package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/finkg/financekg"
	"github.com/finkg/financekg/date"
	"github.com/shopspring/decimal"
)

// This file contains the time-series fetchers: daily bars, one-minute bars
// and dividends.

// historyYears is the daily-history depth served to callers.
const historyYears = 1

// intradayDays is the number of trading days of one-minute bars served.
const intradayDays = 5

// Regular session bounds, minutes from midnight market time.
const (
	sessionOpen  = 9*60 + 30  // 09:30
	sessionClose = 15*60 + 59 // 15:59
)

// DailyHistory returns one year of daily OHLCV bars for the given symbol.
func (c *Client) DailyHistory(ctx context.Context, symbol string) ([]financekg.DailyBar, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
	// [ {"date":"2024-02-13","open":675.066,"high":684.219,"low":648.659,
	//    "close":668.445,"adjusted_close":67.705,"volume":0}, ... ]
	to := date.Today()
	from := to.Add(-365 * historyYears)
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.apiKey), from, to)

	type info struct {
		Date   date.Date       `json:"date"`
		Open   decimal.Decimal `json:"open"`
		High   decimal.Decimal `json:"high"`
		Low    decimal.Decimal `json:"low"`
		Close  decimal.Decimal `json:"close"`
		Volume int64           `json:"volume"`
	}
	content := make([]info, 0)
	if err := c.jwget(ctx, addr, &content); err != nil {
		return nil, err
	}

	bars := make([]financekg.DailyBar, 0, len(content))
	for _, i := range content {
		bars = append(bars, financekg.DailyBar{
			Day: i.Date,
			Bar: financekg.Bar{Open: i.Open, High: i.High, Low: i.Low, Close: i.Close, Volume: i.Volume},
		})
	}
	return bars, nil
}

// IntradayHistory returns the last five trading days of one-minute bars,
// restricted to the 09:30–15:59 regular session in market local time. The
// 09:30 bar does not necessarily open at the daily Open, nor the 15:59 bar
// close at the daily Close; pre/post-market trades only show in the daily
// figures.
func (c *Client) IntradayHistory(ctx context.Context, symbol string) ([]financekg.IntradayBar, error) {
	// https://eodhd.com/api/intraday/AAPL.US?interval=1m&api_token=demo&fmt=json
	// [ {"timestamp":1708612200,"gmtoffset":0,"datetime":"2024-02-22 14:30:00",
	//    "open":15.92,"high":15.92,"low":15.92,"close":15.92,"volume":629}, ... ]
	now := time.Now()
	// Over-fetch calendar days so that weekends and holidays still leave five
	// full trading days, then trim.
	from := now.AddDate(0, 0, -2*intradayDays)
	addr := fmt.Sprintf("%s/intraday/%s?fmt=json&interval=1m&api_token=%s&from=%d&to=%d",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.apiKey), from.Unix(), now.Unix())

	type info struct {
		Timestamp int64    `json:"timestamp"`
		Open      *float64 `json:"open"`
		High      *float64 `json:"high"`
		Low       *float64 `json:"low"`
		Close     *float64 `json:"close"`
		Volume    *int64   `json:"volume"`
	}
	content := make([]info, 0)
	if err := c.jwget(ctx, addr, &content); err != nil {
		return nil, err
	}

	var bars []financekg.IntradayBar
	for _, i := range content {
		// The feed pads thin minutes with null bars; skip them.
		if i.Close == nil || i.Open == nil {
			continue
		}
		at := time.Unix(i.Timestamp, 0).In(c.market)
		minutes := at.Hour()*60 + at.Minute()
		if minutes < sessionOpen || minutes > sessionClose {
			continue
		}
		var volume int64
		if i.Volume != nil {
			volume = *i.Volume
		}
		bars = append(bars, financekg.IntradayBar{
			Time: at,
			Bar: financekg.Bar{
				Open:   decimal.NewFromFloat(*i.Open),
				High:   decimal.NewFromFloat(*i.High),
				Low:    decimal.NewFromFloat(*i.Low),
				Close:  decimal.NewFromFloat(*i.Close),
				Volume: volume,
			},
		})
	}
	return lastTradingDays(bars, intradayDays), nil
}

// lastTradingDays trims bars to the n most recent distinct trading days.
func lastTradingDays(bars []financekg.IntradayBar, n int) []financekg.IntradayBar {
	seen := make(map[string]bool)
	for _, b := range bars {
		seen[b.Time.Format(date.Format)] = true
	}
	if len(seen) <= n {
		return bars
	}
	days := make([]string, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Strings(days)
	keep := make(map[string]bool, n)
	for _, day := range days[len(days)-n:] {
		keep[day] = true
	}
	trimmed := bars[:0]
	for _, b := range bars {
		if keep[b.Time.Format(date.Format)] {
			trimmed = append(trimmed, b)
		}
	}
	return trimmed
}

// Dividends returns the dividend distribution history for the given symbol.
func (c *Client) Dividends(ctx context.Context, symbol string) ([]financekg.Dividend, error) {
	// https://eodhd.com/api/div/AAPL.US?api_token=demo&fmt=json
	// [ {"date":"2020-03-19","value":0.2,"currency":"USD"}, ... ]
	addr := fmt.Sprintf("%s/div/%s?fmt=json&api_token=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.apiKey))

	type info struct {
		Date     date.Date       `json:"date"` // ex-dividend date
		Value    decimal.Decimal `json:"value"`
		Currency string          `json:"currency"`
	}
	content := make([]info, 0)
	if err := c.jwget(ctx, addr, &content); err != nil {
		return nil, err
	}

	divs := make([]financekg.Dividend, 0, len(content))
	for _, i := range content {
		divs = append(divs, financekg.Dividend{Day: i.Date, Amount: i.Value, Currency: i.Currency})
	}
	return divs, nil
}
