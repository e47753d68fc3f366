// Package renderer turns resolution and market-data results into markdown
// for the CLI and the assistant, and produces the plain-text company-format
// reference resource served to tool callers.
package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/finkg/financekg"
	"github.com/shopspring/decimal"
)

// CompanyFormat renders up to n (name, ticker) pairs as the plain-text,
// comma-separated reference list tool callers read to learn the expected
// input format. n <= 0 renders the whole index.
func CompanyFormat(index *financekg.Index, n int) string {
	entities := index.Entities()
	if n > 0 && len(entities) > n {
		entities = entities[:n]
	}
	var b strings.Builder
	for _, e := range entities {
		fmt.Fprintf(&b, "%s,%s\n", e.Name(), e.Ticker())
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Money formats a monetary amount in the given currency, e.g. "$12.34".
// Amounts too large for the currency's minor unit fall back to a plain
// "1234567890123 USD" rendering.
func Money(amount decimal.Decimal, currency string) string {
	cur := money.New(0, currency).Currency()
	minor := amount.Shift(int32(cur.Fraction))
	if !minor.IsInteger() {
		minor = minor.Round(0)
	}
	if minor.Abs().GreaterThan(decimal.NewFromInt(1).Shift(18)) {
		return fmt.Sprintf("%s %s", amount, currency)
	}
	return cur.Formatter().Format(minor.IntPart())
}

// DailyMarkdown renders a daily OHLCV history as a markdown table,
// newest rows last.
func DailyMarkdown(ticker string, bars []financekg.DailyBar) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Daily price history for %s\n\n", ticker)
	if len(bars) == 0 {
		b.WriteString("No data.\n")
		return b.String()
	}
	b.WriteString("| Date | Open | High | Low | Close | Volume |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, bar := range bars {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %d |\n",
			bar.Day, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	}
	return b.String()
}

// DividendsMarkdown renders a dividend history as a markdown table.
func DividendsMarkdown(ticker string, divs []financekg.Dividend) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dividend history for %s\n\n", ticker)
	if len(divs) == 0 {
		b.WriteString("No dividends on record.\n")
		return b.String()
	}
	b.WriteString("| Ex-Date | Amount |\n")
	b.WriteString("|---|---|\n")
	for _, d := range divs {
		amount := d.Amount.String()
		if d.Currency != "" {
			amount = Money(d.Amount, d.Currency)
		}
		fmt.Fprintf(&b, "| %s | %s |\n", d.Day, amount)
	}
	return b.String()
}

// InfoMarkdown renders a metadata record as a two-column markdown table,
// keys sorted for stable output.
func InfoMarkdown(ticker string, info financekg.Info) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ticker)
	b.WriteString("| Field | Value |\n")
	b.WriteString("|---|---|\n")
	for _, key := range sortedKeys(info) {
		value := info[key]
		if value == nil {
			continue
		}
		fmt.Fprintf(&b, "| %s | %v |\n", key, value)
	}
	return b.String()
}

// CandidatesMarkdown renders candidate company names as an ordered list,
// most relevant first.
func CandidatesMarkdown(query string, names []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Candidates for %q\n\n", query)
	if len(names) == 0 {
		b.WriteString("No matching company names.\n")
		return b.String()
	}
	for i, name := range names {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	return b.String()
}

func sortedKeys(info financekg.Info) []string {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
