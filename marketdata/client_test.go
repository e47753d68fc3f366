package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/finkg/financekg"
)

// newTestClient returns a Client pointed at a test server, bypassing the
// disk cache.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-key", WithBaseURL(srv.URL), WithHTTPClient(new(http.Client)))
}

func TestDailyHistory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/eod/TSLA") {
			t.Errorf("path = %q, want /eod/TSLA", r.URL.Path)
		}
		if got := r.URL.Query().Get("api_token"); got != "test-key" {
			t.Errorf("api_token = %q", got)
		}
		fmt.Fprint(w, `[
			{"date":"2023-02-28","open":17.25,"high":17.37,"low":17.09,"close":17.09,"volume":45100},
			{"date":"2023-03-01","open":17.09,"high":17.09,"low":16.44,"close":16.87,"volume":104300}
		]`)
	})

	bars, err := c.DailyHistory(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("DailyHistory() unexpected error = %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("DailyHistory() len = %d, want 2", len(bars))
	}
	if bars[0].Day.String() != "2023-02-28" {
		t.Errorf("bars[0].Day = %s", bars[0].Day)
	}
	if bars[0].Volume != 45100 {
		t.Errorf("bars[0].Volume = %d, want 45100", bars[0].Volume)
	}
	if bars[1].Close.String() != "16.87" {
		t.Errorf("bars[1].Close = %s, want 16.87", bars[1].Close)
	}
}

func TestDailyHistoryUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown ticker", http.StatusNotFound)
	})

	_, err := c.DailyHistory(context.Background(), "ZZZZ")
	if err == nil {
		t.Fatal("DailyHistory() expected an error for 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %v, want the upstream status in it", err)
	}
}

func TestIntradayHistorySessionFilter(t *testing.T) {
	market := marketLocation()
	day := time.Now().In(market).AddDate(0, 0, -1)
	stamp := func(h, m int) int64 {
		return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, market).Unix()
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[
			{"timestamp":%d,"open":15.0,"high":15.1,"low":14.9,"close":15.05,"volume":100},
			{"timestamp":%d,"open":15.9,"high":15.9,"low":15.9,"close":15.92,"volume":629},
			{"timestamp":%d,"open":null,"high":null,"low":null,"close":null,"volume":null},
			{"timestamp":%d,"open":16.0,"high":16.0,"low":16.0,"close":16.0,"volume":50},
			{"timestamp":%d,"open":16.2,"high":16.2,"low":16.2,"close":16.2,"volume":10}
		]`,
			stamp(8, 0),   // pre-market, dropped
			stamp(9, 30),  // kept
			stamp(9, 31),  // null bar, dropped
			stamp(15, 59), // kept
			stamp(16, 30), // post-market, dropped
		)
	})

	bars, err := c.IntradayHistory(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("IntradayHistory() unexpected error = %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("IntradayHistory() len = %d, want the 2 in-session bars", len(bars))
	}
	if got := bars[0].Time.In(market).Format("15:04"); got != "09:30" {
		t.Errorf("first bar at %s, want 09:30", got)
	}
	if got := bars[1].Time.In(market).Format("15:04"); got != "15:59" {
		t.Errorf("last bar at %s, want 15:59", got)
	}
	if bars[0].Volume != 629 {
		t.Errorf("bars[0].Volume = %d, want 629", bars[0].Volume)
	}
}

func TestLastTradingDays(t *testing.T) {
	market := marketLocation()
	var bars []financekg.IntradayBar
	for d := 0; d < 7; d++ {
		bars = append(bars, financekg.IntradayBar{
			Time: time.Date(2024, 2, 12+d, 10, 0, 0, 0, market),
		})
	}
	trimmed := lastTradingDays(bars, 5)
	if len(trimmed) != 5 {
		t.Fatalf("lastTradingDays() len = %d, want 5", len(trimmed))
	}
	if got := trimmed[0].Time.Day(); got != 14 {
		t.Errorf("oldest kept day = %d, want 14", got)
	}
}

func TestDividends(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/div/AAOI") {
			t.Errorf("path = %q, want /div/AAOI", r.URL.Path)
		}
		fmt.Fprint(w, `[
			{"date":"2019-12-19","value":0.058,"currency":"USD"},
			{"date":"2020-03-19","value":0.2,"currency":"USD"}
		]`)
	})

	divs, err := c.Dividends(context.Background(), "AAOI")
	if err != nil {
		t.Fatalf("Dividends() unexpected error = %v", err)
	}
	if len(divs) != 2 {
		t.Fatalf("Dividends() len = %d, want 2", len(divs))
	}
	if divs[1].Amount.String() != "0.2" || divs[1].Currency != "USD" {
		t.Errorf("divs[1] = %s %s", divs[1].Amount, divs[1].Currency)
	}
}
