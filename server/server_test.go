package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finkg/financekg"
	"github.com/finkg/financekg/date"
	"github.com/shopspring/decimal"
)

// fakeSource serves canned market data and records the requested symbol.
type fakeSource struct {
	financekg.Source
	symbol string
	daily  []financekg.DailyBar
	err    error
}

func (f *fakeSource) DailyHistory(ctx context.Context, symbol string) ([]financekg.DailyBar, error) {
	f.symbol = symbol
	return f.daily, f.err
}

func (f *fakeSource) MarketCapitalization(ctx context.Context, symbol string) (decimal.Decimal, error) {
	f.symbol = symbol
	return decimal.NewFromInt(9000), f.err
}

func testServer(t *testing.T, src *fakeSource, opts ...Option) *Server {
	t.Helper()
	index := financekg.NewIndex([]financekg.Entity{
		financekg.NewEntity("Tesla, Inc. Common Stock", "TSLA"),
		financekg.NewEntity("Microsoft Corporation Common Stock", "MSFT"),
	})
	resolver := financekg.NewResolver(index, financekg.NewScanSupplier(index, 0))
	return New(resolver, financekg.NewGateway(src), opts...)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func TestMatchEndpoint(t *testing.T) {
	s := testServer(t, &fakeSource{})

	rec := get(t, s.Handler(), "/tools/match_ticker_or_name?query=tsla")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var body struct {
		Kind    financekg.MatchKind `json:"kind"`
		Ticker  string              `json:"ticker"`
		Message string              `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Kind != financekg.TickerMatch || body.Ticker != "TSLA" {
		t.Errorf("got %+v", body)
	}
	if !strings.Contains(body.Message, "recognized as a ticker symbol") {
		t.Errorf("message: %q", body.Message)
	}

	rec = get(t, s.Handler(), "/tools/match_ticker_or_name")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing query: status %d", rec.Code)
	}
}

func TestMatchEndpointPostBody(t *testing.T) {
	s := testServer(t, &fakeSource{})

	req := httptest.NewRequest("POST", "/tools/match_ticker_or_name",
		strings.NewReader(`{"query":"Tesla, Inc. Common Stock"}`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var body financekg.Resolution
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Kind != financekg.NameMatch || body.Ticker != "TSLA" {
		t.Errorf("got %+v", body)
	}
}

func TestTickerByNameEndpoint(t *testing.T) {
	s := testServer(t, &fakeSource{})

	rec := get(t, s.Handler(), "/tools/get_ticker_by_name?company_name=Tesla%2C+Inc.+Common+Stock")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["ticker"] != "TSLA" {
		t.Errorf("got %v", body)
	}

	rec = get(t, s.Handler(), "/tools/get_ticker_by_name?company_name=tesla")
	if rec.Code != http.StatusNotFound {
		t.Errorf("inexact name: status %d", rec.Code)
	}
}

func TestCandidatesEndpoint(t *testing.T) {
	s := testServer(t, &fakeSource{})

	rec := get(t, s.Handler(), "/tools/get_company_name?query=micro")
	var body map[string][]string
	json.NewDecoder(rec.Body).Decode(&body)
	if got := body["candidates"]; len(got) != 1 || got[0] != "Microsoft Corporation Common Stock" {
		t.Errorf("got %v", got)
	}

	rec = get(t, s.Handler(), "/tools/get_company_name?query=zzz")
	json.NewDecoder(rec.Body).Decode(&body)
	if got, ok := body["candidates"]; !ok || got == nil {
		t.Errorf("empty result should still carry a candidates list, got %v", body)
	}
}

func TestDailyEndpointKeysAndNormalization(t *testing.T) {
	src := &fakeSource{daily: []financekg.DailyBar{{
		Day: date.New(2025, 2, 28),
		Bar: financekg.Bar{
			Open:   decimal.NewFromFloat(171.0),
			Close:  decimal.NewFromFloat(172.5),
			Volume: 1000,
		},
	}}}
	s := testServer(t, src)

	rec := get(t, s.Handler(), "/tools/get_price_history?ticker_name=+tsla+")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	if src.symbol != "TSLA" {
		t.Errorf("symbol not normalized: %q", src.symbol)
	}
	var body map[string]financekg.Bar
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	bar, ok := body["2025-02-28 00:00:00 EST"]
	if !ok {
		t.Fatalf("timestamp key missing, got keys %v", body)
	}
	if !bar.Close.Equal(decimal.NewFromFloat(172.5)) || bar.Volume != 1000 {
		t.Errorf("got %+v", bar)
	}
}

func TestMarketEndpointUpstreamFailure(t *testing.T) {
	s := testServer(t, &fakeSource{err: errors.New("exchange unreachable")})

	rec := get(t, s.Handler(), "/tools/get_market_capitalization?ticker_name=TSLA")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status %d", rec.Code)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if !strings.Contains(body["error"], "exchange unreachable") {
		t.Errorf("got %v", body)
	}
}

func TestCompanyFormatResource(t *testing.T) {
	s := testServer(t, &fakeSource{})

	rec := get(t, s.Handler(), "/resources/company-format")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type %q", ct)
	}
	text, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(text), "Tesla, Inc. Common Stock,TSLA") {
		t.Errorf("got %q", text)
	}
}

func TestReloadSwapsResolver(t *testing.T) {
	replacement := financekg.NewIndex([]financekg.Entity{
		financekg.NewEntity("Apple Inc. Common Stock", "AAPL"),
	})
	s := testServer(t, &fakeSource{}, WithReloader(func() (*financekg.Resolver, error) {
		return financekg.NewResolver(replacement, nil), nil
	}))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("POST", "/admin/reload", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}

	res := s.Resolver().Resolve("AAPL")
	if res.Kind != financekg.TickerMatch {
		t.Errorf("new index not serving: %+v", res)
	}
	if s.Resolver().Resolve("TSLA").Kind != financekg.NoMatch {
		t.Error("old index still serving")
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t, &fakeSource{})

	rec := get(t, s.Handler(), "/healthz")
	var body map[string]any
	json.NewDecoder(rec.Body).Decode(&body)
	if body["status"] != "ok" || body["entities"] != float64(2) {
		t.Errorf("got %v", body)
	}
}
