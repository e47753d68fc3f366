package financekg

import (
	"testing"
	"time"

	"github.com/finkg/financekg/date"
	"github.com/shopspring/decimal"
)

func TestKeyedDaily(t *testing.T) {
	bars := []DailyBar{{
		Day: date.MustParse("2023-02-28"),
		Bar: Bar{Close: decimal.RequireFromString("17.09"), Volume: 45100},
	}}
	keyed := KeyedDaily(bars)
	bar, ok := keyed["2023-02-28 00:00:00 EST"]
	if !ok {
		t.Fatalf("KeyedDaily() keys = %v, want the EST-midnight key", keyed)
	}
	if bar.Volume != 45100 {
		t.Errorf("Volume = %d, want 45100", bar.Volume)
	}
}

func TestKeyedIntraday(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	bars := []IntradayBar{{
		Time: time.Date(2024, 2, 22, 9, 30, 0, 0, loc),
		Bar:  Bar{Volume: 629},
	}}
	keyed := KeyedIntraday(bars)
	if _, ok := keyed["2024-02-22 09:30:00 EST"]; !ok {
		t.Errorf("KeyedIntraday() keys = %v, want market-local stamp", keyed)
	}
}

func TestKeyedDividends(t *testing.T) {
	divs := []Dividend{{Day: date.MustParse("2020-03-19"), Amount: decimal.RequireFromString("0.2")}}
	keyed := KeyedDividends(divs)
	amount, ok := keyed["2020-03-19 00:00:00 EST"]
	if !ok {
		t.Fatalf("KeyedDividends() keys = %v", keyed)
	}
	if !amount.Equal(decimal.RequireFromString("0.2")) {
		t.Errorf("amount = %s, want 0.2", amount)
	}
}
