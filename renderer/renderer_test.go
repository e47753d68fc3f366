package renderer

import (
	"strings"
	"testing"

	"github.com/finkg/financekg"
	"github.com/finkg/financekg/date"
	"github.com/shopspring/decimal"
)

func testIndex() *financekg.Index {
	return financekg.NewIndex([]financekg.Entity{
		financekg.NewEntity("Tesla Inc. Common Stock", "TSLA"),
		financekg.NewEntity("Microsoft Corporation Common Stock", "MSFT"),
		financekg.NewEntity("Airbnb Inc. Class A Common Stock", "ABNB"),
	})
}

func TestCompanyFormat(t *testing.T) {
	got := CompanyFormat(testIndex(), 2)
	want := "Tesla Inc. Common Stock,TSLA\nMicrosoft Corporation Common Stock,MSFT"
	if got != want {
		t.Errorf("CompanyFormat() = %q, want %q", got, want)
	}

	// n <= 0 renders everything.
	if got := CompanyFormat(testIndex(), 0); strings.Count(got, "\n") != 2 {
		t.Errorf("CompanyFormat(0) = %q, want 3 lines", got)
	}
}

func TestMoney(t *testing.T) {
	if got := Money(decimal.RequireFromString("12.34"), "USD"); got != "$12.34" {
		t.Errorf("Money(12.34, USD) = %q", got)
	}
	// Trillions-scale amounts must not overflow the minor-unit int64.
	huge := decimal.RequireFromString("31000000000000000000")
	if got := Money(huge, "USD"); !strings.Contains(got, "USD") {
		t.Errorf("Money(huge) = %q, want plain fallback", got)
	}
}

func TestDailyMarkdown(t *testing.T) {
	bars := []financekg.DailyBar{{
		Day: date.MustParse("2023-02-28"),
		Bar: financekg.Bar{
			Open:   decimal.RequireFromString("17.25"),
			Close:  decimal.RequireFromString("17.09"),
			Volume: 45100,
		},
	}}
	md := DailyMarkdown("TSLA", bars)
	for _, want := range []string{"TSLA", "2023-02-28", "17.25", "45100", "| Date |"} {
		if !strings.Contains(md, want) {
			t.Errorf("DailyMarkdown() missing %q in:\n%s", want, md)
		}
	}
	if !strings.Contains(DailyMarkdown("TSLA", nil), "No data.") {
		t.Error("DailyMarkdown(empty) should say so")
	}
}

func TestDividendsMarkdown(t *testing.T) {
	divs := []financekg.Dividend{{
		Day:      date.MustParse("2020-03-19"),
		Amount:   decimal.RequireFromString("0.2"),
		Currency: "USD",
	}}
	md := DividendsMarkdown("AAOI", divs)
	if !strings.Contains(md, "$0.20") {
		t.Errorf("DividendsMarkdown() missing formatted amount:\n%s", md)
	}
}

func TestInfoMarkdown(t *testing.T) {
	md := InfoMarkdown("MSFT", financekg.Info{
		"Sector":  "Technology",
		"Code":    "MSFT",
		"Ignored": nil,
	})
	if !strings.Contains(md, "Technology") {
		t.Errorf("InfoMarkdown() missing value:\n%s", md)
	}
	if strings.Contains(md, "Ignored") {
		t.Errorf("InfoMarkdown() should skip nil values:\n%s", md)
	}
	// Sorted keys: Code row before Sector row.
	if strings.Index(md, "Code") > strings.Index(md, "Sector") {
		t.Errorf("InfoMarkdown() keys not sorted:\n%s", md)
	}
}

func TestCandidatesMarkdown(t *testing.T) {
	md := CandidatesMarkdown("tesla", []string{"Tesla Inc. Common Stock"})
	if !strings.Contains(md, "1. Tesla Inc. Common Stock") {
		t.Errorf("CandidatesMarkdown() = %q", md)
	}
	if !strings.Contains(CandidatesMarkdown("x", nil), "No matching") {
		t.Error("CandidatesMarkdown(empty) should say so")
	}
}
