package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/finkg/financekg"
)

func withDataset(t *testing.T, content string) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "companies.csv")
	if content != "" {
		if err := os.WriteFile(file, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	old := *datasetFile
	*datasetFile = file
	t.Cleanup(func() { *datasetFile = old })
}

func TestDecodeIndex(t *testing.T) {
	withDataset(t, "Tesla, Inc. Common Stock,TSLA\nMicrosoft Corporation Common Stock,MSFT\n")

	index, err := DecodeIndex()
	if err != nil {
		t.Fatal(err)
	}
	if index.Len() != 2 {
		t.Fatalf("got %d entities", index.Len())
	}
	if name, ok := index.LookupBySymbol("TSLA"); !ok || name != "Tesla, Inc. Common Stock" {
		t.Errorf("got %q, %v", name, ok)
	}
}

func TestDecodeIndexMissingFileIsEmpty(t *testing.T) {
	withDataset(t, "")

	index, err := DecodeIndex()
	if err != nil {
		t.Fatal(err)
	}
	if index.Len() != 0 {
		t.Errorf("got %d entities, want 0", index.Len())
	}
}

func TestEncodeIndexRoundTrip(t *testing.T) {
	withDataset(t, "")

	index := financekg.NewIndex([]financekg.Entity{
		financekg.NewEntity("Coca-Cola Consolidated, Inc.", "COKE"),
	})
	if err := EncodeIndex(index); err != nil {
		t.Fatal(err)
	}

	loaded, err := DecodeIndex()
	if err != nil {
		t.Fatal(err)
	}
	if ticker, err := loaded.TickerByName("Coca-Cola Consolidated, Inc."); err != nil || ticker != "COKE" {
		t.Errorf("got %q, %v", ticker, err)
	}
}
