package financekg

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// This file handles the dataset import/export format.
//
// The format is the same plain-text, comma-separated list the tool surface
// publishes as its reference resource: one "Company Name,TICKER" pair per
// line, the ticker last. It should remain human readable and trivially
// diffable.

// DecodeEntities reads (name, ticker) pairs from r.
//
// Company names may themselves contain commas ("Coca-Cola Consolidated,
// Inc."), so the last field of each record is the ticker and everything
// before it is the name. Blank lines are skipped.
func DecodeEntities(r io.Reader) ([]Entity, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // names may contain commas, so record widths vary
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse dataset: %w", err)
	}

	var entities []Entity
	for i, record := range records {
		if len(record) == 1 && Trim(record[0]) == "" {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: want \"Company Name,TICKER\", got %q", i+1, strings.Join(record, ","))
		}
		name := Trim(strings.Join(record[:len(record)-1], ","))
		ticker := Trim(record[len(record)-1])
		if name == "" || ticker == "" {
			return nil, fmt.Errorf("line %d: empty name or ticker in %q", i+1, strings.Join(record, ","))
		}
		entities = append(entities, NewEntity(name, ticker))
	}
	return entities, nil
}

// EncodeEntities writes entities to w, one "Company Name,TICKER" pair per
// line, in the given order.
func EncodeEntities(w io.Writer, entities []Entity) error {
	for _, e := range entities {
		if _, err := fmt.Fprintf(w, "%s,%s\n", e.Name(), e.Ticker()); err != nil {
			return fmt.Errorf("cannot write dataset: %w", err)
		}
	}
	return nil
}
