package financekg

import "fmt"

// Index holds the authoritative name↔ticker relation. It is built once from
// a dataset and never mutated afterwards, so it is safe for unbounded
// concurrent readers. Refreshing the dataset means building a fresh Index and
// swapping the reference, never editing in place.
type Index struct {
	names    []string          // canonical names in insertion order
	byName   map[string]string // canonical name -> ticker as stored
	bySymbol map[string]string // uppercased ticker -> canonical name
}

// NewIndex builds the bidirectional index from (name, ticker) pairs.
//
// On a duplicate name the later entry wins and replaces the earlier one
// entirely. The same policy applies when two entries collide on the
// uppercased ticker: the symbol side keeps only the latest name. Duplicates
// are not expected in a curated dataset; the policy exists so that loading
// one is deterministic rather than an error.
func NewIndex(entities []Entity) *Index {
	x := &Index{
		names:    make([]string, 0, len(entities)),
		byName:   make(map[string]string, len(entities)),
		bySymbol: make(map[string]string, len(entities)),
	}
	for _, e := range entities {
		if _, dup := x.byName[e.Name()]; !dup {
			x.names = append(x.names, e.Name())
		}
		x.byName[e.Name()] = e.Ticker()
	}
	// The symbol index is derived from the name index so that it is exactly
	// its inverse at construction time.
	for _, name := range x.names {
		x.bySymbol[SymbolForm(x.byName[name])] = name
	}
	return x
}

// Len returns the number of entities in the index.
func (x *Index) Len() int { return len(x.names) }

// Entities returns all entities in insertion order.
func (x *Index) Entities() []Entity {
	entities := make([]Entity, 0, len(x.names))
	for _, name := range x.names {
		entities = append(entities, NewEntity(name, x.byName[name]))
	}
	return entities
}

// LookupBySymbol returns the canonical name for an already-uppercased ticker
// symbol. Callers normalize with SymbolForm first.
func (x *Index) LookupBySymbol(symbolUpper string) (name string, ok bool) {
	name, ok = x.bySymbol[symbolUpper]
	return name, ok
}

// LookupByName compares query case-insensitively against every stored name
// and returns the first match in insertion order. A miss is a normal outcome,
// not an error. This is a linear scan: the dataset is small and
// case-insensitive duplicates are rare to absent, so a folded secondary index
// has not been worth its footprint.
func (x *Index) LookupByName(query string) (Entity, bool) {
	for _, name := range x.names {
		if foldEqual(name, query) {
			return NewEntity(name, x.byName[name]), true
		}
	}
	return Entity{}, false
}

// TickerByName returns the ticker for the exact canonical name. Unlike
// LookupByName this is case-sensitive: callers are expected to pass a name
// obtained from the index itself (typically via the candidate supplier).
// A miss is a *NotFoundError.
func (x *Index) TickerByName(name string) (string, error) {
	ticker, ok := x.byName[name]
	if !ok {
		return "", &NotFoundError{Name: name}
	}
	return ticker, nil
}

// NotFoundError reports that an exact company name is absent from the index.
// It signals a usage-sequence mistake (the caller skipped the candidate-name
// step), not a fault in the index.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("company name %q not found in the index", e.Name)
}
