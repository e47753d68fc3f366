package financekg

import (
	"context"
	"fmt"
)

// MatchKind tags the outcome of a resolution.
type MatchKind int

const (
	// NoMatch means the input matched neither a ticker nor a name.
	NoMatch MatchKind = iota
	// TickerMatch means the input matched a known ticker symbol.
	TickerMatch
	// NameMatch means the input matched a known company name.
	NameMatch
)

func (k MatchKind) String() string {
	switch k {
	case TickerMatch:
		return "ticker"
	case NameMatch:
		return "name"
	default:
		return "none"
	}
}

// Resolution is the outcome of resolving a query against the index.
// For TickerMatch and NameMatch, Name and Ticker carry the canonical pair.
// For NoMatch they are empty and Input carries the original query.
type Resolution struct {
	Kind   MatchKind `json:"kind"`
	Name   string    `json:"name,omitempty"`
	Ticker string    `json:"ticker,omitempty"`
	Input  string    `json:"input"`
}

// Message renders the resolution as the human-readable text returned by the
// match_ticker_or_name tool.
func (r Resolution) Message() string {
	switch r.Kind {
	case TickerMatch:
		return fmt.Sprintf("%q is recognized as a ticker symbol.\nCompany Name: %s\nTicker Symbol: %s", r.Input, r.Name, r.Ticker)
	case NameMatch:
		return fmt.Sprintf("%q is recognized as a company name.\nCompany Name: %s\nTicker Symbol: %s", r.Input, r.Name, r.Ticker)
	default:
		return fmt.Sprintf("%q is not recognized as either a valid company name or ticker symbol.", r.Input)
	}
}

// CandidateSupplier produces candidate canonical company names for a
// descriptive (non-ticker) query, most relevant first. The resolver consumes
// it as-is: it neither normalizes the query nor re-ranks the result.
type CandidateSupplier interface {
	Candidates(ctx context.Context, query string) ([]string, error)
}

// Resolver answers identity questions against a read-only Index.
// It is stateless beyond its references and safe for concurrent use.
type Resolver struct {
	index    *Index
	supplier CandidateSupplier
}

// NewResolver returns a Resolver over the given index. The supplier backs
// CandidateNames and may be nil when candidate search is not needed.
func NewResolver(index *Index, supplier CandidateSupplier) *Resolver {
	return &Resolver{index: index, supplier: supplier}
}

// Index returns the index the resolver reads from.
func (r *Resolver) Index() *Index { return r.index }

// Resolve determines whether query denotes a known ticker, a known company
// name, or neither. The ticker check runs first: tickers are short tokens
// that can collide lexically with abbreviated names, so a string that is both
// always resolves as a ticker. A miss is a Resolution with Kind NoMatch, not
// an error; the caller is expected to branch on it and retry with a better
// query.
func (r *Resolver) Resolve(query string) Resolution {
	symbol := SymbolForm(query)
	if name, ok := r.index.LookupBySymbol(symbol); ok {
		return Resolution{Kind: TickerMatch, Name: name, Ticker: symbol, Input: query}
	}
	if e, ok := r.index.LookupByName(Trim(query)); ok {
		return Resolution{Kind: NameMatch, Name: e.Name(), Ticker: e.Ticker(), Input: query}
	}
	return Resolution{Kind: NoMatch, Input: query}
}

// CandidateNames forwards the raw query to the candidate supplier and returns
// its ordered candidate company names. The query is expected to be
// descriptive, not a string Resolve already confirmed to be a ticker.
func (r *Resolver) CandidateNames(ctx context.Context, query string) ([]string, error) {
	if r.supplier == nil {
		return nil, fmt.Errorf("no candidate supplier configured")
	}
	return r.supplier.Candidates(ctx, query)
}

// TickerByName returns the ticker for the exact canonical company name,
// or a *NotFoundError.
func (r *Resolver) TickerByName(name string) (string, error) {
	return r.index.TickerByName(name)
}
