package marketdata

import (
	"context"
	"fmt"
	"net/url"

	"github.com/finkg/financekg"
)

// SearchResult matches one item of the search API response, ordered by the
// upstream's own relevance ranking.
type SearchResult struct {
	Code     string `json:"Code"`
	Exchange string `json:"Exchange"`
	Name     string `json:"Name"`
	Type     string `json:"Type"`
	Country  string `json:"Country"`
	Currency string `json:"Currency"`
	ISIN     string `json:"ISIN"`
}

// Search queries the upstream search endpoint with a free-text term.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	addr := fmt.Sprintf("%s/search/%s?fmt=json&api_token=%s",
		c.baseURL, url.PathEscape(term), url.QueryEscape(c.apiKey))
	var results []SearchResult
	if err := c.jwget(ctx, addr, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// CandidateSearch adapts the upstream search into a
// financekg.CandidateSupplier: it keeps the upstream's relevance order but
// only emits names that are canonical in the given index, so callers can feed
// any candidate straight into TickerByName.
type CandidateSearch struct {
	client *Client
	index  *financekg.Index
}

// NewCandidateSearch returns a supplier over the client and index.
func NewCandidateSearch(client *Client, index *financekg.Index) *CandidateSearch {
	return &CandidateSearch{client: client, index: index}
}

// Candidates returns the canonical names matching the query, most relevant
// first. A search hit maps to a canonical name either through its ticker code
// or through a case-insensitive name match; hits known to neither side are
// dropped.
func (s *CandidateSearch) Candidates(ctx context.Context, query string) ([]string, error) {
	results, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	var names []string
	seen := make(map[string]bool)
	for _, r := range results {
		name, ok := s.index.LookupBySymbol(financekg.SymbolForm(r.Code))
		if !ok {
			if e, found := s.index.LookupByName(r.Name); found {
				name, ok = e.Name(), true
			}
		}
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

var _ financekg.CandidateSupplier = (*CandidateSearch)(nil)

// ExchangeSymbols retrieves the full (name, ticker) listing of an exchange,
// used to bootstrap the canonical index from scratch.
func (c *Client) ExchangeSymbols(ctx context.Context, exchangeCode string) ([]financekg.Entity, error) {
	// https://eodhd.com/api/exchange-symbol-list/US?api_token=demo&fmt=json
	// [ {"Code":"AAOI","Name":"Applied Optoelectronics Inc. Common Stock",
	//    "Country":"USA","Exchange":"NASDAQ","Currency":"USD","Type":"Common Stock"}, ... ]
	addr := fmt.Sprintf("%s/exchange-symbol-list/%s?fmt=json&api_token=%s",
		c.baseURL, url.PathEscape(exchangeCode), url.QueryEscape(c.apiKey))

	type info struct {
		Code string `json:"Code"`
		Name string `json:"Name"`
	}
	var content []info
	if err := c.jwget(ctx, addr, &content); err != nil {
		return nil, fmt.Errorf("failed to fetch symbols for exchange %s: %w", exchangeCode, err)
	}

	entities := make([]financekg.Entity, 0, len(content))
	for _, i := range content {
		if i.Code == "" || i.Name == "" {
			continue
		}
		entities = append(entities, financekg.NewEntity(i.Name, i.Code))
	}
	return entities, nil
}
