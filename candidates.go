package financekg

import (
	"context"
	"strings"
)

// ScanSupplier is an offline CandidateSupplier backed by the index itself.
// It matches the query as a case-insensitive substring of the canonical
// names, listing prefix matches before inner matches so that "micro" ranks
// "Microsoft Corporation Common Stock" ahead of "Advanced Micro Devices".
//
// It exists so the service answers candidate queries without network access;
// a remote supplier (marketdata.CandidateSearch) can replace it when a
// relevance-ranked source is available.
type ScanSupplier struct {
	index *Index
	limit int
}

// DefaultCandidateLimit caps the number of candidates returned by a
// ScanSupplier created with limit <= 0.
const DefaultCandidateLimit = 10

func NewScanSupplier(index *Index, limit int) *ScanSupplier {
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}
	return &ScanSupplier{index: index, limit: limit}
}

// Candidates returns canonical names containing the query, prefix matches
// first, each group in index insertion order.
func (s *ScanSupplier) Candidates(_ context.Context, query string) ([]string, error) {
	q := strings.ToLower(Trim(query))
	if q == "" {
		return nil, nil
	}
	var prefix, inner []string
	for _, name := range s.index.names {
		folded := strings.ToLower(name)
		switch {
		case strings.HasPrefix(folded, q):
			prefix = append(prefix, name)
		case strings.Contains(folded, q):
			inner = append(inner, name)
		}
	}
	candidates := append(prefix, inner...)
	if len(candidates) > s.limit {
		candidates = candidates[:s.limit]
	}
	return candidates, nil
}
