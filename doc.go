// Package financekg resolves ambiguous user-supplied financial identifiers
// (free-text company names or ticker symbols) into a canonical name/ticker
// pair, and gates market-data retrieval behind that resolution.
//
// The package is organized around three pieces:
//
//   - an [Index], the authoritative bidirectional name↔ticker relation,
//     built once from a dataset and read-only thereafter,
//   - a [Resolver] that turns arbitrary input into a [Resolution] (a ticker
//     match, a name match, or a miss carrying the original input),
//   - a [Gateway] that forwards a resolved, normalized ticker to an external
//     market-data [Source] and returns its payload unchanged.
//
// The [marketdata] subpackage provides the EODHD-backed Source, the [agent]
// subpackage exposes every operation as a function-calling tool for LLM
// agents, and the [server] subpackage serves the same operations over HTTP.
package financekg
