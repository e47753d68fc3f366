package financekg

import "strings"

// This file holds the pure string canonicalization helpers. They carry all of
// the normalization the resolver relies on, so their semantics are part of
// the public contract: trimming removes leading/trailing whitespace only,
// and name comparison is case-insensitive without touching internal
// whitespace (two names differing by inner spacing do not match).

// Trim removes leading and trailing whitespace.
func Trim(s string) string { return strings.TrimSpace(s) }

// SymbolForm normalizes s for ticker comparison: trimmed and uppercased.
func SymbolForm(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// foldEqual reports whether two names are equal under simple case folding.
func foldEqual(a, b string) bool { return strings.EqualFold(a, b) }
