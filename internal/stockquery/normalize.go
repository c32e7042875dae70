// internal/stockquery/normalize.go
package stockquery

import "strings"

// TokenSet is a normalized bag of words with duplicates collapsed.
type TokenSet map[string]struct{}

// Tokens lowercases text and splits it on runs of whitespace. Empty tokens
// are dropped. Punctuation attached to a word is kept as part of the token;
// the substring fallback phase is what absorbs punctuation mismatches.
// Never fails; empty input yields an empty set.
func Tokens(text string) TokenSet {
	fields := strings.Fields(strings.ToLower(text))
	set := make(TokenSet, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Canonical returns the lowercase, whitespace-collapsed form of text, used
// for substring comparison.
func Canonical(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Contains reports whether tok is in the set.
func (t TokenSet) Contains(tok string) bool {
	_, ok := t[tok]
	return ok
}

// SubsetOf reports whether every token in t appears in other.
func (t TokenSet) SubsetOf(other TokenSet) bool {
	for tok := range t {
		if !other.Contains(tok) {
			return false
		}
	}
	return true
}

// Overlap counts how many tokens of t appear in other.
func (t TokenSet) Overlap(other TokenSet) int {
	n := 0
	for tok := range t {
		if other.Contains(tok) {
			n++
		}
	}
	return n
}
