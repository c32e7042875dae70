// internal/stockquery/resolver.go
package stockquery

import "strings"

// Status classifies the outcome of resolving one query text.
type Status string

const (
	StatusResolvedSingle    Status = "RESOLVED_SINGLE"
	StatusResolvedAmbiguous Status = "RESOLVED_AMBIGUOUS"
	StatusNotFound          Status = "NOT_FOUND"
	StatusNotRequested      Status = "NOT_REQUESTED"
)

// MatchKind records which phase produced a candidate.
type MatchKind string

const (
	MatchExactTokenSet     MatchKind = "EXACT_TOKENSET"
	MatchSubstringFallback MatchKind = "SUBSTRING_FALLBACK"
)

// Named is any catalog entity the resolver can match against.
type Named interface {
	EntityName() string
}

// Candidate is one entity that survived matching.
type Candidate[E Named] struct {
	Entity            E
	MatchedTokenCount int
	Kind              MatchKind
}

// Resolution is the outcome of resolving one query text against a catalog.
// On RESOLVED_AMBIGUOUS the full candidate list is retained, in catalog
// iteration order; the first candidate is the primary suggestion.
type Resolution[E Named] struct {
	Status     Status
	QueryText  string
	Candidates []Candidate[E]
}

// Primary returns the first candidate in catalog order.
func (r Resolution[E]) Primary() (E, bool) {
	if len(r.Candidates) == 0 {
		var zero E
		return zero, false
	}
	return r.Candidates[0].Entity, true
}

// CandidateNames returns the display names of all candidates, catalog order,
// duplicates collapsed case-insensitively (cross-store copies of one item
// share a name).
func (r Resolution[E]) CandidateNames() []string {
	seen := make(map[string]struct{}, len(r.Candidates))
	names := make([]string, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		key := Canonical(c.Entity.EntityName())
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, c.Entity.EntityName())
	}
	return names
}

// Resolve matches free query text against a catalog of named entities.
//
// Phase A requires every query token to appear in the entity's token set
// (the entity may have extra tokens). That is why "99 Speedmart Acacia"
// matches "99 Speedmart Acacia, Nilai" but not "99 Speedmart Desa Jati,
// Nilai": the token "acacia" is mandatory.
//
// Phase B runs only when Phase A finds nothing: the canonical query string
// must contain, or be contained in, the canonical entity name. That is what
// lets a single partial word like "Acacia" still find its store.
//
// Deterministic: same inputs and catalog order always yield the same
// resolution.
func Resolve[E Named](queryText string, entities []E) Resolution[E] {
	if strings.TrimSpace(queryText) == "" {
		return Resolution[E]{Status: StatusNotRequested, QueryText: queryText}
	}

	queryTokens := Tokens(queryText)

	var candidates []Candidate[E]
	for _, e := range entities {
		entityTokens := Tokens(e.EntityName())
		if queryTokens.SubsetOf(entityTokens) {
			candidates = append(candidates, Candidate[E]{
				Entity:            e,
				MatchedTokenCount: len(queryTokens),
				Kind:              MatchExactTokenSet,
			})
		}
	}

	if len(candidates) == 0 {
		canonical := Canonical(queryText)
		for _, e := range entities {
			name := Canonical(e.EntityName())
			if strings.Contains(name, canonical) || strings.Contains(canonical, name) {
				candidates = append(candidates, Candidate[E]{
					Entity:            e,
					MatchedTokenCount: queryTokens.Overlap(Tokens(e.EntityName())),
					Kind:              MatchSubstringFallback,
				})
			}
		}
	}

	res := Resolution[E]{QueryText: queryText, Candidates: candidates}
	switch len(candidates) {
	case 0:
		res.Status = StatusNotFound
	case 1:
		res.Status = StatusResolvedSingle
	default:
		res.Status = StatusResolvedAmbiguous
	}
	return res
}
