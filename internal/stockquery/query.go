// internal/stockquery/query.go
package stockquery

// Intent display names the conversational platform sends. Routing is driven
// by which parameters are present; the intent name feeds logging and the
// phrasing of clarification prompts.
const (
	IntentStockQuery  = "stock.query"
	IntentStoreStatus = "store.status"
	IntentWelcome     = "Default Welcome Intent"
	IntentFallback    = "Default Fallback Intent"
)

// Query is the boundary-validated request the engine resolves. RawQueryText
// is diagnostics only; matching uses the extracted parameters.
type Query struct {
	Intent       string
	Product      string
	Location     string
	RawQueryText string
}

// AmbiguityPolicy picks the behavior when resolution finds several
// candidates.
type AmbiguityPolicy string

const (
	// PolicyClarify lists the candidates and asks the user to narrow down.
	PolicyClarify AmbiguityPolicy = "clarify"
	// PolicyAssumeFirst answers using the first catalog-order candidate and
	// states which one was assumed.
	PolicyAssumeFirst AmbiguityPolicy = "assume_first"
)

// Config holds the engine policy knobs.
type Config struct {
	AmbiguityPolicy AmbiguityPolicy
	// SummaryLimit bounds how many item names a store status answer lists
	// per stock level.
	SummaryLimit int
}

func DefaultConfig() Config {
	return Config{
		AmbiguityPolicy: PolicyClarify,
		SummaryLimit:    5,
	}
}
