// internal/stockquery/router.go
package stockquery

import (
	"strings"

	"minimart-assistant/internal/catalog"
	apperrors "minimart-assistant/internal/common/errors"
	"minimart-assistant/internal/common/logger"
)

// Engine is the top-level entry point for stock-query resolution. It is
// stateless apart from its policy config; every call is an independent pure
// computation over the supplied snapshot, so one Engine serves any number of
// concurrent requests.
type Engine struct {
	cfg    Config
	logger logger.Logger
}

func New(cfg Config, log logger.Logger) *Engine {
	if cfg.SummaryLimit <= 0 {
		cfg.SummaryLimit = DefaultConfig().SummaryLimit
	}
	if cfg.AmbiguityPolicy == "" {
		cfg.AmbiguityPolicy = DefaultConfig().AmbiguityPolicy
	}
	return &Engine{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "stockquery"}),
	}
}

// Handle routes one query by parameter presence and returns the fulfillment
// text plus the structured result for the caller's logging and metrics.
// Every path terminates in composed text; nothing is thrown to the caller.
//
//   - product and location present: full store+product resolution
//   - product only: cross-store search with per-store quantities
//   - location only: bounded store status summary
//   - neither: help text, no catalog access at all
func (e *Engine) Handle(q Query, snap *catalog.Snapshot) (string, StockResult) {
	q.Product = strings.TrimSpace(q.Product)
	q.Location = strings.TrimSpace(q.Location)

	var res StockResult
	switch {
	case q.Product == "" && q.Location == "":
		res = StockResult{Kind: ResultHelp}
	case q.Product == "":
		res = e.summarizeLocation(q, snap)
	default:
		res = Lookup(snap, q, e.cfg)
	}

	e.logger.Debug("query resolved", map[string]interface{}{
		"intent":   q.Intent,
		"rawQuery": q.RawQueryText,
		"kind":     string(res.Kind),
		"code":     string(res.Code),
	})

	return Compose(res), res
}

func (e *Engine) summarizeLocation(q Query, snap *catalog.Snapshot) StockResult {
	storeRes := Resolve(q.Location, snap.Stores)

	switch storeRes.Status {
	case StatusNotFound:
		return StockResult{
			Kind:       ResultError,
			Code:       apperrors.ErrCodeLocationNotFound,
			FailedText: q.Location,
		}
	case StatusResolvedAmbiguous:
		if e.cfg.AmbiguityPolicy != PolicyAssumeFirst {
			return StockResult{
				Kind:       ResultError,
				Code:       apperrors.ErrCodeAmbiguousLocation,
				FailedText: q.Location,
				Candidates: storeRes.CandidateNames(),
			}
		}
		store, _ := storeRes.Primary()
		return StockResult{
			Kind:         ResultSummary,
			Summary:      Summarize(snap, store, e.cfg.SummaryLimit),
			AssumedStore: store.DisplayName,
		}
	}

	store, _ := storeRes.Primary()
	return StockResult{
		Kind:    ResultSummary,
		Summary: Summarize(snap, store, e.cfg.SummaryLimit),
	}
}
