// internal/stockquery/lookup.go
package stockquery

import (
	"minimart-assistant/internal/catalog"
	apperrors "minimart-assistant/internal/common/errors"
)

// StockLevel classifies a quantity against its reorder threshold.
type StockLevel string

const (
	StockIn  StockLevel = "IN_STOCK"
	StockLow StockLevel = "LOW_STOCK"
	StockOut StockLevel = "OUT_OF_STOCK"
)

// Classify applies the stock cutoffs: zero or less is out, at or below the
// reorder threshold is low, anything above is in stock.
func Classify(item catalog.InventoryItem) StockLevel {
	switch {
	case item.Qty <= 0:
		return StockOut
	case item.Qty <= item.ReorderThreshold:
		return StockLow
	default:
		return StockIn
	}
}

// ResultKind tags which shape of answer a lookup produced.
type ResultKind string

const (
	ResultError    ResultKind = "error"
	ResultSingle   ResultKind = "single"
	ResultPerStore ResultKind = "per_store"
	ResultSummary  ResultKind = "summary"
	ResultHelp     ResultKind = "help"
)

// StoreStock is one item's stock state at one store.
type StoreStock struct {
	Store catalog.Store
	Item  catalog.InventoryItem
	Level StockLevel
}

// StoreSummary is the bounded status view for a location-only query. Limit
// caps how many item names the composed answer lists per stock level.
type StoreSummary struct {
	Store      catalog.Store
	TotalItems int
	Low        []catalog.InventoryItem
	Out        []catalog.InventoryItem
	Limit      int
}

// StockResult is the tagged outcome the composer turns into text.
type StockResult struct {
	Kind ResultKind

	// Error outcomes.
	Code       apperrors.ErrorCode
	FailedText string   // the raw query text that failed to resolve
	Candidates []string // display names for clarification prompts

	// Set when PolicyAssumeFirst picked among ambiguous candidates.
	AssumedStore   string
	AssumedProduct string

	Single   StoreStock
	PerStore []StoreStock
	Summary  StoreSummary
}

// Lookup sequences store and product resolution against the snapshot and
// classifies the resulting stock level. Location errors take precedence over
// product errors: the location narrows the search space first. Pure read,
// no side effects.
func Lookup(snap *catalog.Snapshot, q Query, cfg Config) StockResult {
	storeRes := Resolve(q.Location, snap.Stores)

	var (
		store        catalog.Store
		assumedStore string
	)

	switch storeRes.Status {
	case StatusNotFound:
		return StockResult{
			Kind:       ResultError,
			Code:       apperrors.ErrCodeLocationNotFound,
			FailedText: q.Location,
		}
	case StatusResolvedAmbiguous:
		if cfg.AmbiguityPolicy != PolicyAssumeFirst {
			return StockResult{
				Kind:       ResultError,
				Code:       apperrors.ErrCodeAmbiguousLocation,
				FailedText: q.Location,
				Candidates: storeRes.CandidateNames(),
			}
		}
		store, _ = storeRes.Primary()
		assumedStore = store.DisplayName
	case StatusResolvedSingle:
		store, _ = storeRes.Primary()
	case StatusNotRequested:
		return lookupAcrossStores(snap, q, cfg)
	}

	productRes := Resolve(q.Product, snap.ItemsFor(store.ID))

	switch productRes.Status {
	case StatusNotRequested:
		// Location-only queries are summarized by the router; reaching here
		// means the caller skipped it, so summarize anyway.
		return StockResult{
			Kind:         ResultSummary,
			Summary:      Summarize(snap, store, cfg.SummaryLimit),
			AssumedStore: assumedStore,
		}
	case StatusNotFound:
		return StockResult{
			Kind:         ResultError,
			Code:         apperrors.ErrCodeProductNotFound,
			FailedText:   q.Product,
			AssumedStore: assumedStore,
		}
	case StatusResolvedAmbiguous:
		if cfg.AmbiguityPolicy != PolicyAssumeFirst {
			return StockResult{
				Kind:         ResultError,
				Code:         apperrors.ErrCodeAmbiguousProduct,
				FailedText:   q.Product,
				Candidates:   productRes.CandidateNames(),
				AssumedStore: assumedStore,
			}
		}
		item, _ := productRes.Primary()
		return StockResult{
			Kind:           ResultSingle,
			Single:         StoreStock{Store: store, Item: item, Level: Classify(item)},
			AssumedStore:   assumedStore,
			AssumedProduct: item.Name,
		}
	}

	item, _ := productRes.Primary()
	return StockResult{
		Kind:         ResultSingle,
		Single:       StoreStock{Store: store, Item: item, Level: Classify(item)},
		AssumedStore: assumedStore,
	}
}

// lookupAcrossStores handles product-only queries. Candidates that all share
// one canonical item name are the same product stocked at several stores and
// become a per-store quantity report; mixed names are genuine product
// ambiguity.
func lookupAcrossStores(snap *catalog.Snapshot, q Query, cfg Config) StockResult {
	productRes := Resolve(q.Product, snap.AllItems())

	switch productRes.Status {
	case StatusNotRequested, StatusNotFound:
		return StockResult{
			Kind:       ResultError,
			Code:       apperrors.ErrCodeProductNotFound,
			FailedText: q.Product,
		}
	case StatusResolvedSingle:
		item, _ := productRes.Primary()
		st, _ := snap.StoreByID(item.StoreID)
		return StockResult{
			Kind:   ResultSingle,
			Single: StoreStock{Store: st, Item: item, Level: Classify(item)},
		}
	}

	names := productRes.CandidateNames()
	if len(names) > 1 {
		if cfg.AmbiguityPolicy != PolicyAssumeFirst {
			return StockResult{
				Kind:       ResultError,
				Code:       apperrors.ErrCodeAmbiguousProduct,
				FailedText: q.Product,
				Candidates: names,
			}
		}
		// Keep only the candidates carrying the primary name, then fall
		// through to the per-store report.
		primary, _ := productRes.Primary()
		kept := productRes.Candidates[:0:0]
		for _, c := range productRes.Candidates {
			if Canonical(c.Entity.EntityName()) == Canonical(primary.EntityName()) {
				kept = append(kept, c)
			}
		}
		productRes.Candidates = kept
		return perStoreReport(snap, productRes, primary.EntityName())
	}

	return perStoreReport(snap, productRes, "")
}

func perStoreReport(snap *catalog.Snapshot, productRes Resolution[catalog.InventoryItem], assumedProduct string) StockResult {
	perStore := make([]StoreStock, 0, len(productRes.Candidates))
	for _, c := range productRes.Candidates {
		st, ok := snap.StoreByID(c.Entity.StoreID)
		if !ok {
			// Orphaned item row; the store invariant is enforced upstream,
			// skip rather than fabricate a store.
			continue
		}
		perStore = append(perStore, StoreStock{Store: st, Item: c.Entity, Level: Classify(c.Entity)})
	}

	if len(perStore) == 0 {
		return StockResult{
			Kind:       ResultError,
			Code:       apperrors.ErrCodeProductNotFound,
			FailedText: productRes.QueryText,
		}
	}

	if len(perStore) == 1 {
		return StockResult{
			Kind:           ResultSingle,
			Single:         perStore[0],
			AssumedProduct: assumedProduct,
		}
	}

	return StockResult{
		Kind:           ResultPerStore,
		PerStore:       perStore,
		AssumedProduct: assumedProduct,
	}
}

// Summarize builds the status view for one store. Pure read.
func Summarize(snap *catalog.Snapshot, store catalog.Store, limit int) StoreSummary {
	summary := StoreSummary{Store: store, Limit: limit}
	for _, item := range snap.ItemsFor(store.ID) {
		summary.TotalItems++
		switch Classify(item) {
		case StockOut:
			summary.Out = append(summary.Out, item)
		case StockLow:
			summary.Low = append(summary.Low, item)
		}
	}
	return summary
}
