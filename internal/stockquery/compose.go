// internal/stockquery/compose.go
package stockquery

import (
	"fmt"
	"strings"

	"minimart-assistant/internal/catalog"
	apperrors "minimart-assistant/internal/common/errors"
)

// Compose turns a lookup outcome into the final fulfillment text. Pure
// string construction, deterministic per (error code | stock level).
func Compose(res StockResult) string {
	var b strings.Builder

	if res.AssumedStore != "" {
		fmt.Fprintf(&b, "Assuming you mean %s.\n", res.AssumedStore)
	}
	if res.AssumedProduct != "" {
		fmt.Fprintf(&b, "Assuming you mean %q.\n", res.AssumedProduct)
	}

	switch res.Kind {
	case ResultHelp:
		b.WriteString(ComposeHelp())
	case ResultError:
		b.WriteString(composeError(res))
	case ResultSingle:
		b.WriteString(composeSingle(res.Single))
	case ResultPerStore:
		b.WriteString(composePerStore(res.PerStore))
	case ResultSummary:
		b.WriteString(composeSummary(res.Summary))
	default:
		b.WriteString(ComposeHelp())
	}

	return b.String()
}

func composeError(res StockResult) string {
	switch res.Code {
	case apperrors.ErrCodeLocationNotFound:
		return fmt.Sprintf("Sorry, I couldn't find any store matching %q. Please check the store name and try again.", res.FailedText)
	case apperrors.ErrCodeProductNotFound:
		return fmt.Sprintf("Sorry, I couldn't find %q in our inventory.", res.FailedText)
	case apperrors.ErrCodeAmbiguousLocation:
		return fmt.Sprintf("I found several stores matching %q:\n%s\nWhich one do you mean?",
			res.FailedText, bulletList(res.Candidates))
	case apperrors.ErrCodeAmbiguousProduct:
		return fmt.Sprintf("I found several products matching %q:\n%s\nWhich one do you mean?",
			res.FailedText, bulletList(res.Candidates))
	case apperrors.ErrCodeCatalogUnavailable:
		return ComposeCatalogUnavailable()
	default:
		return ComposeHelp()
	}
}

func composeSingle(s StoreStock) string {
	switch s.Level {
	case StockOut:
		return fmt.Sprintf("Sorry, %s is currently out of stock at %s.", s.Item.Name, s.Store.DisplayName)
	case StockLow:
		return fmt.Sprintf("Yes, %s is available at %s, but stock is low: only %d left.",
			s.Item.Name, s.Store.DisplayName, s.Item.Qty)
	default:
		return fmt.Sprintf("Yes, %s is in stock at %s (%d available).",
			s.Item.Name, s.Store.DisplayName, s.Item.Qty)
	}
}

func composePerStore(stocks []StoreStock) string {
	if len(stocks) == 0 {
		return ComposeHelp()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s is carried at %d stores:", stocks[0].Item.Name, len(stocks))
	for _, s := range stocks {
		switch s.Level {
		case StockOut:
			fmt.Fprintf(&b, "\n- %s: out of stock", s.Store.DisplayName)
		case StockLow:
			fmt.Fprintf(&b, "\n- %s: %d left (low stock)", s.Store.DisplayName, s.Item.Qty)
		default:
			fmt.Fprintf(&b, "\n- %s: %d in stock", s.Store.DisplayName, s.Item.Qty)
		}
	}
	return b.String()
}

func composeSummary(sum StoreSummary) string {
	if sum.TotalItems == 0 {
		return fmt.Sprintf("%s has no items on record yet.", sum.Store.DisplayName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s carries %d items.", sum.Store.DisplayName, sum.TotalItems)

	if len(sum.Out) == 0 && len(sum.Low) == 0 {
		b.WriteString(" Everything is in stock.")
		return b.String()
	}

	if len(sum.Out) > 0 {
		fmt.Fprintf(&b, "\nOut of stock (%d): %s", len(sum.Out), itemNames(sum.Out, sum.Limit))
	}
	if len(sum.Low) > 0 {
		fmt.Fprintf(&b, "\nLow on stock (%d): %s", len(sum.Low), itemNames(sum.Low, sum.Limit))
	}
	return b.String()
}

// ComposeHelp is the terminal answer when no parameter was supplied.
func ComposeHelp() string {
	return "I can check stock for you. Ask about a product, a store, or both, " +
		"for example: \"Do you have Oil Packet 1KG at 99 Speedmart Acacia?\""
}

// ComposeCatalogUnavailable is the answer when the catalog fetch failed.
// The caller is expected to log and alert; the user just gets a retry hint.
func ComposeCatalogUnavailable() string {
	return "Sorry, I can't reach the inventory system right now. Please try again in a moment."
}

func bulletList(names []string) string {
	var b strings.Builder
	for i, n := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s", n)
	}
	return b.String()
}

func itemNames(items []catalog.InventoryItem, limit int) string {
	if limit <= 0 {
		limit = len(items)
	}
	names := make([]string, 0, limit)
	for i, it := range items {
		if i >= limit {
			names = append(names, fmt.Sprintf("and %d more", len(items)-limit))
			break
		}
		names = append(names, it.Name)
	}
	return strings.Join(names, ", ")
}
