// internal/catalog/provider.go
package catalog

import "context"

// Provider is the read-only catalog interface the query pipeline consumes.
// Implementations must return stores and items in a stable order (sorted by
// name) so that resolution tie-breaks are deterministic across runs.
type Provider interface {
	ListStores(ctx context.Context) ([]Store, error)
	ListItemsByStore(ctx context.Context, storeID string) ([]InventoryItem, error)
	FindItemsByName(ctx context.Context, productText string) ([]InventoryItem, error)

	// Snapshot assembles the immutable view a single query resolution runs
	// against. The engine itself never touches the Provider again.
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Snapshot is a point-in-time copy of the catalog. All engine computation is
// pure over one of these; concurrent queries can share a snapshot freely.
type Snapshot struct {
	Stores []Store                    `json:"stores"`
	Items  map[string][]InventoryItem `json:"items"` // keyed by store id
}

// ItemsFor returns the inventory of one store, nil when unknown.
func (s *Snapshot) ItemsFor(storeID string) []InventoryItem {
	return s.Items[storeID]
}

// AllItems returns every item in store order, item order within each store.
// The order matters: it is the catalog iteration order cross-store product
// resolution ties break on.
func (s *Snapshot) AllItems() []InventoryItem {
	var out []InventoryItem
	for _, st := range s.Stores {
		out = append(out, s.Items[st.ID]...)
	}
	return out
}

// StoreByID looks a store up by id.
func (s *Snapshot) StoreByID(id string) (Store, bool) {
	for _, st := range s.Stores {
		if st.ID == id {
			return st, true
		}
	}
	return Store{}, false
}
