// internal/catalog/models.go
package catalog

// Store is a directory entry for one minimarket location. Read-only to this
// service; the store directory CRUD owns its lifecycle.
type Store struct {
	ID          string `json:"id" db:"id"`
	DisplayName string `json:"displayName" db:"display_name"`
}

// EntityName exposes the name the resolver matches against.
func (s Store) EntityName() string { return s.DisplayName }

// InventoryItem is one stock record owned by a store. Qty and
// ReorderThreshold are non-negative; checkout and inventory CRUD mutate
// them, this service only reads.
type InventoryItem struct {
	ID               string `json:"id" db:"id"`
	StoreID          string `json:"storeId" db:"store_id"`
	Name             string `json:"name" db:"name"`
	SKU              string `json:"sku" db:"sku"`
	Qty              int    `json:"qty" db:"qty"`
	ReorderThreshold int    `json:"reorderThreshold" db:"reorder_threshold"`
}

// EntityName exposes the name the resolver matches against.
func (i InventoryItem) EntityName() string { return i.Name }
