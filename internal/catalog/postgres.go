// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"minimart-assistant/internal/common/logger"

	"github.com/lib/pq"
)

const (
	selectStores = `
		SELECT id, display_name
		FROM stores
		ORDER BY display_name`

	selectItemsByStore = `
		SELECT id, store_id, name, sku, qty, reorder_threshold
		FROM inventory_items
		WHERE store_id = $1
		ORDER BY name`

	selectAllItems = `
		SELECT id, store_id, name, sku, qty, reorder_threshold
		FROM inventory_items
		ORDER BY store_id, name`

	selectItemsByNameLike = `
		SELECT id, store_id, name, sku, qty, reorder_threshold
		FROM inventory_items
		WHERE LOWER(name) LIKE '%' || $1 || '%'
		ORDER BY store_id, name`

	selectItemsByIDs = `
		SELECT id, store_id, name, sku, qty, reorder_threshold
		FROM inventory_items
		WHERE id = ANY($1)
		ORDER BY store_id, name`
)

// PostgresProvider reads the store directory and inventory tables. An
// optional SearchIndex narrows cross-store name lookups; when it is nil or
// failing, the provider falls back to a SQL substring scan.
type PostgresProvider struct {
	db     *sql.DB
	search *SearchIndex
	logger logger.Logger
}

func NewPostgresProvider(db *sql.DB, search *SearchIndex, log logger.Logger) *PostgresProvider {
	return &PostgresProvider{
		db:     db,
		search: search,
		logger: log.WithFields(map[string]interface{}{"component": "catalog"}),
	}
}

func (p *PostgresProvider) ListStores(ctx context.Context) ([]Store, error) {
	rows, err := p.db.QueryContext(ctx, selectStores)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []Store
	for rows.Next() {
		var s Store
		if err := rows.Scan(&s.ID, &s.DisplayName); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

func (p *PostgresProvider) ListItemsByStore(ctx context.Context, storeID string) ([]InventoryItem, error) {
	rows, err := p.db.QueryContext(ctx, selectItemsByStore, storeID)
	if err != nil {
		return nil, fmt.Errorf("list items for store %s: %w", storeID, err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (p *PostgresProvider) FindItemsByName(ctx context.Context, productText string) ([]InventoryItem, error) {
	if p.search != nil {
		ids, err := p.search.ItemIDsMatching(ctx, productText)
		if err == nil && len(ids) > 0 {
			return p.itemsByIDs(ctx, ids)
		}
		if err != nil {
			p.logger.Warn("search index unavailable, falling back to SQL scan", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	needle := strings.ToLower(strings.TrimSpace(productText))
	rows, err := p.db.QueryContext(ctx, selectItemsByNameLike, needle)
	if err != nil {
		return nil, fmt.Errorf("find items by name: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (p *PostgresProvider) itemsByIDs(ctx context.Context, ids []string) ([]InventoryItem, error) {
	rows, err := p.db.QueryContext(ctx, selectItemsByIDs, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("items by ids: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (p *PostgresProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	stores, err := p.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := p.db.QueryContext(ctx, selectAllItems)
	if err != nil {
		return nil, fmt.Errorf("snapshot items: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}

	byStore := make(map[string][]InventoryItem, len(stores))
	for _, it := range items {
		byStore[it.StoreID] = append(byStore[it.StoreID], it)
	}

	return &Snapshot{Stores: stores, Items: byStore}, nil
}

func scanItems(rows *sql.Rows) ([]InventoryItem, error) {
	var items []InventoryItem
	for rows.Next() {
		var it InventoryItem
		if err := rows.Scan(&it.ID, &it.StoreID, &it.Name, &it.SKU, &it.Qty, &it.ReorderThreshold); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}
	return items, nil
}
