// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"minimart-assistant/internal/common/logger"
)

const snapshotCacheKey = "catalog:snapshot"

// CachedProvider decorates a Provider with a redis snapshot cache. Reads go
// through the cache; a redis outage degrades to the inner provider rather
// than failing the query.
type CachedProvider struct {
	inner  Provider
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedProvider(inner Provider, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedProvider {
	return &CachedProvider{
		inner:  inner,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-cache"}),
	}
}

func (c *CachedProvider) ListStores(ctx context.Context) ([]Store, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Stores, nil
}

func (c *CachedProvider) ListItemsByStore(ctx context.Context, storeID string) ([]InventoryItem, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.ItemsFor(storeID), nil
}

func (c *CachedProvider) FindItemsByName(ctx context.Context, productText string) ([]InventoryItem, error) {
	// Name search stays on the inner provider; it may use the search index.
	return c.inner.FindItemsByName(ctx, productText)
}

func (c *CachedProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	if val, err := c.redis.Get(ctx, snapshotCacheKey).Result(); err == nil {
		var snap Snapshot
		if err := json.Unmarshal([]byte(val), &snap); err == nil {
			return &snap, nil
		}
		// Corrupt cache entry: drop it and refetch.
		c.redis.Del(ctx, snapshotCacheKey)
	} else if err != redis.Nil {
		c.logger.Warn("snapshot cache read failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	snap, err := c.inner.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(snap); err == nil {
		if err := c.redis.Set(ctx, snapshotCacheKey, data, c.ttl).Err(); err != nil {
			c.logger.Warn("snapshot cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return snap, nil
}

// Invalidate drops the cached snapshot, for use by admin tooling after bulk
// inventory imports.
func (c *CachedProvider) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, snapshotCacheKey).Err()
}
