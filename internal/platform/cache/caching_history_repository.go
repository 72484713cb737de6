// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_predictor/internal/feature/forecast/domain/entity"
)

// HistoryStore is the read/write surface of the history repository this
// decorator wraps. Following Go convention: interfaces are defined by the
// consumer (cache), not the provider (adapters).
type HistoryStore interface {
	FetchRecent(ctx context.Context, symbol string, limit int) ([]entity.HistoryPoint, error)
	UpsertBatch(ctx context.Context, symbol string, points []entity.HistoryPoint) error
}

// CachingHistoryRepository decorates a HistoryStore with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingHistoryRepository struct {
	inner     HistoryStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingHistoryRepository decorates a HistoryStore with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "history".
func NewCachingHistoryRepository(rdb *redis.Client, ttl time.Duration, inner HistoryStore, namespace string) *CachingHistoryRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "history"
	}
	return &CachingHistoryRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FetchRecent retrieves history points, checking cache first then falling
// back to the database.
func (c *CachingHistoryRepository) FetchRecent(ctx context.Context, symbol string, limit int) ([]entity.HistoryPoint, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FetchRecent(ctx, symbol, limit)
	}

	key := c.cacheKey(symbol, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.HistoryPoint
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FetchRecent(ctx, symbol, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// UpsertBatch writes points through to the underlying repository and
// invalidates the symbol's cache entries.
func (c *CachingHistoryRepository) UpsertBatch(ctx context.Context, symbol string, points []entity.HistoryPoint) error {
	// First upsert to the underlying repository
	if err := c.inner.UpsertBatch(ctx, symbol, points); err != nil {
		return err
	}
	if c.rdb == nil || len(points) == 0 {
		return nil
	}

	// Invalidate the symbol's cached reads (any limit)
	_ = c.deleteByPattern(ctx, c.cacheKeyPrefix(symbol)+"*") // Best effort: don't fail if cache deletion fails
	return nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingHistoryRepository) cacheKey(symbol string, limit int) string {
	return fmt.Sprintf("%s:%s:%d", c.namespace, safe(symbol), limit)
}

// cacheKeyPrefix generates a prefix for invalidating related cache entries.
func (c *CachingHistoryRepository) cacheKeyPrefix(symbol string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(symbol))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingHistoryRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
