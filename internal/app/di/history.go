package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_predictor/internal/feature/forecast/adapters"
	"stock_predictor/internal/platform/cache"
)

// NewHistoryStore creates the history repository used by the forecast
// pipeline. If Redis is available, reads go through a cache decorator.
// Otherwise, every read hits the database directly.
func NewHistoryStore(rdb *redis.Client, db *gorm.DB, ttl time.Duration) cache.HistoryStore {
	repo := adapters.NewHistoryRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingHistoryRepository(rdb, ttl, repo, "history")
}
