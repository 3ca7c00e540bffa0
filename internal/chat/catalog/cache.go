package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"food-assistant/internal/common/logger"
	"food-assistant/internal/models"
)

const (
	DefaultCacheKey = "menu:items"
	DefaultCacheTTL = 5 * time.Minute
)

// CachedSource keeps the last snapshot of next in Redis. Redis failures
// fall through to next and are never returned.
type CachedSource struct {
	next   Source
	redis  *redis.Client
	key    string
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(next Source, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{
		next:   next,
		redis:  client,
		key:    DefaultCacheKey,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog.cache"}),
	}
}

func (c *CachedSource) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	val, err := c.redis.Get(ctx, c.key).Result()
	switch {
	case err == nil:
		var items []models.MenuItem
		if jsonErr := json.Unmarshal([]byte(val), &items); jsonErr == nil {
			return items, nil
		}
		c.logger.Warn("discarding undecodable menu cache entry", map[string]interface{}{"key": c.key})
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("menu cache read failed", map[string]interface{}{"key": c.key, "error": err.Error()})
	}

	items, err := c.next.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	data, err := json.Marshal(items)
	if err != nil {
		c.logger.Warn("menu cache encode failed", map[string]interface{}{"key": c.key, "error": err.Error()})
		return items, nil
	}
	if err := c.redis.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("menu cache write failed", map[string]interface{}{"key": c.key, "error": err.Error()})
	}
	return items, nil
}
