// Package cache is a thin JSON read-through cache over Redis. A nil
// client disables caching so callers never need to branch on whether
// Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrMiss is returned by GetJSON when the key is absent or caching is
// disabled.
var ErrMiss = errors.New("cache miss")

// Key builders for the per-org cached views.

func LeadsKey(orgExtID string) string      { return "leads:" + orgExtID }
func ContactsKey(orgExtID string) string   { return "contacts:" + orgExtID }
func StatisticsKey(orgExtID string) string { return "stats:" + orgExtID }

// OrgKeys lists every cached view that a data write invalidates.
func OrgKeys(orgExtID string) []string {
	return []string{LeadsKey(orgExtID), ContactsKey(orgExtID), StatisticsKey(orgExtID)}
}

type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New wraps rdb; rdb may be nil, yielding a disabled cache.
func New(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl, logger: logger}
}

// Enabled reports whether a Redis client is attached.
func (c *Cache) Enabled() bool { return c != nil && c.rdb != nil }

// GetJSON loads key into v. Returns ErrMiss on absence or when disabled.
func (c *Cache) GetJSON(ctx context.Context, key string, v any) error {
	if !c.Enabled() {
		return ErrMiss
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return ErrMiss
	}
	return json.Unmarshal(raw, v)
}

// SetJSON stores v under key with the cache TTL. Failures are logged,
// not returned; a broken cache must not break reads.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		}
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes keys after a write so readers see fresh data.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil && c.logger != nil {
		c.logger.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
