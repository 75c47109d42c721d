// Package cache wraps the optional redis layer. Every helper fails open:
// with no client configured, or redis down, callers fall through to the
// database.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	trendingKey = "marketplace:trending"
	trendingTTL = 30 * time.Second
)

// New connects to addr, or returns nil when addr is empty so the service
// runs cache-less.
func New(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zap.S().Warnw("redis unreachable, running without cache", "addr", addr, "err", err)
		return nil
	}
	return rdb
}

// GetTrending returns the cached trending projection, or false on miss.
func GetTrending(ctx context.Context, rdb *redis.Client, out interface{}) bool {
	if rdb == nil {
		return false
	}
	raw, err := rdb.Get(ctx, trendingKey).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// SetTrending caches the trending projection for a short TTL.
func SetTrending(ctx context.Context, rdb *redis.Client, v interface{}) {
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := rdb.Set(ctx, trendingKey, raw, trendingTTL).Err(); err != nil {
		zap.S().Debugw("trending cache write failed", "err", err)
	}
}

// InvalidateTrending drops the projection; checkout calls this after any
// demand update.
func InvalidateTrending(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, trendingKey).Err(); err != nil {
		zap.S().Debugw("trending cache invalidation failed", "err", err)
	}
}
