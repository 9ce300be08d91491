// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanctorale/sanctorale/internal/platform/constants"
)

// statsCacheKey is the versioned key of the shared stats snapshot.
const statsCacheKey = constants.RedisPrefixStats + "v1"

// RedisStatsCache implements [StatsCache] using Redis.
type RedisStatsCache struct {
	client *redis.Client
}

// NewRedisStatsCache creates a new Redis-backed StatsCache.
func NewRedisStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{client: client}
}

/*
Get returns the cached snapshot bytes.

Returns:
  - []byte: Encoded snapshot
  - bool: false when the key is absent or expired
  - error: Connectivity errors
*/
func (cache *RedisStatsCache) Get(context context.Context) ([]byte, bool, error) {
	payload, err := cache.client.Get(context, statsCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_stats_get_failed: %w", err)
	}
	return payload, true, nil
}

// Set stores payload with a fixed expiry (SET ... EX).
func (cache *RedisStatsCache) Set(context context.Context, payload []byte, ttl time.Duration) error {
	if err := cache.client.Set(context, statsCacheKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_stats_set_failed: %w", err)
	}
	return nil
}

// Invalidate drops the snapshot so the next read recomputes it.
func (cache *RedisStatsCache) Invalidate(context context.Context) error {
	if err := cache.client.Del(context, statsCacheKey).Err(); err != nil {
		return fmt.Errorf("redis_stats_delete_failed: %w", err)
	}
	return nil
}
