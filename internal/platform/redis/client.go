// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis opens the client behind the shared statistics snapshot.

Redis holds a single key per deployment, so the client is tuned to fail fast:
a slow or missing Redis turns a stats request into a recomputation, never
into a stalled request.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanctorale/sanctorale/internal/platform/constants"
)

// Snapshot cache tuning.
const (
	poolSize     = 4
	minIdleConns = 1
	maxRetries   = 1
	dialTimeout  = 2 * time.Second
	readTimeout  = 500 * time.Millisecond
	writeTimeout = 500 * time.Millisecond
	pingTimeout  = time.Second
)

// Options parses redisURL and applies the snapshot cache tuning. The
// connection is named after the API so it shows in CLIENT LIST.
func Options(redisURL string) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.ClientName = constants.AppName
	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.MaxRetries = maxRetries
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout
	options.ContextTimeoutEnabled = true

	return options, nil
}

/*
NewClient connects to the snapshot cache.

Parameters:
  - context: context.Context (bounds the startup ping)
  - redisURL: string (redis:// or rediss:// URL)
  - logger: *slog.Logger

Returns:
  - *redis.Client: A reachable client
  - error: Parse or ping failures
*/
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := Options(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_stats_cache_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.String("key_prefix", constants.RedisPrefixStats),
	)

	return client, nil
}

// Ping is the readiness check of the snapshot cache.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
