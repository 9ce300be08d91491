// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres opens the pgx pool shared by the saint, patronage and
// geography stores, and exposes the ping used by the readiness endpoint.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanctorale/sanctorale/internal/platform/constants"
)

// Catalogue sizing: short reads, rare curator writes.
const (
	maxConns          = 16
	minConns          = 2
	maxConnLifetime   = 45 * time.Minute
	maxConnIdleTime   = 5 * time.Minute
	healthCheckPeriod = 30 * time.Second
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

// Session settings sent in the startup packet of every connection.
var sessionParams = map[string]string{
	"application_name": constants.AppName,
	// Timestamps (created_at, updated_at) are rendered in UTC; feast dates are plain dates.
	"TimeZone": "UTC",
	// A statement never outlives the request that issued it.
	"statement_timeout": strconv.FormatInt(constants.GlobalRequestTimeout.Milliseconds(), 10),
	// Stops a crashed request from pinning a row lock inside an open transaction.
	"idle_in_transaction_session_timeout": strconv.FormatInt(constants.GlobalRequestTimeout.Milliseconds(), 10),
}

// Config parses dsn and applies the catalogue pool settings. Session
// parameters already present in dsn win over the defaults.
func Config(dsn string) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnLifetimeJitter = maxConnLifetime / 10
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	for name, value := range sessionParams {
		if _, set := poolConfig.ConnConfig.RuntimeParams[name]; !set {
			poolConfig.ConnConfig.RuntimeParams[name] = value
		}
	}

	return poolConfig, nil
}

/*
NewPool opens the pool and checks that the catalogue database answers.

Parameters:
  - ctx: context.Context (bounds the first connection)
  - dsn: string (postgres:// URL or libpq keyword string)
  - logger: *slog.Logger

Returns:
  - *pgxpool.Pool: A reachable pool
  - error: Parse, connect or ping failures
*/
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := Config(dsn)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.String("host", poolConfig.ConnConfig.Host),
		slog.String("database", poolConfig.ConnConfig.Database),
		slog.Int("max_conns", int(poolConfig.MaxConns)),
		slog.Int("idle_conns", int(pool.Stat().IdleConns())),
	)

	return pool, nil
}

// Ping is the readiness check of the catalogue database.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}
	return nil
}
