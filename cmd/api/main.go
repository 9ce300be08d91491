// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Sanctorale HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when configured.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sanctorale/sanctorale/internal/api"
	"github.com/sanctorale/sanctorale/internal/core/geo"
	"github.com/sanctorale/sanctorale/internal/core/saint"
	"github.com/sanctorale/sanctorale/internal/platform/authz"
	"github.com/sanctorale/sanctorale/internal/platform/config"
	"github.com/sanctorale/sanctorale/internal/platform/constants"
	"github.com/sanctorale/sanctorale/internal/platform/migration"
	pgstore "github.com/sanctorale/sanctorale/internal/platform/postgres"
	redisstore "github.com/sanctorale/sanctorale/internal/platform/redis"
	"github.com/sanctorale/sanctorale/internal/platform/sec"
)

func main() {
	// # 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Sanctorale] service_initializing", slog.String("version", constants.AppVersion))

	// # 2. Configuration
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("timezone", cfg.AppTimezone),
	)

	// Root context for background workers; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.StartupTimeout)
	defer startupCancel()

	// # 3. PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// # 4. Redis (optional)
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
	} else {
		log.Warn("redis_not_configured", slog.String("stats_cache", "memory"))
	}

	// # 5. Migrations
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// # 6. Security
	tokenService, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	authorizer, err := authz.New(cfg.AuthzPolicyPath, log)
	must(log, err, "initialize authorizer")

	// # 7. Health handlers
	health := api.HealthDependencies{
		CheckDatabase: func(context context.Context) error {
			return pgstore.Ping(context, pool)
		},
	}
	if rdb != nil {
		health.CheckCache = func(context context.Context) error {
			return redisstore.Ping(context, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(health, log)

	// # 8. Domain Wiring
	geoService := geo.NewService(geo.NewPostgresRepository(pool))

	var statsCache saint.StatsCache
	if rdb != nil {
		statsCache = saint.NewRedisStatsCache(rdb)
	}

	saintService := saint.NewService(saint.Dependencies{
		Saints:     saint.NewPostgresRepository(pool),
		Patronages: saint.NewPostgresPatronageRepository(pool),
		References: geoService,
		Targets:    saint.NewGeoTargetRegistry(geoService),
		Cache:      statsCache,
		CacheTTL:   cfg.StatsCacheTTL,
		Location:   cfg.Location(),
		Logger:     log,
	})

	// # 9. HTTP Server
	server := api.NewServer(rootCtx, cfg, log, tokenService, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Saint:     saint.NewHandler(saintService, authorizer),
		Geo:       geo.NewHandler(geoService),
	})

	// # 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Limited to startup wiring. After startup, errors are returned and handled.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
