// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pgtest hands store tests a freshly migrated catalogue database.

Resolution order:

  - TEST_DATABASE_URL: an existing server. Its core and geo schemas are
    dropped and rebuilt, so point it at a throwaway database. Tests from
    different packages take turns through an advisory lock.
  - Docker: a disposable postgres container, terminated with the test.
  - Neither: the test is skipped.
*/
package pgtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sanctorale/sanctorale/internal/platform/migration"
	"github.com/sanctorale/sanctorale/internal/platform/postgres"
)

// EnvDatabaseURL names the variable selecting an existing server.
const EnvDatabaseURL = "TEST_DATABASE_URL"

const (
	// lockKey serializes tests sharing one TEST_DATABASE_URL.
	lockKey = 0x5a4e7c

	image          = "postgres:16-alpine"
	containerPort  = "5432/tcp"
	startupTimeout = 90 * time.Second
	credentials    = "sanctorale"
)

// resetStatements drop everything the migrations create.
var resetStatements = []string{
	"DROP SCHEMA IF EXISTS core CASCADE",
	"DROP SCHEMA IF EXISTS geo CASCADE",
	"DROP TABLE IF EXISTS public.schema_migrations",
}

/*
Open returns a pool on an empty, fully migrated catalogue.

Parameters:
  - t: *testing.T (skipped when no database is reachable)

Returns:
  - *pgxpool.Pool: Closed when the test ends
*/
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		dsn = startContainer(t, ctx)
	} else {
		holdLock(t, ctx, dsn)
	}

	pool, err := postgres.NewPool(ctx, dsn, logger)
	if err != nil {
		t.Fatalf("pgtest: connect: %v", err)
	}
	t.Cleanup(pool.Close)

	for _, statement := range resetStatements {
		if _, err := pool.Exec(ctx, statement); err != nil {
			t.Fatalf("pgtest: reset: %v", err)
		}
	}

	if err := migration.RunUp(dsn, MigrationsPath(t), logger); err != nil {
		t.Fatalf("pgtest: migrate: %v", err)
	}

	return pool
}

// MigrationsPath locates data/migrations from this source file.
func MigrationsPath(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("pgtest: cannot locate source file")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "data", "migrations")
}

func startContainer(t *testing.T, ctx context.Context) string {
	t.Helper()

	if !dockerAvailable(ctx) {
		t.Skipf("pgtest: set %s or start Docker to run Postgres-backed tests", EnvDatabaseURL)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{containerPort},
			Env: map[string]string{
				"POSTGRES_USER":     credentials,
				"POSTGRES_PASSWORD": credentials,
				"POSTGRES_DB":       credentials,
			},
			// The entrypoint restarts the server once after initdb.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("pgtest: start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("pgtest: terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("pgtest: container host: %v", err)
	}
	port, err := container.MappedPort(ctx, containerPort)
	if err != nil {
		t.Fatalf("pgtest: container port: %v", err)
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		credentials, credentials, host, port.Port(), credentials)
}

// holdLock keeps a session advisory lock until the test ends.
func holdLock(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("pgtest: connect for lock: %v", err)
	}
	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", lockKey); err != nil {
		_ = conn.Close(ctx)
		t.Fatalf("pgtest: advisory lock: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close(context.Background())
	})
}

func dockerAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}
