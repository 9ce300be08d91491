// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanctorale/sanctorale/internal/platform/migration"
)

func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/app", "pgx5://u:p@db:5432/app"},
		{"postgresql://u@db/app?sslmode=disable", "pgx5://u@db/app?sslmode=disable"},
		{"pgx5://db/app", "pgx5://db/app"},
		{"host=db dbname=app", "host=db dbname=app"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, migration.ToPgx5DSN(tt.in))
	}
}

func TestRunDown_RejectsNonPositiveSteps(t *testing.T) {
	err := migration.RunDown("postgres://localhost/app", t.TempDir(), 0, slog.Default())
	assert.ErrorContains(t, err, "steps must be positive")
}

func TestMigrations_PairedAndNamed(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "..", "data", "migrations", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups := map[string]bool{}
	downs := map[string]bool{}
	var schemaSQL strings.Builder
	for _, file := range files {
		name := filepath.Base(file)
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
			body, readErr := os.ReadFile(file)
			require.NoError(t, readErr)
			schemaSQL.Write(body)
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	assert.Equal(t, ups, downs)

	for _, constraint := range []string{
		"saint_slug_key",
		"saint_lifespan_check",
		"saint_place_id_fkey",
		"saint_birth_place_id_fkey",
		"saint_death_place_id_fkey",
		"saint_region_id_fkey",
		"saint_patronage_target_key",
	} {
		assert.Contains(t, schemaSQL.String(), constraint)
	}
}

/*
TestMigrations_IndexExpressionsImmutable rejects index expressions Postgres
refuses with "functions in index expression must be marked IMMUTABLE".
*/
func TestMigrations_IndexExpressionsImmutable(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "..", "data", "migrations", "*.up.sql"))
	require.NoError(t, err)

	for _, file := range files {
		body, readErr := os.ReadFile(file)
		require.NoError(t, readErr)

		for _, line := range strings.Split(string(body), "\n") {
			if !strings.Contains(strings.ToUpper(line), "CREATE INDEX") {
				continue
			}
			lower := strings.ToLower(line)
			for _, stable := range []string{"to_char(", "now()", "current_date", "::text"} {
				assert.NotContains(t, lower, stable, "%s: %s", filepath.Base(file), line)
			}
		}
	}
}
