// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command sanctoralectl is the operator tool for the Sanctorale API.
//
// It applies or rolls back schema migrations and mints signed access tokens
// for curators. Settings are read from the same environment variables as the
// server; flags override them.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/sanctorale/sanctorale/internal/platform/constants"
)

const programName = "sanctoralectl"

// settings is the subset of server configuration the operator tool needs.
type settings struct {
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationPath  string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH"`
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`
}

var globalFlags = struct {
	debug bool
}{}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if globalFlags.debug {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", programName))
}

func rootCommand() *cobra.Command {
	current := &settings{}

	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Operator tool for the Sanctorale API",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.Parse(current); err != nil {
				return fmt.Errorf("config: failed to parse environment variables: %w", err)
			}
			return applyFlagOverrides(cmd, current)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL URL (env DATABASE_URL)")
	rootCmd.PersistentFlags().String("migrations", "", "migrations directory (env MIGRATION_PATH)")
	rootCmd.PersistentFlags().String("private-key", "", "RSA private key PEM (env JWT_PRIVATE_KEY_PATH)")
	rootCmd.PersistentFlags().String("public-key", "", "RSA public key PEM (env JWT_PUBLIC_KEY_PATH)")

	rootCmd.AddCommand(
		migrateCommand(current),
		tokenCommand(current),
	)

	return rootCmd
}

// applyFlagOverrides copies explicitly set persistent flags over env values.
func applyFlagOverrides(cmd *cobra.Command, current *settings) error {
	overrides := map[string]*string{
		"database-url": &current.DatabaseURL,
		"migrations":   &current.MigrationPath,
		"private-key":  &current.JWTPrivKeyPath,
		"public-key":   &current.JWTPubKeyPath,
	}

	for name, target := range overrides {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		value, err := cmd.Flags().GetString(name)
		if err != nil {
			return err
		}
		*target = value
	}
	return nil
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		newLogger().Error("command_failed", slog.Any("error", err))
		os.Exit(1)
	}
}
