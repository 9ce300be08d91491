// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanctorale/sanctorale/internal/platform/migration"
)

var errDatabaseURLRequired = errors.New("database url is required (set DATABASE_URL or --database-url)")

func migrateCommand(current *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if parent := cmd.Root(); parent.PersistentPreRunE != nil {
				if err := parent.PersistentPreRunE(cmd, args); err != nil {
					return err
				}
			}
			if current.DatabaseURL == "" {
				return errDatabaseURLRequired
			}
			return nil
		},
	}

	cmd.AddCommand(
		migrateUpCommand(current),
		migrateDownCommand(current),
		migrateStatusCommand(current),
	)
	return cmd
}

func migrateUpCommand(current *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migration.RunUp(current.DatabaseURL, current.MigrationPath, newLogger())
		},
	}
}

func migrateDownCommand(current *settings) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migration.RunDown(current.DatabaseURL, current.MigrationPath, steps, newLogger())
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}

func migrateStatusCommand(current *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := migration.CurrentStatus(current.DatabaseURL, current.MigrationPath, newLogger())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case status.Empty:
				fmt.Fprintln(out, "no migrations applied")
			case status.Dirty:
				fmt.Fprintf(out, "version %d (dirty)\n", status.Version)
			default:
				fmt.Fprintf(out, "version %d\n", status.Version)
			}
			return nil
		},
	}
}
