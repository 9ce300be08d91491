// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sanctorale/sanctorale/internal/platform/constants"
	"github.com/sanctorale/sanctorale/internal/platform/sec"
)

var errKeysRequired = errors.New("both private and public key paths are required to mint tokens")

func tokenCommand(current *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Work with access tokens",
	}
	cmd.AddCommand(tokenMintCommand(current))
	return cmd
}

func tokenMintCommand(current *settings) *cobra.Command {
	var (
		userID      string
		username    string
		role        string
		permissions []string
		ttl         time.Duration
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a signed access token for a curator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if current.JWTPrivKeyPath == "" || current.JWTPubKeyPath == "" {
				return errKeysRequired
			}
			if !sec.UserRole(role).IsValid() {
				return fmt.Errorf("unknown role %q", role)
			}
			if ttl <= 0 {
				return fmt.Errorf("ttl must be positive, got %s", ttl)
			}
			if userID == "" {
				userID = uuid.NewString()
			}
			if username == "" {
				username = userID
			}

			service, err := sec.NewTokenService(current.JWTPrivKeyPath, current.JWTPubKeyPath, constants.AuthIssuer)
			if err != nil {
				return err
			}

			token, err := service.GenerateAccessToken(userID, username, role, permissions, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "subject id (random UUID when empty)")
	cmd.Flags().StringVar(&username, "name", "", "display name carried in the token")
	cmd.Flags().StringVar(&role, "role", string(sec.RoleEditor), "role: admin, editor or viewer")
	cmd.Flags().StringSliceVar(&permissions, "perm", nil, "direct permission such as \"delete saints\" (repeatable)")
	cmd.Flags().DurationVar(&ttl, "ttl", constants.DefaultTokenTTL, "token lifetime")

	return cmd
}
