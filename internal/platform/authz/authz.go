// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package authz answers one question: may this principal perform this action on
this resource?

Decisions combine two sources:

  - Direct permissions carried in the token ("create saints", "delete saints").
  - Role policy evaluated by a Casbin RBAC enforcer (admin, editor, viewer).

The policy ships embedded in the binary; an operator may point
AUTHZ_POLICY_PATH at a CSV file with the same format to override it.
*/
package authz

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"

	"github.com/sanctorale/sanctorale/internal/platform/sec"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Action is a mutation verb checked by the gate.
type Action string

const (
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Permission renders the direct-permission name for action on resource,
// e.g. "create saints".
func Permission(action Action, resource string) string {
	return string(action) + " " + resource
}

// Authorizer evaluates permissions for authenticated principals.
type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
	logger   *slog.Logger
}

// New builds an Authorizer from the embedded model and either the embedded
// policy or the CSV file at policyPath.
func New(policyPath string, logger *slog.Logger) (*Authorizer, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("authz: failed to load casbin model: %w", err)
	}

	var enforcer *casbin.SyncedEnforcer
	if policyPath != "" {
		if _, statErr := os.Stat(policyPath); statErr != nil {
			return nil, fmt.Errorf("authz: policy file: %w", statErr)
		}
		enforcer, err = casbin.NewSyncedEnforcer(m, fileadapter.NewAdapter(policyPath))
	} else {
		enforcer, err = casbin.NewSyncedEnforcer(m)
		if err == nil {
			err = loadPolicy(enforcer, embeddedPolicy)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("authz: failed to create enforcer: %w", err)
	}

	return &Authorizer{enforcer: enforcer, logger: logger}, nil
}

// HasPermission reports whether principal may perform action on resource.
//
// A nil principal never has permission. Enforcement errors deny.
func (a *Authorizer) HasPermission(principal *sec.AuthClaims, action Action, resource string) bool {
	if principal == nil {
		return false
	}

	wanted := Permission(action, resource)
	for _, granted := range principal.Permissions {
		if granted == wanted {
			return true
		}
	}

	role := sec.UserRole(principal.Role)
	if !role.IsValid() {
		return false
	}

	allowed, err := a.enforcer.Enforce(string(role), resource, string(action))
	if err != nil {
		a.logger.Error("authz_enforce_failed",
			slog.String("role", string(role)),
			slog.String("resource", resource),
			slog.String("action", string(action)),
			slog.Any("error", err),
		)
		return false
	}
	return allowed
}

// loadPolicy parses "p" and "g" lines of a Casbin CSV policy.
func loadPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		switch {
		case parts[0] == "p" && len(parts) == 4:
			if _, err := enforcer.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
				return fmt.Errorf("authz: add policy %v: %w", parts[1:], err)
			}
		case parts[0] == "g" && len(parts) == 3:
			if _, err := enforcer.AddGroupingPolicy(parts[1], parts[2]); err != nil {
				return fmt.Errorf("authz: add grouping policy %v: %w", parts[1:], err)
			}
		default:
			return fmt.Errorf("authz: malformed policy line %q", line)
		}
	}
	return nil
}
