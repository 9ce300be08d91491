// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authz_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanctorale/sanctorale/internal/platform/authz"
	"github.com/sanctorale/sanctorale/internal/platform/sec"
)

func newAuthorizer(t *testing.T, policyPath string) *authz.Authorizer {
	t.Helper()
	authorizer, err := authz.New(policyPath, slog.Default())
	require.NoError(t, err)
	return authorizer
}

/*
TestHasPermission_EmbeddedPolicy walks the role matrix for the saints resource.
*/
func TestHasPermission_EmbeddedPolicy(t *testing.T) {
	authorizer := newAuthorizer(t, "")

	tests := []struct {
		role    sec.UserRole
		action  authz.Action
		allowed bool
	}{
		{sec.RoleAdmin, authz.ActionCreate, true},
		{sec.RoleAdmin, authz.ActionEdit, true},
		{sec.RoleAdmin, authz.ActionDelete, true},
		{sec.RoleEditor, authz.ActionCreate, true},
		{sec.RoleEditor, authz.ActionEdit, true},
		{sec.RoleEditor, authz.ActionDelete, false},
		{sec.RoleViewer, authz.ActionCreate, false},
		{sec.RoleViewer, authz.ActionEdit, false},
		{sec.RoleViewer, authz.ActionDelete, false},
		{sec.UserRole("ghost"), authz.ActionCreate, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"_"+string(tt.action), func(t *testing.T) {
			principal := &sec.AuthClaims{UserID: "1", Role: string(tt.role)}
			assert.Equal(t, tt.allowed, authorizer.HasPermission(principal, tt.action, "saints"))
		})
	}
}

/*
TestHasPermission_DirectPermission lets a token grant a single action.
*/
func TestHasPermission_DirectPermission(t *testing.T) {
	authorizer := newAuthorizer(t, "")

	principal := &sec.AuthClaims{
		UserID:      "7",
		Role:        string(sec.RoleViewer),
		Permissions: []string{authz.Permission(authz.ActionDelete, "saints")},
	}

	assert.True(t, authorizer.HasPermission(principal, authz.ActionDelete, "saints"))
	assert.False(t, authorizer.HasPermission(principal, authz.ActionCreate, "saints"))
	assert.False(t, authorizer.HasPermission(principal, authz.ActionDelete, "places"))
}

/*
TestHasPermission_NilPrincipal always denies.
*/
func TestHasPermission_NilPrincipal(t *testing.T) {
	authorizer := newAuthorizer(t, "")
	assert.False(t, authorizer.HasPermission(nil, authz.ActionCreate, "saints"))
}

/*
TestNew_PolicyFile loads an operator-supplied policy instead of the embedded one.
*/
func TestNew_PolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.csv")
	require.NoError(t, os.WriteFile(path, []byte("p, viewer, saints, create\n"), 0o600))

	authorizer := newAuthorizer(t, path)

	viewer := &sec.AuthClaims{UserID: "1", Role: string(sec.RoleViewer)}
	assert.True(t, authorizer.HasPermission(viewer, authz.ActionCreate, "saints"))

	admin := &sec.AuthClaims{UserID: "2", Role: string(sec.RoleAdmin)}
	assert.False(t, authorizer.HasPermission(admin, authz.ActionDelete, "saints"))
}

/*
TestNew_MissingPolicyFile fails fast at startup.
*/
func TestNew_MissingPolicyFile(t *testing.T) {
	_, err := authz.New(filepath.Join(t.TempDir(), "absent.csv"), slog.Default())
	assert.Error(t, err)
}
