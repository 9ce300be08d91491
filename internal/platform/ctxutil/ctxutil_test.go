// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanctorale/sanctorale/internal/platform/ctxkey"
	"github.com/sanctorale/sanctorale/internal/platform/ctxutil"
	"github.com/sanctorale/sanctorale/internal/platform/sec"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.RequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-42")
	assert.Equal(t, "req-42", ctxutil.RequestID(ctx))
}

func TestLogger_FallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, slog.Default(), ctxutil.Logger(ctx))
	assert.Equal(t, slog.Default(), ctxutil.Logger(ctxutil.WithLogger(ctx, nil)))
}

/*
TestPrincipal_TagsLoggerAndActor attaches the curator and tags later log lines with its id.
*/
func TestPrincipal_TagsLoggerAndActor(t *testing.T) {
	var out bytes.Buffer
	ctx := ctxutil.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&out, nil)))

	assert.Nil(t, ctxutil.Principal(ctx))
	assert.Equal(t, ctxutil.Anonymous, ctxutil.Actor(ctx))

	claims := &sec.AuthClaims{UserID: "curator-7", Role: string(sec.RoleEditor), Permissions: []string{"create saints"}}
	ctx = ctxutil.WithPrincipal(ctx, claims)

	require.Same(t, claims, ctxutil.Principal(ctx))
	assert.Equal(t, "curator-7", ctxutil.Actor(ctx))

	ctxutil.Logger(ctx).Info("saint_created")
	assert.Contains(t, out.String(), "user_id=curator-7")
}

func TestCredentialError(t *testing.T) {
	ctx := context.Background()
	_, refused := ctxutil.CredentialError(ctx)
	assert.False(t, refused)

	ctx = ctxutil.WithCredentialError(ctx, "Invalid or expired token")
	reason, refused := ctxutil.CredentialError(ctx)
	assert.True(t, refused)
	assert.Equal(t, "Invalid or expired token", reason)
	assert.Nil(t, ctxutil.Principal(ctx))
}

func TestKeys_AreDistinct(t *testing.T) {
	seen := map[string]ctxkey.Key{}
	for _, key := range []ctxkey.Key{ctxkey.RequestID, ctxkey.Logger, ctxkey.Principal, ctxkey.CredentialError} {
		_, dup := seen[key.String()]
		assert.False(t, dup, key.String())
		seen[key.String()] = key
	}
	assert.Equal(t, "unknown", ctxkey.Key(0).String())
}
