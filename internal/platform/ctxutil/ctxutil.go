// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil reads and writes the request-scoped values declared in ctxkey:
// correlation id, request logger, curator principal and refused credentials.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/sanctorale/sanctorale/internal/platform/ctxkey"
	"github.com/sanctorale/sanctorale/internal/platform/sec"
)

// Anonymous is the actor recorded for requests without a principal.
const Anonymous = "anonymous"

// # Request Tracing

// WithRequestID attaches the correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.RequestID, id)
}

// RequestID returns the correlation id, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.RequestID).(string)
	return id
}

// # Structured Logging

// WithLogger attaches the request logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.Logger, logger)
}

// Logger returns the request logger, falling back to [slog.Default].
func Logger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.Logger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Curator Identity

// WithPrincipal attaches verified claims and tags the request logger with the curator id.
func WithPrincipal(ctx context.Context, claims *sec.AuthClaims) context.Context {
	ctx = context.WithValue(ctx, ctxkey.Principal, claims)
	if claims == nil {
		return ctx
	}
	return WithLogger(ctx, Logger(ctx).With(slog.String("user_id", claims.UserID)))
}

// Principal returns the verified claims, or nil for anonymous requests.
func Principal(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(ctxkey.Principal).(*sec.AuthClaims)
	return claims
}

// Actor names who performs a mutation in audit logs.
func Actor(ctx context.Context) string {
	if claims := Principal(ctx); claims != nil {
		return claims.UserID
	}
	return Anonymous
}

// WithCredentialError records that the request carried a bearer credential
// that was refused for reason.
func WithCredentialError(ctx context.Context, reason string) context.Context {
	return context.WithValue(ctx, ctxkey.CredentialError, reason)
}

// CredentialError returns the refusal reason recorded by [WithCredentialError].
func CredentialError(ctx context.Context) (string, bool) {
	reason, ok := ctx.Value(ctxkey.CredentialError).(string)
	return reason, ok
}
