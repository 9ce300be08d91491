// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware provides the HTTP middleware chain for the Sanctorale API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthN/AuthZ, Rate Limiting, Metrics and CORS.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/sanctorale/sanctorale/internal/platform/apperr"
	"github.com/sanctorale/sanctorale/internal/platform/authz"
	"github.com/sanctorale/sanctorale/internal/platform/ctxutil"
	"github.com/sanctorale/sanctorale/internal/platform/respond"
	"github.com/sanctorale/sanctorale/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the [sec.TokenService]
// implementation, allowing us to easily inject fakes during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// PermissionChecker is the capability check consulted by [RequirePermission].
type PermissionChecker interface {
	HasPermission(principal *sec.AuthClaims, action authz.Action, resource string) bool
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
//
// A malformed or unverifiable credential does not end the request: it
// proceeds as anonymous with the refusal recorded, so public reads still
// succeed and [RequireAuth] / [RequirePermission] answer 401 with the reason.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(writer, refuse(request, MessageInvalidAuthFormat, nil))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				next.ServeHTTP(writer, refuse(request, MessageInvalidToken, err))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithPrincipal(request.Context(), claims)))
		})
	}
}

// Messages for refused bearer credentials.
const (
	MessageInvalidAuthFormat = "Invalid authorization format"
	MessageInvalidToken      = "Invalid or expired token"
)

// refuse marks request as carrying a rejected credential.
func refuse(request *http.Request, reason string, cause error) *http.Request {
	ctx := request.Context()
	attrs := []any{slog.String("reason", reason)}
	if cause != nil {
		attrs = append(attrs, slog.Any("error", cause))
	}
	ctxutil.Logger(ctx).DebugContext(ctx, "credential_refused", attrs...)
	return request.WithContext(ctxutil.WithCredentialError(ctx, reason))
}

// unauthenticated answers 401, preferring the recorded credential refusal.
func unauthenticated(writer http.ResponseWriter, request *http.Request) {
	message := apperr.MessageUnauthenticated
	if reason, refused := ctxutil.CredentialError(request.Context()); refused {
		message = reason
	}
	respond.Error(writer, request, apperr.Unauthorized(message))
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.Principal(request.Context()) == nil {
			unauthenticated(writer, request)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequirePermission blocks requests whose principal may not perform action on resource.
//
// # Flow
//  1. No principal in context → 401 Unauthorized.
//  2. Principal lacks the permission → 403 Forbidden.
//
// The gate runs before the handler, so a caller without permission gets 403
// even when the target row does not exist.
func RequirePermission(checker PermissionChecker, action authz.Action, resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.Principal(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				unauthenticated(writer, request)
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !checker.HasPermission(claims, action, resource) {
				respond.Error(writer, request, apperr.Forbidden(apperr.MessageForbidden))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
