// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey enumerates the request-scoped values the API keeps in a
// [context.Context]. Only ctxutil reads or writes them.
package ctxkey

// Key identifies one request-scoped value. Its unexported underlying type
// keeps it distinct from keys declared in any other package.
type Key uint8

const (
	// RequestID holds the X-Request-ID correlation value.
	RequestID Key = iota + 1

	// Logger holds the per-request [*log/slog.Logger], already tagged with
	// request_id and, once authenticated, user_id.
	Logger

	// Principal holds the verified curator claims ([sec.AuthClaims]).
	Principal

	// CredentialError holds why a presented bearer credential was refused.
	// Public reads ignore it; gated routes answer 401 with it.
	CredentialError
)

// String names the key in debug output.
func (k Key) String() string {
	switch k {
	case RequestID:
		return "request_id"
	case Logger:
		return "logger"
	case Principal:
		return "principal"
	case CredentialError:
		return "credential_error"
	default:
		return "unknown"
	}
}
