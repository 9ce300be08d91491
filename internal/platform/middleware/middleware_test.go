// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sanctorale/sanctorale/internal/platform/authz"
	"github.com/sanctorale/sanctorale/internal/platform/constants"
	"github.com/sanctorale/sanctorale/internal/platform/ctxutil"
	"github.com/sanctorale/sanctorale/internal/platform/middleware"
	"github.com/sanctorale/sanctorale/internal/platform/sec"
)

// # Fakes

type fakeVerifier struct {
	claims *sec.AuthClaims
}

func (f fakeVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "valid" {
		return nil, errors.New("bad token")
	}
	return f.claims, nil
}

type fakeChecker struct {
	allowed bool
	calls   int
}

func (f *fakeChecker) HasPermission(_ *sec.AuthClaims, _ authz.Action, _ string) bool {
	f.calls++
	return f.allowed
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate_Flow covers anonymous, malformed, invalid and valid headers.
Refused credentials fall through as anonymous with the reason recorded.
*/
func TestAuthenticate_Flow(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "9", Role: "editor"}

	var (
		seen    *sec.AuthClaims
		refusal string
	)
	handler := middleware.Authenticate(fakeVerifier{claims: claims})(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.Principal(request.Context())
		refusal, _ = ctxutil.CredentialError(request.Context())
		writer.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name    string
		header  string
		claims  *sec.AuthClaims
		refusal string
	}{
		{"anonymous", "", nil, ""},
		{"malformed", "Token abc", nil, middleware.MessageInvalidAuthFormat},
		{"invalid", "Bearer nope", nil, middleware.MessageInvalidToken},
		{"valid", "Bearer valid", claims, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen, refusal = nil, ""
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.claims, seen)
			assert.Equal(t, tt.refusal, refusal)
		})
	}
}

/*
TestAuthenticate_RefusedCredentialOnGatedRoute answers 401 with the refusal reason.
*/
func TestAuthenticate_RefusedCredentialOnGatedRoute(t *testing.T) {
	checker := &fakeChecker{allowed: true}
	gated := middleware.Authenticate(fakeVerifier{})(
		middleware.RequirePermission(checker, authz.ActionDelete, "saints")(okHandler()),
	)

	request := httptest.NewRequest(http.MethodDelete, "/", nil)
	request.Header.Set("Authorization", "Bearer expired")
	recorder := httptest.NewRecorder()

	gated.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), middleware.MessageInvalidToken)
	assert.Zero(t, checker.calls)
}

/*
TestRequirePermission_Gate returns 401 before 403 and only calls through when allowed.
*/
func TestRequirePermission_Gate(t *testing.T) {
	t.Run("anonymous_is_401", func(t *testing.T) {
		checker := &fakeChecker{allowed: true}
		recorder := httptest.NewRecorder()

		middleware.RequirePermission(checker, authz.ActionCreate, "saints")(okHandler()).
			ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Zero(t, checker.calls)
	})

	t.Run("unprivileged_is_403", func(t *testing.T) {
		checker := &fakeChecker{allowed: false}
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/", nil)
		request = request.WithContext(ctxutil.WithPrincipal(request.Context(), &sec.AuthClaims{UserID: "1"}))

		middleware.RequirePermission(checker, authz.ActionCreate, "saints")(okHandler()).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Equal(t, 1, checker.calls)
	})

	t.Run("privileged_passes", func(t *testing.T) {
		checker := &fakeChecker{allowed: true}
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/", nil)
		request = request.WithContext(ctxutil.WithPrincipal(request.Context(), &sec.AuthClaims{UserID: "1"}))

		middleware.RequirePermission(checker, authz.ActionCreate, "saints")(okHandler()).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

/*
TestRequireAuth rejects anonymous callers.
*/
func TestRequireAuth(t *testing.T) {
	recorder := httptest.NewRecorder()
	middleware.RequireAuth(okHandler()).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestRequestID_GeneratesAndPropagates keeps client IDs and generates missing ones.
*/
func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.RequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "client-id")
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "client-id", seen)
	assert.Equal(t, "client-id", recorder.Header().Get(constants.HeaderXRequestID))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "client-id", seen)
}

/*
TestRateLimiter_Burst rejects once the bucket is empty and stops its janitor on cancel.
*/
func TestRateLimiter_Burst(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	limiter := middleware.NewRateLimiter(ctx, 0.0001, 2)
	handler := limiter.Handler(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRealIP, "203.0.113.7")
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client has its own bucket.
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRealIP, "203.0.113.8")
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)

	cancel()
}

/*
TestPanicRecovery converts panics into a 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "kaboom")
}

/*
TestRealIP prefers proxy headers over the socket address.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "198.51.100.4, 10.0.0.1")
	assert.Equal(t, "198.51.100.4", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.9")
	assert.Equal(t, "198.51.100.9", middleware.RealIP(request))
}
