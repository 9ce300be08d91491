// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanctorale/sanctorale/internal/platform/apperr"
	"github.com/sanctorale/sanctorale/internal/platform/ctxutil"
	requestutil "github.com/sanctorale/sanctorale/internal/platform/request"
	"github.com/sanctorale/sanctorale/internal/platform/sec"
	"github.com/sanctorale/sanctorale/internal/platform/validate"
)

func withURLParam(request *http.Request, key, value string) *http.Request {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add(key, value)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Lucy"}`))
	require.NoError(t, requestutil.DecodeJSON(request, &target))
	assert.Equal(t, "Lucy", target.Name)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.Equal(t, validate.ErrInvalidJSON, requestutil.DecodeJSON(request, &target))

	oversized := `{"name":"` + strings.Repeat("a", requestutil.MaxBodyBytes) + `"}`
	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(oversized))
	assert.Equal(t, validate.ErrInvalidJSON, requestutil.DecodeJSON(request, &target))
}

func TestID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		missing bool
	}{
		{"42", 42, false},
		{"abc", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			request := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tt.raw)
			id, err := requestutil.ID(request, "id", "Saint")

			if tt.missing {
				appErr := apperr.As(err)
				require.NotNil(t, appErr)
				assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestActorID(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "anonymous", requestutil.ActorID(request))

	request = request.WithContext(ctxutil.WithPrincipal(request.Context(), &sec.AuthClaims{UserID: "u-1"}))
	assert.Equal(t, "u-1", requestutil.ActorID(request))
	assert.Equal(t, "u-1", requestutil.Claims(request).UserID)
}
