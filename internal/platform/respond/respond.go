// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response (Success or Error) follows the same JSON envelope:
//
//	{"success": true,  "message": "...", "data": ..., "links": ..., "meta": ...}
//	{"success": false, "message": "...", "code": "...", "errors": {"field": ["..."]}}
package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/sanctorale/sanctorale/internal/platform/apperr"
	"github.com/sanctorale/sanctorale/internal/platform/ctxutil"
	"github.com/sanctorale/sanctorale/pkg/pagination"
)

// SuccessEnvelope is the JSON envelope for every successful response.
type SuccessEnvelope struct {
	Success        bool              `json:"success"`
	Message        string            `json:"message"`
	Data           any               `json:"data"`
	Count          *int              `json:"count,omitempty"`
	FiltersApplied map[string]any    `json:"filters_applied,omitempty"`
	Links          *pagination.Links `json:"links,omitempty"`
	Meta           *pagination.Meta  `json:"meta,omitempty"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Option decorates a [SuccessEnvelope] before it is written.
type Option func(*SuccessEnvelope)

// WithCount attaches the number of returned items.
func WithCount(count int) Option {
	return func(envelope *SuccessEnvelope) {
		envelope.Count = &count
	}
}

// WithFilters echoes the filters that produced the result.
func WithFilters(filters map[string]any) Option {
	return func(envelope *SuccessEnvelope) {
		envelope.FiltersApplied = filters
	}
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, message string, data any, options ...Option) {
	JSON(writer, http.StatusOK, envelope(message, data, options))
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusCreated, envelope(message, data, nil))
}

// Paginated writes a 200 OK response with paginated data plus links and meta blocks.
func Paginated(writer http.ResponseWriter, message string, data any, page pagination.Page, options ...Option) {
	body := envelope(message, data, options)
	body.Links = &page.Links
	body.Meta = &page.Meta
	JSON(writer, http.StatusOK, body)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.Logger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.RequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Success: false,
		Message: appError.Message,
		Code:    appError.Code,
		Errors:  appError.FieldMap(),
	})
}

func envelope(message string, data any, options []Option) SuccessEnvelope {
	body := SuccessEnvelope{Success: true, Message: message, Data: data}
	for _, option := range options {
		option(&body)
	}
	return body
}
