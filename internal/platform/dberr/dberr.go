// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sanctorale/sanctorale/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes the stores care about.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
)

// Constraint maps a database constraint name onto the request field it guards.
type Constraint struct {
	Name    string
	Field   string
	Message string
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Known constraints become field-level validation errors; anything else is a 500.
func Wrap(err error, resource string, constraints ...Constraint) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint violations the caller knows how to explain
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		for _, constraint := range constraints {
			if pgErr.ConstraintName == constraint.Name {
				return apperr.FieldInvalid(constraint.Field, constraint.Message)
			}
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a unique-constraint failure, optionally on a named constraint.
func IsUniqueViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != CodeUniqueViolation {
		return false
	}
	return constraintName == "" || pgErr.ConstraintName == constraintName
}
