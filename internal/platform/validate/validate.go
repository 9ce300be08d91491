// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Services and query-string normalizers use it before any data access, so
// business logic only operates on semantically valid data.
//
// Rules come in two flavours: chainable checks returning *Validator, and
// parsers (Int, Bool, Date) returning the converted value plus an ok flag so
// callers can build a normalized parameter object in the same pass.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sanctorale/sanctorale/internal/platform/apperr"
	"github.com/sanctorale/sanctorale/pkg/pagination"
)

// DateLayout is the only accepted calendar date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var (
	// slugRegex matches slug format: lowercase letters, digits, hyphens.
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.FieldInvalid("body", "Must be a valid JSON object")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Min fails if the value is below min.
func (v *Validator) Min(field string, value, min int) *Validator {
	if value < min {
		v.add(field, fmt.Sprintf("Must be at least %d", min))
	}
	return v
}

// Slug fails if the value is not a valid URL slug.
//
// # Format
//
// Slugs must consist only of lowercase letters, digits, and hyphens,
// with no leading or trailing hyphens.
func (v *Validator) Slug(field, value string) *Validator {
	if !slugRegex.MatchString(value) {
		v.add(field, "Must be a valid URL slug (lowercase letters, digits, hyphens only)")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("death_date", death.Before(birth), "Must be a date after or equal to birth_date")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Int parses value as a base-10 integer.
func (v *Validator) Int(field, value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		v.add(field, "Must be an integer")
		return 0, false
	}
	return parsed, true
}

// Bool parses value as a boolean. Accepted forms: true, false, 1, 0.
func (v *Validator) Bool(field, value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	v.add(field, "Must be true or false")
	return false, false
}

// Date parses value as a YYYY-MM-DD calendar date (UTC midnight).
func (v *Validator) Date(field, value string) (time.Time, bool) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		v.add(field, "Must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

// Page reads page and per_page from a query string.
//
// Absent values take the defaults; per_page must be within 1..[pagination.MaxPerPage]
// and page within 1..[pagination.MaxPage].
func (v *Validator) Page(values url.Values) pagination.Params {
	params := pagination.Default()

	if raw := values.Get(pagination.ParamPerPage); raw != "" {
		if perPage, ok := v.Int(pagination.ParamPerPage, raw); ok {
			v.Range(pagination.ParamPerPage, perPage, 1, pagination.MaxPerPage)
			params.PerPage = perPage
		}
	}

	if raw := values.Get(pagination.ParamPage); raw != "" {
		if page, ok := v.Int(pagination.ParamPage, raw); ok {
			v.Range(pagination.ParamPage, page, 1, pagination.MaxPage)
			params.Page = page
		}
	}

	return params
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(apperr.MessageValidation, v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// HasFieldError reports whether the given field already failed a rule.
func (v *Validator) HasFieldError(field string) bool {
	for _, e := range v.errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
