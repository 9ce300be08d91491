// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanctorale/sanctorale/internal/platform/apperr"
	"github.com/sanctorale/sanctorale/internal/platform/validate"
	"github.com/sanctorale/sanctorale/pkg/pagination"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Saint Stephen", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, apperr.MessageValidation, ae.Message)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Slug checks the slug format rule.
*/
func TestValidator_Slug(t *testing.T) {
	tests := []struct {
		slug    string
		isValid bool
	}{
		{"san-esteban", true},
		{"francis-of-assisi-2", true},
		{"San-Esteban", false},
		{"-leading", false},
		{"double--hyphen", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			v := &validate.Validator{}
			v.Slug("slug", tt.slug)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf rejects values outside the enumeration.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("sort_direction", "asc", "asc", "desc")
	assert.False(t, v.HasErrors())

	v.OneOf("sort_direction", "sideways", "asc", "desc")
	assert.True(t, v.HasFieldError("sort_direction"))
	assert.False(t, v.HasFieldError("sort_by"))
}

/*
TestValidator_Parsers covers Int, Bool and Date conversion.
*/
func TestValidator_Parsers(t *testing.T) {
	v := &validate.Validator{}

	n, ok := v.Int("per_page", "25")
	assert.True(t, ok)
	assert.Equal(t, 25, n)

	_, ok = v.Int("per_page", "many")
	assert.False(t, ok)

	for _, raw := range []string{"true", "1", "TRUE"} {
		b, ok := v.Bool("is_patron", raw)
		assert.True(t, ok)
		assert.True(t, b)
	}
	b, ok := v.Bool("is_patron", "0")
	assert.True(t, ok)
	assert.False(t, b)
	_, ok = v.Bool("is_patron", "yes")
	assert.False(t, ok)

	d, ok := v.Date("date", "2024-12-26")
	assert.True(t, ok)
	assert.Equal(t, time.December, d.Month())
	assert.Equal(t, 26, d.Day())

	for _, raw := range []string{"26-12-2024", "2024-13-01", "2024-02-30", "invalid-date"} {
		_, ok := v.Date("date", raw)
		assert.False(t, ok, raw)
	}

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	// one Int failure, one Bool failure, four Date failures
	assert.Len(t, ae.Details, 6)
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").                              // Fails
		MaxLen("name", "a very long name", 5).             // Fails
		Range("per_page", 150, 1, 100).                    // Fails
		Min("popularity_score", -1, 0).                    // Fails
		Custom("death_date", true, "Must follow birth").   // Fails
		Custom("birth_date", false, "never reported").     // Passes
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 5)
}

/*
TestValidator_Page covers defaults, bounds and malformed page parameters.
*/
func TestValidator_Page(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		want     pagination.Params
		hasError bool
	}{
		{"defaults", "", pagination.Params{Page: 1, PerPage: 15}, false},
		{"explicit", "page=3&per_page=100", pagination.Params{Page: 3, PerPage: 100}, false},
		{"per_page_over_max", "per_page=101", pagination.Params{Page: 1, PerPage: 101}, true},
		{"per_page_zero", "per_page=0", pagination.Params{Page: 1, PerPage: 0}, true},
		{"page_zero", "page=0", pagination.Params{Page: 0, PerPage: 15}, true},
		{"page_at_max", "page=2147483647", pagination.Params{Page: pagination.MaxPage, PerPage: 15}, false},
		{"page_offset_overflow", "page=700000000000000001", pagination.Params{Page: 700000000000000001, PerPage: 15}, true},
		{"page_beyond_int64", "page=99999999999999999999", pagination.Params{Page: 1, PerPage: 15}, true},
		{"not_a_number", "per_page=ten", pagination.Params{Page: 1, PerPage: 15}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			v := &validate.Validator{}
			got := v.Page(values)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}
