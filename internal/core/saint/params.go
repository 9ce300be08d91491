// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sanctorale/sanctorale/internal/platform/validate"
	"github.com/sanctorale/sanctorale/pkg/pagination"
)

// # Normalized Parameters

// ListParams is a validated list or search request.
type ListParams struct {
	Filter Filter
	Page   pagination.Params
}

// SearchParams is a validated search request plus the echo of its filters.
type SearchParams struct {
	ListParams

	// Applied always carries q, category, is_patron and min_popularity; absent ones are nil.
	Applied map[string]any
}

// selectedInvalid renders the enum rejection message for field.
func selectedInvalid(field string) string {
	return fmt.Sprintf("The selected %s is invalid.", field)
}

// # Query Parsers

/*
ParseListParams normalizes the query string of GET /saints.

Parameters:
  - values: url.Values (search, category, feast_type, is_patron, is_active,
    sort_by, sort_direction, page, per_page)

Returns:
  - ListParams: Filter and page window
  - error: apperr validation error listing every malformed parameter
*/
func ParseListParams(values url.Values) (ListParams, error) {
	validator := &validate.Validator{}
	filter := Filter{
		Search: strings.TrimSpace(values.Get(FieldSearch)),
		Sort:   DefaultSort,
	}

	filter.Category = parseCategory(validator, values.Get(FieldCategory))
	filter.FeastType = parseFeastType(validator, values.Get(FieldFeastType))
	filter.IsPatron = parseBool(validator, FieldIsPatron, values.Get(FieldIsPatron))
	filter.IsActive = parseBool(validator, FieldIsActive, values.Get(FieldIsActive))

	if raw := values.Get(FieldSortBy); raw != "" {
		field := SortField(raw)
		validator.Custom(FieldSortBy, !isSortField(field), selectedInvalid(FieldSortBy))
		filter.Sort.Field = field
	}
	if raw := values.Get(FieldSortDirection); raw != "" {
		direction := Direction(strings.ToLower(raw))
		validator.Custom(FieldSortDirection, direction != Asc && direction != Desc, selectedInvalid(FieldSortDirection))
		filter.Sort.Direction = direction
	}

	page := validator.Page(values)

	if err := validator.Err(); err != nil {
		return ListParams{}, err
	}
	return ListParams{Filter: filter, Page: page}, nil
}

/*
ParseCategoryParams normalizes GET /saints/by-category.

The category parameter is mandatory and must belong to the enumeration.
*/
func ParseCategoryParams(values url.Values) (ListParams, error) {
	validator := &validate.Validator{}

	raw := values.Get(FieldCategory)
	validator.Required(FieldCategory, raw)
	category := parseCategory(validator, raw)

	page := validator.Page(values)

	if err := validator.Err(); err != nil {
		return ListParams{}, err
	}
	return ListParams{
		Filter: Filter{Category: category, Sort: DefaultSort},
		Page:   page,
	}, nil
}

/*
ParseSearchParams normalizes GET /saints/search.

An empty q matches every row; results are ranked by popularity.

Returns:
  - SearchParams: Filter, page window and the filters_applied echo
  - error: apperr validation error
*/
func ParseSearchParams(values url.Values) (SearchParams, error) {
	validator := &validate.Validator{}
	term := strings.TrimSpace(values.Get(FieldQuery))

	filter := Filter{
		Search: term,
		Sort:   Sort{Field: SortPopularityScore, Direction: Desc},
	}
	filter.Category = parseCategory(validator, values.Get(FieldCategory))
	filter.IsPatron = parseBool(validator, FieldIsPatron, values.Get(FieldIsPatron))

	if raw := values.Get(FieldMinPopularity); raw != "" {
		if threshold, ok := validator.Int(FieldMinPopularity, raw); ok {
			validator.Min(FieldMinPopularity, threshold, 0)
			filter.MinPopularity = &threshold
		}
	}

	page := validator.Page(values)

	if err := validator.Err(); err != nil {
		return SearchParams{}, err
	}

	applied := map[string]any{
		FieldQuery:         nil,
		FieldCategory:      nil,
		FieldIsPatron:      nil,
		FieldMinPopularity: nil,
	}
	if term != "" {
		applied[FieldQuery] = term
	}
	if filter.Category != nil {
		applied[FieldCategory] = *filter.Category
	}
	if filter.IsPatron != nil {
		applied[FieldIsPatron] = *filter.IsPatron
	}
	if filter.MinPopularity != nil {
		applied[FieldMinPopularity] = *filter.MinPopularity
	}

	return SearchParams{
		ListParams: ListParams{Filter: filter, Page: page},
		Applied:    applied,
	}, nil
}

// ParseDateParam reads the mandatory YYYY-MM-DD date of GET /saints/by-date.
func ParseDateParam(values url.Values) (time.Time, error) {
	validator := &validate.Validator{}

	raw := values.Get(FieldDate)
	validator.Required(FieldDate, raw)

	var date time.Time
	if !validator.HasFieldError(FieldDate) {
		date, _ = validator.Date(FieldDate, raw)
	}

	if err := validator.Err(); err != nil {
		return time.Time{}, err
	}
	return date, nil
}

// # Helpers

func parseCategory(validator *validate.Validator, raw string) *Category {
	if raw == "" {
		return nil
	}
	category := Category(raw)
	if !category.IsValid() {
		validator.Custom(FieldCategory, true, selectedInvalid(FieldCategory))
		return nil
	}
	return &category
}

func parseFeastType(validator *validate.Validator, raw string) *FeastType {
	if raw == "" {
		return nil
	}
	feastType := FeastType(raw)
	if !feastType.IsValid() {
		validator.Custom(FieldFeastType, true, selectedInvalid(FieldFeastType))
		return nil
	}
	return &feastType
}

func parseBool(validator *validate.Validator, field, raw string) *bool {
	if raw == "" {
		return nil
	}
	value, ok := validator.Bool(field, raw)
	if !ok {
		return nil
	}
	return &value
}

func isSortField(field SortField) bool {
	for _, known := range SortFields() {
		if field == known {
			return true
		}
	}
	return false
}
