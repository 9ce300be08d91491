// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanctorale/sanctorale/internal/platform/apperr"
)

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()

	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an application error, got %v", err)
	return appErr.FieldMap()
}

func TestParseListParams_Defaults(t *testing.T) {
	params, err := ParseListParams(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, DefaultSort, params.Filter.Sort)
	assert.Nil(t, params.Filter.Category)
	assert.Equal(t, 1, params.Page.Page)
	assert.Equal(t, 15, params.Page.PerPage)
}

func TestParseListParams_CollectsEveryError(t *testing.T) {
	_, err := ParseListParams(url.Values{
		"category":       {"hermit"},
		"feast_type":     {"vigil"},
		"is_patron":      {"maybe"},
		"sort_by":        {"height"},
		"sort_direction": {"sideways"},
		"per_page":       {"101"},
	})

	fields := fieldErrors(t, err)
	assert.Equal(t, []string{"The selected category is invalid."}, fields[FieldCategory])
	assert.Equal(t, []string{"The selected feast_type is invalid."}, fields[FieldFeastType])
	assert.Contains(t, fields, FieldIsPatron)
	assert.Contains(t, fields, FieldSortBy)
	assert.Contains(t, fields, FieldSortDirection)
	assert.Contains(t, fields, "per_page")
}

func TestParseListParams_PageBounded(t *testing.T) {
	_, err := ParseListParams(url.Values{"page": {"700000000000000001"}})
	assert.Contains(t, fieldErrors(t, err), "page")

	params, err := ParseListParams(url.Values{"page": {"2147483647"}, "per_page": {"100"}})
	require.NoError(t, err)
	assert.Positive(t, params.Page.Offset())
}

func TestParseListParams_SortAndFilters(t *testing.T) {
	params, err := ParseListParams(url.Values{
		"search":         {"  francis "},
		"category":       {"founder"},
		"is_active":      {"false"},
		"sort_by":        {"popularity_score"},
		"sort_direction": {"DESC"},
	})
	require.NoError(t, err)

	assert.Equal(t, "francis", params.Filter.Search)
	require.NotNil(t, params.Filter.Category)
	assert.Equal(t, CategoryFounder, *params.Filter.Category)
	require.NotNil(t, params.Filter.IsActive)
	assert.False(t, *params.Filter.IsActive)
	assert.Equal(t, Sort{Field: SortPopularityScore, Direction: Desc}, params.Filter.Sort)
}

func TestParseCategoryParams_Required(t *testing.T) {
	_, err := ParseCategoryParams(url.Values{})
	assert.Contains(t, fieldErrors(t, err), FieldCategory)

	params, err := ParseCategoryParams(url.Values{"category": {"martyr"}})
	require.NoError(t, err)
	assert.Equal(t, CategoryMartyr, *params.Filter.Category)
}

func TestParseSearchParams_AppliedEcho(t *testing.T) {
	params, err := ParseSearchParams(url.Values{"q": {"clare"}, "min_popularity": {"4"}})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		FieldQuery:         "clare",
		FieldCategory:      nil,
		FieldIsPatron:      nil,
		FieldMinPopularity: 4,
	}, params.Applied)
	assert.Equal(t, Sort{Field: SortPopularityScore, Direction: Desc}, params.Filter.Sort)

	_, err = ParseSearchParams(url.Values{"min_popularity": {"-1"}})
	assert.Contains(t, fieldErrors(t, err), FieldMinPopularity)
}

func TestParseDateParam(t *testing.T) {
	_, err := ParseDateParam(url.Values{})
	assert.Contains(t, fieldErrors(t, err), FieldDate)

	_, err = ParseDateParam(url.Values{"date": {"2024-13-01"}})
	assert.Contains(t, fieldErrors(t, err), FieldDate)

	date, err := ParseDateParam(url.Values{"date": {"2024-10-04"}})
	require.NoError(t, err)
	assert.Equal(t, time.October, date.Month())
	assert.Equal(t, 4, date.Day())
}

func TestMemoryStatsCache_Expires(t *testing.T) {
	now := time.Date(2024, time.December, 20, 9, 0, 0, 0, time.UTC)
	cache := NewMemoryStatsCache(func() time.Time { return now })
	ctx := context.Background()

	_, hit, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, []byte(`{"a":1}`), time.Minute))
	payload, hit, _ := cache.Get(ctx)
	assert.True(t, hit)
	assert.Equal(t, `{"a":1}`, string(payload))

	now = now.Add(time.Minute)
	_, hit, _ = cache.Get(ctx)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, []byte(`{}`), time.Minute))
	require.NoError(t, cache.Invalidate(ctx))
	_, hit, _ = cache.Get(ctx)
	assert.False(t, hit)
}
