// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanctorale/sanctorale/pkg/calendar"
	"github.com/sanctorale/sanctorale/pkg/query"
)

/*
TestScopes_ComposeWithAnd numbers placeholders across scopes in order.
*/
func TestScopes_ComposeWithAnd(t *testing.T) {
	builder := Apply(query.New(),
		Search("50%_off"),
		ByCategory(CategoryMartyr),
		Patron(true),
		MinPopularity(5),
	)

	assert.Equal(t,
		" WHERE (s.name ILIKE $1 OR s.canonical_name ILIKE $2 OR s.description ILIKE $3)"+
			" AND (s.category = $4) AND (s.is_patron = $5) AND (s.popularity_score >= $6)",
		builder.WhereSQL(),
	)

	args := builder.Args()
	require.Len(t, args, 6)
	assert.Equal(t, `%50\%\_off%`, args[0])
	assert.Equal(t, args[0], args[2])
	assert.Equal(t, "martyr", args[3])
	assert.Equal(t, true, args[4])
	assert.Equal(t, 5, args[5])
}

/*
TestScopes_Empty renders no WHERE clause.
*/
func TestScopes_Empty(t *testing.T) {
	builder := Apply(query.New(), Filter{}.Scopes()...)
	assert.Empty(t, builder.WhereSQL())
	assert.Empty(t, builder.Args())
}

/*
TestFilter_Scopes maps each populated field to one condition.
*/
func TestFilter_Scopes(t *testing.T) {
	category := CategoryFounder
	feastType := FeastMemorial
	active := false
	threshold := 3

	filter := Filter{
		Search:        "francis",
		Category:      &category,
		FeastType:     &feastType,
		IsActive:      &active,
		MinPopularity: &threshold,
		MonthDays:     []calendar.MonthDay{{Month: time.December, Day: 26}},
		Window:        &FeastWindow{From: calendar.Date(2025, time.February, 27), Days: 2},
	}

	builder := Apply(query.New(), filter.Scopes()...)
	assert.Equal(t, 7, builder.Len())

	args := builder.Args()
	assert.Equal(t, []int{1226}, args[len(args)-2])
	// Feb 27 through Mar 1 of a common year, with Feb 29 observed on Feb 28.
	assert.Equal(t, []int{227, 228, 229, 301}, args[len(args)-1])
}

/*
TestOrderBy_TieBreak appends id ascending to every non-id sort.
*/
func TestOrderBy_TieBreak(t *testing.T) {
	tests := []struct {
		name string
		sort Sort
		want string
	}{
		{"default_calendar_order", DefaultSort, " ORDER BY (EXTRACT(MONTH FROM s.feast_date)::int * 100 + EXTRACT(DAY FROM s.feast_date)::int) ASC, s.id ASC"},
		{"popularity_desc", Sort{Field: SortPopularityScore, Direction: Desc}, " ORDER BY s.popularity_score DESC, s.id ASC"},
		{"name_asc", Sort{Field: SortName, Direction: Asc}, " ORDER BY s.name ASC, s.id ASC"},
		{"id_desc", Sort{Field: SortID, Direction: Desc}, " ORDER BY s.id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderBy(tt.sort))
		})
	}
}

func TestMonthDayExpr_MatchesIndex(t *testing.T) {
	migration, err := os.ReadFile(filepath.Join("..", "..", "..", "data", "migrations", "000002_saint.up.sql"))
	require.NoError(t, err)

	indexExpr := strings.ReplaceAll(monthDayExpr(), saintAlias+".", "")
	assert.Contains(t, string(migration), "saint_feast_month_day_idx ON core.saint ("+indexExpr+")")
}
