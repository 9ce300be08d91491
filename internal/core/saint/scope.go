// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint

import (
	"fmt"
	"time"

	"github.com/sanctorale/sanctorale/internal/platform/database/schema"
	"github.com/sanctorale/sanctorale/pkg/calendar"
	"github.com/sanctorale/sanctorale/pkg/query"
)

// saintAlias is the table alias every scope refers to.
const saintAlias = "s"

// Scope is a named, composable predicate on the saints table.
//
// Scopes are pure: they only append SQL and arguments to the builder, and
// any number of them combine with AND.
type Scope func(builder *query.Builder)

// Apply runs every scope against builder in order.
func Apply(builder *query.Builder, scopes ...Scope) *query.Builder {
	for _, scope := range scopes {
		scope(builder)
	}
	return builder
}

func column(name string) string {
	return saintAlias + "." + name
}

// monthDayExpr encodes feast_date as month*100 + day for recurring-day
// comparisons and calendar ordering. It must stay identical to the
// saint_feast_month_day_idx expression so both use the index.
func monthDayExpr() string {
	feastDate := column(schema.CoreSaint.FeastDate)
	return fmt.Sprintf("(EXTRACT(MONTH FROM %s)::int * 100 + EXTRACT(DAY FROM %s)::int)", feastDate, feastDate)
}

// # Scopes

// Search matches term as a case-insensitive substring of name, canonical name or description.
func Search(term string) Scope {
	return func(builder *query.Builder) {
		pattern := query.Contains(term)
		builder.Where(
			fmt.Sprintf("%s ILIKE ? OR %s ILIKE ? OR %s ILIKE ?",
				column(schema.CoreSaint.Name),
				column(schema.CoreSaint.CanonicalName),
				column(schema.CoreSaint.Description),
			),
			pattern, pattern, pattern,
		)
	}
}

// ByCategory keeps saints of one category.
func ByCategory(category Category) Scope {
	return func(builder *query.Builder) {
		builder.Where(column(schema.CoreSaint.Category)+" = ?", string(category))
	}
}

// ByFeastType keeps saints celebrated with one rank.
func ByFeastType(feastType FeastType) Scope {
	return func(builder *query.Builder) {
		builder.Where(column(schema.CoreSaint.FeastType)+" = ?", string(feastType))
	}
}

// Patron keeps saints by their patron flag.
func Patron(isPatron bool) Scope {
	return func(builder *query.Builder) {
		builder.Where(column(schema.CoreSaint.IsPatron)+" = ?", isPatron)
	}
}

// Active keeps saints by their active flag.
func Active(isActive bool) Scope {
	return func(builder *query.Builder) {
		builder.Where(column(schema.CoreSaint.IsActive)+" = ?", isActive)
	}
}

// MinPopularity keeps saints whose popularity score is at least threshold.
func MinPopularity(threshold int) Scope {
	return func(builder *query.Builder) {
		builder.Where(column(schema.CoreSaint.PopularityScore)+" >= ?", threshold)
	}
}

// OnMonthDays keeps saints whose feast falls on any of the given recurring days.
func OnMonthDays(days ...calendar.MonthDay) Scope {
	return func(builder *query.Builder) {
		builder.Where(monthDayExpr()+" = ANY(?)", calendar.Ordinals(days))
	}
}

// InFeastWindow keeps saints whose feast is observed from today through today+days.
func InFeastWindow(today time.Time, days int) Scope {
	return OnMonthDays(calendar.Window(today, days)...)
}

// # Ordering

// orderBy renders the ORDER BY clause with the id tie-break.
func orderBy(sort Sort) string {
	var expression string
	switch sort.Field {
	case SortName:
		expression = column(schema.CoreSaint.Name)
	case SortFeastDate:
		expression = monthDayExpr()
	case SortPopularityScore:
		expression = column(schema.CoreSaint.PopularityScore)
	case SortCreatedAt:
		expression = column(schema.CoreSaint.CreatedAt)
	case SortID:
		expression = column(schema.CoreSaint.ID)
	default:
		expression = monthDayExpr()
	}

	direction := "ASC"
	if sort.Direction == Desc {
		direction = "DESC"
	}

	if sort.Field == SortID {
		return fmt.Sprintf(" ORDER BY %s %s", expression, direction)
	}
	return fmt.Sprintf(" ORDER BY %s %s, %s ASC", expression, direction, column(schema.CoreSaint.ID))
}
