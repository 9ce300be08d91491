// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint

import (
	"time"

	"github.com/sanctorale/sanctorale/pkg/calendar"
)

// # Sorting

// SortField is an allow-listed sort key.
type SortField string

const (
	SortName            SortField = "name"
	SortFeastDate       SortField = "feast_date"
	SortPopularityScore SortField = "popularity_score"
	SortCreatedAt       SortField = "created_at"
	SortID              SortField = "id"
)

// SortFields lists the accepted sort keys.
func SortFields() []SortField {
	return []SortField{SortName, SortFeastDate, SortPopularityScore, SortCreatedAt, SortID}
}

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort pairs a key with its direction. Rows tying on the key are ordered by id ascending.
type Sort struct {
	Field     SortField
	Direction Direction
}

// DefaultSort orders the catalogue along the liturgical year.
var DefaultSort = Sort{Field: SortFeastDate, Direction: Asc}

// # Filtering

// Filter is the normalized set of predicates for a saint query.
// Nil pointers and empty values mean "no constraint".
type Filter struct {
	Search        string
	Category      *Category
	FeastType     *FeastType
	IsPatron      *bool
	IsActive      *bool
	MinPopularity *int

	// MonthDays restricts feast_date to any of these recurring days.
	MonthDays []calendar.MonthDay

	// Window restricts feasts to the days from Window.From through From+Days.
	Window *FeastWindow

	Sort Sort
}

// FeastWindow is an inclusive range of upcoming calendar days.
type FeastWindow struct {
	From time.Time
	Days int
}

// Scopes converts the filter into composable query scopes.
func (filter Filter) Scopes() []Scope {
	var scopes []Scope

	if filter.Search != "" {
		scopes = append(scopes, Search(filter.Search))
	}
	if filter.Category != nil {
		scopes = append(scopes, ByCategory(*filter.Category))
	}
	if filter.FeastType != nil {
		scopes = append(scopes, ByFeastType(*filter.FeastType))
	}
	if filter.IsPatron != nil {
		scopes = append(scopes, Patron(*filter.IsPatron))
	}
	if filter.IsActive != nil {
		scopes = append(scopes, Active(*filter.IsActive))
	}
	if filter.MinPopularity != nil {
		scopes = append(scopes, MinPopularity(*filter.MinPopularity))
	}
	if len(filter.MonthDays) > 0 {
		scopes = append(scopes, OnMonthDays(filter.MonthDays...))
	}
	if filter.Window != nil {
		scopes = append(scopes, InFeastWindow(filter.Window.From, filter.Window.Days))
	}

	return scopes
}

// # Statistics

// Totals are the global counters of the stats snapshot.
type Totals struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Universal int `json:"universal"`
	Local     int `json:"local"`
	Patrons   int `json:"patrons"`
}

// Counts is the raw aggregate returned by the store.
type Counts struct {
	Totals      Totals
	ByCategory  map[Category]int
	ByFeastType map[FeastType]int
}
