// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package saint manages the liturgical calendar's catalogue of saints.

It owns the Saint aggregate, its patronages and the statistics snapshot
computed over the whole table.

# Core Responsibility

  - Discovery: filtered, sorted, paginated listing and the named calendar
    lookups (today, by-date, by-category, search).
  - Curation: validated create, partial update and hard delete.
  - Patronage: links between a saint and the places or regions it protects.
  - Statistics: a cached aggregate snapshot, invalidated on every mutation.
*/
package saint

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sanctorale/sanctorale/internal/core/geo"
	"github.com/sanctorale/sanctorale/internal/platform/validate"
	"github.com/sanctorale/sanctorale/pkg/calendar"
)

// # Resource Identity

// Resource is the authorization resource name for saints.
const Resource = "saints"

// # Classification

// Category is the hagiographic classification of a saint.
type Category string

const (
	CategoryMartyr    Category = "martyr"
	CategoryConfessor Category = "confessor"
	CategoryVirgin    Category = "virgin"
	CategoryFounder   Category = "founder"
	CategoryDoctor    Category = "doctor"
	CategoryApostle   Category = "apostle"
	CategoryPope      Category = "pope"
	CategoryOther     Category = "other"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryMartyr, CategoryConfessor, CategoryVirgin, CategoryFounder,
		CategoryDoctor, CategoryApostle, CategoryPope, CategoryOther,
	}
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// FeastType is the liturgical rank of the celebration.
type FeastType string

const (
	FeastSolemnity        FeastType = "solemnity"
	FeastFeast            FeastType = "feast"
	FeastMemorial         FeastType = "memorial"
	FeastOptionalMemorial FeastType = "optional_memorial"
)

// FeastTypes lists every feast type from highest to lowest rank.
func FeastTypes() []FeastType {
	return []FeastType{FeastSolemnity, FeastFeast, FeastMemorial, FeastOptionalMemorial}
}

// IsValid reports whether f is a known feast type.
func (f FeastType) IsValid() bool {
	for _, known := range FeastTypes() {
		if f == known {
			return true
		}
	}
	return false
}

// # Civil Date

// Date is a calendar day without time of day, rendered as YYYY-MM-DD.
//
// It scans from and encodes to a PostgreSQL DATE column.
type Date struct {
	time.Time
}

// NewDate wraps t, dropping the time of day.
func NewDate(t time.Time) Date {
	return Date{Time: calendar.Date(t.Year(), t.Month(), t.Day())}
}

// MonthDay returns the recurring day of d.
func (d Date) MonthDay() calendar.MonthDay {
	return calendar.Of(d.Time)
}

// String renders d as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(validate.DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	parsed, err := time.Parse(`"`+validate.DateLayout+`"`, string(data))
	if err != nil {
		return fmt.Errorf("saint: invalid date %s: %w", data, err)
	}
	*d = NewDate(parsed)
	return nil
}

// ScanDate implements pgtype.DateScanner.
func (d *Date) ScanDate(value pgtype.Date) error {
	if !value.Valid {
		return fmt.Errorf("saint: cannot scan NULL into Date")
	}
	if value.InfinityModifier != pgtype.Finite {
		return fmt.Errorf("saint: cannot scan infinite date")
	}
	*d = NewDate(value.Time)
	return nil
}

// DateValue implements pgtype.DateValuer.
func (d Date) DateValue() (pgtype.Date, error) {
	return pgtype.Date{Time: d.Time, Valid: true}, nil
}

// # Domain Entity

// Saint is a single entry of the catalogue.
type Saint struct {
	ID            int64   `json:"id"`
	Slug          string  `json:"slug"`
	Name          string  `json:"name"`
	CanonicalName *string `json:"canonical_name"`
	Description   *string `json:"description"`
	Biography     *string `json:"biography"`
	Notes         *string `json:"notes"`

	FeastDate        Date  `json:"feast_date"`
	FeastDateAlt     *Date `json:"feast_date_alt"`
	BirthDate        *Date `json:"birth_date"`
	DeathDate        *Date `json:"death_date"`
	CanonizationDate *Date `json:"canonization_date"`

	Category  Category  `json:"category"`
	FeastType FeastType `json:"feast_type"`

	IsPatron    bool `json:"is_patron"`
	IsActive    bool `json:"is_active"`
	IsUniversal bool `json:"is_universal"`
	IsLocal     bool `json:"is_local"`

	PopularityScore int `json:"popularity_score"`

	PlaceID      *int64 `json:"place_id"`
	BirthPlaceID *int64 `json:"birth_place_id"`
	DeathPlaceID *int64 `json:"death_place_id"`
	RegionID     *int64 `json:"region_id"`

	// Related summaries, hydrated on read.
	Place      *geo.Summary `json:"place"`
	BirthPlace *geo.Summary `json:"birth_place"`
	DeathPlace *geo.Summary `json:"death_place"`
	Region     *geo.Summary `json:"region"`

	// DaysUntilFeast is derived from the service clock, never stored.
	DaysUntilFeast int `json:"days_until_feast"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

// Request field names used in validation errors and query strings.
const (
	FieldSlug             = "slug"
	FieldName             = "name"
	FieldCanonicalName    = "canonical_name"
	FieldDescription      = "description"
	FieldBiography        = "biography"
	FieldNotes            = "notes"
	FieldFeastDate        = "feast_date"
	FieldFeastDateAlt     = "feast_date_alt"
	FieldBirthDate        = "birth_date"
	FieldDeathDate        = "death_date"
	FieldCanonizationDate = "canonization_date"
	FieldCategory         = "category"
	FieldFeastType        = "feast_type"
	FieldIsPatron         = "is_patron"
	FieldIsActive         = "is_active"
	FieldIsUniversal      = "is_universal"
	FieldIsLocal          = "is_local"
	FieldPopularityScore  = "popularity_score"
	FieldPlaceID          = "place_id"
	FieldBirthPlaceID     = "birth_place_id"
	FieldDeathPlaceID     = "death_place_id"
	FieldRegionID         = "region_id"

	FieldSearch        = "search"
	FieldQuery         = "q"
	FieldMinPopularity = "min_popularity"
	FieldSortBy        = "sort_by"
	FieldSortDirection = "sort_direction"
	FieldDate          = "date"
)

// Column limits.
const (
	maxNameLength = 255
	maxSlugLength = 255
)
