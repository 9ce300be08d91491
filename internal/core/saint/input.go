// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint

import (
	"fmt"
	"strings"

	"github.com/sanctorale/sanctorale/internal/platform/validate"
	"github.com/sanctorale/sanctorale/pkg/optional"
)

// # Write Model

// SaintInput is the body of a create or update request.
//
// Every field is tri-state so an update can tell an absent key (keep) from
// an explicit null (clear) and from a value of the wrong JSON type (reject).
type SaintInput struct {
	Slug          optional.Value[string] `json:"slug"`
	Name          optional.Value[string] `json:"name"`
	CanonicalName optional.Value[string] `json:"canonical_name"`
	Description   optional.Value[string] `json:"description"`
	Biography     optional.Value[string] `json:"biography"`
	Notes         optional.Value[string] `json:"notes"`

	FeastDate        optional.Value[string] `json:"feast_date"`
	FeastDateAlt     optional.Value[string] `json:"feast_date_alt"`
	BirthDate        optional.Value[string] `json:"birth_date"`
	DeathDate        optional.Value[string] `json:"death_date"`
	CanonizationDate optional.Value[string] `json:"canonization_date"`

	Category  optional.Value[string] `json:"category"`
	FeastType optional.Value[string] `json:"feast_type"`

	IsPatron    optional.Value[bool] `json:"is_patron"`
	IsActive    optional.Value[bool] `json:"is_active"`
	IsUniversal optional.Value[bool] `json:"is_universal"`
	IsLocal     optional.Value[bool] `json:"is_local"`

	PopularityScore optional.Value[int] `json:"popularity_score"`

	PlaceID      optional.Value[int64] `json:"place_id"`
	BirthPlaceID optional.Value[int64] `json:"birth_place_id"`
	DeathPlaceID optional.Value[int64] `json:"death_place_id"`
	RegionID     optional.Value[int64] `json:"region_id"`
}

// Validation messages specific to saints.
const (
	MessageSlugTaken      = "The slug has already been taken."
	MessageDeathOrder     = "The death date must be a date after or equal to birth date."
	messageMustBeString   = "Must be a string"
	messageMustBeBool     = "Must be true or false"
	messageMustBeInteger  = "Must be an integer"
	messageFieldRequired  = "This field is required"
	messageSelectedFormat = "The selected %s is invalid."
)

// newSaint returns a row carrying the column defaults.
func newSaint() *Saint {
	return &Saint{IsActive: true, IsUniversal: true}
}

// SuppliedSlug returns the trimmed slug when the payload carries a non-empty one.
func (input SaintInput) SuppliedSlug() (string, bool) {
	if !input.Slug.Present() {
		return "", false
	}
	value := strings.TrimSpace(input.Slug.V)
	return value, value != ""
}

/*
Apply validates the supplied fields and writes them onto target.

Parameters:
  - target: *Saint (defaults on create, a copy of the stored row on update)
  - creating: bool (enforces the required fields)

Returns:
  - *validate.Validator: Collected errors, so callers can add store-backed checks before Err()
*/
func (input SaintInput) Apply(target *Saint, creating bool) *validate.Validator {
	validator := &validate.Validator{}

	// Identity
	if slug, ok := input.SuppliedSlug(); ok {
		validator.MaxLen(FieldSlug, slug, maxSlugLength)
		validator.Slug(FieldSlug, slug)
		target.Slug = slug
	} else if input.Slug.Invalid {
		validator.Custom(FieldSlug, true, messageMustBeString)
	} else if input.Slug.Set && !creating {
		validator.Custom(FieldSlug, true, messageFieldRequired)
	}

	// Descriptive
	requiredText(validator, FieldName, input.Name, creating, maxNameLength, &target.Name)
	nullableText(validator, FieldCanonicalName, input.CanonicalName, maxNameLength, &target.CanonicalName)
	nullableText(validator, FieldDescription, input.Description, 0, &target.Description)
	nullableText(validator, FieldBiography, input.Biography, 0, &target.Biography)
	nullableText(validator, FieldNotes, input.Notes, 0, &target.Notes)

	// Temporal
	requiredDate(validator, FieldFeastDate, input.FeastDate, creating, &target.FeastDate)
	nullableDate(validator, FieldFeastDateAlt, input.FeastDateAlt, &target.FeastDateAlt)
	nullableDate(validator, FieldBirthDate, input.BirthDate, &target.BirthDate)
	nullableDate(validator, FieldDeathDate, input.DeathDate, &target.DeathDate)
	nullableDate(validator, FieldCanonizationDate, input.CanonizationDate, &target.CanonizationDate)

	// Classification
	var category string
	if requiredText(validator, FieldCategory, input.Category, creating, 0, &category) && category != "" {
		validator.Custom(FieldCategory, !Category(category).IsValid(), fmt.Sprintf(messageSelectedFormat, FieldCategory))
		target.Category = Category(category)
	}
	var feastType string
	if requiredText(validator, FieldFeastType, input.FeastType, creating, 0, &feastType) && feastType != "" {
		validator.Custom(FieldFeastType, !FeastType(feastType).IsValid(), fmt.Sprintf(messageSelectedFormat, FieldFeastType))
		target.FeastType = FeastType(feastType)
	}

	// Flags
	flag(validator, FieldIsPatron, input.IsPatron, &target.IsPatron)
	flag(validator, FieldIsActive, input.IsActive, &target.IsActive)
	flag(validator, FieldIsUniversal, input.IsUniversal, &target.IsUniversal)
	flag(validator, FieldIsLocal, input.IsLocal, &target.IsLocal)

	// Ranking
	if input.PopularityScore.Set {
		if input.PopularityScore.Present() {
			validator.Min(FieldPopularityScore, input.PopularityScore.V, 0)
			target.PopularityScore = input.PopularityScore.V
		} else {
			validator.Custom(FieldPopularityScore, true, messageMustBeInteger)
		}
	}

	// Relations
	nullableID(validator, FieldPlaceID, input.PlaceID, &target.PlaceID)
	nullableID(validator, FieldBirthPlaceID, input.BirthPlaceID, &target.BirthPlaceID)
	nullableID(validator, FieldDeathPlaceID, input.DeathPlaceID, &target.DeathPlaceID)
	nullableID(validator, FieldRegionID, input.RegionID, &target.RegionID)

	// Lifespan is checked on the merged row so an update of one side is compared with the stored other side.
	if !validator.HasFieldError(FieldBirthDate) && !validator.HasFieldError(FieldDeathDate) {
		validator.Custom(FieldDeathDate, !lifespanOrdered(target), MessageDeathOrder)
	}

	return validator
}

// lifespanOrdered reports whether death_date is not before birth_date when both are known.
func lifespanOrdered(saint *Saint) bool {
	if saint.BirthDate == nil || saint.DeathDate == nil {
		return true
	}
	return !saint.DeathDate.Before(saint.BirthDate.Time)
}

// # Foreign Keys

// referenceKind names the table a foreign key points at.
type referenceKind int

const (
	referencePlace referenceKind = iota
	referenceRegion
)

// reference is a supplied foreign key awaiting its existence check.
type reference struct {
	field string
	id    int64
	kind  referenceKind
}

// references lists the foreign keys the payload sets to a value.
func (input SaintInput) references() []reference {
	var refs []reference
	for _, candidate := range []struct {
		field string
		value optional.Value[int64]
		kind  referenceKind
	}{
		{FieldPlaceID, input.PlaceID, referencePlace},
		{FieldBirthPlaceID, input.BirthPlaceID, referencePlace},
		{FieldDeathPlaceID, input.DeathPlaceID, referencePlace},
		{FieldRegionID, input.RegionID, referenceRegion},
	} {
		if candidate.value.Present() {
			refs = append(refs, reference{field: candidate.field, id: candidate.value.V, kind: candidate.kind})
		}
	}
	return refs
}

// # Field Rules

// requiredText applies a non-nullable string field and reports whether a usable value was read.
func requiredText(validator *validate.Validator, field string, in optional.Value[string], creating bool, max int, target *string) bool {
	if !in.Set {
		if creating {
			validator.Required(field, "")
		}
		return false
	}
	if in.Invalid {
		validator.Custom(field, true, messageMustBeString)
		return false
	}

	value := strings.TrimSpace(in.V)
	validator.Required(field, value)
	if max > 0 {
		validator.MaxLen(field, value, max)
	}
	*target = value
	return value != ""
}

// nullableText applies an optional string field; empty strings are stored as NULL.
func nullableText(validator *validate.Validator, field string, in optional.Value[string], max int, target **string) {
	if !in.Set {
		return
	}
	if in.Invalid {
		validator.Custom(field, true, messageMustBeString)
		return
	}

	value := strings.TrimSpace(in.V)
	if in.Null || value == "" {
		*target = nil
		return
	}
	if max > 0 {
		validator.MaxLen(field, value, max)
	}
	*target = &value
}

func requiredDate(validator *validate.Validator, field string, in optional.Value[string], creating bool, target *Date) {
	var raw string
	if !requiredText(validator, field, in, creating, 0, &raw) {
		return
	}
	if parsed, ok := validator.Date(field, raw); ok {
		*target = NewDate(parsed)
	}
}

func nullableDate(validator *validate.Validator, field string, in optional.Value[string], target **Date) {
	var raw *string
	nullableText(validator, field, in, 0, &raw)
	if !in.Set || validator.HasFieldError(field) {
		return
	}
	if raw == nil {
		*target = nil
		return
	}
	if parsed, ok := validator.Date(field, *raw); ok {
		date := NewDate(parsed)
		*target = &date
	}
}

func flag(validator *validate.Validator, field string, in optional.Value[bool], target *bool) {
	if !in.Set {
		return
	}
	if !in.Present() {
		validator.Custom(field, true, messageMustBeBool)
		return
	}
	*target = in.V
}

func nullableID(validator *validate.Validator, field string, in optional.Value[int64], target **int64) {
	if !in.Set {
		return
	}
	if in.Invalid {
		validator.Custom(field, true, messageMustBeInteger)
		return
	}
	*target = in.Ptr()
}
