package schema

// CoreSaintTable represents the 'core.saint' table
type CoreSaintTable struct {
	Table            string
	ID               string
	Slug             string
	Name             string
	CanonicalName    string
	Description      string
	Biography        string
	Notes            string
	FeastDate        string
	FeastDateAlt     string
	BirthDate        string
	DeathDate        string
	CanonizationDate string
	Category         string
	FeastType        string
	IsPatron         string
	IsActive         string
	IsUniversal      string
	IsLocal          string
	PopularityScore  string
	PlaceID          string
	BirthPlaceID     string
	DeathPlaceID     string
	RegionID         string
	CreatedAt        string
	UpdatedAt        string

	// SlugKey is the unique constraint on slug.
	SlugKey string
}

// CoreSaint is the schema definition for core.saint
var CoreSaint = CoreSaintTable{
	Table:            "core.saint",
	ID:               "id",
	Slug:             "slug",
	Name:             "name",
	CanonicalName:    "canonical_name",
	Description:      "description",
	Biography:        "biography",
	Notes:            "notes",
	FeastDate:        "feast_date",
	FeastDateAlt:     "feast_date_alt",
	BirthDate:        "birth_date",
	DeathDate:        "death_date",
	CanonizationDate: "canonization_date",
	Category:         "category",
	FeastType:        "feast_type",
	IsPatron:         "is_patron",
	IsActive:         "is_active",
	IsUniversal:      "is_universal",
	IsLocal:          "is_local",
	PopularityScore:  "popularity_score",
	PlaceID:          "place_id",
	BirthPlaceID:     "birth_place_id",
	DeathPlaceID:     "death_place_id",
	RegionID:         "region_id",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
	SlugKey:          "saint_slug_key",
}

// Columns lists every column in scan order.
func (t CoreSaintTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Name, t.CanonicalName, t.Description, t.Biography, t.Notes,
		t.FeastDate, t.FeastDateAlt, t.BirthDate, t.DeathDate, t.CanonizationDate,
		t.Category, t.FeastType, t.IsPatron, t.IsActive, t.IsUniversal, t.IsLocal,
		t.PopularityScore, t.PlaceID, t.BirthPlaceID, t.DeathPlaceID, t.RegionID,
		t.CreatedAt, t.UpdatedAt,
	}
}

// WritableColumns lists the columns an insert or full update sets.
func (t CoreSaintTable) WritableColumns() []string {
	return []string{
		t.Slug, t.Name, t.CanonicalName, t.Description, t.Biography, t.Notes,
		t.FeastDate, t.FeastDateAlt, t.BirthDate, t.DeathDate, t.CanonizationDate,
		t.Category, t.FeastType, t.IsPatron, t.IsActive, t.IsUniversal, t.IsLocal,
		t.PopularityScore, t.PlaceID, t.BirthPlaceID, t.DeathPlaceID, t.RegionID,
	}
}
