package schema

// GeoRegionTable represents the 'geo.region' table
type GeoRegionTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
	Code  string
}

// GeoRegion is the schema definition for geo.region
var GeoRegion = GeoRegionTable{
	Table: "geo.region",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
	Code:  "code",
}

func (t GeoRegionTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Code}
}
