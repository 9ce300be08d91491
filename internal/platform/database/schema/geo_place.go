package schema

// GeoPlaceTable represents the 'geo.place' table
type GeoPlaceTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	RegionID  string
	Latitude  string
	Longitude string
}

// GeoPlace is the schema definition for geo.place
var GeoPlace = GeoPlaceTable{
	Table:     "geo.place",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	RegionID:  "region_id",
	Latitude:  "latitude",
	Longitude: "longitude",
}

func (t GeoPlaceTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.RegionID, t.Latitude, t.Longitude}
}
