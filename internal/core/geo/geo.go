// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package geo manages the geographic reference data of Sanctorale.

Regions and places are the "master data" saints point at: where a saint is
venerated, born or died, and which region or place a patronage protects.
They are seeded by migrations and operators and are read-only over HTTP.

# Core Responsibility

  - Taxonomy: [Region] records (e.g. dioceses, provinces) with a short code.
  - Locations: [Place] records with optional coordinates, each in at most one region.
  - Summaries: the compact {id, name, slug} shape embedded into other resources.
*/
package geo

// # Region Domain

// Region is an administrative or ecclesiastical area.
type Region struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Code string `json:"code"`
}

// # Place Domain

// Place is a town, shrine or site that may belong to a region.
type Place struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	RegionID  *int64   `json:"region_id"`
	Region    *Summary `json:"region"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// # Summary

// Summary is the embedded form of a region or place inside other resources.
type Summary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Summary returns the embedded form of the region.
func (region *Region) Summary() *Summary {
	return &Summary{ID: region.ID, Name: region.Name, Slug: region.Slug}
}

// Summary returns the embedded form of the place.
func (place *Place) Summary() *Summary {
	return &Summary{ID: place.ID, Name: place.Name, Slug: place.Slug}
}

// # Search Params

// PlaceFilter holds the parameters for a paginated place search.
type PlaceFilter struct {
	Query    string // Case-insensitive substring of the name
	RegionID *int64
}

// # Field Identifiers

const (
	FieldQuery    = "q"
	FieldRegionID = "region_id"
)
