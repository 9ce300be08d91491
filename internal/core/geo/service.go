// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package geo

import (
	"context"
	"net/url"
	"strings"

	"github.com/sanctorale/sanctorale/internal/platform/validate"
	"github.com/sanctorale/sanctorale/pkg/pagination"
)

// # Service Layer

// Service orchestrates read access to regions and places.
//
// Besides serving the geography endpoints it answers the existence checks
// the saint service runs on foreign keys.
type Service struct {
	repo Repository
}

// NewService constructs a new geo [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// # Region Methods

// ListRegions returns every region.
func (service *Service) ListRegions(context context.Context) ([]*Region, error) {
	return service.repo.ListRegions(context)
}

// GetRegion retrieves a region by id.
func (service *Service) GetRegion(context context.Context, id int64) (*Region, error) {
	return service.repo.FindRegion(context, id)
}

// RegionExists reports whether a region with id exists.
func (service *Service) RegionExists(context context.Context, id int64) (bool, error) {
	return service.repo.RegionExists(context, id)
}

// # Place Methods

/*
ListPlaces provides a paginated place search.

Parameters:
  - context: context.Context
  - filter: PlaceFilter
  - params: pagination.Params

Returns:
  - []*Place: Page of matches
  - int: Total record count for pagination
  - error: Retrieval errors
*/
func (service *Service) ListPlaces(context context.Context, filter PlaceFilter, params pagination.Params) ([]*Place, int, error) {
	return service.repo.ListPlaces(context, filter, params.PerPage, params.Offset())
}

// GetPlace retrieves a place by id.
func (service *Service) GetPlace(context context.Context, id int64) (*Place, error) {
	return service.repo.FindPlace(context, id)
}

// PlaceExists reports whether a place with id exists.
func (service *Service) PlaceExists(context context.Context, id int64) (bool, error) {
	return service.repo.PlaceExists(context, id)
}

// # Query Parsing

/*
ParsePlaceQuery normalizes the place list query string.

Parameters:
  - values: url.Values (q, region_id, page, per_page)

Returns:
  - PlaceFilter: Normalized filter
  - pagination.Params: Validated page window
  - error: apperr validation error on malformed input
*/
func ParsePlaceQuery(values url.Values) (PlaceFilter, pagination.Params, error) {
	validator := &validate.Validator{}
	filter := PlaceFilter{Query: strings.TrimSpace(values.Get(FieldQuery))}

	if raw := values.Get(FieldRegionID); raw != "" {
		if regionID, ok := validator.Int(FieldRegionID, raw); ok {
			validator.Min(FieldRegionID, regionID, 1)
			id := int64(regionID)
			filter.RegionID = &id
		}
	}

	params := validator.Page(values)

	if err := validator.Err(); err != nil {
		return PlaceFilter{}, pagination.Params{}, err
	}
	return filter, params, nil
}
