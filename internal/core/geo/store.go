// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package geo

import "context"

// # Geography Data Access

// Repository defines the data access contract for regions and places.
type Repository interface {

	// ## Region Data Access

	/*
		ListRegions retrieves every region ordered by name.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Region: All regions
		  - error: Database retrieval failures
	*/
	ListRegions(context context.Context) ([]*Region, error)

	/*
		FindRegion fetches a single region by its primary key.

		Parameters:
		  - context: context.Context
		  - id: int64 identifier

		Returns:
		  - *Region: The hydrated region
		  - error: apperr.NotFound if missing
	*/
	FindRegion(context context.Context, id int64) (*Region, error)

	// ## Place Data Access

	/*
		ListPlaces retrieves a filtered and paginated list of places.

		Parameters:
		  - context: context.Context
		  - filter: PlaceFilter (Search parameters)
		  - limit, offset: int (Pagination bounds)

		Returns:
		  - []*Place: Paginated matching results
		  - int: Total matching count for pagination metadata
		  - error: Database execution errors
	*/
	ListPlaces(context context.Context, filter PlaceFilter, limit, offset int) ([]*Place, int, error)

	// FindPlace fetches a single place with its region summary.
	FindPlace(context context.Context, id int64) (*Place, error)

	// PlaceExists reports whether a place row with id exists.
	PlaceExists(context context.Context, id int64) (bool, error)

	// RegionExists reports whether a region row with id exists.
	RegionExists(context context.Context, id int64) (bool, error)
}
