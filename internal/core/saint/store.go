// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint

import (
	"context"

	"github.com/sanctorale/sanctorale/pkg/pagination"
)

// # Saint Data Access

// Repository defines the data access contract for the saints table.
type Repository interface {

	/*
		List retrieves a filtered, sorted page of saints.

		Parameters:
		  - context: context.Context
		  - filter: Filter (scopes and sort)
		  - page: pagination.Params

		Returns:
		  - []*Saint: Page of hydrated saints
		  - int: Total matching count for pagination metadata
		  - error: Database execution errors
	*/
	List(context context.Context, filter Filter, page pagination.Params) ([]*Saint, int, error)

	/*
		ListAll retrieves every saint matching filter, unpaginated.

		Parameters:
		  - context: context.Context
		  - filter: Filter

		Returns:
		  - []*Saint: All matches in sort order
		  - error: Database execution errors
	*/
	ListAll(context context.Context, filter Filter) ([]*Saint, error)

	// FindByID fetches one saint with its related summaries, or apperr.NotFound.
	FindByID(context context.Context, id int64) (*Saint, error)

	// SlugExists reports whether another row (id != excludeID) already uses slug.
	SlugExists(context context.Context, slug string, excludeID int64) (bool, error)

	// Create inserts saint and fills its ID and timestamps.
	Create(context context.Context, saint *Saint) error

	// Update overwrites every writable column of saint, or returns apperr.NotFound.
	Update(context context.Context, saint *Saint) error

	// Delete removes the row, or returns apperr.NotFound.
	Delete(context context.Context, id int64) error

	// Aggregate computes the counters of the stats snapshot.
	Aggregate(context context.Context) (Counts, error)
}

// # Patronage Data Access

// PatronageRepository defines the data access contract for patronage links.
type PatronageRepository interface {

	// ListBySaint returns the links of a saint ordered by creation.
	ListBySaint(context context.Context, saintID int64) ([]*Patronage, error)

	// Create inserts a link; a duplicate target is a validation error on "target".
	Create(context context.Context, patronage *Patronage) error

	// Delete removes a link of the given saint, or returns apperr.NotFound.
	Delete(context context.Context, saintID, patronageID int64) error
}
