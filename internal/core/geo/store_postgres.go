// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package geo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanctorale/sanctorale/internal/platform/database/schema"
	"github.com/sanctorale/sanctorale/internal/platform/dberr"
	"github.com/sanctorale/sanctorale/pkg/query"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
ListRegions retrieves every region ordered by name.

Parameters:
  - context: context.Context

Returns:
  - []*Region: Collection of regions
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) ListRegions(context context.Context) ([]*Region, error) {

	// Define region retrieval query
	sql := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC, %s ASC`,
		schema.GeoRegion.ID, schema.GeoRegion.Name, schema.GeoRegion.Slug, schema.GeoRegion.Code,
		schema.GeoRegion.Table,
		schema.GeoRegion.Name, schema.GeoRegion.ID,
	)

	rows, err := repository.db.Query(context, sql)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list regions: %w", err)
	}
	defer rows.Close()

	regions := []*Region{}
	for rows.Next() {
		region := &Region{}
		if err := rows.Scan(&region.ID, &region.Name, &region.Slug, &region.Code); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan region: %w", err)
		}
		regions = append(regions, region)
	}

	return regions, rows.Err()
}

// FindRegion fetches a region by id.
func (repository *PostgresRepository) FindRegion(context context.Context, id int64) (*Region, error) {
	sql := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.GeoRegion.ID, schema.GeoRegion.Name, schema.GeoRegion.Slug, schema.GeoRegion.Code,
		schema.GeoRegion.Table,
		schema.GeoRegion.ID,
	)

	region := &Region{}
	err := repository.db.QueryRow(context, sql, id).Scan(&region.ID, &region.Name, &region.Slug, &region.Code)
	if err != nil {
		return nil, dberr.Wrap(err, "Region")
	}

	return region, nil
}

/*
ListPlaces returns a filtered, paginated slice of places and the total count.

Description: Places are joined to their region so each row carries its
summary. The count runs as a separate statement so out-of-range pages still
report the real total.

Parameters:
  - context: context.Context
  - filter: PlaceFilter (name search, region)
  - limit: int
  - offset: int

Returns:
  - []*Place: Page of places
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *PostgresRepository) ListPlaces(context context.Context, filter PlaceFilter, limit, offset int) ([]*Place, int, error) {

	// Apply Filters (Dynamic WHERE clause construction)
	builder := query.New()
	if filter.Query != "" {
		builder.Where("p."+schema.GeoPlace.Name+" ILIKE ?", query.Contains(filter.Query))
	}
	if filter.RegionID != nil {
		builder.Where("p."+schema.GeoPlace.RegionID+" = ?", *filter.RegionID)
	}

	// Count matching rows
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s p%s", schema.GeoPlace.Table, builder.WhereSQL())
	var total int
	if err := repository.db.QueryRow(context, countSQL, builder.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to count places: %w", err)
	}

	// Page query
	listSQL := placeSelect() + builder.WhereSQL() +
		fmt.Sprintf(" ORDER BY p.%s ASC, p.%s ASC", schema.GeoPlace.Name, schema.GeoPlace.ID) +
		fmt.Sprintf(" LIMIT %s OFFSET %s", builder.Arg(limit), builder.Arg(offset))

	rows, err := repository.db.Query(context, listSQL, builder.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list places: %w", err)
	}
	defer rows.Close()

	places := []*Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan place: %w", err)
		}
		places = append(places, place)
	}

	return places, total, rows.Err()
}

// FindPlace fetches a place by id with its region summary.
func (repository *PostgresRepository) FindPlace(context context.Context, id int64) (*Place, error) {
	sql := placeSelect() + fmt.Sprintf(" WHERE p.%s = $1", schema.GeoPlace.ID)

	place, err := scanPlace(repository.db.QueryRow(context, sql, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Place")
	}

	return place, nil
}

// PlaceExists reports whether a place row with id exists.
func (repository *PostgresRepository) PlaceExists(context context.Context, id int64) (bool, error) {
	return repository.exists(context, schema.GeoPlace.Table, schema.GeoPlace.ID, id)
}

// RegionExists reports whether a region row with id exists.
func (repository *PostgresRepository) RegionExists(context context.Context, id int64) (bool, error) {
	return repository.exists(context, schema.GeoRegion.Table, schema.GeoRegion.ID, id)
}

func (repository *PostgresRepository) exists(context context.Context, table, idColumn string, id int64) (bool, error) {
	sql := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", table, idColumn)

	var found bool
	if err := repository.db.QueryRow(context, sql, id).Scan(&found); err != nil {
		return false, fmt.Errorf("postgres: failed to check %s: %w", table, err)
	}
	return found, nil
}

// # Row Mapping

type rowScanner interface {
	Scan(dest ...any) error
}

func placeSelect() string {
	return fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, r.%s, r.%s
		FROM %s p
		LEFT JOIN %s r ON r.%s = p.%s`,
		schema.GeoPlace.ID, schema.GeoPlace.Name, schema.GeoPlace.Slug,
		schema.GeoPlace.RegionID, schema.GeoPlace.Latitude, schema.GeoPlace.Longitude,
		schema.GeoRegion.Name, schema.GeoRegion.Slug,
		schema.GeoPlace.Table,
		schema.GeoRegion.Table, schema.GeoRegion.ID, schema.GeoPlace.RegionID,
	)
}

func scanPlace(row rowScanner) (*Place, error) {
	place := &Place{}
	var regionName, regionSlug *string

	err := row.Scan(
		&place.ID, &place.Name, &place.Slug,
		&place.RegionID, &place.Latitude, &place.Longitude,
		&regionName, &regionSlug,
	)
	if err != nil {
		return nil, err
	}

	if place.RegionID != nil && regionName != nil && regionSlug != nil {
		place.Region = &Summary{ID: *place.RegionID, Name: *regionName, Slug: *regionSlug}
	}

	return place, nil
}
