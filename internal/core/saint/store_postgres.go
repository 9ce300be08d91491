// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanctorale/sanctorale/internal/core/geo"
	"github.com/sanctorale/sanctorale/internal/platform/apperr"
	"github.com/sanctorale/sanctorale/internal/platform/database/schema"
	"github.com/sanctorale/sanctorale/internal/platform/dberr"
	"github.com/sanctorale/sanctorale/pkg/pagination"
	"github.com/sanctorale/sanctorale/pkg/query"
)

// Constraints the saint table reports as field errors.
var saintConstraints = []dberr.Constraint{
	{Name: schema.CoreSaint.SlugKey, Field: FieldSlug, Message: MessageSlugTaken},
	{Name: "saint_place_id_fkey", Field: FieldPlaceID, Message: fmt.Sprintf(messageSelectedFormat, FieldPlaceID)},
	{Name: "saint_birth_place_id_fkey", Field: FieldBirthPlaceID, Message: fmt.Sprintf(messageSelectedFormat, FieldBirthPlaceID)},
	{Name: "saint_death_place_id_fkey", Field: FieldDeathPlaceID, Message: fmt.Sprintf(messageSelectedFormat, FieldDeathPlaceID)},
	{Name: "saint_region_id_fkey", Field: FieldRegionID, Message: fmt.Sprintf(messageSelectedFormat, FieldRegionID)},
	{Name: "saint_lifespan_check", Field: FieldDeathDate, Message: MessageDeathOrder},
}

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Read Operations

/*
List returns a filtered, sorted page of saints and the total count.

Description: Filter scopes are composed into one WHERE clause shared by the
count and the page query. Related place and region summaries come from
LEFT JOINs so a single round trip hydrates the page.

Parameters:
  - context: context.Context
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*Saint: Page of saints
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, page pagination.Params) ([]*Saint, int, error) {
	builder := Apply(query.New(), filter.Scopes()...)

	// Count matching rows
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s %s%s", schema.CoreSaint.Table, saintAlias, builder.WhereSQL())
	var total int
	if err := repository.db.QueryRow(context, countSQL, builder.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to count saints: %w", err)
	}

	// Page query
	listSQL := saintSelect() + builder.WhereSQL() + orderBy(filter.Sort) +
		fmt.Sprintf(" LIMIT %s OFFSET %s", builder.Arg(page.PerPage), builder.Arg(page.Offset()))

	saints, err := repository.query(context, listSQL, builder.Args()...)
	if err != nil {
		return nil, 0, err
	}

	return saints, total, nil
}

// ListAll returns every saint matching filter in sort order.
func (repository *PostgresRepository) ListAll(context context.Context, filter Filter) ([]*Saint, error) {
	builder := Apply(query.New(), filter.Scopes()...)
	sql := saintSelect() + builder.WhereSQL() + orderBy(filter.Sort)
	return repository.query(context, sql, builder.Args()...)
}

// FindByID fetches a saint by id with its related summaries.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Saint, error) {
	sql := saintSelect() + fmt.Sprintf(" WHERE %s = $1", column(schema.CoreSaint.ID))

	saint, err := scanSaint(repository.db.QueryRow(context, sql, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Saint")
	}

	return saint, nil
}

// SlugExists reports whether a row other than excludeID already uses slug.
func (repository *PostgresRepository) SlugExists(context context.Context, slug string, excludeID int64) (bool, error) {
	sql := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2)",
		schema.CoreSaint.Table, schema.CoreSaint.Slug, schema.CoreSaint.ID,
	)

	var found bool
	if err := repository.db.QueryRow(context, sql, slug, excludeID).Scan(&found); err != nil {
		return false, fmt.Errorf("postgres: failed to check saint slug: %w", err)
	}
	return found, nil
}

/*
Aggregate computes the counters of the stats snapshot.

Description: Totals use FILTER aggregates in one pass; the per-category and
per-feast-type breakdowns are grouped separately.
*/
func (repository *PostgresRepository) Aggregate(context context.Context) (Counts, error) {
	counts := Counts{
		ByCategory:  map[Category]int{},
		ByFeastType: map[FeastType]int{},
	}

	totalsSQL := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE %s),
			COUNT(*) FILTER (WHERE %s),
			COUNT(*) FILTER (WHERE %s),
			COUNT(*) FILTER (WHERE %s)
		FROM %s`,
		schema.CoreSaint.IsActive, schema.CoreSaint.IsUniversal,
		schema.CoreSaint.IsLocal, schema.CoreSaint.IsPatron,
		schema.CoreSaint.Table,
	)

	totals := &counts.Totals
	err := repository.db.QueryRow(context, totalsSQL).
		Scan(&totals.Total, &totals.Active, &totals.Universal, &totals.Local, &totals.Patrons)
	if err != nil {
		return Counts{}, fmt.Errorf("postgres: failed to aggregate saint totals: %w", err)
	}

	byCategory, err := repository.groupCount(context, schema.CoreSaint.Category)
	if err != nil {
		return Counts{}, err
	}
	for key, count := range byCategory {
		counts.ByCategory[Category(key)] = count
	}

	byFeastType, err := repository.groupCount(context, schema.CoreSaint.FeastType)
	if err != nil {
		return Counts{}, err
	}
	for key, count := range byFeastType {
		counts.ByFeastType[FeastType(key)] = count
	}

	return counts, nil
}

// # Write Operations

/*
Create inserts a saint and fills its id and timestamps.

Returns:
  - error: Field error for a duplicate slug or dangling foreign key, else a database error
*/
func (repository *PostgresRepository) Create(context context.Context, saint *Saint) error {
	columns := schema.CoreSaint.WritableColumns()

	sql := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		RETURNING %s, %s, %s`,
		schema.CoreSaint.Table, strings.Join(columns, ", "),
		placeholders(len(columns), 1),
		schema.CoreSaint.ID, schema.CoreSaint.CreatedAt, schema.CoreSaint.UpdatedAt,
	)

	err := repository.db.QueryRow(context, sql, writableValues(saint)...).
		Scan(&saint.ID, &saint.CreatedAt, &saint.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Saint", saintConstraints...)
	}

	return nil
}

// Update overwrites every writable column and refreshes updated_at.
func (repository *PostgresRepository) Update(context context.Context, saint *Saint) error {
	columns := schema.CoreSaint.WritableColumns()

	assignments := make([]string, len(columns))
	for index, name := range columns {
		assignments[index] = fmt.Sprintf("%s = $%d", name, index+1)
	}

	sql := fmt.Sprintf(`
		UPDATE %s
		SET %s, %s = NOW()
		WHERE %s = $%d
		RETURNING %s`,
		schema.CoreSaint.Table,
		strings.Join(assignments, ", "), schema.CoreSaint.UpdatedAt,
		schema.CoreSaint.ID, len(columns)+1,
		schema.CoreSaint.UpdatedAt,
	)

	args := append(writableValues(saint), saint.ID)
	if err := repository.db.QueryRow(context, sql, args...).Scan(&saint.UpdatedAt); err != nil {
		return dberr.Wrap(err, "Saint", saintConstraints...)
	}

	return nil
}

// Delete removes a saint; its patronages cascade.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CoreSaint.Table, schema.CoreSaint.ID)

	tag, err := repository.db.Exec(context, sql, id)
	if err != nil {
		return dberr.Wrap(err, "Saint")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Saint")
	}

	return nil
}

// # Helpers

func (repository *PostgresRepository) query(context context.Context, sql string, args ...any) ([]*Saint, error) {
	rows, err := repository.db.Query(context, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list saints: %w", err)
	}
	defer rows.Close()

	saints := []*Saint{}
	for rows.Next() {
		saint, err := scanSaint(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan saint: %w", err)
		}
		saints = append(saints, saint)
	}

	return saints, rows.Err()
}

func (repository *PostgresRepository) groupCount(context context.Context, groupColumn string) (map[string]int, error) {
	sql := fmt.Sprintf("SELECT %s, COUNT(*) FROM %s GROUP BY %s", groupColumn, schema.CoreSaint.Table, groupColumn)

	rows, err := repository.db.Query(context, sql)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to group saints by %s: %w", groupColumn, err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan %s count: %w", groupColumn, err)
		}
		counts[key] = count
	}

	return counts, rows.Err()
}

// placeholders renders "$start, $start+1, ..." for n values.
func placeholders(n, start int) string {
	marks := make([]string, n)
	for index := range marks {
		marks[index] = fmt.Sprintf("$%d", start+index)
	}
	return strings.Join(marks, ", ")
}

// writableValues lists saint's values in [schema.CoreSaintTable.WritableColumns] order.
func writableValues(saint *Saint) []any {
	return []any{
		saint.Slug, saint.Name, saint.CanonicalName, saint.Description, saint.Biography, saint.Notes,
		saint.FeastDate, saint.FeastDateAlt, saint.BirthDate, saint.DeathDate, saint.CanonizationDate,
		string(saint.Category), string(saint.FeastType),
		saint.IsPatron, saint.IsActive, saint.IsUniversal, saint.IsLocal,
		saint.PopularityScore, saint.PlaceID, saint.BirthPlaceID, saint.DeathPlaceID, saint.RegionID,
	}
}

// # Row Mapping

type rowScanner interface {
	Scan(dest ...any) error
}

// Aliases of the joined summary tables.
const (
	placeAlias      = "pl"
	birthPlaceAlias = "bp"
	deathPlaceAlias = "dp"
	regionAlias     = "rg"
)

func saintSelect() string {
	columns := schema.CoreSaint.Columns()
	selected := make([]string, 0, len(columns)+8)
	for _, name := range columns {
		selected = append(selected, column(name))
	}
	for _, alias := range []string{placeAlias, birthPlaceAlias, deathPlaceAlias} {
		selected = append(selected, alias+"."+schema.GeoPlace.Name, alias+"."+schema.GeoPlace.Slug)
	}
	selected = append(selected, regionAlias+"."+schema.GeoRegion.Name, regionAlias+"."+schema.GeoRegion.Slug)

	join := func(table, alias, idColumn, foreignKey string) string {
		return fmt.Sprintf(" LEFT JOIN %s %s ON %s.%s = %s", table, alias, alias, idColumn, column(foreignKey))
	}

	return fmt.Sprintf("SELECT %s FROM %s %s", strings.Join(selected, ", "), schema.CoreSaint.Table, saintAlias) +
		join(schema.GeoPlace.Table, placeAlias, schema.GeoPlace.ID, schema.CoreSaint.PlaceID) +
		join(schema.GeoPlace.Table, birthPlaceAlias, schema.GeoPlace.ID, schema.CoreSaint.BirthPlaceID) +
		join(schema.GeoPlace.Table, deathPlaceAlias, schema.GeoPlace.ID, schema.CoreSaint.DeathPlaceID) +
		join(schema.GeoRegion.Table, regionAlias, schema.GeoRegion.ID, schema.CoreSaint.RegionID)
}

// summaryColumns receives the name and slug of one joined row.
type summaryColumns struct {
	name, slug *string
}

func (columns summaryColumns) summary(id *int64) *geo.Summary {
	if id == nil || columns.name == nil || columns.slug == nil {
		return nil
	}
	return &geo.Summary{ID: *id, Name: *columns.name, Slug: *columns.slug}
}

func scanSaint(row rowScanner) (*Saint, error) {
	saint := &Saint{}
	var category, feastType string
	var place, birthPlace, deathPlace, region summaryColumns

	err := row.Scan(
		&saint.ID, &saint.Slug, &saint.Name, &saint.CanonicalName,
		&saint.Description, &saint.Biography, &saint.Notes,
		&saint.FeastDate, &saint.FeastDateAlt, &saint.BirthDate, &saint.DeathDate, &saint.CanonizationDate,
		&category, &feastType,
		&saint.IsPatron, &saint.IsActive, &saint.IsUniversal, &saint.IsLocal,
		&saint.PopularityScore,
		&saint.PlaceID, &saint.BirthPlaceID, &saint.DeathPlaceID, &saint.RegionID,
		&saint.CreatedAt, &saint.UpdatedAt,
		&place.name, &place.slug,
		&birthPlace.name, &birthPlace.slug,
		&deathPlace.name, &deathPlace.slug,
		&region.name, &region.slug,
	)
	if err != nil {
		return nil, err
	}

	saint.Category = Category(category)
	saint.FeastType = FeastType(feastType)
	saint.Place = place.summary(saint.PlaceID)
	saint.BirthPlace = birthPlace.summary(saint.BirthPlaceID)
	saint.DeathPlace = deathPlace.summary(saint.DeathPlaceID)
	saint.Region = region.summary(saint.RegionID)

	return saint, nil
}

// # Patronage Store

// PostgresPatronageRepository implements [PatronageRepository] using a pgxpool.
type PostgresPatronageRepository struct {
	db *pgxpool.Pool
}

// NewPostgresPatronageRepository returns a fully wired postgres implementation.
func NewPostgresPatronageRepository(db *pgxpool.Pool) *PostgresPatronageRepository {
	return &PostgresPatronageRepository{db: db}
}

// ListBySaint returns the links of a saint in creation order.
func (repository *PostgresPatronageRepository) ListBySaint(context context.Context, saintID int64) ([]*Patronage, error) {
	table := schema.CoreSaintPatronage
	sql := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC, %s ASC`,
		strings.Join(table.Columns(), ", "),
		table.Table,
		table.SaintID,
		table.CreatedAt, table.ID,
	)

	rows, err := repository.db.Query(context, sql, saintID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list patronages: %w", err)
	}
	defer rows.Close()

	patronages := []*Patronage{}
	for rows.Next() {
		patronage := &Patronage{}
		var kind string
		if err := rows.Scan(&patronage.ID, &patronage.SaintID, &kind, &patronage.Target.ID, &patronage.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan patronage: %w", err)
		}
		patronage.Target.Kind = TargetKind(kind)
		patronages = append(patronages, patronage)
	}

	return patronages, rows.Err()
}

// Create inserts a link and fills its id and creation time.
func (repository *PostgresPatronageRepository) Create(context context.Context, patronage *Patronage) error {
	table := schema.CoreSaintPatronage
	sql := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s`,
		table.Table, table.SaintID, table.TargetKind, table.TargetID,
		table.ID, table.CreatedAt,
	)

	err := repository.db.QueryRow(context, sql, patronage.SaintID, string(patronage.Target.Kind), patronage.Target.ID).
		Scan(&patronage.ID, &patronage.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "Patronage",
			dberr.Constraint{Name: table.TargetKey, Field: FieldTarget, Message: MessagePatronageTaken},
		)
	}

	return nil
}

// Delete removes one link of a saint.
func (repository *PostgresPatronageRepository) Delete(context context.Context, saintID, patronageID int64) error {
	table := schema.CoreSaintPatronage
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2", table.Table, table.ID, table.SaintID)

	tag, err := repository.db.Exec(context, sql, patronageID, saintID)
	if err != nil {
		return dberr.Wrap(err, "Patronage")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Patronage")
	}

	return nil
}
