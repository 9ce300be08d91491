// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sanctorale/sanctorale/internal/platform/apperr"
	"github.com/sanctorale/sanctorale/internal/platform/ctxutil"
	"github.com/sanctorale/sanctorale/internal/platform/validate"
	"github.com/sanctorale/sanctorale/pkg/calendar"
	"github.com/sanctorale/sanctorale/pkg/pagination"
	"github.com/sanctorale/sanctorale/pkg/slug"
)

// maxSlugAttempts bounds the suffix search of a generated slug.
const maxSlugAttempts = 100

// ReferenceChecker checks the foreign keys a saint may carry.
type ReferenceChecker interface {
	PlaceExists(context context.Context, id int64) (bool, error)
	RegionExists(context context.Context, id int64) (bool, error)
}

// Dependencies groups everything the saint [Service] needs.
type Dependencies struct {
	Saints     Repository
	Patronages PatronageRepository
	References ReferenceChecker
	Targets    *TargetRegistry

	// Cache holds the stats snapshot for CacheTTL.
	Cache    StatsCache
	CacheTTL time.Duration

	// Location defines "today"; Clock defaults to time.Now.
	Location *time.Location
	Clock    func() time.Time

	Logger *slog.Logger
}

// # Service Layer

// Service orchestrates the business logic of the saint catalogue.
type Service struct {
	repo       Repository
	patronages PatronageRepository
	references ReferenceChecker
	targets    *TargetRegistry
	stats      *statsAggregator
	location   *time.Location
	clock      func() time.Time
	logger     *slog.Logger
}

// NewService constructs a new saint [Service].
func NewService(deps Dependencies) *Service {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Cache == nil {
		deps.Cache = NewMemoryStatsCache(deps.Clock)
	}
	if deps.Targets == nil {
		deps.Targets = NewTargetRegistry()
	}

	return &Service{
		repo:       deps.Saints,
		patronages: deps.Patronages,
		references: deps.References,
		targets:    deps.Targets,
		location:   deps.Location,
		clock:      deps.Clock,
		logger:     deps.Logger,
		stats: &statsAggregator{
			repo:     deps.Saints,
			cache:    deps.Cache,
			ttl:      deps.CacheTTL,
			location: deps.Location,
			clock:    deps.Clock,
			logger:   deps.Logger,
		},
	}
}

// today returns the current calendar day in the configured zone.
func (service *Service) today() time.Time {
	return calendar.Today(service.clock(), service.location)
}

// # Discovery

/*
List retrieves a filtered, sorted page of saints.

Parameters:
  - context: context.Context
  - params: ListParams (normalized filter and page)

Returns:
  - []*Saint: Page with days_until_feast filled
  - int: Total count of matches
  - error: Repository errors
*/
func (service *Service) List(context context.Context, params ListParams) ([]*Saint, int, error) {
	saints, total, err := service.repo.List(context, params.Filter, params.Page)
	if err != nil {
		return nil, 0, err
	}
	return decorate(saints, service.today()), total, nil
}

// Get retrieves a saint by id.
func (service *Service) Get(context context.Context, id int64) (*Saint, error) {
	saint, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	decorate([]*Saint{saint}, service.today())
	return saint, nil
}

/*
Today returns the most popular active saint celebrated today.

Description: On Feb 28 of a common year, Feb 29 feasts are celebrated too.

Returns:
  - *Saint: The top entry, or nil when nobody is celebrated today
  - error: Repository errors
*/
func (service *Service) Today(context context.Context) (*Saint, error) {
	today := service.today()
	active := true

	saints, _, err := service.repo.List(context, Filter{
		IsActive:  &active,
		MonthDays: calendar.ObservedOn(today),
		Sort:      Sort{Field: SortPopularityScore, Direction: Desc},
	}, pagination.Params{Page: 1, PerPage: 1})
	if err != nil {
		return nil, err
	}

	if len(saints) == 0 {
		return nil, nil
	}
	return decorate(saints, today)[0], nil
}

// ByDate returns every saint celebrated on date, matching its month and day.
// On Feb 28 of a common year the Feb 29 feasts are included, as in [Service.Today].
func (service *Service) ByDate(context context.Context, date time.Time) ([]*Saint, error) {
	saints, err := service.repo.ListAll(context, Filter{
		MonthDays: calendar.ObservedOn(date),
		Sort:      Sort{Field: SortPopularityScore, Direction: Desc},
	})
	if err != nil {
		return nil, err
	}
	return decorate(saints, service.today()), nil
}

// Search runs a combinable search; an empty term matches every row.
func (service *Service) Search(context context.Context, params SearchParams) ([]*Saint, int, error) {
	return service.List(context, params.ListParams)
}

// Stats returns the encoded stats snapshot, served from cache within its TTL.
func (service *Service) Stats(context context.Context) ([]byte, error) {
	return service.stats.Snapshot(context)
}

// # Curation

/*
Create validates input and persists a new saint.

Description: Required fields, enumerations, dates and the lifespan order are
checked first; then the slug (generated from the name when absent) and the
foreign keys are checked against the store. Nothing is written unless every
check passes.

Parameters:
  - context: context.Context
  - input: SaintInput

Returns:
  - *Saint: The stored row with its summaries
  - error: Validation or persistence errors
*/
func (service *Service) Create(context context.Context, input SaintInput) (*Saint, error) {
	saint := newSaint()
	validator := input.Apply(saint, true)

	// Slug identity
	if supplied, ok := input.SuppliedSlug(); ok {
		if err := service.checkSlug(context, validator, supplied, 0); err != nil {
			return nil, err
		}
	} else if !validator.HasFieldError(FieldName) {
		generated, err := service.generateSlug(context, saint.Name)
		if err != nil {
			return nil, err
		}
		saint.Slug = generated
	}

	// Foreign keys
	if err := service.checkReferences(context, validator, input.references()); err != nil {
		return nil, err
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, saint); err != nil {
		return nil, err
	}
	service.stats.Invalidate(context)

	service.logger.InfoContext(context, "saint_created",
		slog.Int64("saint_id", saint.ID),
		slog.String("slug", saint.Slug),
		slog.String("actor", ctxutil.Actor(context)),
	)

	return service.Get(context, saint.ID)
}

/*
Update applies a partial update to an existing saint.

Description: Only supplied fields are validated; the lifespan order is
checked on the merged row and slug uniqueness ignores the row itself.

Parameters:
  - context: context.Context
  - id: int64
  - input: SaintInput

Returns:
  - *Saint: The updated row
  - error: apperr.NotFound, validation or persistence errors
*/
func (service *Service) Update(context context.Context, id int64, input SaintInput) (*Saint, error) {
	existing, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	validator := input.Apply(&merged, false)

	if supplied, ok := input.SuppliedSlug(); ok && supplied != existing.Slug {
		if err := service.checkSlug(context, validator, supplied, id); err != nil {
			return nil, err
		}
	}

	if err := service.checkReferences(context, validator, input.references()); err != nil {
		return nil, err
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, &merged); err != nil {
		return nil, err
	}
	service.stats.Invalidate(context)

	service.logger.InfoContext(context, "saint_updated",
		slog.Int64("saint_id", id),
		slog.String("actor", ctxutil.Actor(context)),
	)

	return service.Get(context, id)
}

// Delete permanently removes a saint and its patronages.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}
	service.stats.Invalidate(context)

	service.logger.InfoContext(context, "saint_deleted",
		slog.Int64("saint_id", id),
		slog.String("actor", ctxutil.Actor(context)),
	)
	return nil
}

// # Patronage

// ListPatronages returns the patronages of a saint with resolved targets.
func (service *Service) ListPatronages(context context.Context, saintID int64) ([]*Patronage, error) {
	if _, err := service.repo.FindByID(context, saintID); err != nil {
		return nil, err
	}

	patronages, err := service.patronages.ListBySaint(context, saintID)
	if err != nil {
		return nil, err
	}

	for _, patronage := range patronages {
		resolved, err := service.targets.Resolve(context, patronage.Target)
		if err != nil {
			if !isNotFound(err) && !isValidation(err) {
				return nil, err
			}
			// Keep the bare reference when the target row is gone.
			resolved = &ResolvedTarget{Target: patronage.Target}
		}
		patronage.Resolved = resolved
	}

	return patronages, nil
}

/*
AddPatronage links a saint to a place or region.

Returns:
  - *Patronage: The created link with its resolved target
  - error: 404 for an unknown saint, 400 for an unsupported kind, missing
    target or duplicate link
*/
func (service *Service) AddPatronage(context context.Context, saintID int64, input PatronageInput) (*Patronage, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTargetKind, input.TargetKind)
	validator.Custom(FieldTargetID, input.TargetID < 1, fmt.Sprintf(messageSelectedFormat, FieldTargetID))

	kind := TargetKind(input.TargetKind)
	if input.TargetKind != "" && !service.targets.Supports(kind) {
		validator.OneOf(FieldTargetKind, input.TargetKind, service.targets.Kinds()...)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.FindByID(context, saintID); err != nil {
		return nil, err
	}

	target := Target{Kind: kind, ID: input.TargetID}
	resolved, err := service.targets.Resolve(context, target)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.FieldInvalid(FieldTargetID, fmt.Sprintf(messageSelectedFormat, FieldTargetID))
		}
		return nil, err
	}

	patronage := &Patronage{SaintID: saintID, Target: target, Resolved: resolved}
	if err := service.patronages.Create(context, patronage); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "patronage_created",
		slog.Int64("saint_id", saintID),
		slog.String("target", target.String()),
		slog.String("actor", ctxutil.Actor(context)),
	)

	return patronage, nil
}

// RemovePatronage deletes one link of a saint.
func (service *Service) RemovePatronage(context context.Context, saintID, patronageID int64) error {
	if err := service.patronages.Delete(context, saintID, patronageID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "patronage_deleted",
		slog.Int64("saint_id", saintID),
		slog.Int64("patronage_id", patronageID),
		slog.String("actor", ctxutil.Actor(context)),
	)
	return nil
}

// # Validation Checks

// checkSlug adds the uniqueness error when another row owns value.
func (service *Service) checkSlug(context context.Context, validator *validate.Validator, value string, excludeID int64) error {
	if validator.HasFieldError(FieldSlug) {
		return nil
	}

	taken, err := service.repo.SlugExists(context, value, excludeID)
	if err != nil {
		return err
	}
	validator.Custom(FieldSlug, taken, MessageSlugTaken)
	return nil
}

// generateSlug derives a free slug from name, appending -2, -3, ... on collision.
func (service *Service) generateSlug(context context.Context, name string) (string, error) {
	base := slug.From(name)
	if base == "" {
		base = Resource
	}

	candidate := base
	for attempt := 2; attempt <= maxSlugAttempts; attempt++ {
		taken, err := service.repo.SlugExists(context, candidate, 0)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = slug.WithSuffix(base, attempt)
	}

	return "", apperr.FieldInvalid(FieldSlug, MessageSlugTaken)
}

// checkReferences adds an error for every foreign key that points at no row.
func (service *Service) checkReferences(context context.Context, validator *validate.Validator, refs []reference) error {
	for _, ref := range refs {
		var found bool
		var err error

		switch ref.kind {
		case referenceRegion:
			found, err = service.references.RegionExists(context, ref.id)
		default:
			found, err = service.references.PlaceExists(context, ref.id)
		}
		if err != nil {
			return err
		}

		validator.Custom(ref.field, !found, fmt.Sprintf(messageSelectedFormat, ref.field))
	}
	return nil
}

func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.HTTPStatus == http.StatusNotFound
}

func isValidation(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.HTTPStatus == http.StatusBadRequest
}
