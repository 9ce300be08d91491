// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package saint

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/sanctorale/sanctorale/internal/platform/authz"
	"github.com/sanctorale/sanctorale/internal/platform/middleware"
	requestutil "github.com/sanctorale/sanctorale/internal/platform/request"
	"github.com/sanctorale/sanctorale/internal/platform/respond"
	"github.com/sanctorale/sanctorale/pkg/pagination"
)

// Handler implements the HTTP layer for the saint catalogue.
// Reads are public; every mutation passes the permission gate first.
type Handler struct {
	service *Service
	checker middleware.PermissionChecker
}

// NewHandler constructs a new saint [Handler].
func NewHandler(service *Service, checker middleware.PermissionChecker) *Handler {
	return &Handler{service: service, checker: checker}
}

// Routes returns a [chi.Router] configured with the saint domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	can := func(action authz.Action, resource string) func(http.Handler) http.Handler {
		return middleware.RequirePermission(handler.checker, action, resource)
	}

	// # Discovery Endpoints
	router.Get("/", handler.list)
	router.Get("/today", handler.today)
	router.Get("/by-date", handler.byDate)
	router.Get("/by-category", handler.byCategory)
	router.Get("/search", handler.search)
	router.Get("/stats", handler.stats)
	router.Get("/{id}", handler.get)

	// # Curation Endpoints
	router.With(can(authz.ActionCreate, Resource)).Post("/", handler.create)
	router.With(can(authz.ActionEdit, Resource)).Put("/{id}", handler.update)
	router.With(can(authz.ActionEdit, Resource)).Patch("/{id}", handler.update)
	router.With(can(authz.ActionDelete, Resource)).Delete("/{id}", handler.delete)

	// # Patronage Endpoints
	router.Get("/{id}/patronages", handler.listPatronages)
	router.With(can(authz.ActionCreate, PatronageResource)).Post("/{id}/patronages", handler.addPatronage)
	router.With(can(authz.ActionDelete, PatronageResource)).Delete("/{id}/patronages/{patronageID}", handler.removePatronage)

	return router
}

// # Discovery Handlers

/*
GET /api/v1/saints.

Request:
  - search, category, feast_type, is_patron, is_active: filters
  - sort_by, sort_direction: ordering
  - page, per_page: int

Response:
  - 200: []Saint: Paginated list
  - 400: Validation: Malformed filter
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params, err := ParseListParams(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	saints, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.New(pagination.RequestURL(request), params.Page, total, len(saints))
	respond.Paginated(writer, "Saints retrieved successfully", saints, page)
}

/*
GET /api/v1/saints/today.

Response:
  - 200: Saint or null
*/
func (handler *Handler) today(writer http.ResponseWriter, request *http.Request) {
	saint, err := handler.service.Today(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if saint == nil {
		respond.OK(writer, "No saint celebrated today", nil)
		return
	}
	respond.OK(writer, "Saint of the day retrieved successfully", saint)
}

/*
GET /api/v1/saints/by-date.

Request:
  - date: YYYY-MM-DD (required)

Response:
  - 200: []Saint: Saints of that month and day, with count
  - 400: Validation: Missing or malformed date
*/
func (handler *Handler) byDate(writer http.ResponseWriter, request *http.Request) {
	date, err := ParseDateParam(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	saints, err := handler.service.ByDate(request.Context(), date)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Saints retrieved successfully", saints, respond.WithCount(len(saints)))
}

/*
GET /api/v1/saints/by-category.

Request:
  - category: enum (required)
  - page, per_page: int

Response:
  - 200: []Saint: Paginated list
  - 400: Validation: Missing or unknown category
*/
func (handler *Handler) byCategory(writer http.ResponseWriter, request *http.Request) {
	params, err := ParseCategoryParams(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	saints, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.New(pagination.RequestURL(request), params.Page, total, len(saints))
	respond.Paginated(writer, "Saints retrieved successfully", saints, page)
}

/*
GET /api/v1/saints/search.

Request:
  - q, category, is_patron, min_popularity: combinable filters
  - page, per_page: int

Response:
  - 200: []Saint: Paginated list with filters_applied
  - 400: Validation: Malformed filter
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	params, err := ParseSearchParams(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	saints, total, err := handler.service.Search(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.New(pagination.RequestURL(request), params.Page, total, len(saints))
	respond.Paginated(writer, "Search completed successfully", saints, page, respond.WithFilters(params.Applied))
}

/*
GET /api/v1/saints/stats.

Response:
  - 200: Snapshot: Cached aggregate view
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	payload, err := handler.service.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Statistics retrieved successfully", json.RawMessage(payload))
}

/*
GET /api/v1/saints/{id}.

Response:
  - 200: Saint: Success
  - 404: ErrNotFound: Saint missing or id not numeric
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	saintID, err := requestutil.ID(request, "id", "Saint")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	saint, err := handler.service.Get(request.Context(), saintID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Saint retrieved successfully", saint)
}

// # Curation Handlers

/*
POST /api/v1/saints.

Request (Body):
  - SaintInput: name, feast_date, category, feast_type required

Response:
  - 201: Saint: Created
  - 400: Validation: Invalid payload, duplicate slug or lifespan order
  - 401/403: Gate failures
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input SaintInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	saint, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Saint created successfully", saint)
}

/*
PUT|PATCH /api/v1/saints/{id}.

Request (Body):
  - SaintInput: Only supplied fields change

Response:
  - 200: Saint: Updated
  - 400: Validation
  - 404: ErrNotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	saintID, err := requestutil.ID(request, "id", "Saint")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SaintInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	saint, err := handler.service.Update(request.Context(), saintID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Saint updated successfully", saint)
}

/*
DELETE /api/v1/saints/{id}.

Response:
  - 200: null data
  - 404: ErrNotFound
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	saintID, err := requestutil.ID(request, "id", "Saint")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), saintID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Saint deleted successfully", nil)
}

// # Patronage Handlers

// GET /api/v1/saints/{id}/patronages.
func (handler *Handler) listPatronages(writer http.ResponseWriter, request *http.Request) {
	saintID, err := requestutil.ID(request, "id", "Saint")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patronages, err := handler.service.ListPatronages(request.Context(), saintID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Patronages retrieved successfully", patronages, respond.WithCount(len(patronages)))
}

/*
POST /api/v1/saints/{id}/patronages.

Request (Body):
  - target_kind: place | region
  - target_id: int

Response:
  - 201: Patronage: Created
  - 400: Validation: Unknown kind, missing target or duplicate link
  - 404: ErrNotFound: Saint missing
*/
func (handler *Handler) addPatronage(writer http.ResponseWriter, request *http.Request) {
	saintID, err := requestutil.ID(request, "id", "Saint")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PatronageInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patronage, err := handler.service.AddPatronage(request.Context(), saintID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Patronage created successfully", patronage)
}

// DELETE /api/v1/saints/{id}/patronages/{patronageID}.
func (handler *Handler) removePatronage(writer http.ResponseWriter, request *http.Request) {
	saintID, err := requestutil.ID(request, "id", "Saint")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patronageID, err := requestutil.ID(request, "patronageID", "Patronage")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemovePatronage(request.Context(), saintID, patronageID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Patronage deleted successfully", nil)
}
