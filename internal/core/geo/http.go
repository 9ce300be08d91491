// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package geo

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/sanctorale/sanctorale/internal/platform/request"
	"github.com/sanctorale/sanctorale/internal/platform/respond"
	"github.com/sanctorale/sanctorale/pkg/pagination"
)

// Handler implements the HTTP layer for geography reference data.
// Every endpoint is public and read-only.
type Handler struct {
	service *Service
}

// NewHandler constructs a new geo [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the geo domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// # Regions Endpoints
	router.Get("/regions", handler.listRegions)
	router.Get("/regions/{id}", handler.getRegion)

	// # Places Endpoints
	router.Get("/places", handler.listPlaces)
	router.Get("/places/{id}", handler.getPlace)

	return router
}

/*
GET /api/v1/regions.

Response:
  - 200: []Region: Success, with count
*/
func (handler *Handler) listRegions(writer http.ResponseWriter, request *http.Request) {
	regions, err := handler.service.ListRegions(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Regions retrieved successfully", regions, respond.WithCount(len(regions)))
}

/*
GET /api/v1/regions/{id}.

Response:
  - 200: Region: Success
  - 404: ErrNotFound: Region missing
*/
func (handler *Handler) getRegion(writer http.ResponseWriter, request *http.Request) {
	regionID, err := requestutil.ID(request, "id", "Region")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	region, err := handler.service.GetRegion(request.Context(), regionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Region retrieved successfully", region)
}

/*
GET /api/v1/places.

Request:
  - q: string (Name search)
  - region_id: int
  - page, per_page: int

Response:
  - 200: []Place: Paginated list
  - 400: Validation: Malformed filter
*/
func (handler *Handler) listPlaces(writer http.ResponseWriter, request *http.Request) {
	filter, params, err := ParsePlaceQuery(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	places, total, err := handler.service.ListPlaces(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.New(pagination.RequestURL(request), params, total, len(places))
	respond.Paginated(writer, "Places retrieved successfully", places, page)
}

/*
GET /api/v1/places/{id}.

Response:
  - 200: Place: Success
  - 404: ErrNotFound: Place missing
*/
func (handler *Handler) getPlace(writer http.ResponseWriter, request *http.Request) {
	placeID, err := requestutil.ID(request, "id", "Place")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	place, err := handler.service.GetPlace(request.Context(), placeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Place retrieved successfully", place)
}
