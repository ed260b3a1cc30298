// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
HTTP interface for taxonomy curation.

# Routing Strategy

  - Admin: all curation endpoints live under /admin/categories and
    require [sec.RoleAdmin]. Public taxonomy browsing is an external
    collaborator surface and is not served here.
*/
package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/middleware"
	requestutil "github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/request"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/respond"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/sec"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/pkg/convert"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for taxonomy curation.
type Handler struct {
	service *Service
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AdminRoutes returns the curation endpoints, mounted at /admin/categories.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listCategories)
	router.Post("/", handler.createCategory)
	router.Patch("/{id}", handler.renameCategory)
	router.Delete("/{id}", handler.deleteCategory)

	return router
}

// # Endpoints

/*
GET /admin/categories.

Request:
  - type: string (category, cuisine, dietary)
  - limit: int
  - page: int

Response:
  - 200: []Category
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	categories, total, err := handler.service.List(request.Context(), request.URL.Query().Get("type"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /admin/categories.

Description: Creates a taxonomy entry explicitly. A (label, type) pair
that normalizes to an existing slug is a conflict.

Request:
  - body: {label, type}

Response:
  - 201: Category
  - 409: ErrConflict: Slug already taken within the type
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
PATCH /admin/categories/{id}.

Description: Renames an entry, regenerating its slug. Recipes referencing
the entry follow along automatically.

Request:
  - body: {label}

Response:
  - 200: Category: With the regenerated slug
  - 409: ErrConflict: New slug collides within the type
*/
func (handler *Handler) renameCategory(writer http.ResponseWriter, request *http.Request) {
	var input RenameInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.Rename(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
DELETE /admin/categories/{id}?force=bool.

Description: Deletes an entry. Without force the call refuses when any
recipe references the entry, reporting the in-use count; with force the
references are dropped too.

Response:
  - 200: {success: true}
  - 409: ErrConflict: Entry in use and force not requested
*/
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	force := convert.ToBool(request.URL.Query().Get("force"))

	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id"), force); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"success": true})
}
