// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
HTTP interface for the flag queue.

# Routing Strategy

  - User: raising a flag (POST /flags), any signed-in account.
  - Admin: queue listing and resolution (/admin/flags), requiring
    [sec.RoleAdmin].
*/
package moderation

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

// Handler implements the HTTP layer for flags.
type Handler struct {
	service *Service
}

// NewHandler constructs a new moderation [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ReportRoutes returns the reporting endpoint, mounted at /flags.
func (handler *Handler) ReportRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Post("/", handler.raiseFlag)
	return router
}

// AdminRoutes returns the queue endpoints, mounted at /admin/flags.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listFlags)
	router.Get("/{id}", handler.getFlag)
	router.Patch("/{id}", handler.resolveFlag)
	router.Delete("/{id}", handler.removeFlag)

	return router
}

// # Endpoints

/*
POST /flags.

Description: Files an escalation against a recipe, review, user, or chef
profile. The target must exist at this moment; its title and a content
snippet are frozen onto the flag.

Request:
  - body: {targetKind, targetId, reason}

Response:
  - 201: Flag
  - 404: ErrNotFound: Target does not exist
  - 422: ErrValidation: Unknown kind, bad ID, or missing reason
*/
func (handler *Handler) raiseFlag(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input RaiseInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.Raise(request.Context(), claims.UserID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
GET /admin/flags.

Description: Lists the flag queue, newest first, optionally filtered by
status.

Request:
  - status: string (open, dismissed, removed)
  - limit: int
  - page: int

Response:
  - 200: []Flag
*/
func (handler *Handler) listFlags(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	flags, total, err := handler.service.List(request.Context(), request.URL.Query().Get("status"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, flags, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /admin/flags/{id}.

Response:
  - 200: Flag: Full resolution history
  - 404: ErrNotFound
*/
func (handler *Handler) getFlag(writer http.ResponseWriter, request *http.Request) {
	entity, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
PATCH /admin/flags/{id}.

Description: Applies a resolution decision without touching the target:
dismissed and removed close the flag, open re-opens it. Closing records
the handler and timestamp; re-opening clears them.

Request:
  - body: {status, actionNote?}

Response:
  - 200: Flag: Post-decision state
  - 409: ErrConflict: The decision does not apply to the current status
*/
func (handler *Handler) resolveFlag(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ResolveInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.SetStatus(request.Context(), claims.UserID, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
DELETE /admin/flags/{id}?cascade=bool.

Description: Resolves the flag to removed. With cascade=true the flagged
target is hard-deleted through its kind's deletion routine; a target that
is already gone is tolerated and the resolution still succeeds.

Response:
  - 200: Flag: The removed flag
  - 409: ErrConflict: Flag already resolved
*/
func (handler *Handler) removeFlag(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cascade := convert.ToBool(request.URL.Query().Get("cascade"))

	entity, err := handler.service.Remove(request.Context(), claims.UserID, requestutil.ID(request, "id"), cascade, request.URL.Query().Get("note"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}
