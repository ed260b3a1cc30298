// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package recipe

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/middleware"
	requestutil "github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/request"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/respond"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/sec"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/pkg/pagination"
)

// AdminRoutes returns the moderation endpoints, mounted at /admin/recipes.
// All of them require [sec.RoleAdmin].
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listForReview)
	router.Patch("/{id}/status", handler.changeStatus)
	router.Delete("/{id}", handler.hardDeleteRecipe)

	return router
}

// # Admin Endpoints

/*
GET /admin/recipes.

Description: Lists recipes for the moderation queue, filtered by status.
An absent status parameter returns recipes in every status.

Request:
  - status: string (draft, pending, approved, rejected, archived)
  - limit: int
  - page: int

Response:
  - 200: []Recipe
  - 422: ErrValidation: Unknown status value
*/
func (handler *Handler) listForReview(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	recipes, total, err := handler.service.ListByStatus(request.Context(), request.URL.Query().Get("status"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, recipes, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// changeStatusRequest is the inbound payload for a moderation decision.
type changeStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

/*
PATCH /admin/recipes/{id}/status.

Description: Executes a moderation decision. Approvals are only legal from
pending or rejected, rejections only from pending or approved; anything
else is a conflict. The optional note is stored on rejection and shown to
the owning chef.

Request:
  - body: {status, note?}

Response:
  - 200: Recipe: The recipe after the transition
  - 409: ErrConflict: The recipe is not in a state this decision applies to
  - 422: ErrValidation: Unknown status value
*/
func (handler *Handler) changeStatus(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changeStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.ChangeStatus(request.Context(), claims.UserID, requestutil.ID(request, "id"), input.Status, input.Note)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
DELETE /admin/recipes/{id}.

Description: Irreversibly removes a recipe, its reviews, and their replies.
Distinct from the chef's archive, which keeps everything.

Response:
  - 200: {success: true}
  - 404: ErrNotFound
*/
func (handler *Handler) hardDeleteRecipe(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.HardDelete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"success": true})
}
