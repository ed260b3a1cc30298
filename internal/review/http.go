// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
HTTP interface for reviews and reply threads.

# Routing Strategy

  - Public: reading a recipe's review thread (GET /recipes/{id}/reviews).
  - User: posting a review (POST /user/recipes/{id}/reviews), any
    signed-in account.
  - Chef: replying to a review on an owned recipe
    (POST /chef/recipes/{id}/replies), requiring [sec.RoleChef].
  - Admin: changing a review's moderation visibility
    (PATCH /admin/reviews/{id}/status), requiring [sec.RoleAdmin].
*/
package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/middleware"
	requestutil "github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/request"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/respond"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/sec"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for reviews and replies.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublic attaches the read endpoints onto the /recipes router.
// Reviews share the recipe prefix, so these routes join the recipe
// handler's router rather than owning a mount point.
func (handler *Handler) RegisterPublic(router chi.Router) {
	router.Get("/{id}/reviews", handler.listReviews)
}

// UserRoutes returns the reviewer endpoints, mounted at /user/recipes.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Post("/{id}/reviews", handler.addReview)
	return router
}

// RegisterChef attaches the reply endpoint onto the /chef/recipes router.
func (handler *Handler) RegisterChef(router chi.Router) {
	router.With(middleware.RequireRole(sec.RoleChef)).Post("/{id}/replies", handler.addReply)
}

// AdminRoutes returns the moderation endpoints, mounted at /admin/reviews.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Patch("/{id}/status", handler.setStatus)

	return router
}

// # Endpoints

/*
GET /recipes/{id}/reviews.

Description: Retrieves a recipe's reviews, newest first, each with its
reply thread oldest first. Removed reviews are excluded.

Response:
  - 200: []Review: Paginated reviews with replies
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListByRecipe(request.Context(), requestutil.ID(request, "id"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /user/recipes/{id}/reviews.

Description: Posts a rating (1-5) and a comment on an approved recipe.
The recipe's rating average is updated in the same transaction.

Request:
  - body: {rating, comment}

Response:
  - 201: Review
  - 404: ErrNotFound: Recipe does not exist
  - 422: ErrValidation / ErrUnprocessable: Rating out of range, or recipe
    not open for reviews
*/
func (handler *Handler) addReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.Add(request.Context(), claims.UserID, claims.Username, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
POST /chef/recipes/{id}/replies.

Description: Appends a chef's answer to a review on their own recipe.
Replies are append-only.

Request:
  - body: {reviewId, comment}

Response:
  - 201: Reply
  - 404: ErrNotFound: Review missing, not on this recipe, or recipe not
    owned by the caller
*/
func (handler *Handler) addReply(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReplyInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reply, err := handler.service.Reply(request.Context(), claims.UserID, claims.Username, requestutil.IsAdmin(request), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, reply)
}

// setStatusRequest is the inbound payload for a visibility decision.
type setStatusRequest struct {
	Status string `json:"status"`
}

/*
PATCH /admin/reviews/{id}/status.

Description: Sets a review's moderation visibility (visible, removed,
flagged). The recipe's rating average is not recomputed.

Request:
  - body: {status}

Response:
  - 200: {success: true}
  - 400: ErrValidation: Unknown status value
  - 404: ErrNotFound: Review does not exist
*/
func (handler *Handler) setStatus(writer http.ResponseWriter, request *http.Request) {
	var input setStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetStatus(request.Context(), requestutil.ID(request, "id"), Status(input.Status)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"success": true})
}
