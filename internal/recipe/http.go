// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
HTTP interface for recipe discovery and chef authoring.

# Routing Strategy

  - Public: catalogue browsing restricted to approved recipes
    (GET /recipes, GET /recipes/{identifier}) plus engagement actions
    for signed-in users.
  - Chef: submission and management of the caller's own recipes
    (POST/PATCH/DELETE under /chef/recipes), requiring [sec.RoleChef].

The handler translates between the web/JSON layer and the domain [Service].
*/
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

// # Handler Implementation

// Handler implements the HTTP layer for recipe discovery and authoring.
type Handler struct {
	service *Service
}

// NewHandler constructs a new recipe [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// PublicRoutes returns the catalogue endpoints, mounted at /recipes.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()

	// ## Discovery
	// Review sub-routes under /recipes/{id}/reviews are mounted by the
	// review handler in the server.
	router.Get("/", handler.listRecipes)
	router.Get("/{identifier}", handler.getRecipe)

	// ## Engagement (signed-in users)
	router.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)

		user.Post("/{id}/save", handler.saveRecipe)
		user.Post("/{id}/list-add", handler.addToShoppingList)
	})

	return router
}

// ChefRoutes returns the authoring endpoints, mounted at /chef/recipes.
// All of them require at least [sec.RoleChef].
func (handler *Handler) ChefRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleChef))

	router.Get("/", handler.listOwnRecipes)
	router.Post("/", handler.createRecipe)
	router.Patch("/{id}", handler.updateRecipe)
	router.Delete("/{id}", handler.archiveRecipe)

	return router
}

// # Public Endpoints

/*
GET /recipes.

Description: Retrieves a paginated list of approved recipes. Filters by
cuisine, dietary tag, category slug, and a title search term.

Request:
  - q: string (title search)
  - cuisine: string
  - dietary_tag: string
  - category: string (category slug)
  - sort: string (latest, rating, popular)
  - limit: int
  - page: int

Response:
  - 200: []Recipe: Paginated list of approved recipes
*/
func (handler *Handler) listRecipes(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query:        queryParams.Get("q"),
		Cuisine:      queryParams.Get("cuisine"),
		DietaryTag:   queryParams.Get("dietary_tag"),
		CategorySlug: queryParams.Get("category"),
		Sort:         queryParams.Get("sort"),
	}

	recipes, total, err := handler.service.ListPublic(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, recipes, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /recipes/{identifier}.

Description: Retrieves a single recipe by UUID or slug. Non-approved
recipes are visible only to their owning chef and administrators; everyone
else gets a 404. A successful public read counts as a view.

Response:
  - 200: Recipe
  - 404: ErrNotFound: Recipe not found or not visible to the caller
*/
func (handler *Handler) getRecipe(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	var viewerID string
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	entity, err := handler.service.Get(request.Context(), identifier, viewerID, requestutil.IsAdmin(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
POST /recipes/{id}/save.

Description: Records that the caller saved the recipe to their collection.

Response:
  - 200: {saves: int64}: Counter value after the increment
*/
func (handler *Handler) saveRecipe(writer http.ResponseWriter, request *http.Request) {
	recipeID := requestutil.ID(request, "id")

	count, err := handler.service.RecordEngagement(request.Context(), CounterSaves, recipeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{"saves": count})
}

/*
POST /recipes/{id}/list-add.

Description: Records that the caller added the recipe's ingredients to
their shopping list.

Response:
  - 200: {list_adds: int64}: Counter value after the increment
*/
func (handler *Handler) addToShoppingList(writer http.ResponseWriter, request *http.Request) {
	recipeID := requestutil.ID(request, "id")

	count, err := handler.service.RecordEngagement(request.Context(), CounterListAdds, recipeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{"list_adds": count})
}

// # Chef Endpoints

// createRecipeResponse is the minimal acknowledgement for a submission.
type createRecipeResponse struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

/*
POST /chef/recipes.

Description: Submits a new recipe for moderation. The recipe enters the
queue in pending status regardless of payload contents.

Request:
  - body: CreateInput

Response:
  - 201: {id, status}: The new recipe's ID and its (pending) status
  - 422: ErrValidation: Missing title, ingredients, or steps
*/
func (handler *Handler) createRecipe(writer http.ResponseWriter, request *http.Request) {
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

	entity, err := handler.service.Create(request.Context(), claims.UserID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, createRecipeResponse{ID: entity.ID, Status: entity.Status})
}

/*
PATCH /chef/recipes/{id}.

Description: Applies a partial edit to an owned recipe. Edits to major
fields while approved send the recipe back to the moderation queue.

Request:
  - body: UpdateInput (absent fields untouched)

Response:
  - 200: Recipe: The updated entity (status may have regressed to pending)
  - 404: ErrNotFound: Recipe missing or not owned by the caller
*/
func (handler *Handler) updateRecipe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.Update(request.Context(), claims.UserID, requestutil.IsAdmin(request), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
DELETE /chef/recipes/{id}.

Description: Archives an owned recipe. The record and its reviews persist,
but the recipe drops out of all public listings. Not reversible through
the API.

Response:
  - 200: {success: true}
  - 404: ErrNotFound: Recipe missing or not owned by the caller
*/
func (handler *Handler) archiveRecipe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Archive(request.Context(), claims.UserID, requestutil.IsAdmin(request), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"success": true})
}

/*
GET /chef/recipes.

Description: Lists the caller's own recipes in every status, including
rejected ones together with their rejection notes.

Response:
  - 200: []Recipe
*/
func (handler *Handler) listOwnRecipes(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	recipes, total, err := handler.service.ListOwn(request.Context(), claims.UserID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, recipes, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
