// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/middleware"
	requestutil "github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/request"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/respond"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/sec"
)

// Handler implements the administrator HTTP surface for accounts.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AdminRoutes returns the account endpoints, mounted at /admin/users.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/{id}", handler.getAccount)
	router.Delete("/{id}", handler.deleteAccount)

	return router
}

/*
GET /admin/users/{id}.

Response:
  - 200: Account
  - 404: ErrNotFound
*/
func (handler *Handler) getAccount(writer http.ResponseWriter, request *http.Request) {
	entity, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
DELETE /admin/users/{id}.

Description: Hard-deletes an account. Its reviews survive under the
denormalized display name with the author reference nulled, its chef
profile is removed, and its recipes are archived.

Response:
  - 200: {success: true}
  - 404: ErrNotFound
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteAccount(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"success": true})
}
