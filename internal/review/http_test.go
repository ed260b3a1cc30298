// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package review_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/ctxutil"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/sec"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/review"
)

// adminRouter mounts the handler's admin routes the way the server does.
func adminRouter(handler *review.Handler) chi.Router {
	router := chi.NewRouter()
	router.Mount("/admin/reviews", handler.AdminRoutes())
	return router
}

// authedRequest injects verified claims the way the authentication
// middleware would.
func authedRequest(method, target, body string, claims *sec.AuthClaims) *http.Request {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(context.Background(), claims))
	}
	return request
}

/*
TestHandler_SetStatus drives the admin status endpoint end to end: an
administrator can flag a review over HTTP, and the role gate holds for
everyone else.
*/
func TestHandler_SetStatus(t *testing.T) {
	adminClaims := &sec.AuthClaims{UserID: "admin-1", Username: "admin", Role: string(sec.RoleAdmin)}

	seed := func(t *testing.T) (*fakeReviewRepo, chi.Router, *review.Review) {
		t.Helper()
		repo := newFakeReviewRepo()
		service := newTestService(repo)
		entity, err := service.Add(context.Background(), readerID, "Rosa", recipeID, review.CreateInput{
			Rating:  1,
			Comment: "Spam link inside.",
		})
		require.NoError(t, err)
		return repo, adminRouter(review.NewHandler(service)), entity
	}

	t.Run("admin_flags_review", func(t *testing.T) {
		repo, router, entity := seed(t)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodPatch,
			"/admin/reviews/"+entity.ID+"/status", `{"status":"flagged"}`, adminClaims))

		require.Equal(t, http.StatusOK, recorder.Code)
		stored, err := repo.FindByID(context.Background(), entity.ID)
		require.NoError(t, err)
		assert.Equal(t, review.StatusFlagged, stored.Status)
	})

	t.Run("unknown_status_rejected", func(t *testing.T) {
		_, router, entity := seed(t)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodPatch,
			"/admin/reviews/"+entity.ID+"/status", `{"status":"hidden"}`, adminClaims))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("missing_review", func(t *testing.T) {
		_, router, _ := seed(t)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodPatch,
			"/admin/reviews/"+otherID+"/status", `{"status":"removed"}`, adminClaims))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("chef_forbidden", func(t *testing.T) {
		repo, router, entity := seed(t)

		chefClaims := &sec.AuthClaims{UserID: chefID, Username: "marco", Role: string(sec.RoleChef)}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodPatch,
			"/admin/reviews/"+entity.ID+"/status", `{"status":"flagged"}`, chefClaims))

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		stored, err := repo.FindByID(context.Background(), entity.ID)
		require.NoError(t, err)
		assert.Equal(t, review.StatusVisible, stored.Status)
	})

	t.Run("anonymous_unauthorized", func(t *testing.T) {
		_, router, entity := seed(t)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodPatch,
			"/admin/reviews/"+entity.ID+"/status", `{"status":"flagged"}`, nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
