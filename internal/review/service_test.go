// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/apperr"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/review"
)

const (
	recipeID = "0191b2f8-3c41-7d52-9a10-1234567890ab"
	otherID  = "0191b2f8-3c41-7d52-9a10-feedfeedfeed"
	chefID   = "chef-1"
	readerID = "reader-1"
)

// fakeReviewRepo is an in-memory Repository for service tests. It mimics
// the approved-only guard of the real store via the approved set.
type fakeReviewRepo struct {
	reviews  map[string]*review.Review
	replies  []*review.Reply
	approved map[string]bool
	owners   map[string]string
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews:  make(map[string]*review.Review),
		approved: map[string]bool{recipeID: true},
		owners:   map[string]string{recipeID: chefID},
	}
}

func (r *fakeReviewRepo) Create(_ context.Context, entity *review.Review) error {
	if !r.approved[entity.RecipeID] {
		return apperr.Unprocessable("Only approved recipes can be reviewed")
	}
	copied := *entity
	r.reviews[entity.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id string) (*review.Review, error) {
	entity, ok := r.reviews[id]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	copied := *entity
	return &copied, nil
}

func (r *fakeReviewRepo) ListByRecipe(_ context.Context, id string, _, _ int) ([]*review.Review, int, error) {
	var out []*review.Review
	for _, entity := range r.reviews {
		if entity.RecipeID == id && entity.Status != review.StatusRemoved {
			copied := *entity
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (r *fakeReviewRepo) AddReply(_ context.Context, reply *review.Reply) error {
	copied := *reply
	r.replies = append(r.replies, &copied)
	return nil
}

func (r *fakeReviewRepo) UpdateStatus(_ context.Context, id string, status review.Status) error {
	entity, ok := r.reviews[id]
	if !ok {
		return apperr.NotFound("Review")
	}
	entity.Status = status
	return nil
}

func (r *fakeReviewRepo) HardDelete(_ context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return apperr.NotFound("Review")
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) RecipeOwner(_ context.Context, id string) (string, error) {
	owner, ok := r.owners[id]
	if !ok {
		return "", apperr.NotFound("Recipe")
	}
	return owner, nil
}

func newTestService(repo review.Repository) *review.Service {
	return review.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_Add covers review creation: input validation and the
approved-recipe guard.
*/
func TestService_Add(t *testing.T) {
	t.Run("valid_review", func(t *testing.T) {
		repo := newFakeReviewRepo()
		service := newTestService(repo)

		entity, err := service.Add(context.Background(), readerID, "Rosa", recipeID, review.CreateInput{
			Rating:  4,
			Comment: "Great with extra lime.",
		})
		require.NoError(t, err)

		assert.Equal(t, review.StatusVisible, entity.Status)
		assert.Equal(t, 4, entity.Rating)
		require.NotNil(t, entity.AuthorID)
		assert.Equal(t, readerID, *entity.AuthorID)
	})

	t.Run("rating_out_of_range", func(t *testing.T) {
		service := newTestService(newFakeReviewRepo())

		for _, rating := range []int{0, 6, -1} {
			_, err := service.Add(context.Background(), readerID, "Rosa", recipeID, review.CreateInput{
				Rating:  rating,
				Comment: "text",
			})
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		}
	})

	t.Run("comment_required", func(t *testing.T) {
		service := newTestService(newFakeReviewRepo())

		_, err := service.Add(context.Background(), readerID, "Rosa", recipeID, review.CreateInput{
			Rating: 5,
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("recipe_not_approved", func(t *testing.T) {
		repo := newFakeReviewRepo()
		repo.approved[recipeID] = false
		service := newTestService(repo)

		_, err := service.Add(context.Background(), readerID, "Rosa", recipeID, review.CreateInput{
			Rating:  3,
			Comment: "ok",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNPROCESSABLE", ae.Code)
	})
}

/*
TestService_Reply covers the reply gate: owning chef succeeds, strangers
and mismatched recipes surface as not-found, admins pass through.
*/
func TestService_Reply(t *testing.T) {
	seedReview := func(t *testing.T, repo *fakeReviewRepo) *review.Review {
		t.Helper()
		entity, err := newTestService(repo).Add(context.Background(), readerID, "Rosa", recipeID, review.CreateInput{
			Rating:  5,
			Comment: "Loved it.",
		})
		require.NoError(t, err)
		return entity
	}

	t.Run("owning_chef", func(t *testing.T) {
		repo := newFakeReviewRepo()
		target := seedReview(t, repo)
		service := newTestService(repo)

		reply, err := service.Reply(context.Background(), chefID, "Chef Marco", false, recipeID, review.ReplyInput{
			ReviewID: target.ID,
			Comment:  "Thanks Rosa!",
		})
		require.NoError(t, err)
		assert.Equal(t, target.ID, reply.ReviewID)
		assert.Equal(t, chefID, reply.AuthorID)
	})

	t.Run("non_owner_gets_not_found", func(t *testing.T) {
		repo := newFakeReviewRepo()
		target := seedReview(t, repo)
		service := newTestService(repo)

		_, err := service.Reply(context.Background(), "someone-else", "Other", false, recipeID, review.ReplyInput{
			ReviewID: target.ID,
			Comment:  "hi",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})

	t.Run("admin_passes_ownership_gate", func(t *testing.T) {
		repo := newFakeReviewRepo()
		target := seedReview(t, repo)
		service := newTestService(repo)

		_, err := service.Reply(context.Background(), "admin-1", "Admin", true, recipeID, review.ReplyInput{
			ReviewID: target.ID,
			Comment:  "Handled.",
		})
		require.NoError(t, err)
	})

	t.Run("review_on_other_recipe", func(t *testing.T) {
		repo := newFakeReviewRepo()
		target := seedReview(t, repo)
		service := newTestService(repo)

		_, err := service.Reply(context.Background(), chefID, "Chef Marco", false, otherID, review.ReplyInput{
			ReviewID: target.ID,
			Comment:  "wrong recipe",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}

/*
TestService_SetStatus verifies moderation visibility changes and the
unknown-status rejection.
*/
func TestService_SetStatus(t *testing.T) {
	repo := newFakeReviewRepo()
	service := newTestService(repo)

	entity, err := service.Add(context.Background(), readerID, "Rosa", recipeID, review.CreateInput{
		Rating:  2,
		Comment: "Too salty.",
	})
	require.NoError(t, err)

	require.NoError(t, service.SetStatus(context.Background(), entity.ID, review.StatusFlagged))
	stored, err := repo.FindByID(context.Background(), entity.ID)
	require.NoError(t, err)
	assert.Equal(t, review.StatusFlagged, stored.Status)

	err = service.SetStatus(context.Background(), entity.ID, review.Status("hidden"))
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}
