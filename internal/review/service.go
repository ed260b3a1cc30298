// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/apperr"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/validate"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates review creation, listing, replies, and the
// moderation hooks used by flag resolution.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Inputs

// CreateInput carries a reader's rating and comment.
type CreateInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReplyInput carries a chef's answer to a review.
type ReplyInput struct {
	ReviewID string `json:"reviewId"`
	Comment  string `json:"comment"`
}

// # Operations

/*
Add creates a review on an approved recipe and updates its rating average.
Both the rating (1-5) and a non-empty comment are required.

Description: Validation happens here; atomicity happens in the store. The
insert and the average update run in one transaction, so two concurrent
reviews both land and the final average reflects both. The recipe must be
approved at commit time: a recipe that got archived or rejected between
page load and submit rejects the review.

Parameters:
  - ctx: context.Context
  - authorID: reviewer's user ID (from verified claims)
  - displayName: reviewer's public name, denormalized onto the row
  - recipeID: target recipe
  - input: CreateInput

Returns:
  - *Review: the persisted review (status=visible)
  - error: validation errors, or UNPROCESSABLE for a non-approved recipe
*/
func (service *Service) Add(ctx context.Context, authorID, displayName, recipeID string, input CreateInput) (*Review, error) {
	validator := &validate.Validator{}
	validator.Range(FieldRating, input.Rating, 1, 5)
	validator.Required(FieldComment, input.Comment).MaxLen(FieldComment, input.Comment, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entity := Review{
		ID:          uuidv7.New(),
		RecipeID:    recipeID,
		AuthorID:    &authorID,
		DisplayName: displayName,
		Rating:      input.Rating,
		Comment:     input.Comment,
		Status:      StatusVisible,
		CreatedAt:   time.Now().UTC(),
	}

	if err := service.repo.Create(ctx, &entity); err != nil {
		return nil, err
	}

	service.logger.Info("review_added",
		slog.String("review_id", entity.ID),
		slog.String("recipe_id", recipeID),
		slog.Int("rating", input.Rating),
	)

	return &entity, nil
}

// ListByRecipe returns a recipe's reviews with their reply threads.
func (service *Service) ListByRecipe(ctx context.Context, recipeID string, limit, offset int) ([]*Review, int, error) {
	return service.repo.ListByRecipe(ctx, recipeID, limit, offset)
}

/*
Reply appends a chef's answer to a review on their own recipe.

Description: The review must belong to the given recipe, and the caller
must own that recipe (administrators may reply on a chef's behalf). Both
failures surface as not-found so neither existence nor ownership leaks.
Replies are append-only; there is no edit or delete.
*/
func (service *Service) Reply(ctx context.Context, callerID, displayName string, callerIsAdmin bool, recipeID string, input ReplyInput) (*Reply, error) {
	validator := &validate.Validator{}
	validator.Required(FieldReview, input.ReviewID).UUID(FieldReview, input.ReviewID)
	validator.Required(FieldComment, input.Comment).MaxLen(FieldComment, input.Comment, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	target, err := service.repo.FindByID(ctx, input.ReviewID)
	if err != nil {
		return nil, err
	}
	if target.RecipeID != recipeID {
		return nil, apperr.NotFound("Review")
	}

	owner, err := service.repo.RecipeOwner(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if owner != callerID && !callerIsAdmin {
		return nil, apperr.NotFound("Review")
	}

	reply := Reply{
		ID:          uuidv7.New(),
		ReviewID:    input.ReviewID,
		AuthorID:    callerID,
		DisplayName: displayName,
		Comment:     input.Comment,
		CreatedAt:   time.Now().UTC(),
	}

	if err := service.repo.AddReply(ctx, &reply); err != nil {
		return nil, err
	}

	service.logger.Info("review_reply_added",
		slog.String("reply_id", reply.ID),
		slog.String("review_id", input.ReviewID),
	)

	return &reply, nil
}

// SetStatus changes a review's moderation visibility. The rating summary
// is not recomputed: the recipe's average keeps reflecting history.
func (service *Service) SetStatus(ctx context.Context, reviewID string, status Status) error {
	if !status.IsValid() {
		return validate.RequiredError("status", "Unknown status value")
	}
	return service.repo.UpdateStatus(ctx, reviewID, status)
}

// HardDelete removes a review and its replies. Used by flag resolution
// when a moderator removes flagged content.
func (service *Service) HardDelete(ctx context.Context, reviewID string) error {
	if err := service.repo.HardDelete(ctx, reviewID); err != nil {
		return err
	}
	service.logger.Warn("review_hard_deleted", slog.String("review_id", reviewID))
	return nil
}
