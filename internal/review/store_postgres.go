// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
PostgreSQL implementation of the review repository.

The interesting part is review creation: the insert and the recipe's
rating average update run in a single transaction, with the average
recomputed by the database from its own current values. Two concurrent
reviews therefore serialize on the recipe row and both land in the final
average; there is no read-modify-write in application memory.
*/
package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/apperr"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/database/schema"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/dberr"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed review store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
Create persists a review and folds its rating into the recipe's average.

Description: The recipe row is updated first with the incremental mean
formula, guarded on status = approved:

	ratingavg   = (ratingavg * ratingcount + rating) / (ratingcount + 1)
	ratingcount = ratingcount + 1

Zero affected rows means the recipe is missing or not approved; the
transaction rolls back and no review is written. The row lock taken by the
UPDATE serializes concurrent reviews on the same recipe.

Parameters:
  - ctx: context.Context
  - entity: *Review (hydrated, status=visible)

Returns:
  - error: apperr.NotFound for a missing recipe, UNPROCESSABLE for a
    non-approved one, otherwise execution errors
*/
func (repository *repository) Create(ctx context.Context, entity *Review) error {

	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	// Incremental mean, computed by the database from its own values.
	result, err := transaction.Exec(ctx, fmt.Sprintf(`
		UPDATE %s
		SET %s = (%s * %s + $1) / (%s + 1),
		    %s = %s + 1
		WHERE %s = $2 AND %s = 'approved'
	`,
		schema.CoreRecipe.Table,
		schema.CoreRecipe.RatingAvg, schema.CoreRecipe.RatingAvg, schema.CoreRecipe.RatingCount, schema.CoreRecipe.RatingCount,
		schema.CoreRecipe.RatingCount, schema.CoreRecipe.RatingCount,
		schema.CoreRecipe.ID, schema.CoreRecipe.Status,
	), entity.Rating, entity.RecipeID)
	if err != nil {
		return fmt.Errorf("postgres: failed to update rating summary: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := transaction.QueryRow(ctx,
			fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
				schema.CoreRecipe.Table, schema.CoreRecipe.ID), entity.RecipeID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("postgres: recipe check failed: %w", err)
		}
		if !exists {
			return apperr.NotFound("Recipe")
		}
		return apperr.Unprocessable("Only approved recipes can be reviewed")
	}

	_, err = transaction.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		schema.SocialReview.Table,
		schema.SocialReview.ID, schema.SocialReview.RecipeID,
		schema.SocialReview.AuthorID, schema.SocialReview.DisplayName,
		schema.SocialReview.Rating, schema.SocialReview.Comment,
		schema.SocialReview.Status, schema.SocialReview.CreatedAt,
	),
		entity.ID, entity.RecipeID, entity.AuthorID, entity.DisplayName,
		entity.Rating, entity.Comment, entity.Status, entity.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_review")
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit review transaction: %w", err)
	}

	return nil
}

// FindByID retrieves a review without its reply thread.
func (repository *repository) FindByID(ctx context.Context, id string) (*Review, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.SocialReview.ID, schema.SocialReview.RecipeID,
		schema.SocialReview.AuthorID, schema.SocialReview.DisplayName,
		schema.SocialReview.Rating, schema.SocialReview.Comment,
		schema.SocialReview.Status, schema.SocialReview.CreatedAt,
		schema.SocialReview.Table,
		schema.SocialReview.ID,
	)

	entity := &Review{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&entity.ID, &entity.RecipeID, &entity.AuthorID, &entity.DisplayName,
		&entity.Rating, &entity.Comment, &entity.Status, &entity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, fmt.Errorf("postgres: failed to find review: %w", err)
	}

	return entity, nil
}

/*
ListByRecipe returns a recipe's non-removed reviews with reply threads.

Description: Uses COUNT(*) OVER() for the total and a json_agg sub-query
to hydrate each review's replies (oldest first) in the same round-trip.

Parameters:
  - ctx: context.Context
  - recipeID: string
  - limit: int
  - offset: int

Returns:
  - []*Review: newest first
  - int: total non-removed review count
*/
func (repository *repository) ListByRecipe(ctx context.Context, recipeID string, limit, offset int) ([]*Review, int, error) {

	query := fmt.Sprintf(`
		SELECT
			r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
			r.%s, r.%s,
			COUNT(*) OVER() AS total_count,
			COALESCE((
				SELECT json_agg(json_build_object(
					'id', p.%s, 'review_id', p.%s, 'author_id', p.%s,
					'display_name', p.%s, 'comment', p.%s,
					'created_at', p.%s
				) ORDER BY p.%s ASC)
				FROM %s p
				WHERE p.%s = r.%s
			), '[]') AS replies
		FROM %s r
		WHERE r.%s = $1 AND r.%s != 'removed'
		ORDER BY r.%s DESC, r.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.SocialReview.ID, schema.SocialReview.RecipeID,
		schema.SocialReview.AuthorID, schema.SocialReview.DisplayName,
		schema.SocialReview.Rating, schema.SocialReview.Comment,
		schema.SocialReview.Status, schema.SocialReview.CreatedAt,
		schema.SocialReviewReply.ID, schema.SocialReviewReply.ReviewID,
		schema.SocialReviewReply.AuthorID, schema.SocialReviewReply.DisplayName,
		schema.SocialReviewReply.Comment, schema.SocialReviewReply.CreatedAt,
		schema.SocialReviewReply.CreatedAt,
		schema.SocialReviewReply.Table,
		schema.SocialReviewReply.ReviewID, schema.SocialReview.ID,
		schema.SocialReview.Table,
		schema.SocialReview.RecipeID, schema.SocialReview.Status,
		schema.SocialReview.CreatedAt, schema.SocialReview.ID,
	)

	rows, err := repository.pool.Query(ctx, query, recipeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	var totalCount int

	for rows.Next() {
		entity := &Review{}
		var repliesJSON []byte

		err := rows.Scan(
			&entity.ID, &entity.RecipeID, &entity.AuthorID, &entity.DisplayName,
			&entity.Rating, &entity.Comment, &entity.Status, &entity.CreatedAt,
			&totalCount, &repliesJSON,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan review: %w", err)
		}

		if err := json.Unmarshal(repliesJSON, &entity.Replies); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to decode replies: %w", err)
		}

		reviews = append(reviews, entity)
	}

	return reviews, totalCount, nil
}

// AddReply appends a reply row to the thread.
func (repository *repository) AddReply(ctx context.Context, reply *Reply) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		schema.SocialReviewReply.Table,
		schema.SocialReviewReply.ID, schema.SocialReviewReply.ReviewID,
		schema.SocialReviewReply.AuthorID, schema.SocialReviewReply.DisplayName,
		schema.SocialReviewReply.Comment, schema.SocialReviewReply.CreatedAt,
	)

	_, err := repository.pool.Exec(ctx, query,
		reply.ID, reply.ReviewID, reply.AuthorID,
		reply.DisplayName, reply.Comment, reply.CreatedAt,
	)

	return dberr.Wrap(err, "add_reply")
}

// UpdateStatus sets the moderation visibility of a review.
func (repository *repository) UpdateStatus(ctx context.Context, id string, status Status) error {

	result, err := repository.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
			schema.SocialReview.Table, schema.SocialReview.Status, schema.SocialReview.ID),
		status, id)
	if err != nil {
		return dberr.Wrap(err, "update_review_status")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

/*
HardDelete removes a review and its replies in one transaction.

Description: The recipe's rating summary is left untouched: removals are
moderation events, not rating retractions, so the historical average stays
as readers experienced it.
*/
func (repository *repository) HardDelete(ctx context.Context, id string) error {

	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	if _, err := transaction.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.SocialReviewReply.Table, schema.SocialReviewReply.ReviewID), id); err != nil {
		return fmt.Errorf("postgres: failed to delete replies: %w", err)
	}

	result, err := transaction.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.SocialReview.Table, schema.SocialReview.ID), id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}

	return nil
}

// RecipeOwner returns the chef ID owning a recipe.
func (repository *repository) RecipeOwner(ctx context.Context, recipeID string) (string, error) {

	var chefID string
	err := repository.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
			schema.CoreRecipe.ChefID, schema.CoreRecipe.Table, schema.CoreRecipe.ID), recipeID,
	).Scan(&chefID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("Recipe")
		}
		return "", fmt.Errorf("postgres: failed to find recipe owner: %w", err)
	}

	return chefID, nil
}
