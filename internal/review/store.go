// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package review

import "context"

// Repository is the persistence boundary for reviews and their replies.
type Repository interface {
	// Create inserts the review and folds its rating into the recipe's
	// running average in a single transaction. The recipe row is matched
	// on status = approved; if it is anything else the whole transaction
	// rolls back and no review is written.
	Create(ctx context.Context, r *Review) error

	FindByID(ctx context.Context, id string) (*Review, error)

	// ListByRecipe returns the recipe's non-removed reviews, newest
	// first, each hydrated with its replies oldest first.
	ListByRecipe(ctx context.Context, recipeID string, limit, offset int) ([]*Review, int, error)

	AddReply(ctx context.Context, reply *Reply) error

	// UpdateStatus sets the moderation visibility. The rating summary is
	// deliberately left untouched.
	UpdateStatus(ctx context.Context, id string, status Status) error

	// HardDelete removes the review and its replies. The rating summary
	// is deliberately left untouched.
	HardDelete(ctx context.Context, id string) error

	// RecipeOwner returns the chef ID owning the given recipe. Used to
	// gate reply creation without importing the recipe package.
	RecipeOwner(ctx context.Context, recipeID string) (string, error)
}
