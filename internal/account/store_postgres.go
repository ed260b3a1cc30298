// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/apperr"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/database/schema"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed account store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// FindByID retrieves the local account projection.
func (repository *repository) FindByID(ctx context.Context, id string) (*Account, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.UsersAccount.ID, schema.UsersAccount.Username,
		schema.UsersAccount.DisplayName, schema.UsersAccount.Role,
		schema.UsersAccount.IsActive, schema.UsersAccount.CreatedAt,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID,
	)

	entity := &Account{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&entity.ID, &entity.Username, &entity.DisplayName,
		&entity.Role, &entity.IsActive, &entity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres: failed to find account: %w", err)
	}

	return entity, nil
}

/*
DeleteAccount removes an account and detaches everything it authored.

Description: Runs in one transaction:

 1. Review author references are set NULL: reviews, their replies, and
    their rating contributions all survive under the denormalized
    display name.
 2. The chef profile, if any, is dropped and detached from recipes.
 3. Recipes owned by the account are archived, which removes them from
    public listings without destroying reader data.
 4. The account row is deleted.

Returns:
  - error: apperr.NotFound when the account does not exist
*/
func (repository *repository) DeleteAccount(ctx context.Context, id string) error {

	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	if _, err := transaction.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
			schema.SocialReview.Table, schema.SocialReview.AuthorID,
			schema.SocialReview.AuthorID), id); err != nil {
		return fmt.Errorf("postgres: failed to detach reviews: %w", err)
	}

	if _, err := transaction.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = NULL
		 WHERE %s IN (SELECT %s FROM %s WHERE %s = $1)`,
			schema.CoreRecipe.Table, schema.CoreRecipe.ChefProfileID,
			schema.CoreRecipe.ChefProfileID,
			schema.UsersChefProfile.ID, schema.UsersChefProfile.Table,
			schema.UsersChefProfile.UserID), id); err != nil {
		return fmt.Errorf("postgres: failed to detach chef profile from recipes: %w", err)
	}

	if _, err := transaction.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.UsersChefProfile.Table, schema.UsersChefProfile.UserID), id); err != nil {
		return fmt.Errorf("postgres: failed to delete chef profile: %w", err)
	}

	if _, err := transaction.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = 'archived', %s = NOW() WHERE %s = $1`,
			schema.CoreRecipe.Table, schema.CoreRecipe.Status,
			schema.CoreRecipe.UpdatedAt, schema.CoreRecipe.ChefID), id); err != nil {
		return fmt.Errorf("postgres: failed to archive owned recipes: %w", err)
	}

	result, err := transaction.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.UsersAccount.Table, schema.UsersAccount.ID), id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}

	return nil
}

// DeleteChefProfile drops a chef profile and detaches it from recipes.
// The owning account keeps existing.
func (repository *repository) DeleteChefProfile(ctx context.Context, id string) error {

	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	if _, err := transaction.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
			schema.CoreRecipe.Table, schema.CoreRecipe.ChefProfileID,
			schema.CoreRecipe.ChefProfileID), id); err != nil {
		return fmt.Errorf("postgres: failed to detach profile from recipes: %w", err)
	}

	result, err := transaction.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.UsersChefProfile.Table, schema.UsersChefProfile.ID), id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete chef profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Chef profile")
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}

	return nil
}
