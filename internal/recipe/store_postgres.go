// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
PostgreSQL implementation of the recipe repository.

It leans on a few Postgres features to keep reads cheap and writes safe:
  - JSON Aggregation: category links are folded into a JSON array in the
    same round-trip, avoiding N+1 lookups.
  - Window Functions: COUNT(*) OVER() returns the total result count
    without a separate COUNT query.
  - Guarded Updates: lifecycle writes match on (id, status) so concurrent
    transitions fail loudly instead of overwriting each other.
  - ACID Transactions: content updates, junction sync, and cascade deletes
    each run inside a single transaction.
*/
package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

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

// NewRepository constructs a PostgreSQL backed recipe store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// recipeColumns is the shared projection for single-row reads, including the
// aggregated category sub-query.
var recipeColumns = fmt.Sprintf(`
	r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
	r.%s, r.%s, r.%s, r.%s, r.%s,
	r.%s, r.%s, r.%s, r.%s, r.%s,
	r.%s, r.%s, r.%s, r.%s, r.%s,
	r.%s, r.%s,
	COALESCE((
		SELECT json_agg(json_build_object('id', c.%s, 'label', c.%s, 'slug', c.%s))
		FROM %s c
		JOIN %s rc ON c.%s = rc.%s
		WHERE rc.%s = r.%s
	), '[]') AS categories
`,
	schema.CoreRecipe.ID,
	schema.CoreRecipe.ChefID,
	schema.CoreRecipe.ChefProfileID,
	schema.CoreRecipe.Title,
	schema.CoreRecipe.Slug,
	schema.CoreRecipe.Description,
	schema.CoreRecipe.Cuisine,
	schema.CoreRecipe.DietaryTags,
	schema.CoreRecipe.Ingredients,
	schema.CoreRecipe.Steps,
	schema.CoreRecipe.ImageURLs,
	schema.CoreRecipe.PrepMinutes,
	schema.CoreRecipe.CookMinutes,
	schema.CoreRecipe.Servings,
	schema.CoreRecipe.Status,
	schema.CoreRecipe.RejectionNote,
	schema.CoreRecipe.SubmittedAt,
	schema.CoreRecipe.ApprovedAt,
	schema.CoreRecipe.RejectedAt,
	schema.CoreRecipe.RatingAvg,
	schema.CoreRecipe.RatingCount,
	schema.CoreRecipe.CreatedAt,
	schema.CoreRecipe.UpdatedAt,
	schema.CoreCategory.ID,
	schema.CoreCategory.Label,
	schema.CoreCategory.Slug,
	schema.CoreCategory.Table,
	schema.CoreRecipeCategory.Table,
	schema.CoreCategory.ID,
	schema.CoreRecipeCategory.CategoryID,
	schema.CoreRecipeCategory.RecipeID, schema.CoreRecipe.ID,
)

/*
Create persists a new recipe and its category junction rows.

Description: Runs inside a single transaction so that a failed junction
insert never leaves an orphaned recipe row. The ingredient list is stored
as JSONB; tags, steps, and image URLs as native text arrays.

Parameters:
  - ctx: context.Context
  - entity: *Recipe (hydrated aggregate including CategoryIDs)

Returns:
  - error: CONFLICT on a duplicate slug, otherwise execution errors
*/
func (repository *repository) Create(ctx context.Context, entity *Recipe) error {

	ingredientsJSON, err := json.Marshal(entity.Ingredients)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode ingredients: %w", err)
	}

	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`,
		schema.CoreRecipe.Table,
		schema.CoreRecipe.ID,
		schema.CoreRecipe.ChefID,
		schema.CoreRecipe.ChefProfileID,
		schema.CoreRecipe.Title,
		schema.CoreRecipe.Slug,
		schema.CoreRecipe.Description,
		schema.CoreRecipe.Cuisine,
		schema.CoreRecipe.DietaryTags,
		schema.CoreRecipe.Ingredients,
		schema.CoreRecipe.Steps,
		schema.CoreRecipe.ImageURLs,
		schema.CoreRecipe.PrepMinutes,
		schema.CoreRecipe.CookMinutes,
		schema.CoreRecipe.Servings,
		schema.CoreRecipe.Status,
		schema.CoreRecipe.SubmittedAt,
		schema.CoreRecipe.CreatedAt,
		schema.CoreRecipe.UpdatedAt,
	)

	_, err = transaction.Exec(ctx, query,
		entity.ID,
		entity.ChefID,
		entity.ChefProfileID,
		entity.Title,
		entity.Slug,
		entity.Description,
		entity.Cuisine,
		entity.DietaryTags,
		ingredientsJSON,
		entity.Steps,
		entity.ImageURLs,
		entity.PrepMinutes,
		entity.CookMinutes,
		entity.Servings,
		entity.Status,
		entity.SubmittedAt,
		entity.CreatedAt,
		entity.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_recipe")
	}

	// Category junction rows
	if len(entity.CategoryIDs) > 0 {
		if err := syncCategories(ctx, transaction, entity.ID, entity.CategoryIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}

	return nil
}

/*
FindByID retrieves a recipe by its primary key.

Description: Single-row lookup that folds the associated categories into a
JSON array via a sub-query, hydrating the full aggregate in one round-trip.

Returns:
  - *Recipe: the hydrated entity
  - error: apperr.NotFound if the row does not exist
*/
func (repository *repository) FindByID(ctx context.Context, id string) (*Recipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1`,
		recipeColumns, schema.CoreRecipe.Table, schema.CoreRecipe.ID)
	return repository.findOne(ctx, query, id)
}

// FindBySlug retrieves a recipe by its public URL slug. Used for SEO-facing
// reads where the internal UUID is not in the URL.
func (repository *repository) FindBySlug(ctx context.Context, slug string) (*Recipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1`,
		recipeColumns, schema.CoreRecipe.Table, schema.CoreRecipe.Slug)
	return repository.findOne(ctx, query, slug)
}

// findOne executes a single-row projection query and hydrates the aggregate.
func (repository *repository) findOne(ctx context.Context, query string, arg any) (*Recipe, error) {
	entity := &Recipe{}
	var ingredientsJSON, categoriesJSON []byte

	err := repository.pool.QueryRow(ctx, query, arg).Scan(
		&entity.ID, &entity.ChefID, &entity.ChefProfileID, &entity.Title,
		&entity.Slug, &entity.Description, &entity.Cuisine, &entity.DietaryTags,
		&ingredientsJSON, &entity.Steps, &entity.ImageURLs, &entity.PrepMinutes,
		&entity.CookMinutes, &entity.Servings, &entity.Status, &entity.RejectionNote,
		&entity.SubmittedAt, &entity.ApprovedAt, &entity.RejectedAt,
		&entity.Rating.Average, &entity.Rating.Count,
		&entity.CreatedAt, &entity.UpdatedAt,
		&categoriesJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Recipe")
		}
		return nil, fmt.Errorf("postgres: failed to find recipe: %w", err)
	}

	if err := hydrateJSON(entity, ingredientsJSON, categoriesJSON); err != nil {
		return nil, err
	}

	return entity, nil
}

/*
List returns a filtered, paginated slice of recipes and the total count.

Description: Builds the WHERE clause dynamically from the filter, uses
COUNT(*) OVER() to avoid a second counting query, and aggregates the linked
categories as JSON per row.

Parameters:
  - ctx: context.Context
  - filter: Filter (status, chef, cuisine, dietary tag, category, search)
  - limit: int
  - offset: int

Returns:
  - []*Recipe: hydrated entities
  - int: total count matching the filter
  - error: execution errors
*/
func (repository *repository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Recipe, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s r
		WHERE 1=1
	`, recipeColumns, schema.CoreRecipe.Table))

	// Status filtering
	if len(filter.Status) > 0 {
		statuses := make([]string, 0, len(filter.Status))
		for _, s := range filter.Status {
			statuses = append(statuses, string(s))
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND r.%s = ANY($%d)", schema.CoreRecipe.Status, argID))
		args = append(args, statuses)
		argID++
	}

	// Owner filtering
	if filter.ChefID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND r.%s = $%d", schema.CoreRecipe.ChefID, argID))
		args = append(args, filter.ChefID)
		argID++
	}

	// Cuisine filtering
	if filter.Cuisine != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND r.%s = $%d", schema.CoreRecipe.Cuisine, argID))
		args = append(args, filter.Cuisine)
		argID++
	}

	// Dietary tag membership (native array containment)
	if filter.DietaryTag != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(r.%s)", argID, schema.CoreRecipe.DietaryTags))
		args = append(args, filter.DietaryTag)
		argID++
	}

	// Category slug filtering via the junction table
	if filter.CategorySlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM %s rc
			JOIN %s c ON c.%s = rc.%s
			WHERE rc.%s = r.%s AND c.%s = $%d
		)`,
			schema.CoreRecipeCategory.Table,
			schema.CoreCategory.Table,
			schema.CoreCategory.ID, schema.CoreRecipeCategory.CategoryID,
			schema.CoreRecipeCategory.RecipeID, schema.CoreRecipe.ID,
			schema.CoreCategory.Slug, argID,
		))
		args = append(args, filter.CategorySlug)
		argID++
	}

	// Title search
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND r.%s ILIKE $%d", schema.CoreRecipe.Title, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Sorting
	sort := schema.CoreRecipe.CreatedAt
	switch filter.Sort {
	case "rating":
		sort = schema.CoreRecipe.RatingAvg
	case "popular":
		sort = schema.CoreRecipe.RatingCount
	case "latest":
		sort = schema.CoreRecipe.CreatedAt
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY r.%s DESC, r.%s DESC", sort, schema.CoreRecipe.ID))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*Recipe
	var totalCount int

	for rows.Next() {
		entity := &Recipe{}
		var ingredientsJSON, categoriesJSON []byte

		err := rows.Scan(
			&entity.ID, &entity.ChefID, &entity.ChefProfileID, &entity.Title,
			&entity.Slug, &entity.Description, &entity.Cuisine, &entity.DietaryTags,
			&ingredientsJSON, &entity.Steps, &entity.ImageURLs, &entity.PrepMinutes,
			&entity.CookMinutes, &entity.Servings, &entity.Status, &entity.RejectionNote,
			&entity.SubmittedAt, &entity.ApprovedAt, &entity.RejectedAt,
			&entity.Rating.Average, &entity.Rating.Count,
			&entity.CreatedAt, &entity.UpdatedAt,
			&categoriesJSON,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan recipe: %w", err)
		}

		if err := hydrateJSON(entity, ingredientsJSON, categoriesJSON); err != nil {
			return nil, 0, err
		}

		recipes = append(recipes, entity)
	}

	return recipes, totalCount, nil
}

/*
Update persists a full content edit plus any lifecycle change it triggered.

Description: The row is matched on (id, expected status) inside a single
transaction; zero affected rows means the recipe either vanished or was
transitioned concurrently, and the caller gets NOT_FOUND or CONFLICT
accordingly. Category junctions are wiped and re-inserted to mirror the
entity's CategoryIDs exactly.

Parameters:
  - ctx: context.Context
  - entity: *Recipe (post-transition state)
  - expected: Status (the status the row must still hold)
*/
func (repository *repository) Update(ctx context.Context, entity *Recipe, expected Status) error {

	ingredientsJSON, err := json.Marshal(entity.Ingredients)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode ingredients: %w", err)
	}

	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $1, %s = $2, %s = $3, %s = $4,
			%s = $5, %s = $6, %s = $7, %s = $8,
			%s = $9, %s = $10, %s = $11,
			%s = $12, %s = $13, %s = $14, %s = $15,
			%s = $16
		WHERE %s = $17 AND %s = $18
	`,
		schema.CoreRecipe.Table,
		schema.CoreRecipe.Title,
		schema.CoreRecipe.Slug,
		schema.CoreRecipe.Description,
		schema.CoreRecipe.Cuisine,
		schema.CoreRecipe.DietaryTags,
		schema.CoreRecipe.Ingredients,
		schema.CoreRecipe.Steps,
		schema.CoreRecipe.ImageURLs,
		schema.CoreRecipe.PrepMinutes,
		schema.CoreRecipe.CookMinutes,
		schema.CoreRecipe.Servings,
		schema.CoreRecipe.Status,
		schema.CoreRecipe.RejectionNote,
		schema.CoreRecipe.ApprovedAt,
		schema.CoreRecipe.RejectedAt,
		schema.CoreRecipe.UpdatedAt,
		schema.CoreRecipe.ID,
		schema.CoreRecipe.Status,
	)

	result, err := transaction.Exec(ctx, query,
		entity.Title, entity.Slug, entity.Description, entity.Cuisine,
		entity.DietaryTags, ingredientsJSON, entity.Steps, entity.ImageURLs,
		entity.PrepMinutes, entity.CookMinutes, entity.Servings,
		entity.Status, entity.RejectionNote, entity.ApprovedAt, entity.RejectedAt,
		entity.UpdatedAt,
		entity.ID, expected,
	)
	if err != nil {
		return dberr.Wrap(err, "update_recipe")
	}

	if result.RowsAffected() == 0 {
		return repository.guardFailure(ctx, entity.ID)
	}

	if entity.CategoryIDs != nil {
		if err := syncCategories(ctx, transaction, entity.ID, entity.CategoryIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit update transaction: %w", err)
	}

	return nil
}

/*
UpdateLifecycle persists only the moderation decision fields.

Description: Writes status, decision timestamps, and the rejection note,
guarded on the expected current status. Used by administrator decisions and
the chef's archive, where content must not be touched.
*/
func (repository *repository) UpdateLifecycle(ctx context.Context, entity *Recipe, expected Status) error {

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $1, %s = $2, %s = $3,
			%s = $4, %s = $5, %s = $6
		WHERE %s = $7 AND %s = $8
	`,
		schema.CoreRecipe.Table,
		schema.CoreRecipe.Status,
		schema.CoreRecipe.RejectionNote,
		schema.CoreRecipe.SubmittedAt,
		schema.CoreRecipe.ApprovedAt,
		schema.CoreRecipe.RejectedAt,
		schema.CoreRecipe.UpdatedAt,
		schema.CoreRecipe.ID,
		schema.CoreRecipe.Status,
	)

	result, err := repository.pool.Exec(ctx, query,
		entity.Status, entity.RejectionNote, entity.SubmittedAt,
		entity.ApprovedAt, entity.RejectedAt, entity.UpdatedAt,
		entity.ID, expected,
	)
	if err != nil {
		return dberr.Wrap(err, "update_recipe_lifecycle")
	}

	if result.RowsAffected() == 0 {
		return repository.guardFailure(ctx, entity.ID)
	}

	return nil
}

/*
HardDelete irreversibly removes a recipe and everything hanging off it.

Description: Deletes reply rows, reviews, category junctions, and finally
the recipe itself inside one transaction. Flag rows referencing the recipe
keep their title snapshot and stay resolvable; they are not removed here.

Returns:
  - error: apperr.NotFound if the recipe does not exist
*/
func (repository *repository) HardDelete(ctx context.Context, id string) error {

	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	// Replies first, reviews second: the reply FK points at the review.
	if _, err := transaction.Exec(ctx, fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s IN (SELECT %s FROM %s WHERE %s = $1)
	`,
		schema.SocialReviewReply.Table,
		schema.SocialReviewReply.ReviewID,
		schema.SocialReview.ID,
		schema.SocialReview.Table,
		schema.SocialReview.RecipeID,
	), id); err != nil {
		return fmt.Errorf("postgres: failed to delete replies: %w", err)
	}

	if _, err := transaction.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialReview.Table, schema.SocialReview.RecipeID), id); err != nil {
		return fmt.Errorf("postgres: failed to delete reviews: %w", err)
	}

	if _, err := transaction.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreRecipeCategory.Table, schema.CoreRecipeCategory.RecipeID), id); err != nil {
		return fmt.Errorf("postgres: failed to delete category links: %w", err)
	}

	result, err := transaction.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreRecipe.Table, schema.CoreRecipe.ID), id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete recipe: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Recipe")
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}

	return nil
}

// # Internal Helpers

// guardFailure classifies a zero-row guarded update: the recipe either no
// longer exists (NOT_FOUND) or its status changed under us (CONFLICT).
func (repository *repository) guardFailure(ctx context.Context, id string) error {
	var exists bool
	err := repository.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
			schema.CoreRecipe.Table, schema.CoreRecipe.ID), id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("postgres: guard check failed: %w", err)
	}
	if !exists {
		return apperr.NotFound("Recipe")
	}
	return apperr.Conflict("Recipe was modified concurrently")
}

// syncCategories wipes and re-inserts the category junction rows so the
// table mirrors the given ID list exactly ("clear and insert").
func syncCategories(ctx context.Context, transaction pgx.Tx, recipeID string, categoryIDs []string) error {

	if _, err := transaction.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreRecipeCategory.Table, schema.CoreRecipeCategory.RecipeID), recipeID); err != nil {
		return fmt.Errorf("postgres: failed to clear category links: %w", err)
	}

	if len(categoryIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.CoreRecipeCategory.Table,
		schema.CoreRecipeCategory.RecipeID,
		schema.CoreRecipeCategory.CategoryID,
	)

	batch := &pgx.Batch{}
	for _, categoryID := range categoryIDs {
		batch.Queue(insertQuery, recipeID, categoryID)
	}

	response := transaction.SendBatch(ctx, batch)
	if err := response.Close(); err != nil {
		return fmt.Errorf("postgres: failed to batch insert category links: %w", err)
	}

	return nil
}

// hydrateJSON decodes the JSONB ingredient payload and the aggregated
// category array into the entity.
func hydrateJSON(entity *Recipe, ingredientsJSON, categoriesJSON []byte) error {
	if len(ingredientsJSON) > 0 {
		if err := json.Unmarshal(ingredientsJSON, &entity.Ingredients); err != nil {
			return fmt.Errorf("postgres: failed to decode ingredients: %w", err)
		}
	}
	if err := json.Unmarshal(categoriesJSON, &entity.Categories); err != nil {
		return fmt.Errorf("postgres: failed to decode categories: %w", err)
	}
	for _, ref := range entity.Categories {
		entity.CategoryIDs = append(entity.CategoryIDs, ref.ID)
	}
	return nil
}
