// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
PostgreSQL implementation of the category repository.

The uniqueness story lives here: a unique index on (slug, type) decides
every race at commit time. Implicit resolution uses ON CONFLICT DO NOTHING
followed by a reselect, so concurrent resolvers of the same label converge
on one row; explicit curation lets the violation bubble up as CONFLICT.
*/
package category

import (
	"context"
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

// NewRepository constructs a PostgreSQL backed category store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// categoryColumns is the shared projection for category reads.
var categoryColumns = fmt.Sprintf(`%s, %s, %s, %s, %s, %s`,
	schema.CoreCategory.ID, schema.CoreCategory.Label, schema.CoreCategory.Slug,
	schema.CoreCategory.Type, schema.CoreCategory.IsActive, schema.CoreCategory.CreatedAt,
)

/*
Upsert inserts the entry unless its (slug, type) twin exists, returning
the surviving row either way.

Description: INSERT ... ON CONFLICT (slug, type) DO NOTHING, then a
reselect by (slug, type). When the insert wins, the reselect returns the
new row; when a twin already existed (or a concurrent resolver won the
race) the reselect returns that twin. No conflict ever escapes this path.
*/
func (repository *repository) Upsert(ctx context.Context, entity *Category) (*Category, error) {

	_, err := repository.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		schema.CoreCategory.Table, categoryColumns,
		schema.CoreCategory.Slug, schema.CoreCategory.Type,
	), entity.ID, entity.Label, entity.Slug, entity.Type, entity.IsActive, entity.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to upsert category: %w", err)
	}

	return repository.FindBySlug(ctx, entity.Slug, entity.Type)
}

// Create inserts strictly; a (slug, type) twin surfaces as CONFLICT via
// the unique-violation mapping.
func (repository *repository) Create(ctx context.Context, entity *Category) error {

	_, err := repository.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, schema.CoreCategory.Table, categoryColumns),
		entity.ID, entity.Label, entity.Slug, entity.Type, entity.IsActive, entity.CreatedAt)

	return dberr.Wrap(err, "create_category")
}

// FindByID retrieves a taxonomy entry by primary key.
func (repository *repository) FindByID(ctx context.Context, id string) (*Category, error) {
	return repository.findOne(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
			categoryColumns, schema.CoreCategory.Table, schema.CoreCategory.ID), id)
}

// FindBySlug retrieves a taxonomy entry by its (slug, type) identity.
func (repository *repository) FindBySlug(ctx context.Context, slug string, categoryType Type) (*Category, error) {
	return repository.findOne(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
			categoryColumns, schema.CoreCategory.Table,
			schema.CoreCategory.Slug, schema.CoreCategory.Type),
		slug, categoryType)
}

func (repository *repository) findOne(ctx context.Context, query string, args ...any) (*Category, error) {
	entity := &Category{}
	err := repository.pool.QueryRow(ctx, query, args...).Scan(
		&entity.ID, &entity.Label, &entity.Slug, &entity.Type,
		&entity.IsActive, &entity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Category")
		}
		return nil, fmt.Errorf("postgres: failed to find category: %w", err)
	}
	return entity, nil
}

// List returns taxonomy entries ordered by label, optionally filtered by
// type, with the total via COUNT(*) OVER().
func (repository *repository) List(ctx context.Context, categoryType Type, limit, offset int) ([]*Category, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE 1=1
	`, categoryColumns, schema.CoreCategory.Table))

	if categoryType != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.CoreCategory.Type, argID))
		args = append(args, categoryType)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC", schema.CoreCategory.Label))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	var totalCount int

	for rows.Next() {
		entity := &Category{}
		err := rows.Scan(
			&entity.ID, &entity.Label, &entity.Slug, &entity.Type,
			&entity.IsActive, &entity.CreatedAt, &totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan category: %w", err)
		}
		categories = append(categories, entity)
	}

	return categories, totalCount, nil
}

/*
Rename updates label and slug in one statement.

Description: A slug collision within the type hits the unique index and
comes back as CONFLICT; the row is untouched in that case. Returns the
updated entry.
*/
func (repository *repository) Rename(ctx context.Context, id, label, slug string) (*Category, error) {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2
		WHERE %s = $3
		RETURNING %s
	`,
		schema.CoreCategory.Table,
		schema.CoreCategory.Label, schema.CoreCategory.Slug,
		schema.CoreCategory.ID,
		categoryColumns,
	)

	entity := &Category{}
	err := repository.pool.QueryRow(ctx, query, label, slug, id).Scan(
		&entity.ID, &entity.Label, &entity.Slug, &entity.Type,
		&entity.IsActive, &entity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Category")
		}
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("A category with this label already exists")
		}
		return nil, fmt.Errorf("postgres: failed to rename category: %w", err)
	}

	return entity, nil
}

// UsageCount returns the number of recipes referencing the entry.
func (repository *repository) UsageCount(ctx context.Context, id string) (int, error) {

	var count int
	err := repository.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
			schema.CoreRecipeCategory.Table, schema.CoreRecipeCategory.CategoryID), id,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to count category usage: %w", err)
	}

	return count, nil
}

/*
Delete removes a taxonomy entry, optionally purging its junction rows.

Description: With purgeLinks the junction delete and the entry delete run
in one transaction, so a forced delete never leaves half the links behind.
*/
func (repository *repository) Delete(ctx context.Context, id string, purgeLinks bool) error {

	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	if purgeLinks {
		if _, err := transaction.Exec(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
				schema.CoreRecipeCategory.Table, schema.CoreRecipeCategory.CategoryID), id); err != nil {
			return fmt.Errorf("postgres: failed to purge category links: %w", err)
		}
	}

	result, err := transaction.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.CoreCategory.Table, schema.CoreCategory.ID), id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}

	return nil
}
