// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
PostgreSQL implementation of the flag repository.

The flag table carries no foreign keys to its targets. Target reads happen
once, at flag creation, to fill the denormalized snapshot columns; from
then on the queue is self-contained and survives target deletion.
*/
package moderation

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

// NewRepository constructs a PostgreSQL backed flag store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// flagColumns is the shared projection for flag reads.
var flagColumns = fmt.Sprintf(`%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s`,
	schema.ModFlag.ID, schema.ModFlag.TargetKind, schema.ModFlag.TargetID,
	schema.ModFlag.TitleSnapshot, schema.ModFlag.Reason, schema.ModFlag.Snippet,
	schema.ModFlag.ReporterID, schema.ModFlag.Status, schema.ModFlag.HandledBy,
	schema.ModFlag.HandledAt, schema.ModFlag.ActionNote, schema.ModFlag.CreatedAt,
)

// Create persists a new flag row.
func (repository *repository) Create(ctx context.Context, entity *Flag) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s,
			%s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		schema.ModFlag.Table,
		schema.ModFlag.ID, schema.ModFlag.TargetKind, schema.ModFlag.TargetID,
		schema.ModFlag.TitleSnapshot, schema.ModFlag.Reason, schema.ModFlag.Snippet,
		schema.ModFlag.ReporterID, schema.ModFlag.Status, schema.ModFlag.CreatedAt,
	)

	_, err := repository.pool.Exec(ctx, query,
		entity.ID, entity.Target.Kind, entity.Target.ID,
		entity.TitleSnapshot, entity.Reason, entity.Snippet,
		entity.ReporterID, entity.Status, entity.CreatedAt,
	)

	return dberr.Wrap(err, "create_flag")
}

// FindByID retrieves a flag with its full resolution state.
func (repository *repository) FindByID(ctx context.Context, id string) (*Flag, error) {

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		flagColumns, schema.ModFlag.Table, schema.ModFlag.ID)

	entity := &Flag{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&entity.ID, &entity.Target.Kind, &entity.Target.ID,
		&entity.TitleSnapshot, &entity.Reason, &entity.Snippet,
		&entity.ReporterID, &entity.Status, &entity.HandledBy,
		&entity.HandledAt, &entity.ActionNote, &entity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Flag")
		}
		return nil, fmt.Errorf("postgres: failed to find flag: %w", err)
	}

	return entity, nil
}

/*
List returns the flag queue, optionally filtered by status, newest first.

Parameters:
  - ctx: context.Context
  - status: Status (empty means all)
  - limit: int
  - offset: int

Returns:
  - []*Flag: hydrated queue entries
  - int: total count matching the filter
*/
func (repository *repository) List(ctx context.Context, status Status, limit, offset int) ([]*Flag, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE 1=1
	`, flagColumns, schema.ModFlag.Table))

	if status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.ModFlag.Status, argID))
		args = append(args, status)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC",
		schema.ModFlag.CreatedAt, schema.ModFlag.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list flags: %w", err)
	}
	defer rows.Close()

	var flags []*Flag
	var totalCount int

	for rows.Next() {
		entity := &Flag{}
		err := rows.Scan(
			&entity.ID, &entity.Target.Kind, &entity.Target.ID,
			&entity.TitleSnapshot, &entity.Reason, &entity.Snippet,
			&entity.ReporterID, &entity.Status, &entity.HandledBy,
			&entity.HandledAt, &entity.ActionNote, &entity.CreatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan flag: %w", err)
		}

		flags = append(flags, entity)
	}

	return flags, totalCount, nil
}

/*
UpdateResolution persists a resolution transition.

Description: The row is matched on (id, expected status). Zero affected
rows means a concurrent moderator already resolved (or reopened) the flag;
the caller gets CONFLICT rather than a silent overwrite.
*/
func (repository *repository) UpdateResolution(ctx context.Context, entity *Flag, expected Status) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4
		WHERE %s = $5 AND %s = $6
	`,
		schema.ModFlag.Table,
		schema.ModFlag.Status, schema.ModFlag.HandledBy,
		schema.ModFlag.HandledAt, schema.ModFlag.ActionNote,
		schema.ModFlag.ID, schema.ModFlag.Status,
	)

	result, err := repository.pool.Exec(ctx, query,
		entity.Status, entity.HandledBy, entity.HandledAt, entity.ActionNote,
		entity.ID, expected,
	)
	if err != nil {
		return dberr.Wrap(err, "update_flag_resolution")
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := repository.pool.QueryRow(ctx,
			fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
				schema.ModFlag.Table, schema.ModFlag.ID), entity.ID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("postgres: flag guard check failed: %w", err)
		}
		if !exists {
			return apperr.NotFound("Flag")
		}
		return apperr.Conflict("Flag was resolved concurrently")
	}

	return nil
}

/*
CaptureTarget reads the snapshot fields for a flag's target.

Description: Switches exhaustively over the closed target union; each kind
has its own projection. Returns apperr.NotFound when the target row does
not exist, which blocks flag creation against phantom content.
*/
func (repository *repository) CaptureTarget(ctx context.Context, target TargetRef) (string, string, error) {

	var query, resource string
	switch target.Kind {
	case TargetRecipe:
		query = fmt.Sprintf(`SELECT %s, LEFT(%s, 200) FROM %s WHERE %s = $1`,
			schema.CoreRecipe.Title, schema.CoreRecipe.Description,
			schema.CoreRecipe.Table, schema.CoreRecipe.ID)
		resource = "Recipe"
	case TargetReview:
		query = fmt.Sprintf(`SELECT 'Review by ' || %s, LEFT(%s, 200) FROM %s WHERE %s = $1`,
			schema.SocialReview.DisplayName, schema.SocialReview.Comment,
			schema.SocialReview.Table, schema.SocialReview.ID)
		resource = "Review"
	case TargetUser:
		query = fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
			schema.UsersAccount.DisplayName, schema.UsersAccount.Username,
			schema.UsersAccount.Table, schema.UsersAccount.ID)
		resource = "User"
	case TargetChefProfile:
		query = fmt.Sprintf(`SELECT %s, LEFT(%s, 200) FROM %s WHERE %s = $1`,
			schema.UsersChefProfile.DisplayName, schema.UsersChefProfile.Bio,
			schema.UsersChefProfile.Table, schema.UsersChefProfile.ID)
		resource = "Chef profile"
	default:
		return "", "", apperr.ValidationError("Unknown flag target kind")
	}

	var title, snippet string
	err := repository.pool.QueryRow(ctx, query, target.ID).Scan(&title, &snippet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", apperr.NotFound(resource)
		}
		return "", "", fmt.Errorf("postgres: failed to capture flag target: %w", err)
	}

	return title, snippet, nil
}
