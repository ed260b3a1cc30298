// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package category

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/apperr"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/validate"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/recipe"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/pkg/slug"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates taxonomy curation and label resolution. It also
// implements [recipe.CategoryResolver] for the implicit authoring path.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new category [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Inputs

// CreateInput carries an explicit curation request.
type CreateInput struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

// RenameInput carries a label change.
type RenameInput struct {
	Label string `json:"label"`
}

// # Resolution

/*
Resolve maps a free-text label to its taxonomy entry, creating it when
absent.

Description: The label is normalized to a slug and looked up by
(slug, type). A missing entry is inserted with isActive = true; the insert
races safely — when two callers resolve the same new label concurrently,
the unique index picks one winner and both callers receive the surviving
row. Resolution is idempotent: the same label always yields the same entry.

Parameters:
  - ctx: context.Context
  - label: free-text label as the user typed it
  - categoryType: Type namespace to resolve in

Returns:
  - *Category: the existing or freshly created entry
  - error: validation or persistence errors
*/
func (service *Service) Resolve(ctx context.Context, label string, categoryType Type) (*Category, error) {
	validator := &validate.Validator{}
	validator.Required(FieldLabel, label).MaxLen(FieldLabel, label, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	if !categoryType.IsValid() {
		return nil, validate.RequiredError(FieldType, "Unknown taxonomy type")
	}

	entity := Category{
		ID:        uuidv7.New(),
		Label:     label,
		Slug:      slug.From(label),
		Type:      categoryType,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	return service.repo.Upsert(ctx, &entity)
}

// ResolveLabels resolves a batch of chef-supplied labels under the
// implicit authoring path (always type=category, creation silent).
// Duplicate labels in the input collapse to one entry.
//
// Implements [recipe.CategoryResolver].
func (service *Service) ResolveLabels(ctx context.Context, labels []string) ([]recipe.CategoryRef, error) {
	refs := make([]recipe.CategoryRef, 0, len(labels))
	seen := make(map[string]bool, len(labels))

	for _, label := range labels {
		entity, err := service.Resolve(ctx, label, TypeCategory)
		if err != nil {
			return nil, err
		}
		if seen[entity.ID] {
			continue
		}
		seen[entity.ID] = true
		refs = append(refs, recipe.CategoryRef{ID: entity.ID, Label: entity.Label, Slug: entity.Slug})
	}

	return refs, nil
}

// # Curation

// Create adds a taxonomy entry explicitly. Unlike [Service.Resolve], a
// (slug, type) twin here is a CONFLICT surfaced to the administrator.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Category, error) {
	validator := &validate.Validator{}
	validator.Required(FieldLabel, input.Label).MaxLen(FieldLabel, input.Label, 100)
	validator.OneOf(FieldType, input.Type, string(TypeCategory), string(TypeCuisine), string(TypeDietary))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entity := Category{
		ID:        uuidv7.New(),
		Label:     input.Label,
		Slug:      slug.From(input.Label),
		Type:      Type(input.Type),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := service.repo.Create(ctx, &entity); err != nil {
		return nil, err
	}

	service.logger.Info("category_created",
		slog.String("category_id", entity.ID),
		slog.String("slug", entity.Slug),
		slog.String("type", string(entity.Type)),
	)

	return &entity, nil
}

/*
Rename changes an entry's label, regenerating its slug.

Description: The new slug must survive the (slug, type) uniqueness check;
a collision with a sibling entry is a CONFLICT and nothing is written.
Recipes referencing the entry follow along automatically since the
junction is keyed by ID.
*/
func (service *Service) Rename(ctx context.Context, id string, input RenameInput) (*Category, error) {
	validator := &validate.Validator{}
	validator.Required(FieldLabel, input.Label).MaxLen(FieldLabel, input.Label, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entity, err := service.repo.Rename(ctx, id, input.Label, slug.From(input.Label))
	if err != nil {
		return nil, err
	}

	service.logger.Info("category_renamed",
		slog.String("category_id", id),
		slog.String("slug", entity.Slug),
	)

	return entity, nil
}

/*
Delete removes a taxonomy entry.

Description: Without force, deletion refuses when any recipe references
the entry, reporting the in-use count. With force it proceeds
unconditionally, dropping the junction rows in the same transaction;
recipes that referenced the entry simply show one category fewer.

Parameters:
  - ctx: context.Context
  - id: string
  - force: bool
*/
func (service *Service) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		count, err := service.repo.UsageCount(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict(fmt.Sprintf("Category is referenced by %d recipes", count))
		}
	}

	if err := service.repo.Delete(ctx, id, force); err != nil {
		return err
	}

	service.logger.Warn("category_deleted",
		slog.String("category_id", id),
		slog.Bool("force", force),
	)

	return nil
}

// List returns taxonomy entries, optionally filtered by type.
func (service *Service) List(ctx context.Context, categoryType string, limit, offset int) ([]*Category, int, error) {
	if categoryType != "" && !Type(categoryType).IsValid() {
		return nil, 0, validate.RequiredError(FieldType, "Unknown taxonomy type")
	}
	return service.repo.List(ctx, Type(categoryType), limit, offset)
}
