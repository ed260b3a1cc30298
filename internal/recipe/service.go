// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package recipe

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/apperr"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/validate"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/pkg/slug"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for the recipe lifecycle.
// It is the only component allowed to drive [Transition].
type Service struct {
	repo       Repository
	counters   CounterStore
	categories CategoryResolver
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(repo Repository, counters CounterStore, categories CategoryResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		counters:   counters,
		categories: categories,
		logger:     logger,
	}
}

// # Authoring Inputs

// CreateInput carries the chef-supplied content for a new recipe.
type CreateInput struct {
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Cuisine        string       `json:"cuisine"`
	DietaryTags    []string     `json:"dietary_tags"`
	CategoryLabels []string     `json:"categories"`
	Ingredients    []Ingredient `json:"ingredients"`
	Steps          []string     `json:"steps"`
	ImageURLs      []string     `json:"image_urls"`
	PrepMinutes    int          `json:"prep_minutes"`
	CookMinutes    int          `json:"cook_minutes"`
	Servings       int          `json:"servings"`
	ChefProfileID  *string      `json:"chef_profile_id,omitempty"`
}

// UpdateInput carries a partial edit. Nil fields are untouched; non-nil
// fields overwrite. The distinction between nil and an explicit empty value
// matters for major-edit detection, hence the pointers.
type UpdateInput struct {
	Title          *string       `json:"title"`
	Description    *string       `json:"description"`
	Cuisine        *string       `json:"cuisine"`
	DietaryTags    *[]string     `json:"dietary_tags"`
	CategoryLabels *[]string     `json:"categories"`
	Ingredients    *[]Ingredient `json:"ingredients"`
	Steps          *[]string     `json:"steps"`
	ImageURLs      *[]string     `json:"image_urls"`
	PrepMinutes    *int          `json:"prep_minutes"`
	CookMinutes    *int          `json:"cook_minutes"`
	Servings       *int          `json:"servings"`
}

// # Chef Operations

/*
Create submits a brand-new recipe on behalf of a chef.

Description: Validates the content, resolves free-text category labels into
taxonomy entries (silently creating missing ones), and enters the lifecycle
at pending via the Submit transition.

Parameters:
  - ctx: context.Context
  - chefID: owning chef's user ID (from verified claims)
  - input: CreateInput

Returns:
  - *Recipe: the persisted entity (status=pending)
  - error: validation or persistence errors
*/
func (service *Service) Create(ctx context.Context, chefID string, input CreateInput) (*Recipe, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	validator.Required(FieldDescription, input.Description)
	validator.NonEmptySlice(FieldIngredients, len(input.Ingredients))
	validator.NonEmptySlice(FieldSteps, len(input.Steps))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	refs, err := service.categories.ResolveLabels(ctx, input.CategoryLabels)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	id := uuidv7.New()
	entity := Recipe{
		ID:            id,
		ChefID:        chefID,
		ChefProfileID: input.ChefProfileID,
		Title:         input.Title,
		Slug:          service.uniqueSlug(ctx, input.Title, id),
		Description:   input.Description,
		Cuisine:       input.Cuisine,
		DietaryTags:   input.DietaryTags,
		Ingredients:   input.Ingredients,
		Steps:         input.Steps,
		ImageURLs:     input.ImageURLs,
		PrepMinutes:   input.PrepMinutes,
		CookMinutes:   input.CookMinutes,
		Servings:      input.Servings,
		Categories:    refs,
		CategoryIDs:   refIDs(refs),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	entity, err = Transition(entity, Submit{Now: now})
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(ctx, &entity); err != nil {
		return nil, err
	}

	service.logger.Info("recipe_submitted",
		slog.String("recipe_id", entity.ID),
		slog.String("chef_id", chefID),
	)

	return &entity, nil
}

/*
Update applies a chef's partial edit to an owned recipe.

Description: Loads the current entity, applies non-nil patch fields, and
runs the Edit transition. A change to any major field (title, description,
cuisine, dietary tags, categories, ingredients, steps) while the recipe is
approved regresses it to pending and clears the approval timestamp. Edits
to pending or rejected recipes never change status.

Ownership: a mismatch between caller and owner is reported as not-found so
existence is never disclosed. Administrators may edit on a chef's behalf.
*/
func (service *Service) Update(ctx context.Context, callerID string, callerIsAdmin bool, recipeID string, input UpdateInput) (*Recipe, error) {
	current, err := service.ownedRecipe(ctx, callerID, callerIsAdmin, recipeID)
	if err != nil {
		return nil, err
	}

	entity := *current
	majorChanged := false

	if input.Title != nil && *input.Title != entity.Title {
		validator := &validate.Validator{}
		if err := validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 200).Err(); err != nil {
			return nil, err
		}
		entity.Title = *input.Title
		entity.Slug = service.uniqueSlug(ctx, *input.Title, entity.ID)
		majorChanged = true
	}
	if input.Description != nil && *input.Description != entity.Description {
		entity.Description = *input.Description
		majorChanged = true
	}
	if input.Cuisine != nil && *input.Cuisine != entity.Cuisine {
		entity.Cuisine = *input.Cuisine
		majorChanged = true
	}
	if input.DietaryTags != nil && !equalStrings(*input.DietaryTags, entity.DietaryTags) {
		entity.DietaryTags = *input.DietaryTags
		majorChanged = true
	}
	if input.CategoryLabels != nil {
		refs, err := service.categories.ResolveLabels(ctx, *input.CategoryLabels)
		if err != nil {
			return nil, err
		}
		if !equalStrings(refIDs(refs), entity.CategoryIDs) {
			entity.Categories = refs
			entity.CategoryIDs = refIDs(refs)
			majorChanged = true
		}
	}
	if input.Ingredients != nil && !equalIngredients(*input.Ingredients, entity.Ingredients) {
		entity.Ingredients = *input.Ingredients
		majorChanged = true
	}
	if input.Steps != nil && !equalStrings(*input.Steps, entity.Steps) {
		entity.Steps = *input.Steps
		majorChanged = true
	}

	// Minor fields: never affect the lifecycle.
	if input.ImageURLs != nil {
		entity.ImageURLs = *input.ImageURLs
	}
	if input.PrepMinutes != nil {
		entity.PrepMinutes = *input.PrepMinutes
	}
	if input.CookMinutes != nil {
		entity.CookMinutes = *input.CookMinutes
	}
	if input.Servings != nil {
		entity.Servings = *input.Servings
	}

	now := time.Now().UTC()
	entity.UpdatedAt = now
	entity, err = Transition(entity, Edit{Now: now, MajorChanged: majorChanged})
	if err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, &entity, current.Status); err != nil {
		return nil, err
	}

	service.logger.Info("recipe_updated",
		slog.String("recipe_id", entity.ID),
		slog.Bool("major_edit", majorChanged),
		slog.String("status", string(entity.Status)),
	)

	return &entity, nil
}

// Archive is the chef's soft delete: the recipe and its reviews persist,
// but the recipe disappears from public listings.
func (service *Service) Archive(ctx context.Context, callerID string, callerIsAdmin bool, recipeID string) error {
	current, err := service.ownedRecipe(ctx, callerID, callerIsAdmin, recipeID)
	if err != nil {
		return err
	}

	entity, err := Transition(*current, Archive{})
	if err != nil {
		return err
	}
	entity.UpdatedAt = time.Now().UTC()

	if err := service.repo.UpdateLifecycle(ctx, &entity, current.Status); err != nil {
		return err
	}

	service.logger.Warn("recipe_archived", slog.String("recipe_id", recipeID))
	return nil
}

// ListOwn returns the chef's own recipes in any status.
func (service *Service) ListOwn(ctx context.Context, chefID string, limit, offset int) ([]*Recipe, int, error) {
	return service.repo.List(ctx, Filter{ChefID: chefID}, limit, offset)
}

// # Administrator Operations

// ListByStatus returns recipes in the requested status for the review
// queue. An empty status means all statuses.
func (service *Service) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Recipe, int, error) {
	f := Filter{}
	if status != "" {
		s := Status(status)
		if !s.IsValid() {
			return nil, 0, validate.RequiredError(FieldStatus, "Unknown status value")
		}
		f.Status = []Status{s}
	}
	return service.repo.List(ctx, f, limit, offset)
}

/*
ChangeStatus executes an administrator lifecycle decision.

Description: Maps the requested status onto the corresponding typed command
(approved → Approve, rejected → Reject with note, pending → ResetToPending)
and persists the transition guarded on the current status. The status value
is validated before any mutation occurs.
*/
func (service *Service) ChangeStatus(ctx context.Context, adminID, recipeID, status, note string) (*Recipe, error) {
	target := Status(status)
	if !target.IsValid() {
		return nil, validate.RequiredError(FieldStatus, "Unknown status value")
	}

	current, err := service.repo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var cmd Command
	switch target {
	case StatusApproved:
		cmd = Approve{Now: now}
	case StatusRejected:
		cmd = Reject{Now: now, Note: note}
	case StatusPending:
		cmd = ResetToPending{Now: now}
	default:
		return nil, validate.RequiredError(FieldStatus, "Status cannot be set directly")
	}

	entity, err := Transition(*current, cmd)
	if err != nil {
		return nil, err
	}
	entity.UpdatedAt = now

	if err := service.repo.UpdateLifecycle(ctx, &entity, current.Status); err != nil {
		return nil, err
	}

	service.logger.Info("recipe_status_changed",
		slog.String("recipe_id", recipeID),
		slog.String("admin_id", adminID),
		slog.String("from", string(current.Status)),
		slog.String("to", string(entity.Status)),
	)

	return &entity, nil
}

// HardDelete irreversibly removes a recipe, its reviews, and their replies.
// This is distinct from the chef's archive, and is also the cascade routine
// reused by flag resolution.
func (service *Service) HardDelete(ctx context.Context, recipeID string) error {
	if err := service.repo.HardDelete(ctx, recipeID); err != nil {
		return err
	}

	// Counters are best-effort cleanup: the recipe row is already gone.
	if err := service.counters.Purge(ctx, recipeID); err != nil {
		service.logger.Error("recipe_counter_purge_failed",
			slog.String("recipe_id", recipeID),
			slog.Any("error", err),
		)
	}

	service.logger.Warn("recipe_hard_deleted", slog.String("recipe_id", recipeID))
	return nil
}

// # Public Catalogue

// ListPublic returns approved recipes only, regardless of the caller.
func (service *Service) ListPublic(ctx context.Context, f Filter, limit, offset int) ([]*Recipe, int, error) {
	f.Status = []Status{StatusApproved}
	return service.repo.List(ctx, f, limit, offset)
}

/*
Get fetches a single recipe by UUID or slug and applies the visibility rule:
anything other than approved is visible only to the owning chef and
administrators.

A successful public read counts as a view.
*/
func (service *Service) Get(ctx context.Context, identifier, viewerID string, viewerIsAdmin bool) (*Recipe, error) {
	var entity *Recipe
	var err error

	// Identity format detection, UUID first, slug fallback.
	if isUUID(identifier) {
		entity, err = service.repo.FindByID(ctx, identifier)
	} else {
		entity, err = service.repo.FindBySlug(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}

	if entity.Status != StatusApproved && entity.ChefID != viewerID && !viewerIsAdmin {
		return nil, apperr.NotFound("Recipe")
	}

	if entity.Status == StatusApproved {
		if _, err := service.counters.Increment(ctx, CounterViews, entity.ID); err != nil {
			service.logger.Error("view_counter_failed", slog.String("recipe_id", entity.ID), slog.Any("error", err))
		}
	}

	if snapshot, err := service.counters.Snapshot(ctx, entity.ID); err == nil {
		entity.Engagement = snapshot
	}

	return entity, nil
}

// RecordEngagement bumps the save or shopping-list-add counter.
func (service *Service) RecordEngagement(ctx context.Context, counter Counter, recipeID string) (int64, error) {
	// The recipe must exist and be public before we count anything.
	entity, err := service.repo.FindByID(ctx, recipeID)
	if err != nil {
		return 0, err
	}
	if entity.Status != StatusApproved {
		return 0, apperr.NotFound("Recipe")
	}

	return service.counters.Increment(ctx, counter, recipeID)
}

// # Internal Helpers

// ownedRecipe loads a recipe and enforces the ownership rule: a caller who
// is neither the owner nor an administrator gets a not-found, never a
// forbidden, so existence is not disclosed.
func (service *Service) ownedRecipe(ctx context.Context, callerID string, callerIsAdmin bool, recipeID string) (*Recipe, error) {
	entity, err := service.repo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if entity.ChefID != callerID && !callerIsAdmin {
		return nil, apperr.NotFound("Recipe")
	}
	return entity, nil
}

// uniqueSlug derives the URL slug from a recipe's title. When another
// recipe already holds the base slug, a short ID suffix disambiguates;
// the holding recipe itself keeps the base slug, so a rename back to a
// previous title is a no-op. The unique index on the slug column remains
// the backstop for races.
func (service *Service) uniqueSlug(ctx context.Context, title, recipeID string) string {
	base := slug.From(title)
	existing, err := service.repo.FindBySlug(ctx, base)
	if err != nil || existing.ID == recipeID {
		return base
	}
	return base + "-" + recipeID[:8]
}

// isUUID reports whether the identifier parses as a UUID. Length alone is
// not enough: a 36-character slug must still route to the slug lookup.
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func refIDs(refs []CategoryRef) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalIngredients(a, b []Ingredient) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
