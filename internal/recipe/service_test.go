// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package recipe_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/apperr"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/recipe"
)

// fakeRecipeRepo is an in-memory Repository enforcing the same
// expected-status guard as the real store.
type fakeRecipeRepo struct {
	recipes map[string]*recipe.Recipe
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[string]*recipe.Recipe)}
}

func (r *fakeRecipeRepo) Create(_ context.Context, entity *recipe.Recipe) error {
	copied := *entity
	r.recipes[entity.ID] = &copied
	return nil
}

func (r *fakeRecipeRepo) FindByID(_ context.Context, id string) (*recipe.Recipe, error) {
	entity, ok := r.recipes[id]
	if !ok {
		return nil, apperr.NotFound("Recipe")
	}
	copied := *entity
	return &copied, nil
}

func (r *fakeRecipeRepo) FindBySlug(_ context.Context, slug string) (*recipe.Recipe, error) {
	for _, entity := range r.recipes {
		if entity.Slug == slug {
			copied := *entity
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Recipe")
}

func (r *fakeRecipeRepo) List(_ context.Context, f recipe.Filter, _, _ int) ([]*recipe.Recipe, int, error) {
	var out []*recipe.Recipe
	for _, entity := range r.recipes {
		if f.ChefID != "" && entity.ChefID != f.ChefID {
			continue
		}
		if len(f.Status) > 0 && !statusIn(entity.Status, f.Status) {
			continue
		}
		copied := *entity
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *fakeRecipeRepo) Update(_ context.Context, entity *recipe.Recipe, expected recipe.Status) error {
	return r.guardedWrite(entity, expected)
}

func (r *fakeRecipeRepo) UpdateLifecycle(_ context.Context, entity *recipe.Recipe, expected recipe.Status) error {
	return r.guardedWrite(entity, expected)
}

func (r *fakeRecipeRepo) guardedWrite(entity *recipe.Recipe, expected recipe.Status) error {
	current, ok := r.recipes[entity.ID]
	if !ok {
		return apperr.NotFound("Recipe")
	}
	if current.Status != expected {
		return apperr.Conflict("Recipe was modified concurrently")
	}
	copied := *entity
	r.recipes[entity.ID] = &copied
	return nil
}

func (r *fakeRecipeRepo) HardDelete(_ context.Context, id string) error {
	if _, ok := r.recipes[id]; !ok {
		return apperr.NotFound("Recipe")
	}
	delete(r.recipes, id)
	return nil
}

func statusIn(s recipe.Status, set []recipe.Status) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

// fakeCounters records increments and purges per recipe.
type fakeCounters struct {
	counts map[string]int64
	purged []string
}

func newFakeCounters() *fakeCounters {
	return &fakeCounters{counts: make(map[string]int64)}
}

func (c *fakeCounters) Increment(_ context.Context, counter recipe.Counter, recipeID string) (int64, error) {
	key := string(counter) + ":" + recipeID
	c.counts[key]++
	return c.counts[key], nil
}

func (c *fakeCounters) Snapshot(_ context.Context, recipeID string) (recipe.Engagement, error) {
	return recipe.Engagement{
		Views:    c.counts[string(recipe.CounterViews)+":"+recipeID],
		Saves:    c.counts[string(recipe.CounterSaves)+":"+recipeID],
		ListAdds: c.counts[string(recipe.CounterListAdds)+":"+recipeID],
	}, nil
}

func (c *fakeCounters) Purge(_ context.Context, recipeID string) error {
	c.purged = append(c.purged, recipeID)
	return nil
}

// fakeResolver assigns one stable ID per distinct label.
type fakeResolver struct {
	ids map[string]string
}

func (r *fakeResolver) ResolveLabels(_ context.Context, labels []string) ([]recipe.CategoryRef, error) {
	if r.ids == nil {
		r.ids = make(map[string]string)
	}
	var refs []recipe.CategoryRef
	for _, label := range labels {
		normalized := strings.ToLower(label)
		if _, ok := r.ids[normalized]; !ok {
			r.ids[normalized] = fmt.Sprintf("cat-%d", len(r.ids)+1)
		}
		refs = append(refs, recipe.CategoryRef{ID: r.ids[normalized], Label: label, Slug: normalized})
	}
	return refs, nil
}

type fixture struct {
	service  *recipe.Service
	repo     *fakeRecipeRepo
	counters *fakeCounters
}

func newFixture() fixture {
	repo := newFakeRecipeRepo()
	counters := newFakeCounters()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return fixture{
		service:  recipe.NewService(repo, counters, &fakeResolver{}, logger),
		repo:     repo,
		counters: counters,
	}
}

func validInput() recipe.CreateInput {
	return recipe.CreateInput{
		Title:       "Street Tacos",
		Description: "Corn tortillas, slow-cooked pork, fresh salsa.",
		Cuisine:     "mexican",
		Ingredients: []recipe.Ingredient{{Name: "tortillas", Quantity: "6"}},
		Steps:       []string{"Warm the tortillas.", "Assemble."},
		CategoryLabels: []string{
			"Street Food",
		},
	}
}

/*
TestService_Create verifies that a submission enters the lifecycle at
pending with its category labels resolved.
*/
func TestService_Create(t *testing.T) {
	t.Run("enters_pending", func(t *testing.T) {
		fix := newFixture()

		entity, err := fix.service.Create(context.Background(), "chef-1", validInput())
		require.NoError(t, err)

		assert.Equal(t, recipe.StatusPending, entity.Status)
		assert.Equal(t, "street-tacos", entity.Slug)
		assert.False(t, entity.SubmittedAt.IsZero())
		assert.Nil(t, entity.ApprovedAt)
		require.Len(t, entity.Categories, 1)
		assert.Equal(t, "Street Food", entity.Categories[0].Label)
	})

	t.Run("duplicate_title_gets_disambiguated_slug", func(t *testing.T) {
		fix := newFixture()

		first, err := fix.service.Create(context.Background(), "chef-1", validInput())
		require.NoError(t, err)
		assert.Equal(t, "street-tacos", first.Slug)

		// A second chef with the same title keeps their submission; the
		// slug gets an ID suffix instead of colliding.
		second, err := fix.service.Create(context.Background(), "chef-2", validInput())
		require.NoError(t, err)
		assert.Equal(t, "street-tacos-"+second.ID[:8], second.Slug)
	})

	t.Run("missing_content", func(t *testing.T) {
		fix := newFixture()

		input := validInput()
		input.Title = ""
		input.Steps = nil

		_, err := fix.service.Create(context.Background(), "chef-1", input)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		assert.Len(t, ae.Details, 2)
	})
}

/*
TestService_Update covers the ownership gate and the major/minor edit
distinction.
*/
func TestService_Update(t *testing.T) {
	approve := func(t *testing.T, fix fixture, id string) {
		t.Helper()
		_, err := fix.service.ChangeStatus(context.Background(), "admin-1", id, "approved", "")
		require.NoError(t, err)
	}

	t.Run("non_owner_gets_not_found", func(t *testing.T) {
		fix := newFixture()
		entity, err := fix.service.Create(context.Background(), "chef-1", validInput())
		require.NoError(t, err)

		title := "Hijacked"
		_, err = fix.service.Update(context.Background(), "chef-2", false, entity.ID, recipe.UpdateInput{Title: &title})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		// Ownership failures never disclose existence.
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})

	t.Run("major_edit_regresses_approved", func(t *testing.T) {
		fix := newFixture()
		entity, err := fix.service.Create(context.Background(), "chef-1", validInput())
		require.NoError(t, err)
		approve(t, fix, entity.ID)

		steps := []string{"Completely new method."}
		updated, err := fix.service.Update(context.Background(), "chef-1", false, entity.ID, recipe.UpdateInput{Steps: &steps})
		require.NoError(t, err)

		assert.Equal(t, recipe.StatusPending, updated.Status)
		assert.Nil(t, updated.ApprovedAt)
	})

	t.Run("minor_edit_keeps_approved", func(t *testing.T) {
		fix := newFixture()
		entity, err := fix.service.Create(context.Background(), "chef-1", validInput())
		require.NoError(t, err)
		approve(t, fix, entity.ID)

		servings := 4
		updated, err := fix.service.Update(context.Background(), "chef-1", false, entity.ID, recipe.UpdateInput{Servings: &servings})
		require.NoError(t, err)

		assert.Equal(t, recipe.StatusApproved, updated.Status)
		assert.NotNil(t, updated.ApprovedAt)
		assert.Equal(t, 4, updated.Servings)
	})

	t.Run("unchanged_major_field_is_minor", func(t *testing.T) {
		fix := newFixture()
		entity, err := fix.service.Create(context.Background(), "chef-1", validInput())
		require.NoError(t, err)
		approve(t, fix, entity.ID)

		// Sending the same title back is not a content change.
		title := "Street Tacos"
		updated, err := fix.service.Update(context.Background(), "chef-1", false, entity.ID, recipe.UpdateInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, recipe.StatusApproved, updated.Status)
	})

	t.Run("title_change_regenerates_slug", func(t *testing.T) {
		fix := newFixture()
		entity, err := fix.service.Create(context.Background(), "chef-1", validInput())
		require.NoError(t, err)

		title := "Baja Fish Tacos"
		updated, err := fix.service.Update(context.Background(), "chef-1", false, entity.ID, recipe.UpdateInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "baja-fish-tacos", updated.Slug)
	})

	t.Run("retitle_keeps_own_slug", func(t *testing.T) {
		fix := newFixture()
		entity, err := fix.service.Create(context.Background(), "chef-1", validInput())
		require.NoError(t, err)

		// The recipe already holds street-tacos; a retitle that slugs to
		// the same value must not trigger the suffix.
		title := "STREET TACOS"
		updated, err := fix.service.Update(context.Background(), "chef-1", false, entity.ID, recipe.UpdateInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "street-tacos", updated.Slug)
	})
}

/*
TestService_ChangeStatus covers administrator decisions and their guards.
*/
func TestService_ChangeStatus(t *testing.T) {
	fix := newFixture()
	entity, err := fix.service.Create(context.Background(), "chef-1", validInput())
	require.NoError(t, err)

	// Approve the pending submission.
	approved, err := fix.service.ChangeStatus(context.Background(), "admin-1", entity.ID, "approved", "")
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusApproved, approved.Status)

	// Approving again conflicts.
	_, err = fix.service.ChangeStatus(context.Background(), "admin-1", entity.ID, "approved", "")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	// Reject the live recipe with a note.
	rejected, err := fix.service.ChangeStatus(context.Background(), "admin-1", entity.ID, "rejected", "reported as duplicate")
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusRejected, rejected.Status)
	assert.Equal(t, "reported as duplicate", rejected.RejectionNote)

	// Unknown and non-decision statuses are refused up front.
	_, err = fix.service.ChangeStatus(context.Background(), "admin-1", entity.ID, "published", "")
	require.NotNil(t, apperr.As(err))
	_, err = fix.service.ChangeStatus(context.Background(), "admin-1", entity.ID, "archived", "")
	require.NotNil(t, apperr.As(err))
}

/*
TestService_Get covers identifier detection, the visibility rule, and the
view-counting side effect.
*/
func TestService_Get(t *testing.T) {
	t.Run("pending_hidden_from_public", func(t *testing.T) {
		fix := newFixture()
		entity, err := fix.service.Create(context.Background(), "chef-1", validInput())
		require.NoError(t, err)

		_, err = fix.service.Get(context.Background(), entity.ID, "stranger", false)
		require.NotNil(t, apperr.As(err))

		// Owner and admin still see it.
		_, err = fix.service.Get(context.Background(), entity.ID, "chef-1", false)
		require.NoError(t, err)
		_, err = fix.service.Get(context.Background(), entity.ID, "admin-1", true)
		require.NoError(t, err)
	})

	t.Run("approved_read_counts_view", func(t *testing.T) {
		fix := newFixture()
		entity, err := fix.service.Create(context.Background(), "chef-1", validInput())
		require.NoError(t, err)
		_, err = fix.service.ChangeStatus(context.Background(), "admin-1", entity.ID, "approved", "")
		require.NoError(t, err)

		// Slug lookup works the same as ID lookup.
		first, err := fix.service.Get(context.Background(), "street-tacos", "stranger", false)
		require.NoError(t, err)
		assert.Equal(t, entity.ID, first.ID)
		assert.EqualValues(t, 1, first.Engagement.Views)

		second, err := fix.service.Get(context.Background(), entity.ID, "stranger", false)
		require.NoError(t, err)
		assert.EqualValues(t, 2, second.Engagement.Views)
	})

	t.Run("uuid_length_slug_routes_to_slug_lookup", func(t *testing.T) {
		fix := newFixture()

		// This title slugs to exactly 36 characters; only a real UUID
		// parse may route the identifier to the ID lookup.
		input := validInput()
		input.Title = "Abcdefghij Klmnopqrstu Vwxyz0123 456"
		entity, err := fix.service.Create(context.Background(), "chef-1", input)
		require.NoError(t, err)
		require.Len(t, entity.Slug, 36)

		_, err = fix.service.ChangeStatus(context.Background(), "admin-1", entity.ID, "approved", "")
		require.NoError(t, err)

		found, err := fix.service.Get(context.Background(), entity.Slug, "stranger", false)
		require.NoError(t, err)
		assert.Equal(t, entity.ID, found.ID)
	})
}

/*
TestService_RecordEngagement verifies saves are only counted on public
recipes.
*/
func TestService_RecordEngagement(t *testing.T) {
	fix := newFixture()
	entity, err := fix.service.Create(context.Background(), "chef-1", validInput())
	require.NoError(t, err)

	// Not yet approved: engagement is refused without disclosing state.
	_, err = fix.service.RecordEngagement(context.Background(), recipe.CounterSaves, entity.ID)
	require.NotNil(t, apperr.As(err))

	_, err = fix.service.ChangeStatus(context.Background(), "admin-1", entity.ID, "approved", "")
	require.NoError(t, err)

	total, err := fix.service.RecordEngagement(context.Background(), recipe.CounterSaves, entity.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

/*
TestService_HardDelete verifies the counters are purged with the record.
*/
func TestService_HardDelete(t *testing.T) {
	fix := newFixture()
	entity, err := fix.service.Create(context.Background(), "chef-1", validInput())
	require.NoError(t, err)

	require.NoError(t, fix.service.HardDelete(context.Background(), entity.ID))
	assert.Contains(t, fix.counters.purged, entity.ID)

	err = fix.service.HardDelete(context.Background(), entity.ID)
	require.NotNil(t, apperr.As(err))
}
