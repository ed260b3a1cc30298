// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package recipe

import "context"

// Repository is the persistence boundary for the recipe aggregate.
//
// Implementations must make every mutation atomic per call: a guarded
// update either fully applies or fully fails, and the expected-status
// guard is evaluated at the database, not in application memory.
type Repository interface {
	Create(ctx context.Context, r *Recipe) error
	FindByID(ctx context.Context, id string) (*Recipe, error)
	FindBySlug(ctx context.Context, slug string) (*Recipe, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]*Recipe, int, error)

	// Update persists content, lifecycle fields, and category junctions in
	// one transaction. The row is matched on (id, expected status) so a
	// concurrent transition cannot be silently overwritten.
	Update(ctx context.Context, r *Recipe, expected Status) error

	// UpdateLifecycle persists only the status, decision timestamps, and
	// rejection note, guarded on the expected current status.
	UpdateLifecycle(ctx context.Context, r *Recipe, expected Status) error

	// HardDelete removes the recipe, its reviews, their replies, and its
	// category junctions in one transaction. Irreversible.
	HardDelete(ctx context.Context, id string) error
}

// Counter identifies one of the per-recipe engagement counters.
type Counter string

const (
	CounterViews    Counter = "views"
	CounterSaves    Counter = "saves"
	CounterListAdds Counter = "listadds"
)

// CounterStore keeps the hot engagement counters. Increments must be atomic
// so that concurrent requests are all reflected.
type CounterStore interface {
	Increment(ctx context.Context, counter Counter, recipeID string) (int64, error)
	Snapshot(ctx context.Context, recipeID string) (Engagement, error)

	// Purge drops all counters for a recipe. Called on hard delete.
	Purge(ctx context.Context, recipeID string) error
}

// CategoryResolver maps free-text category labels to stable taxonomy
// entries, creating missing ones silently. Implemented by the category
// service; declared here so the recipe domain stays decoupled from it.
type CategoryResolver interface {
	ResolveLabels(ctx context.Context, labels []string) ([]CategoryRef, error)
}
