// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package category

import "context"

// Repository is the persistence boundary for the taxonomy.
type Repository interface {
	// Upsert inserts the entry unless a (slug, type) twin already exists,
	// and returns whichever row won. Safe under concurrent resolution of
	// the same label: the uniqueness constraint decides at commit, and
	// both callers get the surviving row.
	Upsert(ctx context.Context, c *Category) (*Category, error)

	// Create inserts strictly, surfacing CONFLICT on a (slug, type) twin.
	// Used by explicit curation, where a duplicate is an error.
	Create(ctx context.Context, c *Category) error

	FindByID(ctx context.Context, id string) (*Category, error)
	FindBySlug(ctx context.Context, slug string, categoryType Type) (*Category, error)
	List(ctx context.Context, categoryType Type, limit, offset int) ([]*Category, int, error)

	// Rename updates label and slug, surfacing CONFLICT when the new
	// slug collides within the type.
	Rename(ctx context.Context, id, label, slug string) (*Category, error)

	// UsageCount returns how many recipes currently reference the entry.
	UsageCount(ctx context.Context, id string) (int, error)

	// Delete removes the entry. With purgeLinks the junction rows go in
	// the same transaction; without it they are left to the caller's
	// in-use check.
	Delete(ctx context.Context, id string, purgeLinks bool) error
}
