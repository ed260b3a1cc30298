// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package moderation

import "context"

// Repository is the persistence boundary for the flag queue.
type Repository interface {
	Create(ctx context.Context, f *Flag) error
	FindByID(ctx context.Context, id string) (*Flag, error)

	// List returns flags filtered by status (empty means all), newest
	// first.
	List(ctx context.Context, status Status, limit, offset int) ([]*Flag, int, error)

	// UpdateResolution persists the post-decision state, guarded on the
	// expected current status so racing moderators cannot both win.
	UpdateResolution(ctx context.Context, f *Flag, expected Status) error

	// CaptureTarget reads the target's current title and snippet for the
	// denormalized snapshot, switching on the closed target kind. Returns
	// apperr.NotFound when the target does not exist.
	CaptureTarget(ctx context.Context, target TargetRef) (title, snippet string, err error)
}

// DeleteFunc is one kind-specific hard-deletion routine.
type DeleteFunc func(ctx context.Context, id string) error

// CascadeDeleters binds each target kind to the deletion routine of its
// owning domain. The same routines back the direct administrator deletion
// endpoints; the flag cascade just reuses them.
type CascadeDeleters struct {
	Recipe      DeleteFunc
	Review      DeleteFunc
	User        DeleteFunc
	ChefProfile DeleteFunc
}

// For returns the deleter for a target kind, or nil for an unknown kind.
func (c CascadeDeleters) For(kind TargetKind) DeleteFunc {
	switch kind {
	case TargetRecipe:
		return c.Recipe
	case TargetReview:
		return c.Review
	case TargetUser:
		return c.User
	case TargetChefProfile:
		return c.ChefProfile
	}
	return nil
}
