// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
Package recipe defines the core domain entities for the TelleRecipes catalogue.

It owns the publication lifecycle of a recipe (draft → pending → approved /
rejected / archived), the derived rating summary, and the engagement counters.

Core Responsibility:

  - Lifecycle: the moderation state machine driven by chef submissions/edits
    and administrator decisions.
  - Catalogue: public discovery of approved recipes.
  - Analytics: view/save/shopping-list counters for ranking.

This package acts as the source of truth for all recipe-related data models.
*/
package recipe

import "time"

// # Domain Enums

// Status represents the moderation state of a recipe.
type Status string

const (
	// StatusDraft is an unsubmitted recipe. There is no user-facing path
	// into this state today, but it stays representable.
	StatusDraft Status = "draft"

	// StatusPending is the entry state for all new submissions, awaiting
	// administrator review.
	StatusPending Status = "pending"

	// StatusApproved makes the recipe publicly visible.
	StatusApproved Status = "approved"

	// StatusRejected hides the recipe; the rejection note is visible to the
	// owning chef only.
	StatusRejected Status = "rejected"

	// StatusArchived is the soft-removed state set by a chef delete. The
	// record and its reviews persist but the recipe is excluded from
	// public listings.
	StatusArchived Status = "archived"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case
		StatusDraft,
		StatusPending,
		StatusApproved,
		StatusRejected,
		StatusArchived:
		return true
	}
	return false
}

// # Core Entities

// Ingredient is a single entry of a recipe's ingredient list.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// RatingSummary is the incrementally maintained (average, count) pair.
//
// Invariant: Count == 0 implies Average == 0.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Fold returns the summary after absorbing one more rating. This is the
// reference form of the fold the review store runs in SQL: the persisted
// average is maintained with the same (avg*count + r) / (count+1) update,
// so no stored rating is ever re-read to recompute it.
func (s RatingSummary) Fold(rating int) RatingSummary {
	next := RatingSummary{Count: s.Count + 1}
	next.Average = (s.Average*float64(s.Count) + float64(rating)) / float64(next.Count)
	return next
}

// Engagement holds the hot per-recipe counters kept in Redis.
type Engagement struct {
	Views    int64 `json:"views"`
	Saves    int64 `json:"saves"`
	ListAdds int64 `json:"list_adds"`
}

// Recipe is the central aggregate of the TelleRecipes domain.
//
// Invariant: ApprovedAt and RejectedAt are mutually exclusive — setting one
// clears the other and clears any stale rejection note. All lifecycle
// mutation goes through [Transition]; nothing else writes these fields.
type Recipe struct {
	ID            string       `json:"id"`
	ChefID        string       `json:"chef_id"`
	ChefProfileID *string      `json:"chef_profile_id,omitempty"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Description   string       `json:"description"`
	Cuisine       string       `json:"cuisine"`
	DietaryTags   []string     `json:"dietary_tags"`
	Ingredients   []Ingredient `json:"ingredients"`
	Steps         []string     `json:"steps"`
	ImageURLs     []string     `json:"image_urls"`
	PrepMinutes   int          `json:"prep_minutes"`
	CookMinutes   int          `json:"cook_minutes"`
	Servings      int          `json:"servings"`

	// Categories holds the resolved taxonomy entries (input: free-text
	// labels, persisted: junction rows keyed by category ID).
	Categories  []CategoryRef `json:"categories,omitempty"`
	CategoryIDs []string      `json:"-"`

	// # Lifecycle
	Status        Status     `json:"status"`
	RejectionNote string     `json:"rejection_note,omitempty"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	RejectedAt    *time.Time `json:"rejected_at,omitempty"`

	// # Derived State
	Rating     RatingSummary `json:"rating"`
	Engagement Engagement    `json:"engagement"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryRef is the denormalized category link embedded in recipe reads.
type CategoryRef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered recipe list query.
type Filter struct {
	Status       []Status `json:"status,omitempty"`
	ChefID       string   `json:"chef_id,omitempty"`
	Cuisine      string   `json:"cuisine,omitempty"`
	DietaryTag   string   `json:"dietary_tag,omitempty"`
	CategorySlug string   `json:"category,omitempty"`
	Query        string   `json:"q,omitempty"`    // title search term
	Sort         string   `json:"sort,omitempty"` // latest, rating, popular
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID            = "id"
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldCuisine       = "cuisine"
	FieldDietaryTags   = "dietary_tags"
	FieldCategories    = "categories"
	FieldIngredients   = "ingredients"
	FieldSteps         = "steps"
	FieldImageURLs     = "image_urls"
	FieldPrepMinutes   = "prep_minutes"
	FieldCookMinutes   = "cook_minutes"
	FieldServings      = "servings"
	FieldStatus        = "status"
	FieldRejectionNote = "note"
	FieldRating        = "rating"
	FieldComment       = "comment"
)
