// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
Package review owns the reader feedback attached to published recipes.

A review carries a 1-5 star rating plus an optional comment; its rating is
folded into the recipe's running average at the moment it is created. A
chef may answer a review on their own recipe with a reply. Replies are
append-only: there is no edit or delete surface for them.
*/
package review

import "time"

// # Domain Enums

// Status represents the moderation visibility of a review.
type Status string

const (
	// StatusVisible is the default state. The review appears in listings.
	StatusVisible Status = "visible"

	// StatusFlagged marks a review with at least one open flag. It stays
	// visible until a moderator decides otherwise.
	StatusFlagged Status = "flagged"

	// StatusRemoved hides the review from all listings. The row persists
	// so the recipe's rating history stays explainable.
	StatusRemoved Status = "removed"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusVisible, StatusFlagged, StatusRemoved:
		return true
	}
	return false
}

// # Core Entities

// Review is a reader's rating and comment on an approved recipe.
//
// AuthorID is a pointer: account deletion nulls it out while the review
// and its contribution to the rating average survive.
type Review struct {
	ID          string  `json:"id"`
	RecipeID    string  `json:"recipe_id"`
	AuthorID    *string `json:"author_id,omitempty"`
	DisplayName string  `json:"display_name"`
	Rating      int     `json:"rating"`
	Comment     string  `json:"comment,omitempty"`
	Status      Status  `json:"status"`

	// Replies are hydrated on listing reads, oldest first.
	Replies []Reply `json:"replies,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Reply is a chef's answer to a review on their own recipe.
type Reply struct {
	ID          string    `json:"id"`
	ReviewID    string    `json:"review_id"`
	AuthorID    string    `json:"author_id"`
	DisplayName string    `json:"display_name"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldRating  = "rating"
	FieldComment = "comment"
	FieldReview  = "review_id"
)
