// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package recipe

import (
	"time"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/apperr"
)

// # Lifecycle State Machine
//
// All status mutation is expressed as a typed command applied to a recipe
// value by [Transition]. The function is pure: it returns the new entity or
// an error, and never touches storage. This keeps the transition rules in
// one place and makes them directly testable.

// Command is a typed lifecycle command. The set is closed: each command
// encodes one of the documented transitions.
type Command interface {
	isCommand()
}

// Submit is the chef creating (or explicitly resubmitting) a recipe.
// Any state → pending.
type Submit struct {
	Now time.Time
}

// Approve is an administrator decision. pending|rejected → approved.
type Approve struct {
	Now time.Time
}

// Reject is an administrator decision. pending|approved → rejected.
type Reject struct {
	Now  time.Time
	Note string
}

// ResetToPending is an explicit administrator reset. Any state → pending,
// clearing both decision timestamps and the note.
type ResetToPending struct {
	Now time.Time
}

// Edit is a chef content edit. An edit touching a major field while the
// recipe is approved regresses it to pending; every other combination
// leaves the status untouched.
type Edit struct {
	Now          time.Time
	MajorChanged bool
}

// Archive is the chef's soft delete. Any state → archived.
type Archive struct{}

func (Submit) isCommand()         {}
func (Approve) isCommand()        {}
func (Reject) isCommand()         {}
func (ResetToPending) isCommand() {}
func (Edit) isCommand()           {}
func (Archive) isCommand()        {}

// Transition applies cmd to r and returns the resulting entity.
//
// r is passed by value: callers keep their original on error. The
// approved/rejected timestamps are kept mutually exclusive here and only
// here.
func Transition(r Recipe, cmd Command) (Recipe, error) {
	switch c := cmd.(type) {

	case Submit:
		r.Status = StatusPending
		r.SubmittedAt = c.Now
		r.ApprovedAt = nil
		r.RejectedAt = nil
		r.RejectionNote = ""
		return r, nil

	case Approve:
		if r.Status != StatusPending && r.Status != StatusRejected {
			return r, apperr.Conflict("Recipe is not awaiting approval")
		}
		now := c.Now
		r.Status = StatusApproved
		r.ApprovedAt = &now
		r.RejectedAt = nil
		r.RejectionNote = ""
		return r, nil

	case Reject:
		if r.Status != StatusPending && r.Status != StatusApproved {
			return r, apperr.Conflict("Recipe cannot be rejected from its current state")
		}
		now := c.Now
		r.Status = StatusRejected
		r.RejectedAt = &now
		r.RejectionNote = c.Note
		r.ApprovedAt = nil
		return r, nil

	case ResetToPending:
		r.Status = StatusPending
		r.SubmittedAt = c.Now
		r.ApprovedAt = nil
		r.RejectedAt = nil
		r.RejectionNote = ""
		return r, nil

	case Edit:
		// Edits to pending/rejected/draft content never change status by
		// themselves: the content update is implicitly queued for review.
		if r.Status == StatusApproved && c.MajorChanged {
			r.Status = StatusPending
			r.SubmittedAt = c.Now
			r.ApprovedAt = nil
		}
		return r, nil

	case Archive:
		r.Status = StatusArchived
		return r, nil
	}

	return r, apperr.ValidationError("Unsupported lifecycle command")
}

// majorFields are the recipe fields whose change invalidates a prior
// approval.
var majorFields = []string{
	FieldTitle,
	FieldDescription,
	FieldCuisine,
	FieldDietaryTags,
	FieldCategories,
	FieldIngredients,
	FieldSteps,
}

// IsMajorField reports whether the named field invalidates approval when
// edited.
func IsMajorField(name string) bool {
	for _, f := range majorFields {
		if f == name {
			return true
		}
	}
	return false
}
