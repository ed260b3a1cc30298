// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package moderation

import (
	"time"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/apperr"
)

// # Resolution State Machine

// Decision is a typed resolution command. Using a closed set of command
// types instead of raw status writes keeps the handler/timestamp coupling
// in exactly one place.
type Decision interface{ isDecision() }

// Dismiss closes the flag with no effect on the target.
type Dismiss struct {
	By   string
	Now  time.Time
	Note string
}

// Remove closes the flag recording that the content was taken down.
// Whether the target is actually deleted is decided by the caller
// (cascade is opt-in and happens outside this function).
type Remove struct {
	By   string
	Now  time.Time
	Note string
}

// Reopen puts a resolved flag back in the queue, clearing the handler
// fields and the action note.
type Reopen struct{}

func (Dismiss) isDecision() {}
func (Remove) isDecision()  {}
func (Reopen) isDecision()  {}

/*
Resolve applies a decision to a flag and returns the resulting flag.

Description: Pure function; no storage, no side effects. Dismiss and
Remove are only legal from open — resolving an already-resolved flag is a
conflict, so two moderators racing on the same flag cannot both win.
Reopen is only legal from a resolved state.

The handler/timestamp invariant is enforced structurally: any transition
away from open sets both, and Reopen clears both.

Parameters:
  - f: Flag (current state, passed by value)
  - decision: Decision

Returns:
  - Flag: the flag after the decision
  - error: apperr.Conflict when the decision does not apply to the
    current status
*/
func Resolve(f Flag, decision Decision) (Flag, error) {
	switch d := decision.(type) {

	case Dismiss:
		if f.Status != StatusOpen {
			return f, apperr.Conflict("Flag is already resolved")
		}
		f.Status = StatusDismissed
		f.HandledBy = &d.By
		f.HandledAt = &d.Now
		f.ActionNote = d.Note
		return f, nil

	case Remove:
		if f.Status != StatusOpen {
			return f, apperr.Conflict("Flag is already resolved")
		}
		f.Status = StatusRemoved
		f.HandledBy = &d.By
		f.HandledAt = &d.Now
		f.ActionNote = d.Note
		return f, nil

	case Reopen:
		if f.Status == StatusOpen {
			return f, apperr.Conflict("Flag is already open")
		}
		f.Status = StatusOpen
		f.HandledBy = nil
		f.HandledAt = nil
		f.ActionNote = ""
		return f, nil
	}

	return f, apperr.Internal(nil)
}
