// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
Package moderation owns the flag queue: escalations raised by any actor
against a piece of content, reviewed and resolved by administrators.

A flag holds a weak reference to its target. Existence is checked when the
flag is raised (to capture the snapshot) and again at cascade time, never
enforced by a foreign key: content can disappear out from under an open
flag and the queue must keep working.
*/
package moderation

import "time"

// # Target Union

// TargetKind discriminates the closed set of flaggable content types.
// There is deliberately no open "other" kind; resolution logic switches
// exhaustively over these four values.
type TargetKind string

const (
	TargetRecipe      TargetKind = "recipe"
	TargetReview      TargetKind = "review"
	TargetUser        TargetKind = "user"
	TargetChefProfile TargetKind = "chef_profile"
)

// IsValid reports whether k is one of the four recognised target kinds.
func (k TargetKind) IsValid() bool {
	switch k {
	case TargetRecipe, TargetReview, TargetUser, TargetChefProfile:
		return true
	}
	return false
}

// TargetRef is the weak, typed pointer a flag holds to its target.
type TargetRef struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

// # Domain Enums

// Status represents the resolution state of a flag.
type Status string

const (
	// StatusOpen is the entry state; the flag sits in the queue.
	StatusOpen Status = "open"

	// StatusDismissed records that a moderator found nothing actionable.
	// The target is untouched.
	StatusDismissed Status = "dismissed"

	// StatusRemoved records that the content was taken down (through the
	// cascade or through a separate path).
	StatusRemoved Status = "removed"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusDismissed, StatusRemoved:
		return true
	}
	return false
}

// # Core Entities

// Flag is one escalation in the moderation queue.
//
// Invariant: HandledBy and HandledAt are set together exactly when Status
// is not open; re-opening clears both. All resolution goes through
// [Resolve]; nothing else writes these fields.
//
// TitleSnapshot and Snippet are captured when the flag is raised so the
// queue stays readable after the target is edited or deleted.
type Flag struct {
	ID            string    `json:"id"`
	Target        TargetRef `json:"target"`
	TitleSnapshot string    `json:"title_snapshot"`
	Reason        string    `json:"reason"`
	Snippet       string    `json:"snippet,omitempty"`

	// ReporterID is nullable: reporter accounts can be deleted while
	// their flags stay in the queue.
	ReporterID *string `json:"reporter_id,omitempty"`

	Status     Status     `json:"status"`
	HandledBy  *string    `json:"handled_by,omitempty"`
	HandledAt  *time.Time `json:"handled_at,omitempty"`
	ActionNote string     `json:"action_note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldTargetKind = "targetKind"
	FieldTargetID   = "targetId"
	FieldReason     = "reason"
	FieldStatus     = "status"
)
