// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package recipe_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/apperr"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/recipe"
)

/*
TestTransition_Submit verifies that a submission always lands in pending and
clears all prior decision state.
*/
func TestTransition_Submit(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stale := now.Add(-24 * time.Hour)

	tests := []struct {
		name string
		from recipe.Status
	}{
		{"from_draft", recipe.StatusDraft},
		{"from_rejected", recipe.StatusRejected},
		{"from_archived", recipe.StatusArchived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := recipe.Recipe{
				Status:        tt.from,
				ApprovedAt:    &stale,
				RejectedAt:    &stale,
				RejectionNote: "too salty",
			}

			got, err := recipe.Transition(r, recipe.Submit{Now: now})
			require.NoError(t, err)

			assert.Equal(t, recipe.StatusPending, got.Status)
			assert.Equal(t, now, got.SubmittedAt)
			assert.Nil(t, got.ApprovedAt)
			assert.Nil(t, got.RejectedAt)
			assert.Empty(t, got.RejectionNote)
		})
	}
}

/*
TestTransition_Approve checks the administrator approval guard and the
mutual exclusion of the decision timestamps.
*/
func TestTransition_Approve(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stale := now.Add(-time.Hour)

	tests := []struct {
		name     string
		from     recipe.Status
		hasError bool
	}{
		{"from_pending", recipe.StatusPending, false},
		{"from_rejected", recipe.StatusRejected, false},
		{"from_approved", recipe.StatusApproved, true},
		{"from_archived", recipe.StatusArchived, true},
		{"from_draft", recipe.StatusDraft, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := recipe.Recipe{
				Status:        tt.from,
				RejectedAt:    &stale,
				RejectionNote: "fix the steps",
			}

			got, err := recipe.Transition(r, recipe.Approve{Now: now})

			if tt.hasError {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "CONFLICT", ae.Code)
				// Entity is returned unchanged on a refused command.
				assert.Equal(t, tt.from, got.Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, recipe.StatusApproved, got.Status)
			require.NotNil(t, got.ApprovedAt)
			assert.Equal(t, now, *got.ApprovedAt)
			assert.Nil(t, got.RejectedAt)
			assert.Empty(t, got.RejectionNote)
		})
	}
}

/*
TestTransition_Reject checks the rejection guard and note handling.
*/
func TestTransition_Reject(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stale := now.Add(-time.Hour)

	tests := []struct {
		name     string
		from     recipe.Status
		hasError bool
	}{
		{"from_pending", recipe.StatusPending, false},
		{"from_approved", recipe.StatusApproved, false},
		{"from_rejected", recipe.StatusRejected, true},
		{"from_archived", recipe.StatusArchived, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := recipe.Recipe{Status: tt.from, ApprovedAt: &stale}

			got, err := recipe.Transition(r, recipe.Reject{Now: now, Note: "duplicate submission"})

			if tt.hasError {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "CONFLICT", ae.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, recipe.StatusRejected, got.Status)
			require.NotNil(t, got.RejectedAt)
			assert.Equal(t, now, *got.RejectedAt)
			assert.Equal(t, "duplicate submission", got.RejectionNote)
			assert.Nil(t, got.ApprovedAt)
		})
	}
}

/*
TestTransition_Edit verifies the approval-invalidation rule: only a major
edit on an approved recipe regresses it to pending.
*/
func TestTransition_Edit(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	approvedAt := now.Add(-48 * time.Hour)

	tests := []struct {
		name       string
		from       recipe.Status
		major      bool
		wantStatus recipe.Status
	}{
		{"approved_major_edit", recipe.StatusApproved, true, recipe.StatusPending},
		{"approved_minor_edit", recipe.StatusApproved, false, recipe.StatusApproved},
		{"pending_major_edit", recipe.StatusPending, true, recipe.StatusPending},
		{"rejected_major_edit", recipe.StatusRejected, true, recipe.StatusRejected},
		{"draft_major_edit", recipe.StatusDraft, true, recipe.StatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := recipe.Recipe{Status: tt.from, ApprovedAt: &approvedAt}

			got, err := recipe.Transition(r, recipe.Edit{Now: now, MajorChanged: tt.major})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)

			if tt.from == recipe.StatusApproved && tt.major {
				assert.Nil(t, got.ApprovedAt)
				assert.Equal(t, now, got.SubmittedAt)
			}
		})
	}
}

/*
TestTransition_Archive confirms archiving works from any state and leaves
the record's history intact.
*/
func TestTransition_Archive(t *testing.T) {
	approvedAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	for _, from := range []recipe.Status{
		recipe.StatusDraft,
		recipe.StatusPending,
		recipe.StatusApproved,
		recipe.StatusRejected,
	} {
		t.Run(string(from), func(t *testing.T) {
			r := recipe.Recipe{Status: from, ApprovedAt: &approvedAt}

			got, err := recipe.Transition(r, recipe.Archive{})
			require.NoError(t, err)
			assert.Equal(t, recipe.StatusArchived, got.Status)
			assert.Equal(t, &approvedAt, got.ApprovedAt)
		})
	}
}

/*
TestTransition_FullLifecycle walks one recipe through the whole
publish-edit-republish journey and checks every intermediate state.
*/
func TestTransition_FullLifecycle(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 10, 0, 0, 0, time.UTC)
	}

	r := recipe.Recipe{Title: "Street Tacos", Status: recipe.StatusDraft}

	// Chef submits.
	r, err := recipe.Transition(r, recipe.Submit{Now: day(1)})
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusPending, r.Status)

	// Admin approves: recipe goes live.
	r, err = recipe.Transition(r, recipe.Approve{Now: day(2)})
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusApproved, r.Status)
	require.NotNil(t, r.ApprovedAt)

	// A second approval is refused.
	_, err = recipe.Transition(r, recipe.Approve{Now: day(2)})
	require.NotNil(t, apperr.As(err))

	// Chef rewrites the ingredient list: the approval is invalidated.
	r, err = recipe.Transition(r, recipe.Edit{Now: day(3), MajorChanged: true})
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusPending, r.Status)
	assert.Nil(t, r.ApprovedAt)

	// Admin rejects the revision with a note.
	r, err = recipe.Transition(r, recipe.Reject{Now: day(4), Note: "photos missing"})
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusRejected, r.Status)
	assert.Equal(t, "photos missing", r.RejectionNote)

	// Admin reverses the call directly from rejected.
	r, err = recipe.Transition(r, recipe.Approve{Now: day(5)})
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusApproved, r.Status)
	assert.Empty(t, r.RejectionNote)
	assert.Nil(t, r.RejectedAt)

	// Chef fixes a typo in the servings count: minor, stays live.
	r, err = recipe.Transition(r, recipe.Edit{Now: day(6), MajorChanged: false})
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusApproved, r.Status)

	// Chef takes it down.
	r, err = recipe.Transition(r, recipe.Archive{})
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusArchived, r.Status)
}

/*
TestIsMajorField checks the approval-invalidating field classification.
*/
func TestIsMajorField(t *testing.T) {
	tests := []struct {
		field string
		major bool
	}{
		{recipe.FieldTitle, true},
		{recipe.FieldIngredients, true},
		{recipe.FieldSteps, true},
		{recipe.FieldCategories, true},
		{recipe.FieldImageURLs, false},
		{recipe.FieldPrepMinutes, false},
		{recipe.FieldServings, false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.major, recipe.IsMajorField(tt.field))
		})
	}
}
