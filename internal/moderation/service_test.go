// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package moderation_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/moderation"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/apperr"
)

// fakeFlagRepo is an in-memory Repository for service tests.
type fakeFlagRepo struct {
	flags      map[string]*moderation.Flag
	captureErr error
}

func newFakeFlagRepo() *fakeFlagRepo {
	return &fakeFlagRepo{flags: make(map[string]*moderation.Flag)}
}

func (r *fakeFlagRepo) Create(_ context.Context, f *moderation.Flag) error {
	copied := *f
	r.flags[f.ID] = &copied
	return nil
}

func (r *fakeFlagRepo) FindByID(_ context.Context, id string) (*moderation.Flag, error) {
	f, ok := r.flags[id]
	if !ok {
		return nil, apperr.NotFound("Flag")
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFlagRepo) List(_ context.Context, status moderation.Status, _, _ int) ([]*moderation.Flag, int, error) {
	var out []*moderation.Flag
	for _, f := range r.flags {
		if status == "" || f.Status == status {
			copied := *f
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (r *fakeFlagRepo) UpdateResolution(_ context.Context, f *moderation.Flag, expected moderation.Status) error {
	current, ok := r.flags[f.ID]
	if !ok {
		return apperr.NotFound("Flag")
	}
	if current.Status != expected {
		return apperr.Conflict("Flag was resolved concurrently")
	}
	copied := *f
	r.flags[f.ID] = &copied
	return nil
}

func (r *fakeFlagRepo) CaptureTarget(_ context.Context, target moderation.TargetRef) (string, string, error) {
	if r.captureErr != nil {
		return "", "", r.captureErr
	}
	return "Snapshot of " + string(target.Kind), "first 200 chars", nil
}

func newTestService(repo moderation.Repository, deleters moderation.CascadeDeleters) *moderation.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return moderation.NewService(repo, deleters, logger)
}

/*
TestService_Raise covers filing a flag: snapshot capture, validation of the
closed target kind set, and a missing target.
*/
func TestService_Raise(t *testing.T) {
	targetID := "0191b2f8-3c41-7d52-9a10-1234567890ab"

	t.Run("valid_flag", func(t *testing.T) {
		repo := newFakeFlagRepo()
		service := newTestService(repo, moderation.CascadeDeleters{})

		flag, err := service.Raise(context.Background(), "user-1", moderation.RaiseInput{
			TargetKind: string(moderation.TargetRecipe),
			TargetID:   targetID,
			Reason:     "stolen content",
		})
		require.NoError(t, err)

		assert.Equal(t, moderation.StatusOpen, flag.Status)
		assert.Equal(t, moderation.TargetRecipe, flag.Target.Kind)
		assert.Equal(t, "Snapshot of recipe", flag.TitleSnapshot)
		assert.Equal(t, "first 200 chars", flag.Snippet)
		require.NotNil(t, flag.ReporterID)
		assert.Equal(t, "user-1", *flag.ReporterID)
		assert.Nil(t, flag.HandledBy)
	})

	t.Run("unknown_target_kind", func(t *testing.T) {
		service := newTestService(newFakeFlagRepo(), moderation.CascadeDeleters{})

		_, err := service.Raise(context.Background(), "user-1", moderation.RaiseInput{
			TargetKind: "comment",
			TargetID:   targetID,
			Reason:     "spam",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("target_missing", func(t *testing.T) {
		repo := newFakeFlagRepo()
		repo.captureErr = apperr.NotFound("Recipe")
		service := newTestService(repo, moderation.CascadeDeleters{})

		_, err := service.Raise(context.Background(), "user-1", moderation.RaiseInput{
			TargetKind: string(moderation.TargetRecipe),
			TargetID:   targetID,
			Reason:     "spam",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}

/*
TestService_SetStatus covers the guarded resolution path: dismiss once,
refuse the second dismissal, then reopen.
*/
func TestService_SetStatus(t *testing.T) {
	repo := newFakeFlagRepo()
	service := newTestService(repo, moderation.CascadeDeleters{})

	flag, err := service.Raise(context.Background(), "user-1", moderation.RaiseInput{
		TargetKind: string(moderation.TargetReview),
		TargetID:   "0191b2f8-3c41-7d52-9a10-1234567890ab",
		Reason:     "harassment",
	})
	require.NoError(t, err)

	resolved, err := service.SetStatus(context.Background(), "admin-1", flag.ID, moderation.ResolveInput{
		Status:     string(moderation.StatusDismissed),
		ActionNote: "reviewed, fine",
	})
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusDismissed, resolved.Status)
	require.NotNil(t, resolved.HandledBy)
	assert.Equal(t, "admin-1", *resolved.HandledBy)
	assert.Equal(t, "reviewed, fine", resolved.ActionNote)

	// Second moderator hits the already-resolved flag.
	_, err = service.SetStatus(context.Background(), "admin-2", flag.ID, moderation.ResolveInput{
		Status: string(moderation.StatusDismissed),
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	// Reopen puts it back in the queue with a clean slate.
	reopened, err := service.SetStatus(context.Background(), "admin-2", flag.ID, moderation.ResolveInput{
		Status: string(moderation.StatusOpen),
	})
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusOpen, reopened.Status)
	assert.Nil(t, reopened.HandledBy)
	assert.Empty(t, reopened.ActionNote)
}

/*
TestService_Remove covers the cascade behavior: opt-in invocation, the
tolerated already-gone target, and a deleter failure that must not undo
the resolution.
*/
func TestService_Remove(t *testing.T) {
	targetID := "0191b2f8-3c41-7d52-9a10-1234567890ab"

	raise := func(t *testing.T, service *moderation.Service) *moderation.Flag {
		t.Helper()
		flag, err := service.Raise(context.Background(), "user-1", moderation.RaiseInput{
			TargetKind: string(moderation.TargetRecipe),
			TargetID:   targetID,
			Reason:     "stolen content",
		})
		require.NoError(t, err)
		return flag
	}

	t.Run("cascade_deletes_target", func(t *testing.T) {
		var deletedID string
		deleters := moderation.CascadeDeleters{
			Recipe: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}
		service := newTestService(newFakeFlagRepo(), deleters)
		flag := raise(t, service)

		resolved, err := service.Remove(context.Background(), "admin-1", flag.ID, true, "taken down")
		require.NoError(t, err)
		assert.Equal(t, moderation.StatusRemoved, resolved.Status)
		assert.Equal(t, targetID, deletedID)
	})

	t.Run("no_cascade_without_opt_in", func(t *testing.T) {
		called := false
		deleters := moderation.CascadeDeleters{
			Recipe: func(_ context.Context, _ string) error {
				called = true
				return nil
			},
		}
		service := newTestService(newFakeFlagRepo(), deleters)
		flag := raise(t, service)

		resolved, err := service.Remove(context.Background(), "admin-1", flag.ID, false, "")
		require.NoError(t, err)
		assert.Equal(t, moderation.StatusRemoved, resolved.Status)
		assert.False(t, called)
	})

	t.Run("target_already_gone", func(t *testing.T) {
		deleters := moderation.CascadeDeleters{
			Recipe: func(_ context.Context, _ string) error {
				return apperr.NotFound("Recipe")
			},
		}
		service := newTestService(newFakeFlagRepo(), deleters)
		flag := raise(t, service)

		resolved, err := service.Remove(context.Background(), "admin-1", flag.ID, true, "")
		require.NoError(t, err)
		assert.Equal(t, moderation.StatusRemoved, resolved.Status)
	})

	t.Run("deleter_failure_keeps_resolution", func(t *testing.T) {
		deleters := moderation.CascadeDeleters{
			Recipe: func(_ context.Context, _ string) error {
				return apperr.Internal(nil)
			},
		}
		repo := newFakeFlagRepo()
		service := newTestService(repo, deleters)
		flag := raise(t, service)

		resolved, err := service.Remove(context.Background(), "admin-1", flag.ID, true, "")
		require.NoError(t, err)
		assert.Equal(t, moderation.StatusRemoved, resolved.Status)

		stored, err := repo.FindByID(context.Background(), flag.ID)
		require.NoError(t, err)
		assert.Equal(t, moderation.StatusRemoved, stored.Status)
	})

	t.Run("already_resolved", func(t *testing.T) {
		service := newTestService(newFakeFlagRepo(), moderation.CascadeDeleters{})
		flag := raise(t, service)

		_, err := service.Remove(context.Background(), "admin-1", flag.ID, false, "")
		require.NoError(t, err)

		_, err = service.Remove(context.Background(), "admin-2", flag.ID, false, "")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})
}
