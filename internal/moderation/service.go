// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package moderation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/apperr"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/validate"
	"github.com/Mlk-KFUPM/tellerecipes-sub000/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the flag queue: raising, listing, resolving, and
// the opt-in cascade into the owning domains' deletion routines.
type Service struct {
	repo     Repository
	deleters CascadeDeleters
	logger   *slog.Logger
}

// NewService constructs a new moderation [Service].
func NewService(repo Repository, deleters CascadeDeleters, logger *slog.Logger) *Service {
	return &Service{repo: repo, deleters: deleters, logger: logger}
}

// # Inputs

// RaiseInput carries a new escalation from any signed-in actor.
type RaiseInput struct {
	TargetKind string `json:"targetKind"`
	TargetID   string `json:"targetId"`
	Reason     string `json:"reason"`
}

// ResolveInput carries an administrator's resolution decision.
type ResolveInput struct {
	Status     string `json:"status"`
	ActionNote string `json:"actionNote,omitempty"`
}

// # Operations

/*
Raise files a new flag against a piece of content.

Description: The target must exist right now. Its title and a content
snippet are captured onto the flag so the queue stays readable even after
the target is edited or deleted. After creation the reference is weak:
nothing stops the target from disappearing while the flag is open.

Parameters:
  - ctx: context.Context
  - reporterID: the reporting user (from verified claims)
  - input: RaiseInput

Returns:
  - *Flag: the persisted flag (status=open)
  - error: validation errors, or NOT_FOUND when the target does not exist
*/
func (service *Service) Raise(ctx context.Context, reporterID string, input RaiseInput) (*Flag, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldTargetKind, input.TargetKind,
		string(TargetRecipe), string(TargetReview), string(TargetUser), string(TargetChefProfile))
	validator.Required(FieldTargetID, input.TargetID).UUID(FieldTargetID, input.TargetID)
	validator.Required(FieldReason, input.Reason).MaxLen(FieldReason, input.Reason, 1000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	target := TargetRef{Kind: TargetKind(input.TargetKind), ID: input.TargetID}

	title, snippet, err := service.repo.CaptureTarget(ctx, target)
	if err != nil {
		return nil, err
	}

	entity := Flag{
		ID:            uuidv7.New(),
		Target:        target,
		TitleSnapshot: title,
		Reason:        input.Reason,
		Snippet:       snippet,
		ReporterID:    &reporterID,
		Status:        StatusOpen,
		CreatedAt:     time.Now().UTC(),
	}

	if err := service.repo.Create(ctx, &entity); err != nil {
		return nil, err
	}

	service.logger.Info("flag_raised",
		slog.String("flag_id", entity.ID),
		slog.String("target_kind", string(target.Kind)),
		slog.String("target_id", target.ID),
	)

	return &entity, nil
}

// List returns flags for the moderation queue. An empty status string
// means all statuses.
func (service *Service) List(ctx context.Context, status string, limit, offset int) ([]*Flag, int, error) {
	if status != "" && !Status(status).IsValid() {
		return nil, 0, validate.RequiredError(FieldStatus, "Unknown status value")
	}
	return service.repo.List(ctx, Status(status), limit, offset)
}

// Get returns a single flag with its full resolution history.
func (service *Service) Get(ctx context.Context, flagID string) (*Flag, error) {
	return service.repo.FindByID(ctx, flagID)
}

/*
SetStatus applies an administrator's resolution decision without touching
the target.

Description: Maps the requested status onto the typed decision (dismissed
→ Dismiss, removed → Remove, open → Reopen) and persists the transition
guarded on the current status. Dismissing or removing an already-resolved
flag is a conflict; so is re-opening an open one.
*/
func (service *Service) SetStatus(ctx context.Context, adminID, flagID string, input ResolveInput) (*Flag, error) {
	target := Status(input.Status)
	if !target.IsValid() {
		return nil, validate.RequiredError(FieldStatus, "Unknown status value")
	}

	current, err := service.repo.FindByID(ctx, flagID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var decision Decision
	switch target {
	case StatusDismissed:
		decision = Dismiss{By: adminID, Now: now, Note: input.ActionNote}
	case StatusRemoved:
		decision = Remove{By: adminID, Now: now, Note: input.ActionNote}
	case StatusOpen:
		decision = Reopen{}
	}

	entity, err := Resolve(*current, decision)
	if err != nil {
		return nil, err
	}

	if err := service.repo.UpdateResolution(ctx, &entity, current.Status); err != nil {
		return nil, err
	}

	service.logger.Info("flag_resolved",
		slog.String("flag_id", flagID),
		slog.String("admin_id", adminID),
		slog.String("status", string(entity.Status)),
	)

	return &entity, nil
}

/*
Remove resolves a flag to removed and optionally cascades into the
target's deletion routine.

Description: The flag transition is committed first; the cascade runs
after it and is best-effort. A target that is already gone is logged and
swallowed — the resolution still succeeds, because "removed" states a
moderation outcome, not a deletion receipt.

Parameters:
  - ctx: context.Context
  - adminID: the handling administrator
  - flagID: string
  - cascade: bool (delete the target as part of resolution)
  - note: string (action note)
*/
func (service *Service) Remove(ctx context.Context, adminID, flagID string, cascade bool, note string) (*Flag, error) {
	current, err := service.repo.FindByID(ctx, flagID)
	if err != nil {
		return nil, err
	}

	entity, err := Resolve(*current, Remove{By: adminID, Now: time.Now().UTC(), Note: note})
	if err != nil {
		return nil, err
	}

	if err := service.repo.UpdateResolution(ctx, &entity, current.Status); err != nil {
		return nil, err
	}

	if cascade {
		service.cascadeDelete(ctx, entity.Target)
	}

	service.logger.Warn("flag_removed",
		slog.String("flag_id", flagID),
		slog.String("admin_id", adminID),
		slog.Bool("cascade", cascade),
	)

	return &entity, nil
}

// cascadeDelete invokes the kind-specific deletion routine, tolerating an
// already-deleted target.
func (service *Service) cascadeDelete(ctx context.Context, target TargetRef) {
	deleter := service.deleters.For(target.Kind)
	if deleter == nil {
		service.logger.Error("flag_cascade_unbound_kind",
			slog.String("target_kind", string(target.Kind)),
		)
		return
	}

	err := deleter(ctx, target.ID)
	if err == nil {
		return
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
		// Target already handled through a different path.
		service.logger.Info("flag_cascade_target_gone",
			slog.String("target_kind", string(target.Kind)),
			slog.String("target_id", target.ID),
		)
		return
	}

	service.logger.Error("flag_cascade_failed",
		slog.String("target_kind", string(target.Kind)),
		slog.String("target_id", target.ID),
		slog.Any("error", err),
	)
}
