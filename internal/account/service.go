// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package account

import (
	"context"
	"log/slog"
)

// # Service Layer

// Service exposes the account operations this service owns. Everything
// else about identity belongs to the external auth service.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get returns the local projection of an account.
func (service *Service) Get(ctx context.Context, id string) (*Account, error) {
	return service.repo.FindByID(ctx, id)
}

// DeleteAccount executes the account hard-deletion routine. Also bound as
// the user-kind cascade deleter for flag resolution.
func (service *Service) DeleteAccount(ctx context.Context, id string) error {
	if err := service.repo.DeleteAccount(ctx, id); err != nil {
		return err
	}
	service.logger.Warn("account_deleted", slog.String("user_id", id))
	return nil
}

// DeleteChefProfile executes the chef-profile deletion routine. Also
// bound as the chef_profile-kind cascade deleter.
func (service *Service) DeleteChefProfile(ctx context.Context, id string) error {
	if err := service.repo.DeleteChefProfile(ctx, id); err != nil {
		return err
	}
	service.logger.Warn("chef_profile_deleted", slog.String("profile_id", id))
	return nil
}
