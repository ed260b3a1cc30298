// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package account

import "context"

// Repository is the persistence boundary for account data.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Account, error)

	// DeleteAccount removes the account and detaches its content: review
	// author references are nulled (the reviews and their rating
	// contributions survive), the chef profile is dropped, and owned
	// recipes are archived. One transaction.
	DeleteAccount(ctx context.Context, id string) error

	// DeleteChefProfile removes a chef profile, detaching it from any
	// recipes that reference it. The account itself is untouched.
	DeleteChefProfile(ctx context.Context, id string) error
}
