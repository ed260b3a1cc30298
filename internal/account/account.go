// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
Package account holds the thin slice of user data this service owns.

Authentication, registration, and profile editing live in a separate
identity service; tokens arrive already issued. What remains here is what
moderation needs: looking up display names for snapshots and executing the
hard-deletion routines the flag cascade and the administrator surface
share.
*/
package account

import "time"

// Account is the local projection of a user account.
type Account struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChefProfile is the public authoring persona attached to a chef account.
type ChefProfile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
