// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package sec

// # Actor Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// Moderates the catalogue: approves/rejects recipes, resolves flags,
	// curates the taxonomy, and can remove any content.
	RoleAdmin Role = "admin"

	// Publishes recipes and replies to reviews on their own recipes.
	RoleChef Role = "chef"

	// Default role for diners: browses approved recipes and submits reviews.
	RoleUser Role = "user"
)

// IsValid reports whether r is a recognised [Role] value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleChef, RoleUser:
		return true
	}
	return false
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleChef:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
