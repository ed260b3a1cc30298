// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

/*
Package category owns the recipe taxonomy: categories, cuisines, and
dietary labels.

Entries come into existence two ways: explicit administrator curation, or
implicitly when a chef tags a recipe with a label nobody has used before.
Either way the identity is the (slug, type) pair — "Comfort Food" and
"comfort  food" resolve to the same entry.
*/
package category

import "time"

// # Domain Enums

// Type partitions the taxonomy namespace. Slug uniqueness holds per type,
// so a "thai" cuisine and a "thai" category can coexist.
type Type string

const (
	TypeCategory Type = "category"
	TypeCuisine  Type = "cuisine"
	TypeDietary  Type = "dietary"
)

// IsValid reports whether t is a recognised [Type] value.
func (t Type) IsValid() bool {
	switch t {
	case TypeCategory, TypeCuisine, TypeDietary:
		return true
	}
	return false
}

// # Core Entities

// Category is one taxonomy entry.
//
// Invariant: Slug is always derived from Label; a label change regenerates
// the slug and must survive the (slug, type) uniqueness check before
// committing.
type Category struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Slug      string    `json:"slug"`
	Type      Type      `json:"type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldLabel = "label"
	FieldType  = "type"
)
