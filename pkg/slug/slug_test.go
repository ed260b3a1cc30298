// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/pkg/slug"
)

/*
TestFrom checks the label-to-slug normalization pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Comfort Food", "comfort-food"},
		{"accents_stripped", "Crème Brûlée", "creme-brulee"},
		{"punctuation", "Mac & Cheese!", "mac-cheese"},
		{"extra_whitespace", "  street   tacos  ", "street-tacos"},
		{"digits_kept", "5-Minute Meals", "5-minute-meals"},
		{"already_a_slug", "comfort-food", "comfort-food"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
