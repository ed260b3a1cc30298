// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package recipe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/recipe"
)

/*
TestRatingSummary_Fold pins the incremental average arithmetic that the
review store mirrors in SQL.
*/
func TestRatingSummary_Fold(t *testing.T) {
	tests := []struct {
		name        string
		start       recipe.RatingSummary
		rating      int
		wantAverage float64
		wantCount   int
	}{
		{"first_rating_is_exact", recipe.RatingSummary{}, 4, 4.0, 1},
		{"second_rating", recipe.RatingSummary{Average: 4.0, Count: 1}, 2, 3.0, 2},
		{"third_rating_repeating_decimal", recipe.RatingSummary{Average: 4.0, Count: 2}, 5, 4.333333, 3},
		{"minimum_rating", recipe.RatingSummary{Average: 5.0, Count: 4}, 1, 4.2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Fold(tt.rating)
			assert.Equal(t, tt.wantCount, got.Count)
			assert.InDelta(t, tt.wantAverage, got.Average, 0.000001)
		})
	}
}

/*
TestRatingSummary_FoldSequence checks that folding a whole sequence matches
the plain arithmetic mean of the sequence.
*/
func TestRatingSummary_FoldSequence(t *testing.T) {
	ratings := []int{5, 3, 4, 4, 2, 5, 1, 3}

	var summary recipe.RatingSummary
	sum := 0
	for _, r := range ratings {
		summary = summary.Fold(r)
		sum += r
	}

	assert.Equal(t, len(ratings), summary.Count)
	assert.InDelta(t, float64(sum)/float64(len(ratings)), summary.Average, 1e-9)
}
