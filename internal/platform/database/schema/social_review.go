package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table       string
	ID          string
	RecipeID    string
	AuthorID    string
	DisplayName string
	Rating      string
	Comment     string
	Status      string
	CreatedAt   string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:       "social.review",
	ID:          "id",
	RecipeID:    "recipeid",
	AuthorID:    "authorid",
	DisplayName: "displayname",
	Rating:      "rating",
	Comment:     "comment",
	Status:      "status",
	CreatedAt:   "createdat",
}
