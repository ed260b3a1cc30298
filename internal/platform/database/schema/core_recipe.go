package schema

// CoreRecipeTable represents the 'core.recipe' table
type CoreRecipeTable struct {
	Table         string
	ID            string
	ChefID        string
	ChefProfileID string
	Title         string
	Slug          string
	Description   string
	Cuisine       string
	DietaryTags   string
	Ingredients   string
	Steps         string
	ImageURLs     string
	PrepMinutes   string
	CookMinutes   string
	Servings      string
	Status        string
	RejectionNote string
	SubmittedAt   string
	ApprovedAt    string
	RejectedAt    string
	RatingAvg     string
	RatingCount   string
	CreatedAt     string
	UpdatedAt     string
}

// CoreRecipe is the schema definition for core.recipe
var CoreRecipe = CoreRecipeTable{
	Table:         "core.recipe",
	ID:            "id",
	ChefID:        "chefid",
	ChefProfileID: "chefprofileid",
	Title:         "title",
	Slug:          "slug",
	Description:   "description",
	Cuisine:       "cuisine",
	DietaryTags:   "dietarytags",
	Ingredients:   "ingredients",
	Steps:         "steps",
	ImageURLs:     "imageurls",
	PrepMinutes:   "prepminutes",
	CookMinutes:   "cookminutes",
	Servings:      "servings",
	Status:        "status",
	RejectionNote: "rejectionnote",
	SubmittedAt:   "submittedat",
	ApprovedAt:    "approvedat",
	RejectedAt:    "rejectedat",
	RatingAvg:     "ratingavg",
	RatingCount:   "ratingcount",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}
