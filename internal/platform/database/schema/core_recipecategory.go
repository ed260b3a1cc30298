package schema

// CoreRecipeCategoryTable represents the 'core.recipecategory' junction table
type CoreRecipeCategoryTable struct {
	Table      string
	RecipeID   string
	CategoryID string
}

// CoreRecipeCategory is the schema definition for core.recipecategory
var CoreRecipeCategory = CoreRecipeCategoryTable{
	Table:      "core.recipecategory",
	RecipeID:   "recipeid",
	CategoryID: "categoryid",
}
