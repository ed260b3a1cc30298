package schema

// CoreCategoryTable represents the 'core.category' table
type CoreCategoryTable struct {
	Table     string
	ID        string
	Label     string
	Slug      string
	Type      string
	IsActive  string
	CreatedAt string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = CoreCategoryTable{
	Table:     "core.category",
	ID:        "id",
	Label:     "label",
	Slug:      "slug",
	Type:      "type",
	IsActive:  "isactive",
	CreatedAt: "createdat",
}
