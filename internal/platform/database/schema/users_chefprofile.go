package schema

// UsersChefProfileTable represents the 'users.chefprofile' table
type UsersChefProfileTable struct {
	Table       string
	ID          string
	UserID      string
	DisplayName string
	Bio         string
	CreatedAt   string
}

// UsersChefProfile is the schema definition for users.chefprofile
var UsersChefProfile = UsersChefProfileTable{
	Table:       "users.chefprofile",
	ID:          "id",
	UserID:      "userid",
	DisplayName: "displayname",
	Bio:         "bio",
	CreatedAt:   "createdat",
}
