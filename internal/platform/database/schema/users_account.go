package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table       string
	ID          string
	Username    string
	DisplayName string
	Role        string
	IsActive    string
	CreatedAt   string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	DisplayName: "displayname",
	Role:        "role",
	IsActive:    "isactive",
	CreatedAt:   "createdat",
}
