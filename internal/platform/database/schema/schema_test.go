package schema_test

import (
	"reflect"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/database/schema"
)

// identifier matches what the stores may safely interpolate into SQL.
var identifier = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)?$`)

/*
TestSchemaDefinitions checks every table definition the stores interpolate
into their queries: the table name is schema-qualified and every column is
a plain lowercase identifier, so no definition can break a query it is
spliced into.
*/
func TestSchemaDefinitions(t *testing.T) {
	tables := map[string]any{
		"core.recipe":         schema.CoreRecipe,
		"core.category":       schema.CoreCategory,
		"core.recipecategory": schema.CoreRecipeCategory,
		"social.review":       schema.SocialReview,
		"social.reviewreply":  schema.SocialReviewReply,
		"mod.flag":            schema.ModFlag,
		"users.account":       schema.UsersAccount,
		"users.chefprofile":   schema.UsersChefProfile,
	}

	for qualified, definition := range tables {
		t.Run(qualified, func(t *testing.T) {
			value := reflect.ValueOf(definition)
			table := value.FieldByName("Table")
			require.True(t, table.IsValid())
			assert.Equal(t, qualified, table.String())

			for i := 0; i < value.NumField(); i++ {
				field := value.Type().Field(i)
				column := value.Field(i).String()
				require.NotEmpty(t, column, "field %s", field.Name)
				assert.Regexp(t, identifier, column, "field %s", field.Name)
				if field.Name != "Table" {
					assert.NotContains(t, column, ".", "field %s", field.Name)
				}
			}
		})
	}
}
