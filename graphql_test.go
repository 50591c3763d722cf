package definitions

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

func loadSchema(t *testing.T, input string) *ast.Schema {
	t.Helper()
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: input})
	require.NoError(t, err, input)
	return schema
}

func requireValidDocument(t *testing.T, schema *ast.Schema, document string) {
	t.Helper()
	_, errs := gqlparser.LoadQuery(schema, document)
	require.Empty(t, errs, document)
}

func bookDefinition() ModelDefinition {
	return ModelDefinition{
		Name: "Book",
		Fields: Fields{
			{Name: "title", Type: String},
			{Name: "year", Type: Number},
			{Name: "secretNote", Type: String, DBOnly: true},
		},
	}
}
