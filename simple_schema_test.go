package definitions

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSchema struct{}

func (failingSchema) ToSimpleSchema() (*SimpleSchema, error) {
	return nil, errors.New("boom")
}

func TestSimpleSchema_WriteJSON(t *testing.T) {
	address := ModelDefinition{Name: "Address", Fields: Fields{
		{Name: "city", Type: String},
	}}
	def := ModelDefinition{Name: "Person", Fields: Fields{
		{Name: "name", Type: String, Attributes: map[string]any{"max": 80, "label": "Name"}},
		{Name: "age", Type: Integer, Optional: true},
		{Name: "address", Type: address.AsType()},
		{Name: "status", Type: String, GraphQLType: "Status", Attributes: map[string]any{"allowedValues": []string{"A", "B"}}},
		{Name: "graph", GraphQLType: "JSON"},
	}}

	schema, err := def.ToSimpleSchema()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, schema.WriteJSON(&buf, ""))

	want := `{"name":{"type":"String","label":"Name","max":80},` +
		`"age":{"type":"SimpleSchema.Integer","optional":true},` +
		`"address":{"type":{"city":{"type":"String"}}},` +
		`"status":{"type":"String","allowedValues":["A","B"]},` +
		`"graph":{"type":null}}` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestSimpleSchema_WriteJSONIndent(t *testing.T) {
	schema, err := buildSimpleSchema(Fields{{Name: "title", Type: String}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, schema.WriteJSON(&buf, "  "))
	assert.Equal(t, "{\n  \"title\": {\n    \"type\": \"String\"\n  }\n}\n", buf.String())
}

func TestSimpleSchema_NestedError(t *testing.T) {
	_, err := buildSimpleSchema(Fields{{Name: "broken", Type: Nested{Name: "Broken", Schema: failingSchema{}}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field broken: boom")
}

func TestSimpleSchema_NilSafe(t *testing.T) {
	var schema *SimpleSchema
	_, ok := schema.Field("x")
	assert.False(t, ok)
	assert.Nil(t, schema.Names())
}
