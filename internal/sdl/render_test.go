package sdl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRender_TypeDeclarations(t *testing.T) {
	actual := Render(
		&Scalar{Name: "Date"},
		&Enum{Name: "Status", Values: []string{"ACTIVE", "INACTIVE"}},
		&Object{
			Name: "Query",
			Fields: []*FieldDefinition{
				{
					Name:      "book",
					Arguments: []*InputValue{{Name: "_id", Type: NonNullType(NamedType("ID"))}},
					Type:      NamedType("Book"),
				},
				{Name: "books", Type: ListType(NamedType("Book"))},
			},
		},
		&Input{
			Name: "BookInput",
			Fields: []*FieldDefinition{
				{Name: "_id", Type: NamedType("ID")},
				{Name: "title", Type: NonNullType(NamedType("String"))},
			},
		},
	)

	expected := `scalar Date

enum Status {
  ACTIVE
  INACTIVE
}

type Query {
  book(_id: ID!): Book
  books: [Book]
}

input BookInput {
  _id: ID
  title: String!
}`

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("rendered SDL mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_OperationWithNestedSelections(t *testing.T) {
	actual := Render(
		&Operation{
			Kind:      Query,
			Name:      "BooksPaginated",
			Variables: []*InputValue{{Name: "paginationAction", Type: NamedType("PaginationActionInput")}},
			Selections: []Selection{
				&Field{
					Name:      "booksPaginated",
					Arguments: []*Argument{{Name: "paginationAction", Variable: "paginationAction"}},
					Selections: []Selection{
						&Field{Name: "pagination", Selections: []Selection{&Spread{Name: "PaginationFull"}}},
						&Field{Name: "items", Selections: []Selection{&Spread{Name: "BookFull"}}},
					},
				},
			},
		},
		&Fragment{Name: "BookFull", On: "Book", Selections: Select("_id", "title")},
	)

	expected := `query BooksPaginated($paginationAction: PaginationActionInput) {
  booksPaginated(paginationAction: $paginationAction) {
    pagination {
      ...PaginationFull
    }
    items {
      ...BookFull
    }
  }
}

fragment BookFull on Book {
  _id
  title
}`

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("rendered document mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_SkipsNilAndEmptyBodies(t *testing.T) {
	assert.Equal(t, "", Render())
	assert.Equal(t, "enum Empty {\n}", Render(nil, &Enum{Name: "Empty"}))
}

func TestTypeRef_String(t *testing.T) {
	assert.Equal(t, "[Book!]!", NonNullType(ListType(NonNullType(NamedType("Book")))).String())
	assert.Equal(t, "", (*TypeRef)(nil).String())
}

func TestFieldDefinition_String(t *testing.T) {
	field := &FieldDefinition{
		Name:      "saveBook",
		Arguments: []*InputValue{{Name: "book", Type: NonNullType(NamedType("BookInput"))}},
		Type:      NamedType("Book"),
	}
	assert.Equal(t, "saveBook(book: BookInput!): Book", field.String())
}
