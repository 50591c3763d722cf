package definitions

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileModel_Names(t *testing.T) {
	m, err := CompileModel(ModelDefinition{Name: "BookCategory", Fields: Fields{{Name: "label", Type: String}}})
	require.NoError(t, err)

	assert.Equal(t, "BookCategory", m.Name)
	assert.Equal(t, "BookCategorys", m.PluralName)
	assert.Equal(t, "bookCategory", m.NameCamelCase)
	assert.Equal(t, "bookCategorys", m.PluralNameCamelCase)
	assert.Equal(t, "BookCategoryFull", m.FullFragmentName)
	assert.Equal(t, "BookCategory", m.OneQueryName)
	assert.Equal(t, "BookCategorys", m.ManyQueryName)
	assert.Equal(t, "BookCategorysPaginated", m.PaginatedQueryName)
	assert.Equal(t, "SaveBookCategory", m.SaveMutationName)
	assert.Equal(t, "EraseBookCategory", m.EraseMutationName)
	assert.Equal(t, "bookCategory", m.OneQueryCamelCaseName)
	assert.Equal(t, "bookCategorys", m.ManyQueryCamelCaseName)
	assert.Equal(t, "bookCategorysPaginated", m.PaginatedQueryCamelCaseName)
	assert.Equal(t, "saveBookCategory", m.SaveMutationCamelCaseName)
	assert.Equal(t, "eraseBookCategory", m.EraseMutationCamelCaseName)
}

func TestCompileModel_PluralNames(t *testing.T) {
	m, err := CompileModel(ModelDefinition{Name: "Person", PluralName: "People"})
	require.NoError(t, err)
	assert.Equal(t, "peoplePaginated", m.PaginatedQueryCamelCaseName)

	m, err = CompileModel(ModelDefinition{Name: "Category"}, WithPluralizer(InflectPluralizer))
	require.NoError(t, err)
	assert.Equal(t, "Categories", m.PluralName)
}

func TestModel_BookExample(t *testing.T) {
	m, err := CompileModel(bookDefinition())
	require.NoError(t, err)

	wantType := "type Book {\n  _id: ID!\n  title: String!\n  year: Float!\n}"
	if diff := cmp.Diff(wantType, m.GraphQLType()); diff != "" {
		t.Errorf("GraphQLType mismatch (-want +got):\n%s", diff)
	}

	wantInput := "input BookInput {\n  _id: ID\n  title: String!\n  year: Float!\n}"
	if diff := cmp.Diff(wantInput, m.GraphQLInput()); diff != "" {
		t.Errorf("GraphQLInput mismatch (-want +got):\n%s", diff)
	}

	wantFragment := "fragment BookFull on Book {\n  _id\n  title\n  year\n}"
	if diff := cmp.Diff(wantFragment, m.GraphQLFragment()); diff != "" {
		t.Errorf("GraphQLFragment mismatch (-want +got):\n%s", diff)
	}

	assert.NotContains(t, m.GraphQLType(), "secretNote")
	assert.NotContains(t, m.GraphQLInput(), "secretNote")
	assert.NotContains(t, m.GraphQLFragment(), "secretNote")

	raw := m.RawDefinition()
	_, ok := raw.Fields.Get("secretNote")
	assert.True(t, ok, "dbOnly fields stay in the raw definition")
}

func TestModel_FragmentMatchesType(t *testing.T) {
	m, err := CompileModel(ModelDefinition{Name: "Book", Fields: Fields{
		{Name: "title", Type: String},
		{Name: "hidden", Type: String, DBOnly: true},
		{Name: "rating", Type: Integer, Optional: true},
		{Name: "shelf", Type: Named("Shelf"), GraphQLOptionalInput: true},
	}})
	require.NoError(t, err)

	var typeNames []string
	for _, line := range strings.Split(m.GraphQLType(), "\n") {
		line = strings.TrimSpace(line)
		if name, _, ok := strings.Cut(line, ":"); ok {
			typeNames = append(typeNames, name)
		}
	}

	var fragmentNames []string
	lines := strings.Split(m.GraphQLFragment(), "\n")
	for _, line := range lines[1 : len(lines)-1] {
		fragmentNames = append(fragmentNames, strings.TrimSpace(line))
	}

	assert.Equal(t, typeNames, fragmentNames)
	assert.Equal(t, []string{"_id", "title", "rating", "shelf"}, fragmentNames)
	assert.Contains(t, m.GraphQLType(), "rating: Int\n")
	assert.Contains(t, m.GraphQLType(), "shelf: Shelf!\n")
	assert.Contains(t, m.GraphQLInput(), "shelf: Shelf\n")
}

func TestModel_QueriesAndMutations(t *testing.T) {
	m, err := CompileModel(bookDefinition())
	require.NoError(t, err)

	wantQueries := `type Query {
  book(_id: ID!): Book
  books: [Book]
  booksPaginated(paginationAction: PaginationActionInput): BooksPaginated
}`
	if diff := cmp.Diff(wantQueries, m.GraphQLQueries()); diff != "" {
		t.Errorf("GraphQLQueries mismatch (-want +got):\n%s", diff)
	}

	wantMutations := `type Mutation {
  saveBook(book: BookInput!): Book
  eraseBook(_id: ID!): Book
}`
	if diff := cmp.Diff(wantMutations, m.GraphQLMutations()); diff != "" {
		t.Errorf("GraphQLMutations mismatch (-want +got):\n%s", diff)
	}

	wantPaginated := "type BooksPaginated {\n  pagination: Pagination\n  items: [Book]\n}"
	if diff := cmp.Diff(wantPaginated, m.GraphQLPaginatedType()); diff != "" {
		t.Errorf("GraphQLPaginatedType mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_OneQueryDocument(t *testing.T) {
	m, err := CompileModel(bookDefinition())
	require.NoError(t, err)

	want := `query Book($_id: ID!) {
  book(_id: $_id) {
    ...BookFull
  }
}

fragment BookFull on Book {
  _id
  title
  year
}`
	if diff := cmp.Diff(want, m.GraphQLOneQuery()); diff != "" {
		t.Errorf("GraphQLOneQuery mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_PaginatedQueryDocument(t *testing.T) {
	m, err := CompileModel(bookDefinition())
	require.NoError(t, err)

	doc := m.GraphQLPaginatedQuery()
	assert.True(t, strings.HasPrefix(doc, `query BooksPaginated($paginationAction: PaginationActionInput) {
  booksPaginated(paginationAction: $paginationAction) {
    pagination {
      ...PaginationFull
    }
    items {
      ...BookFull
    }
  }
}`), doc)
	assert.Contains(t, doc, "fragment PaginationActionFull on PaginationAction {")
	assert.Contains(t, doc, "fragment PaginationFull on Pagination {")
	assert.True(t, strings.HasSuffix(doc, m.GraphQLFragment()))
}

func TestModel_MutationDocuments(t *testing.T) {
	m, err := CompileModel(bookDefinition())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(m.GraphQLSaveMutation(), "mutation SaveBook($book: BookInput!) {\n  saveBook(book: $book) {\n    ...BookFull\n  }\n}"))
	assert.True(t, strings.HasPrefix(m.GraphQLEraseMutation(), "mutation EraseBook($_id: ID!) {\n  eraseBook(_id: $_id) {\n    ...BookFull\n  }\n}"))
	assert.True(t, strings.HasPrefix(m.GraphQLManyQuery(), "query Books {\n  books {\n    ...BookFull\n  }\n}"))
}

func TestModel_GeneratedTextIsValidGraphQL(t *testing.T) {
	m, err := CompileModel(ModelDefinition{Name: "Book", Fields: Fields{
		{Name: "title", Type: String},
		{Name: "year", Type: Number, Optional: true},
		{Name: "pages", Type: Integer, GraphQLOptionalInput: true},
		{Name: "published", Type: Boolean},
		{Name: "secretNote", Type: String, DBOnly: true},
	}})
	require.NoError(t, err)

	schemaText := m.GraphQL()
	assert.NotContains(t, schemaText, "fragment")
	schema := loadSchema(t, schemaText)

	for _, op := range m.Operations() {
		requireValidDocument(t, schema, op.Document)
	}
}

func TestModel_GraphQLVerbose(t *testing.T) {
	var buf bytes.Buffer
	m, err := CompileModel(bookDefinition(), WithVerbose(true), WithLogger(NewLogger(&buf)))
	require.NoError(t, err)

	out := m.GraphQL()
	assert.Contains(t, buf.String(), "[INFO] generated model Book")
	assert.Contains(t, buf.String(), out)
	assert.Contains(t, buf.String(), "package=go-definitions")

	buf.Reset()
	quiet, err := CompileModel(bookDefinition(), WithLogger(NewLogger(&buf)))
	require.NoError(t, err)
	quiet.GraphQL()
	assert.Empty(t, buf.String())
}

func TestCompileModel_UnsupportedTypeAborts(t *testing.T) {
	m, err := CompileModel(ModelDefinition{Name: "Book", Fields: Fields{
		{Name: "title", Type: String},
		{Name: "broken"},
	}})
	assert.Nil(t, m)

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "broken", unsupported.Field)
}

func TestCompileModel_EmptyFields(t *testing.T) {
	m, err := CompileModel(ModelDefinition{Name: "Tag"})
	require.NoError(t, err)
	assert.Equal(t, "type Tag {\n  _id: ID!\n}", m.GraphQLType())
	assert.Equal(t, "fragment TagFull on Tag {\n  _id\n}", m.GraphQLFragment())
}

func TestModel_CompiledFieldsAreCopies(t *testing.T) {
	shared := Fields{
		{Name: "title", Type: String, Attributes: map[string]any{"max": 200}},
		{Name: "rank", Type: Integer},
	}

	var wg sync.WaitGroup
	models := make([]*Model, 8)
	for i := range models {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := CompileModel(ModelDefinition{Name: "Book", Fields: shared})
			assert.NoError(t, err)
			models[i] = m
		}()
	}
	wg.Wait()

	title, ok := models[0].Field("title")
	require.True(t, ok)
	assert.Equal(t, "String", title.TypeName)
	assert.Equal(t, String, title.CustomType)

	rank, ok := models[3].Field("rank")
	require.True(t, ok)
	assert.Equal(t, "Int", rank.TypeName)

	fields := models[0].Fields()
	fields[0].Attributes["max"] = 1
	again, _ := models[0].Field("title")
	assert.Equal(t, 200, again.Attributes["max"])
	assert.Equal(t, 200, shared[0].Attributes["max"])
}

func TestModel_AssignFields(t *testing.T) {
	m, err := CompileModel(bookDefinition())
	require.NoError(t, err)

	extended, err := m.AssignFields(Fields{
		{Name: "year", Type: Integer},
		{Name: "isbn", Type: String, Optional: true},
	})
	require.NoError(t, err)

	assert.Equal(t, "type Book {\n  _id: ID!\n  title: String!\n  year: Int!\n  isbn: String\n}", extended.GraphQLType())
	assert.Equal(t, "type Book {\n  _id: ID!\n  title: String!\n  year: Float!\n}", m.GraphQLType())

	_, err = m.AssignFields(Fields{{Name: "broken"}})
	var unsupported *UnsupportedTypeError
	assert.ErrorAs(t, err, &unsupported)
}

func TestModel_ToSimpleSchema(t *testing.T) {
	author, err := CompileModel(ModelDefinition{Name: "Author", Fields: Fields{
		{Name: "name", Type: String, Attributes: map[string]any{"max": 80}},
	}})
	require.NoError(t, err)

	book, err := CompileModel(ModelDefinition{Name: "Book", Fields: Fields{
		{Name: "title", Type: String, GraphQLType: "String", Attributes: map[string]any{"max": 200, "graphQLType": "String"}},
		{Name: "author", Type: author.AsType(), Optional: true},
		{Name: "secretNote", Type: String, DBOnly: true},
	}})
	require.NoError(t, err)

	schema, err := book.ToSimpleSchema()
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "author", "secretNote"}, schema.Names())

	title, _ := schema.Field("title")
	assert.Equal(t, map[string]any{"max": 200}, title.Attributes)
	assert.Equal(t, String, title.Type)

	nested, _ := schema.Field("author")
	require.NotNil(t, nested.Schema)
	assert.True(t, nested.Optional)
	assert.Equal(t, []string{"name"}, nested.Schema.Names())
}
