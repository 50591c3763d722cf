package definitions

import (
	"strings"

	"github.com/goliatone/go-definitions/internal/sdl"
)

const idField = "_id"

// Model is a compiled ModelDefinition. Names are derived once; generators recompute their
// text on every call except the full fragment, which is rendered during compilation.
type Model struct {
	Name                string
	PluralName          string
	NameCamelCase       string
	PluralNameCamelCase string
	FullFragmentName    string

	OneQueryName       string
	ManyQueryName      string
	PaginatedQueryName string
	SaveMutationName   string
	EraseMutationName  string

	OneQueryCamelCaseName       string
	ManyQueryCamelCaseName      string
	PaginatedQueryCamelCaseName string
	SaveMutationCamelCaseName   string
	EraseMutationCamelCaseName  string

	cfg          config
	def          ModelDefinition
	fields       []CompiledField
	fullFragment string
}

// CompileModel resolves every field of def and returns the compiled model. The first field
// whose type cannot be resolved aborts compilation with an UnsupportedTypeError. def is
// never modified.
func CompileModel(def ModelDefinition, opts ...Option) (*Model, error) {
	return compileModel(def, newConfig(opts...))
}

func compileModel(def ModelDefinition, cfg config) (*Model, error) {
	def.Fields = def.Fields.clone()

	fields := make([]CompiledField, 0, len(def.Fields))
	for _, f := range def.Fields {
		cf, err := compileField(f)
		if err != nil {
			return nil, err
		}
		fields = append(fields, cf)
	}

	plural := PluralName(def, cfg.pluralizer)
	m := &Model{
		Name:                def.Name,
		PluralName:          plural,
		NameCamelCase:       CamelCase(def.Name),
		PluralNameCamelCase: CamelCase(plural),
		FullFragmentName:    def.Name + "Full",

		OneQueryName:       def.Name,
		ManyQueryName:      plural,
		PaginatedQueryName: plural + "Paginated",
		SaveMutationName:   "Save" + def.Name,
		EraseMutationName:  "Erase" + def.Name,

		cfg:    cfg,
		def:    def,
		fields: fields,
	}
	m.OneQueryCamelCaseName = CamelCase(m.OneQueryName)
	m.ManyQueryCamelCaseName = CamelCase(m.ManyQueryName)
	m.PaginatedQueryCamelCaseName = CamelCase(m.PaginatedQueryName)
	m.SaveMutationCamelCaseName = CamelCase(m.SaveMutationName)
	m.EraseMutationCamelCaseName = CamelCase(m.EraseMutationName)

	m.fullFragment = m.GraphQLFragment()
	return m, nil
}

// RawDefinition returns a copy of the definition the model was compiled from, DBOnly
// fields included.
func (m *Model) RawDefinition() ModelDefinition {
	def := m.def
	def.Fields = m.def.Fields.clone()
	return def
}

// Fields returns the compiled fields in declaration order.
func (m *Model) Fields() []CompiledField {
	out := make([]CompiledField, len(m.fields))
	for i, f := range m.fields {
		f.Field = f.Field.clone()
		out[i] = f
	}
	return out
}

// Field returns a compiled field by name.
func (m *Model) Field(name string) (CompiledField, bool) {
	for _, f := range m.fields {
		if f.Name == name {
			f.Field = f.Field.clone()
			return f, true
		}
	}
	return CompiledField{}, false
}

// AssignFields compiles a new model whose fields are this model's fields with the given
// ones replacing same-named entries. The receiver is left untouched.
func (m *Model) AssignFields(fields Fields) (*Model, error) {
	def := m.def
	def.Fields = m.def.Fields.Assign(fields)
	return compileModel(def, m.cfg)
}

// TypeName returns the model name.
func (m *Model) TypeName() string { return m.Name }

// AsType returns a Nested field type referencing this model.
func (m *Model) AsType() Nested { return Nested{Name: m.Name, Schema: m} }

// ToSimpleSchema builds the validation descriptor, recursing into nested types.
func (m *Model) ToSimpleSchema() (*SimpleSchema, error) {
	return buildSimpleSchema(m.def.Fields)
}

func (m *Model) typeDefinition() *sdl.Object {
	fields := append(
		[]*sdl.FieldDefinition{declaration(idField, "ID", false)},
		compiledDeclarations(m.fields, false)...,
	)
	return &sdl.Object{Name: m.Name, Fields: fields}
}

func (m *Model) inputDefinition() *sdl.Input {
	fields := append(
		[]*sdl.FieldDefinition{declaration(idField, "ID", true)},
		compiledDeclarations(m.fields, true)...,
	)
	return &sdl.Input{Name: m.inputName(), Fields: fields}
}

func (m *Model) inputName() string { return m.Name + "Input" }

func (m *Model) fragmentDefinition() *sdl.Fragment {
	names := []string{idField}
	for _, f := range m.fields {
		if !f.DBOnly {
			names = append(names, f.Name)
		}
	}
	return &sdl.Fragment{Name: m.FullFragmentName, On: m.Name, Selections: sdl.Select(names...)}
}

func (m *Model) paginatedTypeDefinition() *sdl.Object {
	return &sdl.Object{Name: m.PaginatedQueryName, Fields: []*sdl.FieldDefinition{
		{Name: "pagination", Type: sdl.NamedType(PaginationName)},
		{Name: "items", Type: sdl.ListType(sdl.NamedType(m.Name))},
	}}
}

func (m *Model) queryFields() []*sdl.FieldDefinition {
	return []*sdl.FieldDefinition{
		{
			Name:      m.OneQueryCamelCaseName,
			Arguments: []*sdl.InputValue{idArgument()},
			Type:      sdl.NamedType(m.Name),
		},
		{
			Name: m.ManyQueryCamelCaseName,
			Type: sdl.ListType(sdl.NamedType(m.Name)),
		},
		{
			Name:      m.PaginatedQueryCamelCaseName,
			Arguments: []*sdl.InputValue{paginationArgument()},
			Type:      sdl.NamedType(m.PaginatedQueryName),
		},
	}
}

func (m *Model) mutationFields() []*sdl.FieldDefinition {
	return []*sdl.FieldDefinition{
		{
			Name:      m.SaveMutationCamelCaseName,
			Arguments: []*sdl.InputValue{m.inputArgument()},
			Type:      sdl.NamedType(m.Name),
		},
		{
			Name:      m.EraseMutationCamelCaseName,
			Arguments: []*sdl.InputValue{idArgument()},
			Type:      sdl.NamedType(m.Name),
		},
	}
}

func idArgument() *sdl.InputValue {
	return &sdl.InputValue{Name: idField, Type: sdl.NonNullType(sdl.NamedType("ID"))}
}

func paginationArgument() *sdl.InputValue {
	return &sdl.InputValue{Name: "paginationAction", Type: sdl.NamedType(PaginationActionInputName)}
}

func (m *Model) inputArgument() *sdl.InputValue {
	return &sdl.InputValue{Name: m.NameCamelCase, Type: sdl.NonNullType(sdl.NamedType(m.inputName()))}
}

// typeDefinitions returns the declarations a schema needs for this model, root types excluded.
func (m *Model) typeDefinitions() []sdl.Definition {
	return []sdl.Definition{m.paginatedTypeDefinition(), m.typeDefinition(), m.inputDefinition()}
}

// GraphQLType renders `type <Name>` with a non-null _id and every visible field.
func (m *Model) GraphQLType() string { return sdl.Render(m.typeDefinition()) }

// GraphQLInput renders `input <Name>Input` with a nullable _id.
func (m *Model) GraphQLInput() string { return sdl.Render(m.inputDefinition()) }

// GraphQLFragment renders the `<Name>Full` fragment.
func (m *Model) GraphQLFragment() string { return sdl.Render(m.fragmentDefinition()) }

// GraphQLPaginatedType renders `type <PluralName>Paginated`.
func (m *Model) GraphQLPaginatedType() string { return sdl.Render(m.paginatedTypeDefinition()) }

// GraphQLQueries renders the model's Query root type.
func (m *Model) GraphQLQueries() string {
	return sdl.Render(&sdl.Object{Name: "Query", Fields: m.queryFields()})
}

// GraphQLMutations renders the model's Mutation root type.
func (m *Model) GraphQLMutations() string {
	return sdl.Render(&sdl.Object{Name: "Mutation", Fields: m.mutationFields()})
}

func (m *Model) fragmentSpread() []sdl.Selection {
	return []sdl.Selection{&sdl.Spread{Name: m.FullFragmentName}}
}

func (m *Model) document(op *sdl.Operation, trailing ...string) string {
	parts := append([]string{sdl.Render(op)}, trailing...)
	return strings.Join(parts, "\n\n")
}

// GraphQLOneQuery renders the single item query followed by the full fragment.
func (m *Model) GraphQLOneQuery() string {
	return m.document(&sdl.Operation{
		Kind:      sdl.Query,
		Name:      m.OneQueryName,
		Variables: []*sdl.InputValue{idArgument()},
		Selections: []sdl.Selection{&sdl.Field{
			Name:       m.OneQueryCamelCaseName,
			Arguments:  []*sdl.Argument{{Name: idField, Variable: idField}},
			Selections: m.fragmentSpread(),
		}},
	}, m.fullFragment)
}

// GraphQLManyQuery renders the collection query followed by the full fragment.
func (m *Model) GraphQLManyQuery() string {
	return m.document(&sdl.Operation{
		Kind: sdl.Query,
		Name: m.ManyQueryName,
		Selections: []sdl.Selection{&sdl.Field{
			Name:       m.ManyQueryCamelCaseName,
			Selections: m.fragmentSpread(),
		}},
	}, m.fullFragment)
}

// GraphQLPaginatedQuery renders the paginated query followed by the pagination fragments
// and the full fragment.
func (m *Model) GraphQLPaginatedQuery() string {
	arg := paginationArgument()
	return m.document(&sdl.Operation{
		Kind:      sdl.Query,
		Name:      m.PaginatedQueryName,
		Variables: []*sdl.InputValue{arg},
		Selections: []sdl.Selection{&sdl.Field{
			Name:      m.PaginatedQueryCamelCaseName,
			Arguments: []*sdl.Argument{{Name: arg.Name, Variable: arg.Name}},
			Selections: []sdl.Selection{
				&sdl.Field{Name: "pagination", Selections: []sdl.Selection{&sdl.Spread{Name: PaginationFragment}}},
				&sdl.Field{Name: "items", Selections: m.fragmentSpread()},
			},
		}},
	}, PaginationFragments(), m.fullFragment)
}

// GraphQLSaveMutation renders the save mutation followed by the full fragment.
func (m *Model) GraphQLSaveMutation() string {
	arg := m.inputArgument()
	return m.document(&sdl.Operation{
		Kind:      sdl.Mutation,
		Name:      m.SaveMutationName,
		Variables: []*sdl.InputValue{arg},
		Selections: []sdl.Selection{&sdl.Field{
			Name:       m.SaveMutationCamelCaseName,
			Arguments:  []*sdl.Argument{{Name: arg.Name, Variable: arg.Name}},
			Selections: m.fragmentSpread(),
		}},
	}, m.fullFragment)
}

// GraphQLEraseMutation renders the erase mutation followed by the full fragment.
func (m *Model) GraphQLEraseMutation() string {
	return m.document(&sdl.Operation{
		Kind:      sdl.Mutation,
		Name:      m.EraseMutationName,
		Variables: []*sdl.InputValue{idArgument()},
		Selections: []sdl.Selection{&sdl.Field{
			Name:       m.EraseMutationCamelCaseName,
			Arguments:  []*sdl.Argument{{Name: idField, Variable: idField}},
			Selections: m.fragmentSpread(),
		}},
	}, m.fullFragment)
}

// Operations returns every operation document: the three queries then the two mutations.
func (m *Model) Operations() []Operation {
	return []Operation{
		{Name: m.OneQueryName, Kind: string(sdl.Query), Document: m.GraphQLOneQuery()},
		{Name: m.ManyQueryName, Kind: string(sdl.Query), Document: m.GraphQLManyQuery()},
		{Name: m.PaginatedQueryName, Kind: string(sdl.Query), Document: m.GraphQLPaginatedQuery()},
		{Name: m.SaveMutationName, Kind: string(sdl.Mutation), Document: m.GraphQLSaveMutation()},
		{Name: m.EraseMutationName, Kind: string(sdl.Mutation), Document: m.GraphQLEraseMutation()},
	}
}

// Operation is a rendered operation document.
type Operation struct {
	Name     string
	Kind     string
	Document string
}

// GraphQL renders the standalone schema for this model: the pagination boilerplate, the
// paginated type, the type, the input and the Query and Mutation root types. The result
// is logged when verbose output is enabled.
func (m *Model) GraphQL() string {
	defs := commonTypeDefinitions()
	defs = append(defs, m.typeDefinitions()...)
	defs = append(defs,
		&sdl.Object{Name: "Query", Fields: m.queryFields()},
		&sdl.Object{Name: "Mutation", Fields: m.mutationFields()},
	)
	out := sdl.Render(defs...)
	m.cfg.verboseLog("model", m.Name, out)
	return out
}
