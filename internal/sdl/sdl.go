package sdl

// Definition is a top level declaration in a schema or operation document.
type Definition interface {
	render(b *writer)
}

// TypeRef represents a reference to a type (can be wrapped)
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // For List and NonNull
	Named  string   // For named types
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

// String renders the reference the way it appears in SDL, e.g. `[Book]` or `ID!`.
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypeRefKindNamed:
		return t.Named
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	case TypeRefKindNonNull:
		return t.OfType.String() + "!"
	default:
		return ""
	}
}

// InputValue is an argument or variable declaration: `name: Type`.
type InputValue struct {
	Name string
	Type *TypeRef
}

// FieldDefinition is a field of an object or input type.
// Arguments are ignored when rendered inside an Input.
type FieldDefinition struct {
	Name      string
	Arguments []*InputValue
	Type      *TypeRef
}

// String renders `name(args): Type` without indentation.
func (f *FieldDefinition) String() string {
	w := &writer{}
	w.fieldDefinition(f, true)
	return w.String()
}

// Object is a `type` declaration.
type Object struct {
	Name   string
	Fields []*FieldDefinition
}

// Input is an `input` declaration.
type Input struct {
	Name   string
	Fields []*FieldDefinition
}

// Enum is an `enum` declaration.
type Enum struct {
	Name   string
	Values []string
}

// Scalar is a `scalar` declaration.
type Scalar struct {
	Name string
}

// Fragment is a named selection set on a type.
type Fragment struct {
	Name       string
	On         string
	Selections []Selection
}

type OperationKind string

const (
	Query    OperationKind = "query"
	Mutation OperationKind = "mutation"
)

// Operation is an executable query or mutation document entry.
type Operation struct {
	Kind       OperationKind
	Name       string
	Variables  []*InputValue
	Selections []Selection
}

// Selection is an entry of a selection set.
type Selection interface {
	renderSelection(b *writer)
}

// Argument binds a field argument to an operation variable.
type Argument struct {
	Name     string
	Variable string
}

// Field selects a field, optionally with arguments and a sub selection.
type Field struct {
	Name       string
	Arguments  []*Argument
	Selections []Selection
}

// Spread is a fragment spread: `...Name`.
type Spread struct {
	Name string
}

// Select builds a list of leaf field selections.
func Select(names ...string) []Selection {
	out := make([]Selection, 0, len(names))
	for _, name := range names {
		out = append(out, &Field{Name: name})
	}
	return out
}
