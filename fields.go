package definitions

import (
	"maps"
	"strings"

	"github.com/goliatone/go-definitions/internal/sdl"
)

// Attribute keys that only drive generation and never reach the validation descriptor.
var generatorAttributes = map[string]struct{}{
	"graphQLType":          {},
	"graphQLOptionalInput": {},
	"typeName":             {},
	"customType":           {},
	"dbOnly":               {},
}

// Field describes a single field of a definition.
type Field struct {
	Name                 string
	Type                 FieldType
	GraphQLType          string
	Optional             bool
	GraphQLOptionalInput bool
	// DBOnly hides the field from every generated type, input and fragment.
	DBOnly     bool
	Attributes map[string]any
}

// Fields is an ordered field list. Order controls declaration order in generated text.
type Fields []Field

// Get returns the field with the given name.
func (fs Fields) Get(name string) (Field, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns field names in order.
func (fs Fields) Names() []string {
	names := make([]string, 0, len(fs))
	for _, f := range fs {
		names = append(names, f.Name)
	}
	return names
}

// Assign returns a new list where fields of other replace fields with the same name in
// place and the remaining ones are appended. The receiver is not modified.
func (fs Fields) Assign(other Fields) Fields {
	out := make(Fields, len(fs), len(fs)+len(other))
	copy(out, fs)

	index := make(map[string]int, len(out))
	for i, f := range out {
		index[f.Name] = i
	}

	for _, f := range other {
		if i, ok := index[f.Name]; ok {
			out[i] = f
			continue
		}
		index[f.Name] = len(out)
		out = append(out, f)
	}
	return out
}

func (fs Fields) clone() Fields {
	out := make(Fields, len(fs))
	for i, f := range fs {
		out[i] = f.clone()
	}
	return out
}

func (f Field) clone() Field {
	if f.Attributes != nil {
		f.Attributes = maps.Clone(f.Attributes)
	}
	return f
}

// schemaAttributes returns the attributes passed to the validation descriptor.
func (f Field) schemaAttributes() map[string]any {
	if len(f.Attributes) == 0 {
		return nil
	}
	out := make(map[string]any, len(f.Attributes))
	for k, v := range f.Attributes {
		if _, skip := generatorAttributes[k]; skip {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CompiledField is a copy of a Field augmented with its resolution result.
type CompiledField struct {
	Field
	TypeName   string
	CustomType FieldType
}

func compileField(f Field) (CompiledField, error) {
	name, err := ResolveTypeName(f)
	if err != nil {
		return CompiledField{}, err
	}
	return CompiledField{Field: f.clone(), TypeName: name, CustomType: f.Type}, nil
}

func declaration(name, typeName string, nullable bool) *sdl.FieldDefinition {
	ref := sdl.NamedType(typeName)
	if !nullable {
		ref = sdl.NonNullType(ref)
	}
	return &sdl.FieldDefinition{Name: name, Type: ref}
}

func nullable(f Field, isInput bool) bool {
	return f.Optional || (isInput && f.GraphQLOptionalInput)
}

func compiledDeclarations(fields []CompiledField, isInput bool) []*sdl.FieldDefinition {
	out := make([]*sdl.FieldDefinition, 0, len(fields))
	for _, f := range fields {
		if f.DBOnly {
			continue
		}
		out = append(out, declaration(f.Name, f.TypeName, nullable(f.Field, isInput)))
	}
	return out
}

// RenderDeclarations renders `name: Type` lines for every field that is not DBOnly.
// Types are non-null unless the field is Optional or, in input mode, GraphQLOptionalInput.
func RenderDeclarations(fields Fields, isInput bool) (string, error) {
	compiled := make([]CompiledField, 0, len(fields))
	for _, f := range fields {
		if f.DBOnly {
			continue
		}
		cf, err := compileField(f)
		if err != nil {
			return "", err
		}
		compiled = append(compiled, cf)
	}

	decls := compiledDeclarations(compiled, isInput)
	lines := make([]string, 0, len(decls))
	for _, d := range decls {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n"), nil
}

// RenderNames renders the names of every field that is not DBOnly, one per line.
func RenderNames(fields Fields) string {
	return strings.Join(selectableNames(fields), "\n")
}

func selectableNames(fields Fields) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if !f.DBOnly {
			names = append(names, f.Name)
		}
	}
	return names
}
