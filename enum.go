package definitions

import (
	"fmt"
	"io"
	"maps"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/goliatone/go-definitions/internal/sdl"
)

// EnumValue is an entry of the runtime lookup returned by Enum.ToEnum.
type EnumValue struct {
	Value string
	Meta  map[string]any
}

// Enum is a compiled EnumDefinition. It keeps a reference to the definition, so options
// added or removed after compilation show up in every subsequent call.
type Enum struct {
	Name string

	cfg config
	def *EnumDefinition
}

// CompileEnum returns the compiled enum for def. A nil or option-less definition yields
// empty output rather than an error.
func CompileEnum(def *EnumDefinition, opts ...Option) *Enum {
	if def == nil {
		def = &EnumDefinition{}
	}
	return compileEnum(def, newConfig(opts...))
}

func compileEnum(def *EnumDefinition, cfg config) *Enum {
	return &Enum{Name: def.Name, cfg: cfg, def: def}
}

// RawDefinition returns the definition the enum was compiled from.
func (e *Enum) RawDefinition() *EnumDefinition { return e.def }

// Options returns the current options in declaration order.
func (e *Enum) Options() []EnumOption {
	return append([]EnumOption(nil), e.def.Options...)
}

// AllowedValues returns option keys in declaration order.
func (e *Enum) AllowedValues() []string { return e.def.Keys() }

func (e *Enum) definition() *sdl.Enum {
	return &sdl.Enum{Name: e.Name, Values: e.AllowedValues()}
}

// GraphQLEnum renders `enum <Name>` with one value per line.
func (e *Enum) GraphQLEnum() string { return sdl.Render(e.definition()) }

// GraphQL renders the enum declaration and logs it when verbose output is enabled.
func (e *Enum) GraphQL() string {
	out := e.GraphQLEnum()
	e.cfg.verboseLog("enum", e.Name, out)
	return out
}

// SimpleSchemaField returns a field that embeds this enum elsewhere: a String validated
// against the allowed values and declared with the enum's GraphQL type.
func (e *Enum) SimpleSchemaField() Field {
	return Field{
		Type:        String,
		GraphQLType: e.Name,
		Attributes:  map[string]any{"allowedValues": e.AllowedValues()},
	}
}

// ToEnum returns each option's metadata keyed by option key. Metadata maps are copied.
func (e *Enum) ToEnum() map[string]EnumValue {
	out := make(map[string]EnumValue, len(e.def.Options))
	for _, opt := range e.def.Options {
		out[opt.Key] = EnumValue{Value: opt.Key, Meta: maps.Clone(opt.Meta)}
	}
	return out
}

// WriteJSON encodes the runtime lookup in option order. Each entry is its metadata with
// a "value" member set to the key.
func (e *Enum) WriteJSON(w io.Writer, indent string) error {
	enc := newJSONEncoder(w, indent)
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, opt := range e.def.Options {
		if err := enc.WriteToken(jsontext.String(opt.Key)); err != nil {
			return err
		}
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		if err := enc.WriteToken(jsontext.String("value")); err != nil {
			return err
		}
		if err := enc.WriteToken(jsontext.String(opt.Key)); err != nil {
			return err
		}
		if err := encodeAttributes(enc, opt.Meta, "value"); err != nil {
			return fmt.Errorf("enum %s option %s: %w", e.Name, opt.Key, err)
		}
		if err := enc.WriteToken(jsontext.EndObject); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}
