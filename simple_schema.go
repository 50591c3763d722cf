package definitions

import (
	"fmt"
	"io"
	"slices"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// SimpleSchema is an ordered validation descriptor.
type SimpleSchema struct {
	Fields []SchemaField
}

// SchemaField describes one validated field. Schema is set when the field's type converts
// itself into a nested descriptor.
type SchemaField struct {
	Name       string
	Type       FieldType
	Schema     *SimpleSchema
	Optional   bool
	Attributes map[string]any
}

// Field returns the schema field with the given name.
func (s *SimpleSchema) Field(name string) (SchemaField, bool) {
	if s == nil {
		return SchemaField{}, false
	}
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return SchemaField{}, false
}

// Names returns field names in order.
func (s *SimpleSchema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

func buildSimpleSchema(fields Fields) (*SimpleSchema, error) {
	schema := &SimpleSchema{Fields: make([]SchemaField, 0, len(fields))}
	for _, f := range fields {
		sf := SchemaField{
			Name:       f.Name,
			Type:       f.Type,
			Optional:   f.Optional,
			Attributes: f.schemaAttributes(),
		}
		if nested, ok := f.Type.(Nested); ok && nested.Schema != nil {
			sub, err := nested.Schema.ToSimpleSchema()
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			sf.Schema = sub
		}
		schema.Fields = append(schema.Fields, sf)
	}
	return schema, nil
}

// WriteJSON encodes the descriptor as a JSON object keyed by field name, in field order.
// Nested descriptors are written in place of the type. An empty indent writes compact JSON.
func (s *SimpleSchema) WriteJSON(w io.Writer, indent string) error {
	enc := newJSONEncoder(w, indent)
	return s.encode(enc)
}

func newJSONEncoder(w io.Writer, indent string) *jsontext.Encoder {
	if indent == "" {
		return jsontext.NewEncoder(w)
	}
	return jsontext.NewEncoder(w, jsontext.Multiline(true), jsontext.WithIndent(indent))
}

func (s *SimpleSchema) encode(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	if s != nil {
		for _, f := range s.Fields {
			if err := enc.WriteToken(jsontext.String(f.Name)); err != nil {
				return err
			}
			if err := f.encode(enc); err != nil {
				return fmt.Errorf("encode field %s: %w", f.Name, err)
			}
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

func (f SchemaField) encode(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}

	if err := enc.WriteToken(jsontext.String("type")); err != nil {
		return err
	}
	switch {
	case f.Schema != nil:
		if err := f.Schema.encode(enc); err != nil {
			return err
		}
	case f.Type != nil:
		if err := enc.WriteToken(jsontext.String(f.Type.String())); err != nil {
			return err
		}
	default:
		if err := enc.WriteToken(jsontext.Null); err != nil {
			return err
		}
	}

	if f.Optional {
		if err := enc.WriteToken(jsontext.String("optional")); err != nil {
			return err
		}
		if err := enc.WriteToken(jsontext.True); err != nil {
			return err
		}
	}

	if err := encodeAttributes(enc, f.Attributes, "type", "optional"); err != nil {
		return err
	}
	return enc.WriteToken(jsontext.EndObject)
}

// encodeAttributes writes attributes sorted by key, skipping reserved keys.
func encodeAttributes(enc *jsontext.Encoder, attrs map[string]any, reserved ...string) error {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if slices.Contains(reserved, k) {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if err := enc.WriteToken(jsontext.String(k)); err != nil {
			return err
		}
		if err := json.MarshalEncode(enc, attrs[k], json.Deterministic(true)); err != nil {
			return fmt.Errorf("attribute %s: %w", k, err)
		}
	}
	return nil
}
