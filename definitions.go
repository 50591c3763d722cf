// Package definitions compiles declarative model and enum definitions into GraphQL
// schema declarations, operation documents and validation descriptors.
package definitions

// ModelDefinition is the author supplied description of a model.
type ModelDefinition struct {
	Name string
	// PluralName defaults to the configured pluralizer result, Name + "s" unless set.
	PluralName string
	Fields     Fields
}

// TypeName returns the model name so a definition can be referenced as a field type.
func (d ModelDefinition) TypeName() string { return d.Name }

// ToSimpleSchema builds the validation descriptor of the definition's fields.
func (d ModelDefinition) ToSimpleSchema() (*SimpleSchema, error) {
	return buildSimpleSchema(d.Fields)
}

// AsType returns a Nested field type referencing this definition.
func (d ModelDefinition) AsType() Nested {
	return Nested{Name: d.Name, Schema: d}
}

// EnumOption is a single enum value and its metadata.
type EnumOption struct {
	Key  string
	Meta map[string]any
}

// EnumDefinition is the author supplied description of an enum.
type EnumDefinition struct {
	Name    string
	Options []EnumOption
}

// Keys returns option keys in declaration order.
func (d *EnumDefinition) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.Options))
	for _, opt := range d.Options {
		keys = append(keys, opt.Key)
	}
	return keys
}

// Set adds an option or replaces the metadata of an existing one.
func (d *EnumDefinition) Set(key string, meta map[string]any) {
	for i := range d.Options {
		if d.Options[i].Key == key {
			d.Options[i].Meta = meta
			return
		}
	}
	d.Options = append(d.Options, EnumOption{Key: key, Meta: meta})
}
