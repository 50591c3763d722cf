package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	definitions "github.com/goliatone/go-definitions"
)

// Document is the content of one or more definitions files, in declaration order.
type Document struct {
	Models []definitions.ModelDefinition
	Enums  []*definitions.EnumDefinition
}

var primitives = map[string]definitions.Primitive{
	"String":               definitions.String,
	"Number":               definitions.Number,
	"Boolean":              definitions.Boolean,
	"Date":                 definitions.Date,
	"Object":               definitions.Object,
	"Integer":              definitions.Integer,
	"SimpleSchema.Integer": definitions.Integer,
}

// FromFile reads a YAML or JSON definitions file.
func FromFile(path string) (Document, error) {
	return FromFiles(path)
}

// FromFiles reads several definitions files. A file may reference enums and models
// declared by the files before it.
func FromFiles(paths ...string) (Document, error) {
	l := newLoader()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return Document{}, fmt.Errorf("read definitions file: %w", err)
		}
		if err := l.load(data); err != nil {
			return Document{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return l.doc, nil
}

// FromReader decodes definitions from an io.Reader.
func FromReader(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read definitions: %w", err)
	}
	l := newLoader()
	if err := l.load(data); err != nil {
		return Document{}, err
	}
	return l.doc, nil
}

type loader struct {
	doc    Document
	enums  map[string]*definitions.EnumDefinition
	models map[string]definitions.ModelDefinition
}

func newLoader() *loader {
	return &loader{
		enums:  make(map[string]*definitions.EnumDefinition),
		models: make(map[string]definitions.ModelDefinition),
	}
}

func (l *loader) load(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("definitions payload is empty")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("decode definitions: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("definitions payload is empty")
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nodeError(top, "expected a mapping with enums and models")
	}

	var enumsNode, modelsNode *yaml.Node
	for key, value := range pairs(top) {
		switch key.Value {
		case "enums":
			enumsNode = value
		case "models":
			modelsNode = value
		default:
			return nodeError(key, "unknown section %q", key.Value)
		}
	}

	if enumsNode != nil {
		if err := l.loadEnums(enumsNode); err != nil {
			return err
		}
	}
	if modelsNode != nil {
		if err := l.loadModels(modelsNode); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) loadEnums(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return nodeError(node, "enums must be a list")
	}
	for _, item := range node.Content {
		def, err := decodeEnum(item)
		if err != nil {
			return err
		}
		l.enums[def.Name] = def
		l.doc.Enums = append(l.doc.Enums, def)
	}
	return nil
}

func decodeEnum(node *yaml.Node) (*definitions.EnumDefinition, error) {
	if node.Kind != yaml.MappingNode {
		return nil, nodeError(node, "enum must be a mapping")
	}

	def := &definitions.EnumDefinition{}
	for key, value := range pairs(node) {
		switch key.Value {
		case "name":
			def.Name = value.Value
		case "options":
			options, err := decodeOptions(value)
			if err != nil {
				return nil, err
			}
			def.Options = options
		default:
			return nil, nodeError(key, "unknown enum key %q", key.Value)
		}
	}
	if def.Name == "" {
		return nil, nodeError(node, "enum without name")
	}
	return def, nil
}

func decodeOptions(node *yaml.Node) ([]definitions.EnumOption, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		options := make([]definitions.EnumOption, 0, len(node.Content))
		seen := make(map[string]struct{}, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, nodeError(item, "enum option must be a name")
			}
			if _, dup := seen[item.Value]; dup {
				return nil, nodeError(item, "duplicate enum option %q", item.Value)
			}
			seen[item.Value] = struct{}{}
			options = append(options, definitions.EnumOption{Key: item.Value, Meta: map[string]any{}})
		}
		return options, nil
	case yaml.MappingNode:
		options := make([]definitions.EnumOption, 0, len(node.Content)/2)
		seen := make(map[string]struct{}, len(node.Content)/2)
		for key, value := range pairs(node) {
			if _, dup := seen[key.Value]; dup {
				return nil, nodeError(key, "duplicate enum option %q", key.Value)
			}
			seen[key.Value] = struct{}{}
			meta := map[string]any{}
			if !isNull(value) {
				if err := value.Decode(&meta); err != nil {
					return nil, nodeError(value, "enum option %s: %v", key.Value, err)
				}
			}
			options = append(options, definitions.EnumOption{Key: key.Value, Meta: meta})
		}
		return options, nil
	default:
		if isNull(node) {
			return nil, nil
		}
		return nil, nodeError(node, "enum options must be a mapping or a list")
	}
}

func (l *loader) loadModels(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return nodeError(node, "models must be a list")
	}
	for _, item := range node.Content {
		def, err := l.decodeModel(item)
		if err != nil {
			return err
		}
		l.models[def.Name] = def
		l.doc.Models = append(l.doc.Models, def)
	}
	return nil
}

func (l *loader) decodeModel(node *yaml.Node) (definitions.ModelDefinition, error) {
	var def definitions.ModelDefinition
	if node.Kind != yaml.MappingNode {
		return def, nodeError(node, "model must be a mapping")
	}

	var fieldsNode *yaml.Node
	for key, value := range pairs(node) {
		switch key.Value {
		case "name":
			def.Name = value.Value
		case "pluralName":
			def.PluralName = value.Value
		case "fields":
			fieldsNode = value
		default:
			return def, nodeError(key, "unknown model key %q", key.Value)
		}
	}
	if def.Name == "" {
		return def, nodeError(node, "model without name")
	}

	if fieldsNode == nil || isNull(fieldsNode) {
		return def, nil
	}
	if fieldsNode.Kind != yaml.MappingNode {
		return def, nodeError(fieldsNode, "model %s: fields must be a mapping", def.Name)
	}
	seen := make(map[string]struct{}, len(fieldsNode.Content)/2)
	for key, value := range pairs(fieldsNode) {
		if _, dup := seen[key.Value]; dup {
			return def, fmt.Errorf("model %s: %w", def.Name, nodeError(key, "duplicate field %q", key.Value))
		}
		seen[key.Value] = struct{}{}
		field, err := l.decodeField(key.Value, value)
		if err != nil {
			return def, fmt.Errorf("model %s: %w", def.Name, err)
		}
		def.Fields = append(def.Fields, field)
	}
	return def, nil
}

func (l *loader) decodeField(name string, node *yaml.Node) (definitions.Field, error) {
	field := definitions.Field{Name: name}

	// Shorthand: `title: String`.
	if node.Kind == yaml.ScalarNode && !isNull(node) {
		return field, l.applyType(&field, node)
	}
	if node.Kind != yaml.MappingNode {
		return field, nodeError(node, "field %s must be a mapping", name)
	}

	var typeNode *yaml.Node
	for key, value := range pairs(node) {
		var err error
		switch key.Value {
		case "type":
			typeNode = value
		case "graphQLType":
			field.GraphQLType = value.Value
		case "optional":
			err = value.Decode(&field.Optional)
		case "graphQLOptionalInput":
			err = value.Decode(&field.GraphQLOptionalInput)
		case "dbOnly":
			err = value.Decode(&field.DBOnly)
		default:
			var attr any
			err = value.Decode(&attr)
			if err == nil {
				if field.Attributes == nil {
					field.Attributes = make(map[string]any)
				}
				field.Attributes[key.Value] = attr
			}
		}
		if err != nil {
			return field, nodeError(value, "field %s.%s: %v", name, key.Value, err)
		}
	}

	if typeNode != nil {
		if err := l.applyType(&field, typeNode); err != nil {
			return field, err
		}
	}
	return field, nil
}

func (l *loader) applyType(field *definitions.Field, node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!str" {
		var raw any
		if err := node.Decode(&raw); err != nil {
			return nodeError(node, "field %s: %v", field.Name, err)
		}
		t, err := definitions.TypeOf(raw)
		if err != nil {
			var unsupported *definitions.UnsupportedTypeError
			if errors.As(err, &unsupported) {
				unsupported.Field = field.Name
			}
			return err
		}
		field.Type = t
		return nil
	}

	name := node.Value
	if p, ok := primitives[name]; ok {
		field.Type = p
		return nil
	}
	if enum, ok := l.enums[name]; ok {
		embedded := definitions.CompileEnum(enum).SimpleSchemaField()
		field.Type = embedded.Type
		if field.GraphQLType == "" {
			field.GraphQLType = embedded.GraphQLType
		}
		if _, set := field.Attributes["allowedValues"]; !set {
			if field.Attributes == nil {
				field.Attributes = make(map[string]any)
			}
			field.Attributes["allowedValues"] = embedded.Attributes["allowedValues"]
		}
		return nil
	}
	if model, ok := l.models[name]; ok {
		field.Type = model.AsType()
		return nil
	}
	field.Type = definitions.Named(name)
	return nil
}
