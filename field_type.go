package definitions

import (
	"fmt"
	"reflect"
	"time"
)

// integerSentinel is the textual form of the integer marker.
const integerSentinel = "SimpleSchema.Integer"

// FieldType is the declared value type of a field. The set of implementations is
// closed: Primitive, Named and Nested.
type FieldType interface {
	fmt.Stringer
	isFieldType()
}

// Primitive is a native value marker.
type Primitive string

const (
	String  Primitive = "String"
	Number  Primitive = "Number"
	Boolean Primitive = "Boolean"
	Date    Primitive = "Date"
	Object  Primitive = "Object"
	Integer Primitive = integerSentinel
)

func (p Primitive) String() string { return string(p) }
func (Primitive) isFieldType()      {}

// Named is an explicit target type name, used verbatim.
type Named string

func (n Named) String() string { return string(n) }
func (Named) isFieldType()      {}

// SchemaConverter is implemented by types that can describe themselves as a
// validation schema, such as a compiled Model.
type SchemaConverter interface {
	ToSimpleSchema() (*SimpleSchema, error)
}

// Nested is a composite type carrying its own name and schema conversion.
type Nested struct {
	Name   string
	Schema SchemaConverter
}

func (n Nested) String() string { return n.Name }
func (Nested) isFieldType()      {}

type typeNamer interface {
	TypeName() string
}

var timeType = reflect.TypeOf(time.Time{})

// TypeOf converts an arbitrary type marker into a FieldType. Supported shapes are a
// FieldType, a string (Named), a numeric value (Number), a reflect.Type of a known
// kind, a value exposing TypeName() (Nested when it also converts to a schema), and a
// fmt.Stringer whose text is the integer sentinel. Anything else is rejected with an
// UnsupportedTypeError.
func TypeOf(v any) (FieldType, error) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, &UnsupportedTypeError{Value: v}
	}
	switch t := v.(type) {
	case nil:
		return nil, &UnsupportedTypeError{Value: v}
	case FieldType:
		return t, nil
	case string:
		return Named(t), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Number, nil
	case reflect.Type:
		return typeOfReflect(t)
	case typeNamer:
		name := t.TypeName()
		if conv, ok := v.(SchemaConverter); ok {
			return Nested{Name: name, Schema: conv}, nil
		}
		if name == string(Number) {
			return Number, nil
		}
		return Named(name), nil
	case fmt.Stringer:
		if t.String() == integerSentinel {
			return Integer, nil
		}
	}
	return nil, &UnsupportedTypeError{Value: v}
}

func typeOfReflect(t reflect.Type) (FieldType, error) {
	if t == timeType {
		return Date, nil
	}
	switch t.Kind() {
	case reflect.String:
		return String, nil
	case reflect.Bool:
		return Boolean, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer, nil
	case reflect.Float32, reflect.Float64:
		return Number, nil
	case reflect.Map, reflect.Struct:
		return Object, nil
	}
	return nil, &UnsupportedTypeError{Value: t}
}

// ResolveTypeName maps a field to its GraphQL type name. GraphQLType wins over Type.
func ResolveTypeName(field Field) (string, error) {
	if field.GraphQLType != "" {
		return field.GraphQLType, nil
	}

	switch t := field.Type.(type) {
	case Named:
		if t != "" {
			return string(t), nil
		}
	case Primitive:
		switch t {
		case Number:
			return "Float", nil
		case Integer:
			return "Int", nil
		case "":
		default:
			return string(t), nil
		}
	case Nested:
		if t.Name == string(Number) {
			return "Float", nil
		}
		if t.Name != "" {
			return t.Name, nil
		}
	}

	return "", &UnsupportedTypeError{Field: field.Name, Value: field.Type}
}
