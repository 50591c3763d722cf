package definitions

import (
	stdErrors "errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeUnsupportedType     = "UNSUPPORTED_TYPE"
	TextCodeDuplicateDefinition = "DUPLICATE_DEFINITION"
)

// UnsupportedTypeError reports a field whose type cannot be mapped to a GraphQL type name.
type UnsupportedTypeError struct {
	Field string
	Value any
}

func (e *UnsupportedTypeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("field %q: 'type' %v is not supported. Use 'graphQLType' as string instead.", e.Field, e.Value)
	}
	return fmt.Sprintf("'type' %v is not supported. Use 'graphQLType' as string instead.", e.Value)
}

// DuplicateDefinitionError is returned by Assemble when two definitions share a type name.
type DuplicateDefinitionError struct {
	Name string
	Kind string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("duplicate %s definition %q", e.Kind, e.Name)
}

// MapError converts errors produced by this package into go-errors values. Errors that are
// not recognised fall back to the go-errors default mappers and finally to CategoryInternal.
func MapError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	mappers := append([]goerrors.ErrorMapper{mapDefinitionErrors}, goerrors.DefaultErrorMappers()...)
	mapped := goerrors.MapToError(err, mappers)
	if mapped == nil {
		mapped = goerrors.New(err.Error(), goerrors.CategoryInternal)
	}
	return mapped
}

func mapDefinitionErrors(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var unsupported *UnsupportedTypeError
	if stdErrors.As(err, &unsupported) {
		result := goerrors.New(unsupported.Error(), goerrors.CategoryValidation).
			WithTextCode(TextCodeUnsupportedType)
		result.WithMetadata(map[string]any{
			"field": unsupported.Field,
			"type":  fmt.Sprintf("%v", unsupported.Value),
		})
		result.Source = err
		return result
	}

	var duplicate *DuplicateDefinitionError
	if stdErrors.As(err, &duplicate) {
		result := goerrors.New(duplicate.Error(), goerrors.CategoryConflict).
			WithTextCode(TextCodeDuplicateDefinition)
		result.WithMetadata(map[string]any{
			"name": duplicate.Name,
			"kind": duplicate.Kind,
		})
		result.Source = err
		return result
	}

	return nil
}
