package definitions

import (
	"errors"
	"fmt"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError_UnsupportedType(t *testing.T) {
	_, err := CompileModel(ModelDefinition{Name: "Book", Fields: Fields{{Name: "cover"}}})
	require.Error(t, err)

	mapped := MapError(fmt.Errorf("load book: %w", err))
	require.NotNil(t, mapped)
	assert.Equal(t, goerrors.CategoryValidation, mapped.Category)
	assert.Equal(t, TextCodeUnsupportedType, mapped.TextCode)
	assert.Equal(t, "cover", mapped.Metadata["field"])
	assert.Equal(t, `field "cover": 'type' <nil> is not supported. Use 'graphQLType' as string instead.`, mapped.Message)
}

func TestMapError_Duplicate(t *testing.T) {
	mapped := MapError(&DuplicateDefinitionError{Name: "Book", Kind: "model"})
	require.NotNil(t, mapped)
	assert.Equal(t, goerrors.CategoryConflict, mapped.Category)
	assert.Equal(t, TextCodeDuplicateDefinition, mapped.TextCode)
	assert.Equal(t, `duplicate model definition "Book"`, mapped.Message)
}

func TestMapError_Fallback(t *testing.T) {
	assert.Nil(t, MapError(nil))

	mapped := MapError(errors.New("disk full"))
	require.NotNil(t, mapped)
	assert.NotEqual(t, TextCodeUnsupportedType, mapped.TextCode)
}

func TestUnsupportedTypeError_Message(t *testing.T) {
	err := &UnsupportedTypeError{Value: 12}
	assert.Equal(t, "'type' 12 is not supported. Use 'graphQLType' as string instead.", err.Error())
}
