package conform_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/conform"
)

func TestErrorText(t *testing.T) {
	se := &conform.SchemaError{Path: "$.a", Details: "invalid reference: x"}
	assert.Equal(t, "invalid schema at $.a: invalid reference: x", se.Error())

	ve := &conform.ValueError{Path: "$", Value: map[string]any{"b": []any{1, "x"}}, Details: "nope"}
	assert.Equal(t, `{"b":[1,"x"]} did not conform to the schema at $: nope`, ve.Error())
}

func TestAsIssue(t *testing.T) {
	err := check(t, `{"type": "object", "required": ["id"]}`, `{}`)
	iss, ok := conform.AsIssue(err)
	require.True(t, ok)
	assert.Equal(t, conform.Issue{
		Path:    "$",
		Code:    conform.CodeRequired,
		Message: "the property id is required but absent",
		Params:  map[string]any{"property": "id"},
	}, iss)

	wrapped := fmt.Errorf("loading: %w", &conform.SchemaError{Path: "$.x", Details: "bad"})
	iss, ok = conform.AsIssue(wrapped)
	require.True(t, ok)
	assert.Equal(t, conform.CodeInvalidSchema, iss.Code)
	assert.Equal(t, "$.x", iss.Path)

	_, ok = conform.AsIssue(errors.New("other"))
	assert.False(t, ok)
	_, ok = conform.AsIssue(nil)
	assert.False(t, ok)
}

func TestIsHelpers(t *testing.T) {
	ve := check(t, `false`, `1`)
	se := check(t, `{"$ref": "#/definitions/X"}`, `1`)

	assert.True(t, conform.IsValueError(ve))
	assert.False(t, conform.IsSchemaError(ve))
	assert.True(t, conform.IsSchemaError(se))
	assert.False(t, conform.IsValueError(se))
	assert.True(t, conform.IsValueError(fmt.Errorf("ctx: %w", ve)))
}
