package conform_test

import (
	"testing"

	"github.com/reoring/conform"
	js "github.com/reoring/conform/jsonschema"
)

func mustRoot(t *testing.T, schema string) *js.Root {
	t.Helper()
	root, err := js.Parse([]byte(schema))
	if err != nil {
		t.Fatalf("parse schema %s: %v", schema, err)
	}
	return root
}

func mustValue(t *testing.T, doc string) any {
	t.Helper()
	v, err := conform.ParseValue([]byte(doc))
	if err != nil {
		t.Fatalf("parse value %s: %v", doc, err)
	}
	return v
}

// check validates doc against schema, both given as JSON text.
func check(t *testing.T, schema, doc string) error {
	t.Helper()
	return conform.ValidateRoot(mustRoot(t, schema), mustValue(t, doc))
}

func asValueError(t *testing.T, err error) *conform.ValueError {
	t.Helper()
	ve, ok := err.(*conform.ValueError)
	if !ok {
		t.Fatalf("expected *ValueError, got %T: %v", err, err)
	}
	return ve
}

func asSchemaError(t *testing.T, err error) *conform.SchemaError {
	t.Helper()
	se, ok := err.(*conform.SchemaError)
	if !ok {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	return se
}

func validateRoot(root *js.Root, v any) error { return conform.ValidateRoot(root, v) }
