package conform_test

import (
	"strings"
	"testing"

	"github.com/reoring/conform"
	js "github.com/reoring/conform/jsonschema"
)

var sampleValues = []string{`null`, `true`, `0`, `-1.5`, `"x"`, `[]`, `[1,"a"]`, `{}`, `{"a":{"b":null}}`}

func TestValidate_BooleanSchemas(t *testing.T) {
	for _, doc := range sampleValues {
		v := mustValue(t, doc)
		if err := conform.ValidateSchema("$", js.True(), nil, v); err != nil {
			t.Fatalf("accept-all rejected %s: %v", doc, err)
		}
		err := conform.ValidateSchema("$", js.False(), nil, v)
		ve := asValueError(t, err)
		if ve.Path != "$" || ve.Code != conform.CodeEmptySet {
			t.Fatalf("reject-all on %s: unexpected %+v", doc, ve)
		}
	}
}

func TestValidate_ConstAndEnumIsSchemaError(t *testing.T) {
	s := js.New(&js.SchemaObject{Const: js.ConstOf(1), Enum: []any{1}})
	for _, doc := range sampleValues {
		err := conform.ValidateSchema("$", s, nil, mustValue(t, doc))
		se := asSchemaError(t, err)
		if se.Details != "both `const` and `enum` present" {
			t.Fatalf("details: %q", se.Details)
		}
	}
}

func TestValidate_OneOfCountsMatches(t *testing.T) {
	schema := `{"oneOf": [{"type": "integer"}, {"type": "number"}, {"type": "string"}]}`

	if err := check(t, schema, `"x"`); err != nil {
		t.Fatalf("exactly one branch should pass: %v", err)
	}
	cases := map[string]string{
		`5`:    "value validated against 2 of 3 `oneOf` schemas (rather than 1)",
		`null`: "value validated against 0 of 3 `oneOf` schemas (rather than 1)",
	}
	for doc, want := range cases {
		ve := asValueError(t, check(t, schema, doc))
		if ve.Path != "$.oneOf" || ve.Details != want {
			t.Fatalf("%s: got path=%s details=%q", doc, ve.Path, ve.Details)
		}
	}
}

func TestValidate_AllOfReportsFailures(t *testing.T) {
	schema := `{"allOf": [{"type": "number"}, {"type": "integer"}, {"minimum": 0}]}`

	if err := check(t, schema, `3`); err != nil {
		t.Fatalf("all branches should pass: %v", err)
	}
	ve := asValueError(t, check(t, schema, `-1.5`))
	if ve.Path != "$.allOf" {
		t.Fatalf("path: %s", ve.Path)
	}
	if ve.Details != "value did not validate for 2 of 3 `allOf` schemas" {
		t.Fatalf("details: %q", ve.Details)
	}
	if ve.Params["failed"] != 2 || ve.Params["total"] != 3 {
		t.Fatalf("params: %v", ve.Params)
	}
}

func TestValidate_MaximumIsExclusive(t *testing.T) {
	for doc, ok := range map[string]bool{`9`: true, `9.99`: true, `10`: false, `11`: false} {
		err := check(t, `{"maximum": 10}`, doc)
		if (err == nil) != ok {
			t.Fatalf("maximum 10, value %s: err=%v", doc, err)
		}
	}
	for doc, ok := range map[string]bool{`9`: true, `10`: true, `10.5`: false, `11`: false} {
		err := check(t, `{"exclusiveMaximum": 10}`, doc)
		if (err == nil) != ok {
			t.Fatalf("exclusiveMaximum 10, value %s: err=%v", doc, err)
		}
	}
}

func TestValidate_PatternWithEscapedSlashes(t *testing.T) {
	schema := `{"pattern": "^[0-9]{1,2}\\/[0-9]{1,2}\\/[0-9]{4}$"}`
	if err := check(t, schema, `"9/8/2017"`); err != nil {
		t.Fatalf("expected match: %v", err)
	}
	ve := asValueError(t, check(t, schema, `"2017-08-09"`))
	if ve.Code != conform.CodePattern {
		t.Fatalf("code: %s", ve.Code)
	}
	if !strings.Contains(ve.Details, "^[0-9]{1,2}/[0-9]{1,2}/[0-9]{4}$") {
		t.Fatalf("details should show the translated pattern: %q", ve.Details)
	}
}

func TestValidate_UniqueItems(t *testing.T) {
	schema := `{"uniqueItems": true}`
	ve := asValueError(t, check(t, schema, `[1, 2, 2]`))
	if !strings.Contains(ve.Details, "items at [1] and [2] are the same") {
		t.Fatalf("details: %q", ve.Details)
	}
	if err := check(t, schema, `[1, 2, 3]`); err != nil {
		t.Fatalf("distinct items rejected: %v", err)
	}
}

func TestValidate_AdditionalPropertiesFalse(t *testing.T) {
	schema := `{"type": "object", "additionalProperties": false}`
	if err := check(t, schema, `{}`); err != nil {
		t.Fatalf("empty object rejected: %v", err)
	}
	ve := asValueError(t, check(t, schema, `{"a": 1}`))
	if ve.Path != "$.a" || ve.Code != conform.CodeEmptySet {
		t.Fatalf("unexpected %+v", ve)
	}
}

func TestValidate_Reference(t *testing.T) {
	schema := `{"$ref": "#/definitions/Foo", "definitions": {"Foo": {"type": "string"}}}`
	if err := check(t, schema, `"x"`); err != nil {
		t.Fatalf("expected pass: %v", err)
	}
	err := check(t, schema, `5`)
	ve := asValueError(t, err)
	if ve.Path != "#/definitions/Foo" {
		t.Fatalf("path should restart at the reference, got %s", ve.Path)
	}
	if got, want := err.Error(), "5 did not conform to the schema at #/definitions/Foo: value is not of type string"; got != want {
		t.Fatalf("error text:\n got %s\nwant %s", got, want)
	}
}

func TestValidate_GroupOrderFailsFast(t *testing.T) {
	// type runs before the string group, so a number never reaches pattern.
	ve := asValueError(t, check(t, `{"type": "string", "pattern": "^a"}`, `1`))
	if ve.Code != conform.CodeInvalidType {
		t.Fatalf("code: %s", ve.Code)
	}
	// enum runs before minLength.
	ve = asValueError(t, check(t, `{"enum": ["abc"], "minLength": 5}`, `"ab"`))
	if ve.Path != "$.enum" {
		t.Fatalf("path: %s", ve.Path)
	}
}

func TestValidate_PathArgumentIsUsed(t *testing.T) {
	ve := asValueError(t, conform.ValidateSchema("root.field", js.False(), nil, 1))
	if ve.Path != "root.field" {
		t.Fatalf("path: %s", ve.Path)
	}
}

func TestValidate_CombinatorsSwallowSchemaErrors(t *testing.T) {
	// The broken branch counts as a failure instead of surfacing.
	schema := `{"anyOf": [{"$ref": "#/definitions/Nope"}, {"type": "string"}]}`
	if err := check(t, schema, `"x"`); err != nil {
		t.Fatalf("anyOf should pass on the second branch: %v", err)
	}
	ve := asValueError(t, check(t, schema, `1`))
	if ve.Code != conform.CodeAnyOf {
		t.Fatalf("code: %s", ve.Code)
	}
}
