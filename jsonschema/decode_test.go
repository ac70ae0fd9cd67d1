package jsonschema_test

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	js "github.com/reoring/conform/jsonschema"
)

func TestParse_BooleanRoots(t *testing.T) {
	for in, want := range map[string]bool{"true": true, " false\n": false} {
		root, err := js.Parse([]byte(in))
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		b, ok := root.Schema.IsBool()
		if !ok || b != want {
			t.Fatalf("parse %q: got (%v, %v)", in, b, ok)
		}
	}
	if _, err := js.Parse([]byte(`"nope"`)); err == nil {
		t.Fatalf("a string is not a schema")
	}
}

func TestParse_KeywordGroups(t *testing.T) {
	root, err := js.Parse([]byte(`{
	  "$schema": "http://json-schema.org/draft-07/schema#",
	  "title": "T",
	  "default": {"n": 1},
	  "type": ["object", "null"],
	  "enum": [1, "a"],
	  "allOf": [true, {"type": "string"}],
	  "not": false,
	  "maximum": 10,
	  "maxLength": 4,
	  "pattern": "^a",
	  "items": [{"type": "integer"}, true],
	  "additionalItems": false,
	  "uniqueItems": true,
	  "required": ["a"],
	  "properties": {"a": {"$ref": "#/definitions/A"}},
	  "additionalProperties": false,
	  "x-vendor": {"k": [1]},
	  "definitions": {"A": {"type": "integer"}},
	  "$defs": {"B": true}
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if root.Meta != "http://json-schema.org/draft-07/schema#" {
		t.Fatalf("meta: %q", root.Meta)
	}
	if len(root.Definitions) != 2 {
		t.Fatalf("definitions and $defs should merge: %v", root.Definitions)
	}
	o := root.Schema.Object
	if o == nil {
		t.Fatalf("expected object schema")
	}
	if o.Metadata == nil || o.Metadata.Title != "T" || o.Metadata.Default == nil {
		t.Fatalf("metadata: %+v", o.Metadata)
	}
	if o.Type.IsSingle() || len(o.Type.Vec) != 2 || o.Type.Vec[1] != js.TypeNull {
		t.Fatalf("type: %+v", o.Type)
	}
	if len(o.Enum) != 2 || o.Enum[0] != json.Number("1") {
		t.Fatalf("enum numbers should stay json.Number: %#v", o.Enum)
	}
	if o.Subschemas == nil || len(o.Subschemas.AllOf) != 2 || o.Subschemas.Not == nil {
		t.Fatalf("subschemas: %+v", o.Subschemas)
	}
	if b, ok := o.Subschemas.Not.IsBool(); !ok || b {
		t.Fatalf("not: %+v", o.Subschemas.Not)
	}
	if o.Number == nil || *o.Number.Maximum != 10 {
		t.Fatalf("number: %+v", o.Number)
	}
	if o.String == nil || *o.String.MaxLength != 4 || *o.String.Pattern != "^a" {
		t.Fatalf("string: %+v", o.String)
	}
	if o.Array == nil || o.Array.Items.IsSingle() || len(o.Array.Items.Vec) != 2 || !*o.Array.UniqueItems {
		t.Fatalf("array: %+v", o.Array)
	}
	if o.Object == nil || o.Object.Required[0] != "a" || o.Object.Properties["a"].Object.Reference == nil || *o.Object.Properties["a"].Object.Reference != "#/definitions/A" {
		t.Fatalf("object: %+v", o.Object)
	}
	if _, ok := o.Extensions["x-vendor"]; !ok {
		t.Fatalf("unknown keywords should be kept: %v", o.Extensions)
	}
	if _, ok := o.Extensions["$schema"]; ok {
		t.Fatalf("$schema belongs to the root, not the extensions")
	}
}

func TestParse_UnusedGroupsStayNil(t *testing.T) {
	s, err := js.ParseSchema([]byte(`{"type": "string"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	o := s.Object
	if o.Number != nil || o.String != nil || o.Array != nil || o.Object != nil || o.Subschemas != nil {
		t.Fatalf("only touched groups should be allocated: %+v", o)
	}
	if !o.Type.IsSingle() || *o.Type.Single != js.TypeString {
		t.Fatalf("type: %+v", o.Type)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		`{"type": "text"}`:       "type",
		`{"maxLength": -1}`:      "maxLength",
		`{"enum": 3}`:            "enum",
		`{"properties": [1]}`:    "properties",
		`{"items": [1]}`:         "items",
		`{"definitions": false}`: "definitions",
	}
	for in, keyword := range cases {
		_, err := js.Parse([]byte(in))
		if err == nil {
			t.Fatalf("%s: expected error", in)
		}
		if !strings.Contains(err.Error(), keyword) {
			t.Fatalf("%s: error should name %s: %v", in, keyword, err)
		}
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	src := `{"$schema":"s","type":"object","required":["a"],"properties":{"a":{"type":["string","null"],"maxLength":3}},` +
		`"items":{"minimum":1.5},"not":false,"x-k":"v","definitions":{"D":true}}`
	root, err := js.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got, want any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if err := json.Unmarshal([]byte(src), &want); err != nil {
		t.Fatalf("unmarshal source: %v", err)
	}
	gb, _ := json.Marshal(got)
	wb, _ := json.Marshal(want)
	if string(gb) != string(wb) {
		t.Fatalf("round trip changed the document:\n got %s\nwant %s", gb, wb)
	}
}

func TestMarshal_BooleanRootWithDefinitions(t *testing.T) {
	root := js.Root{Schema: js.False(), Definitions: js.Definitions{"A": js.True()}}
	out, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := js.Parse(out)
	if err != nil {
		t.Fatalf("parse %s: %v", out, err)
	}
	if back.Schema.Object == nil || len(back.Schema.Object.Subschemas.AllOf) != 1 || len(back.Definitions) != 1 {
		t.Fatalf("unexpected %s", out)
	}
}

func TestParse_EmptyReferenceIsKept(t *testing.T) {
	root, err := js.Parse([]byte(`{"$ref": ""}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ref := root.Schema.Object.Reference; ref == nil || *ref != "" {
		t.Fatalf("expected an empty reference, got %v", ref)
	}
	out, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"$ref":""}` {
		t.Fatalf("got %s", out)
	}
}
