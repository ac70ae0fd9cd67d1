package jsonschema_test

import (
	"testing"

	json "github.com/goccy/go-json"

	js "github.com/reoring/conform/jsonschema"
)

func TestParseYAML_MatchesJSON(t *testing.T) {
	y := `
type: object
required: [name]
properties:
  name:
    type: string
    pattern: '^[a-z]+\/[0-9]+$'
  count:
    type: integer
    minimum: 0
definitions:
  Tag:
    enum: [a, b]
`
	j := `{"type":"object","required":["name"],"properties":{"name":{"type":"string","pattern":"^[a-z]+\\/[0-9]+$"},` +
		`"count":{"type":"integer","minimum":0}},"definitions":{"Tag":{"enum":["a","b"]}}}`

	fromYAML, err := js.ParseYAML([]byte(y))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	fromJSON, err := js.Parse([]byte(j))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	a, _ := json.Marshal(fromYAML)
	b, _ := json.Marshal(fromJSON)
	if string(a) != string(b) {
		t.Fatalf("documents differ:\nyaml %s\njson %s", a, b)
	}
}

func TestParseYAML_Invalid(t *testing.T) {
	if _, err := js.ParseYAML([]byte("type: [unclosed")); err == nil {
		t.Fatalf("expected a YAML syntax error")
	}
	if _, err := js.ParseYAML([]byte("- 1\n- 2\n")); err == nil {
		t.Fatalf("a sequence is not a schema")
	}
}
