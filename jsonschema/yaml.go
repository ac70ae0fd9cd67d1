package jsonschema

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/conform/internal/engine"
)

// ParseYAML decodes a schema document written in YAML. The document is
// normalised into JSON shapes first, so the result is identical to Parse on
// the equivalent JSON.
func ParseYAML(data []byte) (*Root, error) {
	v, err := engine.DecodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	return Parse(b)
}
