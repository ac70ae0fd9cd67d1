package conform

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/conform/internal/engine"
	js "github.com/reoring/conform/jsonschema"
)

// SchemaProvider is implemented by types that describe their own serialized
// shape. The schema is usually derived from the type definition by a
// generator, independently of how the type marshals.
type SchemaProvider interface {
	JSONSchema() (*js.Root, error)
}

// ValueOpt controls how documents are decoded into values.
type ValueOpt struct {
	// RejectDuplicateKeys fails on objects that repeat a key.
	RejectDuplicateKeys bool
	// MaxDepth bounds container nesting; 0 means unlimited.
	MaxDepth int
}

// ParseValue decodes a JSON document into a value tree. Numbers are kept as
// json.Number so integer-ness survives.
func ParseValue(data []byte) (any, error) {
	return ParseValueWith(data, ValueOpt{})
}

// ParseValueWith is ParseValue with decoding options.
func ParseValueWith(data []byte, opt ValueOpt) (any, error) {
	return engine.DecodeJSON(data, engine.Options{RejectDuplicateKeys: opt.RejectDuplicateKeys, MaxDepth: opt.MaxDepth})
}

// ParseValueYAML decodes the first document of a YAML stream into a value
// tree.
func ParseValueYAML(data []byte) (any, error) {
	return engine.DecodeYAML(data)
}

// ToValue serializes item and decodes the result into a value tree. Any
// failure is returned as a *SerializationError.
func ToValue(item any) (any, error) {
	b, err := json.Marshal(item)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	v, err := engine.DecodeJSON(b, engine.Options{})
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	return v, nil
}

// Validate confirms that item serializes to a value its own schema accepts.
func Validate(item SchemaProvider) error {
	_, _, err := validateItem(item)
	return err
}

// ValidateWithOutput is Validate, but a failure comes back as a *Diagnostic
// whose message also shows the schema and the serialized item. Only a failure
// to produce the schema is returned as is.
func ValidateWithOutput(item SchemaProvider) error {
	root, v, err := validateItem(item)
	if err == nil || root == nil {
		return err
	}
	return &Diagnostic{Err: err, Schema: root, Value: v}
}

// validateItem fetches the schema and serializes item exactly once, returning
// both alongside the outcome. root is nil when the schema is unavailable.
func validateItem(item SchemaProvider) (*js.Root, any, error) {
	root, err := item.JSONSchema()
	if err != nil {
		return nil, nil, fmt.Errorf("conform: schema for %T: %w", item, err)
	}
	v, err := ToValue(item)
	if err != nil {
		return root, nil, err
	}
	return root, v, ValidateRoot(root, v)
}

// Diagnostic bundles a failed validation with what it ran against.
type Diagnostic struct {
	Err    error
	Schema *js.Root
	Value  any
}

// Error renders the error, the pretty-printed schema and the pretty-printed
// value on separate lines.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("error: %v\nschema: %s\nvalue: %s", d.Err, prettyJSON(d.Schema), prettyJSON(d.Value))
}

func (d *Diagnostic) Unwrap() error { return d.Err }

func prettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
