package conform

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// Issue codes, one per failing keyword family.
const (
	CodeInvalidSchema = "invalid_schema"
	CodeSerialization = "serialization"
	CodeEmptySet      = "empty_set"
	CodeInvalidType   = "invalid_type"
	CodeConstMismatch = "const_mismatch"
	CodeInvalidEnum   = "invalid_enum"
	// Combinators
	CodeAllOf = "all_of"
	CodeAnyOf = "any_of"
	CodeOneOf = "one_of"
	CodeNot   = "not"
	// Keyword families
	CodeNotMultiple = "not_multiple"
	CodeTooBig      = "too_big"
	CodeTooSmall    = "too_small"
	CodeTooLong     = "too_long"
	CodeTooShort    = "too_short"
	CodePattern     = "pattern"
	CodeNotUnique   = "not_unique"
	CodeContains    = "contains"
	CodeRequired    = "required"
)

// SchemaError reports a schema that is self-contradictory or malformed: const
// together with enum, a dangling if/then/else, an unresolvable reference or
// an invalid regular expression. It points at a defect in schema
// production, not in the data.
type SchemaError struct {
	Path    string
	Details string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid schema at %s: %s", e.Path, e.Details)
}

// ValueError reports a constraint that the value failed.
type ValueError struct {
	Path    string
	Value   any
	Details string
	Code    string
	// Params carries structured parameters (e.g., {"failed":2, "total":3})
	// for i18n and observability.
	Params map[string]any
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s did not conform to the schema at %s: %s", compactJSON(e.Value), e.Path, e.Details)
}

// SerializationError wraps a failure to turn an item into a value.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string { return "error serializing item: " + e.Err.Error() }

func (e *SerializationError) Unwrap() error { return e.Err }

// IsSchemaError reports whether err is (or wraps) a *SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// IsValueError reports whether err is (or wraps) a *ValueError.
func IsValueError(err error) bool {
	var ve *ValueError
	return errors.As(err, &ve)
}

// Issue is the flat, code-centric view of a validation result used by
// reporting and i18n.
type Issue struct {
	Path    string
	Code    string
	Message string
	Params  map[string]any
	Cause   error // Optional: underlying error.
}

// AsIssue converts a validation result into an Issue. It returns false for
// nil and for errors that did not come from this package.
func AsIssue(err error) (Issue, bool) {
	var (
		ve *ValueError
		se *SchemaError
		ze *SerializationError
	)
	switch {
	case errors.As(err, &ve):
		return Issue{Path: ve.Path, Code: ve.Code, Message: ve.Details, Params: ve.Params}, true
	case errors.As(err, &se):
		return Issue{Path: se.Path, Code: CodeInvalidSchema, Message: se.Details}, true
	case errors.As(err, &ze):
		return Issue{Path: "$", Code: CodeSerialization, Message: ze.Err.Error(), Cause: ze.Err}, true
	}
	return Issue{}, false
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
