// Package conform checks JSON-like values against JSON-Schema-shaped trees.
//
// The engine is a pure recursive function over three read-only inputs: a
// schema, a flat definitions table and a value. It reports nil, a
// *SchemaError (the schema itself is malformed) or a *ValueError carrying the
// path, the offending value and a reason.
//
// Supported keywords: type, const, enum, allOf, anyOf, oneOf, not,
// if/then/else, multipleOf, maximum, exclusiveMaximum, minimum,
// exclusiveMinimum, maxLength, minLength, pattern, items (single or tuple),
// additionalItems, maxItems, minItems, uniqueItems, contains, maxProperties,
// minProperties, required, properties, patternProperties,
// additionalProperties, propertyNames and local $ref.
//
// Compatibility notes:
// - maximum and minimum reject a value equal to the bound.
// - maxLength and minLength count bytes.
// - multipleOf uses an approximate remainder test.
//
// Typical usage:
//
//	root, err := jsonschema.Parse(schemaJSON)
//	v, err := conform.ParseValue(doc)
//	err = conform.ValidateRoot(root, v)
//
//	// or, for a type that knows its schema:
//	err = conform.ValidateWithOutput(item)
package conform
