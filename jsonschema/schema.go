// Package jsonschema holds the schema tree consumed by the validation engine.
//
// A Schema is either a boolean literal or a SchemaObject made of optional
// keyword groups (type, const/enum, subschemas, number, string, array,
// object, reference). The groups are fixed struct fields rather than an open
// map so the engine can destructure a node in one pass.
package jsonschema

// InstanceType classifies the shape of a value.
type InstanceType string

const (
	TypeNull    InstanceType = "null"
	TypeBoolean InstanceType = "boolean"
	TypeObject  InstanceType = "object"
	TypeArray   InstanceType = "array"
	TypeNumber  InstanceType = "number"
	TypeString  InstanceType = "string"
	TypeInteger InstanceType = "integer"
)

// Valid reports whether t is one of the known instance types.
func (t InstanceType) Valid() bool {
	switch t {
	case TypeNull, TypeBoolean, TypeObject, TypeArray, TypeNumber, TypeString, TypeInteger:
		return true
	}
	return false
}

// SingleOrVec holds either one value or a list of values. Keywords such as
// "type" and "items" accept both forms and the engine treats them
// differently.
type SingleOrVec[T any] struct {
	Single *T
	Vec    []T
}

// One wraps a single value.
func One[T any](v T) *SingleOrVec[T] { return &SingleOrVec[T]{Single: &v} }

// Many wraps a list of values.
func Many[T any](vs ...T) *SingleOrVec[T] {
	if vs == nil {
		vs = []T{}
	}
	return &SingleOrVec[T]{Vec: vs}
}

// IsSingle reports whether the single form is set.
func (s *SingleOrVec[T]) IsSingle() bool { return s != nil && s.Single != nil }

// Schema is a boolean schema (Object == nil) or a structured node.
// The zero value is the boolean schema false.
type Schema struct {
	Object *SchemaObject
	Bool   bool
}

// True returns the schema that accepts every value.
func True() Schema { return Schema{Bool: true} }

// False returns the schema that accepts nothing.
func False() Schema { return Schema{} }

// New wraps a structured node.
func New(o *SchemaObject) Schema { return Schema{Object: o} }

// Ptr returns a pointer to s; handy when filling optional sub-schema slots.
func Ptr(s Schema) *Schema { return &s }

// IsBool reports whether s is a boolean literal and, if so, its value.
func (s Schema) IsBool() (value bool, ok bool) {
	if s.Object != nil {
		return false, false
	}
	return s.Bool, true
}

// Definitions is the flat table of named schemas addressed by references.
type Definitions map[string]Schema

// SchemaObject is a structured schema node. Every group is optional.
type SchemaObject struct {
	Metadata   *Metadata
	Type       *SingleOrVec[InstanceType]
	Format     string
	Enum       []any
	Const      *Const
	Subschemas *SubschemaValidation
	Number     *NumberValidation
	String     *StringValidation
	Array      *ArrayValidation
	Object     *ObjectValidation
	// Reference is nil when $ref is absent; an empty reference is invalid.
	Reference  *string
	// Extensions keeps keywords the engine does not interpret so that a
	// decoded schema renders back unchanged.
	Extensions map[string]any
}

// Const wraps the expected value so that `"const": null` stays distinguishable
// from an absent keyword.
type Const struct {
	Value any
}

// ConstOf builds a Const group.
func ConstOf(v any) *Const { return &Const{Value: v} }

// Metadata carries annotation keywords. None of them is asserted.
type Metadata struct {
	ID          string
	Title       string
	Description string
	Default     *Const
	Deprecated  bool
	ReadOnly    bool
	WriteOnly   bool
	Examples    []any
}

// SubschemaValidation groups the boolean combinators.
type SubschemaValidation struct {
	AllOf []Schema
	AnyOf []Schema
	OneOf []Schema
	Not   *Schema
	If    *Schema
	Then  *Schema
	Else  *Schema
}

// NumberValidation groups numeric keywords.
type NumberValidation struct {
	MultipleOf       *float64
	Maximum          *float64
	ExclusiveMaximum *float64
	Minimum          *float64
	ExclusiveMinimum *float64
}

// StringValidation groups string keywords.
type StringValidation struct {
	MaxLength *uint32
	MinLength *uint32
	Pattern   *string
}

// ArrayValidation groups array keywords.
type ArrayValidation struct {
	Items           *SingleOrVec[Schema]
	AdditionalItems *Schema
	MaxItems        *uint32
	MinItems        *uint32
	UniqueItems     *bool
	Contains        *Schema
}

// ObjectValidation groups object keywords.
type ObjectValidation struct {
	MaxProperties        *uint32
	MinProperties        *uint32
	Required             []string
	Properties           map[string]Schema
	PatternProperties    map[string]Schema
	AdditionalProperties *Schema
	PropertyNames        *Schema
}

// Root is a schema document: the top-level schema plus its definitions.
type Root struct {
	// Meta is the "$schema" dialect URI, if any.
	Meta        string
	Schema      Schema
	Definitions Definitions
}

// Uint32 and Float64 are literal helpers for building schemas in code.
func Uint32(v uint32) *uint32 { return &v }

func Float64(v float64) *float64 { return &v }

func String(v string) *string { return &v }

func Bool(v bool) *bool { return &v }
