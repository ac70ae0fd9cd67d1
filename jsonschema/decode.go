package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// Parse decodes a schema document. Both "definitions" and "$defs" feed the
// definitions table; when a name appears in both, "$defs" wins.
func Parse(data []byte) (*Root, error) {
	var r Root
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	return &r, nil
}

// ParseSchema decodes a single schema node (no definitions handling).
func ParseSchema(data []byte) (Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return Schema{}, fmt.Errorf("jsonschema: %w", err)
	}
	return s, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Root) UnmarshalJSON(data []byte) error {
	*r = Root{}
	if b, ok := boolLiteral(data); ok {
		r.Schema = Schema{Bool: b}
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return errors.New("schema must be a boolean or an object")
	}
	if raw, ok := fields["$schema"]; ok {
		if err := json.Unmarshal(raw, &r.Meta); err != nil {
			return fmt.Errorf("$schema: %w", err)
		}
		delete(fields, "$schema")
	}
	for _, key := range []string{"definitions", "$defs"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var defs map[string]Schema
		if err := json.Unmarshal(raw, &defs); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if r.Definitions == nil {
			r.Definitions = make(Definitions, len(defs))
		}
		for name, s := range defs {
			r.Definitions[name] = s
		}
		delete(fields, key)
	}
	o, err := decodeObject(fields)
	if err != nil {
		return err
	}
	r.Schema = New(o)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if b, ok := boolLiteral(data); ok {
		*s = Schema{Bool: b}
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return errors.New("schema must be a boolean or an object")
	}
	o, err := decodeObject(fields)
	if err != nil {
		return err
	}
	*s = New(o)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (sv *SingleOrVec[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var vs []T
		if err := json.Unmarshal(data, &vs); err != nil {
			return err
		}
		if vs == nil {
			vs = []T{}
		}
		*sv = SingleOrVec[T]{Vec: vs}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*sv = SingleOrVec[T]{Single: &v}
	return nil
}

func boolLiteral(data []byte) (bool, bool) {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// keywordDecoder fills one keyword of o from its raw JSON.
type keywordDecoder func(o *SchemaObject, raw json.RawMessage) error

var keywords = map[string]keywordDecoder{
	"$id":         func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &meta(o).ID) },
	"title":       func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &meta(o).Title) },
	"description": func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &meta(o).Description) },
	"deprecated":  func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &meta(o).Deprecated) },
	"readOnly":    func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &meta(o).ReadOnly) },
	"writeOnly":   func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &meta(o).WriteOnly) },
	"default": func(o *SchemaObject, raw json.RawMessage) error {
		v, err := decodeAny(raw)
		meta(o).Default = &Const{Value: v}
		return err
	},
	"examples": func(o *SchemaObject, raw json.RawMessage) error {
		v, err := decodeList(raw)
		meta(o).Examples = v
		return err
	},

	"type": func(o *SchemaObject, raw json.RawMessage) error {
		var t SingleOrVec[InstanceType]
		if err := json.Unmarshal(raw, &t); err != nil {
			return err
		}
		if t.Single != nil {
			if !t.Single.Valid() {
				return fmt.Errorf("unknown instance type %q", *t.Single)
			}
		}
		for _, it := range t.Vec {
			if !it.Valid() {
				return fmt.Errorf("unknown instance type %q", it)
			}
		}
		o.Type = &t
		return nil
	},
	"format": func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &o.Format) },
	"enum": func(o *SchemaObject, raw json.RawMessage) error {
		v, err := decodeList(raw)
		if v == nil && err == nil {
			v = []any{}
		}
		o.Enum = v
		return err
	},
	"const": func(o *SchemaObject, raw json.RawMessage) error {
		v, err := decodeAny(raw)
		o.Const = &Const{Value: v}
		return err
	},

	"allOf": func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &subs(o).AllOf) },
	"anyOf": func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &subs(o).AnyOf) },
	"oneOf": func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &subs(o).OneOf) },
	"not":   func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &subs(o).Not) },
	"if":    func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &subs(o).If) },
	"then":  func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &subs(o).Then) },
	"else":  func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &subs(o).Else) },

	"multipleOf":       func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &num(o).MultipleOf) },
	"maximum":          func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &num(o).Maximum) },
	"exclusiveMaximum": func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &num(o).ExclusiveMaximum) },
	"minimum":          func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &num(o).Minimum) },
	"exclusiveMinimum": func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &num(o).ExclusiveMinimum) },

	"maxLength": func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &str(o).MaxLength) },
	"minLength": func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &str(o).MinLength) },
	"pattern":   func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &str(o).Pattern) },

	"items":           func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &arr(o).Items) },
	"additionalItems": func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &arr(o).AdditionalItems) },
	"maxItems":        func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &arr(o).MaxItems) },
	"minItems":        func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &arr(o).MinItems) },
	"uniqueItems":     func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &arr(o).UniqueItems) },
	"contains":        func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &arr(o).Contains) },

	"maxProperties":        func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &obj(o).MaxProperties) },
	"minProperties":        func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &obj(o).MinProperties) },
	"required":             func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &obj(o).Required) },
	"properties":           func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &obj(o).Properties) },
	"patternProperties":    func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &obj(o).PatternProperties) },
	"additionalProperties": func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &obj(o).AdditionalProperties) },
	"propertyNames":        func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &obj(o).PropertyNames) },

	"$ref": func(o *SchemaObject, raw json.RawMessage) error { return json.Unmarshal(raw, &o.Reference) },
}

func decodeObject(fields map[string]json.RawMessage) (*SchemaObject, error) {
	o := &SchemaObject{}
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		raw := fields[k]
		dec, ok := keywords[k]
		if !ok {
			v, err := decodeAny(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			if o.Extensions == nil {
				o.Extensions = make(map[string]any)
			}
			o.Extensions[k] = v
			continue
		}
		if err := dec(o, raw); err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
	}
	return o, nil
}

// decodeAny decodes an arbitrary JSON value keeping numbers as json.Number.
func decodeAny(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeList(raw json.RawMessage) ([]any, error) {
	v, err := decodeAny(raw)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, errors.New("expected an array")
	}
	return list, nil
}

func meta(o *SchemaObject) *Metadata {
	if o.Metadata == nil {
		o.Metadata = &Metadata{}
	}
	return o.Metadata
}

func subs(o *SchemaObject) *SubschemaValidation {
	if o.Subschemas == nil {
		o.Subschemas = &SubschemaValidation{}
	}
	return o.Subschemas
}

func num(o *SchemaObject) *NumberValidation {
	if o.Number == nil {
		o.Number = &NumberValidation{}
	}
	return o.Number
}

func str(o *SchemaObject) *StringValidation {
	if o.String == nil {
		o.String = &StringValidation{}
	}
	return o.String
}

func arr(o *SchemaObject) *ArrayValidation {
	if o.Array == nil {
		o.Array = &ArrayValidation{}
	}
	return o.Array
}

func obj(o *SchemaObject) *ObjectValidation {
	if o.Object == nil {
		o.Object = &ObjectValidation{}
	}
	return o.Object
}
