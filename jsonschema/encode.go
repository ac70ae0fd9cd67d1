package jsonschema

import (
	json "github.com/goccy/go-json"
)

// MarshalJSON implements json.Marshaler.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s.Object == nil {
		if s.Bool {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	}
	return json.Marshal(s.Object.fields())
}

// MarshalJSON implements json.Marshaler.
func (sv SingleOrVec[T]) MarshalJSON() ([]byte, error) {
	if sv.Single != nil {
		return json.Marshal(*sv.Single)
	}
	if sv.Vec == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(sv.Vec)
}

// MarshalJSON implements json.Marshaler. Definitions are written under
// "definitions".
func (r Root) MarshalJSON() ([]byte, error) {
	var m map[string]any
	if r.Schema.Object == nil {
		if r.Meta == "" && len(r.Definitions) == 0 {
			return r.Schema.MarshalJSON()
		}
		// A boolean root with definitions has no object form; fold it into allOf.
		m = map[string]any{"allOf": []Schema{r.Schema}}
	} else {
		m = r.Schema.Object.fields()
	}
	if r.Meta != "" {
		m["$schema"] = r.Meta
	}
	if len(r.Definitions) > 0 {
		m["definitions"] = map[string]Schema(r.Definitions)
	}
	return json.Marshal(m)
}

// fields flattens the keyword groups back into their JSON keywords.
func (o *SchemaObject) fields() map[string]any {
	m := make(map[string]any, len(o.Extensions)+8)
	for k, v := range o.Extensions {
		m[k] = v
	}
	if md := o.Metadata; md != nil {
		putString(m, "$id", md.ID)
		putString(m, "title", md.Title)
		putString(m, "description", md.Description)
		if md.Default != nil {
			m["default"] = md.Default.Value
		}
		putTrue(m, "deprecated", md.Deprecated)
		putTrue(m, "readOnly", md.ReadOnly)
		putTrue(m, "writeOnly", md.WriteOnly)
		if md.Examples != nil {
			m["examples"] = md.Examples
		}
	}
	if o.Type != nil {
		m["type"] = *o.Type
	}
	putString(m, "format", o.Format)
	if o.Enum != nil {
		m["enum"] = o.Enum
	}
	if o.Const != nil {
		m["const"] = o.Const.Value
	}
	if ss := o.Subschemas; ss != nil {
		putSchemas(m, "allOf", ss.AllOf)
		putSchemas(m, "anyOf", ss.AnyOf)
		putSchemas(m, "oneOf", ss.OneOf)
		putSchema(m, "not", ss.Not)
		putSchema(m, "if", ss.If)
		putSchema(m, "then", ss.Then)
		putSchema(m, "else", ss.Else)
	}
	if n := o.Number; n != nil {
		putFloat(m, "multipleOf", n.MultipleOf)
		putFloat(m, "maximum", n.Maximum)
		putFloat(m, "exclusiveMaximum", n.ExclusiveMaximum)
		putFloat(m, "minimum", n.Minimum)
		putFloat(m, "exclusiveMinimum", n.ExclusiveMinimum)
	}
	if s := o.String; s != nil {
		putUint(m, "maxLength", s.MaxLength)
		putUint(m, "minLength", s.MinLength)
		if s.Pattern != nil {
			m["pattern"] = *s.Pattern
		}
	}
	if a := o.Array; a != nil {
		if a.Items != nil {
			m["items"] = *a.Items
		}
		putSchema(m, "additionalItems", a.AdditionalItems)
		putUint(m, "maxItems", a.MaxItems)
		putUint(m, "minItems", a.MinItems)
		if a.UniqueItems != nil {
			m["uniqueItems"] = *a.UniqueItems
		}
		putSchema(m, "contains", a.Contains)
	}
	if ob := o.Object; ob != nil {
		putUint(m, "maxProperties", ob.MaxProperties)
		putUint(m, "minProperties", ob.MinProperties)
		if ob.Required != nil {
			m["required"] = ob.Required
		}
		if ob.Properties != nil {
			m["properties"] = ob.Properties
		}
		if ob.PatternProperties != nil {
			m["patternProperties"] = ob.PatternProperties
		}
		putSchema(m, "additionalProperties", ob.AdditionalProperties)
		putSchema(m, "propertyNames", ob.PropertyNames)
	}
	if o.Reference != nil {
		m["$ref"] = *o.Reference
	}
	return m
}

func putString(m map[string]any, k, v string) {
	if v != "" {
		m[k] = v
	}
}

func putTrue(m map[string]any, k string, v bool) {
	if v {
		m[k] = true
	}
}

func putFloat(m map[string]any, k string, v *float64) {
	if v != nil {
		m[k] = *v
	}
}

func putUint(m map[string]any, k string, v *uint32) {
	if v != nil {
		m[k] = *v
	}
}

func putSchema(m map[string]any, k string, s *Schema) {
	if s != nil {
		m[k] = *s
	}
}

func putSchemas(m map[string]any, k string, ss []Schema) {
	if ss != nil {
		m[k] = ss
	}
}
