package conform

import (
	"fmt"
	"strings"

	js "github.com/reoring/conform/jsonschema"
)

// CheckRoot inspects a schema document without a value: every reference must
// resolve, every pattern must compile, const/enum must not be combined and
// if/then/else must be paired. It returns the first *SchemaError found, in
// the same wording validation would use. References are not followed, so
// cyclic definitions are fine here.
func CheckRoot(root *js.Root) error {
	c := checker{defs: root.Definitions}
	if err := c.schema("$", root.Schema); err != nil {
		return err
	}
	for _, name := range sortedKeys(root.Definitions) {
		if err := c.schema("#/definitions/"+name, root.Definitions[name]); err != nil {
			return err
		}
	}
	return nil
}

type checker struct {
	defs js.Definitions
}

func (c checker) schema(path string, s js.Schema) error {
	if s.Object == nil {
		return nil
	}
	o := s.Object
	if o.Const != nil && o.Enum != nil {
		return &SchemaError{Path: path, Details: "both `const` and `enum` present"}
	}
	if ss := o.Subschemas; ss != nil {
		if err := c.subschemas(path, ss); err != nil {
			return err
		}
	}
	if sv := o.String; sv != nil && sv.Pattern != nil {
		if _, tp, err := compilePattern(*sv.Pattern); err != nil {
			return &SchemaError{Path: path, Details: fmt.Sprintf("%s is not a valid regex", tp)}
		}
	}
	if av := o.Array; av != nil {
		if av.Items != nil {
			if av.Items.Single != nil {
				if err := c.schema(path+".items", *av.Items.Single); err != nil {
					return err
				}
			}
			for i, s := range av.Items.Vec {
				if err := c.schema(indexPath(path+".items", i), s); err != nil {
					return err
				}
			}
		}
		if err := c.optional(path+".additionalItems", av.AdditionalItems); err != nil {
			return err
		}
		if err := c.optional(path+".contains", av.Contains); err != nil {
			return err
		}
	}
	if ov := o.Object; ov != nil {
		for _, name := range sortedKeys(ov.Properties) {
			if err := c.schema(path+".properties."+name, ov.Properties[name]); err != nil {
				return err
			}
		}
		for _, pat := range sortedKeys(ov.PatternProperties) {
			if _, tp, err := compilePattern(pat); err != nil {
				return &SchemaError{Path: path, Details: fmt.Sprintf("%s is not a valid regex", tp)}
			}
			if err := c.schema(path+".patternProperties."+pat, ov.PatternProperties[pat]); err != nil {
				return err
			}
		}
		if err := c.optional(path+".additionalProperties", ov.AdditionalProperties); err != nil {
			return err
		}
		if err := c.optional(path+".propertyNames", ov.PropertyNames); err != nil {
			return err
		}
	}
	if o.Reference != nil {
		ref := *o.Reference
		idx := strings.LastIndexByte(ref, '/')
		if idx < 0 {
			return &SchemaError{Path: path, Details: "invalid reference: " + ref}
		}
		if _, ok := c.defs[ref[idx+1:]]; !ok {
			return &SchemaError{Path: path, Details: "invalid reference: " + ref}
		}
	}
	return nil
}

func (c checker) subschemas(path string, ss *js.SubschemaValidation) error {
	if d := conditionalDefect(ss); d != "" {
		return &SchemaError{Path: path, Details: d}
	}
	for _, group := range []struct {
		name    string
		schemas []js.Schema
	}{{"allOf", ss.AllOf}, {"anyOf", ss.AnyOf}, {"oneOf", ss.OneOf}} {
		for i, s := range group.schemas {
			if err := c.schema(indexPath(path+"."+group.name, i), s); err != nil {
				return err
			}
		}
	}
	for _, single := range []struct {
		name   string
		schema *js.Schema
	}{{"not", ss.Not}, {"if", ss.If}, {"then", ss.Then}, {"else", ss.Else}} {
		if err := c.optional(path+"."+single.name, single.schema); err != nil {
			return err
		}
	}
	return nil
}

func (c checker) optional(path string, s *js.Schema) error {
	if s == nil {
		return nil
	}
	return c.schema(path, *s)
}
