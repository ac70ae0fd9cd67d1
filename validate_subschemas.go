package conform

import (
	"fmt"

	js "github.com/reoring/conform/jsonschema"
)

// checkSubschemas applies allOf, anyOf, oneOf, not and if/then/else in that
// order. Branch failures are counted, not reported individually.
func (w *walker) checkSubschemas(path string, ss *js.SubschemaValidation, v any) error {
	if ss == nil {
		return nil
	}

	if ss.AllOf != nil {
		p := path + ".allOf"
		bad := 0
		for _, sub := range ss.AllOf {
			if w.schema(p, sub, v) != nil {
				bad++
			}
		}
		if bad != 0 {
			return w.valueErr(p, CodeAllOf, v,
				fmt.Sprintf("value did not validate for %d of %d `allOf` schemas", bad, len(ss.AllOf)),
				map[string]any{"failed": bad, "total": len(ss.AllOf)})
		}
	}

	if ss.AnyOf != nil {
		p := path + ".anyOf"
		matched := false
		for _, sub := range ss.AnyOf {
			if w.schema(p, sub, v) == nil {
				matched = true
				break
			}
		}
		if !matched {
			return w.valueErr(p, CodeAnyOf, v, "value did not validate for any `anyOf` schemas", nil)
		}
	}

	if ss.OneOf != nil {
		p := path + ".oneOf"
		good := 0
		for _, sub := range ss.OneOf {
			if w.schema(p, sub, v) == nil {
				good++
			}
		}
		if good != 1 {
			return w.valueErr(p, CodeOneOf, v,
				fmt.Sprintf("value validated against %d of %d `oneOf` schemas (rather than 1)", good, len(ss.OneOf)),
				map[string]any{"passed": good, "total": len(ss.OneOf)})
		}
	}

	if ss.Not != nil {
		p := path + ".not"
		if w.schema(p, *ss.Not, v) == nil {
			return w.valueErr(p, CodeNot, v, "value validated `not` schemas (but must not)", nil)
		}
	}

	return w.checkConditional(path, ss, v)
}

// conditionalDefect describes a malformed if/then/else combination, or
// returns "" when the combination is usable.
func conditionalDefect(ss *js.SubschemaValidation) string {
	if ss.If == nil {
		switch {
		case ss.Then != nil && ss.Else != nil:
			return "cannot have `then` and `else` schemas without an `if` schema"
		case ss.Then != nil:
			return "cannot have a `then` schema without an `if` schema"
		case ss.Else != nil:
			return "cannot have an `else` schema without an `if` schema"
		}
		return ""
	}
	if ss.Then == nil && ss.Else == nil {
		return "an `if` schema must have a `then` or `else`"
	}
	return ""
}

func (w *walker) checkConditional(path string, ss *js.SubschemaValidation, v any) error {
	if d := conditionalDefect(ss); d != "" {
		return w.schemaErr(path, d)
	}
	if ss.If == nil {
		return nil
	}
	if w.schema(path+".if", *ss.If, v) == nil {
		if ss.Then != nil {
			return w.schema(path+".then", *ss.Then, v)
		}
	} else if ss.Else != nil {
		return w.schema(path+".else", *ss.Else, v)
	}
	return nil
}
