package conform

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	js "github.com/reoring/conform/jsonschema"
)

// DefaultMaxRefDepth bounds how many references may be followed along one
// path before validation gives up with a schema error.
const DefaultMaxRefDepth = 1000

// Options tunes a validation call.
type Options struct {
	// MaxRefDepth limits nested reference resolution. 0 selects
	// DefaultMaxRefDepth; a negative value disables the limit.
	MaxRefDepth int
	// Logger, when set, receives a trace event for every failing node and a
	// debug event for every resolved reference.
	Logger *zerolog.Logger
}

// ValidateSchema checks v against s, resolving references in defs. path is
// the breadcrumb reported in errors; callers usually pass "$".
//
// The result is nil, a *SchemaError or a *ValueError. Nothing is mutated, so
// concurrent calls are safe as long as nobody writes to defs meanwhile.
func ValidateSchema(path string, s js.Schema, defs js.Definitions, v any) error {
	return ValidateWith(Options{}, path, s, defs, v)
}

// ValidateRoot checks v against a schema document starting at "$".
func ValidateRoot(root *js.Root, v any) error {
	return ValidateWith(Options{}, "$", root.Schema, root.Definitions, v)
}

// ValidateWith is ValidateSchema with explicit options.
func ValidateWith(opt Options, path string, s js.Schema, defs js.Definitions, v any) error {
	maxRef := opt.MaxRefDepth
	if maxRef == 0 {
		maxRef = DefaultMaxRefDepth
	}
	w := &walker{defs: defs, log: opt.Logger, maxRefDepth: maxRef}
	return w.schema(path, s, v)
}

// walker carries the per-call state of one validation.
type walker struct {
	defs        js.Definitions
	log         *zerolog.Logger
	maxRefDepth int
	refDepth    int
}

func (w *walker) valueErr(path, code string, v any, details string, params map[string]any) error {
	if w.log != nil {
		w.log.Trace().Str("path", path).Str("code", code).Msg(details)
	}
	return &ValueError{Path: path, Value: v, Details: details, Code: code, Params: params}
}

func (w *walker) schemaErr(path, details string) error {
	if w.log != nil {
		w.log.Trace().Str("path", path).Str("code", CodeInvalidSchema).Msg(details)
	}
	return &SchemaError{Path: path, Details: details}
}

func (w *walker) schema(path string, s js.Schema, v any) error {
	if s.Object != nil {
		return w.object(path, s.Object, v)
	}
	if s.Bool {
		return nil
	}
	return w.valueErr(path, CodeEmptySet, v, "trying to match against the empty set schema", nil)
}

// object runs the keyword groups in order and stops at the first failure.
func (w *walker) object(path string, o *js.SchemaObject, v any) error {
	if err := w.checkType(path, o.Type, v); err != nil {
		return err
	}
	if err := w.checkConstEnum(path, o, v); err != nil {
		return err
	}
	if err := w.checkSubschemas(path, o.Subschemas, v); err != nil {
		return err
	}
	if err := w.checkNumber(path, o.Number, v); err != nil {
		return err
	}
	if err := w.checkString(path, o.String, v); err != nil {
		return err
	}
	if err := w.checkArray(path, o.Array, v); err != nil {
		return err
	}
	if err := w.checkObject(path, o.Object, v); err != nil {
		return err
	}
	if o.Reference == nil {
		return nil
	}
	return w.checkReference(path, *o.Reference, v)
}

func (w *walker) checkType(path string, t *js.SingleOrVec[js.InstanceType], v any) error {
	if t == nil {
		return nil
	}
	if t.Single != nil {
		if matchesType(*t.Single, v) {
			return nil
		}
		return w.valueErr(path, CodeInvalidType, v,
			fmt.Sprintf("value is not of type %s", *t.Single),
			map[string]any{"expected": string(*t.Single), "got": KindOf(v).String()})
	}
	names := make([]string, len(t.Vec))
	for i, it := range t.Vec {
		if matchesType(it, v) {
			return nil
		}
		names[i] = string(it)
	}
	return w.valueErr(path, CodeInvalidType, v,
		fmt.Sprintf("value is not any of [%s]", strings.Join(names, ", ")),
		map[string]any{"expected": names, "got": KindOf(v).String()})
}

func matchesType(t js.InstanceType, v any) bool {
	switch t {
	case js.TypeNull:
		return KindOf(v) == KindNull
	case js.TypeBoolean:
		return KindOf(v) == KindBool
	case js.TypeObject:
		return KindOf(v) == KindObject
	case js.TypeArray:
		return KindOf(v) == KindArray
	case js.TypeNumber:
		return KindOf(v) == KindNumber
	case js.TypeString:
		return KindOf(v) == KindString
	case js.TypeInteger:
		return isInteger(v)
	}
	return false
}

func (w *walker) checkConstEnum(path string, o *js.SchemaObject, v any) error {
	switch {
	case o.Const != nil && o.Enum != nil:
		return w.schemaErr(path, "both `const` and `enum` present")
	case o.Const != nil:
		if equalValues(o.Const.Value, v) {
			return nil
		}
		return w.valueErr(path+".const", CodeConstMismatch, v, "mismatch with expected const value", nil)
	case o.Enum != nil:
		for _, e := range o.Enum {
			if equalValues(e, v) {
				return nil
			}
		}
		return w.valueErr(path+".enum", CodeInvalidEnum, v, "not a valid enumerated value", nil)
	}
	return nil
}
