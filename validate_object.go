package conform

import (
	"fmt"
	"sort"

	js "github.com/reoring/conform/jsonschema"
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// checkObject applies the object keywords. The per-property pass walks the
// value's own keys in sorted order: a key is checked against its named
// property, then against every pattern property it matches, then against
// additionalProperties if neither applied, and its name against
// propertyNames regardless.
func (w *walker) checkObject(path string, ov *js.ObjectValidation, v any) error {
	if ov == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return w.valueErr(path, CodeInvalidType, v, "expected an object", map[string]any{"expected": "object"})
	}
	n := len(m)

	if ov.MaxProperties != nil && uint64(n) > uint64(*ov.MaxProperties) {
		return w.valueErr(path, CodeTooLong, v,
			fmt.Sprintf("%d properties is greater that the maximum of %d", n, *ov.MaxProperties),
			map[string]any{"maxProperties": *ov.MaxProperties, "got": n})
	}
	if ov.MinProperties != nil && uint64(n) < uint64(*ov.MinProperties) {
		return w.valueErr(path, CodeTooShort, v,
			fmt.Sprintf("%d properties is less that the minimum of %d", n, *ov.MinProperties),
			map[string]any{"minProperties": *ov.MinProperties, "got": n})
	}

	for _, name := range ov.Required {
		if _, ok := m[name]; !ok {
			return w.valueErr(path, CodeRequired, v,
				fmt.Sprintf("the property %s is required but absent", name),
				map[string]any{"property": name})
		}
	}

	patterns := sortedKeys(ov.PatternProperties)
	for _, key := range sortedKeys(m) {
		pv := m[key]
		ppath := path + "." + key
		seen := false

		if ps, ok := ov.Properties[key]; ok {
			if err := w.schema(ppath, ps, pv); err != nil {
				return err
			}
			seen = true
		}

		for _, pat := range patterns {
			re, tp, err := compilePattern(pat)
			if err != nil {
				return w.schemaErr(path, fmt.Sprintf("%s is not a valid regex", tp))
			}
			if !re.MatchString(key) {
				continue
			}
			if err := w.schema(ppath, ov.PatternProperties[pat], pv); err != nil {
				return err
			}
			seen = true
		}

		if !seen && ov.AdditionalProperties != nil {
			if err := w.schema(ppath, *ov.AdditionalProperties, pv); err != nil {
				return err
			}
		}

		if ov.PropertyNames != nil {
			if err := w.schema(ppath, *ov.PropertyNames, key); err != nil {
				return err
			}
		}
	}
	return nil
}
