package conform

import (
	"fmt"

	js "github.com/reoring/conform/jsonschema"
)

func indexPath(path string, i int) string { return fmt.Sprintf("%s[%d]", path, i) }

func (w *walker) checkArray(path string, av *js.ArrayValidation, v any) error {
	if av == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return w.valueErr(path, CodeInvalidType, v, "expected an array", map[string]any{"expected": "array"})
	}
	n := len(arr)

	if av.MaxItems != nil && uint64(n) > uint64(*av.MaxItems) {
		return w.valueErr(path, CodeTooLong, v,
			fmt.Sprintf("%d items is greater that the maximum of %d", n, *av.MaxItems),
			map[string]any{"maxItems": *av.MaxItems, "got": n})
	}
	if av.MinItems != nil && uint64(n) < uint64(*av.MinItems) {
		return w.valueErr(path, CodeTooShort, v,
			fmt.Sprintf("%d items is less that the minimum of %d", n, *av.MinItems),
			map[string]any{"minItems": *av.MinItems, "got": n})
	}

	if av.UniqueItems != nil && *av.UniqueItems {
		// Ordered pairs; [1, 2, 2] reports [1] and [2].
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				if equalValues(arr[i], arr[j]) {
					return w.valueErr(path, CodeNotUnique, v,
						fmt.Sprintf("items should be unique, but items at [%d] and [%d] are the same", i, j),
						map[string]any{"first": i, "second": j})
				}
			}
		}
	}

	if items := av.Items; items != nil {
		if items.Single != nil {
			for i, item := range arr {
				if err := w.schema(indexPath(path, i), *items.Single, item); err != nil {
					return err
				}
			}
		} else {
			for i := 0; i < n && i < len(items.Vec); i++ {
				if err := w.schema(indexPath(path, i), items.Vec[i], arr[i]); err != nil {
					return err
				}
			}
			if av.AdditionalItems != nil {
				for i := len(items.Vec); i < n; i++ {
					if err := w.schema(indexPath(path, i), *av.AdditionalItems, arr[i]); err != nil {
						return err
					}
				}
			}
		}
	}

	if av.Contains != nil {
		found := false
		for i, item := range arr {
			if w.schema(indexPath(path, i), *av.Contains, item) == nil {
				found = true
				break
			}
		}
		if !found {
			return w.valueErr(path+".contains", CodeContains, v, "array does not contain the required item", nil)
		}
	}
	return nil
}
