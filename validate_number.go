package conform

import (
	"fmt"
	"math"

	js "github.com/reoring/conform/jsonschema"
)

// float64Epsilon is the difference between 1 and the next representable
// float64.
const float64Epsilon = 0x1p-52

// checkNumber applies the numeric keywords. Plain maximum/minimum are
// exclusive here: a value equal to the bound is rejected. exclusiveMaximum
// and exclusiveMinimum only reject values strictly beyond the bound.
func (w *walker) checkNumber(path string, nv *js.NumberValidation, v any) error {
	if nv == nil {
		return nil
	}
	n, ok := asFloat(v)
	if !ok {
		return w.valueErr(path, CodeInvalidType, v, "expected a number", map[string]any{"expected": "number"})
	}

	if nv.MultipleOf != nil {
		div := n / *nv.MultipleOf
		// Only a positive remainder above epsilon fails.
		if div-math.Round(div) > float64Epsilon {
			return w.valueErr(path, CodeNotMultiple, v,
				fmt.Sprintf("the value %s is not a multiple of %s", formatNumber(n), formatNumber(*nv.MultipleOf)),
				map[string]any{"multipleOf": *nv.MultipleOf})
		}
	}

	if nv.Maximum != nil && n >= *nv.Maximum {
		return w.valueErr(path, CodeTooBig, v,
			fmt.Sprintf("the value %s >= the maximum %s", formatNumber(n), formatNumber(*nv.Maximum)),
			map[string]any{"maximum": *nv.Maximum})
	}
	if nv.ExclusiveMaximum != nil && n > *nv.ExclusiveMaximum {
		return w.valueErr(path, CodeTooBig, v,
			fmt.Sprintf("the value %s > the exclusive maximum %s", formatNumber(n), formatNumber(*nv.ExclusiveMaximum)),
			map[string]any{"exclusiveMaximum": *nv.ExclusiveMaximum})
	}
	if nv.Minimum != nil && n <= *nv.Minimum {
		return w.valueErr(path, CodeTooSmall, v,
			fmt.Sprintf("the value %s <= the minimum %s", formatNumber(n), formatNumber(*nv.Minimum)),
			map[string]any{"minimum": *nv.Minimum})
	}
	if nv.ExclusiveMinimum != nil && n < *nv.ExclusiveMinimum {
		return w.valueErr(path, CodeTooSmall, v,
			fmt.Sprintf("the value %s < the exclusive minimum %s", formatNumber(n), formatNumber(*nv.ExclusiveMinimum)),
			map[string]any{"exclusiveMinimum": *nv.ExclusiveMinimum})
	}
	return nil
}
