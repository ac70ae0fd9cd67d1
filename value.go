package conform

import (
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

// Kind classifies a value the way JSON does.
type Kind int

const (
	KindInvalid Kind = iota // Not a JSON-like value.
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "invalid"
}

// KindOf classifies v. Values are expected in the shapes produced by
// ToValue and ParseValue; anything else is KindInvalid.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	}
	return KindInvalid
}

// asFloat returns the numeric value of v as float64. Integers beyond 2^53
// lose precision, and json.Number literals out of range become ±Inf.
func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				return f, true
			}
			return 0, false
		}
		return f, true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	}
	return 0, false
}

// intValue is an exact integer: a signed value, or an unsigned one beyond
// the int64 range.
type intValue struct {
	i        int64
	u        uint64
	unsigned bool
}

// asInt returns the exact integer held by v, if v was encoded as one.
func asInt(v any) (intValue, bool) {
	switch t := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return intValue{i: i}, true
		}
		if u, err := strconv.ParseUint(string(t), 10, 64); err == nil {
			return intValue{u: u, unsigned: true}, true
		}
		return intValue{}, false
	case int:
		return intValue{i: int64(t)}, true
	case int8:
		return intValue{i: int64(t)}, true
	case int16:
		return intValue{i: int64(t)}, true
	case int32:
		return intValue{i: int64(t)}, true
	case int64:
		return intValue{i: t}, true
	case uint:
		return fromUint(uint64(t)), true
	case uint8:
		return intValue{i: int64(t)}, true
	case uint16:
		return intValue{i: int64(t)}, true
	case uint32:
		return intValue{i: int64(t)}, true
	case uint64:
		return fromUint(t), true
	}
	return intValue{}, false
}

func fromUint(u uint64) intValue {
	if u <= math.MaxInt64 {
		return intValue{i: int64(u)}
	}
	return intValue{u: u, unsigned: true}
}

// isInteger reports whether v was encoded as an integer. 1.0 and 1e3 are
// not integers.
func isInteger(v any) bool {
	_, ok := asInt(v)
	return ok
}

// equalValues is structural equality. An integer never equals a float, so
// 1 and 1.0 differ.
func equalValues(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case KindNull:
		return true
	case KindBool:
		return a.(bool) == b.(bool)
	case KindString:
		return a.(string) == b.(string)
	case KindNumber:
		return equalNumbers(a, b)
	case KindArray:
		xa, xb := a.([]any), b.([]any)
		if len(xa) != len(xb) {
			return false
		}
		for i := range xa {
			if !equalValues(xa[i], xb[i]) {
				return false
			}
		}
		return true
	case KindObject:
		ma, mb := a.(map[string]any), b.(map[string]any)
		if len(ma) != len(mb) {
			return false
		}
		for k, va := range ma {
			vb, ok := mb[k]
			if !ok || !equalValues(va, vb) {
				return false
			}
		}
		return true
	}
	return false
}

func equalNumbers(a, b any) bool {
	ia, okA := asInt(a)
	ib, okB := asInt(b)
	if okA || okB {
		return okA && okB && ia == ib
	}
	fa, _ := asFloat(a)
	fb, _ := asFloat(b)
	return fa == fb
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
