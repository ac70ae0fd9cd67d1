package conform

import (
	"math"
	"testing"

	json "github.com/goccy/go-json"
)

func TestTranslatePattern(t *testing.T) {
	cases := map[string]string{
		`a\/b`:     `a/b`,
		`\/x`:      `/x`,
		`a\\/b`:    `a\\/b`, // escaped backslash then a bare slash
		`a\\\/b`:   `a\\/b`,
		`\/\/`:     `/\/`, // matches do not overlap, the second escape has no anchor left
		`plain`:    `plain`,
		`[0-9]\/-`: `[0-9]/-`,
	}
	for in, want := range cases {
		if got := translatePattern(in); got != want {
			t.Errorf("translatePattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEqualValues(t *testing.T) {
	big := json.Number("18446744073709551615")
	cases := []struct {
		a, b any
		want bool
	}{
		{nil, nil, true},
		{nil, false, false},
		{json.Number("1"), json.Number("1.0"), false},
		{json.Number("1.5"), json.Number("1.50"), true},
		{json.Number("1.0"), 1.0, true},
		{json.Number("1"), 1, true},
		{uint64(math.MaxUint64), big, true},
		{json.Number("9007199254740993"), json.Number("9007199254740992"), false},
		{"a", "a", true},
		{[]any{1, "x"}, []any{1, "x"}, true},
		{[]any{1}, []any{1, 1}, false},
		{map[string]any{"a": 1}, map[string]any{"a": 1.0}, false},
		{map[string]any{"a": 1}, map[string]any{"a": int64(1)}, true},
		{map[string]any{"a": 1}, map[string]any{"b": 1}, false},
		{"1", json.Number("1"), false},
	}
	for i, tc := range cases {
		if got := equalValues(tc.a, tc.b); got != tc.want {
			t.Errorf("case %d: equalValues(%#v, %#v) = %v", i, tc.a, tc.b, got)
		}
	}
}

func TestIsInteger(t *testing.T) {
	yes := []any{0, int64(-3), uint64(math.MaxUint64), json.Number("2"), json.Number("-7")}
	no := []any{1.5, 4.0, json.Number("2.0"), json.Number("1e3"), json.Number("0.1"), "1", nil, math.Inf(1), json.Number("1e400")}
	for _, v := range yes {
		if !isInteger(v) {
			t.Errorf("%#v should be an integer", v)
		}
	}
	for _, v := range no {
		if isInteger(v) {
			t.Errorf("%#v should not be an integer", v)
		}
	}
}

func TestKindOf(t *testing.T) {
	cases := map[Kind]any{
		KindNull:    nil,
		KindBool:    true,
		KindNumber:  json.Number("1"),
		KindString:  "s",
		KindArray:   []any{},
		KindObject:  map[string]any{},
		KindInvalid: struct{}{},
	}
	for want, v := range cases {
		if got := KindOf(v); got != want {
			t.Errorf("KindOf(%#v) = %v, want %v", v, got, want)
		}
	}
}
