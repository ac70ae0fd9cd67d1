package conform

import (
	"fmt"
	"regexp"

	js "github.com/reoring/conform/jsonschema"
)

// escapedSlash finds `\/` preceded by an even number of backslashes.
var escapedSlash = regexp.MustCompile(`((^|[^\\])(\\\\)*)\\/`)

// translatePattern rewrites every unescaped `\/` in an ECMA-262 pattern as a
// bare '/'.
func translatePattern(p string) string {
	return escapedSlash.ReplaceAllString(p, "${1}/")
}

// compilePattern translates and compiles a schema pattern.
func compilePattern(p string) (*regexp.Regexp, string, error) {
	tp := translatePattern(p)
	re, err := regexp.Compile(tp)
	return re, tp, err
}

// checkString applies the string keywords. Lengths are byte lengths, so
// multi-byte text counts more than its number of characters.
func (w *walker) checkString(path string, sv *js.StringValidation, v any) error {
	if sv == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return w.valueErr(path, CodeInvalidType, v, "expected a string", map[string]any{"expected": "string"})
	}

	if sv.MaxLength != nil && uint64(len(s)) > uint64(*sv.MaxLength) {
		return w.valueErr(path, CodeTooLong, v,
			fmt.Sprintf("The string is longer than %d characters", *sv.MaxLength),
			map[string]any{"maxLength": *sv.MaxLength, "got": len(s)})
	}
	if sv.MinLength != nil && uint64(len(s)) < uint64(*sv.MinLength) {
		return w.valueErr(path, CodeTooShort, v,
			fmt.Sprintf("The string is shorter than %d characters", *sv.MinLength),
			map[string]any{"minLength": *sv.MinLength, "got": len(s)})
	}
	if sv.Pattern != nil {
		re, tp, err := compilePattern(*sv.Pattern)
		if err != nil {
			return w.schemaErr(path, fmt.Sprintf("%s is not a valid regex", tp))
		}
		if !re.MatchString(s) {
			return w.valueErr(path, CodePattern, v,
				fmt.Sprintf("%s does not match the pattern %s", s, tp),
				map[string]any{"pattern": tp})
		}
	}
	return nil
}
