package values

import (
	"fmt"
	"regexp"
	"strconv"
)

// tokenPattern matches a single {{identifier}} placeholder. This is not the
// full template compiler; only bare identifier substitution is supported.
var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\}\}`)

// Interpolate substitutes every {{id}} token in the template against the
// context. Unresolved tokens render as the empty string.
func Interpolate(template string, context map[string]any) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(match string) string {
		id := tokenPattern.FindStringSubmatch(match)[1]
		v, ok := context[id]
		if !ok || v == nil {
			return ""
		}
		return Stringify(v)
	})
}

// HasTokens reports whether the string contains {{id}} placeholders.
func HasTokens(s string) bool {
	return tokenPattern.MatchString(s)
}

// Stringify renders a resolved value for substitution into text.
// Integral floats render without a decimal point.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}
