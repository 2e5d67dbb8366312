package values

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Coerce opportunistically converts trimmed command output into a typed
// value: valid JSON (object/array prefixed) parses into its value, a pure
// integer or decimal token becomes a number, "true"/"false" become
// booleans, and anything else stays the trimmed string.
func Coerce(output string) any {
	s := strings.TrimSpace(output)
	if s == "" {
		return ""
	}

	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			return parsed
		}
		return s
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	switch s {
	case "true":
		return true
	case "false":
		return false
	}

	return s
}
