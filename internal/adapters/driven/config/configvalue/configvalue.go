// Package configvalue converts raw configuration values into the types the
// settings keys expect. Both the TOML store and the in-memory store hold
// values as decoded by go-toml (int64, float64, []any) or as set by callers
// (int, []string), so the conversions live here once.
package configvalue

import "math"

// String returns v when it is a string, else "".
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int returns v as an int. Floats are accepted only when they hold a whole
// number, so "max_matches = 500.0" reads as 500 and 2.5 reads as 0.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n)
		}
	}
	return 0
}

// Float returns v as a float64. Integers are widened so "rate = 2" reads the
// same as "rate = 2.0".
func Float(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// Bool returns v when it is a bool, else false.
func Bool(v any) bool {
	b, _ := v.(bool)
	return b
}

// Strings returns v as a string slice. TOML arrays decode as []any; non-string
// items are skipped. Anything else yields nil.
func Strings(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}
