package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToNonNegativeInt coerces a decoded JSON value to a non-negative integer.
// Numbers and numeric strings are truncated toward zero. Anything else,
// including NaN, infinities, negative values and booleans, yields def.
func ToNonNegativeInt(v any, def int) int {
	f, ok := toFloat(v)
	if !ok || f < 0 || f > math.MaxInt32 {
		return def
	}
	return int(f)
}

// toFloat reports whether v is numeric and returns its value.
func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
