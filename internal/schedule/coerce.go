package schedule

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Coercion helpers for values coming out of decoded JSON, where numbers are
// float64, booleans are sometimes strings, and third parties get creative.

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	default:
		return ""
	}
}

func asBool(v any, fallback bool) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(b) {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return fallback
}

// asInt coerces JSON numbers and numeric strings. The bool result reports
// whether the value was coercible at all.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// asIntSlice coerces a daysOfWeek-style list element by element, keeping
// what is coercible and reporting what was dropped.
func asIntSlice(v any) (out []int, dropped []any) {
	list, ok := v.([]any)
	if !ok {
		if v != nil {
			dropped = append(dropped, v)
		}
		return nil, dropped
	}
	for _, item := range list {
		if n, ok := asInt(item); ok {
			out = append(out, n)
		} else {
			dropped = append(dropped, item)
		}
	}
	return out, dropped
}
