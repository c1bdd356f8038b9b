package parse

import (
	"strconv"
	"strings"
)

// The EASHL API is not consistent about field types: counters arrive as
// strings on current-gen payloads and as numbers on older ones, and fields
// are routinely missing for players who did not record the stat. Every
// numeric read of a provider field bag goes through this package so that
// missing or malformed values come out as zero everywhere.

// Int converts a loosely typed payload value to an int, defaulting to 0.
func Int(v any) int {
	switch value := v.(type) {
	case nil:
		return 0
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return 0
		}
		if n, err := strconv.Atoi(trimmed); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int(f)
		}
		return 0
	default:
		return 0
	}
}

// Count is Int clamped at zero, for counters that are never negative.
func Count(v any) int {
	n := Int(v)
	if n < 0 {
		return 0
	}
	return n
}

// String converts a payload value to a string, defaulting to "".
func String(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// IntField reads a numeric field from a field bag.
func IntField(bag map[string]any, key string) int {
	return Int(bag[key])
}

// CountField reads a non-negative counter from a field bag.
func CountField(bag map[string]any, key string) int {
	return Count(bag[key])
}

// StringField reads a string field from a field bag.
func StringField(bag map[string]any, key string) string {
	return String(bag[key])
}

// HasField reports whether the bag carries a non-nil value for key. Used to
// distinguish "reported as zero" from "not reported at all".
func HasField(bag map[string]any, key string) bool {
	v, ok := bag[key]
	return ok && v != nil
}
