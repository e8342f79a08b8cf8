package fieldexpr

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// undefined is the type of the Undefined sentinel.
type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks a value that was absent from the data map, as opposed to
// a key that is present with an explicit null. The two propagate differently
// through field resolution and are distinguished by exists/coalesce.
var Undefined = undefined{}

// IsUndefined returns whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// IsMissing returns whether v is nil or Undefined.
func IsMissing(v any) bool {
	return v == nil || IsUndefined(v)
}

// IsTruthy returns whether a value is truthy.
// nil and Undefined are false, bools return their value, empty strings are
// false, zero numbers are false, empty lists and maps are false,
// everything else is true.
func IsTruthy(v any) bool {
	if IsMissing(v) {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case int32:
		return val != 0
	case float64:
		return val != 0
	case float32:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	case time.Time:
		return !val.IsZero()
	default:
		return true
	}
}

// ToNumber converts a value to float64 for arithmetic and numeric
// comparison. Booleans map to 0/1, times to Unix seconds, strings are
// parsed. Values that cannot be converted return NaN rather than erroring;
// type mismatches degrade, they do not fail.
func ToNumber(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case int32:
		return float64(val)
	case bool:
		if val {
			return 1
		}
		return 0
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
		return nan()
	case time.Time:
		return float64(val.Unix())
	case nil, undefined:
		return nan()
	default:
		return nan()
	}
}

// ToString converts a value to its string form. nil and Undefined become
// the empty string so string operations are null-safe.
func ToString(v any) string {
	switch val := v.(type) {
	case nil, undefined:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatFloat renders whole numbers without a trailing ".0" so that
// concat(1, "x") yields "1x" rather than "1.0x".
func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ToTime converts a value to a time.Time. Accepts time.Time directly,
// RFC3339 / ISO-8601 strings, date-only strings, and numeric Unix seconds.
// Returns the zero time and false when the value cannot be interpreted.
func ToTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, val); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case float64:
		return time.Unix(int64(val), 0).UTC(), true
	case int:
		return time.Unix(int64(val), 0).UTC(), true
	case int64:
		return time.Unix(val, 0).UTC(), true
	default:
		return time.Time{}, false
	}
}

// Equal reports loose value equality: numbers compare numerically across
// numeric types, strings as strings, times by instant. nil and Undefined
// are equal only to themselves.
func Equal(a, b any) bool {
	if IsMissing(a) || IsMissing(b) {
		return (a == nil && b == nil) || (IsUndefined(a) && IsUndefined(b))
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := ToTime(b); ok {
			return ta.Equal(tb)
		}
		return false
	}
	if tb, ok := b.(time.Time); ok {
		if ta, ok := ToTime(a); ok {
			return ta.Equal(tb)
		}
		return false
	}
	switch va := a.(type) {
	case bool:
		vb, ok := b.(bool)
		return ok && va == vb
	case string:
		if vb, ok := b.(string); ok {
			return va == vb
		}
		return false
	case []any:
		vb, ok := b.([]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !Equal(va[i], vb[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		vb, ok := b.(map[string]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for k, v := range va {
			ov, present := vb[k]
			if !present || !Equal(v, ov) {
				return false
			}
		}
		return true
	}
	if isNumeric(a) && isNumeric(b) {
		return ToNumber(a) == ToNumber(b)
	}
	return a == b
}

// Compare orders two values: -1, 0, or +1. Strings compare
// lexicographically when both operands are strings, times by instant,
// everything else numerically after coercion.
func Compare(a, b any) int {
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			switch {
			case sa < sb:
				return -1
			case sa > sb:
				return 1
			default:
				return 0
			}
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := ToTime(b); ok {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			default:
				return 0
			}
		}
	}
	na, nb := ToNumber(a), ToNumber(b)
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return true
	default:
		return false
	}
}

func nan() float64 { return math.NaN() }
