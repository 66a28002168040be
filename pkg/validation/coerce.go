package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-formengine/pkg/model"
)

// Coerce converts raw input into the field's declared type when it can be
// parsed without loss ("42" becomes int64(42) for integer fields, "true"
// becomes true for booleans). Input that cannot be parsed is returned as-is so
// validation can report it.
func Coerce(field model.Field, value any) any {
	switch field.Type {
	case model.FieldTypeInteger:
		if n, ok := toInt(value); ok {
			return n
		}
	case model.FieldTypeNumber:
		if f, ok := toFloat(value); ok {
			return f
		}
	case model.FieldTypeBoolean:
		if s, ok := value.(string); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
				return b
			}
		}
	}
	return value
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

func toInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		return fromUnsigned(uint64(v))
	case uint64:
		return fromUnsigned(v)
	case uintptr:
		return fromUnsigned(uint64(v))
	case float32:
		return integral(float64(v))
	case float64:
		return integral(v)
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func fromUnsigned(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

// integral converts f when it is a whole number inside the int64 range.
// float64(math.MaxInt64) rounds up to 2^63, hence the exclusive bound.
func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// outOfIntRange reports whether f is a whole number int64 cannot hold.
func outOfIntRange(f float64) bool {
	return math.Trunc(f) == f && (f < math.MinInt64 || f >= math.MaxInt64)
}

func toFloat(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case uintptr:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
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
