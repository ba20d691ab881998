package ir

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber converts v to a float64 the way a host runtime would.
// nil (undefined) and non-numeric strings yield NaN.
func ToNumber(v IRValue) float64 {
	switch val := v.(type) {
	case nil:
		return math.NaN()
	case IRNull:
		return 0
	case IRBool:
		if val {
			return 1
		}
		return 0
	case IRInt:
		return float64(val)
	case IRString:
		s := strings.TrimSpace(string(val))
		if s == "" {
			return 0
		}
		switch s {
		case "Infinity", "+Infinity":
			return math.Inf(1)
		case "-Infinity":
			return math.Inf(-1)
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return float64(n)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || strings.ContainsAny(s, "xXpP_") {
			return math.NaN()
		}
		return f
	case IRArray:
		switch len(val) {
		case 0:
			return 0
		case 1:
			return ToNumber(val[0])
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}

// ToIntegerWithTruncation converts v to a number and truncates it.
// NaN and infinities are a RangeError.
func ToIntegerWithTruncation(v IRValue, name string) (int64, error) {
	if n, ok := v.(IRInt); ok {
		return int64(n), nil
	}
	f := ToNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, NewRangeError(ErrCodeInvalidField, "%s must be a finite number", name)
	}
	return clampToInt64(math.Trunc(f)), nil
}

// ToPositiveIntegerWithTruncation is ToIntegerWithTruncation that also
// rejects zero and negative results.
func ToPositiveIntegerWithTruncation(v IRValue, name string) (int64, error) {
	n, err := ToIntegerWithTruncation(v, name)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, NewRangeError(ErrCodeInvalidField, "%s must be a positive integer, got %d", name, n)
	}
	return n, nil
}

// ToIntegerIfIntegral converts v to a number and rejects fractional values.
func ToIntegerIfIntegral(v IRValue, name string) (int64, error) {
	if n, ok := v.(IRInt); ok {
		return int64(n), nil
	}
	f := ToNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, NewRangeError(ErrCodeInvalidField, "%s must be an integer", name)
	}
	return clampToInt64(f), nil
}

func clampToInt64(f float64) int64 {
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	if f <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(f)
}

// ToString converts v to its string form.
func ToString(v IRValue) string {
	switch val := v.(type) {
	case nil:
		return "undefined"
	case IRNull:
		return "null"
	case IRString:
		return string(val)
	case IRInt:
		return strconv.FormatInt(int64(val), 10)
	case IRBool:
		return strconv.FormatBool(bool(val))
	case IRArray:
		parts := make([]string, len(val))
		for i, elem := range val {
			if _, isNull := elem.(IRNull); isNull || elem == nil {
				continue
			}
			parts[i] = ToString(elem)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

// ToPrimitiveAndRequireString returns v's string value and rejects
// anything that is not already a string (TypeError).
func ToPrimitiveAndRequireString(v IRValue, name string) (string, error) {
	s, ok := v.(IRString)
	if !ok {
		return "", NewTypeError(ErrCodeInvalidField, "%s must be a string", name)
	}
	return string(s), nil
}
