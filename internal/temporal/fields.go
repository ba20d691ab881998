package temporal

import (
	"slices"

	"github.com/roach88/temporal/internal/ir"
)

type fieldConversion int

const (
	convertInteger fieldConversion = iota
	convertPositiveInteger
	convertString
)

// fieldConversions lists the calendar fields a property bag may carry and
// how each is coerced.
var fieldConversions = map[string]fieldConversion{
	"year":        convertInteger,
	"month":       convertPositiveInteger,
	"monthCode":   convertString,
	"day":         convertPositiveInteger,
	"hour":        convertInteger,
	"minute":      convertInteger,
	"second":      convertInteger,
	"millisecond": convertInteger,
	"microsecond": convertInteger,
	"nanosecond":  convertInteger,
	"offset":      convertString,
	"era":         convertString,
	"eraYear":     convertInteger,
}

// PrepareTemporalFields copies the named fields out of source in code-unit
// order, coercing each. A missing field listed in required is a TypeError;
// other missing fields are left absent.
func PrepareTemporalFields(source ir.IRObject, fieldNames, required []string) (ir.IRObject, error) {
	return prepareFields(source, fieldNames, required, false)
}

// PreparePartialTemporalFields is PrepareTemporalFields with nothing
// required, failing with a TypeError when no field is present at all.
func PreparePartialTemporalFields(source ir.IRObject, fieldNames []string) (ir.IRObject, error) {
	return prepareFields(source, fieldNames, nil, true)
}

func prepareFields(source ir.IRObject, fieldNames, required []string, partial bool) (ir.IRObject, error) {
	// Field names are ASCII, so byte order is code-unit order.
	names := slices.Clone(fieldNames)
	slices.Sort(names)
	names = slices.Compact(names)

	result := ir.IRObject{}
	for _, name := range names {
		if name == "constructor" || name == "__proto__" {
			return nil, ir.NewRangeError(ir.ErrCodeInvalidField, "%q is not a valid field name", name)
		}
		v, ok := source.Get(name)
		if !ok || v == nil {
			if slices.Contains(required, name) {
				return nil, ir.NewTypeError(ir.ErrCodeMissingField, "required property %s is missing", name)
			}
			continue
		}
		converted, err := convertField(name, v)
		if err != nil {
			return nil, err
		}
		result[name] = converted
	}
	if partial && len(result) == 0 {
		return nil, ir.NewTypeError(ir.ErrCodeMissingField, "no recognized fields are present")
	}
	return result, nil
}

func convertField(name string, v ir.IRValue) (ir.IRValue, error) {
	conversion, known := fieldConversions[name]
	if !known {
		return v, nil
	}
	switch conversion {
	case convertPositiveInteger:
		n, err := ir.ToPositiveIntegerWithTruncation(v, name)
		return ir.IRInt(n), err
	case convertString:
		s, err := ir.ToPrimitiveAndRequireString(v, name)
		return ir.IRString(s), err
	}
	n, err := ir.ToIntegerWithTruncation(v, name)
	return ir.IRInt(n), err
}

// ResolveISOMonth reconciles month and monthCode in prepared fields.
// Either must be present; when both are they must agree.
func ResolveISOMonth(fields ir.IRObject) (int64, error) {
	monthValue, hasMonth := fields.Get("month")
	codeValue, hasCode := fields.Get("monthCode")

	if !hasCode {
		if !hasMonth {
			return 0, ir.NewTypeError(ir.ErrCodeMissingField, "either month or monthCode is required")
		}
		return ir.ToIntegerWithTruncation(monthValue, "month")
	}

	code, err := ir.ToPrimitiveAndRequireString(codeValue, "monthCode")
	if err != nil {
		return 0, err
	}
	fromCode, ok := parseMonthCode(code)
	if !ok {
		return 0, ir.NewRangeError(ir.ErrCodeInvalidField, "%q is not a valid month code", code)
	}
	if hasMonth {
		month, err := ir.ToIntegerWithTruncation(monthValue, "month")
		if err != nil {
			return 0, err
		}
		if month != fromCode {
			return 0, ir.NewRangeError(ir.ErrCodeInvalidField, "month %d does not match monthCode %s", month, code)
		}
	}
	return fromCode, nil
}

// parseMonthCode accepts M01 through M12.
func parseMonthCode(code string) (int64, bool) {
	if len(code) != 3 || code[0] != 'M' {
		return 0, false
	}
	p := &scanner{s: code, pos: 1}
	n, ok := p.digits(2)
	if !ok || n < 1 || n > 12 {
		return 0, false
	}
	return n, true
}
