package temporal

import (
	"strings"

	"github.com/roach88/temporal/internal/ir"
)

// IsBuiltinCalendar reports whether id names a supported built-in calendar.
// Only ISO 8601 is built in.
func IsBuiltinCalendar(id string) bool {
	return strings.ToLower(id) == ISO8601
}

// ToTemporalCalendarSlot resolves a calendar-like value to a receiver.
//
// Accepted: a CalendarReceiver, a capability Object, any value carrying a
// calendar (PlainDate, PlainYearMonth, ...), an ISO string with a calendar
// annotation, or a bare calendar identifier. Empty input selects ISO 8601.
func ToTemporalCalendarSlot(calendarLike any) (CalendarReceiver, error) {
	switch v := calendarLike.(type) {
	case nil:
		return BuiltinCalendarReceiver(ISO8601), nil
	case CalendarReceiver:
		return v, nil
	case ISODateSlots:
		return v.Calendar(), nil
	case Object:
		return ObjectCalendarReceiver(v), nil
	case ir.IRString:
		return ToTemporalCalendarSlot(string(v))
	case string:
		if v == "" {
			return BuiltinCalendarReceiver(ISO8601), nil
		}
		id, err := ParseTemporalCalendarString(v)
		if err != nil {
			return CalendarReceiver{}, err
		}
		if !IsBuiltinCalendar(id) {
			return CalendarReceiver{}, ir.NewRangeError(ir.ErrCodeInvalidCalendar, "%q is not a built-in calendar", id)
		}
		return BuiltinCalendarReceiver(strings.ToLower(id)), nil
	}
	return CalendarReceiver{}, ir.NewTypeError(ir.ErrCodeInvalidCalendar, "cannot use %T as a calendar", calendarLike)
}

// GetTemporalCalendarSlotWithISODefault reads the calendar property of a
// property bag, defaulting to ISO 8601 when it is absent.
func GetTemporalCalendarSlotWithISODefault(item ir.IRObject) (CalendarReceiver, error) {
	v, ok := item.Get("calendar")
	if !ok || v == nil {
		return BuiltinCalendarReceiver(ISO8601), nil
	}
	s, isString := v.(ir.IRString)
	if !isString {
		return CalendarReceiver{}, ir.NewTypeError(ir.ErrCodeInvalidCalendar, "calendar must be a string, got %s", ir.ToString(v))
	}
	return ToTemporalCalendarSlot(string(s))
}

// CalendarEquals reports whether two receivers denote the same calendar:
// the same handle, or the same identifier.
func CalendarEquals(one, two CalendarReceiver) (bool, error) {
	if one.IsBuiltin() != two.IsBuiltin() {
		return compareCalendarIDs(one, two)
	}
	if one.IsBuiltin() {
		return one.BuiltinID() == two.BuiltinID(), nil
	}
	if sameObject(one.Object(), two.Object()) {
		return true, nil
	}
	return compareCalendarIDs(one, two)
}

func compareCalendarIDs(one, two CalendarReceiver) (bool, error) {
	a, err := one.ID()
	if err != nil {
		return false, err
	}
	b, err := two.ID()
	if err != nil {
		return false, err
	}
	return a == b, nil
}

// FormatCalendarAnnotation renders [u-ca=id], [!u-ca=id] or nothing.
func FormatCalendarAnnotation(id string, show ShowCalendar) string {
	switch {
	case show == ShowCalendarNever:
		return ""
	case show == ShowCalendarAuto && id == ISO8601:
		return ""
	case show == ShowCalendarCritical:
		return "[!u-ca=" + id + "]"
	}
	return "[u-ca=" + id + "]"
}

// ParseTemporalCalendarString extracts a calendar identifier from an ISO
// string's annotation, or accepts s itself when it is a valid identifier.
func ParseTemporalCalendarString(s string) (string, error) {
	if parsed, err := parseISODateTime(s, parseModeAny); err == nil {
		if parsed.Calendar == "" {
			return ISO8601, nil
		}
		return parsed.Calendar, nil
	}
	if !isAnnotationValue(s) {
		return "", ir.NewRangeError(ir.ErrCodeInvalidCalendar, "%q is not a valid calendar", s)
	}
	return s, nil
}
