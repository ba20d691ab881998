package temporal

import (
	"fmt"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/iso"
)

// PlainYearMonth is a calendar year-month. The ISO day slot is a reference
// day chosen by the calendar; it carries no meaning for the caller.
type PlainYearMonth struct {
	date     iso.Date
	calendar CalendarReceiver
}

// CreateTemporalYearMonth validates (year, month, referenceDay) as a real
// ISO date inside the representable year-month range.
func CreateTemporalYearMonth(year, month int64, calendar CalendarReceiver, referenceDay int64) (PlainYearMonth, error) {
	if !iso.IsValidDate(year, month, referenceDay) {
		return PlainYearMonth{}, ir.NewRangeError(ir.ErrCodeInvalidYearMonth, "%s-%02d-%02d is not a valid date", iso.PadYear(year), month, referenceDay)
	}
	if !iso.YearMonthWithinLimits(year, month) {
		return PlainYearMonth{}, ir.NewRangeError(ir.ErrCodeInvalidYearMonth, "%s-%02d is outside the representable range", iso.PadYear(year), month)
	}
	return PlainYearMonth{
		date:     iso.Date{Year: year, Month: month, Day: referenceDay},
		calendar: calendar,
	}, nil
}

// MustCreateTemporalYearMonth is like CreateTemporalYearMonth but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustCreateTemporalYearMonth(year, month int64, calendar CalendarReceiver, referenceDay int64) PlainYearMonth {
	ym, err := CreateTemporalYearMonth(year, month, calendar, referenceDay)
	if err != nil {
		panic(err)
	}
	return ym
}

// ISODate returns the ISO slots, reference day included.
func (ym PlainYearMonth) ISODate() iso.Date { return ym.date }

// Calendar returns the year-month's calendar.
func (ym PlainYearMonth) Calendar() CalendarReceiver { return ym.calendar }

// WithCalendar returns the same ISO slots bound to calendar.
func (ym PlainYearMonth) WithCalendar(calendar CalendarReceiver) PlainYearMonth {
	ym.calendar = calendar
	return ym
}

// CalendarID returns the calendar identifier.
func (ym PlainYearMonth) CalendarID() (string, error) { return ym.calendar.ID() }

// Year returns the year.
func (ym PlainYearMonth) Year() int64 { return ym.date.Year }

// Month returns the month, 1 through 12.
func (ym PlainYearMonth) Month() int64 { return ym.date.Month }

// MonthCode returns the month code, e.g. "M01".
func (ym PlainYearMonth) MonthCode() string { return monthCode(ym.date.Month) }

// ISODay returns the reference day.
func (ym PlainYearMonth) ISODay() int64 { return ym.date.Day }

// Equals reports whether ym and other have the same ISO slots and calendar.
func (ym PlainYearMonth) Equals(other PlainYearMonth) (bool, error) {
	if iso.CompareDate(ym.date, other.date) != 0 {
		return false, nil
	}
	return CalendarEquals(ym.calendar, other.calendar)
}

// CompareYearMonth orders year-months by their ISO slots, ignoring calendars.
func CompareYearMonth(one, two PlainYearMonth) int {
	return iso.CompareDate(one.date, two.date)
}

// String renders the year-month with the auto calendar policy.
func (ym PlainYearMonth) String() string {
	s, err := TemporalYearMonthToString(ym, ShowCalendarAuto)
	if err != nil {
		return fmt.Sprintf("%s-%02d", iso.PadYear(ym.date.Year), ym.date.Month)
	}
	return s
}

// TemporalYearMonthToString renders ±YYYYYY-MM, adding the reference day
// when the calendar is shown or is not ISO 8601, then the annotation.
func TemporalYearMonthToString(ym PlainYearMonth, show ShowCalendar) (string, error) {
	result := fmt.Sprintf("%s-%02d", iso.PadYear(ym.date.Year), ym.date.Month)

	id, err := ym.calendar.ID()
	if err != nil {
		return "", err
	}
	if show == ShowCalendarAlways || show == ShowCalendarCritical || id != ISO8601 {
		result += fmt.Sprintf("-%02d", ym.date.Day)
	}
	return result + FormatCalendarAnnotation(id, show), nil
}

// Bag is a generic property bag whose calendar is a receiver rather than a
// string, for callers passing capability calendars.
type Bag struct {
	Fields   ir.IRObject
	Calendar CalendarReceiver
}

// yearMonthFieldNames are the fields a calendar is asked for when coercing
// a property bag to a year-month.
var yearMonthFieldNames = []string{"month", "monthCode", "year"}

// ToTemporalYearMonth coerces item to a PlainYearMonth.
//
// item may be a PlainYearMonth (returned unchanged), an ir.IRObject or Bag
// (fields extracted per the calendar, then yearMonthFromFields with options),
// or a string in the ISO year-month grammar. For strings the overflow option
// is validated before parsing and the result is re-derived through the
// calendar without options so the reference day is canonical.
func ToTemporalYearMonth(item any, options ir.IRObject) (PlainYearMonth, error) {
	switch v := item.(type) {
	case PlainYearMonth:
		return v, nil
	case *PlainYearMonth:
		if v != nil {
			return *v, nil
		}
	case Bag:
		return yearMonthFromBag(v.Fields, v.Calendar, options)
	case ir.IRObject:
		calendar, err := GetTemporalCalendarSlotWithISODefault(v)
		if err != nil {
			return PlainYearMonth{}, err
		}
		return yearMonthFromBag(v, calendar, options)
	}

	if _, err := ToTemporalOverflow(options); err != nil {
		return PlainYearMonth{}, err
	}

	s, err := itemToString(item)
	if err != nil {
		return PlainYearMonth{}, err
	}
	parsed, err := ParseTemporalYearMonthString(s)
	if err != nil {
		return PlainYearMonth{}, err
	}
	calendar, err := ToTemporalCalendarSlot(parsed.Calendar)
	if err != nil {
		return PlainYearMonth{}, err
	}
	created, err := CreateTemporalYearMonth(parsed.Year, parsed.Month, calendar, parsed.Day)
	if err != nil {
		return PlainYearMonth{}, err
	}

	rec, err := NewCalendarMethodsRecord(calendar, CalendarMethodYearMonthFromFields)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return rec.YearMonthFromFields(FieldsOf(created), nil)
}

func yearMonthFromBag(bag ir.IRObject, calendar CalendarReceiver, options ir.IRObject) (PlainYearMonth, error) {
	rec, err := NewCalendarMethodsRecord(calendar, CalendarMethodFields, CalendarMethodYearMonthFromFields)
	if err != nil {
		return PlainYearMonth{}, err
	}
	fieldNames, err := rec.Fields(yearMonthFieldNames)
	if err != nil {
		return PlainYearMonth{}, err
	}
	fields, err := PrepareTemporalFields(bag, fieldNames, nil)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return rec.YearMonthFromFields(fields, options)
}

// itemToString converts a non-object item to the string it would be parsed from.
func itemToString(item any) (string, error) {
	switch v := item.(type) {
	case string:
		return v, nil
	case ir.IRString:
		return string(v), nil
	case ir.IRInt, ir.IRBool, ir.IRNull:
		return ir.ToString(v.(ir.IRValue)), nil
	case nil:
		return "", ir.NewRangeError(ir.ErrCodeInvalidString, "undefined is not a valid ISO string")
	}
	return "", ir.NewTypeError(ir.ErrCodeInvalidOperand, "cannot convert %T to a year-month", item)
}
