package temporal

import (
	"slices"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/iso"
)

// BuiltinCalendar implements the calendar vocabulary for the ISO 8601
// calendar. Records dispatch to it for built-in receivers.
type BuiltinCalendar struct {
	id string
}

// NewBuiltinCalendar returns the implementation behind a built-in tag.
func NewBuiltinCalendar(id string) *BuiltinCalendar {
	return &BuiltinCalendar{id: id}
}

// ID returns the calendar identifier.
func (c *BuiltinCalendar) ID() string {
	if c.id == "" {
		return ISO8601
	}
	return c.id
}

func (c *BuiltinCalendar) receiver() CalendarReceiver {
	return BuiltinCalendarReceiver(c.ID())
}

// DateAdd adds duration to date. Clock units are balanced into whole days
// first; the remainder below one day is dropped.
func (c *BuiltinCalendar) DateAdd(date PlainDate, duration Duration, options ir.IRObject) (PlainDate, error) {
	overflow, err := ToTemporalOverflow(options)
	if err != nil {
		return PlainDate{}, err
	}
	balanced, err := BalanceTimeDuration(duration.Days, duration.Hours, duration.Minutes, duration.Seconds,
		duration.Milliseconds, duration.Microseconds, duration.Nanoseconds, UnitDay)
	if err != nil {
		return PlainDate{}, err
	}
	result, err := iso.AddDate(date.ISODate(), duration.Years, duration.Months, duration.Weeks, balanced.Days, overflow)
	if err != nil {
		return PlainDate{}, err
	}
	return CreateTemporalDate(result.Year, result.Month, result.Day, c.receiver())
}

// DateFromFields builds a date from year, month or monthCode, and day.
func (c *BuiltinCalendar) DateFromFields(fields, options ir.IRObject) (PlainDate, error) {
	prepared, err := PrepareTemporalFields(fields, []string{"day", "month", "monthCode", "year"}, []string{"day", "year"})
	if err != nil {
		return PlainDate{}, err
	}
	overflow, err := ToTemporalOverflow(options)
	if err != nil {
		return PlainDate{}, err
	}
	month, err := ResolveISOMonth(prepared)
	if err != nil {
		return PlainDate{}, err
	}
	year, day := int64(prepared["year"].(ir.IRInt)), int64(prepared["day"].(ir.IRInt))
	regulated, err := iso.RegulateDate(year, month, day, overflow)
	if err != nil {
		return PlainDate{}, err
	}
	return CreateTemporalDate(regulated.Year, regulated.Month, regulated.Day, c.receiver())
}

// YearMonthFromFields builds a year-month with reference day 1.
func (c *BuiltinCalendar) YearMonthFromFields(fields, options ir.IRObject) (PlainYearMonth, error) {
	prepared, err := PrepareTemporalFields(fields, []string{"month", "monthCode", "year"}, []string{"year"})
	if err != nil {
		return PlainYearMonth{}, err
	}
	overflow, err := ToTemporalOverflow(options)
	if err != nil {
		return PlainYearMonth{}, err
	}
	month, err := ResolveISOMonth(prepared)
	if err != nil {
		return PlainYearMonth{}, err
	}
	regulated, err := iso.RegulateYearMonth(int64(prepared["year"].(ir.IRInt)), month, overflow)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return CreateTemporalYearMonth(regulated.Year, regulated.Month, c.receiver(), 1)
}

// MonthDayFromFields builds a month-day in reference year 1972. A month
// given without monthCode needs a year to be regulated against.
func (c *BuiltinCalendar) MonthDayFromFields(fields, options ir.IRObject) (PlainMonthDay, error) {
	prepared, err := PrepareTemporalFields(fields, []string{"day", "month", "monthCode", "year"}, []string{"day"})
	if err != nil {
		return PlainMonthDay{}, err
	}
	overflow, err := ToTemporalOverflow(options)
	if err != nil {
		return PlainMonthDay{}, err
	}
	_, hasMonth := prepared.Get("month")
	_, hasCode := prepared.Get("monthCode")
	_, hasYear := prepared.Get("year")
	if hasMonth && !hasCode && !hasYear {
		return PlainMonthDay{}, ir.NewTypeError(ir.ErrCodeMissingField, "year is required when month is given without monthCode")
	}
	month, err := ResolveISOMonth(prepared)
	if err != nil {
		return PlainMonthDay{}, err
	}

	year := int64(ReferenceISOYear)
	if !hasCode {
		year = int64(prepared["year"].(ir.IRInt))
	}
	regulated, err := iso.RegulateDate(year, month, int64(prepared["day"].(ir.IRInt)), overflow)
	if err != nil {
		return PlainMonthDay{}, err
	}
	return CreateTemporalMonthDay(regulated.Month, regulated.Day, c.receiver(), ReferenceISOYear)
}

// DateUntil returns the difference from one to two. largestUnit defaults
// to day.
func (c *BuiltinCalendar) DateUntil(one, two PlainDate, options ir.IRObject) (Duration, error) {
	largest, err := GetTemporalUnit(options, "largestUnit", UnitGroupDate, UnitAuto)
	if err != nil {
		return Duration{}, err
	}
	if largest == UnitAuto {
		largest = UnitDay
	}
	diff := iso.DifferenceDate(one.ISODate(), two.ISODate(), isoDifferenceUnit(largest))
	return Duration{Years: diff.Years, Months: diff.Months, Weeks: diff.Weeks, Days: diff.Days}, nil
}

func isoDifferenceUnit(u Unit) iso.DifferenceUnit {
	switch u {
	case UnitYear:
		return iso.UnitYear
	case UnitMonth:
		return iso.UnitMonth
	case UnitWeek:
		return iso.UnitWeek
	}
	return iso.UnitDay
}

// Day returns the ISO day of month.
func (c *BuiltinCalendar) Day(date ISODateSlots) (int64, error) {
	return date.ISODate().Day, nil
}

// DaysInMonth returns the length of the date's ISO month.
func (c *BuiltinCalendar) DaysInMonth(date ISODateSlots) (int64, error) {
	d := date.ISODate()
	return iso.DaysInMonth(d.Year, d.Month), nil
}

var builtinFieldNames = []string{
	"year", "month", "monthCode", "day",
	"hour", "minute", "second", "millisecond", "microsecond", "nanosecond",
}

// Fields validates fieldNames and returns them unchanged.
func (c *BuiltinCalendar) Fields(fieldNames []string) ([]string, error) {
	seen := make(map[string]bool, len(fieldNames))
	for _, name := range fieldNames {
		if !slices.Contains(builtinFieldNames, name) {
			return nil, ir.NewRangeError(ir.ErrCodeInvalidField, "%q is not a valid field name", name)
		}
		if seen[name] {
			return nil, ir.NewRangeError(ir.ErrCodeInvalidField, "duplicate field name %q", name)
		}
		seen[name] = true
	}
	return slices.Clone(fieldNames), nil
}

// MergeFields overlays additionalFields on fields. month and monthCode
// travel together: if either is in additionalFields, neither is taken
// from fields.
func (c *BuiltinCalendar) MergeFields(fields, additionalFields ir.IRObject) (ir.IRObject, error) {
	_, addMonth := definedField(additionalFields, "month")
	_, addCode := definedField(additionalFields, "monthCode")

	merged := ir.IRObject{}
	for k, v := range fields {
		if v == nil {
			continue
		}
		if (addMonth || addCode) && (k == "month" || k == "monthCode") {
			continue
		}
		merged[k] = v
	}
	for k, v := range additionalFields {
		if v == nil {
			continue
		}
		merged[k] = v
	}
	return merged, nil
}

func definedField(obj ir.IRObject, key string) (ir.IRValue, bool) {
	v, ok := obj.Get(key)
	return v, ok && v != nil
}
