package temporal

import (
	"fmt"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/iso"
)

// ISODateSlots is implemented by every value carrying ISO date slots.
type ISODateSlots interface {
	ISODate() iso.Date
	Calendar() CalendarReceiver
}

// PlainDate is a calendar date.
type PlainDate struct {
	date     iso.Date
	calendar CalendarReceiver
}

// CreateTemporalDate validates an ISO date and binds it to calendar.
func CreateTemporalDate(year, month, day int64, calendar CalendarReceiver) (PlainDate, error) {
	if !iso.IsValidDate(year, month, day) {
		return PlainDate{}, ir.NewRangeError(ir.ErrCodeInvalidDate, "%s-%02d-%02d is not a valid date", iso.PadYear(year), month, day)
	}
	if !iso.DateWithinLimits(year, month, day) {
		return PlainDate{}, ir.NewRangeError(ir.ErrCodeInvalidDate, "%s-%02d-%02d is outside the representable range", iso.PadYear(year), month, day)
	}
	return PlainDate{date: iso.Date{Year: year, Month: month, Day: day}, calendar: calendar}, nil
}

// ISODate returns the ISO slots.
func (d PlainDate) ISODate() iso.Date { return d.date }

// Calendar returns the date's calendar.
func (d PlainDate) Calendar() CalendarReceiver { return d.calendar }

// WithCalendar returns the same ISO date bound to calendar.
func (d PlainDate) WithCalendar(calendar CalendarReceiver) PlainDate {
	d.calendar = calendar
	return d
}

// String renders the date with an annotation for non-ISO calendars.
func (d PlainDate) String() string {
	return d.date.String() + calendarSuffix(d.calendar, ShowCalendarAuto)
}

// PlainMonthDay is a month and day with an ISO reference year.
type PlainMonthDay struct {
	date     iso.Date
	calendar CalendarReceiver
}

// ReferenceISOYear is the year built-in calendars store in PlainMonthDay.
const ReferenceISOYear = 1972

// CreateTemporalMonthDay validates an ISO date and binds it to calendar
// as a month-day.
func CreateTemporalMonthDay(month, day int64, calendar CalendarReceiver, referenceYear int64) (PlainMonthDay, error) {
	if !iso.IsValidDate(referenceYear, month, day) || !iso.DateWithinLimits(referenceYear, month, day) {
		return PlainMonthDay{}, ir.NewRangeError(ir.ErrCodeInvalidDate, "%02d-%02d is not a valid month-day", month, day)
	}
	return PlainMonthDay{date: iso.Date{Year: referenceYear, Month: month, Day: day}, calendar: calendar}, nil
}

// ISODate returns the ISO slots.
func (md PlainMonthDay) ISODate() iso.Date { return md.date }

// Calendar returns the month-day's calendar.
func (md PlainMonthDay) Calendar() CalendarReceiver { return md.calendar }

// WithCalendar returns the same ISO slots bound to calendar.
func (md PlainMonthDay) WithCalendar(calendar CalendarReceiver) PlainMonthDay {
	md.calendar = calendar
	return md
}

// MonthCode returns the month code, e.g. "M02".
func (md PlainMonthDay) MonthCode() string { return monthCode(md.date.Month) }

// Day returns the day of month.
func (md PlainMonthDay) Day() int64 { return md.date.Day }

// String renders MM-DD, or the full reference date for non-ISO calendars.
func (md PlainMonthDay) String() string {
	suffix := calendarSuffix(md.calendar, ShowCalendarAuto)
	if suffix == "" {
		return fmt.Sprintf("%02d-%02d", md.date.Month, md.date.Day)
	}
	return md.date.String() + suffix
}

// PlainDateTime is a calendar date and wall-clock time.
type PlainDateTime struct {
	date     iso.Date
	time     iso.Time
	calendar CalendarReceiver
}

// CreateTemporalDateTime validates a date and time and binds them to calendar.
func CreateTemporalDateTime(date iso.Date, t iso.Time, calendar CalendarReceiver) (PlainDateTime, error) {
	if !iso.IsValidDate(date.Year, date.Month, date.Day) || !iso.IsValidTime(t) {
		return PlainDateTime{}, ir.NewRangeError(ir.ErrCodeInvalidDateTime, "%sT%s is not a valid date-time", date, t)
	}
	if !dateTimeWithinLimits(date, t) {
		return PlainDateTime{}, ir.NewRangeError(ir.ErrCodeInvalidDateTime, "%sT%s is outside the representable range", date, t)
	}
	return PlainDateTime{date: date, time: t, calendar: calendar}, nil
}

// dateTimeWithinLimits allows one day of slack on either side of the
// instant range, so every instant has a wall-clock time in any offset.
func dateTimeWithinLimits(date iso.Date, t iso.Time) bool {
	if date.Year < iso.MinYear || date.Year > iso.MaxYear {
		return false
	}
	days := iso.EpochDays(date.Year, date.Month, date.Day)
	if days < iso.MinEpochDays || days > iso.MaxEpochDays {
		return false
	}
	return days != iso.MinEpochDays || t.Nanoseconds() != 0
}

// ISODate returns the date slots.
func (dt PlainDateTime) ISODate() iso.Date { return dt.date }

// ISOTime returns the time slots.
func (dt PlainDateTime) ISOTime() iso.Time { return dt.time }

// Calendar returns the date-time's calendar.
func (dt PlainDateTime) Calendar() CalendarReceiver { return dt.calendar }

// String renders YYYY-MM-DDTHH:MM:SS[.fff].
func (dt PlainDateTime) String() string {
	return dt.date.String() + "T" + dt.time.String() + calendarSuffix(dt.calendar, ShowCalendarAuto)
}

// FieldsOf returns the observable calendar fields of a value carrying
// ISO date slots: year, month, monthCode and day.
// Values are reported from the ISO slots.
func FieldsOf(v ISODateSlots) ir.IRObject {
	d := v.ISODate()
	return ir.IRObject{
		"year":      ir.IRInt(d.Year),
		"month":     ir.IRInt(d.Month),
		"monthCode": ir.IRString(monthCode(d.Month)),
		"day":       ir.IRInt(d.Day),
	}
}

func monthCode(month int64) string {
	return fmt.Sprintf("M%02d", month)
}

func calendarSuffix(c CalendarReceiver, show ShowCalendar) string {
	id, err := c.ID()
	if err != nil {
		return ""
	}
	return FormatCalendarAnnotation(id, show)
}
