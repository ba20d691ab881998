package trace

import (
	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/temporal"
)

var calendarMethods = []temporal.CalendarMethod{
	temporal.CalendarMethodDateAdd,
	temporal.CalendarMethodDateFromFields,
	temporal.CalendarMethodDateUntil,
	temporal.CalendarMethodDay,
	temporal.CalendarMethodDaysInMonth,
	temporal.CalendarMethodFields,
	temporal.CalendarMethodMergeFields,
	temporal.CalendarMethodMonthDayFromFields,
	temporal.CalendarMethodYearMonthFromFields,
}

func lookupCalendarMethod(name string) (temporal.CalendarMethod, bool) {
	for _, m := range calendarMethods {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

// Calendar is a capability calendar that forwards to an inner receiver and
// records every lookup and call. Values the inner calendar returns are
// rebound to the Calendar, so they compare equal to each other.
type Calendar struct {
	inner    temporal.CalendarReceiver
	id       string
	recorder *Recorder
}

// NewCalendar wraps inner. The inner calendar's identifier becomes the
// wrapper's.
func NewCalendar(inner temporal.CalendarReceiver, recorder *Recorder) (*Calendar, error) {
	id, err := inner.ID()
	if err != nil {
		return nil, err
	}
	return &Calendar{inner: inner, id: id, recorder: recorder}, nil
}

// Receiver returns the wrapper as a calendar receiver.
func (c *Calendar) Receiver() temporal.CalendarReceiver {
	return temporal.ObjectCalendarReceiver(c)
}

// ID implements temporal.Object.
func (c *Calendar) ID() (string, error) {
	return c.id, nil
}

// GetMethod implements temporal.Object. A method the inner calendar lacks
// is reported absent, after the lookup is recorded.
func (c *Calendar) GetMethod(name string) (any, bool) {
	args := ir.IRArray{ir.IRString(name)}

	m, known := lookupCalendarMethod(name)
	if !known {
		c.recorder.Record(c.id, ir.CallKindGet, name, args, ir.IRBool(false), nil)
		return nil, false
	}
	rec, err := temporal.NewCalendarMethodsRecord(c.inner, m)
	if err != nil {
		c.recorder.Record(c.id, ir.CallKindGet, name, args, ir.IRBool(false), err)
		return nil, false
	}
	c.recorder.Record(c.id, ir.CallKindGet, name, args, ir.IRBool(true), nil)

	self := c.Receiver()
	call := func(args ir.IRArray, result ir.IRValue, err error) {
		if err != nil {
			result = nil
		}
		c.recorder.Record(c.id, ir.CallKindCall, name, args, result, err)
	}

	switch m {
	case temporal.CalendarMethodDateAdd:
		return temporal.DateAddFunc(func(date temporal.PlainDate, duration temporal.Duration, options ir.IRObject) (temporal.PlainDate, error) {
			result, err := rec.DateAdd(date, duration, options)
			call(ir.IRArray{slotsValue(date), ir.IRString(duration.String()), optionsValue(options)}, slotsValue(result), err)
			return result.WithCalendar(self), err
		}), true
	case temporal.CalendarMethodDateFromFields:
		return temporal.DateFromFieldsFunc(func(fields, options ir.IRObject) (temporal.PlainDate, error) {
			result, err := rec.DateFromFields(fields, options)
			call(ir.IRArray{optionsValue(fields), optionsValue(options)}, slotsValue(result), err)
			return result.WithCalendar(self), err
		}), true
	case temporal.CalendarMethodDateUntil:
		return temporal.DateUntilFunc(func(one, two temporal.PlainDate, options ir.IRObject) (temporal.Duration, error) {
			result, err := rec.DateUntil(one, two, options)
			call(ir.IRArray{slotsValue(one), slotsValue(two), optionsValue(options)}, ir.IRString(result.String()), err)
			return result, err
		}), true
	case temporal.CalendarMethodDay:
		return temporal.DayFunc(func(date temporal.ISODateSlots) (int64, error) {
			result, err := rec.Day(date)
			call(ir.IRArray{slotsValue(date)}, ir.IRInt(result), err)
			return result, err
		}), true
	case temporal.CalendarMethodDaysInMonth:
		return temporal.DaysInMonthFunc(func(date temporal.ISODateSlots) (int64, error) {
			result, err := rec.DaysInMonth(date)
			call(ir.IRArray{slotsValue(date)}, ir.IRInt(result), err)
			return result, err
		}), true
	case temporal.CalendarMethodFields:
		return temporal.FieldsFunc(func(fieldNames []string) ([]string, error) {
			result, err := rec.Fields(fieldNames)
			call(ir.IRArray{ir.StringArray(fieldNames)}, ir.StringArray(result), err)
			return result, err
		}), true
	case temporal.CalendarMethodMergeFields:
		return temporal.MergeFieldsFunc(func(fields, additionalFields ir.IRObject) (ir.IRObject, error) {
			result, err := rec.MergeFields(fields, additionalFields)
			call(ir.IRArray{optionsValue(fields), optionsValue(additionalFields)}, optionsValue(result), err)
			return result, err
		}), true
	case temporal.CalendarMethodMonthDayFromFields:
		return temporal.MonthDayFromFieldsFunc(func(fields, options ir.IRObject) (temporal.PlainMonthDay, error) {
			result, err := rec.MonthDayFromFields(fields, options)
			call(ir.IRArray{optionsValue(fields), optionsValue(options)}, slotsValue(result), err)
			return result.WithCalendar(self), err
		}), true
	case temporal.CalendarMethodYearMonthFromFields:
		return temporal.YearMonthFromFieldsFunc(func(fields, options ir.IRObject) (temporal.PlainYearMonth, error) {
			result, err := rec.YearMonthFromFields(fields, options)
			call(ir.IRArray{optionsValue(fields), optionsValue(options)}, slotsValue(result), err)
			return result.WithCalendar(self), err
		}), true
	}
	return nil, false
}

// slotsValue renders a value's ISO slots as YYYY-MM-DD.
func slotsValue(v temporal.ISODateSlots) ir.IRValue {
	return ir.IRString(v.ISODate().String())
}

// optionsValue snapshots an options or fields object; undefined is null.
func optionsValue(obj ir.IRObject) ir.IRValue {
	if obj == nil {
		return ir.IRNull{}
	}
	return obj.Clone()
}
