package engine

import (
	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/temporal"
)

// ArithmeticOperation selects between adding and subtracting a duration.
type ArithmeticOperation int

const (
	OperationAdd ArithmeticOperation = iota
	OperationSubtract
)

// String returns "add" or "subtract".
func (op ArithmeticOperation) String() string {
	if op == OperationSubtract {
		return "subtract"
	}
	return "add"
}

// AddOrSubtract moves ym by a duration.
//
// Sub-day fields of the duration are balanced into whole days; any
// remainder below a day is dropped. The year-month is widened to a date
// whose day is 1 when moving forward and the last day of the month when
// moving backward, so a negative day count stays in the expected month.
// The calendar's dateAdd receives a snapshot of options; the caller's own
// options object reaches yearMonthFromFields.
func AddOrSubtract(op ArithmeticOperation, ym temporal.PlainYearMonth, durationLike any, options ir.IRValue) (temporal.PlainYearMonth, error) {
	duration, err := temporal.ToTemporalDuration(durationLike)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}
	if op == OperationSubtract {
		duration = duration.Negated()
	}

	balanced, err := temporal.BalanceTimeDuration(duration.Days, duration.Hours, duration.Minutes,
		duration.Seconds, duration.Milliseconds, duration.Microseconds, duration.Nanoseconds, temporal.UnitDay)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}

	optionsObj, err := temporal.GetOptionsObject(options)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}

	rec, err := temporal.NewCalendarMethodsRecord(ym.Calendar(),
		temporal.CalendarMethodDateAdd,
		temporal.CalendarMethodDateFromFields,
		temporal.CalendarMethodDaysInMonth,
		temporal.CalendarMethodFields,
		temporal.CalendarMethodYearMonthFromFields,
	)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}

	fieldNames, err := rec.Fields(yearMonthDateFields)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}
	fields, err := temporal.PrepareTemporalFields(temporal.FieldsOf(ym), fieldNames, nil)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}

	durationToAdd := temporal.Duration{
		Years:  duration.Years,
		Months: duration.Months,
		Weeks:  duration.Weeks,
		Days:   balanced.Days,
	}

	var day int64 = 1
	if durationToAdd.Sign() < 0 {
		day, err = rec.DaysInMonth(ym)
		if err != nil {
			return temporal.PlainYearMonth{}, err
		}
	}
	fields["day"] = ir.IRInt(day)

	date, err := rec.DateFromFields(fields, nil)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}

	added, err := rec.DateAdd(date, durationToAdd, optionsObj.Clone())
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}

	addedFields, err := temporal.PrepareTemporalFields(temporal.FieldsOf(added), fieldNames, nil)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}
	return rec.YearMonthFromFields(addedFields, optionsObj)
}
