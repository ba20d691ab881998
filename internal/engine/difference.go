package engine

import (
	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/temporal"
)

// yearMonthDateFields are the calendar fields that identify a year-month
// when it is widened to a date.
var yearMonthDateFields = []string{"monthCode", "year"}

// Difference computes the duration from ym to other (until) or from other
// to ym (since), in years and months.
//
// other is coerced with temporal.ToTemporalYearMonth and must use an equal
// calendar. Both year-months are widened to the first day of their month
// through the calendar's dateFromFields, and the calendar's dateUntil
// measures the distance with the resolved largestUnit. A smallestUnit or
// roundingIncrement other than month/1 rounds the result relative to ym.
func Difference(op temporal.DifferenceOperation, ym temporal.PlainYearMonth, other any, options ir.IRValue) (temporal.Duration, error) {
	var sign int64 = 1
	if op == temporal.DifferenceSince {
		sign = -1
	}

	otherYM, err := temporal.ToTemporalYearMonth(other, nil)
	if err != nil {
		return temporal.Duration{}, err
	}

	calendar := ym.Calendar()
	equal, err := temporal.CalendarEquals(calendar, otherYM.Calendar())
	if err != nil {
		return temporal.Duration{}, err
	}
	if !equal {
		return temporal.Duration{}, ir.NewRangeError(ir.ErrCodeDifferentCalendars, "cannot compute a difference between year-months of different calendars")
	}

	optionsObj, err := temporal.GetOptionsObject(options)
	if err != nil {
		return temporal.Duration{}, err
	}
	snapshot := optionsObj.Clone()

	settings, err := temporal.GetDifferenceSettings(op, snapshot, temporal.UnitGroupDate,
		[]temporal.Unit{temporal.UnitWeek, temporal.UnitDay}, temporal.UnitMonth, temporal.UnitYear)
	if err != nil {
		return temporal.Duration{}, err
	}

	if ym.ISODate() == otherYM.ISODate() {
		return temporal.Duration{}, nil
	}

	snapshot["largestUnit"] = ir.IRString(settings.LargestUnit.String())

	rec, err := temporal.NewCalendarMethodsRecord(calendar,
		temporal.CalendarMethodDateAdd,
		temporal.CalendarMethodDateFromFields,
		temporal.CalendarMethodDateUntil,
		temporal.CalendarMethodFields,
	)
	if err != nil {
		return temporal.Duration{}, err
	}

	fieldNames, err := rec.Fields(yearMonthDateFields)
	if err != nil {
		return temporal.Duration{}, err
	}

	thisDate, err := firstDayOfMonth(rec, ym, fieldNames)
	if err != nil {
		return temporal.Duration{}, err
	}
	otherDate, err := firstDayOfMonth(rec, otherYM, fieldNames)
	if err != nil {
		return temporal.Duration{}, err
	}

	result, err := rec.DateUntil(thisDate, otherDate, snapshot)
	if err != nil {
		return temporal.Duration{}, err
	}
	years, months := result.Years, result.Months

	if settings.SmallestUnit != temporal.UnitMonth || settings.RoundingIncrement != 1 {
		rounded, err := RoundDuration(years, months, settings.RoundingIncrement,
			settings.SmallestUnit, settings.RoundingMode, thisDate, rec)
		if err != nil {
			return temporal.Duration{}, err
		}
		years, months = rounded.Years, rounded.Months
	}

	return temporal.Duration{Years: sign * years, Months: sign * months}, nil
}

// firstDayOfMonth widens ym to a date on day 1 through the calendar.
func firstDayOfMonth(rec *temporal.CalendarMethodsRecord, ym temporal.PlainYearMonth, fieldNames []string) (temporal.PlainDate, error) {
	fields, err := temporal.PrepareTemporalFields(temporal.FieldsOf(ym), fieldNames, nil)
	if err != nil {
		return temporal.PlainDate{}, err
	}
	fields["day"] = ir.IRInt(1)
	return rec.DateFromFields(fields, nil)
}
