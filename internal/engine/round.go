package engine

import (
	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/iso"
	"github.com/roach88/temporal/internal/temporal"
)

// RoundDuration rounds a years-and-months duration to increment units of
// unit (year or month), relative to the date relativeTo. Lengths of years
// and months are measured through the calendar's dateAdd, so a capability
// calendar decides how long each one is.
//
// For unit year, months are folded into days past the last whole year and
// the fraction of the following year is rounded. For unit month, the
// year-month total is rounded directly.
func RoundDuration(years, months, increment int64, unit temporal.Unit, mode temporal.RoundingMode, relativeTo temporal.PlainDate, rec *temporal.CalendarMethodsRecord) (temporal.Duration, error) {
	switch unit {
	case temporal.UnitYear:
		return roundToYears(years, months, increment, mode, relativeTo, rec)
	case temporal.UnitMonth:
		return roundToMonths(years, months, increment, mode, relativeTo, rec)
	}
	return temporal.Duration{}, ir.NewRangeError(ir.ErrCodeInvalidOption, "cannot round a year-month difference to %s", unit)
}

func roundToYears(years, months, increment int64, mode temporal.RoundingMode, relativeTo temporal.PlainDate, rec *temporal.CalendarMethodsRecord) (temporal.Duration, error) {
	yearsLater, err := rec.DateAdd(relativeTo, temporal.Duration{Years: years}, nil)
	if err != nil {
		return temporal.Duration{}, err
	}
	yearsMonthsLater, err := rec.DateAdd(relativeTo, temporal.Duration{Years: years, Months: months}, nil)
	if err != nil {
		return temporal.Duration{}, err
	}
	days := daysUntil(yearsLater, yearsMonthsLater)
	relativeTo = yearsLater

	// Whole years hidden in the remaining days are moved back into years.
	wholeDaysLater, err := rec.DateAdd(relativeTo, temporal.Duration{Days: days}, nil)
	if err != nil {
		return temporal.Duration{}, err
	}
	untilOptions := ir.IRObject{"largestUnit": ir.IRString(temporal.UnitYear.String())}
	passed, err := rec.DateUntil(relativeTo, wholeDaysLater, untilOptions)
	if err != nil {
		return temporal.Duration{}, err
	}
	years += passed.Years
	oldRelativeTo := relativeTo
	relativeTo, err = rec.DateAdd(relativeTo, temporal.Duration{Years: passed.Years}, nil)
	if err != nil {
		return temporal.Duration{}, err
	}
	days -= daysUntil(oldRelativeTo, relativeTo)

	var sign int64 = 1
	if days < 0 {
		sign = -1
	}
	_, oneYearDays, err := moveRelativeDate(rec, relativeTo, temporal.Duration{Years: sign})
	if err != nil {
		return temporal.Duration{}, err
	}
	if oneYearDays == 0 {
		return temporal.Duration{}, ir.NewRangeError(ir.ErrCodeInvalidDuration, "calendar year has zero length")
	}
	oneYearDays = abs64(oneYearDays)

	rounded, err := temporal.RoundRationalToIncrement(years*oneYearDays+days, oneYearDays, increment, mode)
	if err != nil {
		return temporal.Duration{}, err
	}
	return temporal.Duration{Years: rounded}, nil
}

func roundToMonths(years, months, increment int64, mode temporal.RoundingMode, relativeTo temporal.PlainDate, rec *temporal.CalendarMethodsRecord) (temporal.Duration, error) {
	yearsMonthsLater, err := rec.DateAdd(relativeTo, temporal.Duration{Years: years, Months: months}, nil)
	if err != nil {
		return temporal.Duration{}, err
	}

	// Both operands sit on day 1, so no days remain past the whole months
	// and the fraction is always zero. The month length is still measured
	// so a degenerate calendar is reported.
	_, oneMonthDays, err := moveRelativeDate(rec, yearsMonthsLater, temporal.Duration{Months: 1})
	if err != nil {
		return temporal.Duration{}, err
	}
	if oneMonthDays == 0 {
		return temporal.Duration{}, ir.NewRangeError(ir.ErrCodeInvalidDuration, "calendar month has zero length")
	}
	oneMonthDays = abs64(oneMonthDays)

	rounded, err := temporal.RoundRationalToIncrement(months*oneMonthDays, oneMonthDays, increment, mode)
	if err != nil {
		return temporal.Duration{}, err
	}
	return temporal.Duration{Years: years, Months: rounded}, nil
}

// moveRelativeDate adds duration to relativeTo and reports the new date
// and the number of days moved.
func moveRelativeDate(rec *temporal.CalendarMethodsRecord, relativeTo temporal.PlainDate, duration temporal.Duration) (temporal.PlainDate, int64, error) {
	later, err := rec.DateAdd(relativeTo, duration, nil)
	if err != nil {
		return temporal.PlainDate{}, 0, err
	}
	return later, daysUntil(relativeTo, later), nil
}

func daysUntil(earlier, later temporal.PlainDate) int64 {
	a, b := earlier.ISODate(), later.ISODate()
	return iso.EpochDays(b.Year, b.Month, b.Day) - iso.EpochDays(a.Year, a.Month, a.Day)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
