package engine

import (
	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/iso"
	"github.com/roach88/temporal/internal/temporal"
)

// YearMonthAt returns the year-month that instant falls in on the wall
// clock of timeZone, expressed in calendar.
//
// The zone's getOffsetNanosecondsFor supplies the local date; the calendar
// then derives the year-month from that date's fields.
func YearMonthAt(instant any, timeZone any, calendar any) (temporal.PlainYearMonth, error) {
	inst, err := temporal.ToTemporalInstant(instant)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}
	zone, err := temporal.ToTemporalTimeZoneSlot(timeZone)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}
	cal, err := temporal.ToTemporalCalendarSlot(calendar)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}

	tzRec, err := temporal.NewTimeZoneMethodsRecord(zone, temporal.TimeZoneMethodGetOffsetNanosecondsFor)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}
	dateTime, err := temporal.GetPlainDateTimeFor(tzRec, inst, cal)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}

	rec, err := temporal.NewCalendarMethodsRecord(cal,
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
	fields, err := temporal.PrepareTemporalFields(temporal.FieldsOf(dateTime), fieldNames, nil)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}
	return rec.YearMonthFromFields(fields, nil)
}

// InstantOfYearMonth returns the instant at which ym begins in timeZone:
// midnight on the first day of the month, disambiguated per options.
func InstantOfYearMonth(ym temporal.PlainYearMonth, timeZone any, options ir.IRValue) (temporal.Instant, error) {
	zone, err := temporal.ToTemporalTimeZoneSlot(timeZone)
	if err != nil {
		return temporal.Instant{}, err
	}
	optionsObj, err := temporal.GetOptionsObject(options)
	if err != nil {
		return temporal.Instant{}, err
	}
	disambiguation, err := temporal.ToTemporalDisambiguation(optionsObj)
	if err != nil {
		return temporal.Instant{}, err
	}

	rec, err := temporal.NewCalendarMethodsRecord(ym.Calendar(),
		temporal.CalendarMethodDateFromFields,
		temporal.CalendarMethodFields,
	)
	if err != nil {
		return temporal.Instant{}, err
	}
	fieldNames, err := rec.Fields(yearMonthDateFields)
	if err != nil {
		return temporal.Instant{}, err
	}
	date, err := firstDayOfMonth(rec, ym, fieldNames)
	if err != nil {
		return temporal.Instant{}, err
	}
	dateTime, err := temporal.CreateTemporalDateTime(date.ISODate(), iso.Time{}, ym.Calendar())
	if err != nil {
		return temporal.Instant{}, err
	}

	tzRec, err := temporal.NewTimeZoneMethodsRecord(zone,
		temporal.TimeZoneMethodGetOffsetNanosecondsFor,
		temporal.TimeZoneMethodGetPossibleInstantsFor,
	)
	if err != nil {
		return temporal.Instant{}, err
	}
	return temporal.GetInstantFor(tzRec, dateTime, disambiguation)
}
