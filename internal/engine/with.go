package engine

import (
	"slices"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/temporal"
)

// With returns ym with the fields of partial replacing its own.
//
// partial must carry at least one of month, monthCode or year, and must not
// carry calendar or timeZone. The calendar merges the two field sets, so
// supplying month alone drops the receiver's monthCode.
func With(ym temporal.PlainYearMonth, partial ir.IRValue, options ir.IRValue) (temporal.PlainYearMonth, error) {
	like, ok := partial.(ir.IRObject)
	if !ok {
		return temporal.PlainYearMonth{}, ir.NewTypeError(ir.ErrCodeInvalidOperand, "with requires a property bag, got %s", ir.ToString(partial))
	}
	if err := rejectCalendarOrTimeZone(like); err != nil {
		return temporal.PlainYearMonth{}, err
	}

	rec, err := temporal.NewCalendarMethodsRecord(ym.Calendar(),
		temporal.CalendarMethodFields,
		temporal.CalendarMethodMergeFields,
		temporal.CalendarMethodYearMonthFromFields,
	)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}

	fieldNames, err := rec.Fields([]string{"month", "monthCode", "year"})
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}
	partialFields, err := temporal.PreparePartialTemporalFields(like, fieldNames)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}

	optionsObj, err := temporal.GetOptionsObject(options)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}

	fields, err := temporal.PrepareTemporalFields(temporal.FieldsOf(ym), fieldNames, nil)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}
	merged, err := rec.MergeFields(fields, partialFields)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}
	merged, err = temporal.PrepareTemporalFields(merged, fieldNames, nil)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}
	return rec.YearMonthFromFields(merged, optionsObj)
}

func rejectCalendarOrTimeZone(bag ir.IRObject) error {
	for _, key := range []string{"calendar", "timeZone"} {
		if v, ok := bag.Get(key); ok && v != nil {
			return ir.NewTypeError(ir.ErrCodeInvalidField, "%s is not allowed in a partial year-month", key)
		}
	}
	return nil
}

// ToPlainDate combines ym with the day in item into a date. The calendar
// rejects a day that does not exist in the month.
func ToPlainDate(ym temporal.PlainYearMonth, item ir.IRValue) (temporal.PlainDate, error) {
	bag, ok := item.(ir.IRObject)
	if !ok {
		return temporal.PlainDate{}, ir.NewTypeError(ir.ErrCodeInvalidOperand, "toPlainDate requires a property bag, got %s", ir.ToString(item))
	}

	rec, err := temporal.NewCalendarMethodsRecord(ym.Calendar(),
		temporal.CalendarMethodDateFromFields,
		temporal.CalendarMethodFields,
		temporal.CalendarMethodMergeFields,
	)
	if err != nil {
		return temporal.PlainDate{}, err
	}

	receiverFieldNames, err := rec.Fields(yearMonthDateFields)
	if err != nil {
		return temporal.PlainDate{}, err
	}
	fields, err := temporal.PrepareTemporalFields(temporal.FieldsOf(ym), receiverFieldNames, nil)
	if err != nil {
		return temporal.PlainDate{}, err
	}

	inputFieldNames, err := rec.Fields([]string{"day"})
	if err != nil {
		return temporal.PlainDate{}, err
	}
	inputFields, err := temporal.PrepareTemporalFields(bag, inputFieldNames, nil)
	if err != nil {
		return temporal.PlainDate{}, err
	}

	merged, err := rec.MergeFields(fields, inputFields)
	if err != nil {
		return temporal.PlainDate{}, err
	}
	mergedFieldNames := slices.Concat(receiverFieldNames, inputFieldNames)
	merged, err = temporal.PrepareTemporalFields(merged, mergedFieldNames, nil)
	if err != nil {
		return temporal.PlainDate{}, err
	}

	return rec.DateFromFields(merged, ir.IRObject{"overflow": ir.IRString("reject")})
}

// monthDayFieldNames are the fields a calendar is asked for when coercing
// a property bag to a month-day.
var monthDayFieldNames = []string{"day", "month", "monthCode", "year"}

// MonthDayFrom coerces item to a PlainMonthDay through the calendar's
// monthDayFromFields. item is a PlainMonthDay, a property bag (an
// ir.IRObject with an optional calendar string, or a temporal.Bag), or an
// ISO month-day string. Month-days use reference year 1972.
func MonthDayFrom(item any, options ir.IRValue) (temporal.PlainMonthDay, error) {
	optionsObj, err := temporal.GetOptionsObject(options)
	if err != nil {
		return temporal.PlainMonthDay{}, err
	}

	var (
		fields   ir.IRObject
		calendar temporal.CalendarReceiver
	)
	switch v := item.(type) {
	case temporal.PlainMonthDay:
		return v, nil
	case temporal.Bag:
		fields, calendar = v.Fields, v.Calendar
	case ir.IRObject:
		calendar, err = temporal.GetTemporalCalendarSlotWithISODefault(v)
		if err != nil {
			return temporal.PlainMonthDay{}, err
		}
		fields = v
	default:
		if _, err := temporal.ToTemporalOverflow(optionsObj); err != nil {
			return temporal.PlainMonthDay{}, err
		}
		return monthDayFromString(item)
	}

	rec, err := temporal.NewCalendarMethodsRecord(calendar,
		temporal.CalendarMethodFields,
		temporal.CalendarMethodMonthDayFromFields,
	)
	if err != nil {
		return temporal.PlainMonthDay{}, err
	}
	fieldNames, err := rec.Fields(monthDayFieldNames)
	if err != nil {
		return temporal.PlainMonthDay{}, err
	}
	prepared, err := temporal.PrepareTemporalFields(fields, fieldNames, nil)
	if err != nil {
		return temporal.PlainMonthDay{}, err
	}
	return rec.MonthDayFromFields(prepared, optionsObj)
}

func monthDayFromString(item any) (temporal.PlainMonthDay, error) {
	var s string
	switch v := item.(type) {
	case string:
		s = v
	case ir.IRString:
		s = string(v)
	default:
		return temporal.PlainMonthDay{}, ir.NewTypeError(ir.ErrCodeInvalidOperand, "cannot convert %T to a month-day", item)
	}

	parsed, err := temporal.ParseTemporalMonthDayString(s)
	if err != nil {
		return temporal.PlainMonthDay{}, err
	}
	calendar, err := temporal.ToTemporalCalendarSlot(parsed.Calendar)
	if err != nil {
		return temporal.PlainMonthDay{}, err
	}
	created, err := temporal.CreateTemporalMonthDay(parsed.Month, parsed.Day, calendar, temporal.ReferenceISOYear)
	if err != nil {
		return temporal.PlainMonthDay{}, err
	}

	rec, err := temporal.NewCalendarMethodsRecord(calendar, temporal.CalendarMethodMonthDayFromFields)
	if err != nil {
		return temporal.PlainMonthDay{}, err
	}
	return rec.MonthDayFromFields(temporal.FieldsOf(created), nil)
}
