package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/temporal/internal/ir"
)

func reject() ir.IRObject { return ir.IRObject{"overflow": ir.IRString("reject")} }

func TestBuiltinCalendar_YearMonthFromFields(t *testing.T) {
	cal := NewBuiltinCalendar(ISO8601)

	ym, err := cal.YearMonthFromFields(ir.IRObject{"year": ir.IRInt(2019), "month": ir.IRInt(13)}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12), ym.Month())
	assert.Equal(t, int64(1), ym.ISODay())

	_, err = cal.YearMonthFromFields(ir.IRObject{"year": ir.IRInt(2019), "month": ir.IRInt(13)}, reject())
	assert.True(t, ir.IsRangeError(err))

	ym, err = cal.YearMonthFromFields(ir.IRObject{"year": ir.IRInt(2019), "monthCode": ir.IRString("M06")}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(6), ym.Month())

	_, err = cal.YearMonthFromFields(ir.IRObject{"year": ir.IRInt(2019), "month": ir.IRInt(5), "monthCode": ir.IRString("M06")}, nil)
	assert.True(t, ir.IsRangeError(err), "month and monthCode must agree")

	_, err = cal.YearMonthFromFields(ir.IRObject{"month": ir.IRInt(5)}, nil)
	assert.True(t, ir.HasCode(err, ir.ErrCodeMissingField))

	_, err = cal.YearMonthFromFields(ir.IRObject{"year": ir.IRInt(2019)}, nil)
	assert.True(t, ir.IsTypeError(err), "a month or monthCode is required")
}

func TestBuiltinCalendar_DateFromFields(t *testing.T) {
	cal := NewBuiltinCalendar(ISO8601)

	date, err := cal.DateFromFields(ir.IRObject{"year": ir.IRInt(2019), "month": ir.IRInt(2), "day": ir.IRInt(31)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2019-02-28", date.String())

	_, err = cal.DateFromFields(ir.IRObject{"year": ir.IRInt(2019), "month": ir.IRInt(2), "day": ir.IRInt(31)}, reject())
	assert.True(t, ir.IsRangeError(err))

	_, err = cal.DateFromFields(ir.IRObject{"year": ir.IRInt(2019), "month": ir.IRInt(2)}, nil)
	assert.True(t, ir.HasCode(err, ir.ErrCodeMissingField))
}

func TestBuiltinCalendar_MonthDayFromFields(t *testing.T) {
	cal := NewBuiltinCalendar(ISO8601)

	md, err := cal.MonthDayFromFields(ir.IRObject{"monthCode": ir.IRString("M02"), "day": ir.IRInt(29)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "02-29", md.String())
	assert.Equal(t, int64(ReferenceISOYear), md.ISODate().Year)

	md, err = cal.MonthDayFromFields(ir.IRObject{"year": ir.IRInt(2019), "month": ir.IRInt(2), "day": ir.IRInt(29)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "02-28", md.String())

	_, err = cal.MonthDayFromFields(ir.IRObject{"year": ir.IRInt(2019), "month": ir.IRInt(2), "day": ir.IRInt(29)}, reject())
	assert.True(t, ir.IsRangeError(err))

	_, err = cal.MonthDayFromFields(ir.IRObject{"month": ir.IRInt(2), "day": ir.IRInt(29)}, nil)
	assert.True(t, ir.IsTypeError(err))
}

func TestBuiltinCalendar_DateAdd(t *testing.T) {
	cal := NewBuiltinCalendar(ISO8601)
	date, err := CreateTemporalDate(2019, 1, 31, BuiltinCalendarReceiver(ISO8601))
	require.NoError(t, err)

	got, err := cal.DateAdd(date, Duration{Months: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2019-02-28", got.String())

	_, err = cal.DateAdd(date, Duration{Months: 1}, reject())
	assert.True(t, ir.IsRangeError(err))

	got, err = cal.DateAdd(date, Duration{Hours: 47, Minutes: 59}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2019-02-01", got.String(), "partial days are dropped")

	got, err = cal.DateAdd(date, Duration{Weeks: -1, Days: -1}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2019-01-23", got.String())
}

func TestBuiltinCalendar_DateUntil(t *testing.T) {
	cal := NewBuiltinCalendar(ISO8601)
	one, err := CreateTemporalDate(2019, 1, 1, BuiltinCalendarReceiver(ISO8601))
	require.NoError(t, err)
	two, err := CreateTemporalDate(2020, 2, 1, BuiltinCalendarReceiver(ISO8601))
	require.NoError(t, err)

	d, err := cal.DateUntil(one, two, nil)
	require.NoError(t, err)
	assert.Equal(t, Duration{Days: 396}, d)

	d, err = cal.DateUntil(one, two, ir.IRObject{"largestUnit": ir.IRString("month")})
	require.NoError(t, err)
	assert.Equal(t, Duration{Months: 13}, d)

	d, err = cal.DateUntil(one, two, ir.IRObject{"largestUnit": ir.IRString("years")})
	require.NoError(t, err)
	assert.Equal(t, Duration{Years: 1, Months: 1}, d)

	_, err = cal.DateUntil(one, two, ir.IRObject{"largestUnit": ir.IRString("hour")})
	assert.True(t, ir.HasCode(err, ir.ErrCodeInvalidOption))
}

func TestBuiltinCalendar_Fields(t *testing.T) {
	cal := NewBuiltinCalendar(ISO8601)

	names, err := cal.Fields([]string{"monthCode", "year"})
	require.NoError(t, err)
	assert.Equal(t, []string{"monthCode", "year"}, names)

	_, err = cal.Fields([]string{"year", "year"})
	assert.True(t, ir.IsRangeError(err))

	_, err = cal.Fields([]string{"era"})
	assert.True(t, ir.IsRangeError(err))
}

func TestBuiltinCalendar_MergeFields(t *testing.T) {
	cal := NewBuiltinCalendar(ISO8601)

	merged, err := cal.MergeFields(
		ir.IRObject{"year": ir.IRInt(2019), "month": ir.IRInt(6), "monthCode": ir.IRString("M06")},
		ir.IRObject{"monthCode": ir.IRString("M07")},
	)
	require.NoError(t, err)
	assert.Equal(t, ir.IRObject{"year": ir.IRInt(2019), "monthCode": ir.IRString("M07")}, merged)

	merged, err = cal.MergeFields(
		ir.IRObject{"year": ir.IRInt(2019), "month": ir.IRInt(6)},
		ir.IRObject{"year": ir.IRInt(2020)},
	)
	require.NoError(t, err)
	assert.Equal(t, ir.IRObject{"year": ir.IRInt(2020), "month": ir.IRInt(6)}, merged)
}

func TestBuiltinCalendar_Day(t *testing.T) {
	cal := NewBuiltinCalendar(ISO8601)
	date, err := CreateTemporalDate(2021, 4, 17, BuiltinCalendarReceiver(ISO8601))
	require.NoError(t, err)

	day, err := cal.Day(date)
	require.NoError(t, err)
	assert.Equal(t, int64(17), day)

	n, err := cal.DaysInMonth(date)
	require.NoError(t, err)
	assert.Equal(t, int64(30), n)
}
