package iso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/temporal/internal/ir"
)

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, int64(29), DaysInMonth(2020, 2))
	assert.Equal(t, int64(28), DaysInMonth(2021, 2))
	assert.Equal(t, int64(28), DaysInMonth(1900, 2))
	assert.Equal(t, int64(29), DaysInMonth(2000, 2))
	assert.Equal(t, int64(30), DaysInMonth(2021, 4))
	assert.Equal(t, int64(31), DaysInMonth(2021, 12))
	assert.Equal(t, int64(366), DaysInYear(-4))
	assert.Equal(t, int64(365), DaysInYear(-1))
}

func TestRegulateDate(t *testing.T) {
	got, err := RegulateDate(2021, 2, 31, Constrain)
	require.NoError(t, err)
	assert.Equal(t, Date{2021, 2, 28}, got)

	got, err = RegulateDate(2021, 14, 0, Constrain)
	require.NoError(t, err)
	assert.Equal(t, Date{2021, 12, 1}, got)

	_, err = RegulateDate(2021, 2, 29, Reject)
	assert.True(t, ir.HasCode(err, ir.ErrCodeInvalidDate))
}

func TestDateWithinLimits(t *testing.T) {
	assert.True(t, DateWithinLimits(-271821, 4, 19))
	assert.False(t, DateWithinLimits(-271821, 4, 18))
	assert.True(t, DateWithinLimits(275760, 9, 13))
	assert.False(t, DateWithinLimits(275760, 9, 14))
}

func TestEpochDaysRoundTrip(t *testing.T) {
	assert.Equal(t, int64(0), EpochDays(1970, 1, 1))
	assert.Equal(t, int64(MaxEpochDays), EpochDays(275760, 9, 13))
	assert.Equal(t, int64(-100_000_000), EpochDays(-271821, 4, 20))

	for _, days := range []int64{-800_000, -1, 0, 59, 60, 11_016, 18_628, 2_932_896, MinEpochDays, MaxEpochDays} {
		d := DateFromEpochDays(days)
		require.True(t, IsValidDate(d.Year, d.Month, d.Day), "%d -> %v", days, d)
		assert.Equal(t, days, EpochDays(d.Year, d.Month, d.Day))
	}
}

func TestBalanceDate(t *testing.T) {
	assert.Equal(t, Date{2021, 3, 1}, BalanceDate(2021, 2, 29))
	assert.Equal(t, Date{2020, 12, 31}, BalanceDate(2021, 1, 0))
	assert.Equal(t, Date{2022, 1, 31}, BalanceDate(2021, 13, 31))
	assert.Equal(t, Date{2019, 11, 1}, BalanceDate(2020, 0, -29))
}

func TestAddDate(t *testing.T) {
	tests := []struct {
		name                       string
		start                      Date
		years, months, weeks, days int64
		overflow                   Overflow
		expected                   Date
	}{
		{"month into next year", Date{2021, 12, 1}, 0, 1, 0, 0, Constrain, Date{2022, 1, 1}},
		{"month back into previous year", Date{2021, 1, 1}, 0, -1, 0, 0, Constrain, Date{2020, 12, 1}},
		{"constrain end of month", Date{2021, 1, 31}, 0, 1, 0, 0, Constrain, Date{2021, 2, 28}},
		{"leap day plus year", Date{2020, 2, 29}, 1, 0, 0, 0, Constrain, Date{2021, 2, 28}},
		{"weeks and days", Date{2021, 1, 1}, 0, 0, 2, 3, Constrain, Date{2021, 1, 18}},
		{"negative days across month", Date{2021, 3, 1}, 0, 0, 0, -1, Constrain, Date{2021, 2, 28}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddDate(tt.start, tt.years, tt.months, tt.weeks, tt.days, tt.overflow)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAddDateRejectOverflow(t *testing.T) {
	_, err := AddDate(Date{2021, 1, 31}, 0, 1, 0, 0, Reject)
	assert.True(t, ir.IsRangeError(err))

	_, err = AddDate(Date{2021, 1, 1}, 0, 0, 0, 1<<62, Constrain)
	assert.True(t, ir.IsRangeError(err))
}

func TestCompareDate(t *testing.T) {
	assert.Equal(t, 0, CompareDate(Date{2021, 1, 1}, Date{2021, 1, 1}))
	assert.Equal(t, -1, CompareDate(Date{2020, 12, 31}, Date{2021, 1, 1}))
	assert.Equal(t, 1, CompareDate(Date{2021, 2, 1}, Date{2021, 1, 31}))
}

func TestDifferenceDate(t *testing.T) {
	tests := []struct {
		name     string
		one, two Date
		largest  DifferenceUnit
		expected DateDifference
	}{
		{"same", Date{2021, 1, 1}, Date{2021, 1, 1}, UnitYear, DateDifference{}},
		{"one year", Date{2020, 1, 1}, Date{2021, 1, 1}, UnitYear, DateDifference{Years: 1}},
		{"one year as months", Date{2020, 1, 1}, Date{2021, 1, 1}, UnitMonth, DateDifference{Months: 12}},
		{"year and months", Date{2019, 11, 1}, Date{2021, 2, 1}, UnitYear, DateDifference{Years: 1, Months: 3}},
		{"backwards", Date{2021, 2, 1}, Date{2019, 11, 1}, UnitYear, DateDifference{Years: -1, Months: -3}},
		{"constrained end of month", Date{2021, 1, 31}, Date{2021, 2, 28}, UnitMonth, DateDifference{Months: 1}},
		{"end of month backwards", Date{2021, 3, 31}, Date{2021, 2, 28}, UnitMonth, DateDifference{Months: -1}},
		{"months with days", Date{2021, 1, 15}, Date{2021, 3, 20}, UnitMonth, DateDifference{Months: 2, Days: 5}},
		{"days", Date{2021, 1, 1}, Date{2021, 3, 1}, UnitDay, DateDifference{Days: 59}},
		{"weeks", Date{2021, 1, 1}, Date{2021, 3, 1}, UnitWeek, DateDifference{Weeks: 8, Days: 3}},
		{"negative weeks", Date{2021, 3, 1}, Date{2021, 1, 1}, UnitWeek, DateDifference{Weeks: -8, Days: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DifferenceDate(tt.one, tt.two, tt.largest))
		})
	}
}

func TestDifferenceDateAddsBack(t *testing.T) {
	dates := []Date{{2019, 1, 31}, {2020, 2, 29}, {2021, 7, 15}, {2022, 12, 1}}
	for _, a := range dates {
		for _, b := range dates {
			diff := DifferenceDate(a, b, UnitYear)
			got, err := AddDate(a, diff.Years, diff.Months, 0, diff.Days, Constrain)
			require.NoError(t, err)
			assert.Equal(t, b, got, "%v -> %v", a, b)
		}
	}
}

func TestPadYear(t *testing.T) {
	assert.Equal(t, "2021", PadYear(2021))
	assert.Equal(t, "0000", PadYear(0))
	assert.Equal(t, "0099", PadYear(99))
	assert.Equal(t, "9999", PadYear(9999))
	assert.Equal(t, "+010000", PadYear(10000))
	assert.Equal(t, "-000001", PadYear(-1))
	assert.Equal(t, "-271821", PadYear(-271821))
	assert.Equal(t, "+275760", PadYear(275760))
	assert.Equal(t, "2021-03-09", Date{2021, 3, 9}.String())
}

func TestTimeFromNanoseconds(t *testing.T) {
	days, tm := TimeFromNanoseconds(-1)
	assert.Equal(t, int64(-1), days)
	assert.Equal(t, Time{23, 59, 59, 999, 999, 999}, tm)

	days, tm = TimeFromNanoseconds(NsPerDay + 90*NsPerMinute + 5)
	assert.Equal(t, int64(1), days)
	assert.Equal(t, Time{Hour: 1, Minute: 30, Nanosecond: 5}, tm)
	assert.Equal(t, 90*NsPerMinute+5, tm.Nanoseconds())
	assert.Equal(t, "01:30:00.000000005", tm.String())
	assert.Equal(t, "12:00:00", Time{Hour: 12}.String())
}

func TestRegulateTime(t *testing.T) {
	got, err := RegulateTime(Time{Hour: 25, Minute: 61, Second: 60}, Constrain)
	require.NoError(t, err)
	assert.Equal(t, Time{Hour: 23, Minute: 59, Second: 59}, got)

	_, err = RegulateTime(Time{Hour: 24}, Reject)
	assert.True(t, ir.IsRangeError(err))
}
