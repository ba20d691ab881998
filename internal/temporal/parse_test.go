package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/iso"
)

func TestParseTemporalYearMonthString(t *testing.T) {
	tests := []struct {
		input    string
		year     int64
		month    int64
		day      int64
		calendar string
	}{
		{"2019-06", 2019, 6, 1, ""},
		{"201906", 2019, 6, 1, ""},
		{"+012345-06", 12345, 6, 1, ""},
		{"-000001-12", -1, 12, 1, ""},
		{"2019-06-30", 2019, 6, 30, ""},
		{"20190630", 2019, 6, 30, ""},
		{"2019-06[u-ca=iso8601]", 2019, 6, 1, "iso8601"},
		{"2019-06-15[u-ca=gregory]", 2019, 6, 15, "gregory"},
		{"2019-06-15T10:30:00+05:30[Asia/Kolkata]", 2019, 6, 15, ""},
		{"2019-06-15[foo=bar]", 2019, 6, 15, ""},
		{"2019-06-15[u-ca=iso8601][u-ca=gregory]", 2019, 6, 15, "iso8601"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			parsed, err := ParseTemporalYearMonthString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.year, parsed.Year)
			assert.Equal(t, tt.month, parsed.Month)
			assert.Equal(t, tt.day, parsed.Day)
			assert.Equal(t, tt.calendar, parsed.Calendar)
		})
	}
}

func TestParseTemporalYearMonthString_Rejects(t *testing.T) {
	tests := []struct {
		input string
		code  ir.ErrorCode
	}{
		{"", ir.ErrCodeInvalidString},
		{"2019-13", ir.ErrCodeInvalidString},
		{"2019-6", ir.ErrCodeInvalidString},
		{"-000000-01", ir.ErrCodeInvalidString},
		{"2019-02-30", ir.ErrCodeInvalidDate},
		{"2019-06-15T10:30Z", ir.ErrCodeInvalidString},
		{"2019-06[u-ca=gregory]", ir.ErrCodeInvalidString},
		{"2019-06-15[!foo=bar]", ir.ErrCodeInvalidString},
		{"2019-06-15[u-ca=iso8601][!u-ca=gregory]", ir.ErrCodeInvalidString},
		{"2019-06-15[u-ca=]", ir.ErrCodeInvalidString},
		{"2019-06-15 trailing", ir.ErrCodeInvalidString},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseTemporalYearMonthString(tt.input)
			require.Error(t, err)
			assert.True(t, ir.IsRangeError(err), "expected RangeError, got %v", err)
			assert.True(t, ir.HasCode(err, tt.code), "expected %s, got %v", tt.code, err)
		})
	}
}

func TestParseTemporalDateTimeString_Time(t *testing.T) {
	parsed, err := ParseTemporalDateTimeString("2019-06-15T10:30:45.123456789-08:00")
	require.NoError(t, err)

	assert.True(t, parsed.HasTime)
	assert.Equal(t, iso.Time{Hour: 10, Minute: 30, Second: 45, Millisecond: 123, Microsecond: 456, Nanosecond: 789}, parsed.Time)
	assert.True(t, parsed.HasOffset)
	assert.Equal(t, -8*iso.NsPerHour, parsed.OffsetNs)
}

func TestParseTemporalDateTimeString_LeapSecondConstrained(t *testing.T) {
	parsed, err := ParseTemporalDateTimeString("2016-12-31T23:59:60")
	require.NoError(t, err)
	assert.Equal(t, int64(59), parsed.Time.Second)
}

func TestParseTemporalMonthDayString(t *testing.T) {
	for _, input := range []string{"06-15", "--06-15", "0615", "2019-06-15"} {
		t.Run(input, func(t *testing.T) {
			parsed, err := ParseTemporalMonthDayString(input)
			require.NoError(t, err)
			assert.Equal(t, int64(6), parsed.Month)
			assert.Equal(t, int64(15), parsed.Day)
		})
	}

	_, err := ParseTemporalMonthDayString("02-30")
	assert.True(t, ir.HasCode(err, ir.ErrCodeInvalidDate))
}

func TestParseTemporalInstantString(t *testing.T) {
	parsed, err := ParseTemporalInstantString("2019-06-15T10:30:00Z")
	require.NoError(t, err)
	assert.True(t, parsed.UTCDesignator)

	_, err = ParseTemporalInstantString("2019-06-15T10:30:00")
	assert.True(t, ir.IsRangeError(err))

	_, err = ParseTemporalInstantString("2019-06-15")
	assert.True(t, ir.IsRangeError(err))
}

func TestParseTimeZoneOffsetString(t *testing.T) {
	tests := []struct {
		input string
		ns    int64
		ok    bool
	}{
		{"+05:30", 5*iso.NsPerHour + 30*iso.NsPerMinute, true},
		{"-0800", -8 * iso.NsPerHour, true},
		{"+00", 0, true},
		{"+01:02:03.5", iso.NsPerHour + 2*iso.NsPerMinute + 3*iso.NsPerSecond + 500*iso.NsPerMillisecond, true},
		{"+05:3", 0, false},
		{"+24:00", 0, false},
		{"05:30", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ns, ok := ParseTimeZoneOffsetString(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.ns, ns)
			}
		})
	}
}

func TestParseTemporalCalendarString(t *testing.T) {
	id, err := ParseTemporalCalendarString("iso8601")
	require.NoError(t, err)
	assert.Equal(t, "iso8601", id)

	id, err = ParseTemporalCalendarString("2019-06-15[u-ca=gregory]")
	require.NoError(t, err)
	assert.Equal(t, "gregory", id)

	id, err = ParseTemporalCalendarString("2019-06-15")
	require.NoError(t, err)
	assert.Equal(t, ISO8601, id)

	_, err = ParseTemporalCalendarString("not a calendar")
	assert.True(t, ir.HasCode(err, ir.ErrCodeInvalidCalendar))
}
