package iso

import (
	"fmt"
	"strings"

	"github.com/roach88/temporal/internal/ir"
)

// Nanosecond multiples of the wall-clock units.
const (
	NsPerMicrosecond int64 = 1_000
	NsPerMillisecond int64 = 1_000_000
	NsPerSecond      int64 = 1_000_000_000
	NsPerMinute      int64 = 60 * NsPerSecond
	NsPerHour        int64 = 60 * NsPerMinute
	NsPerDay         int64 = 24 * NsPerHour
)

// Time is a wall-clock time of day.
type Time struct {
	Hour        int64
	Minute      int64
	Second      int64
	Millisecond int64
	Microsecond int64
	Nanosecond  int64
}

// IsValidTime reports whether every field is within its unit's range.
func IsValidTime(t Time) bool {
	return t.Hour >= 0 && t.Hour <= 23 &&
		t.Minute >= 0 && t.Minute <= 59 &&
		t.Second >= 0 && t.Second <= 59 &&
		t.Millisecond >= 0 && t.Millisecond <= 999 &&
		t.Microsecond >= 0 && t.Microsecond <= 999 &&
		t.Nanosecond >= 0 && t.Nanosecond <= 999
}

// RegulateTime validates or clamps each field under the given policy.
func RegulateTime(t Time, overflow Overflow) (Time, error) {
	if overflow == Reject {
		if !IsValidTime(t) {
			return Time{}, ir.NewRangeError(ir.ErrCodeInvalidDateTime, "time %02d:%02d:%02d is out of range", t.Hour, t.Minute, t.Second)
		}
		return t, nil
	}
	return Time{
		Hour:        clamp(t.Hour, 0, 23),
		Minute:      clamp(t.Minute, 0, 59),
		Second:      clamp(t.Second, 0, 59),
		Millisecond: clamp(t.Millisecond, 0, 999),
		Microsecond: clamp(t.Microsecond, 0, 999),
		Nanosecond:  clamp(t.Nanosecond, 0, 999),
	}, nil
}

// Nanoseconds returns the time as nanoseconds since midnight.
func (t Time) Nanoseconds() int64 {
	return t.Hour*NsPerHour + t.Minute*NsPerMinute + t.Second*NsPerSecond +
		t.Millisecond*NsPerMillisecond + t.Microsecond*NsPerMicrosecond + t.Nanosecond
}

// TimeFromNanoseconds balances a nanosecond count into a time of day plus a
// whole-day carry. Negative counts borrow from the previous day.
func TimeFromNanoseconds(ns int64) (days int64, t Time) {
	days = floorDiv(ns, NsPerDay)
	rem := mod(ns, NsPerDay)
	t.Hour = rem / NsPerHour
	rem %= NsPerHour
	t.Minute = rem / NsPerMinute
	rem %= NsPerMinute
	t.Second = rem / NsPerSecond
	rem %= NsPerSecond
	t.Millisecond = rem / NsPerMillisecond
	rem %= NsPerMillisecond
	t.Microsecond = rem / NsPerMicrosecond
	t.Nanosecond = rem % NsPerMicrosecond
	return days, t
}

// String renders HH:MM:SS[.fffffffff] with trailing fraction zeros dropped.
func (t Time) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	frac := t.Millisecond*NsPerMillisecond + t.Microsecond*NsPerMicrosecond + t.Nanosecond
	if frac != 0 {
		b.WriteByte('.')
		b.WriteString(strings.TrimRight(fmt.Sprintf("%09d", frac), "0"))
	}
	return b.String()
}
