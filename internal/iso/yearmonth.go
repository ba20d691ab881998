package iso

import (
	"math"

	"github.com/roach88/temporal/internal/ir"
)

// Year range of the representable domain.
const (
	MinYear = -271821
	MaxYear = 275760
)

// YearMonth is an ISO year-month before it is bound to a calendar.
type YearMonth struct {
	Year         int64
	Month        int64
	ReferenceDay int64
}

// RegulateYearMonth validates year and month under the given policy.
// Years outside the signed 32-bit range fail under either policy.
func RegulateYearMonth(year, month int64, overflow Overflow) (YearMonth, error) {
	if year < math.MinInt32 || year > math.MaxInt32 {
		return YearMonth{}, ir.NewRangeError(ir.ErrCodeInvalidYearMonth, "year %d is out of range", year)
	}

	switch overflow {
	case Reject:
		if month < 1 || month > 12 {
			return YearMonth{}, ir.NewRangeError(ir.ErrCodeInvalidYearMonth, "month %d is out of range", month)
		}
	default:
		month = clamp(month, 1, 12)
	}
	return YearMonth{Year: year, Month: month, ReferenceDay: 1}, nil
}

// YearMonthWithinLimits reports whether year-month lies in the representable domain.
func YearMonthWithinLimits(year, month int64) bool {
	if year < MinYear || year > MaxYear {
		return false
	}
	if year == MinYear && month < 4 {
		return false
	}
	if year == MaxYear && month > 9 {
		return false
	}
	return true
}

// BalanceYearMonth carries an arbitrary month into the year so the result
// has a month in [1, 12] and the same total month count.
func BalanceYearMonth(year, month int64) YearMonth {
	m := month - 1
	return YearMonth{
		Year:         year + floorDiv(m, 12),
		Month:        mod(m, 12) + 1,
		ReferenceDay: 1,
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int64) int64 {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

func clamp(v, lo, hi int64) int64 {
	return max(lo, min(v, hi))
}
