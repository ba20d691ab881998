package iso

import (
	"fmt"

	"github.com/roach88/temporal/internal/ir"
)

// Epoch-day bounds of the representable date domain.
// Day 0 is 1970-01-01; 275760-09-13 is day 10^8.
const (
	MinEpochDays = -100_000_001
	MaxEpochDays = 100_000_000
)

// Magnitudes past which a date sum cannot land in the representable domain.
// They keep intermediate arithmetic clear of int64 overflow.
const (
	maxYearsDelta  = 1_000_000_000
	maxMonthsDelta = 12 * maxYearsDelta
	maxDaysDelta   = 1_000_000_000_000
)

// Date is a proleptic ISO calendar date. The zero value is not a valid date.
type Date struct {
	Year  int64
	Month int64
	Day   int64
}

// String renders the date as ±YYYYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%s-%02d-%02d", PadYear(d.Year), d.Month, d.Day)
}

// YearMonth returns the date's year and month with the date's day as reference day.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Year, Month: d.Month, ReferenceDay: d.Day}
}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian calendar.
func IsLeapYear(year int64) bool {
	if year%4 != 0 {
		return false
	}
	if year%100 != 0 {
		return true
	}
	return year%400 == 0
}

// DaysInYear returns 366 for leap years, otherwise 365.
func DaysInYear(year int64) int64 {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in month of year.
// month must be in [1, 12].
func DaysInMonth(year, month int64) int64 {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	}
	if IsLeapYear(year) {
		return 29
	}
	return 28
}

// IsValidDate reports whether (year, month, day) names a real calendar date.
func IsValidDate(year, month, day int64) bool {
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= DaysInMonth(year, month)
}

// RegulateDate validates a date under the given policy.
// Constrain clamps month into [1, 12] and then day into the month.
func RegulateDate(year, month, day int64, overflow Overflow) (Date, error) {
	if overflow == Reject {
		if !IsValidDate(year, month, day) {
			return Date{}, ir.NewRangeError(ir.ErrCodeInvalidDate, "%s-%02d-%02d is not a valid date", PadYear(year), month, day)
		}
		return Date{Year: year, Month: month, Day: day}, nil
	}

	month = clamp(month, 1, 12)
	day = clamp(day, 1, DaysInMonth(year, month))
	return Date{Year: year, Month: month, Day: day}, nil
}

// DateWithinLimits reports whether a valid date lies in the representable domain.
func DateWithinLimits(year, month, day int64) bool {
	if year < MinYear || year > MaxYear {
		return false
	}
	days := EpochDays(year, month, day)
	return days >= MinEpochDays && days <= MaxEpochDays
}

// EpochDays returns the number of days from 1970-01-01 to the given date.
// Out-of-range months and days are accepted and counted arithmetically
// relative to a balanced month.
func EpochDays(year, month, day int64) int64 {
	ym := BalanceYearMonth(year, month)
	y, m := ym.Year, ym.Month
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// DateFromEpochDays is the inverse of EpochDays.
func DateFromEpochDays(days int64) Date {
	z := days + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return Date{Year: y, Month: m, Day: d}
}

// BalanceDate normalizes an arbitrary (year, month, day) triple.
func BalanceDate(year, month, day int64) Date {
	return DateFromEpochDays(EpochDays(year, month, day))
}

// AddDate adds years and months first, regulates the intermediate day
// under overflow, then adds weeks and days.
func AddDate(d Date, years, months, weeks, days int64, overflow Overflow) (Date, error) {
	if absInt(years) > maxYearsDelta || absInt(months) > maxMonthsDelta ||
		absInt(weeks) > maxDaysDelta/7 || absInt(days) > maxDaysDelta {
		return Date{}, ir.NewRangeError(ir.ErrCodeInvalidDate, "date arithmetic result is out of range")
	}

	intermediate := BalanceYearMonth(d.Year+years, d.Month+months)
	regulated, err := RegulateDate(intermediate.Year, intermediate.Month, d.Day, overflow)
	if err != nil {
		return Date{}, err
	}
	return BalanceDate(regulated.Year, regulated.Month, regulated.Day+days+7*weeks), nil
}

// CompareDate returns -1, 0 or 1 as a is before, equal to, or after b.
func CompareDate(a, b Date) int {
	switch {
	case a.Year != b.Year:
		return sign(a.Year - b.Year)
	case a.Month != b.Month:
		return sign(a.Month - b.Month)
	default:
		return sign(a.Day - b.Day)
	}
}

// DateDifference is the result of DifferenceDate.
type DateDifference struct {
	Years  int64
	Months int64
	Weeks  int64
	Days   int64
}

// DifferenceUnit is the largest unit DifferenceDate balances into.
type DifferenceUnit int

const (
	UnitYear DifferenceUnit = iota
	UnitMonth
	UnitWeek
	UnitDay
)

// DifferenceDate computes the calendar difference from one to two.
//
// For year and month units the result counts whole months first, measured
// by constrained addition from one, then the leftover days. For week and
// day units it is the plain epoch-day distance.
func DifferenceDate(one, two Date, largest DifferenceUnit) DateDifference {
	if largest == UnitWeek || largest == UnitDay {
		days := EpochDays(two.Year, two.Month, two.Day) - EpochDays(one.Year, one.Month, one.Day)
		var weeks int64
		if largest == UnitWeek {
			weeks = days / 7
			days %= 7
		}
		return DateDifference{Weeks: weeks, Days: days}
	}

	sgn := int64(-CompareDate(one, two))
	if sgn == 0 {
		return DateDifference{}
	}

	result := func(years, months, days int64) DateDifference {
		if largest == UnitMonth {
			return DateDifference{Months: months + years*12, Days: days}
		}
		return DateDifference{Years: years, Months: months, Days: days}
	}

	years := two.Year - one.Year
	mid := addConstrained(one, years, 0)
	midSign := int64(-CompareDate(mid, two))
	if midSign == 0 {
		return result(years, 0, 0)
	}

	months := two.Month - one.Month
	if midSign != sgn {
		years -= sgn
		months += sgn * 12
	}
	mid = addConstrained(one, years, months)
	midSign = int64(-CompareDate(mid, two))
	if midSign == 0 {
		return result(years, months, 0)
	}

	if midSign != sgn {
		months -= sgn
		if months == -sgn {
			years -= sgn
			months = 11 * sgn
		}
		mid = addConstrained(one, years, months)
	}

	var days int64
	switch {
	case mid.Month == two.Month:
		days = two.Day - mid.Day
	case sgn < 0:
		days = -mid.Day - (DaysInMonth(two.Year, two.Month) - two.Day)
	default:
		days = two.Day + (DaysInMonth(mid.Year, mid.Month) - mid.Day)
	}
	return result(years, months, days)
}

func addConstrained(d Date, years, months int64) Date {
	ym := BalanceYearMonth(d.Year+years, d.Month+months)
	return Date{Year: ym.Year, Month: ym.Month, Day: min(d.Day, DaysInMonth(ym.Year, ym.Month))}
}

// PadYear renders year with at least four digits; years outside
// [0, 9999] get a mandatory sign and six digits.
func PadYear(year int64) string {
	if year >= 0 && year <= 9999 {
		return fmt.Sprintf("%04d", year)
	}
	if year < 0 {
		return fmt.Sprintf("-%06d", -year)
	}
	return fmt.Sprintf("+%06d", year)
}

func sign(v int64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func absInt(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
