package temporal

import (
	"slices"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/iso"
)

// GetOptionsObject returns options as a property bag. Undefined yields an
// empty bag; anything other than an object is a TypeError.
func GetOptionsObject(options ir.IRValue) (ir.IRObject, error) {
	switch v := options.(type) {
	case nil:
		return ir.IRObject{}, nil
	case ir.IRObject:
		if v == nil {
			return ir.IRObject{}, nil
		}
		return v, nil
	}
	return nil, ir.NewTypeError(ir.ErrCodeInvalidOption, "options must be an object, got %s", ir.ToString(options))
}

// getStringOption reads a string-valued option, converting non-strings
// with ToString and validating against allowed.
func getStringOption(options ir.IRObject, name string, allowed []string, fallback string) (string, error) {
	v, ok := options.Get(name)
	if !ok || v == nil {
		return fallback, nil
	}
	s := ir.ToString(v)
	if !slices.Contains(allowed, s) {
		return "", ir.NewRangeError(ir.ErrCodeInvalidOption, "%q is not a valid value for %s", s, name)
	}
	return s, nil
}

// ToTemporalOverflow reads the overflow option; undefined options mean constrain.
func ToTemporalOverflow(options ir.IRObject) (iso.Overflow, error) {
	if options == nil {
		return iso.Constrain, nil
	}
	s, err := getStringOption(options, "overflow", []string{"constrain", "reject"}, "constrain")
	if err != nil {
		return iso.Constrain, err
	}
	return iso.ParseOverflow(s)
}

// ShowCalendar controls whether string forms carry a calendar annotation.
type ShowCalendar string

const (
	ShowCalendarAuto     ShowCalendar = "auto"
	ShowCalendarAlways   ShowCalendar = "always"
	ShowCalendarNever    ShowCalendar = "never"
	ShowCalendarCritical ShowCalendar = "critical"
)

// ToShowCalendarOption reads the calendarName option.
func ToShowCalendarOption(options ir.IRObject) (ShowCalendar, error) {
	s, err := getStringOption(options, "calendarName", []string{"auto", "always", "never", "critical"}, "auto")
	return ShowCalendar(s), err
}

// Disambiguation selects among the instants a wall-clock time may denote.
type Disambiguation string

const (
	DisambiguationCompatible Disambiguation = "compatible"
	DisambiguationEarlier    Disambiguation = "earlier"
	DisambiguationLater      Disambiguation = "later"
	DisambiguationReject     Disambiguation = "reject"
)

// ToTemporalDisambiguation reads the disambiguation option.
func ToTemporalDisambiguation(options ir.IRObject) (Disambiguation, error) {
	s, err := getStringOption(options, "disambiguation", []string{"compatible", "earlier", "later", "reject"}, "compatible")
	return Disambiguation(s), err
}

// RoundingMode is a rounding mode for duration rounding.
type RoundingMode string

const (
	RoundingModeCeil       RoundingMode = "ceil"
	RoundingModeFloor      RoundingMode = "floor"
	RoundingModeExpand     RoundingMode = "expand"
	RoundingModeTrunc      RoundingMode = "trunc"
	RoundingModeHalfCeil   RoundingMode = "halfCeil"
	RoundingModeHalfFloor  RoundingMode = "halfFloor"
	RoundingModeHalfExpand RoundingMode = "halfExpand"
	RoundingModeHalfTrunc  RoundingMode = "halfTrunc"
	RoundingModeHalfEven   RoundingMode = "halfEven"
)

var roundingModes = []string{
	string(RoundingModeCeil), string(RoundingModeFloor), string(RoundingModeExpand),
	string(RoundingModeTrunc), string(RoundingModeHalfCeil), string(RoundingModeHalfFloor),
	string(RoundingModeHalfExpand), string(RoundingModeHalfTrunc), string(RoundingModeHalfEven),
}

// ToTemporalRoundingMode reads the roundingMode option.
func ToTemporalRoundingMode(options ir.IRObject, fallback RoundingMode) (RoundingMode, error) {
	s, err := getStringOption(options, "roundingMode", roundingModes, string(fallback))
	return RoundingMode(s), err
}

// Negate returns the mode that rounds a negated value to the negation
// of this mode's result.
func (m RoundingMode) Negate() RoundingMode {
	switch m {
	case RoundingModeCeil:
		return RoundingModeFloor
	case RoundingModeFloor:
		return RoundingModeCeil
	case RoundingModeHalfCeil:
		return RoundingModeHalfFloor
	case RoundingModeHalfFloor:
		return RoundingModeHalfCeil
	}
	return m
}

// Maximum rounding increment accepted by ToTemporalRoundingIncrement.
const maxRoundingIncrement = 1_000_000_000

// ToTemporalRoundingIncrement reads the roundingIncrement option.
func ToTemporalRoundingIncrement(options ir.IRObject) (int64, error) {
	v, ok := options.Get("roundingIncrement")
	if !ok || v == nil {
		return 1, nil
	}
	n, err := ir.ToIntegerWithTruncation(v, "roundingIncrement")
	if err != nil {
		return 0, err
	}
	if n < 1 || n > maxRoundingIncrement {
		return 0, ir.NewRangeError(ir.ErrCodeInvalidOption, "roundingIncrement %d is out of range", n)
	}
	return n, nil
}

// Unit is a duration unit, ordered from largest to smallest.
type Unit int

const (
	UnitYear Unit = iota
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
	UnitMillisecond
	UnitMicrosecond
	UnitNanosecond

	// UnitAuto defers the choice to the operation.
	UnitAuto Unit = -1
)

var unitNames = [...]string{
	UnitYear:        "year",
	UnitMonth:       "month",
	UnitWeek:        "week",
	UnitDay:         "day",
	UnitHour:        "hour",
	UnitMinute:      "minute",
	UnitSecond:      "second",
	UnitMillisecond: "millisecond",
	UnitMicrosecond: "microsecond",
	UnitNanosecond:  "nanosecond",
}

// String returns the singular unit name.
func (u Unit) String() string {
	if u == UnitAuto {
		return "auto"
	}
	return unitNames[u]
}

// LargerUnit returns the larger of a and b.
func LargerUnit(a, b Unit) Unit {
	return min(a, b)
}

// UnitGroup restricts which units an option accepts.
type UnitGroup int

const (
	UnitGroupDate UnitGroup = iota
	UnitGroupTime
	UnitGroupDateTime
)

func (g UnitGroup) contains(u Unit) bool {
	switch g {
	case UnitGroupDate:
		return u <= UnitDay
	case UnitGroupTime:
		return u >= UnitHour
	}
	return true
}

// GetTemporalUnit reads a unit option, accepting singular and plural names.
// fallback may be UnitAuto, which is then also an accepted value.
func GetTemporalUnit(options ir.IRObject, key string, group UnitGroup, fallback Unit) (Unit, error) {
	v, ok := options.Get(key)
	if !ok || v == nil {
		return fallback, nil
	}
	s := ir.ToString(v)
	if s == "auto" && fallback == UnitAuto {
		return UnitAuto, nil
	}
	for u := UnitYear; u <= UnitNanosecond; u++ {
		if !group.contains(u) {
			continue
		}
		if s == u.String() || s == u.String()+"s" {
			return u, nil
		}
	}
	return UnitAuto, ir.NewRangeError(ir.ErrCodeInvalidOption, "%q is not a valid value for %s", s, key)
}

// DifferenceOperation selects the direction of a difference.
type DifferenceOperation int

const (
	DifferenceUntil DifferenceOperation = iota
	DifferenceSince
)

// String returns "until" or "since".
func (op DifferenceOperation) String() string {
	if op == DifferenceSince {
		return "since"
	}
	return "until"
}

// DifferenceSettings are the resolved rounding options of a difference.
type DifferenceSettings struct {
	LargestUnit       Unit
	SmallestUnit      Unit
	RoundingIncrement int64
	RoundingMode      RoundingMode
}

// GetDifferenceSettings reads largestUnit, roundingIncrement, roundingMode
// and smallestUnit, in that order. since negates the rounding mode.
// largestUnit auto resolves to the larger of defaultLargest and the
// smallest unit.
func GetDifferenceSettings(op DifferenceOperation, options ir.IRObject, group UnitGroup, disallowed []Unit, fallbackSmallest, defaultLargest Unit) (DifferenceSettings, error) {
	largest, err := GetTemporalUnit(options, "largestUnit", group, UnitAuto)
	if err != nil {
		return DifferenceSettings{}, err
	}
	if slices.Contains(disallowed, largest) {
		return DifferenceSettings{}, ir.NewRangeError(ir.ErrCodeInvalidOption, "largestUnit %s is not allowed", largest)
	}

	increment, err := ToTemporalRoundingIncrement(options)
	if err != nil {
		return DifferenceSettings{}, err
	}

	mode, err := ToTemporalRoundingMode(options, RoundingModeTrunc)
	if err != nil {
		return DifferenceSettings{}, err
	}
	if op == DifferenceSince {
		mode = mode.Negate()
	}

	smallest, err := GetTemporalUnit(options, "smallestUnit", group, fallbackSmallest)
	if err != nil {
		return DifferenceSettings{}, err
	}
	if slices.Contains(disallowed, smallest) {
		return DifferenceSettings{}, ir.NewRangeError(ir.ErrCodeInvalidOption, "smallestUnit %s is not allowed", smallest)
	}

	if largest == UnitAuto {
		largest = LargerUnit(defaultLargest, smallest)
	}
	if LargerUnit(largest, smallest) != largest {
		return DifferenceSettings{}, ir.NewRangeError(ir.ErrCodeInvalidOption, "largestUnit %s is smaller than smallestUnit %s", largest, smallest)
	}
	if err := validateRoundingIncrement(increment, smallest); err != nil {
		return DifferenceSettings{}, err
	}

	return DifferenceSettings{
		LargestUnit:       largest,
		SmallestUnit:      smallest,
		RoundingIncrement: increment,
		RoundingMode:      mode,
	}, nil
}

// validateRoundingIncrement requires time-unit increments to divide the
// next larger unit evenly. Date units have no maximum.
func validateRoundingIncrement(increment int64, unit Unit) error {
	var maximum int64
	switch unit {
	case UnitHour:
		maximum = 24
	case UnitMinute, UnitSecond:
		maximum = 60
	case UnitMillisecond, UnitMicrosecond, UnitNanosecond:
		maximum = 1000
	default:
		return nil
	}
	if increment >= maximum || maximum%increment != 0 {
		return ir.NewRangeError(ir.ErrCodeInvalidOption, "roundingIncrement %d is invalid for %s", increment, unit)
	}
	return nil
}
