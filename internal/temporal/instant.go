package temporal

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/iso"
)

// Instant is an exact point in time: nanoseconds since the Unix epoch.
// The value is held as an immutable decimal; Instant may be copied freely.
type Instant struct {
	ns *apd.Decimal
}

// maxEpochNanoseconds is 10^8 days in nanoseconds.
var maxEpochNanoseconds = apd.New(864, 19)

// NewInstant validates epochNanoseconds against the representable range.
func NewInstant(epochNanoseconds *apd.Decimal) (Instant, error) {
	var abs apd.Decimal
	abs.Abs(epochNanoseconds)
	if abs.Cmp(maxEpochNanoseconds) > 0 {
		return Instant{}, ir.NewRangeError(ir.ErrCodeInvalidDateTime, "epoch nanoseconds %s are outside the representable range", epochNanoseconds.String())
	}

	var integral apd.Decimal
	if _, err := decimalContext(apd.RoundDown).RoundToIntegralValue(&integral, epochNanoseconds); err != nil {
		return Instant{}, err
	}
	if integral.Cmp(epochNanoseconds) != 0 {
		return Instant{}, ir.NewRangeError(ir.ErrCodeInvalidDateTime, "epoch nanoseconds %s are not an integer", epochNanoseconds.String())
	}
	return Instant{ns: &integral}, nil
}

// InstantFromEpochNanoseconds wraps an int64 epoch value. Every int64 is
// within range.
func InstantFromEpochNanoseconds(ns int64) Instant {
	return Instant{ns: apd.New(ns, 0)}
}

// EpochNanoseconds returns a copy of the epoch value.
func (i Instant) EpochNanoseconds() *apd.Decimal {
	var out apd.Decimal
	if i.ns != nil {
		out.Set(i.ns)
	}
	return &out
}

func (i Instant) decimal() *apd.Decimal {
	if i.ns == nil {
		return apd.New(0, 0)
	}
	return i.ns
}

// CompareInstant orders instants: -1, 0 or 1.
func CompareInstant(one, two Instant) int {
	return one.decimal().Cmp(two.decimal())
}

// AddNanoseconds returns the instant ns later, failing outside the range.
func (i Instant) AddNanoseconds(ns int64) (Instant, error) {
	var sum apd.Decimal
	if _, err := decimalContext(apd.RoundDown).Add(&sum, i.decimal(), apd.New(ns, 0)); err != nil {
		return Instant{}, err
	}
	return NewInstant(&sum)
}

// utcParts splits the instant into epoch days and nanoseconds of that day.
func (i Instant) utcParts() (int64, int64) {
	ctx := decimalContext(apd.RoundFloor)
	perDay := apd.New(iso.NsPerDay, 0)

	var days, rem apd.Decimal
	_, _ = ctx.QuoInteger(&days, i.decimal(), perDay)
	_, _ = ctx.Rem(&rem, i.decimal(), perDay)
	// QuoInteger truncates; move negative remainders into the previous day.
	if rem.Sign() < 0 {
		_, _ = ctx.Add(&rem, &rem, perDay)
		_, _ = ctx.Sub(&days, &days, apd.New(1, 0))
	}
	d, _ := days.Int64()
	r, _ := rem.Int64()
	return d, r
}

// UTCDateTime returns the ISO date and time of the instant in UTC.
func (i Instant) UTCDateTime() (iso.Date, iso.Time) {
	days, rem := i.utcParts()
	_, t := iso.TimeFromNanoseconds(rem)
	return iso.DateFromEpochDays(days), t
}

// String renders the instant in UTC with a Z designator.
func (i Instant) String() string {
	date, t := i.UTCDateTime()
	return date.String() + "T" + t.String() + "Z"
}

// GetUTCEpochNanoseconds returns the epoch nanoseconds of a wall-clock
// date-time read as UTC. The result may lie outside the instant range.
func GetUTCEpochNanoseconds(date iso.Date, t iso.Time) *apd.Decimal {
	ctx := decimalContext(apd.RoundDown)
	var out apd.Decimal
	_, _ = ctx.Mul(&out, apd.New(iso.EpochDays(date.Year, date.Month, date.Day), 0), apd.New(iso.NsPerDay, 0))
	_, _ = ctx.Add(&out, &out, apd.New(t.Nanoseconds(), 0))
	return &out
}

// ToTemporalInstant coerces an Instant or an ISO string with a Z or
// numeric offset.
func ToTemporalInstant(item any) (Instant, error) {
	switch v := item.(type) {
	case Instant:
		return v, nil
	case ir.IRString:
		return parseInstant(string(v))
	case string:
		return parseInstant(v)
	}
	return Instant{}, ir.NewTypeError(ir.ErrCodeInvalidOperand, "cannot convert %T to an instant", item)
}

func parseInstant(s string) (Instant, error) {
	parsed, err := ParseTemporalInstantString(s)
	if err != nil {
		return Instant{}, err
	}
	utc := GetUTCEpochNanoseconds(iso.Date{Year: parsed.Year, Month: parsed.Month, Day: parsed.Day}, parsed.Time)
	if parsed.HasOffset && !parsed.UTCDesignator {
		if _, err := decimalContext(apd.RoundDown).Sub(utc, utc, apd.New(parsed.OffsetNs, 0)); err != nil {
			return Instant{}, err
		}
	}
	return NewInstant(utc)
}
