package temporal

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/iso"
)

// Duration is a signed span of calendar and clock units. All non-zero
// fields share one sign.
type Duration struct {
	Years        int64
	Months       int64
	Weeks        int64
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	Milliseconds int64
	Microseconds int64
	Nanoseconds  int64
}

// NewDuration builds a Duration, rejecting mixed signs.
func NewDuration(years, months, weeks, days, hours, minutes, seconds, milliseconds, microseconds, nanoseconds int64) (Duration, error) {
	d := Duration{
		Years: years, Months: months, Weeks: weeks, Days: days,
		Hours: hours, Minutes: minutes, Seconds: seconds,
		Milliseconds: milliseconds, Microseconds: microseconds, Nanoseconds: nanoseconds,
	}
	if err := d.validate(); err != nil {
		return Duration{}, err
	}
	return d, nil
}

func (d Duration) values() [10]int64 {
	return [10]int64{
		d.Years, d.Months, d.Weeks, d.Days, d.Hours, d.Minutes,
		d.Seconds, d.Milliseconds, d.Microseconds, d.Nanoseconds,
	}
}

func (d Duration) validate() error {
	s := 0
	for _, v := range d.values() {
		vs := sign64(v)
		if vs == 0 {
			continue
		}
		if s != 0 && vs != s {
			return ir.NewRangeError(ir.ErrCodeInvalidDuration, "duration fields must not have mixed signs")
		}
		s = vs
	}
	return nil
}

// Sign returns -1, 0 or 1.
func (d Duration) Sign() int {
	for _, v := range d.values() {
		if v != 0 {
			return sign64(v)
		}
	}
	return 0
}

// IsZero reports whether every field is zero.
func (d Duration) IsZero() bool { return d.Sign() == 0 }

// Negated returns the duration with every field negated.
func (d Duration) Negated() Duration {
	return Duration{
		Years: -d.Years, Months: -d.Months, Weeks: -d.Weeks, Days: -d.Days,
		Hours: -d.Hours, Minutes: -d.Minutes, Seconds: -d.Seconds,
		Milliseconds: -d.Milliseconds, Microseconds: -d.Microseconds, Nanoseconds: -d.Nanoseconds,
	}
}

// DateDuration returns only the years, months, weeks and days.
func (d Duration) DateDuration() Duration {
	return Duration{Years: d.Years, Months: d.Months, Weeks: d.Weeks, Days: d.Days}
}

// durationFieldNames are the property names of a duration, in the
// alphabetical order they are read from a property bag.
var durationFieldNames = []string{
	"days", "hours", "microseconds", "milliseconds", "minutes",
	"months", "nanoseconds", "seconds", "weeks", "years",
}

func (d *Duration) field(name string) *int64 {
	switch name {
	case "years":
		return &d.Years
	case "months":
		return &d.Months
	case "weeks":
		return &d.Weeks
	case "days":
		return &d.Days
	case "hours":
		return &d.Hours
	case "minutes":
		return &d.Minutes
	case "seconds":
		return &d.Seconds
	case "milliseconds":
		return &d.Milliseconds
	case "microseconds":
		return &d.Microseconds
	case "nanoseconds":
		return &d.Nanoseconds
	}
	return nil
}

// Fields returns the duration as a property bag.
func (d Duration) Fields() ir.IRObject {
	obj := make(ir.IRObject, len(durationFieldNames))
	for _, name := range durationFieldNames {
		obj[name] = ir.IRInt(*d.field(name))
	}
	return obj
}

// String renders the ISO 8601 duration form, folding sub-second units
// into fractional seconds. The zero duration is PT0S.
func (d Duration) String() string {
	abs := d
	if d.Sign() < 0 {
		abs = d.Negated()
	}

	var b strings.Builder
	if d.Sign() < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	writeUnit(&b, abs.Years, "Y")
	writeUnit(&b, abs.Months, "M")
	writeUnit(&b, abs.Weeks, "W")
	writeUnit(&b, abs.Days, "D")

	seconds := secondsString(abs)
	if abs.Hours != 0 || abs.Minutes != 0 || seconds != "" {
		b.WriteByte('T')
		writeUnit(&b, abs.Hours, "H")
		writeUnit(&b, abs.Minutes, "M")
		if seconds != "" {
			b.WriteString(seconds)
			b.WriteByte('S')
		}
	}
	if b.Len() == 1 || (b.Len() == 2 && d.Sign() < 0) {
		return "PT0S"
	}
	return b.String()
}

func writeUnit(b *strings.Builder, v int64, designator string) {
	if v == 0 {
		return
	}
	b.WriteString(strconv.FormatInt(v, 10))
	b.WriteString(designator)
}

// secondsString returns seconds plus sub-second units as a decimal with
// trailing fractional zeros removed, or "" when all are zero.
func secondsString(d Duration) string {
	if d.Seconds == 0 && d.Milliseconds == 0 && d.Microseconds == 0 && d.Nanoseconds == 0 {
		return ""
	}
	ctx := decimalContext(apd.RoundHalfEven)
	var total, part apd.Decimal
	total.SetInt64(d.Nanoseconds)
	for _, term := range []struct{ v, scale int64 }{
		{d.Microseconds, iso.NsPerMicrosecond},
		{d.Milliseconds, iso.NsPerMillisecond},
		{d.Seconds, iso.NsPerSecond},
	} {
		_, _ = ctx.Mul(&part, apd.New(term.v, 0), apd.New(term.scale, 0))
		_, _ = ctx.Add(&total, &total, &part)
	}

	var seconds apd.Decimal
	_, _ = ctx.Quo(&seconds, &total, apd.New(iso.NsPerSecond, 0))
	s := seconds.Text('f')
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

// ToTemporalDuration coerces item to a Duration. item may be a Duration,
// an ISO 8601 duration string or a property bag with at least one
// duration field.
func ToTemporalDuration(item any) (Duration, error) {
	switch v := item.(type) {
	case Duration:
		return v, v.validate()
	case *Duration:
		if v != nil {
			return *v, v.validate()
		}
	case ir.IRObject:
		return durationFromBag(v)
	case ir.IRString:
		return ParseTemporalDurationString(string(v))
	case string:
		return ParseTemporalDurationString(v)
	}
	return Duration{}, ir.NewTypeError(ir.ErrCodeInvalidOperand, "cannot convert %T to a duration", item)
}

func durationFromBag(bag ir.IRObject) (Duration, error) {
	var d Duration
	found := false
	for _, name := range durationFieldNames {
		v, ok := bag.Get(name)
		if !ok || v == nil {
			continue
		}
		n, err := ir.ToIntegerIfIntegral(v, name)
		if err != nil {
			return Duration{}, ir.NewRangeError(ir.ErrCodeInvalidDuration, "%s must be an integer", name)
		}
		*d.field(name) = n
		found = true
	}
	if !found {
		return Duration{}, ir.NewTypeError(ir.ErrCodeInvalidDuration, "duration property bag has no duration fields")
	}
	return d, d.validate()
}

// ParseTemporalDurationString parses [±]PnYnMnWnDTnHnMnS. Only the last
// time component present may carry a fraction of up to nine digits.
func ParseTemporalDurationString(s string) (Duration, error) {
	invalid := func() (Duration, error) {
		return Duration{}, ir.NewRangeError(ir.ErrCodeInvalidDuration, "%q is not a valid ISO 8601 duration", s)
	}

	p := &scanner{s: s}
	var sign int64 = 1
	switch {
	case p.accept('-'), p.acceptString("\u2212"):
		sign = -1
	default:
		p.accept('+')
	}
	if !p.accept('P') && !p.accept('p') {
		return invalid()
	}

	var d Duration
	dateUnits := []struct {
		designator byte
		field      *int64
	}{{'Y', &d.Years}, {'M', &d.Months}, {'W', &d.Weeks}, {'D', &d.Days}}
	timeUnits := []struct {
		designator byte
		field      *int64
		scale      int64
	}{{'H', &d.Hours, iso.NsPerHour}, {'M', &d.Minutes, iso.NsPerMinute}, {'S', &d.Seconds, iso.NsPerSecond}}

	components := 0
	next := 0
	for !p.eof() && p.peek() != 'T' && p.peek() != 't' {
		n, ok := p.integer()
		if !ok {
			return invalid()
		}
		c := upper(p.peek())
		p.pos++
		found := false
		for next < len(dateUnits) {
			unit := dateUnits[next]
			next++
			if unit.designator == c {
				*unit.field = n
				found = true
				break
			}
		}
		if !found {
			return invalid()
		}
		components++
	}

	var fractionNs int64
	fractional := false
	if p.accept('T') || p.accept('t') {
		timeComponents := 0
		next = 0
		for !p.eof() {
			if fractional {
				return invalid()
			}
			n, ok := p.integer()
			if !ok {
				return invalid()
			}
			frac, hasFraction, ok := p.fraction()
			if !ok {
				return invalid()
			}
			c := upper(p.peek())
			p.pos++
			found := false
			for next < len(timeUnits) {
				unit := timeUnits[next]
				next++
				if unit.designator == c {
					*unit.field = n
					if hasFraction {
						fractional = true
						fractionNs = scaleFraction(frac, unit.scale)
					}
					found = true
					break
				}
			}
			if !found {
				return invalid()
			}
			timeComponents++
		}
		if timeComponents == 0 {
			return invalid()
		}
		components += timeComponents
	}
	if components == 0 || !p.eof() {
		return invalid()
	}

	// The fraction spills into the units below the one it was written on.
	d.Minutes += fractionNs / iso.NsPerMinute
	fractionNs %= iso.NsPerMinute
	d.Seconds += fractionNs / iso.NsPerSecond
	fractionNs %= iso.NsPerSecond
	d.Milliseconds = fractionNs / iso.NsPerMillisecond
	d.Microseconds = fractionNs / iso.NsPerMicrosecond % 1000
	d.Nanoseconds = fractionNs % 1000

	if sign < 0 {
		d = d.Negated()
	}
	return d, nil
}

// scaleFraction converts a nine-digit fraction of a unit worth scale
// nanoseconds into nanoseconds, truncating.
func scaleFraction(frac, scale int64) int64 {
	return frac * (scale / iso.NsPerSecond)
}

// integer reads one or more ASCII digits.
func (p *scanner) integer() (int64, bool) {
	start := p.pos
	var v int64
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		digit := int64(p.peek() - '0')
		if v > (1<<63-1-digit)/10 {
			return 0, false
		}
		v = v*10 + digit
		p.pos++
	}
	return v, p.pos > start
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// BalanceTimeDuration folds days and clock units into the largest unit
// requested. For year, month, week or day the result carries days and
// clock units below a day; for smaller units everything collapses into
// that unit and below.
func BalanceTimeDuration(days, hours, minutes, seconds, milliseconds, microseconds, nanoseconds int64, largest Unit) (Duration, error) {
	ctx := decimalContext(apd.RoundDown)

	var total, part apd.Decimal
	total.SetInt64(nanoseconds)
	for _, term := range []struct{ v, scale int64 }{
		{microseconds, iso.NsPerMicrosecond},
		{milliseconds, iso.NsPerMillisecond},
		{seconds, iso.NsPerSecond},
		{minutes, iso.NsPerMinute},
		{hours, iso.NsPerHour},
		{days, iso.NsPerDay},
	} {
		if _, err := ctx.Mul(&part, apd.New(term.v, 0), apd.New(term.scale, 0)); err != nil {
			return Duration{}, err
		}
		if _, err := ctx.Add(&total, &total, &part); err != nil {
			return Duration{}, err
		}
	}

	negative := total.Sign() < 0
	total.Abs(&total)

	var d Duration
	scales := []unitScale{
		{&d.Days, iso.NsPerDay},
		{&d.Hours, iso.NsPerHour},
		{&d.Minutes, iso.NsPerMinute},
		{&d.Seconds, iso.NsPerSecond},
		{&d.Milliseconds, iso.NsPerMillisecond},
		{&d.Microseconds, iso.NsPerMicrosecond},
	}
	switch {
	case largest <= UnitDay:
	case largest <= UnitMicrosecond:
		scales = scales[largest-UnitDay:]
	default:
		scales = nil
	}

	var quotient apd.Decimal
	for _, s := range scales {
		divisor := apd.New(s.scale, 0)
		if _, err := ctx.QuoInteger(&quotient, &total, divisor); err != nil {
			return Duration{}, err
		}
		if _, err := ctx.Rem(&total, &total, divisor); err != nil {
			return Duration{}, err
		}
		n, err := quotient.Int64()
		if err != nil {
			return Duration{}, ir.NewRangeError(ir.ErrCodeInvalidDuration, "duration is out of range")
		}
		*s.field = n
	}
	n, err := total.Int64()
	if err != nil {
		return Duration{}, ir.NewRangeError(ir.ErrCodeInvalidDuration, "duration is out of range")
	}
	d.Nanoseconds = n

	if negative {
		d = d.Negated()
	}
	return d, nil
}

type unitScale struct {
	field *int64
	scale int64
}

func sign64(v int64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
