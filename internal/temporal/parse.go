package temporal

import (
	"strings"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/iso"
)

// ParsedDateTime is the result of parsing an ISO 8601 / RFC 9557 string.
type ParsedDateTime struct {
	Year  int64
	Month int64
	Day   int64

	HasTime bool
	Time    iso.Time

	// UTCDesignator is set for a trailing Z.
	UTCDesignator bool
	// HasOffset is set for a numeric UTC offset; OffsetNs holds its value.
	HasOffset bool
	OffsetNs  int64

	// TimeZone is the bracketed time zone annotation, if any.
	TimeZone string
	// Calendar is the u-ca annotation value, if any.
	Calendar string
}

type parseMode int

const (
	parseModeDateTime parseMode = iota
	parseModeYearMonth
	parseModeMonthDay
	parseModeInstant
	parseModeAny
)

func invalidString(s string) error {
	return ir.NewRangeError(ir.ErrCodeInvalidString, "%q is not a valid ISO 8601 string", s)
}

// ParseTemporalYearMonthString parses YYYY-MM, YYYYMM, or a full date or
// date-time, each with optional annotations. Offsets are allowed only after
// a time; the UTC designator is rejected. A year-month-only string may not
// carry a non-ISO calendar. The resulting Day is 1 when no day was given.
func ParseTemporalYearMonthString(s string) (ParsedDateTime, error) {
	return parseISODateTime(s, parseModeYearMonth)
}

// ParseTemporalDateTimeString parses a date with an optional time.
func ParseTemporalDateTimeString(s string) (ParsedDateTime, error) {
	return parseISODateTime(s, parseModeDateTime)
}

// ParseTemporalMonthDayString parses MM-DD, --MM-DD, MMDD or a full date.
func ParseTemporalMonthDayString(s string) (ParsedDateTime, error) {
	return parseISODateTime(s, parseModeMonthDay)
}

// ParseTemporalInstantString parses a date-time with a Z or numeric offset.
func ParseTemporalInstantString(s string) (ParsedDateTime, error) {
	return parseISODateTime(s, parseModeInstant)
}

func parseISODateTime(s string, mode parseMode) (ParsedDateTime, error) {
	result, err := parseFullDateTime(s)
	if err != nil {
		if mode == parseModeYearMonth || mode == parseModeAny {
			if ym, ymErr := parseYearMonthOnly(s); ymErr == nil {
				return ym, nil
			} else if !ir.HasCode(ymErr, ir.ErrCodeInvalidString) {
				return ParsedDateTime{}, ymErr
			}
		}
		if mode == parseModeMonthDay || mode == parseModeAny {
			if md, mdErr := parseMonthDayOnly(s); mdErr == nil {
				return md, nil
			} else if !ir.HasCode(mdErr, ir.ErrCodeInvalidString) {
				return ParsedDateTime{}, mdErr
			}
		}
		return ParsedDateTime{}, err
	}

	switch mode {
	case parseModeInstant:
		if !result.HasTime || (!result.UTCDesignator && !result.HasOffset) {
			return ParsedDateTime{}, ir.NewRangeError(ir.ErrCodeInvalidString, "%q has no UTC offset", s)
		}
	case parseModeAny:
	default:
		if result.UTCDesignator {
			return ParsedDateTime{}, ir.NewRangeError(ir.ErrCodeInvalidString, "%q: Z designator is not allowed", s)
		}
	}
	return result, nil
}

func parseFullDateTime(s string) (ParsedDateTime, error) {
	p := &scanner{s: s}
	var result ParsedDateTime

	year, ok := p.year()
	if !ok {
		return result, invalidString(s)
	}
	extended := p.accept('-')
	month, ok := p.digits(2)
	if !ok {
		return result, invalidString(s)
	}
	if extended && !p.accept('-') {
		return result, invalidString(s)
	}
	day, ok := p.digits(2)
	if !ok || month < 1 || month > 12 || day < 1 || day > 31 {
		return result, invalidString(s)
	}
	result.Year, result.Month, result.Day = year, month, day

	if c := p.peek(); c == 'T' || c == 't' || c == ' ' {
		p.pos++
		t, ok := p.timeSpec()
		if !ok {
			return result, invalidString(s)
		}
		result.HasTime, result.Time = true, t

		switch p.peek() {
		case 'Z', 'z':
			p.pos++
			result.UTCDesignator = true
		case '+', '-':
			ns, ok := p.offset()
			if !ok {
				return result, invalidString(s)
			}
			result.HasOffset, result.OffsetNs = true, ns
		}
	}

	if err := p.annotations(&result, true); err != nil {
		return result, err
	}
	if !p.eof() {
		return result, invalidString(s)
	}
	if !iso.IsValidDate(result.Year, result.Month, result.Day) {
		return result, ir.NewRangeError(ir.ErrCodeInvalidDate, "%q is not a valid date", s)
	}
	return result, nil
}

func parseYearMonthOnly(s string) (ParsedDateTime, error) {
	p := &scanner{s: s}
	year, ok := p.year()
	if !ok {
		return ParsedDateTime{}, invalidString(s)
	}
	p.accept('-')
	month, ok := p.digits(2)
	if !ok || month < 1 || month > 12 {
		return ParsedDateTime{}, invalidString(s)
	}
	result := ParsedDateTime{Year: year, Month: month, Day: 1}
	if err := p.annotations(&result, true); err != nil {
		return result, err
	}
	if !p.eof() {
		return result, invalidString(s)
	}
	if result.Calendar != "" && strings.ToLower(result.Calendar) != ISO8601 {
		return result, ir.NewRangeError(ir.ErrCodeInvalidString, "%q: a year-month string without a day requires the ISO 8601 calendar", s)
	}
	return result, nil
}

func parseMonthDayOnly(s string) (ParsedDateTime, error) {
	p := &scanner{s: s}
	p.acceptString("--")
	month, ok := p.digits(2)
	if !ok {
		return ParsedDateTime{}, invalidString(s)
	}
	p.accept('-')
	day, ok := p.digits(2)
	if !ok || month < 1 || month > 12 || day < 1 || day > 31 {
		return ParsedDateTime{}, invalidString(s)
	}
	result := ParsedDateTime{Year: ReferenceISOYear, Month: month, Day: day}
	if err := p.annotations(&result, true); err != nil {
		return result, err
	}
	if !p.eof() {
		return result, invalidString(s)
	}
	if result.Calendar != "" && strings.ToLower(result.Calendar) != ISO8601 {
		return result, ir.NewRangeError(ir.ErrCodeInvalidString, "%q: a month-day string without a year requires the ISO 8601 calendar", s)
	}
	if !iso.IsValidDate(ReferenceISOYear, month, day) {
		return result, ir.NewRangeError(ir.ErrCodeInvalidDate, "%q is not a valid month-day", s)
	}
	return result, nil
}

// ParseTimeZoneOffsetString parses ±HH[:MM[:SS[.fffffffff]]] or the basic
// form without colons, returning nanoseconds.
func ParseTimeZoneOffsetString(s string) (int64, bool) {
	p := &scanner{s: s}
	ns, ok := p.offset()
	if !ok || !p.eof() {
		return 0, false
	}
	return ns, true
}

type scanner struct {
	s   string
	pos int
}

func (p *scanner) eof() bool { return p.pos >= len(p.s) }

func (p *scanner) peek() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.pos]
}

func (p *scanner) accept(c byte) bool {
	if p.peek() == c {
		p.pos++
		return true
	}
	return false
}

func (p *scanner) acceptString(lit string) bool {
	if strings.HasPrefix(p.s[p.pos:], lit) {
		p.pos += len(lit)
		return true
	}
	return false
}

// digits reads exactly n ASCII digits.
func (p *scanner) digits(n int) (int64, bool) {
	if p.pos+n > len(p.s) {
		return 0, false
	}
	var v int64
	for i := 0; i < n; i++ {
		c := p.s[p.pos+i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int64(c-'0')
	}
	p.pos += n
	return v, true
}

// fraction reads [.,] followed by 1 to 9 digits and returns nanoseconds.
func (p *scanner) fraction() (int64, bool, bool) {
	c := p.peek()
	if c != '.' && c != ',' {
		return 0, false, true
	}
	p.pos++
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	n := p.pos - start
	if n == 0 || n > 9 {
		return 0, true, false
	}
	var v int64
	for i := 0; i < 9; i++ {
		v *= 10
		if i < n {
			v += int64(p.s[start+i] - '0')
		}
	}
	return v, true, true
}

// year reads a four-digit year or a signed six-digit year. -000000 is invalid.
func (p *scanner) year() (int64, bool) {
	switch c := p.peek(); c {
	case '+', '-':
		p.pos++
		v, ok := p.digits(6)
		if !ok {
			return 0, false
		}
		if c == '-' {
			if v == 0 {
				return 0, false
			}
			v = -v
		}
		return v, true
	}
	return p.digits(4)
}

func (p *scanner) timeSpec() (iso.Time, bool) {
	var t iso.Time
	hour, ok := p.digits(2)
	if !ok || hour > 23 {
		return t, false
	}
	t.Hour = hour

	extended := p.accept(':')
	minute, ok := p.digits(2)
	if !ok {
		if extended {
			return t, false
		}
		return t, true
	}
	if minute > 59 {
		return t, false
	}
	t.Minute = minute

	if extended && !p.accept(':') {
		return t, true
	}
	second, ok := p.digits(2)
	if !ok {
		return t, !extended
	}
	if second > 60 {
		return t, false
	}
	t.Second = min(second, 59)

	frac, present, ok := p.fraction()
	if !ok {
		return t, false
	}
	if present {
		t.Millisecond = frac / iso.NsPerMillisecond
		t.Microsecond = frac / iso.NsPerMicrosecond % 1000
		t.Nanosecond = frac % 1000
	}
	return t, true
}

func (p *scanner) offset() (int64, bool) {
	var sign int64 = 1
	switch p.peek() {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, false
	}
	p.pos++

	hours, ok := p.digits(2)
	if !ok || hours > 23 {
		return 0, false
	}
	total := hours * iso.NsPerHour

	extended := p.accept(':')
	minutes, ok := p.digits(2)
	if !ok {
		return sign * total, !extended
	}
	if minutes > 59 {
		return 0, false
	}
	total += minutes * iso.NsPerMinute

	if extended && !p.accept(':') {
		return sign * total, true
	}
	seconds, ok := p.digits(2)
	if !ok {
		return sign * total, !extended
	}
	if seconds > 59 {
		return 0, false
	}
	total += seconds * iso.NsPerSecond

	frac, _, ok := p.fraction()
	if !ok {
		return 0, false
	}
	return sign * (total + frac), true
}

// annotations reads a leading time zone annotation and any number of
// key=value annotations.
func (p *scanner) annotations(result *ParsedDateTime, allowTimeZone bool) error {
	calendarCount := 0
	criticalCalendar := false
	first := true

	for p.peek() == '[' {
		end := strings.IndexByte(p.s[p.pos:], ']')
		if end < 0 {
			return invalidString(p.s)
		}
		body := p.s[p.pos+1 : p.pos+end]
		p.pos += end + 1

		critical := strings.HasPrefix(body, "!")
		body = strings.TrimPrefix(body, "!")

		key, value, isKeyValue := strings.Cut(body, "=")
		if !isKeyValue {
			if !first || !allowTimeZone || !isTimeZoneIdentifier(body) {
				return invalidString(p.s)
			}
			result.TimeZone = body
			first = false
			continue
		}
		first = false

		if !isAnnotationKey(key) || !isAnnotationValue(value) {
			return invalidString(p.s)
		}
		if key == "u-ca" {
			calendarCount++
			if calendarCount == 1 {
				result.Calendar = value
			}
			criticalCalendar = criticalCalendar || critical
			continue
		}
		if critical {
			return ir.NewRangeError(ir.ErrCodeInvalidString, "%q: unknown critical annotation %q", p.s, key)
		}
	}

	if calendarCount > 1 && criticalCalendar {
		return ir.NewRangeError(ir.ErrCodeInvalidString, "%q: conflicting critical calendar annotations", p.s)
	}
	return nil
}

func isAnnotationKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c == '_':
		case i > 0 && ((c >= '0' && c <= '9') || c == '-'):
		default:
			return false
		}
	}
	return true
}

func isAnnotationValue(value string) bool {
	if value == "" {
		return false
	}
	for _, component := range strings.Split(value, "-") {
		if component == "" {
			return false
		}
		for i := 0; i < len(component); i++ {
			if !isAlphaNumeric(component[i]) {
				return false
			}
		}
	}
	return true
}

func isTimeZoneIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		_, ok := ParseTimeZoneOffsetString(s)
		return ok
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isAlphaNumeric(c) && c != '.' && c != '_' && c != '-' && c != '+' && c != '/' {
			return false
		}
	}
	return true
}

func isAlphaNumeric(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
