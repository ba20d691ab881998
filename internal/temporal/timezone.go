package temporal

import (
	"fmt"
	"slices"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/iso"
)

// BuiltinTimeZone implements the time zone vocabulary for UTC, fixed
// offsets and IANA zones. Transition data comes from the time package.
type BuiltinTimeZone struct {
	id string
}

// NewBuiltinTimeZone returns the implementation behind a built-in tag.
func NewBuiltinTimeZone(id string) *BuiltinTimeZone {
	return &BuiltinTimeZone{id: id}
}

// ID returns the time zone identifier.
func (z *BuiltinTimeZone) ID() string {
	if z.id == "" {
		return UTC
	}
	return z.id
}

func (z *BuiltinTimeZone) fixedOffset() (int64, bool) {
	if z.ID() == UTC {
		return 0, true
	}
	return ParseTimeZoneOffsetString(z.ID())
}

func (z *BuiltinTimeZone) location() (*time.Location, error) {
	loc, err := time.LoadLocation(z.ID())
	if err != nil {
		return nil, ir.NewRangeError(ir.ErrCodeInvalidTimeZone, "unknown time zone %q", z.ID())
	}
	return loc, nil
}

// offsetSecondsAt returns the zone's UTC offset at the given epoch second.
func offsetSecondsAt(loc *time.Location, epochSeconds int64) int64 {
	_, offset := time.Unix(epochSeconds, 0).In(loc).Zone()
	return int64(offset)
}

// floorSeconds returns floor(ns / 10^9).
func floorSeconds(ns *apd.Decimal) int64 {
	days, rem := Instant{ns: ns}.utcParts()
	return days*(iso.NsPerDay/iso.NsPerSecond) + rem/iso.NsPerSecond
}

// GetOffsetNanosecondsFor returns the zone's UTC offset at instant.
func (z *BuiltinTimeZone) GetOffsetNanosecondsFor(instant Instant) (int64, error) {
	if offset, ok := z.fixedOffset(); ok {
		return offset, nil
	}
	loc, err := z.location()
	if err != nil {
		return 0, err
	}
	return offsetSecondsAt(loc, floorSeconds(instant.decimal())) * iso.NsPerSecond, nil
}

// GetPossibleInstantsFor returns the instants whose wall-clock time in the
// zone is dateTime, in ascending order. Gaps yield none; overlaps two.
func (z *BuiltinTimeZone) GetPossibleInstantsFor(dateTime PlainDateTime) ([]Instant, error) {
	utc := GetUTCEpochNanoseconds(dateTime.ISODate(), dateTime.ISOTime())

	if offset, ok := z.fixedOffset(); ok {
		instant, err := subtractOffset(utc, offset)
		if err != nil {
			return nil, err
		}
		return []Instant{instant}, nil
	}

	loc, err := z.location()
	if err != nil {
		return nil, err
	}
	seconds := floorSeconds(utc)
	const secondsPerDay = iso.NsPerDay / iso.NsPerSecond
	candidates := []int64{
		offsetSecondsAt(loc, seconds-secondsPerDay),
		offsetSecondsAt(loc, seconds+secondsPerDay),
	}
	candidates = slices.Compact(candidates)

	var possible []Instant
	for _, offset := range candidates {
		if offsetSecondsAt(loc, seconds-offset) != offset {
			continue
		}
		instant, err := subtractOffset(utc, offset*iso.NsPerSecond)
		if err != nil {
			return nil, err
		}
		possible = append(possible, instant)
	}
	slices.SortFunc(possible, CompareInstant)
	return possible, nil
}

func subtractOffset(utc *apd.Decimal, offsetNs int64) (Instant, error) {
	var ns apd.Decimal
	if _, err := decimalContext(apd.RoundDown).Sub(&ns, utc, apd.New(offsetNs, 0)); err != nil {
		return Instant{}, err
	}
	return NewInstant(&ns)
}

// normalizeTimeZoneID returns the canonical form of a built-in time zone
// identifier.
func normalizeTimeZoneID(id string) (string, bool) {
	if strings.EqualFold(id, UTC) {
		return UTC, true
	}
	if id == "" || strings.EqualFold(id, "Local") {
		return "", false
	}
	if offset, ok := ParseTimeZoneOffsetString(id); ok {
		return FormatTimeZoneOffsetString(offset), true
	}
	if id[0] == '+' || id[0] == '-' {
		return "", false
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return "", false
	}
	return loc.String(), true
}

// ToTemporalTimeZoneSlot resolves a time-zone-like value to a receiver.
// Strings may be an identifier or an ISO string whose annotation, Z or
// offset names the zone.
func ToTemporalTimeZoneSlot(timeZoneLike any) (TimeZoneReceiver, error) {
	switch v := timeZoneLike.(type) {
	case TimeZoneReceiver:
		return v, nil
	case Object:
		return ObjectTimeZoneReceiver(v), nil
	case ir.IRString:
		return ToTemporalTimeZoneSlot(string(v))
	case string:
		if id, ok := normalizeTimeZoneID(v); ok {
			return BuiltinTimeZoneReceiver(id), nil
		}
		parsed, err := parseISODateTime(v, parseModeAny)
		if err != nil {
			return TimeZoneReceiver{}, ir.NewRangeError(ir.ErrCodeInvalidTimeZone, "%q is not a valid time zone", v)
		}
		switch {
		case parsed.TimeZone != "":
			id, ok := normalizeTimeZoneID(parsed.TimeZone)
			if !ok {
				return TimeZoneReceiver{}, ir.NewRangeError(ir.ErrCodeInvalidTimeZone, "%q is not a valid time zone", parsed.TimeZone)
			}
			return BuiltinTimeZoneReceiver(id), nil
		case parsed.UTCDesignator:
			return BuiltinTimeZoneReceiver(UTC), nil
		case parsed.HasOffset:
			return BuiltinTimeZoneReceiver(FormatTimeZoneOffsetString(parsed.OffsetNs)), nil
		}
		return TimeZoneReceiver{}, ir.NewRangeError(ir.ErrCodeInvalidTimeZone, "%q does not name a time zone", v)
	}
	return TimeZoneReceiver{}, ir.NewTypeError(ir.ErrCodeInvalidTimeZone, "cannot use %T as a time zone", timeZoneLike)
}

// TimeZoneEquals reports whether two receivers denote the same zone.
func TimeZoneEquals(one, two TimeZoneReceiver) (bool, error) {
	if one.IsBuiltin() && two.IsBuiltin() {
		return one.BuiltinID() == two.BuiltinID(), nil
	}
	if !one.IsBuiltin() && !two.IsBuiltin() && sameObject(one.Object(), two.Object()) {
		return true, nil
	}
	a, err := one.ID()
	if err != nil {
		return false, err
	}
	b, err := two.ID()
	if err != nil {
		return false, err
	}
	return a == b, nil
}

// FormatTimeZoneOffsetString renders ±HH:MM, adding seconds and a
// fraction only when non-zero.
func FormatTimeZoneOffsetString(offsetNs int64) string {
	sign := '+'
	if offsetNs < 0 {
		sign = '-'
		offsetNs = -offsetNs
	}
	hours := offsetNs / iso.NsPerHour
	minutes := offsetNs / iso.NsPerMinute % 60
	seconds := offsetNs / iso.NsPerSecond % 60
	frac := offsetNs % iso.NsPerSecond

	s := fmt.Sprintf("%c%02d:%02d", sign, hours, minutes)
	if seconds != 0 || frac != 0 {
		s += fmt.Sprintf(":%02d", seconds)
	}
	if frac != 0 {
		s += "." + strings.TrimRight(fmt.Sprintf("%09d", frac), "0")
	}
	return s
}

// GetOffsetNanosecondsFor calls the record's getOffsetNanosecondsFor.
func GetOffsetNanosecondsFor(rec *TimeZoneMethodsRecord, instant Instant) (int64, error) {
	return rec.GetOffsetNanosecondsFor(instant)
}

// GetPlainDateTimeFor returns the wall-clock date-time of instant in the
// record's zone.
func GetPlainDateTimeFor(rec *TimeZoneMethodsRecord, instant Instant, calendar CalendarReceiver) (PlainDateTime, error) {
	offset, err := rec.GetOffsetNanosecondsFor(instant)
	if err != nil {
		return PlainDateTime{}, err
	}
	var local apd.Decimal
	if _, err := decimalContext(apd.RoundDown).Add(&local, instant.decimal(), apd.New(offset, 0)); err != nil {
		return PlainDateTime{}, err
	}
	date, t := Instant{ns: &local}.UTCDateTime()
	return CreateTemporalDateTime(date, t, calendar)
}

// GetPossibleInstantsFor calls the record's getPossibleInstantsFor.
func GetPossibleInstantsFor(rec *TimeZoneMethodsRecord, dateTime PlainDateTime) ([]Instant, error) {
	return rec.GetPossibleInstantsFor(dateTime)
}

// GetInstantFor resolves dateTime to one instant in the record's zone.
func GetInstantFor(rec *TimeZoneMethodsRecord, dateTime PlainDateTime, disambiguation Disambiguation) (Instant, error) {
	possible, err := rec.GetPossibleInstantsFor(dateTime)
	if err != nil {
		return Instant{}, err
	}
	return DisambiguatePossibleInstants(possible, rec, dateTime, disambiguation)
}

// DisambiguatePossibleInstants picks one instant for dateTime.
//
// With several candidates, earlier and compatible take the first and later
// the last. In a gap, earlier shifts the wall-clock time back by the gap
// length and takes the first candidate there; compatible and later shift
// it forward and take the last. reject fails in both cases.
func DisambiguatePossibleInstants(possible []Instant, rec *TimeZoneMethodsRecord, dateTime PlainDateTime, disambiguation Disambiguation) (Instant, error) {
	switch n := len(possible); {
	case n == 1:
		return possible[0], nil
	case n > 1:
		switch disambiguation {
		case DisambiguationEarlier, DisambiguationCompatible:
			return possible[0], nil
		case DisambiguationLater:
			return possible[n-1], nil
		}
		return Instant{}, ir.NewRangeError(ir.ErrCodeAmbiguousTime, "%s is ambiguous in this time zone", dateTime)
	}

	if disambiguation == DisambiguationReject {
		return Instant{}, ir.NewRangeError(ir.ErrCodeAmbiguousTime, "%s does not exist in this time zone", dateTime)
	}

	utc := GetUTCEpochNanoseconds(dateTime.ISODate(), dateTime.ISOTime())
	dayBefore, err := subtractOffset(utc, iso.NsPerDay)
	if err != nil {
		return Instant{}, err
	}
	dayAfter, err := subtractOffset(utc, -iso.NsPerDay)
	if err != nil {
		return Instant{}, err
	}
	offsetBefore, err := rec.GetOffsetNanosecondsFor(dayBefore)
	if err != nil {
		return Instant{}, err
	}
	offsetAfter, err := rec.GetOffsetNanosecondsFor(dayAfter)
	if err != nil {
		return Instant{}, err
	}
	gap := offsetAfter - offsetBefore

	if disambiguation == DisambiguationEarlier {
		earlier, err := addNanosecondsToDateTime(dateTime, -gap)
		if err != nil {
			return Instant{}, err
		}
		candidates, err := rec.GetPossibleInstantsFor(earlier)
		if err != nil {
			return Instant{}, err
		}
		if len(candidates) == 0 {
			return Instant{}, ir.NewRangeError(ir.ErrCodeAmbiguousTime, "no instant found for %s", dateTime)
		}
		return candidates[0], nil
	}

	later, err := addNanosecondsToDateTime(dateTime, gap)
	if err != nil {
		return Instant{}, err
	}
	candidates, err := rec.GetPossibleInstantsFor(later)
	if err != nil {
		return Instant{}, err
	}
	if len(candidates) == 0 {
		return Instant{}, ir.NewRangeError(ir.ErrCodeAmbiguousTime, "no instant found for %s", dateTime)
	}
	return candidates[len(candidates)-1], nil
}

func addNanosecondsToDateTime(dt PlainDateTime, ns int64) (PlainDateTime, error) {
	days, t := iso.TimeFromNanoseconds(dt.time.Nanoseconds() + ns)
	d := dt.date
	return CreateTemporalDateTime(iso.BalanceDate(d.Year, d.Month, d.Day+days), t, dt.calendar)
}
