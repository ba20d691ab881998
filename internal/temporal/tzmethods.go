package temporal

import (
	"fmt"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/iso"
)

// TimeZoneMethod names one operation of the time zone vocabulary.
type TimeZoneMethod int

const (
	TimeZoneMethodGetOffsetNanosecondsFor TimeZoneMethod = iota
	TimeZoneMethodGetPossibleInstantsFor

	timeZoneMethodCount
)

var timeZoneMethodNames = [timeZoneMethodCount]string{
	TimeZoneMethodGetOffsetNanosecondsFor: "getOffsetNanosecondsFor",
	TimeZoneMethodGetPossibleInstantsFor:  "getPossibleInstantsFor",
}

// String returns the method's property name.
func (m TimeZoneMethod) String() string {
	if m < 0 || m >= timeZoneMethodCount {
		return fmt.Sprintf("TimeZoneMethod(%d)", int(m))
	}
	return timeZoneMethodNames[m]
}

// Signatures a capability time zone's methods must have.
type (
	GetOffsetNanosecondsForFunc func(instant Instant) (int64, error)
	GetPossibleInstantsForFunc  func(dateTime PlainDateTime) ([]Instant, error)
)

var builtinTimeZoneMethods = [timeZoneMethodCount]any{
	TimeZoneMethodGetOffsetNanosecondsFor: (*BuiltinTimeZone).GetOffsetNanosecondsFor,
	TimeZoneMethodGetPossibleInstantsFor:  (*BuiltinTimeZone).GetPossibleInstantsFor,
}

// TimeZoneMethodsRecord caches the time zone operations of one logical
// operation sequence. It is not safe for concurrent use.
type TimeZoneMethodsRecord struct {
	receiver TimeZoneReceiver
	methods  [timeZoneMethodCount]any
}

// NewTimeZoneMethodsRecord creates a record and looks up each method in order.
func NewTimeZoneMethodsRecord(receiver TimeZoneReceiver, methods ...TimeZoneMethod) (*TimeZoneMethodsRecord, error) {
	rec := &TimeZoneMethodsRecord{receiver: receiver}
	for _, m := range methods {
		if err := rec.Lookup(m); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Receiver returns the record's time zone.
func (r *TimeZoneMethodsRecord) Receiver() TimeZoneReceiver { return r.receiver }

// IsBuiltin reports whether the receiver is a built-in tag.
func (r *TimeZoneMethodsRecord) IsBuiltin() bool { return r.receiver.IsBuiltin() }

// HasLookedUp reports whether m has been resolved.
func (r *TimeZoneMethodsRecord) HasLookedUp(m TimeZoneMethod) bool { return r.methods[m] != nil }

// Lookup resolves m. Resolving an already resolved method is a no-op.
func (r *TimeZoneMethodsRecord) Lookup(m TimeZoneMethod) error {
	if r.HasLookedUp(m) {
		return nil
	}
	if r.receiver.IsBuiltin() {
		r.methods[m] = builtinTimeZoneMethods[m]
		return nil
	}

	raw, ok := r.receiver.Object().GetMethod(m.String())
	if !ok {
		return ir.NewMissingMethodError("timeZone", m.String())
	}
	var resolved any
	switch m {
	case TimeZoneMethodGetOffsetNanosecondsFor:
		resolved, ok = resolveFunc[GetOffsetNanosecondsForFunc](raw)
	case TimeZoneMethodGetPossibleInstantsFor:
		resolved, ok = resolveFunc[GetPossibleInstantsForFunc](raw)
	default:
		panic(fmt.Sprintf("temporal: unknown time zone method %d", int(m)))
	}
	if !ok {
		return ir.NewTypeError(ir.ErrCodeMissingMethod, "%s is not a function", m.String())
	}
	r.methods[m] = resolved
	return nil
}

func (r *TimeZoneMethodsRecord) slot(m TimeZoneMethod) any {
	f := r.methods[m]
	if f == nil {
		panic(fmt.Sprintf("temporal: time zone method %s called before lookup", m))
	}
	return f
}

// GetOffsetNanosecondsFor calls the time zone's getOffsetNanosecondsFor.
// Results of capability objects must lie strictly within one day.
func (r *TimeZoneMethodsRecord) GetOffsetNanosecondsFor(instant Instant) (int64, error) {
	f := r.slot(TimeZoneMethodGetOffsetNanosecondsFor)
	if r.IsBuiltin() {
		return f.(func(*BuiltinTimeZone, Instant) (int64, error))(&BuiltinTimeZone{id: r.receiver.BuiltinID()}, instant)
	}
	n, err := f.(GetOffsetNanosecondsForFunc)(instant)
	if err != nil {
		return 0, err
	}
	if n <= -iso.NsPerDay || n >= iso.NsPerDay {
		return 0, ir.NewRangeError(ir.ErrCodeInvalidOffset, "offset %d ns is out of range", n)
	}
	return n, nil
}

// GetPossibleInstantsFor calls the time zone's getPossibleInstantsFor.
func (r *TimeZoneMethodsRecord) GetPossibleInstantsFor(dateTime PlainDateTime) ([]Instant, error) {
	f := r.slot(TimeZoneMethodGetPossibleInstantsFor)
	if r.IsBuiltin() {
		return f.(func(*BuiltinTimeZone, PlainDateTime) ([]Instant, error))(&BuiltinTimeZone{id: r.receiver.BuiltinID()}, dateTime)
	}
	return f.(GetPossibleInstantsForFunc)(dateTime)
}
