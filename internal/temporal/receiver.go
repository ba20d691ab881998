package temporal

import "reflect"

// Built-in identifiers.
const (
	ISO8601 = "iso8601"
	UTC     = "UTC"
)

// Object is a capability object: an opaque handle exposing named methods.
type Object interface {
	// GetMethod returns the callable property named name.
	// ok is false when the property is absent or undefined.
	GetMethod(name string) (method any, ok bool)

	// ID returns the object's identifier, as its string conversion would.
	ID() (string, error)
}

// CalendarReceiver is either a built-in calendar tag or a capability object.
// The zero value is the built-in ISO 8601 calendar.
type CalendarReceiver struct {
	id     string
	object Object
}

// BuiltinCalendarReceiver returns the receiver for a built-in calendar identifier.
// The identifier is not validated; use ToTemporalCalendarSlot for user input.
func BuiltinCalendarReceiver(id string) CalendarReceiver {
	return CalendarReceiver{id: id}
}

// ObjectCalendarReceiver wraps a capability object.
func ObjectCalendarReceiver(obj Object) CalendarReceiver {
	return CalendarReceiver{object: obj}
}

// IsBuiltin reports whether the receiver is a built-in tag.
func (c CalendarReceiver) IsBuiltin() bool {
	return c.object == nil
}

// BuiltinID returns the tag of a built-in receiver.
func (c CalendarReceiver) BuiltinID() string {
	if c.id == "" {
		return ISO8601
	}
	return c.id
}

// Object returns the capability object, or nil for a built-in receiver.
func (c CalendarReceiver) Object() Object {
	return c.object
}

// ID returns the calendar identifier. For capability objects this asks
// the object and may fail.
func (c CalendarReceiver) ID() (string, error) {
	if c.IsBuiltin() {
		return c.BuiltinID(), nil
	}
	return c.object.ID()
}

// TimeZoneReceiver is either a built-in time zone tag or a capability object.
// The zero value is UTC.
type TimeZoneReceiver struct {
	id     string
	object Object
}

// BuiltinTimeZoneReceiver returns the receiver for a built-in time zone identifier.
func BuiltinTimeZoneReceiver(id string) TimeZoneReceiver {
	return TimeZoneReceiver{id: id}
}

// ObjectTimeZoneReceiver wraps a capability object.
func ObjectTimeZoneReceiver(obj Object) TimeZoneReceiver {
	return TimeZoneReceiver{object: obj}
}

// IsBuiltin reports whether the receiver is a built-in tag.
func (tz TimeZoneReceiver) IsBuiltin() bool {
	return tz.object == nil
}

// BuiltinID returns the tag of a built-in receiver.
func (tz TimeZoneReceiver) BuiltinID() string {
	if tz.id == "" {
		return UTC
	}
	return tz.id
}

// Object returns the capability object, or nil for a built-in receiver.
func (tz TimeZoneReceiver) Object() Object {
	return tz.object
}

// ID returns the time zone identifier.
func (tz TimeZoneReceiver) ID() (string, error) {
	if tz.IsBuiltin() {
		return tz.BuiltinID(), nil
	}
	return tz.object.ID()
}

// sameObject reports whether a and b are the same capability handle.
// Handles of non-comparable dynamic types are never the same.
func sameObject(a, b Object) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// Capability is a capability object backed by a method table.
// Methods holds *Func values keyed by method name.
type Capability struct {
	Identifier string
	Methods    map[string]any
}

// GetMethod implements Object.
func (c *Capability) GetMethod(name string) (any, bool) {
	m, ok := c.Methods[name]
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

// ID implements Object.
func (c *Capability) ID() (string, error) {
	return c.Identifier, nil
}
