package testutil

import (
	"sync"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/temporal"
)

// ForwardingCalendar is a capability calendar that forwards every method
// to the built-in ISO 8601 calendar. Results are rebound to the forwarding
// calendar, so values it produces compare equal to each other.
//
// Methods can be omitted (to provoke MISSING_METHOD) or replaced. Every
// property read and every call is counted, in order.
//
// Thread-safety: the counters are guarded by a mutex; the calendar itself
// is safe to share between goroutines.
type ForwardingCalendar struct {
	id        string
	omitted   map[string]bool
	overrides map[string]any

	mu    sync.Mutex
	gets  map[string]int
	calls []string
}

// CalendarOption configures a ForwardingCalendar.
type CalendarOption func(*ForwardingCalendar)

// Without omits the named methods.
func Without(methods ...string) CalendarOption {
	return func(c *ForwardingCalendar) {
		for _, m := range methods {
			c.omitted[m] = true
		}
	}
}

// WithMethod replaces the named method with fn. fn is returned from
// GetMethod as is, so it may also be a non-function to provoke a TypeError.
func WithMethod(name string, fn any) CalendarOption {
	return func(c *ForwardingCalendar) {
		c.overrides[name] = fn
	}
}

// NewForwardingCalendar creates a forwarding calendar reporting id.
// An empty id reports "iso8601".
func NewForwardingCalendar(id string, opts ...CalendarOption) *ForwardingCalendar {
	if id == "" {
		id = temporal.ISO8601
	}
	c := &ForwardingCalendar{
		id:        id,
		omitted:   map[string]bool{},
		overrides: map[string]any{},
		gets:      map[string]int{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Receiver returns the calendar as a receiver.
func (c *ForwardingCalendar) Receiver() temporal.CalendarReceiver {
	return temporal.ObjectCalendarReceiver(c)
}

// ID implements temporal.Object.
func (c *ForwardingCalendar) ID() (string, error) {
	return c.id, nil
}

// Gets returns how often the named property was read.
func (c *ForwardingCalendar) Gets(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets[name]
}

// Calls returns the names of the methods called, in call order.
func (c *ForwardingCalendar) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// Reset clears the counters.
func (c *ForwardingCalendar) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets = map[string]int{}
	c.calls = nil
}

func (c *ForwardingCalendar) called(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, name)
}

// GetMethod implements temporal.Object.
func (c *ForwardingCalendar) GetMethod(name string) (any, bool) {
	c.mu.Lock()
	c.gets[name]++
	c.mu.Unlock()

	if c.omitted[name] {
		return nil, false
	}
	if fn, ok := c.overrides[name]; ok {
		return fn, true
	}

	iso := temporal.NewBuiltinCalendar(temporal.ISO8601)
	self := c.Receiver()

	switch name {
	case "dateAdd":
		return temporal.DateAddFunc(func(date temporal.PlainDate, duration temporal.Duration, options ir.IRObject) (temporal.PlainDate, error) {
			c.called(name)
			result, err := iso.DateAdd(date, duration, options)
			return result.WithCalendar(self), err
		}), true
	case "dateFromFields":
		return temporal.DateFromFieldsFunc(func(fields, options ir.IRObject) (temporal.PlainDate, error) {
			c.called(name)
			result, err := iso.DateFromFields(fields, options)
			return result.WithCalendar(self), err
		}), true
	case "dateUntil":
		return temporal.DateUntilFunc(func(one, two temporal.PlainDate, options ir.IRObject) (temporal.Duration, error) {
			c.called(name)
			return iso.DateUntil(one, two, options)
		}), true
	case "day":
		return temporal.DayFunc(func(date temporal.ISODateSlots) (int64, error) {
			c.called(name)
			return iso.Day(date)
		}), true
	case "daysInMonth":
		return temporal.DaysInMonthFunc(func(date temporal.ISODateSlots) (int64, error) {
			c.called(name)
			return iso.DaysInMonth(date)
		}), true
	case "fields":
		return temporal.FieldsFunc(func(fieldNames []string) ([]string, error) {
			c.called(name)
			return iso.Fields(fieldNames)
		}), true
	case "mergeFields":
		return temporal.MergeFieldsFunc(func(fields, additionalFields ir.IRObject) (ir.IRObject, error) {
			c.called(name)
			return iso.MergeFields(fields, additionalFields)
		}), true
	case "monthDayFromFields":
		return temporal.MonthDayFromFieldsFunc(func(fields, options ir.IRObject) (temporal.PlainMonthDay, error) {
			c.called(name)
			result, err := iso.MonthDayFromFields(fields, options)
			return result.WithCalendar(self), err
		}), true
	case "yearMonthFromFields":
		return temporal.YearMonthFromFieldsFunc(func(fields, options ir.IRObject) (temporal.PlainYearMonth, error) {
			c.called(name)
			result, err := iso.YearMonthFromFields(fields, options)
			return result.WithCalendar(self), err
		}), true
	}
	return nil, false
}
