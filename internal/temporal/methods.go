package temporal

import (
	"fmt"
	"reflect"

	"github.com/roach88/temporal/internal/ir"
)

// CalendarMethod names one operation of the calendar vocabulary.
type CalendarMethod int

const (
	CalendarMethodDateAdd CalendarMethod = iota
	CalendarMethodDateFromFields
	CalendarMethodDateUntil
	CalendarMethodDay
	CalendarMethodDaysInMonth
	CalendarMethodFields
	CalendarMethodMergeFields
	CalendarMethodMonthDayFromFields
	CalendarMethodYearMonthFromFields

	calendarMethodCount
)

var calendarMethodNames = [calendarMethodCount]string{
	CalendarMethodDateAdd:             "dateAdd",
	CalendarMethodDateFromFields:      "dateFromFields",
	CalendarMethodDateUntil:           "dateUntil",
	CalendarMethodDay:                 "day",
	CalendarMethodDaysInMonth:         "daysInMonth",
	CalendarMethodFields:              "fields",
	CalendarMethodMergeFields:         "mergeFields",
	CalendarMethodMonthDayFromFields:  "monthDayFromFields",
	CalendarMethodYearMonthFromFields: "yearMonthFromFields",
}

// String returns the method's property name.
func (m CalendarMethod) String() string {
	if m < 0 || m >= calendarMethodCount {
		return fmt.Sprintf("CalendarMethod(%d)", int(m))
	}
	return calendarMethodNames[m]
}

// Signatures a capability calendar's methods must have.
type (
	DateAddFunc             func(date PlainDate, duration Duration, options ir.IRObject) (PlainDate, error)
	DateFromFieldsFunc      func(fields ir.IRObject, options ir.IRObject) (PlainDate, error)
	DateUntilFunc           func(one, two PlainDate, options ir.IRObject) (Duration, error)
	DayFunc                 func(date ISODateSlots) (int64, error)
	DaysInMonthFunc         func(date ISODateSlots) (int64, error)
	FieldsFunc              func(fieldNames []string) ([]string, error)
	MergeFieldsFunc         func(fields, additionalFields ir.IRObject) (ir.IRObject, error)
	MonthDayFromFieldsFunc  func(fields ir.IRObject, options ir.IRObject) (PlainMonthDay, error)
	YearMonthFromFieldsFunc func(fields ir.IRObject, options ir.IRObject) (PlainYearMonth, error)
)

// builtinCalendarMethods are the standard implementations bound for
// built-in receivers. They are method expressions; the receiver is a
// canonical BuiltinCalendar created from the tag at call time.
var builtinCalendarMethods = [calendarMethodCount]any{
	CalendarMethodDateAdd:             (*BuiltinCalendar).DateAdd,
	CalendarMethodDateFromFields:      (*BuiltinCalendar).DateFromFields,
	CalendarMethodDateUntil:           (*BuiltinCalendar).DateUntil,
	CalendarMethodDay:                 (*BuiltinCalendar).Day,
	CalendarMethodDaysInMonth:         (*BuiltinCalendar).DaysInMonth,
	CalendarMethodFields:              (*BuiltinCalendar).Fields,
	CalendarMethodMergeFields:         (*BuiltinCalendar).MergeFields,
	CalendarMethodMonthDayFromFields:  (*BuiltinCalendar).MonthDayFromFields,
	CalendarMethodYearMonthFromFields: (*BuiltinCalendar).YearMonthFromFields,
}

// CalendarMethodsRecord caches the calendar operations one logical
// operation sequence needs. Each slot is written at most once.
//
// A record is owned by the call that created it; it is not safe for
// concurrent use.
type CalendarMethodsRecord struct {
	receiver CalendarReceiver
	methods  [calendarMethodCount]any
}

// NewCalendarMethodsRecord creates a record and looks up each method in
// order, failing at the first one the receiver does not provide.
func NewCalendarMethodsRecord(receiver CalendarReceiver, methods ...CalendarMethod) (*CalendarMethodsRecord, error) {
	rec := &CalendarMethodsRecord{receiver: receiver}
	for _, m := range methods {
		if err := rec.Lookup(m); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Receiver returns the record's calendar.
func (r *CalendarMethodsRecord) Receiver() CalendarReceiver {
	return r.receiver
}

// IsBuiltin reports whether the receiver is a built-in tag.
func (r *CalendarMethodsRecord) IsBuiltin() bool {
	return r.receiver.IsBuiltin()
}

// HasLookedUp reports whether m has been resolved.
func (r *CalendarMethodsRecord) HasLookedUp(m CalendarMethod) bool {
	return r.methods[m] != nil
}

// Lookup resolves m. Resolving an already resolved method is a no-op.
//
// Built-in receivers always succeed. Capability objects fail with a
// TypeError when the property is absent or is not a func of the
// method's signature.
func (r *CalendarMethodsRecord) Lookup(m CalendarMethod) error {
	if r.HasLookedUp(m) {
		return nil
	}
	if r.receiver.IsBuiltin() {
		r.methods[m] = builtinCalendarMethods[m]
		return nil
	}

	raw, ok := r.receiver.Object().GetMethod(m.String())
	if !ok {
		return ir.NewMissingMethodError("calendar", m.String())
	}

	var resolved any
	switch m {
	case CalendarMethodDateAdd:
		resolved, ok = resolveFunc[DateAddFunc](raw)
	case CalendarMethodDateFromFields:
		resolved, ok = resolveFunc[DateFromFieldsFunc](raw)
	case CalendarMethodDateUntil:
		resolved, ok = resolveFunc[DateUntilFunc](raw)
	case CalendarMethodDay:
		resolved, ok = resolveFunc[DayFunc](raw)
	case CalendarMethodDaysInMonth:
		resolved, ok = resolveFunc[DaysInMonthFunc](raw)
	case CalendarMethodFields:
		resolved, ok = resolveFunc[FieldsFunc](raw)
	case CalendarMethodMergeFields:
		resolved, ok = resolveFunc[MergeFieldsFunc](raw)
	case CalendarMethodMonthDayFromFields:
		resolved, ok = resolveFunc[MonthDayFromFieldsFunc](raw)
	case CalendarMethodYearMonthFromFields:
		resolved, ok = resolveFunc[YearMonthFromFieldsFunc](raw)
	default:
		panic(fmt.Sprintf("temporal: unknown calendar method %d", int(m)))
	}
	if !ok {
		return ir.NewTypeError(ir.ErrCodeMissingMethod, "%s is not a function", m.String())
	}
	r.methods[m] = resolved
	return nil
}

// resolveFunc accepts either F itself or any func value convertible to F,
// so capability objects may supply plain func literals.
func resolveFunc[F any](v any) (F, bool) {
	if f, ok := v.(F); ok {
		return f, !reflect.ValueOf(f).IsNil()
	}
	var zero F
	rv := reflect.ValueOf(v)
	target := reflect.TypeFor[F]()
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() || !rv.Type().ConvertibleTo(target) {
		return zero, false
	}
	return rv.Convert(target).Interface().(F), true
}

// slot returns the resolved method m. Calling a method that was never
// looked up is a programming error.
func (r *CalendarMethodsRecord) slot(m CalendarMethod) any {
	f := r.methods[m]
	if f == nil {
		panic(fmt.Sprintf("temporal: calendar method %s called before lookup", m))
	}
	return f
}

func (r *CalendarMethodsRecord) canonical() *BuiltinCalendar {
	return &BuiltinCalendar{id: r.receiver.BuiltinID()}
}

// DateAdd calls the calendar's dateAdd.
func (r *CalendarMethodsRecord) DateAdd(date PlainDate, duration Duration, options ir.IRObject) (PlainDate, error) {
	f := r.slot(CalendarMethodDateAdd)
	if r.IsBuiltin() {
		return f.(func(*BuiltinCalendar, PlainDate, Duration, ir.IRObject) (PlainDate, error))(r.canonical(), date, duration, options)
	}
	return f.(DateAddFunc)(date, duration, options)
}

// DateFromFields calls the calendar's dateFromFields.
func (r *CalendarMethodsRecord) DateFromFields(fields, options ir.IRObject) (PlainDate, error) {
	f := r.slot(CalendarMethodDateFromFields)
	if r.IsBuiltin() {
		return f.(func(*BuiltinCalendar, ir.IRObject, ir.IRObject) (PlainDate, error))(r.canonical(), fields, options)
	}
	return f.(DateFromFieldsFunc)(fields, options)
}

// DateUntil calls the calendar's dateUntil.
func (r *CalendarMethodsRecord) DateUntil(one, two PlainDate, options ir.IRObject) (Duration, error) {
	f := r.slot(CalendarMethodDateUntil)
	if r.IsBuiltin() {
		return f.(func(*BuiltinCalendar, PlainDate, PlainDate, ir.IRObject) (Duration, error))(r.canonical(), one, two, options)
	}
	return f.(DateUntilFunc)(one, two, options)
}

// Day calls the calendar's day and requires a positive integer result.
func (r *CalendarMethodsRecord) Day(date ISODateSlots) (int64, error) {
	f := r.slot(CalendarMethodDay)
	if r.IsBuiltin() {
		return f.(func(*BuiltinCalendar, ISODateSlots) (int64, error))(r.canonical(), date)
	}
	n, err := f.(DayFunc)(date)
	return checkPositive("day", n, err)
}

// DaysInMonth calls the calendar's daysInMonth and requires a positive integer result.
func (r *CalendarMethodsRecord) DaysInMonth(date ISODateSlots) (int64, error) {
	f := r.slot(CalendarMethodDaysInMonth)
	if r.IsBuiltin() {
		return f.(func(*BuiltinCalendar, ISODateSlots) (int64, error))(r.canonical(), date)
	}
	n, err := f.(DaysInMonthFunc)(date)
	return checkPositive("daysInMonth", n, err)
}

// Fields calls the calendar's fields.
func (r *CalendarMethodsRecord) Fields(fieldNames []string) ([]string, error) {
	f := r.slot(CalendarMethodFields)
	if r.IsBuiltin() {
		return f.(func(*BuiltinCalendar, []string) ([]string, error))(r.canonical(), fieldNames)
	}
	return f.(FieldsFunc)(fieldNames)
}

// MergeFields calls the calendar's mergeFields.
func (r *CalendarMethodsRecord) MergeFields(fields, additionalFields ir.IRObject) (ir.IRObject, error) {
	f := r.slot(CalendarMethodMergeFields)
	if r.IsBuiltin() {
		return f.(func(*BuiltinCalendar, ir.IRObject, ir.IRObject) (ir.IRObject, error))(r.canonical(), fields, additionalFields)
	}
	return f.(MergeFieldsFunc)(fields, additionalFields)
}

// MonthDayFromFields calls the calendar's monthDayFromFields.
func (r *CalendarMethodsRecord) MonthDayFromFields(fields, options ir.IRObject) (PlainMonthDay, error) {
	f := r.slot(CalendarMethodMonthDayFromFields)
	if r.IsBuiltin() {
		return f.(func(*BuiltinCalendar, ir.IRObject, ir.IRObject) (PlainMonthDay, error))(r.canonical(), fields, options)
	}
	return f.(MonthDayFromFieldsFunc)(fields, options)
}

// YearMonthFromFields calls the calendar's yearMonthFromFields.
func (r *CalendarMethodsRecord) YearMonthFromFields(fields, options ir.IRObject) (PlainYearMonth, error) {
	f := r.slot(CalendarMethodYearMonthFromFields)
	if r.IsBuiltin() {
		return f.(func(*BuiltinCalendar, ir.IRObject, ir.IRObject) (PlainYearMonth, error))(r.canonical(), fields, options)
	}
	return f.(YearMonthFromFieldsFunc)(fields, options)
}

func checkPositive(name string, n int64, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, ir.NewRangeError(ir.ErrCodeInvalidField, "%s must return a positive integer, got %d", name, n)
	}
	return n, nil
}
