package engine

import (
	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/temporal"
)

// Operation names an operation Evaluate can dispatch.
type Operation string

const (
	OpFrom        Operation = "from"
	OpAdd         Operation = "add"
	OpSubtract    Operation = "subtract"
	OpUntil       Operation = "until"
	OpSince       Operation = "since"
	OpWith        Operation = "with"
	OpToPlainDate Operation = "toPlainDate"
	OpMonthDay    Operation = "monthDay"
	OpAt          Operation = "at"
	OpInstant     Operation = "instant"
	OpCompare     Operation = "compare"
	OpEquals      Operation = "equals"
)

// Operations lists every operation in a stable order.
var Operations = []Operation{
	OpFrom, OpAdd, OpSubtract, OpUntil, OpSince, OpWith,
	OpToPlainDate, OpMonthDay, OpAt, OpInstant, OpCompare, OpEquals,
}

// ParseOperation validates an operation name.
func ParseOperation(name string) (Operation, error) {
	for _, op := range Operations {
		if string(op) == name {
			return op, nil
		}
	}
	return "", ir.NewTypeError(ir.ErrCodeInvalidOperand, "unknown operation %q", name)
}

// Result kinds.
const (
	KindYearMonth = "yearMonth"
	KindDuration  = "duration"
	KindDate      = "date"
	KindMonthDay  = "monthDay"
	KindInstant   = "instant"
	KindNumber    = "number"
	KindBoolean   = "boolean"
)

// Result is the rendered outcome of an evaluated operation.
type Result struct {
	Kind   string
	Value  string
	Fields ir.IRObject
}

// IR returns the result as a property bag, for canonical output.
func (r Result) IR() ir.IRObject {
	obj := ir.IRObject{
		"kind":  ir.IRString(r.Kind),
		"value": ir.IRString(r.Value),
	}
	if r.Fields != nil {
		obj["fields"] = r.Fields
	}
	return obj
}

// Evaluator runs operations over property-bag input.
type Evaluator struct {
	calendar    temporal.CalendarReceiver
	hasCalendar bool
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithCalendar binds every year-month operand to calendar instead of the
// calendar the input names. The trace recorder uses this to observe the
// calendar calls of an evaluation.
func WithCalendar(calendar temporal.CalendarReceiver) EvaluatorOption {
	return func(e *Evaluator) {
		e.calendar = calendar
		e.hasCalendar = true
	}
}

// NewEvaluator creates an evaluator.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs op with input.
//
// Input keys by operation:
//
//	from                value, options
//	add, subtract       value, duration, options
//	until, since        value, other, options
//	with                value, fields, options
//	toPlainDate         value, fields
//	monthDay            value, options
//	at                  instant, timeZone, calendar
//	instant             value, timeZone, options
//	compare, equals     value, other
//
// value and other are ISO strings or property bags; options is an object.
func (e *Evaluator) Evaluate(op Operation, input ir.IRObject) (Result, error) {
	options, _ := input.Get("options")

	switch op {
	case OpFrom:
		optionsObj, err := temporal.GetOptionsObject(options)
		if err != nil {
			return Result{}, err
		}
		ym, err := e.yearMonth(input, "value", optionsObj)
		if err != nil {
			return Result{}, err
		}
		show, err := temporal.ToShowCalendarOption(optionsObj)
		if err != nil {
			return Result{}, err
		}
		return yearMonthResult(ym, show)

	case OpAdd, OpSubtract:
		ym, err := e.yearMonth(input, "value", nil)
		if err != nil {
			return Result{}, err
		}
		duration, _ := input.Get("duration")
		arith := OperationAdd
		if op == OpSubtract {
			arith = OperationSubtract
		}
		result, err := AddOrSubtract(arith, ym, duration, options)
		if err != nil {
			return Result{}, err
		}
		return yearMonthResult(result, temporal.ShowCalendarAuto)

	case OpUntil, OpSince:
		ym, err := e.yearMonth(input, "value", nil)
		if err != nil {
			return Result{}, err
		}
		other, err := e.operand(input, "other")
		if err != nil {
			return Result{}, err
		}
		diff := temporal.DifferenceUntil
		if op == OpSince {
			diff = temporal.DifferenceSince
		}
		duration, err := Difference(diff, ym, other, options)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindDuration, Value: duration.String(), Fields: duration.Fields()}, nil

	case OpWith:
		ym, err := e.yearMonth(input, "value", nil)
		if err != nil {
			return Result{}, err
		}
		fields, _ := input.Get("fields")
		result, err := With(ym, fields, options)
		if err != nil {
			return Result{}, err
		}
		return yearMonthResult(result, temporal.ShowCalendarAuto)

	case OpToPlainDate:
		ym, err := e.yearMonth(input, "value", nil)
		if err != nil {
			return Result{}, err
		}
		fields, _ := input.Get("fields")
		date, err := ToPlainDate(ym, fields)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindDate, Value: date.String(), Fields: temporal.FieldsOf(date)}, nil

	case OpMonthDay:
		item, err := e.operand(input, "value")
		if err != nil {
			return Result{}, err
		}
		md, err := MonthDayFrom(item, options)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindMonthDay, Value: md.String(), Fields: ir.IRObject{
			"day":       ir.IRInt(md.Day()),
			"monthCode": ir.IRString(md.MonthCode()),
		}}, nil

	case OpAt:
		instant, _ := input.Get("instant")
		timeZone, _ := input.Get("timeZone")
		var calendar any
		if c, ok := input.Get("calendar"); ok && c != nil {
			calendar = c
		}
		if e.hasCalendar {
			calendar = e.calendar
		}
		ym, err := YearMonthAt(instant, timeZone, calendar)
		if err != nil {
			return Result{}, err
		}
		return yearMonthResult(ym, temporal.ShowCalendarAuto)

	case OpInstant:
		ym, err := e.yearMonth(input, "value", nil)
		if err != nil {
			return Result{}, err
		}
		timeZone, _ := input.Get("timeZone")
		instant, err := InstantOfYearMonth(ym, timeZone, options)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindInstant, Value: instant.String()}, nil

	case OpCompare, OpEquals:
		ym, err := e.yearMonth(input, "value", nil)
		if err != nil {
			return Result{}, err
		}
		other, err := e.yearMonth(input, "other", nil)
		if err != nil {
			return Result{}, err
		}
		if op == OpCompare {
			return Result{Kind: KindNumber, Value: ir.ToString(ir.IRInt(temporal.CompareYearMonth(ym, other)))}, nil
		}
		equal, err := ym.Equals(other)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindBoolean, Value: ir.ToString(ir.IRBool(equal))}, nil
	}

	return Result{}, ir.NewTypeError(ir.ErrCodeInvalidOperand, "unknown operation %q", string(op))
}

// yearMonth coerces input[key] to a year-month.
func (e *Evaluator) yearMonth(input ir.IRObject, key string, options ir.IRObject) (temporal.PlainYearMonth, error) {
	item, err := e.operand(input, key)
	if err != nil {
		return temporal.PlainYearMonth{}, err
	}
	return temporal.ToTemporalYearMonth(item, options)
}

// operand returns input[key] ready for coercion. With a bound calendar,
// strings are parsed in ISO and re-expressed as a bag of that calendar,
// and bags are bound to it.
func (e *Evaluator) operand(input ir.IRObject, key string) (any, error) {
	v, ok := input.Get(key)
	if !ok {
		return nil, ir.NewTypeError(ir.ErrCodeMissingField, "input %s is missing", key)
	}
	if !e.hasCalendar {
		return v, nil
	}

	switch item := v.(type) {
	case ir.IRObject:
		return temporal.Bag{Fields: item, Calendar: e.calendar}, nil
	case ir.IRString:
		parsed, err := temporal.ParseTemporalDateTimeString(string(item))
		if err != nil {
			parsed, err = temporal.ParseTemporalYearMonthString(string(item))
		}
		if err != nil {
			parsed, err = temporal.ParseTemporalMonthDayString(string(item))
		}
		if err != nil {
			return nil, err
		}
		return temporal.Bag{Fields: ir.IRObject{
			"year":  ir.IRInt(parsed.Year),
			"month": ir.IRInt(parsed.Month),
			"day":   ir.IRInt(parsed.Day),
		}, Calendar: e.calendar}, nil
	}
	return v, nil
}

func yearMonthResult(ym temporal.PlainYearMonth, show temporal.ShowCalendar) (Result, error) {
	s, err := temporal.TemporalYearMonthToString(ym, show)
	if err != nil {
		return Result{}, err
	}
	id, err := ym.CalendarID()
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: KindYearMonth, Value: s, Fields: ir.IRObject{
		"calendar":  ir.IRString(id),
		"month":     ir.IRInt(ym.Month()),
		"monthCode": ir.IRString(ym.MonthCode()),
		"year":      ir.IRInt(ym.Year()),
	}}, nil
}
