package trace

import (
	"fmt"
	"log/slog"

	"github.com/roach88/temporal/internal/engine"
	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/temporal"
)

// Runner evaluates operations through a recording calendar.
type Runner struct {
	ids      IDGenerator
	clock    Sequencer
	calendar *temporal.CalendarReceiver
}

// Option configures a Runner.
type Option func(*Runner)

// WithIDGenerator sets the session id source. The default is UUIDv7.
func WithIDGenerator(ids IDGenerator) Option {
	return func(r *Runner) {
		r.ids = ids
	}
}

// WithClock sets the sequence source shared by all sessions of the runner.
func WithClock(clock Sequencer) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithCalendar sets the calendar the recorder wraps. Without it the
// calendar named by the input's "calendar" key is used, else ISO 8601.
func WithCalendar(calendar temporal.CalendarReceiver) Option {
	return func(r *Runner) {
		r.calendar = &calendar
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		ids:   UUIDv7Generator{},
		clock: NewClock(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates op over input and records the session.
//
// The returned session is complete even when evaluation fails: its Error
// and ErrorKind describe the failure, and the evaluation error is
// returned alongside it unchanged. A non-nil error with a zero session
// means recording itself failed.
func (r *Runner) Run(op engine.Operation, input ir.IRObject) (engine.Result, ir.Session, error) {
	sessionID := r.ids.Generate()
	startedAt := r.clock.Next()

	inner, err := r.innerCalendar(input)
	if err != nil {
		return engine.Result{}, ir.Session{}, err
	}

	recorder := NewRecorder(sessionID, r.clock)
	cal, err := NewCalendar(inner, recorder)
	if err != nil {
		return engine.Result{}, ir.Session{}, err
	}

	slog.Debug("session starting", "session", sessionID, "operation", string(op))

	evaluator := engine.NewEvaluator(engine.WithCalendar(cal.Receiver()))
	result, evalErr := evaluator.Evaluate(op, input)

	if err := recorder.Err(); err != nil {
		return engine.Result{}, ir.Session{}, err
	}
	calls := recorder.Calls()
	digest, err := ir.CallLogDigest(calls)
	if err != nil {
		return engine.Result{}, ir.Session{}, fmt.Errorf("session %s: %w", sessionID, err)
	}

	session := ir.Session{
		ID:            sessionID,
		Operation:     string(op),
		Input:         input,
		Calls:         calls,
		Digest:        digest,
		EngineVersion: ir.EngineVersion,
		TraceVersion:  ir.TraceVersion,
		StartedAt:     startedAt,
	}
	if evalErr != nil {
		session.Error = evalErr.Error()
		session.ErrorKind = string(ir.KindOf(evalErr))
	} else {
		session.Output = result.Value
	}

	slog.Debug("session finished",
		"session", sessionID,
		"calls", len(calls),
		"digest", digest,
		"error", session.Error,
	)
	return result, session, evalErr
}

func (r *Runner) innerCalendar(input ir.IRObject) (temporal.CalendarReceiver, error) {
	if r.calendar != nil {
		return *r.calendar, nil
	}
	if v, ok := input.Get("calendar"); ok && v != nil {
		return temporal.ToTemporalCalendarSlot(v)
	}
	return temporal.BuiltinCalendarReceiver(temporal.ISO8601), nil
}
