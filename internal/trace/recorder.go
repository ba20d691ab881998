package trace

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/roach88/temporal/internal/ir"
)

// Recorder accumulates the calls of one session.
type Recorder struct {
	sessionID string
	clock     Sequencer

	mu    sync.Mutex
	calls []ir.Call
	err   error
}

// NewRecorder creates a recorder for sessionID stamping calls from clock.
func NewRecorder(sessionID string, clock Sequencer) *Recorder {
	return &Recorder{sessionID: sessionID, clock: clock}
}

// SessionID returns the id calls are recorded under.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Record appends one call. callErr is stored as its message; the error
// itself keeps flowing back to the engine unchanged.
func (r *Recorder) Record(receiver string, kind ir.CallKind, method string, args ir.IRArray, result ir.IRValue, callErr error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if args == nil {
		args = ir.IRArray{}
	}
	seq := r.clock.Next()
	id, err := ir.CallID(r.sessionID, seq, receiver, method, args)
	if err != nil {
		if r.err == nil {
			r.err = fmt.Errorf("record %s %s: %w", kind, method, err)
		}
		return
	}

	call := ir.Call{
		ID:        id,
		SessionID: r.sessionID,
		Seq:       seq,
		Receiver:  receiver,
		Kind:      kind,
		Method:    method,
		Args:      args,
		Result:    result,
	}
	if callErr != nil {
		call.Error = callErr.Error()
	}
	r.calls = append(r.calls, call)

	slog.Debug("calendar "+string(kind),
		"session", r.sessionID,
		"seq", seq,
		"receiver", receiver,
		"method", method,
		"error", call.Error,
	)
}

// Calls returns the recorded calls in order.
func (r *Recorder) Calls() []ir.Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Err returns the first failure to record a call, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
