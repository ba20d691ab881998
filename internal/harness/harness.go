package harness

import (
	"context"
	"fmt"

	"github.com/roach88/temporal/internal/engine"
	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/store"
	"github.com/roach88/temporal/internal/testutil"
	"github.com/roach88/temporal/internal/trace"
)

// Harness is the test execution engine.
// It runs scenario steps through a recording runner with a deterministic
// clock and session ids, and persists every session.
type Harness struct {
	store  *store.Store
	runner *trace.Runner
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Deterministic helpers ensure reproducible results.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Evaluate each step as a recorded session and store it
// 3. Check each step's expect clause
// 4. Evaluate assertions against the stored sessions
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store: st,
		runner: trace.NewRunner(
			trace.WithIDGenerator(testutil.NewSequentialIDs(scenario.Name)),
			trace.WithClock(testutil.NewDeterministicClock()),
		),
	}

	ctx := context.Background()
	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i, step, result); err != nil {
			return nil, fmt.Errorf("failed to execute step %d: %w", i, err)
		}
	}

	actx := &AssertionContext{
		Store:  st,
		Runner: h.runner,
		Ctx:    ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeStep evaluates one step. Evaluation errors are outcomes to check,
// not failures of the harness; only recording and storage errors abort.
func (h *Harness) executeStep(ctx context.Context, index int, step Step, result *Result) error {
	op, err := engine.ParseOperation(step.Op)
	if err != nil {
		return err
	}
	input, err := toIRObject(step.Input)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}

	_, session, evalErr := h.runner.Run(op, input)
	if evalErr != nil && session.ID == "" {
		return evalErr
	}
	if err := h.store.WriteSession(ctx, session); err != nil {
		return err
	}

	result.Steps = append(result.Steps, StepResult{Op: step.Op, Session: session, Err: evalErr})

	if step.Expect != nil {
		if msg := checkExpect(index, step.Expect, session, evalErr); msg != "" {
			result.AddError(msg)
		}
	}
	return nil
}

func checkExpect(index int, expect *Expect, session ir.Session, err error) string {
	if expect.ErrorKind != "" {
		if err == nil {
			return fmt.Sprintf("steps[%d]: expected %s, got output %q", index, expect.ErrorKind, session.Output)
		}
		if session.ErrorKind != expect.ErrorKind {
			return fmt.Sprintf("steps[%d]: expected %s, got %v", index, expect.ErrorKind, err)
		}
		if expect.ErrorCode != "" && !ir.HasCode(err, ir.ErrorCode(expect.ErrorCode)) {
			return fmt.Sprintf("steps[%d]: expected code %s, got %v", index, expect.ErrorCode, err)
		}
		return ""
	}
	if err != nil {
		return fmt.Sprintf("steps[%d]: expected output %q, got error %v", index, expect.Output, err)
	}
	if session.Output != expect.Output {
		return fmt.Sprintf("steps[%d]: expected output %q, got %q", index, expect.Output, session.Output)
	}
	return ""
}

func toIRObject(m map[string]any) (ir.IRObject, error) {
	v, err := ir.FromGo(m)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(ir.IRObject)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", v)
	}
	return obj, nil
}
