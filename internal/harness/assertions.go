package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/store"
	"github.com/roach88/temporal/internal/trace"
)

// AssertionContext gives assertions access to the stored sessions.
type AssertionContext struct {
	Store  *store.Store
	Runner *trace.Runner
	Ctx    context.Context
}

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string    // Assertion type for categorization
	Expected string    // Human-readable expected outcome
	Actual   string    // Human-readable actual outcome
	Calls    []ir.Call // Calls of the step under test, for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Calls) > 0 {
		fmt.Fprintf(&buf, "\nCalls:\n")
		for _, c := range e.Calls {
			fmt.Fprintf(&buf, "  [%d] %s %s\n", c.Seq, c.Kind, c.Method)
		}
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a, actx); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

func evaluateAssertion(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertCallOrder:
		return assertCallOrder(result.Steps[a.Step].Session.Calls, a)
	case AssertCallCount:
		return assertCallCount(result.Steps[a.Step].Session.Calls, a)
	case AssertDigestEqual:
		return assertDigestEqual(result, a)
	case AssertReplay:
		return assertReplay(result.Steps[a.Step].Session.ID, actx)
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

func callKind(a Assertion) ir.CallKind {
	if a.Kind == string(ir.CallKindGet) {
		return ir.CallKindGet
	}
	return ir.CallKindCall
}

// assertCallOrder checks that the methods appear in the specified order.
// Methods don't need to be consecutive (intervening calls are allowed),
// and a method may be listed more than once.
func assertCallOrder(calls []ir.Call, a Assertion) error {
	kind := callKind(a)
	next := 0
	for _, c := range calls {
		if next < len(a.Methods) && c.Kind == kind && c.Method == a.Methods[next] {
			next++
		}
	}
	if next == len(a.Methods) {
		return nil
	}
	return &AssertionError{
		Type:     AssertCallOrder,
		Expected: fmt.Sprintf("%s in order: %v", kind, a.Methods),
		Actual:   fmt.Sprintf("matched %d, missing %s", next, a.Methods[next]),
		Calls:    calls,
	}
}

// assertCallCount checks that the method appears exactly Count times.
func assertCallCount(calls []ir.Call, a Assertion) error {
	kind := callKind(a)
	count := 0
	for _, c := range calls {
		if c.Kind == kind && c.Method == a.Method {
			count++
		}
	}
	if count == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertCallCount,
		Expected: fmt.Sprintf("%s %s x%d", kind, a.Method, a.Count),
		Actual:   fmt.Sprintf("x%d", count),
		Calls:    calls,
	}
}

func assertDigestEqual(result *Result, a Assertion) error {
	want := result.Steps[a.Steps[0]].Session.Digest
	for _, step := range a.Steps[1:] {
		if got := result.Steps[step].Session.Digest; got != want {
			return &AssertionError{
				Type:     AssertDigestEqual,
				Expected: fmt.Sprintf("step %d digest %s", step, want),
				Actual:   got,
			}
		}
	}
	return nil
}

// assertReplay reads the session back from the store and replays it.
func assertReplay(sessionID string, actx *AssertionContext) error {
	stored, err := actx.Store.ReadSession(actx.Ctx, sessionID)
	if err != nil {
		return err
	}
	replay, err := actx.Runner.Replay(stored)
	if err != nil {
		return err
	}
	if replay.Match {
		return nil
	}
	return &AssertionError{
		Type:     AssertReplay,
		Expected: fmt.Sprintf("digest %s, output %q", replay.ExpectedDigest, stored.Output),
		Actual: fmt.Sprintf("digest %s, output %q, first divergence at call %d",
			replay.ActualDigest, replay.Replayed.Output, replay.Divergence),
		Calls: replay.Replayed.Calls,
	}
}
