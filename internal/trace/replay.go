package trace

import (
	"fmt"
	"log/slog"

	"github.com/roach88/temporal/internal/engine"
	"github.com/roach88/temporal/internal/ir"
)

// ReplayResult compares a recorded session with a fresh evaluation of its
// input.
type ReplayResult struct {
	SessionID      string
	Match          bool
	ExpectedDigest string
	ActualDigest   string
	OutputMatch    bool

	// Divergence is the index of the first call that differs, or -1.
	Divergence int

	// Replayed is the fresh session.
	Replayed ir.Session
}

// Replay re-runs session's operation over its recorded input and checks
// the call log digest and output against the recording. An evaluation
// error is not a replay failure; it is compared like any output.
func (r *Runner) Replay(session ir.Session) (ReplayResult, error) {
	op, err := engine.ParseOperation(session.Operation)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay %s: %w", session.ID, err)
	}

	_, replayed, err := r.Run(op, session.Input)
	if err != nil && replayed.ID == "" {
		return ReplayResult{}, fmt.Errorf("replay %s: %w", session.ID, err)
	}

	result := ReplayResult{
		SessionID:      session.ID,
		ExpectedDigest: session.Digest,
		ActualDigest:   replayed.Digest,
		OutputMatch:    replayed.Output == session.Output && replayed.Error == session.Error,
		Divergence:     firstDivergence(session.Calls, replayed.Calls),
		Replayed:       replayed,
	}
	result.Match = result.ExpectedDigest == result.ActualDigest && result.OutputMatch

	slog.Info("session replayed",
		"session", session.ID,
		"match", result.Match,
		"divergence", result.Divergence,
	)
	return result, nil
}

func firstDivergence(expected, actual []ir.Call) int {
	n := min(len(expected), len(actual))
	for i := range n {
		if !sameCall(expected[i], actual[i]) {
			return i
		}
	}
	if len(expected) != len(actual) {
		return n
	}
	return -1
}

func sameCall(a, b ir.Call) bool {
	if a.Kind != b.Kind || a.Method != b.Method {
		return false
	}
	left, err := ir.MarshalCanonical(a.Args)
	if err != nil {
		return false
	}
	right, err := ir.MarshalCanonical(b.Args)
	if err != nil {
		return false
	}
	return string(left) == string(right)
}
