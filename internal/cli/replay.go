package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/temporal/internal/trace"
)

// ReplaySessionResult holds the replay result for a single session.
type ReplaySessionResult struct {
	SessionID      string `json:"session_id"`
	Operation      string `json:"operation"`
	Match          bool   `json:"match"`
	OutputMatch    bool   `json:"output_match"`
	ExpectedDigest string `json:"expected_digest"`
	ActualDigest   string `json:"actual_digest"`
	Divergence     int    `json:"divergence"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions      []ReplaySessionResult `json:"sessions"`
	TotalSessions int                   `json:"total_sessions"`
	AllMatch      bool                  `json:"all_match"`
}

// Text renders one line per session and a verdict.
func (r ReplayResult) Text() string {
	var b strings.Builder
	if r.TotalSessions == 0 {
		b.WriteString("No sessions found in database.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Replay Summary: %d session(s)\n\n", r.TotalSessions)
	for _, s := range r.Sessions {
		if s.Match {
			fmt.Fprintf(&b, "ok   %s %s\n", s.SessionID, s.Operation)
			continue
		}
		fmt.Fprintf(&b, "FAIL %s %s\n", s.SessionID, s.Operation)
		if s.Divergence >= 0 {
			fmt.Fprintf(&b, "  call log diverges at call %d\n", s.Divergence)
		}
		if !s.OutputMatch {
			b.WriteString("  output differs\n")
		}
	}
	b.WriteByte('\n')
	if r.AllMatch {
		b.WriteString("All sessions replay to the recorded call log\n")
	} else {
		b.WriteString("Replay verification failed\n")
	}
	return b.String()
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [session-id...]",
		Short: "Re-evaluate recorded sessions and compare call logs",
		Long: `Re-evaluate recorded sessions and verify each observes the same calendar calls.

A session matches when the replayed call log has the recorded digest and
the operation produces the same output or error. With no arguments every
session in the database is replayed.

Exit codes:
  0 - All sessions match
  1 - A session diverged
  2 - Command error (database not found, unknown session, etc.)

Examples:
  ymcalc --db ./traces.db replay
  ymcalc --db ./traces.db replay <session-id> --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, cmd, args)
		},
	}
	return cmd
}

func runReplay(opts *RootOptions, cmd *cobra.Command, ids []string) error {
	ctx := commandContext(cmd)

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	if len(ids) == 0 {
		summaries, err := st.ListSessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
		for _, s := range summaries {
			ids = append(ids, s.ID)
		}
	}

	result := ReplayResult{
		Sessions:      make([]ReplaySessionResult, 0, len(ids)),
		TotalSessions: len(ids),
		AllMatch:      true,
	}

	runner := trace.NewRunner()
	for _, id := range ids {
		session, err := st.ReadSession(ctx, id)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read session %s", id), err)
		}
		replay, err := runner.Replay(session)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", id), err)
		}

		result.Sessions = append(result.Sessions, ReplaySessionResult{
			SessionID:      id,
			Operation:      session.Operation,
			Match:          replay.Match,
			OutputMatch:    replay.OutputMatch,
			ExpectedDigest: replay.ExpectedDigest,
			ActualDigest:   replay.ActualDigest,
			Divergence:     replay.Divergence,
		})
		if !replay.Match {
			result.AllMatch = false
		}
	}

	out := opts.formatter(cmd)
	if !result.AllMatch {
		if err := out.Error("E_REPLAY_DIVERGED", "replay verification failed", result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return out.Success(result)
}
