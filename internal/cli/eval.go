package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/temporal/internal/engine"
	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/store"
	"github.com/roach88/temporal/internal/trace"
)

// EvalResult is the payload of a successful operation.
type EvalResult struct {
	Operation string        `json:"operation"`
	Kind      string        `json:"kind"`
	Value     string        `json:"value"`
	Fields    ir.IRObject   `json:"fields,omitempty"`
	Session   *TraceSummary `json:"session,omitempty"`
}

// Text renders the value, followed by the call log when traced.
func (r EvalResult) Text() string {
	var b strings.Builder
	b.WriteString(r.Value)
	b.WriteByte('\n')
	if r.Session != nil {
		b.WriteString(r.Session.Text())
	}
	return b.String()
}

// TraceSummary is the call log of one recorded session.
type TraceSummary struct {
	ID     string      `json:"id"`
	Digest string      `json:"digest"`
	Calls  []TraceCall `json:"calls"`
}

// TraceCall is one line of a call log.
type TraceCall struct {
	Seq    int64  `json:"seq"`
	Kind   string `json:"kind"`
	Method string `json:"method"`
	Error  string `json:"error,omitempty"`
}

func newTraceSummary(session ir.Session) *TraceSummary {
	calls := make([]TraceCall, len(session.Calls))
	for i, c := range session.Calls {
		calls[i] = TraceCall{Seq: c.Seq, Kind: string(c.Kind), Method: c.Method, Error: c.Error}
	}
	return &TraceSummary{ID: session.ID, Digest: session.Digest, Calls: calls}
}

// Text renders the call log one call per line.
func (s *TraceSummary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "session %s (%d calls)\n", s.ID, len(s.Calls))
	for _, c := range s.Calls {
		fmt.Fprintf(&b, "  [%d] %-4s %s", c.Seq, c.Kind, c.Method)
		if c.Error != "" {
			fmt.Fprintf(&b, " (error: %s)", c.Error)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "digest %s\n", s.Digest)
	return b.String()
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout(), Verbose: o.Verbose}
}

func (o *RootOptions) ids() trace.IDGenerator {
	if o.IDs != nil {
		return o.IDs
	}
	return trace.UUIDv7Generator{}
}

// runOperation evaluates op and writes the outcome. Operations are
// recorded when --trace or a database is set; stored sessions continue
// the database's logical clock.
func runOperation(opts *RootOptions, cmd *cobra.Command, op engine.Operation, input ir.IRObject) error {
	out := opts.formatter(cmd)
	slog.Debug("evaluating", "operation", string(op))

	if !opts.Trace && opts.Database == "" {
		result, err := engine.NewEvaluator().Evaluate(op, input)
		if err != nil {
			return reportEvaluationError(out, op, err, nil)
		}
		return out.Success(newEvalResult(op, result, nil))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	clock := trace.NewClock()
	var st *store.Store
	if opts.Database != "" {
		var err error
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		seq, err := st.MaxSeq(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read database clock", err)
		}
		clock = trace.NewClockAt(seq)
	}

	runner := trace.NewRunner(trace.WithIDGenerator(opts.ids()), trace.WithClock(clock))
	result, session, evalErr := runner.Run(op, input)
	if evalErr != nil && session.ID == "" {
		return WrapExitError(ExitCommandError, "failed to record session", evalErr)
	}

	if st != nil {
		if err := st.WriteSession(ctx, session); err != nil {
			return WrapExitError(ExitCommandError, "failed to store session", err)
		}
		slog.Info("session stored", "session", session.ID, "calls", len(session.Calls))
	}

	var summary *TraceSummary
	if opts.Trace {
		summary = newTraceSummary(session)
	}
	if evalErr != nil {
		return reportEvaluationError(out, op, evalErr, summary)
	}
	return out.Success(newEvalResult(op, result, summary))
}

func newEvalResult(op engine.Operation, result engine.Result, summary *TraceSummary) EvalResult {
	return EvalResult{
		Operation: string(op),
		Kind:      result.Kind,
		Value:     result.Value,
		Fields:    result.Fields,
		Session:   summary,
	}
}

// reportEvaluationError writes err and returns the exit error for it.
func reportEvaluationError(out *OutputFormatter, op engine.Operation, err error, summary *TraceSummary) error {
	var details any
	if summary != nil {
		details = summary
	}
	if writeErr := out.EvaluationError(err, details); writeErr != nil {
		return writeErr
	}
	return WrapExitError(ExitFailure, string(op)+" failed", err)
}

// parseOperand reads a command-line operand: a JSON object or array when
// it starts with '{' or '[', a string otherwise.
func parseOperand(arg string) (ir.IRValue, error) {
	trimmed := strings.TrimSpace(arg)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		v, err := ir.UnmarshalIRValue([]byte(trimmed))
		if err != nil {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid JSON operand %q: %v", arg, err))
		}
		return v, nil
	}
	return ir.IRString(arg), nil
}

// flagOr returns the flag value when set, the configured value otherwise.
func flagOr(cmd *cobra.Command, name, value, configured string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return configured
}
