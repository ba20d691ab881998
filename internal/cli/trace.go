package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/queryir"
	"github.com/roach88/temporal/internal/store"
)

// SessionListing is the payload of trace list.
type SessionListing struct {
	Sessions []SessionRow `json:"sessions"`
}

// SessionRow is one recorded session in a listing.
type SessionRow struct {
	ID        string `json:"id"`
	Operation string `json:"operation"`
	Output    string `json:"output,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	Calls     int    `json:"calls"`
	StartedAt int64  `json:"started_at"`
	Digest    string `json:"digest"`
}

// Text renders one line per session.
func (l SessionListing) Text() string {
	if len(l.Sessions) == 0 {
		return "No sessions recorded.\n"
	}
	var b strings.Builder
	for _, s := range l.Sessions {
		outcome := s.Output
		if s.ErrorKind != "" {
			outcome = s.ErrorKind
		}
		fmt.Fprintf(&b, "[%d] %s %-11s %-14s %d calls\n", s.StartedAt, s.ID, s.Operation, outcome, s.Calls)
	}
	return b.String()
}

// SessionDetail is the payload of trace show.
type SessionDetail struct {
	Session ir.Session `json:"session"`
	Verbose bool       `json:"-"`
}

// Text renders the session header and its call log. Arguments and
// results are shown in verbose mode.
func (d SessionDetail) Text() string {
	s := d.Session
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", s.ID)
	fmt.Fprintf(&b, "Operation: %s\n", s.Operation)
	fmt.Fprintf(&b, "Input: %s\n", canonicalText(s.Input))
	if s.ErrorKind != "" || s.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", s.Error)
	} else {
		fmt.Fprintf(&b, "Output: %s\n", s.Output)
	}
	fmt.Fprintf(&b, "Digest: %s\n", s.Digest)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "=== Calls ===")
	if len(s.Calls) == 0 {
		fmt.Fprintln(&b, "  (no calls)")
	}
	for _, c := range s.Calls {
		fmt.Fprintf(&b, "  [%d] %-4s %s\n", c.Seq, c.Kind, c.Method)
		if d.Verbose {
			fmt.Fprintf(&b, "       Args: %s\n", canonicalText(c.Args))
			if c.Result != nil {
				fmt.Fprintf(&b, "       Result: %s\n", canonicalText(c.Result))
			}
			fmt.Fprintf(&b, "       ID: %s\n", truncateID(c.ID))
		}
		if c.Error != "" {
			fmt.Fprintf(&b, "       Error: %s\n", c.Error)
		}
	}
	return b.String()
}

// NewTraceCommand creates the trace command and its subcommands.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect recorded sessions",
		Long: `Inspect the sessions recorded in a trace database.

A session is one operation and the calendar methods it looked up and
called, in order. Operations are recorded when --db is set.

Examples:
  ymcalc --db ./traces.db trace list
  ymcalc --db ./traces.db trace show <session-id>
  ymcalc --db ./traces.db trace show <session-id> --verbose --format json`,
	}

	cmd.AddCommand(newTraceListCommand(rootOpts))
	cmd.AddCommand(&cobra.Command{
		Use:           "show <session-id>",
		Short:         "Show the call log of a session",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraceShow(rootOpts, cmd, args[0])
		},
	})

	return cmd
}

// TraceListOptions filters the sessions shown by trace list.
type TraceListOptions struct {
	Operation string
	ErrorKind string
	Method    string
	Limit     int
}

func newTraceListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceListOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions",
		Long: `List recorded sessions in logical start order.

Filters combine with AND. --error-kind "" selects the sessions that
succeeded.

Examples:
  ymcalc --db ./traces.db trace list --operation until
  ymcalc --db ./traces.db trace list --error-kind RangeError
  ymcalc --db ./traces.db trace list --method dateUntil --limit 5`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraceList(rootOpts, cmd, opts.query(cmd))
		},
	}

	cmd.Flags().StringVar(&opts.Operation, "operation", "", "only sessions of this operation")
	cmd.Flags().StringVar(&opts.ErrorKind, "error-kind", "", "only sessions that raised this error kind")
	cmd.Flags().StringVar(&opts.Method, "method", "", "only sessions that called this calendar method")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of sessions (0 for all)")

	return cmd
}

// query translates the set flags into a session query.
func (o *TraceListOptions) query(cmd *cobra.Command) queryir.Query {
	var preds []queryir.Predicate
	if cmd.Flags().Changed("operation") {
		preds = append(preds, queryir.Equals{Field: queryir.FieldOperation, Value: ir.IRString(o.Operation)})
	}
	if cmd.Flags().Changed("error-kind") {
		preds = append(preds, queryir.Equals{Field: queryir.FieldErrorKind, Value: ir.IRString(o.ErrorKind)})
	}
	if cmd.Flags().Changed("method") {
		preds = append(preds, queryir.HasCall{Method: o.Method, Kind: ir.CallKindCall})
	}
	q := queryir.Where(preds...)
	q.Limit = o.Limit
	return q
}

// openStore opens the trace database named by --db or the config.
func openStore(opts *RootOptions) (*store.Store, error) {
	if opts.Database == "" {
		return nil, NewExitError(ExitCommandError, "a trace database is required (--db or database in config)")
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runTraceList(opts *RootOptions, cmd *cobra.Command, q queryir.Query) error {
	if err := queryir.Validate(q).Err(); err != nil {
		return WrapExitError(ExitCommandError, "invalid filter", err)
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	summaries, err := st.QuerySessions(commandContext(cmd), q)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	listing := SessionListing{Sessions: make([]SessionRow, 0, len(summaries))}
	for _, s := range summaries {
		listing.Sessions = append(listing.Sessions, SessionRow{
			ID:        s.ID,
			Operation: s.Operation,
			Output:    s.Output,
			ErrorKind: s.ErrorKind,
			Calls:     s.Calls,
			StartedAt: s.StartedAt,
			Digest:    s.Digest,
		})
	}
	return opts.formatter(cmd).Success(listing)
}

func runTraceShow(opts *RootOptions, cmd *cobra.Command, id string) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	session, err := st.ReadSession(commandContext(cmd), id)
	if errors.Is(err, store.ErrSessionNotFound) {
		return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", id))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}
	return opts.formatter(cmd).Success(SessionDetail{Session: session, Verbose: opts.Verbose})
}

// canonicalText renders a value as canonical JSON for display.
func canonicalText(v ir.IRValue) string {
	data, err := ir.MarshalCanonical(v)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(data)
}

// truncateID truncates a long ID for display.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}
