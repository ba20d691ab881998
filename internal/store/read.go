package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/queryir"
	"github.com/roach88/temporal/internal/querysql"
)

// ErrSessionNotFound is returned when no session has the requested id.
var ErrSessionNotFound = errors.New("session not found")

// SessionSummary is one row of ListSessions.
type SessionSummary struct {
	ID        string
	Operation string
	Output    string
	ErrorKind string
	Digest    string
	StartedAt int64
	Calls     int
}

// ReadSession returns the session with id and its calls.
// Calls are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
func (s *Store) ReadSession(ctx context.Context, id string) (ir.Session, error) {
	var (
		session   ir.Session
		inputJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, operation, input, output, error_kind, error, digest, engine_version, trace_version, started_at
		FROM sessions
		WHERE id = ?
	`, id).Scan(
		&session.ID,
		&session.Operation,
		&inputJSON,
		&session.Output,
		&session.ErrorKind,
		&session.Error,
		&session.Digest,
		&session.EngineVersion,
		&session.TraceVersion,
		&session.StartedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Session{}, fmt.Errorf("read session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return ir.Session{}, fmt.Errorf("read session %s: %w", id, err)
	}

	session.Input, err = unmarshalInput(inputJSON)
	if err != nil {
		return ir.Session{}, fmt.Errorf("read session %s: %w", id, err)
	}

	session.Calls, err = s.readCalls(ctx, id)
	if err != nil {
		return ir.Session{}, fmt.Errorf("read session %s: %w", id, err)
	}
	return session, nil
}

func (s *Store) readCalls(ctx context.Context, sessionID string) ([]ir.Call, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, seq, receiver, kind, method, args, result, error
		FROM calls
		WHERE session_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query calls: %w", err)
	}
	defer rows.Close()

	calls := []ir.Call{}
	for rows.Next() {
		call, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calls: %w", err)
	}
	return calls, nil
}

func scanCall(rows *sql.Rows) (ir.Call, error) {
	var (
		call       ir.Call
		kind       string
		argsJSON   string
		resultJSON sql.NullString
	)
	err := rows.Scan(
		&call.ID,
		&call.SessionID,
		&call.Seq,
		&call.Receiver,
		&kind,
		&call.Method,
		&argsJSON,
		&resultJSON,
		&call.Error,
	)
	if err != nil {
		return ir.Call{}, fmt.Errorf("scan call: %w", err)
	}
	call.Kind = ir.CallKind(kind)

	if call.Args, err = unmarshalArgs(argsJSON); err != nil {
		return ir.Call{}, err
	}
	if call.Result, err = unmarshalResult(resultJSON); err != nil {
		return ir.Call{}, err
	}
	return call, nil
}

// ListSessions returns a summary of every session in logical start order.
// Returns an empty slice (not nil) for an empty store.
func (s *Store) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	return s.QuerySessions(ctx, queryir.Query{})
}

// QuerySessions returns the summaries of sessions matching q, in logical
// start order. An invalid query is rejected before touching the database.
func (s *Store) QuerySessions(ctx context.Context, q queryir.Query) ([]SessionSummary, error) {
	query, params, err := querysql.NewSQLCompiler().Compile(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	summaries := []SessionSummary{}
	for rows.Next() {
		var sum SessionSummary
		if err := rows.Scan(&sum.ID, &sum.Operation, &sum.Output, &sum.ErrorKind, &sum.Digest, &sum.StartedAt, &sum.Calls); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return summaries, nil
}
