package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/temporal/internal/ir"
)

// WriteSession inserts a session and its calls in one transaction.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - writing the same session
// twice is silently ignored. Other constraint violations still return errors.
//
// The input, call arguments and call results are serialized to canonical
// JSON per RFC 8785 for deterministic replay.
func (s *Store) WriteSession(ctx context.Context, session ir.Session) error {
	inputJSON, err := marshalValue(inputOf(session))
	if err != nil {
		return fmt.Errorf("write session %s: marshal input: %w", session.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write session %s: begin tx: %w", session.ID, err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions
		(id, operation, input, output, error_kind, error, digest, engine_version, trace_version, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		session.ID,
		session.Operation,
		inputJSON,
		session.Output,
		session.ErrorKind,
		session.Error,
		session.Digest,
		session.EngineVersion,
		session.TraceVersion,
		session.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("write session %s: %w", session.ID, err)
	}

	for _, call := range session.Calls {
		if err := writeCall(ctx, tx, call); err != nil {
			return fmt.Errorf("write session %s: %w", session.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write session %s: commit: %w", session.ID, err)
	}
	return nil
}

func writeCall(ctx context.Context, tx *sql.Tx, call ir.Call) error {
	args := call.Args
	if args == nil {
		args = ir.IRArray{}
	}
	argsJSON, err := marshalValue(args)
	if err != nil {
		return fmt.Errorf("call %d: marshal args: %w", call.Seq, err)
	}
	resultJSON, err := marshalResult(call.Result)
	if err != nil {
		return fmt.Errorf("call %d: %w", call.Seq, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO calls
		(id, session_id, seq, receiver, kind, method, args, result, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		call.ID,
		call.SessionID,
		call.Seq,
		call.Receiver,
		string(call.Kind),
		call.Method,
		argsJSON,
		resultJSON,
		call.Error,
	)
	if err != nil {
		return fmt.Errorf("call %d: %w", call.Seq, err)
	}
	return nil
}

func inputOf(session ir.Session) ir.IRObject {
	if session.Input == nil {
		return ir.IRObject{}
	}
	return session.Input
}
