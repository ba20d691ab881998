package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/temporal/internal/ir"
)

// createTestStore creates a new store in a temporary directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func ctx(t *testing.T) context.Context {
	t.Helper()
	return t.Context()
}

// createTestSession creates a session with two calls stamped after startedAt.
func createTestSession(id string, startedAt int64) ir.Session {
	getArgs := ir.IRArray{ir.IRString("fields")}
	callArgs := ir.IRArray{ir.StringArray([]string{"month", "monthCode", "year"})}
	calls := []ir.Call{
		{
			ID:        ir.MustCallID(id, startedAt+1, "iso8601", "fields", getArgs),
			SessionID: id,
			Seq:       startedAt + 1,
			Receiver:  "iso8601",
			Kind:      ir.CallKindGet,
			Method:    "fields",
			Args:      getArgs,
			Result:    ir.IRBool(true),
		},
		{
			ID:        ir.MustCallID(id, startedAt+2, "iso8601", "fields", callArgs),
			SessionID: id,
			Seq:       startedAt + 2,
			Receiver:  "iso8601",
			Kind:      ir.CallKindCall,
			Method:    "fields",
			Args:      callArgs,
			Result:    ir.StringArray([]string{"month", "monthCode", "year"}),
		},
	}
	digest, err := ir.CallLogDigest(calls)
	if err != nil {
		panic(err)
	}
	return ir.Session{
		ID:        id,
		Operation: "from",
		Input: ir.IRObject{
			"value": ir.IRObject{"year": ir.IRInt(2019), "month": ir.IRInt(6)},
		},
		Output:        "2019-06",
		Calls:         calls,
		Digest:        digest,
		EngineVersion: ir.EngineVersion,
		TraceVersion:  ir.TraceVersion,
		StartedAt:     startedAt,
	}
}
