package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/store"
)

func TestReplayEmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "traces.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	stdout, _, err := execute(t, nil, "--db", dbPath, "replay")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No sessions found")
}

func TestReplayAllSessions(t *testing.T) {
	dbPath := recordSessions(t, []string{"s1", "s2", "s3"},
		[]string{"add", "2019-06", "P1M"},
		[]string{"until", "2019-01", "2020-08", "--smallest-unit", "year", "--rounding-mode", "halfExpand"},
		[]string{"from", `{"year": 2019, "month": 13}`, "--overflow", "reject"},
	)

	stdout, _, err := execute(t, nil, "--db", dbPath, "replay")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Replay Summary: 3 session(s)")
	assert.Contains(t, stdout, "ok   s1 add\n")
	assert.Contains(t, stdout, "ok   s2 until\n")
	assert.Contains(t, stdout, "ok   s3 from\n")
	assert.Contains(t, stdout, "All sessions replay to the recorded call log")
}

func TestReplaySpecificSession_JSON(t *testing.T) {
	dbPath := recordSessions(t, []string{"s1", "s2"},
		[]string{"add", "2019-06", "P1M"},
		[]string{"subtract", "2019-06", "P1M"},
	)

	stdout, _, err := execute(t, nil, "--db", dbPath, "--format", "json", "replay", "s2")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ReplayResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.AllMatch)
	require.Len(t, resp.Data.Sessions, 1)
	assert.Equal(t, "s2", resp.Data.Sessions[0].SessionID)
	assert.Equal(t, -1, resp.Data.Sessions[0].Divergence)
	assert.Equal(t, resp.Data.Sessions[0].ExpectedDigest, resp.Data.Sessions[0].ActualDigest)
}

func TestReplayDivergence(t *testing.T) {
	dbPath := recordSessions(t, []string{"s1"}, []string{"from", "2019-06"})

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.WriteSession(context.Background(), ir.Session{
		ID:            "tampered",
		Operation:     "from",
		Input:         ir.IRObject{"value": ir.IRString("2019-06")},
		Output:        "2019-05",
		Digest:        "not-a-digest",
		EngineVersion: ir.EngineVersion,
		TraceVersion:  ir.TraceVersion,
		StartedAt:     100,
	}))
	require.NoError(t, st.Close())

	stdout, _, err := execute(t, nil, "--db", dbPath, "replay")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, stdout, "Error [E_REPLAY_DIVERGED]: replay verification failed")
	assert.Contains(t, stdout, "ok   s1 from\n")
	assert.Contains(t, stdout, "FAIL tampered from\n  call log diverges at call 0\n  output differs\n")
	assert.Contains(t, stdout, "Replay verification failed")
}

func TestReplayUnknownSession(t *testing.T) {
	dbPath := recordSessions(t, []string{"s1"}, []string{"from", "2019-06"})

	_, _, err := execute(t, nil, "--db", dbPath, "replay", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to read session missing")
}

func TestReplayHelpText(t *testing.T) {
	stdout, _, err := execute(t, nil, "replay", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Re-evaluate recorded sessions")
	assert.Contains(t, stdout, "--db")
	assert.Contains(t, stdout, "Exit codes")
}
