package trace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/temporal/internal/ir"
)

func TestRecorder_Record(t *testing.T) {
	r := NewRecorder("session-1", NewClockAt(10))
	assert.Equal(t, "session-1", r.SessionID())

	r.Record("iso8601", ir.CallKindGet, "fields", ir.IRArray{ir.IRString("fields")}, ir.IRBool(true), nil)
	r.Record("iso8601", ir.CallKindCall, "dateFromFields", nil, nil, errors.New("boom"))

	calls := r.Calls()
	require.Len(t, calls, 2)

	first := calls[0]
	assert.Equal(t, int64(11), first.Seq)
	assert.Equal(t, "session-1", first.SessionID)
	assert.Equal(t, ir.CallKindGet, first.Kind)
	assert.Equal(t, ir.IRBool(true), first.Result)
	assert.Empty(t, first.Error)
	assert.Equal(t, ir.MustCallID("session-1", 11, "iso8601", "fields", ir.IRArray{ir.IRString("fields")}), first.ID)

	second := calls[1]
	assert.Equal(t, int64(12), second.Seq)
	assert.Equal(t, "boom", second.Error)
	assert.Equal(t, ir.IRArray{}, second.Args, "nil args are recorded as empty")

	require.NoError(t, r.Err())
}

func TestRecorder_CallsIsCopy(t *testing.T) {
	r := NewRecorder("s", NewClock())
	r.Record("iso8601", ir.CallKindGet, "fields", nil, ir.IRBool(true), nil)

	calls := r.Calls()
	calls[0].Method = "changed"
	assert.Equal(t, "fields", r.Calls()[0].Method)
}
