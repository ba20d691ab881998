package temporal

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/temporal/internal/ir"
)

func TestInstant_String(t *testing.T) {
	assert.Equal(t, "1970-01-01T00:00:00Z", InstantFromEpochNanoseconds(0).String())
	assert.Equal(t, "1969-12-31T23:59:59.999999999Z", InstantFromEpochNanoseconds(-1).String())
	assert.Equal(t, "1970-01-02T00:00:00.5Z", InstantFromEpochNanoseconds(86_400_500_000_000).String())
	assert.Equal(t, "1970-01-01T00:00:00Z", Instant{}.String(), "zero value is the epoch")
}

func TestNewInstant_Range(t *testing.T) {
	limit := apd.New(864, 19)
	instant, err := NewInstant(limit)
	require.NoError(t, err)
	assert.Equal(t, "+275760-09-13T00:00:00Z", instant.String())

	negative := new(apd.Decimal).Neg(limit)
	instant, err = NewInstant(negative)
	require.NoError(t, err)
	assert.Equal(t, "-271821-04-20T00:00:00Z", instant.String())

	beyond := apd.New(8_640_000_000_000_000_001, 3)
	_, err = NewInstant(beyond)
	assert.True(t, ir.HasCode(err, ir.ErrCodeInvalidDateTime))

	_, err = NewInstant(apd.New(15, -1))
	assert.True(t, ir.IsRangeError(err), "fractional nanoseconds are rejected")
}

func TestInstant_EpochNanosecondsIsACopy(t *testing.T) {
	instant := InstantFromEpochNanoseconds(42)
	ns := instant.EpochNanoseconds()
	ns.SetInt64(7)
	assert.Equal(t, "42", instant.EpochNanoseconds().String())
}

func TestToTemporalInstant(t *testing.T) {
	withOffset, err := ToTemporalInstant("2019-06-15T10:00:00+02:00")
	require.NoError(t, err)
	utc, err := ToTemporalInstant(ir.IRString("2019-06-15T08:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, 0, CompareInstant(withOffset, utc))

	later, err := utc.AddNanoseconds(1)
	require.NoError(t, err)
	assert.Equal(t, 1, CompareInstant(later, utc))

	_, err = ToTemporalInstant("2019-06-15T10:00:00")
	assert.True(t, ir.IsRangeError(err))

	_, err = ToTemporalInstant(12)
	assert.True(t, ir.IsTypeError(err))
}
