package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/temporal/internal/ir"
)

func TestPrepareTemporalFields(t *testing.T) {
	source := ir.IRObject{
		"year":      ir.IRString("2019"),
		"month":     ir.IRInt(6),
		"monthCode": ir.IRString("M06"),
		"ignored":   ir.IRInt(1),
	}
	fields, err := PrepareTemporalFields(source, []string{"year", "month", "monthCode", "day"}, []string{"year"})
	require.NoError(t, err)
	assert.Equal(t, ir.IRObject{
		"year":      ir.IRInt(2019),
		"month":     ir.IRInt(6),
		"monthCode": ir.IRString("M06"),
	}, fields)
}

func TestPrepareTemporalFields_Errors(t *testing.T) {
	_, err := PrepareTemporalFields(ir.IRObject{}, []string{"year"}, []string{"year"})
	assert.True(t, ir.HasCode(err, ir.ErrCodeMissingField))

	_, err = PrepareTemporalFields(ir.IRObject{"month": ir.IRInt(0)}, []string{"month"}, nil)
	assert.True(t, ir.IsRangeError(err), "month must be positive")

	_, err = PrepareTemporalFields(ir.IRObject{"year": ir.IRString("soon")}, []string{"year"}, nil)
	assert.True(t, ir.IsRangeError(err))

	_, err = PrepareTemporalFields(ir.IRObject{"monthCode": ir.IRInt(6)}, []string{"monthCode"}, nil)
	assert.True(t, ir.IsTypeError(err))

	_, err = PrepareTemporalFields(ir.IRObject{}, []string{"__proto__"}, nil)
	assert.True(t, ir.IsRangeError(err))
}

func TestPreparePartialTemporalFields(t *testing.T) {
	fields, err := PreparePartialTemporalFields(ir.IRObject{"month": ir.IRInt(3)}, []string{"month", "year"})
	require.NoError(t, err)
	assert.Equal(t, ir.IRObject{"month": ir.IRInt(3)}, fields)

	_, err = PreparePartialTemporalFields(ir.IRObject{"day": ir.IRInt(3)}, []string{"month", "year"})
	assert.True(t, ir.IsTypeError(err))
}

func TestResolveISOMonth(t *testing.T) {
	m, err := ResolveISOMonth(ir.IRObject{"monthCode": ir.IRString("M11")})
	require.NoError(t, err)
	assert.Equal(t, int64(11), m)

	_, err = ResolveISOMonth(ir.IRObject{"monthCode": ir.IRString("M13")})
	assert.True(t, ir.IsRangeError(err))

	_, err = ResolveISOMonth(ir.IRObject{"monthCode": ir.IRString("M05L")})
	assert.True(t, ir.IsRangeError(err))

	_, err = ResolveISOMonth(ir.IRObject{})
	assert.True(t, ir.IsTypeError(err))
}
