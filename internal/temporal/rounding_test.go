package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/temporal/internal/ir"
)

func TestRoundRationalToIncrement(t *testing.T) {
	tests := []struct {
		num, den, increment int64
		mode                RoundingMode
		want                int64
	}{
		{7, 2, 1, RoundingModeHalfExpand, 4},
		{-7, 2, 1, RoundingModeHalfExpand, -4},
		{7, 2, 1, RoundingModeHalfEven, 4},
		{5, 2, 1, RoundingModeHalfEven, 2},
		{5, 2, 1, RoundingModeHalfTrunc, 2},
		{5, 2, 1, RoundingModeHalfCeil, 3},
		{-5, 2, 1, RoundingModeHalfCeil, -2},
		{5, 2, 1, RoundingModeHalfFloor, 2},
		{-5, 2, 1, RoundingModeHalfFloor, -3},
		{7, 2, 1, RoundingModeFloor, 3},
		{-7, 2, 1, RoundingModeFloor, -4},
		{7, 2, 1, RoundingModeCeil, 4},
		{-7, 2, 1, RoundingModeCeil, -3},
		{7, 2, 1, RoundingModeTrunc, 3},
		{-7, 2, 1, RoundingModeTrunc, -3},
		{7, 2, 1, RoundingModeExpand, 4},
		{-7, 2, 1, RoundingModeExpand, -4},
		{13, 1, 5, RoundingModeHalfExpand, 15},
		{12, 1, 5, RoundingModeHalfExpand, 10},
		{1, 3, 1, RoundingModeCeil, 1},
		{0, 3, 1, RoundingModeExpand, 0},
	}
	for _, tt := range tests {
		got, err := RoundRationalToIncrement(tt.num, tt.den, tt.increment, tt.mode)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%d/%d by %d %s", tt.num, tt.den, tt.increment, tt.mode)
	}
}

func TestRoundRationalToIncrement_InvalidDenominator(t *testing.T) {
	_, err := RoundRationalToIncrement(1, 0, 1, RoundingModeTrunc)
	assert.True(t, ir.IsRangeError(err))
}

func TestRoundingMode_Negate(t *testing.T) {
	assert.Equal(t, RoundingModeFloor, RoundingModeCeil.Negate())
	assert.Equal(t, RoundingModeCeil, RoundingModeFloor.Negate())
	assert.Equal(t, RoundingModeHalfFloor, RoundingModeHalfCeil.Negate())
	assert.Equal(t, RoundingModeHalfCeil, RoundingModeHalfFloor.Negate())
	assert.Equal(t, RoundingModeTrunc, RoundingModeTrunc.Negate())
	assert.Equal(t, RoundingModeHalfEven, RoundingModeHalfEven.Negate())
}
