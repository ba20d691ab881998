package temporal

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/temporal/internal/ir"
)

// decimalPrecision bounds every apd computation in this package. It covers
// epoch nanoseconds (22 digits) with ample headroom for products.
const decimalPrecision = 40

func decimalContext(rounding apd.Rounder) *apd.Context {
	ctx := apd.BaseContext.WithPrecision(decimalPrecision)
	ctx.Rounding = rounding
	return ctx
}

// rounder maps a rounding mode to apd's rounding for a value of the given
// sign. apd rounds half-way cases relative to zero, so the half-toward
// infinity modes depend on the sign.
func (m RoundingMode) rounder(sign int) apd.Rounder {
	switch m {
	case RoundingModeCeil:
		return apd.RoundCeiling
	case RoundingModeFloor:
		return apd.RoundFloor
	case RoundingModeExpand:
		return apd.RoundUp
	case RoundingModeTrunc:
		return apd.RoundDown
	case RoundingModeHalfExpand:
		return apd.RoundHalfUp
	case RoundingModeHalfTrunc:
		return apd.RoundHalfDown
	case RoundingModeHalfCeil:
		if sign < 0 {
			return apd.RoundHalfDown
		}
		return apd.RoundHalfUp
	case RoundingModeHalfFloor:
		if sign < 0 {
			return apd.RoundHalfUp
		}
		return apd.RoundHalfDown
	}
	return apd.RoundHalfEven
}

// RoundRationalToIncrement rounds num/den to a multiple of increment under
// mode. den and increment must be positive.
func RoundRationalToIncrement(num, den, increment int64, mode RoundingMode) (int64, error) {
	if den <= 0 || increment <= 0 {
		return 0, ir.NewRangeError(ir.ErrCodeInvalidOption, "cannot round %d/%d to increment %d", num, den, increment)
	}

	var divisor, quotient, rounded, result apd.Decimal
	exact := decimalContext(apd.RoundDown)
	if _, err := exact.Mul(&divisor, apd.New(den, 0), apd.New(increment, 0)); err != nil {
		return 0, err
	}
	if _, err := exact.Quo(&quotient, apd.New(num, 0), &divisor); err != nil {
		return 0, err
	}

	ctx := decimalContext(mode.rounder(quotient.Sign()))
	if _, err := ctx.RoundToIntegralValue(&rounded, &quotient); err != nil {
		return 0, err
	}
	if _, err := exact.Mul(&result, &rounded, apd.New(increment, 0)); err != nil {
		return 0, err
	}
	n, err := result.Int64()
	if err != nil {
		return 0, ir.NewRangeError(ir.ErrCodeInvalidDuration, "rounded value %s is out of range", result.String())
	}
	return n, nil
}
