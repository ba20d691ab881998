package iso

import "github.com/roach88/temporal/internal/ir"

// Overflow is the policy for out-of-range fields.
type Overflow int

const (
	// Constrain clamps out-of-range fields into range.
	Constrain Overflow = iota

	// Reject fails on out-of-range fields.
	Reject
)

// String returns the option spelling of the policy.
func (o Overflow) String() string {
	if o == Reject {
		return "reject"
	}
	return "constrain"
}

// ParseOverflow maps an option string to a policy.
func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case "constrain":
		return Constrain, nil
	case "reject":
		return Reject, nil
	}
	return Constrain, ir.NewRangeError(ir.ErrCodeInvalidOption, "%q is not a valid value for overflow", s)
}
