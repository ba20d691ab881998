package ir

import (
	"errors"
	"fmt"
)

// ErrorKind is the host error class an engine failure surfaces as.
type ErrorKind string

const (
	// RangeError marks values outside the representable calendar domain,
	// invalid days, unparseable strings and out-of-range options.
	RangeError ErrorKind = "RangeError"

	// TypeError marks missing capabilities and operands of the wrong shape.
	TypeError ErrorKind = "TypeError"
)

// ErrorCode categorizes engine errors within a kind.
type ErrorCode string

const (
	// ErrCodeInvalidYearMonth indicates a year-month outside the representable range.
	ErrCodeInvalidYearMonth ErrorCode = "INVALID_YEAR_MONTH"

	// ErrCodeInvalidDate indicates an invalid or out-of-range ISO date.
	ErrCodeInvalidDate ErrorCode = "INVALID_DATE"

	// ErrCodeInvalidDateTime indicates an invalid or out-of-range date-time or instant.
	ErrCodeInvalidDateTime ErrorCode = "INVALID_DATE_TIME"

	// ErrCodeInvalidString indicates a string that does not match the ISO grammar.
	ErrCodeInvalidString ErrorCode = "INVALID_STRING"

	// ErrCodeInvalidOption indicates an option value outside its allowed set.
	ErrCodeInvalidOption ErrorCode = "INVALID_OPTION"

	// ErrCodeInvalidDuration indicates a duration with mixed signs or non-integral fields.
	ErrCodeInvalidDuration ErrorCode = "INVALID_DURATION"

	// ErrCodeInvalidField indicates a property bag field of the wrong shape or value.
	ErrCodeInvalidField ErrorCode = "INVALID_FIELD"

	// ErrCodeMissingField indicates a required property bag field is absent.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// ErrCodeInvalidCalendar indicates an unknown calendar identifier.
	ErrCodeInvalidCalendar ErrorCode = "INVALID_CALENDAR"

	// ErrCodeInvalidTimeZone indicates an unknown time zone identifier.
	ErrCodeInvalidTimeZone ErrorCode = "INVALID_TIME_ZONE"

	// ErrCodeInvalidOffset indicates an offset result outside (-1 day, +1 day).
	ErrCodeInvalidOffset ErrorCode = "INVALID_OFFSET"

	// ErrCodeMissingMethod indicates a capability object lacks a required method.
	ErrCodeMissingMethod ErrorCode = "MISSING_METHOD"

	// ErrCodeDifferentCalendars indicates operands carry different calendars.
	ErrCodeDifferentCalendars ErrorCode = "DIFFERENT_CALENDARS"

	// ErrCodeAmbiguousTime indicates a wall-clock time rejected by disambiguation.
	ErrCodeAmbiguousTime ErrorCode = "AMBIGUOUS_TIME"

	// ErrCodeInvalidOperand indicates an operand that cannot be coerced at all.
	ErrCodeInvalidOperand ErrorCode = "INVALID_OPERAND"
)

// Error is the engine's error-signalling channel.
//
// Every failure the engine raises itself is an *Error. Failures raised by
// capability objects are propagated unchanged and may be any error.
type Error struct {
	// Kind is the host error class.
	Kind ErrorKind

	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context.
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Code, e.Message)
}

// NewRangeError creates a RangeError with a formatted message.
func NewRangeError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Kind: RangeError, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewTypeError creates a TypeError with a formatted message.
func NewTypeError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Kind: TypeError, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewMissingMethodError creates the TypeError raised when a capability
// object does not expose method as a callable.
func NewMissingMethodError(receiver, method string) *Error {
	return &Error{
		Kind:    TypeError,
		Code:    ErrCodeMissingMethod,
		Message: fmt.Sprintf("%s is undefined", method),
		Details: map[string]string{
			"receiver": receiver,
			"method":   method,
		},
	}
}

// KindOf returns the ErrorKind of err, or "" when err is not an *Error.
// Uses errors.As to handle wrapped errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsRangeError returns true if err is a RangeError.
func IsRangeError(err error) bool {
	return KindOf(err) == RangeError
}

// IsTypeError returns true if err is a TypeError.
func IsTypeError(err error) bool {
	return KindOf(err) == TypeError
}

// HasCode returns true if err is an *Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
