package store

import (
	"database/sql"
	"fmt"

	"github.com/roach88/temporal/internal/ir"
)

// marshalValue converts an IRValue to canonical JSON TEXT for storage.
// Uses RFC 8785 canonical JSON for deterministic serialization.
func marshalValue(v ir.IRValue) (string, error) {
	data, err := ir.MarshalCanonical(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// marshalResult stores an absent call result as SQL NULL, so it reads back
// as nil rather than IRNull.
func marshalResult(v ir.IRValue) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	data, err := marshalValue(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal result: %w", err)
	}
	return sql.NullString{String: data, Valid: true}, nil
}

// unmarshalInput parses canonical JSON TEXT to IRObject.
// Uses ir.IRObject.UnmarshalJSON which properly handles large integers via json.Number.
func unmarshalInput(data string) (ir.IRObject, error) {
	if data == "" || data == "{}" {
		return ir.IRObject{}, nil
	}
	var obj ir.IRObject
	if err := obj.UnmarshalJSON([]byte(data)); err != nil {
		return nil, fmt.Errorf("unmarshal input: %w", err)
	}
	return obj, nil
}

func unmarshalArgs(data string) (ir.IRArray, error) {
	v, err := ir.UnmarshalIRValue([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal args: %w", err)
	}
	arr, ok := v.(ir.IRArray)
	if !ok {
		return nil, fmt.Errorf("unmarshal args: expected JSON array, got %T", v)
	}
	return arr, nil
}

func unmarshalResult(data sql.NullString) (ir.IRValue, error) {
	if !data.Valid {
		return nil, nil
	}
	v, err := ir.UnmarshalIRValue([]byte(data.String))
	if err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return v, nil
}
