// Package querysql compiles session queries to parameterized SQLite.
package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/temporal/internal/ir"
	"github.com/roach88/temporal/internal/queryir"
)

// SessionColumns is the column list every compiled query selects, in
// scan order: id, operation, output, error_kind, digest, started_at and
// the number of recorded calls.
const SessionColumns = `s.id, s.operation, s.output, s.error_kind, s.digest, s.started_at,
       (SELECT COUNT(*) FROM calls c WHERE c.session_id = s.id)`

// orderBy is appended to every query. started_at is unique per store in
// practice, and the id tiebreaker keeps the order total regardless.
const orderBy = "ORDER BY s.started_at ASC, s.id COLLATE BINARY ASC"

// SQLCompiler compiles queryir queries for the trace store schema.
//
// Values are always bound as parameters, never interpolated. Field names
// reach the SQL text only after queryir.Validate has checked them against
// queryir.Fields.
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// Compile converts q to SQL and its parameters.
func (c *SQLCompiler) Compile(q queryir.Query) (string, []any, error) {
	if err := queryir.Validate(q).Err(); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(SessionColumns)
	b.WriteString("\nFROM sessions s")

	var params []any
	if q.Filter != nil {
		where, whereParams, err := c.compilePredicate(q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		b.WriteString("\nWHERE ")
		b.WriteString(where)
		params = whereParams
	}

	b.WriteString("\n")
	b.WriteString(orderBy)

	if q.Limit > 0 {
		b.WriteString("\nLIMIT ?")
		params = append(params, int64(q.Limit))
	}
	return b.String(), params, nil
}

func (c *SQLCompiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case queryir.Equals:
		return c.compileEquals(pred)
	case *queryir.Equals:
		return c.compileEquals(*pred)
	case queryir.HasCall:
		return c.compileHasCall(pred)
	case *queryir.HasCall:
		return c.compileHasCall(*pred)
	case queryir.And:
		return c.compileAnd(pred)
	case *queryir.And:
		return c.compileAnd(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func (c *SQLCompiler) compileEquals(eq queryir.Equals) (string, []any, error) {
	param, err := irValueToParam(eq.Value)
	if err != nil {
		return "", nil, fmt.Errorf("convert value for %s: %w", eq.Field, err)
	}
	return fmt.Sprintf("s.%s = ?", eq.Field), []any{param}, nil
}

func (c *SQLCompiler) compileHasCall(hc queryir.HasCall) (string, []any, error) {
	sql := "EXISTS (SELECT 1 FROM calls c WHERE c.session_id = s.id AND c.method = ?"
	params := []any{hc.Method}
	if hc.Kind != "" {
		sql += " AND c.kind = ?"
		params = append(params, string(hc.Kind))
	}
	return sql + ")", params, nil
}

func (c *SQLCompiler) compileAnd(and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	parts := make([]string, 0, len(and.Predicates))
	var params []any
	for _, pred := range and.Predicates {
		sql, predParams, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, predParams...)
	}
	return strings.Join(parts, " AND "), params, nil
}

// irValueToParam converts an ir.IRValue to a Go value for database/sql.
func irValueToParam(v ir.IRValue) (any, error) {
	switch val := v.(type) {
	case ir.IRString:
		return string(val), nil
	case ir.IRInt:
		return int64(val), nil
	case ir.IRBool:
		return bool(val), nil
	case ir.IRArray:
		return nil, fmt.Errorf("IRArray cannot be used as SQL parameter directly")
	case ir.IRObject:
		return nil, fmt.Errorf("IRObject cannot be used as SQL parameter directly")
	default:
		return nil, fmt.Errorf("unsupported IRValue type for SQL parameter: %T", v)
	}
}
