package queryir

import (
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/temporal/internal/ir"
)

// ValidationResult lists the problems found in a query.
type ValidationResult struct {
	Valid    bool
	Problems []string
}

// Err returns nil for a valid query and a joined error otherwise.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, len(r.Problems))
	for i, p := range r.Problems {
		errs[i] = errors.New(p)
	}
	return fmt.Errorf("invalid session query: %w", errors.Join(errs...))
}

// Validate checks field names, literal types and call kinds.
func Validate(q Query) ValidationResult {
	v := &validator{problems: []string{}}
	if q.Limit < 0 {
		v.addProblem("limit must not be negative, got %d", q.Limit)
	}
	if q.Filter != nil {
		v.validatePredicate(q.Filter)
	}
	return ValidationResult{
		Valid:    len(v.problems) == 0,
		Problems: v.problems,
	}
}

type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case Equals:
		v.validateEquals(pred)
	case *Equals:
		v.validateEquals(*pred)
	case HasCall:
		v.validateHasCall(pred)
	case *HasCall:
		v.validateHasCall(*pred)
	case And:
		v.validateAnd(pred)
	case *And:
		v.validateAnd(*pred)
	case nil:
		v.addProblem("nil predicate")
	default:
		v.addProblem("unknown predicate type: %T", p)
	}
}

func (v *validator) validateEquals(eq Equals) {
	if !slices.Contains(Fields, eq.Field) {
		v.addProblem("unknown session field %q", eq.Field)
	}
	if _, ok := eq.Value.(ir.IRString); !ok {
		v.addProblem("field %q must be compared to a string, got %T", eq.Field, eq.Value)
	}
}

func (v *validator) validateHasCall(hc HasCall) {
	if hc.Method == "" {
		v.addProblem("call predicate needs a method name")
	}
	switch hc.Kind {
	case "", ir.CallKindGet, ir.CallKindCall:
	default:
		v.addProblem("unknown call kind %q", hc.Kind)
	}
}

func (v *validator) validateAnd(and And) {
	for _, sub := range and.Predicates {
		v.validatePredicate(sub)
	}
}
