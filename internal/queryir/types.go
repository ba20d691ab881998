package queryir

import "github.com/roach88/temporal/internal/ir"

// Session fields that an Equals predicate may reference.
const (
	FieldOperation     = "operation"
	FieldOutput        = "output"
	FieldErrorKind     = "error_kind"
	FieldDigest        = "digest"
	FieldEngineVersion = "engine_version"
)

// Fields lists every field Equals accepts, in a stable order.
var Fields = []string{
	FieldOperation,
	FieldOutput,
	FieldErrorKind,
	FieldDigest,
	FieldEngineVersion,
}

// Query selects sessions in logical start order.
type Query struct {
	Filter Predicate // nil matches every session
	Limit  int       // 0 means no limit
}

// Predicate is a filter condition over one session.
//
// This is a sealed interface so backend compilers can switch over it
// exhaustively.
type Predicate interface {
	predicateNode()
}

// Equals holds when a session field equals a literal value.
//
//	Equals{Field: FieldOperation, Value: ir.IRString("until")}
type Equals struct {
	Field string
	Value ir.IRValue // IRString only; every session field is text
}

func (Equals) predicateNode() {}

// HasCall holds when the session recorded at least one call to Method.
// An empty Kind matches both lookups and invocations.
type HasCall struct {
	Method string
	Kind   ir.CallKind
}

func (HasCall) predicateNode() {}

// And holds when every predicate holds. An empty And always holds.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Where is shorthand for a query with a conjunction of predicates.
// Nil predicates are skipped, so optional filters can be passed through.
func Where(preds ...Predicate) Query {
	var kept []Predicate
	for _, p := range preds {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return Query{}
	case 1:
		return Query{Filter: kept[0]}
	default:
		return Query{Filter: And{Predicates: kept}}
	}
}
