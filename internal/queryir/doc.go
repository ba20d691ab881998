// Package queryir is a small intermediate representation for selecting
// recorded sessions out of the trace store.
//
// A Query is a filter over the sessions table plus an optional limit.
// Backends compile it; the only backend today is querysql, which emits
// parameterized SQLite.
//
//	[trace list flags] → [Query IR] → [SQL]
//
// # Predicates
//
// Predicate is a sealed interface. Only this package implements it:
//   - Equals: a session field equals a literal
//   - HasCall: the session made a call to a method, optionally of a kind
//   - And: every predicate holds (empty means always true)
//
// There is no OR and no NULL comparison. Session fields are never NULL
// in the store, so an absent result is written as the empty string.
//
// # Validation
//
// Validate reports every problem in a query rather than stopping at the
// first one. Backends must refuse queries that do not validate, which
// keeps field names out of the generated SQL unless they are on the
// allow list.
package queryir
