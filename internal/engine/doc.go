// Package engine implements the year-month operations: difference
// (until/since), duration arithmetic (add/subtract), field replacement
// (with), and conversions to dates, month-days and from instants.
//
// Every operation resolves the calendar methods it needs into one
// temporal.CalendarMethodsRecord before touching any fields, and then calls
// only through that record. For a capability calendar that means:
//
//   - a missing method fails the whole operation with a TypeError before
//     any other calendar method runs;
//   - each method is looked up exactly once per operation, no matter how
//     many times it is called;
//   - errors returned by the calendar pass through unchanged.
//
// Options are snapshotted with ir.IRObject.Clone where an operation writes
// to them, so callers never observe mutation.
//
// The engine is synchronous and holds no state between calls. Evaluate
// dispatches a named operation over property-bag input for the CLI, the
// scenario harness and trace replay.
package engine
