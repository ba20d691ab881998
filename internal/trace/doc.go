// Package trace records the calendar protocol an engine operation observes.
//
// A Calendar wraps a calendar receiver as a capability object. The engine
// sees an ordinary capability calendar; every method lookup ("get") and
// every invocation ("call") is appended to a Recorder as an ir.Call,
// stamped with a logical sequence number from a Clock.
//
// # Sessions
//
// Runner.Run evaluates one operation and returns the result together with
// an ir.Session: the operation, its input, its outcome and the ordered
// calls. The session digest hashes only the (kind, method, args) sequence,
// so two runs that drive the calendar identically share a digest even
// though their session ids differ.
//
// # Replay
//
// Replay is not a separate mode. Runner.Replay feeds a stored session's
// operation and input through the same Run path and compares the outcome
// and the call sequence with what was recorded:
//
//	stored session ──► Run(operation, input) ──► new session
//	                                                │
//	                         compare digest, output, error kind
//
// The engine holds no state between calls and calendar arithmetic is pure,
// so a replay of an unchanged engine always matches. A mismatch means the
// engine's observable behavior changed; ReplayResult.Divergence points at
// the first call that differs.
package trace
