// Package store provides SQLite-backed durable storage for recorded
// calendar sessions.
//
// The store is an append-only log with two tables:
//   - sessions: one row per evaluated operation, with its input, output
//     or error, and call log digest
//   - calls: the ordered capability lookups and invocations of a session
//
// # Ordering
//
// All ordering uses the logical seq and started_at values, never
// timestamps. Queries order by seq ASC, id ASC COLLATE BINARY so that
// results are identical across reads.
//
// # Encoding
//
// Inputs, call arguments and call results are stored as RFC 8785
// canonical JSON, so a session read back hashes to the digest it was
// written with.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
