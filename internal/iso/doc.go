// Package iso implements proleptic ISO 8601 calendar arithmetic.
//
// It validates and regulates raw (year, month[, day]) tuples against the
// representable range, balances out-of-range months and days into canonical
// values, and computes date sums and differences. All functions are pure;
// failures surface as *ir.Error values of kind RangeError.
//
// The representable domain is bounded by the instant limits of ±10^8 days
// around the Unix epoch:
//   - dates: -271821-04-19 through 275760-09-13
//   - year-months: -271821-04 through 275760-09
//
// Balancing uses floor division and Euclidean modulo throughout, so negative
// inputs carry into the next-larger unit the same way positive ones do.
package iso
