// Package ir provides the host value model consumed by the calendar engine.
//
// The engine never sees a full language runtime. Everything it needs from
// one lives here:
//   - property bags (IRObject) holding calendar fields and options
//   - numeric and string coercions over those bags (coerce.go)
//   - the error-signalling channel (RangeError / TypeError kinds, errors.go)
//   - canonical JSON and content hashes for recorded call traces
//
// Key design constraints:
//   - NO float types - calendar fields are integers, use int64
//   - A missing key in an IRObject is "undefined"; IRNull is an explicit null
//   - ir imports nothing internal; every other package may import ir
package ir
