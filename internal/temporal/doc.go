// Package temporal provides calendar-aware value types and the machinery
// that binds them to a calendar or time zone.
//
// A calendar or time zone is either a built-in tag (an interned identifier
// such as "iso8601" or "UTC") or a capability object supplied by the caller.
// Higher-level algorithms never talk to either directly. They resolve the
// operations they need into a methods record once (CalendarMethodsRecord,
// TimeZoneMethodsRecord) and call through it, so one code path serves both
// receiver kinds.
//
// Capability objects implement Object. GetMethod returns a Go func whose
// signature matches one of the *Func types in this package:
//
//	cal := &temporal.Capability{
//	    Identifier: "custom",
//	    Methods: map[string]any{
//	        "fields": temporal.FieldsFunc(func(names []string) ([]string, error) {
//	            return names, nil
//	        }),
//	    },
//	}
//
// Values (PlainDate, PlainYearMonth, PlainMonthDay, PlainDateTime, Instant)
// are immutable and are only produced by the Create* constructors, which
// enforce the representable range. Failures are *ir.Error values; errors
// returned by capability objects pass through unchanged.
package temporal
