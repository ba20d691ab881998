// Package harness runs YAML scenarios of year-month operations and checks
// the calendar protocol they observe.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	steps:
//	  - op: until
//	    input: { value: "2019-01", other: "2020-06" }
//	    expect:
//	      output: "P1Y5M"
//	  - op: from
//	    input: { value: { year: 2019, month: 13 }, options: { overflow: reject } }
//	    expect:
//	      error_kind: RangeError
//	assertions:
//	  - type: call_order
//	    step: 0
//	    methods: [fields, dateFromFields, dateFromFields, dateUntil]
//	  - type: replay
//	    step: 0
//
// # Assertion Types
//
//   - call_order: methods are invoked in this order (gaps allowed)
//   - call_count: a method is invoked exactly N times; kind: get counts lookups
//   - digest_equal: the listed steps share a call log digest
//   - replay: the step's stored session replays to the same digest and output
//
// # Deterministic Testing
//
// Every step is a trace session run through a recording ISO 8601 calendar,
// with session ids "<name>-<n>" and a testutil.DeterministicClock shared by
// the scenario. Sessions are written to an in-memory SQLite store and
// replay assertions read them back, so each scenario also exercises the
// store round trip. Golden snapshots (see Snapshot) are canonical JSON.
package harness
