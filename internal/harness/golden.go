package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/temporal/internal/ir"
)

// Snapshot renders a result as canonical JSON for golden comparison.
//
// Each step contributes its operation, output or error kind, and the
// "<kind> <method>" sequence of its calls. Session ids, seq values and
// digests are left out so a snapshot reads as the calendar protocol.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	steps := make(ir.IRArray, len(result.Steps))
	for i, step := range result.Steps {
		calls := make(ir.IRArray, len(step.Session.Calls))
		for j, c := range step.Session.Calls {
			calls[j] = ir.IRString(string(c.Kind) + " " + c.Method)
		}
		steps[i] = ir.IRObject{
			"operation":  ir.IRString(step.Op),
			"output":     ir.IRString(step.Session.Output),
			"error_kind": ir.IRString(step.Session.ErrorKind),
			"calls":      calls,
		}
	}
	return ir.MarshalCanonical(ir.IRObject{
		"scenario_name": ir.IRString(scenarioName),
		"steps":         steps,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, snapshot)

	return nil
}
