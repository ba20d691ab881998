package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/temporal/internal/engine"
)

// Scenario is a sequence of engine operations with expected results and
// assertions over the calendar calls they make.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps are evaluated in order, each as one recorded session.
	Steps []Step `yaml:"steps"`

	// Assertions validate the recorded sessions.
	// Supported types: call_order, call_count, digest_equal, replay
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one operation evaluation.
type Step struct {
	// Op is the operation name (e.g., "until", "add").
	Op string `yaml:"op"`

	// Input is the operation input; see engine.Evaluator.Evaluate for keys.
	// Values are converted to ir.IRValue types during execution.
	Input map[string]any `yaml:"input"`

	// Expect specifies the expected outcome.
	// If nil, no validation is performed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect is the expected outcome of a step. Output and ErrorKind are
// exclusive.
type Expect struct {
	Output    string `yaml:"output,omitempty"`
	ErrorKind string `yaml:"error_kind,omitempty"`
	ErrorCode string `yaml:"error_code,omitempty"`
}

// Assertion validates the sessions of a scenario.
type Assertion struct {
	// Type specifies the assertion type:
	// - "call_order": Methods are invoked in this order within Step
	// - "call_count": Method is invoked exactly Count times within Step
	// - "digest_equal": Every step in Steps has the same call log digest
	// - "replay": The stored session of Step replays to the same digest
	Type string `yaml:"type"`

	// Step indexes Scenario.Steps (used by call_order, call_count, replay).
	Step int `yaml:"step,omitempty"`

	// Steps lists step indexes (used by digest_equal).
	Steps []int `yaml:"steps,omitempty"`

	// Method is the calendar method name (used by call_count).
	Method string `yaml:"method,omitempty"`

	// Kind selects lookups ("get") or invocations ("call", the default).
	Kind string `yaml:"kind,omitempty"`

	// Count is the expected number of occurrences (used by call_count).
	Count int `yaml:"count,omitempty"`

	// Methods is the expected method order (used by call_order).
	Methods []string `yaml:"methods,omitempty"`
}

// Assertion type constants.
const (
	AssertCallOrder   = "call_order"
	AssertCallCount   = "call_count"
	AssertDigestEqual = "digest_equal"
	AssertReplay      = "replay"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarios returns the .yaml files in dir, sorted by name.
func FindScenarios(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if _, err := engine.ParseOperation(step.Op); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
		if step.Input == nil {
			return fmt.Errorf("steps[%d]: input is required (use empty map if no input)", i)
		}
		if e := step.Expect; e != nil {
			if e.Output == "" && e.ErrorKind == "" {
				return fmt.Errorf("steps[%d].expect: output or error_kind is required", i)
			}
			if e.Output != "" && e.ErrorKind != "" {
				return fmt.Errorf("steps[%d].expect: output and error_kind are exclusive", i)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, len(s.Steps)); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, steps int) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	checkStep := func(step int) error {
		if step < 0 || step >= steps {
			return fmt.Errorf("assertions[%d]: step %d out of range", index, step)
		}
		return nil
	}

	switch a.Type {
	case AssertCallOrder:
		if len(a.Methods) == 0 {
			return fmt.Errorf("assertions[%d]: methods list is required for call_order", index)
		}
		return checkStep(a.Step)
	case AssertCallCount:
		if a.Method == "" {
			return fmt.Errorf("assertions[%d]: method is required for call_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for call_count", index)
		}
		return checkStep(a.Step)
	case AssertDigestEqual:
		if len(a.Steps) < 2 {
			return fmt.Errorf("assertions[%d]: at least two steps are required for digest_equal", index)
		}
		for _, step := range a.Steps {
			if err := checkStep(step); err != nil {
				return err
			}
		}
		return nil
	case AssertReplay:
		return checkStep(a.Step)
	}
	return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
}
