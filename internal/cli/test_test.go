package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harnessScenarios = "../harness/testdata/scenarios"

const passingScenario = `name: one_step
description: a single from step
steps:
  - op: from
    input: { value: "2019-06" }
    expect:
      output: "2019-06"
`

const failingScenario = `name: wrong_output
description: a step with the wrong expectation
steps:
  - op: add
    input: { value: "2021-12", duration: "P1M" }
    expect:
      output: "2021-13"
`

func writeScenario(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

func TestTestCommand_HarnessScenarios(t *testing.T) {
	stdout, _, err := execute(t, nil, "test", harnessScenarios)
	require.NoError(t, err)

	assert.Contains(t, stdout, "ok   difference_rounding\n")
	assert.Contains(t, stdout, "ok   yearmonth_basics\n")
	assert.Contains(t, stdout, "Test Summary: 2 passed, 0 failed, 2 total")
}

func TestTestCommand_Filter(t *testing.T) {
	stdout, _, err := execute(t, nil, "--format", "json", "test", harnessScenarios, "--filter", "difference*")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Total)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "difference_rounding", resp.Data.Scenarios[0].Name)
}

func TestTestCommand_Failure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scenarios")
	writeScenario(t, dir, "one_step.yaml", passingScenario)
	writeScenario(t, dir, "wrong_output.yaml", failingScenario)

	stdout, _, err := execute(t, nil, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, stdout, "Error [E_TEST_FAILED]: 1 scenario(s) failed")
	assert.Contains(t, stdout, "ok   one_step\n")
	assert.Contains(t, stdout, "FAIL wrong_output\n")
	assert.Contains(t, stdout, `expected output "2021-13", got "2022-01"`)
	assert.Contains(t, stdout, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommand_UpdateGolden(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "scenarios")
	writeScenario(t, dir, "one_step.yaml", passingScenario)

	_, _, err := execute(t, nil, "test", dir, "--update")
	require.NoError(t, err)

	golden, err := os.ReadFile(filepath.Join(root, "golden", "one_step.golden"))
	require.NoError(t, err)
	assert.Equal(t,
		`{"scenario_name":"one_step","steps":[{"calls":["get fields","get yearMonthFromFields","call fields","call yearMonthFromFields"],"error_kind":"","operation":"from","output":"2019-06"}]}`,
		string(golden))

	// A stale golden file fails the scenario.
	require.NoError(t, os.WriteFile(filepath.Join(root, "golden", "one_step.golden"), []byte("{}"), 0o644))
	stdout, _, err := execute(t, nil, "test", dir)
	require.Error(t, err)
	assert.Contains(t, stdout, "calls do not match golden file")
}

func TestTestCommand_LoadError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scenarios")
	writeScenario(t, dir, "broken.yaml", "name: broken\n")

	stdout, _, err := execute(t, nil, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "FAIL broken.yaml\n")
	assert.Contains(t, stdout, "failed to load scenario")
}

func TestTestCommand_MissingDir(t *testing.T) {
	_, _, err := execute(t, nil, "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommand_Empty(t *testing.T) {
	stdout, _, err := execute(t, nil, "test", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", stdout)
}
