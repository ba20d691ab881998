package cli

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/temporal/internal/trace"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestOperations_Text(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"from string", []string{"from", "2019-06"}, "2019-06\n"},
		{"from date string", []string{"from", "2019-06-24T15:43:27"}, "2019-06\n"},
		{"from bag constrain", []string{"from", `{"year": 2019, "month": 13}`}, "2019-12\n"},
		{"from monthCode", []string{"from", `{"year": 2019, "monthCode": "M07"}`}, "2019-07\n"},
		{"from show calendar", []string{"from", "2019-06", "--show-calendar", "critical"}, "2019-06-01[!u-ca=iso8601]\n"},
		{"add", []string{"add", "2019-06", "P1Y2M"}, "2020-08\n"},
		{"add across year", []string{"add", "2021-12", "P1M"}, "2022-01\n"},
		{"add bag duration", []string{"add", "2019-01", `{"months": 13}`}, "2020-02\n"},
		{"subtract", []string{"subtract", "2019-06", "P1Y2M"}, "2018-04\n"},
		{"until", []string{"until", "2019-01", "2020-06"}, "P1Y5M\n"},
		{"until months", []string{"until", "2019-01", "2020-06", "--largest-unit", "month"}, "P17M\n"},
		{"until rounded", []string{"until", "2019-01", "2020-08", "--smallest-unit", "year", "--rounding-mode", "halfExpand"}, "P2Y\n"},
		{"since", []string{"since", "2020-06", "2019-01"}, "P1Y5M\n"},
		{"with", []string{"with", "2019-06", `{"month": 12}`}, "2019-12\n"},
		{"at tokyo", []string{"at", "2019-06-30T23:30:00Z", "--time-zone", "Asia/Tokyo"}, "2019-07\n"},
		{"at offset", []string{"at", "2019-07-01T00:30:00+00:00", "--time-zone=-05:00"}, "2019-06\n"},
		{"at default zone", []string{"at", "2019-06-30T23:30:00Z"}, "2019-06\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, nil, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestOperations_EvaluationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"reject month", []string{"from", `{"year": 2019, "month": 13}`, "--overflow", "reject"}, "RangeError [INVALID_YEAR_MONTH]"},
		{"bad overflow", []string{"add", "2019-06", "P1M", "--overflow", "sideways"}, "RangeError [INVALID_OPTION]"},
		{"bad string", []string{"from", "2019-6"}, "RangeError [INVALID_STRING]"},
		{"bad calendar", []string{"from", `{"year": 2019, "month": 6}`, "--calendar", "gregory"}, "RangeError [INVALID_CALENDAR]"},
		{"with calendar", []string{"with", "2019-06", `{"calendar": "iso8601"}`}, "TypeError"},
		{"day unit", []string{"until", "2019-01", "2020-06", "--smallest-unit", "day"}, "RangeError [INVALID_OPTION]"},
		{"bad zone", []string{"at", "2019-06-30T23:30:00Z", "--time-zone", "Mars/Olympus"}, "RangeError [INVALID_TIME_ZONE]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, nil, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.True(t, strings.HasPrefix(stdout, tt.want), "stdout %q", stdout)
		})
	}
}

func TestOperations_CommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad json", []string{"from", `{"year": 2019,`}, "invalid JSON operand"},
		{"float field", []string{"from", `{"year": 2019.5, "month": 6}`}, "floats are not allowed"},
		{"with array", []string{"with", "2019-06", `[12]`}, "fields must be a JSON object"},
		{"missing arg", []string{"add", "2019-06"}, "accepts 2 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, nil, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOperations_JSON(t *testing.T) {
	tests := []struct {
		golden  string
		args    []string
		wantErr bool
	}{
		{"from_json", []string{"--format", "json", "from", "2019-06"}, false},
		{"until_json", []string{"--format", "json", "until", "2019-01", "2020-06"}, false},
		{"from_reject_json", []string{"--format", "json", "from", `{"year": 2019, "month": 13}`, "--overflow", "reject"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			stdout, _, err := execute(t, nil, tt.args...)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			newGoldie(t).Assert(t, tt.golden, []byte(stdout))
		})
	}
}

func TestOperations_Trace(t *testing.T) {
	opts := &RootOptions{IDs: trace.NewFixedGenerator("cli-1")}
	stdout, _, err := execute(t, opts, "--trace", "from", "2019-06")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, []string{
		"2019-06",
		"session cli-1 (4 calls)",
		"  [2] get  fields",
		"  [3] get  yearMonthFromFields",
		"  [4] call fields",
		"  [5] call yearMonthFromFields",
	}, lines[:6])
	assert.Regexp(t, `^digest [0-9a-f]{64}$`, lines[6])
}

func TestOperations_TraceEvaluationError(t *testing.T) {
	opts := &RootOptions{IDs: trace.NewFixedGenerator("cli-1")}
	stdout, _, err := execute(t, opts, "--trace", "from", `{"year": 2019, "month": 13}`, "--overflow", "reject")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.True(t, strings.HasPrefix(stdout, "RangeError [INVALID_YEAR_MONTH]: month 13 is out of range\nsession cli-1 (4 calls)\n"))
	assert.Contains(t, stdout, "  [5] call yearMonthFromFields (error: ")
}

func TestOperations_TraceDigestIgnoresSessionID(t *testing.T) {
	digestOf := func(id string) string {
		opts := &RootOptions{IDs: trace.NewFixedGenerator(id)}
		stdout, _, err := execute(t, opts, "--trace", "add", "2019-06", "P1M")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
		return lines[len(lines)-1]
	}
	assert.Equal(t, digestOf("first"), digestOf("second"))
}
