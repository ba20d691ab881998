package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/temporal/internal/ir"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("E_TEST_FAILED", "1 scenario(s) failed", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	assert.Equal(t, "1 scenario(s) failed", resp.Error.Message)
	assert.Empty(t, resp.Error.Kind)
}

func TestOutputFormatter_EvaluationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantKind string
		wantMsg  string
	}{
		{
			name:     "range error",
			err:      ir.NewRangeError(ir.ErrCodeInvalidYearMonth, "month 13 is out of range"),
			wantCode: "INVALID_YEAR_MONTH",
			wantKind: "RangeError",
			wantMsg:  "month 13 is out of range",
		},
		{
			name:     "wrapped type error",
			err:      fmt.Errorf("coerce: %w", ir.NewMissingMethodError("custom", "fields")),
			wantCode: "MISSING_METHOD",
			wantKind: "TypeError",
			wantMsg:  "fields is undefined",
		},
		{
			name:     "delegate error",
			err:      errors.New("calendar exploded"),
			wantCode: "E_DELEGATE",
			wantMsg:  "calendar exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "json", Writer: buf}
			require.NoError(t, formatter.EvaluationError(tt.err, nil))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantKind, resp.Error.Kind)
			assert.Equal(t, tt.wantMsg, resp.Error.Message)
		})
	}
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("2019-06")
	require.NoError(t, err)
	assert.Equal(t, "2019-06\n", buf.String())
}

func TestOutputFormatter_TextSuccessTexter(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Success(EvalResult{Operation: "until", Kind: "duration", Value: "P1Y5M"})
	require.NoError(t, err)
	assert.Equal(t, "P1Y5M\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	err := formatter.Error("E_REPLAY_DIVERGED", "replay verification failed", map[string]string{"session": "s1"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E_REPLAY_DIVERGED]")
	assert.Contains(t, buf.String(), "replay verification failed")
	assert.NotContains(t, buf.String(), "Details:")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	details := map[string]string{"session": "s1"}
	err := formatter.Error("E_REPLAY_DIVERGED", "replay verification failed", details)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_TextEvaluationErrorWithTrace(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	summary := &TraceSummary{
		ID:     "s1",
		Digest: "abc",
		Calls:  []TraceCall{{Seq: 2, Kind: "call", Method: "yearMonthFromFields", Error: "boom"}},
	}
	err := formatter.EvaluationError(ir.NewRangeError(ir.ErrCodeInvalidYearMonth, "month 13 is out of range"), summary)
	require.NoError(t, err)
	assert.Equal(t,
		"RangeError [INVALID_YEAR_MONTH]: month 13 is out of range\n"+
			"session s1 (1 calls)\n"+
			"  [2] call yearMonthFromFields (error: boom)\n"+
			"digest abc\n",
		buf.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "failed")))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", WrapExitError(ExitCommandError, "bad db", errors.New("io")))))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.New(`unknown flag: --bogus`)))
}

func TestExitError_Message(t *testing.T) {
	assert.Equal(t, "failed", NewExitError(ExitFailure, "failed").Error())

	inner := errors.New("no such file")
	err := WrapExitError(ExitCommandError, "failed to open database", inner)
	assert.Equal(t, "failed to open database: no such file", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestCLIError_JSON(t *testing.T) {
	cliErr := CLIError{
		Code:    "INVALID_OPTION",
		Kind:    "RangeError",
		Message: `"sideways" is not a valid value for overflow`,
	}

	data, err := json.Marshal(cliErr)
	require.NoError(t, err)

	var decoded CLIError
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, cliErr.Code, decoded.Code)
	assert.Equal(t, cliErr.Kind, decoded.Kind)
	assert.Equal(t, cliErr.Message, decoded.Message)
}
