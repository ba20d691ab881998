package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/temporal/internal/ir"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Evaluation failure (RangeError, TypeError, replay divergence, failed scenarios)
	ExitCommandError = 2 // Command error (bad arguments, config or database errors)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, and ExitCommandError if the error is not
// an ExitError (cobra argument and flag errors).
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// Texter is implemented by payloads with their own text rendering.
type Texter interface {
	Text() string
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // ir.ErrorCode, or an E_* code for CLI failures
	Kind    string `json:"kind,omitempty"`    // RangeError | TypeError
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}

	if t, ok := data.(Texter); ok {
		_, err := io.WriteString(f.Writer, t.Text())
		return err
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	return f.write(&CLIError{Code: code, Message: message, Details: details})
}

// EvaluationError outputs an engine failure. ir.Error values report their
// kind and code; anything else was raised by a calendar or time zone and
// is reported as E_DELEGATE.
func (f *OutputFormatter) EvaluationError(err error, details any) error {
	cliErr := &CLIError{Code: "E_DELEGATE", Message: err.Error(), Details: details}
	var irErr *ir.Error
	if errors.As(err, &irErr) {
		cliErr.Code = string(irErr.Code)
		cliErr.Kind = string(irErr.Kind)
		cliErr.Message = irErr.Message
	}
	return f.write(cliErr)
}

func (f *OutputFormatter) write(cliErr *CLIError) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "error", Error: cliErr})
	}

	// Human-readable error
	if cliErr.Kind != "" {
		fmt.Fprintf(f.Writer, "%s [%s]: %s\n", cliErr.Kind, cliErr.Code, cliErr.Message)
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %s\n", cliErr.Code, cliErr.Message)
	}
	if t, ok := cliErr.Details.(Texter); ok {
		_, err := io.WriteString(f.Writer, t.Text())
		return err
	}
	if f.Verbose && cliErr.Details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", cliErr.Details)
	}
	return nil
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	encoder := json.NewEncoder(f.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}
