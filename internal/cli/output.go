package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/numtower/internal/arith"
)

// Exit codes. A zero exit is Execute returning nil.
const (
	ExitFailure      = 1 // arithmetic, scenario or validation failure
	ExitCommandError = 2 // bad flags, missing paths, journal errors
)

// CLI error codes. Arithmetic failures report their arith.ErrorCode instead.
const (
	ErrCodeGeneric  = "E001"
	ErrCodeNotFound = "E005"
	ErrCodeSchema   = "E010"
	ErrCodeDatabase = "E020"
	ErrCodeTestFail = "E_TEST_FAILED"
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError creates an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError creates an ExitError around err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the code of the first ExitError in err's chain, or
// ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// CLIResponse is the envelope of every JSON document a command prints.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error member of a CLIResponse. Code is an E-code or an
// arith code such as "DIVISION_BY_ZERO".
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OutputFormatter writes command results as text or JSON.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics; keeps JSON on Writer clean
	Verbose   bool
}

// Success writes data in a JSON "ok" envelope. Text output is written by
// each command itself.
func (f *OutputFormatter) Success(data any) error {
	return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
}

// Error writes a failure in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message},
		})
	}
	_, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return err
}

// Fail reports err and returns the matching ExitError. Arithmetic errors keep
// their code and exit with ExitFailure; anything else is a command error.
func (f *OutputFormatter) Fail(err error) error {
	if code := arith.CodeOf(err); code != "" {
		_ = f.Error(string(code), err.Error())
		return WrapExitError(ExitFailure, "evaluation failed", err)
	}
	_ = f.Error(ErrCodeGeneric, err.Error())
	return WrapExitError(ExitCommandError, "command failed", err)
}

// VerboseLog writes a diagnostic line to ErrWriter when verbose is set.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose || f.ErrWriter == nil {
		return
	}
	fmt.Fprintf(f.ErrWriter, format+"\n", args...)
}
