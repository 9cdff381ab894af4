package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/numtower/internal/harness"
)

// ValidationError is one problem found in a scenario file.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// FileValidation holds the validation results of one file.
type FileValidation struct {
	Path   string            `json:"path"`
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario-file>...",
		Short: "Validate scenario files without running them",
		Long: `Validate scenario files against the embedded CUE schema and the
loader's own checks, without evaluating any step.

The schema also requires snake_case names and known error codes.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.Formatter(cmd)

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(paths))}
	for _, path := range paths {
		formatter.VerboseLog("Validating %s", path)
		fv := validateScenarioFile(path)
		if !fv.Valid {
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if result.Valid {
		return outputValidateSuccess(formatter, result)
	}
	return outputValidationErrors(formatter, result)
}

// validateScenarioFile runs the CUE schema first and the loader second, so a
// file is reported against both rule sets.
func validateScenarioFile(path string) FileValidation {
	fv := FileValidation{Path: path}

	for _, err := range harness.ValidateFile(path) {
		ve := ValidationError{Code: ErrCodeSchema, Message: err.Error()}
		var se *harness.SchemaError
		if errors.As(err, &se) && se.Pos.IsValid() {
			ve.Message = se.Message
			ve.Line = se.Pos.Line()
		}
		fv.Errors = append(fv.Errors, ve)
	}

	if _, err := harness.LoadScenario(path); err != nil {
		fv.Errors = append(fv.Errors, ValidationError{Code: ErrCodeGeneric, Message: err.Error()})
	}

	fv.Valid = len(fv.Errors) == 0
	return fv
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %d scenario file(s) valid\n", len(result.Files))
	return nil
}

// outputValidationErrors outputs validation failures.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	var first *ValidationError
	count := 0
	for i := range result.Files {
		for j := range result.Files[i].Errors {
			if first == nil {
				first = &result.Files[i].Errors[j]
			}
			count++
		}
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    first.Code,
				Message: first.Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", count))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	for _, fv := range result.Files {
		if fv.Valid {
			continue
		}
		fmt.Fprintln(formatter.Writer)
		fmt.Fprintln(formatter.Writer, fv.Path)
		for _, err := range fv.Errors {
			if err.Line > 0 {
				fmt.Fprintf(formatter.Writer, "  line %d\n", err.Line)
			}
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", err.Code, err.Message)
		}
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", count))
}
