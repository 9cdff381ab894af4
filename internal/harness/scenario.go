package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted run of calculator steps with expectations.
// Steps execute in order inside one session backed by a fresh journal.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Session is an optional fixed session token. Defaults to
	// "test-session-default" so evaluation IDs are reproducible.
	Session string `yaml:"session,omitempty"`

	// MaxMagnitude overrides the evaluator's operand limit. Zero keeps the
	// default; a negative value disables the limit.
	MaxMagnitude int `yaml:"max_magnitude,omitempty"`

	// MaxCost overrides the evaluator's intermediate size limit, with the
	// same zero and negative conventions as MaxMagnitude.
	MaxCost int64 `yaml:"max_cost,omitempty"`

	// Steps are the evaluations to perform.
	Steps []Step `yaml:"steps"`

	// Assertions validate the trace and journal after all steps ran.
	// Supported types: trace_contains, trace_order, trace_count, journal_failures
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one evaluation.
type Step struct {
	Op       string        `yaml:"op"`
	Operands []string      `yaml:"operands,omitempty"`
	Expect   *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause states the expected outcome of a step.
// Error and Rendered are mutually exclusive.
type ExpectClause struct {
	// Rendered is the exact display text of the value, e.g. "29 + 2i".
	Rendered string `yaml:"rendered,omitempty"`

	// Approx is the expected floating-point approximation text.
	Approx string `yaml:"approx,omitempty"`

	// Error is the expected error code, e.g. "DIVISION_BY_ZERO".
	Error string `yaml:"error,omitempty"`
}

// Assertion validates the trace or the journal.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Op selects steps by operation (trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// Operands must match exactly when set (trace_contains).
	Operands []string `yaml:"operands,omitempty"`

	// Rendered must match when set (trace_contains).
	Rendered string `yaml:"rendered,omitempty"`

	// Ops is the expected relative order of operations (trace_order).
	Ops []string `yaml:"ops,omitempty"`

	// Code filters journal failures; empty matches every failure
	// (journal_failures).
	Code string `yaml:"code,omitempty"`

	// Count is the expected number of matches (trace_count, journal_failures).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains   = "trace_contains"
	AssertTraceOrder      = "trace_order"
	AssertTraceCount      = "trace_count"
	AssertJournalFailures = "journal_failures"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML from memory.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict decoding catches typos like "assertion:" vs "assertions:".
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
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
		if e := step.Expect; e != nil {
			if e.Error != "" && (e.Rendered != "" || e.Approx != "") {
				return fmt.Errorf("steps[%d].expect: error cannot be combined with rendered or approx", i)
			}
			if e.Error == "" && e.Rendered == "" && e.Approx == "" {
				return fmt.Errorf("steps[%d].expect: one of rendered, approx or error is required", i)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertJournalFailures:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for journal_failures", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
