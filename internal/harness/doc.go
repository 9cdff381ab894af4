// Package harness runs scripted calculator scenarios and checks their traces.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario checks"
//	session: optional-fixed-token
//	max_magnitude: 50
//	steps:
//	  - op: mul
//	    operands: ["7-4i", "3+2i"]
//	    expect:
//	      rendered: "29 + 2i"
//	  - op: div
//	    operands: ["1", "0"]
//	    expect:
//	      error: DIVISION_BY_ZERO
//	assertions:
//	  - type: trace_contains
//	    op: mul
//	    rendered: "29 + 2i"
//	  - type: journal_failures
//	    code: DIVISION_BY_ZERO
//	    count: 1
//
// # Assertion Types
//
//   - trace_contains: a step with the op, and operands or rendered value if given
//   - trace_order: first occurrences of ops appear in the given order
//   - trace_count: an op appears exactly N times
//   - journal_failures: the journal holds N failures, optionally of one code
//
// # Deterministic Testing
//
// Every run uses a fixed session token, testutil.DeterministicClock and a
// fresh in-memory SQLite journal, so evaluation IDs and traces are identical
// across runs. RunWithGolden compares the canonical JSON trace against
// testdata/golden/<name>.golden.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/complex_demo.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, msg := range result.Errors {
//	    log.Println(msg)
//	}
//
// ValidateFile additionally checks a file against the embedded CUE schema,
// which is stricter than LoadScenario about names and error codes.
package harness
