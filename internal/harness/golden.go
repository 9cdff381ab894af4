package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/numtower/internal/ir"
)

// TraceSnapshot captures the complete trace for a scenario execution.
type TraceSnapshot struct {
	ScenarioName string
	Session      string
	Trace        []TraceEvent
}

// Value converts the snapshot to an IR object. Empty optional fields are
// omitted so golden files only show what a step produced.
func (s *TraceSnapshot) Value() ir.Object {
	trace := make(ir.Array, len(s.Trace))
	for i, event := range s.Trace {
		obj := ir.Object{
			"id":       ir.String(event.ID),
			"seq":      ir.Int(event.Seq),
			"op":       ir.String(event.Op),
			"operands": ir.Strings(event.Operands...),
		}
		if event.Rendered != "" {
			obj["rendered"] = ir.String(event.Rendered)
		}
		if event.Approx != "" {
			obj["approx"] = ir.String(event.Approx)
		}
		if event.Error != "" {
			obj["error"] = ir.String(event.Error)
		}
		trace[i] = obj
	}

	return ir.Object{
		"scenario_name": ir.String(s.ScenarioName),
		"session":       ir.String(s.Session),
		"trace":         trace,
	}
}

// Canonical returns the snapshot as canonical JSON together with its hash.
func (s *TraceSnapshot) Canonical() ([]byte, string, error) {
	v := s.Value()
	data, err := ir.MarshalCanonical(v)
	if err != nil {
		return nil, "", err
	}
	hash, err := ir.TraceHash(v)
	if err != nil {
		return nil, "", err
	}
	return data, hash, nil
}

// Snapshot builds the snapshot of a finished run.
func Snapshot(name string, result *Result) TraceSnapshot {
	return TraceSnapshot{
		ScenarioName: name,
		Session:      result.Session,
		Trace:        result.Trace,
	}
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares the given result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := Snapshot(scenarioName, result)
	traceJSON, _, err := snapshot.Canonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)
	return nil
}
