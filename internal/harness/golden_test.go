package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/ir"
)

func TestRunWithGolden_Testdata(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestTraceSnapshot_Value(t *testing.T) {
	snapshot := TraceSnapshot{
		ScenarioName: "snap",
		Session:      "s",
		Trace: []TraceEvent{
			{ID: "x", Seq: 1, Op: "pi", Operands: []string{}, Rendered: "355/113", Approx: "3.14159"},
			{ID: "y", Seq: 2, Op: "div", Operands: []string{"1", "0"}, Error: "DIVISION_BY_ZERO"},
		},
	}

	data, hash, err := snapshot.Canonical()
	require.NoError(t, err)
	assert.Equal(t,
		`{"scenario_name":"snap","session":"s","trace":[`+
			`{"approx":"3.14159","id":"x","op":"pi","operands":[],"rendered":"355/113","seq":1},`+
			`{"error":"DIVISION_BY_ZERO","id":"y","op":"div","operands":["1","0"],"seq":2}]}`,
		string(data))

	want, err := ir.TraceHash(snapshot.Value())
	require.NoError(t, err)
	assert.Equal(t, want, hash)
	assert.Len(t, hash, 64)
}

func TestAssertGolden_ExistingResult(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/trig_constants.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NoError(t, AssertGolden(t, scenario.Name, result))
}
