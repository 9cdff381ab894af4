package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: test_scenario
description: "Test scenario for validation"
session: s-1
steps:
  - op: mul
    operands: ["7-4i", "3+2i"]
    expect:
      rendered: "29 + 2i"
  - op: pi
assertions:
  - type: trace_contains
    op: mul
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	assert.Equal(t, "s-1", scenario.Session)
	require.Len(t, scenario.Steps, 2)
	assert.Equal(t, "mul", scenario.Steps[0].Op)
	assert.Equal(t, []string{"7-4i", "3+2i"}, scenario.Steps[0].Operands)
	assert.Equal(t, "29 + 2i", scenario.Steps[0].Expect.Rendered)
	assert.Nil(t, scenario.Steps[1].Expect)
	assert.Empty(t, scenario.Steps[1].Operands)
	assert.Len(t, scenario.Assertions, 1)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "unknown field"
steps:
  - op: pi
assertion:
  - type: trace_count
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nsteps: [{op: pi}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nsteps: [{op: pi}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			content: "name: n\ndescription: d\n",
			wantErr: "steps list is required",
		},
		{
			name:    "step without op",
			content: "name: n\ndescription: d\nsteps: [{operands: [\"1\"]}]\n",
			wantErr: "steps[0]: op is required",
		},
		{
			name:    "error combined with rendered",
			content: "name: n\ndescription: d\nsteps: [{op: pi, expect: {rendered: x, error: PARSE}}]\n",
			wantErr: "error cannot be combined",
		},
		{
			name:    "empty expect",
			content: "name: n\ndescription: d\nsteps: [{op: pi, expect: {}}]\n",
			wantErr: "one of rendered, approx or error",
		},
		{
			name:    "unknown assertion type",
			content: "name: n\ndescription: d\nsteps: [{op: pi}]\nassertions: [{type: final_state}]\n",
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name:    "trace_contains without op",
			content: "name: n\ndescription: d\nsteps: [{op: pi}]\nassertions: [{type: trace_contains}]\n",
			wantErr: "op is required for trace_contains",
		},
		{
			name:    "trace_order without ops",
			content: "name: n\ndescription: d\nsteps: [{op: pi}]\nassertions: [{type: trace_order}]\n",
			wantErr: "ops list is required",
		},
		{
			name:    "negative count",
			content: "name: n\ndescription: d\nsteps: [{op: pi}]\nassertions: [{type: journal_failures, count: -1}]\n",
			wantErr: "count must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_Testdata(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, err := LoadScenario(path)
			require.NoError(t, err)
		})
	}
}
