package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFile_Testdata(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			assert.Empty(t, ValidateFile(path))
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"name not snake case", "name: Bad-Name\ndescription: d\nsteps: [{op: pi}]\n"},
		{"missing steps", "name: n\ndescription: d\n"},
		{"empty steps", "name: n\ndescription: d\nsteps: []\n"},
		{"unknown error code", "name: n\ndescription: d\nsteps: [{op: pi, expect: {error: OOPS}}]\n"},
		{"empty rendered", "name: n\ndescription: d\nsteps: [{op: pi, expect: {rendered: \"\"}}]\n"},
		{"unknown field", "name: n\ndescription: d\nsteps: [{op: pi, args: [1]}]\n"},
		{"op with digits", "name: n\ndescription: d\nsteps: [{op: log2}]\n"},
		{"unknown assertion", "name: n\ndescription: d\nsteps: [{op: pi}]\nassertions: [{type: final_state}]\n"},
		{"negative count", "name: n\ndescription: d\nsteps: [{op: pi}]\nassertions: [{type: trace_count, op: pi, count: -1}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate("scenario.yaml", []byte(tt.content))
			assert.NotEmpty(t, errs)
		})
	}
}

func TestValidate_Accepts(t *testing.T) {
	content := `
name: ok_scenario
description: "minimal"
steps:
  - op: div
    operands: ["1", "0"]
    expect:
      error: DIVISION_BY_ZERO
  - op: pi
    expect:
      approx: "3.14159"
assertions:
  - type: journal_failures
    count: 1
`
	assert.Empty(t, Validate("ok.yaml", []byte(content)))
}

func TestValidateFile_Missing(t *testing.T) {
	errs := ValidateFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "failed to read scenario file")
}

func TestSchemaError_Format(t *testing.T) {
	err := &SchemaError{Message: "steps: incomplete list"}
	assert.Equal(t, "steps: incomplete list", err.Error())
}
