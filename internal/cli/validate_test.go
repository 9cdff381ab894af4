package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(harnessTestdata, "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	stdout, _, err := executeCommand(t, "", append([]string{"validate"}, files...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 scenario file(s) valid")
}

func TestValidate_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	bad := `name: BadName
description: uppercase name and an unknown code
steps:
  - op: div
    operands: ["1", "0"]
    expect:
      error: DIVIDE_BY_ZERO
`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0644))

	stdout, _, err := executeCommand(t, "", "validate", path, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Files, 1)
	assert.False(t, resp.Data.Files[0].Valid)
	require.NotEmpty(t, resp.Data.Files[0].Errors)
	assert.Equal(t, ErrCodeSchema, resp.Data.Files[0].Errors[0].Code)
}

func TestValidate_Text(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty_steps.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: empty_steps\ndescription: no steps\nsteps: []\n"), 0644))

	stdout, _, err := executeCommand(t, "", "validate", path)
	require.Error(t, err)
	assert.Contains(t, stdout, "Validation failed")
	assert.Contains(t, stdout, path)
	assert.Contains(t, stdout, "E010")
}

func TestValidate_MissingFile(t *testing.T) {
	_, _, err := executeCommand(t, "", "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
