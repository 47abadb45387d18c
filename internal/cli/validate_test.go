package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_File(t *testing.T) {
	env := newCLIEnv()
	env.write(t, "sel.yaml", selectionsYAML)

	out, _, err := env.run("validate", "sel.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "sel.yaml: surveillance")
	assert.Contains(t, out, "sel.yaml: recall due")
	assert.Contains(t, out, "All 2 selection(s) valid")
}

func TestValidate_DirectoryKeepsGoing(t *testing.T) {
	env := newCLIEnv()
	env.write(t, "/sels/a.yaml", selectionsYAML)
	env.write(t, "/sels/b.yaml", badSelectionYAML)
	env.write(t, "/sels/c.cue", "selection: {")
	env.write(t, "/sels/readme.md", "ignored")

	out, _, err := env.run("validate", "/sels")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "/sels/a.yaml: surveillance")
	assert.Contains(t, out, "/sels/b.yaml: broken\n  "+ErrCodeUnknownKey)
	assert.Contains(t, out, ErrCodeLoadFailed)
	assert.Contains(t, out, "2 of 4 check(s) failed")
	assert.NotContains(t, out, "readme")
}

func TestValidate_JSON(t *testing.T) {
	env := newCLIEnv()
	env.write(t, "/sels/a.yaml", selectionsYAML)
	env.write(t, "/sels/b.yaml", badSelectionYAML)

	out, _, err := env.run("validate", "/sels", "--format", "json")
	require.Error(t, err)

	var resp struct {
		Status  string           `json:"status"`
		TraceID string           `json:"trace_id"`
		Data    ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "trace-1", resp.TraceID)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Checks, 3)

	broken := resp.Data.Checks[2]
	assert.Equal(t, "broken", broken.Selection)
	assert.False(t, broken.Valid)
	require.NotNil(t, broken.Details)
	assert.Equal(t, "UNKNOWN_CRITERIA_KEY", broken.Details.Kind)
	assert.Equal(t, "favourite colour", broken.Details.Key)
}

func TestValidate_CommandErrors(t *testing.T) {
	env := newCLIEnv()
	require.NoError(t, env.fs.MkdirAll("/empty", 0o755))

	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing path", "/absent", ErrCodeNotFound},
		{"no selection files", "/empty", ErrCodeNoFiles},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := env.run("validate", tt.path)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
		})
	}
}
