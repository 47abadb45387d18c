package harness

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestLoadScenario_InlineCriteria(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeScenario(t, fs, "s/inline.yaml", `
name: inline
description: "inline criteria"
rows: 3
criteria:
  screening status: Call
assertions:
  - type: contains
    fragment: screening_status_id
`)

	scenario, err := LoadScenario(fs, "s/inline.yaml")
	require.NoError(t, err)
	assert.Equal(t, "inline", scenario.Name)
	assert.Equal(t, 3, scenario.Rows)
	assert.NotZero(t, scenario.Criteria.Kind)
	assert.Len(t, scenario.Assertions, 1)
}

func TestLoadScenario_ResolvesFileRelativeToScenario(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeScenario(t, fs, "s/nested/file.yaml", `
name: from_file
description: "criteria from a selection file"
file: ../sel.cue
selection: due
assertions:
  - type: param_count
    count: 1
`)

	scenario, err := LoadScenario(fs, "s/nested/file.yaml")
	require.NoError(t, err)
	assert.Equal(t, "s/sel.cue", scenario.File)
	assert.Equal(t, "due", scenario.Selection)
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "unknown field",
			content: "name: x\ndescription: d\ncriterias: {a: b}\n",
			want:    "failed to parse YAML",
		},
		{
			name:    "missing name",
			content: "description: d\ncriteria: {a: b}\nassertions: [{type: param_count}]\n",
			want:    "name is required",
		},
		{
			name:    "missing description",
			content: "name: x\ncriteria: {a: b}\nassertions: [{type: param_count}]\n",
			want:    "description is required",
		},
		{
			name:    "no criteria source",
			content: "name: x\ndescription: d\nassertions: [{type: param_count}]\n",
			want:    "one of criteria or file is required",
		},
		{
			name:    "both criteria sources",
			content: "name: x\ndescription: d\nfile: a.cue\nselection: s\ncriteria: {a: b}\nassertions: [{type: param_count}]\n",
			want:    "mutually exclusive",
		},
		{
			name:    "file without selection",
			content: "name: x\ndescription: d\nfile: a.cue\nassertions: [{type: param_count}]\n",
			want:    "selection is required with file",
		},
		{
			name:    "no assertions",
			content: "name: x\ndescription: d\ncriteria: {a: b}\n",
			want:    "assertions list is required",
		},
		{
			name:    "unknown assertion type",
			content: "name: x\ndescription: d\ncriteria: {a: b}\nassertions: [{type: trace_order}]\n",
			want:    `unknown assertion type "trace_order"`,
		},
		{
			name:    "error without kind",
			content: "name: x\ndescription: d\ncriteria: {a: b}\nassertions: [{type: error}]\n",
			want:    "kind is required for error",
		},
		{
			name:    "join_count without table",
			content: "name: x\ndescription: d\ncriteria: {a: b}\nassertions: [{type: join_count, count: 1}]\n",
			want:    "table is required for join_count",
		},
		{
			name:    "vocabulary row without label",
			content: "name: x\ndescription: d\ncriteria: {a: b}\nvocabulary: [{domain: gender, id: 1}]\nassertions: [{type: param_count}]\n",
			want:    "vocabulary[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeScenario(t, fs, "bad.yaml", tt.content)
			_, err := LoadScenario(fs, "bad.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(afero.NewMemMapFs(), "absent.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}
