package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const valuesYAML = `
- {domain: screening status, label: Surveillance, id: 94006}
- {domain: screening status, label: Recall, id: 94004}
- {domain: episode type, label: FOBT, id: 911350}
`

func TestVocab_ImportAndList(t *testing.T) {
	env := newOSEnv()
	dir := t.TempDir()
	db := filepath.Join(dir, "vocab.db")
	values := filepath.Join(dir, "values.yaml")
	env.write(t, values, valuesYAML)

	out, _, err := env.run("vocab", "import", values, "--vocab-db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 value(s)")
	assert.Contains(t, out, "import #1")

	out, _, err = env.run("vocab", "list", "--vocab-db", db, "--domain", "screening status", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data []ValidValue `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 2)
	for _, v := range resp.Data {
		assert.Equal(t, "screening status", v.Domain)
	}

	out, _, err = env.run("vocab", "list", "--vocab-db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "DOMAIN")
	assert.Contains(t, out, "911350")
}

func TestVocab_ImportJSONSummary(t *testing.T) {
	env := newOSEnv()
	dir := t.TempDir()
	values := filepath.Join(dir, "values.yaml")
	env.write(t, values, valuesYAML)

	out, _, err := env.run("vocab", "import", values, "--vocab-db", filepath.Join(dir, "v.db"), "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data ImportSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 3, resp.Data.Rows)
	assert.Equal(t, int64(1), resp.Data.Seq)
	assert.Len(t, resp.Data.Checksum, 64)
	assert.NotEmpty(t, resp.Data.ID)
}

func TestVocab_ImportRejected(t *testing.T) {
	env := newOSEnv()
	dir := t.TempDir()
	db := filepath.Join(dir, "vocab.db")
	values := filepath.Join(dir, "values.yaml")
	env.write(t, values, "- {domain: favourite colour, label: Blue, id: 1}\n")

	_, _, err := env.run("vocab", "import", values, "--vocab-db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestVocab_CommandErrors(t *testing.T) {
	env := newCLIEnv()
	env.write(t, "values.yaml", valuesYAML)
	env.write(t, "bad.yaml", "{not a list")

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"no database", []string{"vocab", "list"}, ErrCodeNotFound},
		{"missing database", []string{"vocab", "list", "--vocab-db", "/absent.db"}, ErrCodeNotFound},
		{"missing values file", []string{"vocab", "import", "absent.yaml", "--vocab-db", "x.db"}, ErrCodeNotFound},
		{"unparseable values", []string{"vocab", "import", "bad.yaml", "--vocab-db", "x.db"}, ErrCodeLoadFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := env.run(tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
		})
	}
}

func TestVocab_Domains(t *testing.T) {
	out, _, err := newCLIEnv().run("vocab", "domains")
	require.NoError(t, err)
	assert.Contains(t, out, "screening status\n")
	assert.Contains(t, out, "episode type\n")
}
