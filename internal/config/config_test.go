package config

import (
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func env(vals map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vals[k]
		return v, ok
	}
}

func write(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader(WithFs(afero.NewMemMapFs()), WithLookupEnv(noEnv)).Load("")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Rows)
	assert.Equal(t, "text", cfg.Format)
	assert.Empty(t, cfg.VocabularyDB)
	assert.Empty(t, cfg.File)
}

func TestLoad_ConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "/etc/subsel.yaml", "rows: 25\nformat: json\nvocabulary_db: /var/lib/subsel/vocab.db\n")

	cfg, err := NewLoader(WithFs(fs), WithLookupEnv(noEnv)).Load("/etc/subsel.yaml")
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Rows)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "/var/lib/subsel/vocab.db", cfg.VocabularyDB)
	assert.Equal(t, "/etc/subsel.yaml", cfg.File)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := NewLoader(WithFs(afero.NewMemMapFs()), WithLookupEnv(noEnv)).Load("/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_Precedence(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "/c.yaml", "rows: 2\nformat: text\n")
	write(t, fs, ".env", "SUBSEL_ROWS=3\nSUBSEL_FORMAT=json\n")
	write(t, fs, ".env.local", "SUBSEL_ROWS=4\n")

	cfg, err := NewLoader(WithFs(fs), WithLookupEnv(noEnv)).Load("/c.yaml")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Rows, ".env.local beats .env")
	assert.Equal(t, "json", cfg.Format, ".env beats the config file")

	cfg, err = NewLoader(WithFs(fs), WithLookupEnv(env(map[string]string{"SUBSEL_ROWS": "9"}))).Load("/c.yaml")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Rows, "environment beats .env files")
}

func TestLoad_ExpandsHome(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg, err := NewLoader(
		WithFs(afero.NewMemMapFs()),
		WithLookupEnv(env(map[string]string{"SUBSEL_VOCABULARY_DB": "~/vocab.db"})),
	).Load("")
	require.NoError(t, err)
	assert.Equal(t, home+"/vocab.db", cfg.VocabularyDB)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"negative rows", map[string]string{"SUBSEL_ROWS": "-1"}, "rows must not be negative"},
		{"bad format", map[string]string{"SUBSEL_FORMAT": "xml"}, "format must be text or json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(WithFs(afero.NewMemMapFs()), WithLookupEnv(env(tt.env))).Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_BadDotenv(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, ".env", "SUBSEL_ROWS='unterminated\n")

	_, err := NewLoader(WithFs(fs), WithLookupEnv(noEnv)).Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse .env")
}
