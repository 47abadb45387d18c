package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "subsel", cmd.Use)
	assert.Contains(t, cmd.Long, "parameterized")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"compile", "validate", "keys", "test", "vocab", "date"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	for _, name := range []string{"import", "list", "domains"} {
		sub, _, err := cmd.Find([]string{"vocab", name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := newCLIEnv().run("keys", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestConfigFileSetsFormat(t *testing.T) {
	env := newCLIEnv()
	env.write(t, "/cfg.yaml", "format: json\n")

	out, _, err := env.run("keys", "--config", "/cfg.yaml", "--filter", "nhs number")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`)

	out, _, err = env.run("keys", "--config", "/cfg.yaml", "--format", "text", "--filter", "nhs number")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := newCLIEnv().run("keys", "--config", "/absent.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVerboseLogsToStderr(t *testing.T) {
	env := newCLIEnv()
	env.write(t, "sel.yaml", selectionsYAML)

	out, errOut, err := env.run("compile", "sel.yaml", "--verbose", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "Compiling selection: surveillance")
	assert.NotContains(t, out, "level=DEBUG")
}
