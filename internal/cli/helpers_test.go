package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/roach88/subsel/internal/testutil"
)

// cliEnv runs commands against an injected filesystem, clock and id
// generator, with the process environment hidden.
type cliEnv struct {
	fs    afero.Fs
	clock *testutil.FixedClock
}

func newCLIEnv() *cliEnv {
	return &cliEnv{
		fs:    afero.NewMemMapFs(),
		clock: testutil.NewFixedClock(2024, time.March, 15),
	}
}

// newOSEnv is a cliEnv on the real filesystem, for commands that open
// SQLite databases.
func newOSEnv() *cliEnv {
	e := newCLIEnv()
	e.fs = afero.NewOsFs()
	return e
}

func (e *cliEnv) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(e.fs, path, []byte(content), 0o644))
}

// run executes the root command with args and returns stdout and stderr.
func (e *cliEnv) run(args ...string) (string, string, error) {
	opts := &RootOptions{
		Fs:      e.fs,
		IDs:     testutil.NewSequentialIDs(""),
		Clock:   e.clock,
		Environ: func(string) (string, bool) { return "", false },
	}
	cmd := NewRootCommandWithOptions(opts)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

const selectionsYAML = `
selection:
  surveillance:
    description: subjects in surveillance
    criteria:
      screening status: Surveillance
  recall due:
    rows: 10
    criteria:
      - screening status: Recall
      - screening due date: 2 years later
`

const badSelectionYAML = `
selection:
  broken:
    criteria:
      favourite colour: blue
`
