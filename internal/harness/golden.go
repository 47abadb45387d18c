package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/subsel/internal/ir"
)

// Snapshot renders a scenario outcome as golden file text: the query and
// its binds in bind order, or the error kind and message.
func Snapshot(result *Result) []byte {
	var b strings.Builder
	if result.Query == nil {
		fmt.Fprintf(&b, "-- error --\n%s\n%v\n", ir.KindOf(result.CompileError), result.CompileError)
		return []byte(b.String())
	}
	b.WriteString(result.Query.Text)
	b.WriteString("\n-- params --\n")
	for _, name := range result.Query.ParamNames() {
		fmt.Fprintf(&b, "%s = %#v\n", name, result.Query.Params[name])
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if the scenario cannot be run. Assertion failures are in
// the returned result; a golden mismatch fails t.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Snapshot(result))
}
