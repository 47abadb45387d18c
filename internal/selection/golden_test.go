package selection

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/subsel/internal/ir"
)

// renderQuery is the golden file form of a compiled query.
func renderQuery(q *ir.CompiledQuery) []byte {
	var b strings.Builder
	b.WriteString(q.Text)
	b.WriteString("\n-- params --\n")
	for _, name := range q.ParamNames() {
		fmt.Fprintf(&b, "%s = %#v\n", name, q.Params[name])
	}
	return []byte(b.String())
}

func TestCompile_Golden(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		crit []ir.Criterion
	}{
		{
			name: "screening_status_surveillance",
			crit: []ir.Criterion{ir.C("screening status", "Surveillance")},
		},
		{
			name: "fobt_kit_abnormal",
			opts: Options{Rows: 5},
			crit: []ir.Criterion{
				ir.C("latest episode type", "FOBT"),
				ir.C("which test kit", "latest kit in latest episode"),
				ir.C("kit result", "Abnormal"),
			},
		},
		{
			name: "temporary_address_age",
			crit: []ir.Criterion{
				ir.C("subject has temporary address", "No"),
				ir.C("subject age (y/d)", "60/0"),
				ir.C("screening due date", "< 6 months later"),
			},
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := New().Compile(tt.crit, tt.opts)
			require.NoError(t, err)
			g.Assert(t, tt.name, renderQuery(q))
		})
	}
}
