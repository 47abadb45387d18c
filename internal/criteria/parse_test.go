package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/subsel/internal/ir"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Parsed
	}{
		{"plain", "Surveillance", Parsed{Comparator: ir.EQ, Literal: "Surveillance"}},
		{"trimmed", "  60/0 ", Parsed{Comparator: ir.EQ, Literal: "60/0"}},
		{"negated", "NOT:Surveillance", Parsed{Negated: true, Comparator: ir.NE, Literal: "Surveillance"}},
		{"negated lower case", "not: Call", Parsed{Negated: true, Comparator: ir.NE, Literal: "Call"}},
		{"greater or equal", ">= 55", Parsed{Comparator: ir.GE, Literal: "55"}},
		{"less or equal", "<=55", Parsed{Comparator: ir.LE, Literal: "55"}},
		{"greater", "> 3 days ago", Parsed{Comparator: ir.GT, Literal: "3 days ago"}},
		{"less", "< today", Parsed{Comparator: ir.LT, Literal: "today"}},
		{"equals", "= today", Parsed{Comparator: ir.EQ, Literal: "today"}},
		{"not equals", "!= Call", Parsed{Negated: true, Comparator: ir.NE, Literal: "Call"}},
		{"more than", "more than 2 years ago", Parsed{Comparator: ir.GT, Literal: "2 years ago"}},
		{"less than", "Less Than 6 months later", Parsed{Comparator: ir.LT, Literal: "6 months later"}},
		{"comment", "# Surveillance", Parsed{Skip: true}},
		{"empty", "   ", Parsed{Skip: true}},
		{"phrase without space is a literal", "more thanks", Parsed{Comparator: ir.EQ, Literal: "more thanks"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseValue_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"negation then comparator", "NOT:> 5"},
		{"negation then phrase", "NOT: more than 3 days ago"},
		{"negation alone", "NOT:"},
		{"two comparators", "> more than 3 days ago"},
		{"two symbols", ">= > 4"},
		{"comparator alone", ">="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseValue(tt.raw)
			require.Error(t, err)
			assert.True(t, ir.IsKind(err, ir.ErrUnsupportedModifier), "got %v", err)
		})
	}
}

func TestCompiled_HasComparator(t *testing.T) {
	assert.False(t, Compiled{Comparator: ir.EQ}.HasComparator())
	assert.False(t, Compiled{Comparator: ir.NE}.HasComparator())
	assert.True(t, Compiled{Comparator: ir.GE}.HasComparator())
}
