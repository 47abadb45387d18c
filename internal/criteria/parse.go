package criteria

import (
	"strings"

	"github.com/roach88/subsel/internal/ir"
)

const (
	commentMarker = "#"
	negationToken = "NOT:"
)

type comparatorToken struct {
	text string
	cmp  ir.Comparator
	// negates marks tokens that are a spelling of negation.
	negates bool
}

// comparatorTokens is ordered longest match first within each form;
// symbols come before phrases.
var comparatorTokens = []comparatorToken{
	{text: ">=", cmp: ir.GE},
	{text: "<=", cmp: ir.LE},
	{text: "!=", cmp: ir.NE, negates: true},
	{text: ">", cmp: ir.GT},
	{text: "<", cmp: ir.LT},
	{text: "=", cmp: ir.EQ},
	{text: "more than ", cmp: ir.GT},
	{text: "less than ", cmp: ir.LT},
}

// Parsed is the result of splitting a raw value into modifiers and literal.
type Parsed struct {
	Negated    bool
	Comparator ir.Comparator
	Literal    string
	// Skip is set for commented-out values.
	Skip bool
}

// Compiled is a criterion after key resolution and value parsing.
type Compiled struct {
	Key        Key
	Info       Info
	Label      string
	Raw        string
	Negated    bool
	Comparator ir.Comparator
	Value      string
	// Occurrence counts earlier criteria with the same key (0 for the first).
	Occurrence int
}

// HasComparator reports whether the value carried an ordering comparator.
func (c Compiled) HasComparator() bool {
	return !c.Comparator.IsEquality()
}

// ParseValue splits raw into negation, comparator and literal.
func ParseValue(raw string) (Parsed, error) {
	value := strings.TrimSpace(raw)
	if value == "" || strings.HasPrefix(value, commentMarker) {
		return Parsed{Skip: true}, nil
	}

	p := Parsed{Comparator: ir.EQ}
	if hasPrefixFold(value, negationToken) {
		p.Negated = true
		p.Comparator = ir.NE
		value = strings.TrimSpace(value[len(negationToken):])
		if value == "" {
			return Parsed{}, ir.NewError(ir.ErrUnsupportedModifier, "negation needs a value")
		}
		if tok, ok := matchComparator(value); ok {
			return Parsed{}, ir.NewError(ir.ErrUnsupportedModifier,
				"comparator %q cannot follow %s", strings.TrimSpace(tok.text), negationToken)
		}
		p.Literal = value
		return p, nil
	}

	if tok, ok := matchComparator(value); ok {
		p.Comparator = tok.cmp
		p.Negated = tok.negates
		value = strings.TrimSpace(value[len(tok.text):])
		if value == "" {
			return Parsed{}, ir.NewError(ir.ErrUnsupportedModifier,
				"comparator %q needs a value", strings.TrimSpace(tok.text))
		}
		if second, ok := matchComparator(value); ok {
			return Parsed{}, ir.NewError(ir.ErrUnsupportedModifier,
				"only one comparator is allowed, found %q after %q",
				strings.TrimSpace(second.text), strings.TrimSpace(tok.text))
		}
	}
	p.Literal = value
	return p, nil
}

func matchComparator(value string) (comparatorToken, bool) {
	for _, tok := range comparatorTokens {
		if hasPrefixFold(value, tok.text) {
			return tok, true
		}
	}
	return comparatorToken{}, false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
