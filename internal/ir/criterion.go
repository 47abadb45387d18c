package ir

import "fmt"

// Criterion is one raw (key, value) filter pair as authored by a caller.
// Criteria are supplied as an ordered slice; order affects join ordering in
// the compiled text, never the result set.
type Criterion struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// C is a shorthand constructor for Criterion.
func C(key, value string) Criterion {
	return Criterion{Key: key, Value: value}
}

// Comparator is the relational operator applied by a compiled criterion.
type Comparator int

const (
	EQ Comparator = iota
	NE
	LT
	LE
	GT
	GE
)

var comparatorSQL = [...]string{
	EQ: "=",
	NE: "!=",
	LT: "<",
	LE: "<=",
	GT: ">",
	GE: ">=",
}

// SQL returns the operator text.
func (c Comparator) SQL() string {
	if c < EQ || c > GE {
		return "?"
	}
	return comparatorSQL[c]
}

func (c Comparator) String() string {
	switch c {
	case EQ:
		return "EQ"
	case NE:
		return "NE"
	case LT:
		return "LT"
	case LE:
		return "LE"
	case GT:
		return "GT"
	case GE:
		return "GE"
	default:
		return fmt.Sprintf("Comparator(%d)", int(c))
	}
}

// Negate swaps EQ and NE. Ordering comparators are returned unchanged.
func (c Comparator) Negate() Comparator {
	switch c {
	case EQ:
		return NE
	case NE:
		return EQ
	default:
		return c
	}
}

// Flip mirrors an ordering comparator (LT <-> GT, LE <-> GE).
// Used where a larger criterion value maps to a smaller column value,
// e.g. an older age means an earlier date of birth.
func (c Comparator) Flip() Comparator {
	switch c {
	case LT:
		return GT
	case GT:
		return LT
	case LE:
		return GE
	case GE:
		return LE
	default:
		return c
	}
}

// IsEquality reports whether c is EQ or NE.
func (c Comparator) IsEquality() bool {
	return c == EQ || c == NE
}
