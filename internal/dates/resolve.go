package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/subsel/internal/ir"
)

// Pin is an extra bound that keeps a relative date on one side of today.
type Pin int

const (
	NoPin Pin = iota
	// PinPast adds col <= today.
	PinPast
	// PinFuture adds col >= today.
	PinFuture
)

// Resolution is a resolved date criterion.
type Resolution struct {
	// Value is ir.Concrete[Expr], or a Null, NotNull or Unchanged sentinel.
	Value      ir.ResolvedValue
	Comparator ir.Comparator
	Pin        Pin
}

// Expr returns the concrete expression, if any.
func (r Resolution) Expr() (Expr, bool) {
	if c, ok := r.Value.(ir.Concrete[Expr]); ok {
		return c.Value, true
	}
	return nil, false
}

var (
	isoDate      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	ukDate       = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	relativeDate = regexp.MustCompile(`^(\d+)\s+(day|week|month|year)s?\s+(ago|later)$`)
	birthdayDate = regexp.MustCompile(`^(\d+)(?:st|nd|rd|th)?\s+birthday$`)
)

type rule func(r *Resolver, expr string) (ir.ResolvedValue, bool, error)

// rules are tried in order; the first to report a match wins.
var rules = []rule{
	absoluteRule,
	relativeRule,
	birthdayRule,
	lastBirthdayRule,
	symbolicRule,
}

// Resolver interprets date expressions against a symbolic catalogue.
// A Resolver is immutable and safe for concurrent use.
type Resolver struct {
	symbols map[string]Symbol
}

var defaultResolver = NewResolver(Catalogue())

// Default returns the resolver over the built-in catalogue.
func Default() *Resolver {
	return defaultResolver
}

// NewResolver builds a resolver over symbols.
func NewResolver(symbols []Symbol) *Resolver {
	r := &Resolver{symbols: make(map[string]Symbol, len(symbols))}
	for _, s := range symbols {
		r.symbols[normalize(s.Name)] = s
	}
	return r
}

// Resolve interprets literal under cmp. cmp is the comparator parsed from
// the criterion value (NE when negated).
func (r *Resolver) Resolve(cmp ir.Comparator, literal string) (Resolution, error) {
	expr := normalize(literal)
	for _, rule := range rules {
		v, ok, err := rule(r, expr)
		if err != nil {
			return Resolution{}, err
		}
		if !ok {
			continue
		}
		res := Resolution{Value: v, Comparator: cmp}
		if ir.IsSentinel(v) && !cmp.IsEquality() {
			return Resolution{}, ir.NewError(ir.ErrUnsupportedModifier,
				"comparator %s cannot apply to %s", cmp.SQL(), ir.Describe(v))
		}
		if m := relativeDate.FindStringSubmatch(expr); m != nil && (cmp == ir.GT || cmp == ir.GE) {
			if m[3] == "ago" {
				res.Pin = PinPast
			} else {
				res.Pin = PinFuture
			}
		}
		return res, nil
	}
	return Resolution{}, ir.UnparseableDate(strings.TrimSpace(literal))
}

func absoluteRule(_ *Resolver, expr string) (ir.ResolvedValue, bool, error) {
	var layout string
	switch {
	case isoDate.MatchString(expr):
		layout = time.DateOnly
	case ukDate.MatchString(expr):
		layout = "02/01/2006"
	default:
		return nil, false, nil
	}
	t, err := time.Parse(layout, expr)
	if err != nil {
		e := ir.UnparseableDate(expr)
		e.Err = err
		return nil, false, e
	}
	return ir.NewConcrete[Expr](Absolute{Date: t}), true, nil
}

func relativeRule(_ *Resolver, expr string) (ir.ResolvedValue, bool, error) {
	m := relativeDate.FindStringSubmatch(expr)
	if m == nil {
		return nil, false, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false, ir.UnparseableDate(expr)
	}
	if m[3] == "ago" {
		n = -n
	}
	var rel Relative
	switch m[2] {
	case "day":
		rel.Days = n
	case "week":
		rel.Days = 7 * n
	case "month":
		rel.Months = n
	case "year":
		rel.Months = 12 * n
	}
	return ir.NewConcrete[Expr](rel), true, nil
}

func birthdayRule(_ *Resolver, expr string) (ir.ResolvedValue, bool, error) {
	m := birthdayDate.FindStringSubmatch(expr)
	if m == nil {
		return nil, false, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false, ir.UnparseableDate(expr)
	}
	return ir.NewConcrete[Expr](Birthday{Years: n}), true, nil
}

func lastBirthdayRule(_ *Resolver, expr string) (ir.ResolvedValue, bool, error) {
	if expr != "last birthday" {
		return nil, false, nil
	}
	return ir.NewConcrete[Expr](LastBirthday{}), true, nil
}

func symbolicRule(r *Resolver, expr string) (ir.ResolvedValue, bool, error) {
	s, ok := r.symbols[expr]
	if !ok {
		return nil, false, nil
	}
	return s.value(), true, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
