package selection

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/dates"
	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/queryir"
	"github.com/roach88/subsel/internal/vocab"
)

// previousID reads the previous identifier of a field from the subject.
// A nil previousID means the field has no previous-value accessor.
type previousID func(*ir.Subject) *int64

// previousDate reads the previous date of a field from the subject.
type previousDate func(*ir.Subject) *time.Time

// noComparator rejects ordering comparators on values that have no order.
func noComparator(c criteria.Compiled) error {
	if c.HasComparator() {
		return ir.NewError(ir.ErrUnsupportedModifier, "%q does not accept comparator %s", c.Info.Description, c.Comparator.SQL())
	}
	return nil
}

// nullCheck renders Null and NotNull uniformly. Negating Null is rejected;
// negating NotNull means IS NULL.
func nullCheck(c criteria.Compiled, col queryir.Operand, v ir.ResolvedValue) (queryir.Predicate, error) {
	switch v.(type) {
	case ir.Null:
		if c.Negated {
			return nil, ir.NewError(ir.ErrUnsupportedModifier, "null cannot be negated")
		}
		return queryir.IsNull{Operand: col}, nil
	case ir.NotNull:
		return queryir.IsNull{Operand: col, Not: !c.Negated}, nil
	}
	return nil, nil
}

// unchangedSubject returns the subject for an "unchanged" value.
func (s *State) unchangedSubject(c criteria.Compiled, hasAccessor bool) (*ir.Subject, error) {
	if !hasAccessor {
		return nil, ir.NewError(ir.ErrUnsupportedModifier, "%q has no previous value to compare with", c.Info.Description)
	}
	if s.opts.Subject == nil {
		return nil, ir.NewError(ir.ErrMissingContext, "unchanged needs a subject context")
	}
	return s.opts.Subject, nil
}

// matchDomain constrains col to the identifier label resolves to in d.
func matchDomain[T vocab.ID](s *State, c criteria.Compiled, d *vocab.Domain[T], col queryir.Operand, prev previousID) error {
	if err := noComparator(c); err != nil {
		return err
	}
	v, err := d.Resolve(c.Value)
	if err != nil {
		return err
	}

	if p, err := nullCheck(c, col, v); p != nil || err != nil {
		if err != nil {
			return err
		}
		s.where(p)
		return nil
	}

	switch val := v.(type) {
	case ir.Concrete[T]:
		s.where(queryir.Cmp(col, c.Comparator, queryir.Bind{Value: val.Value}))
	case ir.Unchanged:
		subject, err := s.unchangedSubject(c, prev != nil)
		if err != nil {
			return err
		}
		previous := prev(subject)
		if previous == nil {
			s.where(queryir.IsNull{Operand: col, Not: c.Negated})
			return nil
		}
		s.where(queryir.Cmp(col, c.Comparator, queryir.Bind{Value: *previous}))
	}
	return nil
}

// matchDate applies a date expression to col.
func matchDate(s *State, c criteria.Compiled, col queryir.Operand, prev previousDate) error {
	res, err := s.dates.Resolve(c.Comparator, c.Value)
	if err != nil {
		return err
	}

	if p, err := nullCheck(c, col, res.Value); p != nil || err != nil {
		if err != nil {
			return err
		}
		s.where(p)
		return nil
	}

	switch val := res.Value.(type) {
	case ir.Concrete[dates.Expr]:
		s.where(queryir.Cmp(col, res.Comparator, val.Value.Operand(s.dob())))
		switch res.Pin {
		case dates.PinPast:
			s.where(queryir.Cmp(col, ir.LE, dates.Today))
		case dates.PinFuture:
			s.where(queryir.Cmp(col, ir.GE, dates.Today))
		}
	case ir.Unchanged:
		subject, err := s.unchangedSubject(c, prev != nil)
		if err != nil {
			return err
		}
		previous := prev(subject)
		if previous == nil {
			s.where(queryir.IsNull{Operand: col, Not: c.Negated})
			return nil
		}
		s.where(queryir.Cmp(col, res.Comparator, dates.Absolute{Date: *previous}.Operand(s.dob())))
	}
	return nil
}

// yesNo resolves a yes/no value. Negating a flag is rejected; the caller
// writes the opposite flag instead.
func yesNo(c criteria.Compiled) (bool, error) {
	if err := noComparator(c); err != nil {
		return false, err
	}
	if c.Negated {
		return false, ir.NewError(ir.ErrUnsupportedModifier, "yes/no values cannot be negated")
	}
	return vocab.YesNo(c.Value)
}

// matchFlag renders a yes/no value as IS NOT NULL or IS NULL on col.
func matchFlag(s *State, c criteria.Compiled, col queryir.Operand) error {
	yes, err := yesNo(c)
	if err != nil {
		return err
	}
	s.where(queryir.IsNull{Operand: col, Not: yes})
	return nil
}

// matchYN renders a yes/no value against a 'Y'/'N' flag column.
func matchYN(s *State, c criteria.Compiled, col queryir.Operand) error {
	yes, err := yesNo(c)
	if err != nil {
		return err
	}
	s.where(queryir.Eq(col, flagLit(yes)))
	return nil
}

func flagLit(yes bool) queryir.Lit {
	if yes {
		return queryir.Lit{SQL: "'Y'"}
	}
	return queryir.Lit{SQL: "'N'"}
}

// matchExists renders a yes/no value as EXISTS or NOT EXISTS over a
// correlated subquery. where receives the subquery alias.
func matchExists(s *State, c criteria.Compiled, table, alias string, where func(alias string) []queryir.Predicate) error {
	yes, err := yesNo(c)
	if err != nil {
		return err
	}
	s.where(s.exists(!yes, table, alias, where))
	return nil
}

// exists builds a correlated EXISTS with a freshly reserved alias.
func (s *State) exists(not bool, table, alias string, where func(alias string) []queryir.Predicate) queryir.Exists {
	a := s.sel.Joins.Reserve(alias)
	return queryir.Exists{Not: not, Table: table, Alias: a, Where: where(a)}
}

// matchText compares col with a free-text value, or handles null/not null.
func matchText(s *State, c criteria.Compiled, col queryir.Operand) error {
	if err := noComparator(c); err != nil {
		return err
	}
	if v, ok := sentinel(c.Value); ok {
		p, err := nullCheck(c, col, v)
		if err != nil {
			return err
		}
		s.where(p)
		return nil
	}
	s.where(queryir.Cmp(col, c.Comparator, queryir.Bind{Value: c.Value}))
	return nil
}

// sentinel recognizes the null/not null labels in free-form values.
func sentinel(value string) (ir.ResolvedValue, bool) {
	switch strings.ToLower(strings.Join(strings.Fields(value), " ")) {
	case "null":
		return ir.Null{}, true
	case "not null":
		return ir.NotNull{}, true
	}
	return nil, false
}

// builtin looks up a label the compiler itself relies on. A vocabulary
// without it cannot compile the criterion.
func builtin[T vocab.ID](d *vocab.Domain[T], label string) (T, error) {
	v, ok := d.Lookup(label)
	if !ok {
		return v, fmt.Errorf("vocabulary domain %q has no built-in label %q", d.Name(), label)
	}
	return v, nil
}

// wholeNumber parses a non-negative integer criterion value.
func wholeNumber(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, ir.NewError(ir.ErrUnresolvableDomainValue, "%q is not a whole number", value)
	}
	return n, nil
}
