package queryir

import (
	"fmt"
	"strings"
)

// ValidationResult reports structural problems in a Select.
type ValidationResult struct {
	// Valid is true when Problems is empty.
	Valid bool

	// Problems lists every violation found, in traversal order.
	Problems []string
}

// Validate checks that a Select only references aliases it declared, that
// bind values are scalars, and that expression templates match their args.
//
// A column may reference the FROM alias, any join alias, or the alias of an
// enclosing EXISTS or scalar subquery. Join ON clauses may reference the
// FROM alias, their own alias and aliases of earlier joins.
//
// Validate is a pure function with no side effects.
func Validate(sel *Select) ValidationResult {
	v := &validator{}
	if sel == nil {
		v.addProblem("nil select")
		return v.result()
	}
	if sel.From.Name == "" {
		v.addProblem("FROM table is empty")
	}

	scope := map[string]bool{sel.From.Alias: true}
	var joins []Join
	if sel.Joins != nil {
		joins = sel.Joins.List()
	}

	// ON clauses see only what has been joined so far.
	for _, j := range joins {
		if scope[j.Alias] {
			v.addProblem("alias %q declared twice", j.Alias)
		}
		scope[j.Alias] = true
		v.predicates("join "+j.Alias, j.On, scope)
		for _, t := range j.OrderBy {
			v.column("order by", t.Column, scope)
		}
	}

	for _, p := range sel.Columns {
		v.operand("select", p.Value, scope)
	}
	v.predicates("where", sel.Where, scope)
	if sel.Limit < 0 {
		v.addProblem("negative row limit %d", sel.Limit)
	}
	return v.result()
}

type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) result() ValidationResult {
	return ValidationResult{Valid: len(v.problems) == 0, Problems: v.problems}
}

func (v *validator) predicates(where string, preds []Predicate, scope map[string]bool) {
	for _, p := range preds {
		v.predicate(where, p, scope)
	}
}

func (v *validator) predicate(where string, p Predicate, scope map[string]bool) {
	switch pred := p.(type) {
	case Compare:
		v.operand(where, pred.Left, scope)
		v.operand(where, pred.Right, scope)
	case IsNull:
		v.operand(where, pred.Operand, scope)
	case Exists:
		v.predicates(where, pred.Where, extend(scope, pred.Alias))
	case In:
		v.operand(where, pred.Left, scope)
		if len(pred.Values) == 0 {
			v.addProblem("%s: empty IN list", where)
		}
		for _, o := range pred.Values {
			v.operand(where, o, scope)
		}
	case And:
		v.predicates(where, pred.Predicates, scope)
	case Or:
		v.predicates(where, pred.Predicates, scope)
	case Raw:
		if strings.TrimSpace(pred.SQL) == "" {
			v.addProblem("%s: empty raw predicate", where)
		}
	case nil:
		v.addProblem("%s: nil predicate", where)
	default:
		v.addProblem("%s: unknown predicate type %T", where, p)
	}
}

func (v *validator) operand(where string, o Operand, scope map[string]bool) {
	switch op := o.(type) {
	case Column:
		v.column(where, op, scope)
	case Bind:
		switch op.Value.(type) {
		case string, int64, int:
		default:
			v.addProblem("%s: bind value of type %T is not a scalar", where, op.Value)
		}
	case Lit:
	case Expr:
		if n := strings.Count(op.Template, "?"); n != len(op.Args) {
			v.addProblem("%s: template %q has %d placeholders for %d args", where, op.Template, n, len(op.Args))
		}
		for _, a := range op.Args {
			v.operand(where, a, scope)
		}
	case Sub:
		inner := extend(scope, op.Alias)
		v.operand(where, op.Column, inner)
		v.predicates(where, op.Where, inner)
	case nil:
		v.addProblem("%s: nil operand", where)
	default:
		v.addProblem("%s: unknown operand type %T", where, o)
	}
}

func (v *validator) column(where string, c Column, scope map[string]bool) {
	if c.Alias != "" && !scope[c.Alias] {
		v.addProblem("%s: column %s references undeclared alias %q", where, c, c.Alias)
	}
}

func extend(scope map[string]bool, alias string) map[string]bool {
	out := make(map[string]bool, len(scope)+1)
	for k := range scope {
		out[k] = true
	}
	out[alias] = true
	return out
}
