// Package querysql renders a queryir.Select to Oracle SQL text with named
// bind parameters.
//
// Rendering is deterministic: the same Select always produces the same text
// and parameters. Binds are named p1, p2, ... in the order they appear in the
// text, and caller-supplied values are never interpolated.
package querysql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/queryir"
)

// BindPrefix is the prefix of generated bind names.
const BindPrefix = "p"

// Compile renders sel.
func Compile(sel *queryir.Select) (*ir.CompiledQuery, error) {
	if sel == nil {
		return nil, fmt.Errorf("cannot compile nil select")
	}
	r := &renderer{params: make(map[string]any)}
	text, err := r.selectStmt(sel)
	if err != nil {
		return nil, err
	}
	return &ir.CompiledQuery{Text: text, Params: r.params}, nil
}

// renderer holds the bind counter for one Compile call.
type renderer struct {
	params map[string]any
	n      int
}

func (r *renderer) selectStmt(sel *queryir.Select) (string, error) {
	var b strings.Builder

	if len(sel.Columns) == 0 {
		return "", fmt.Errorf("select has no columns")
	}
	cols := make([]string, 0, len(sel.Columns))
	for _, p := range sel.Columns {
		s, err := r.operand(p.Value)
		if err != nil {
			return "", fmt.Errorf("select column: %w", err)
		}
		if p.As != "" {
			s += " AS " + p.As
		}
		cols = append(cols, s)
	}
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(cols, ", "))

	b.WriteString("\nFROM ")
	b.WriteString(table(sel.From.Name, sel.From.Alias))

	if sel.Joins != nil {
		for _, j := range sel.Joins.List() {
			on, err := r.conjunction(j.On)
			if err != nil {
				return "", fmt.Errorf("join %s: %w", j.Alias, err)
			}
			fmt.Fprintf(&b, "\n%s %s ON %s", j.Kind.SQL(), table(j.Table, j.Alias), on)
		}
	}

	for i, p := range sel.Where {
		s, err := r.predicate(p)
		if err != nil {
			return "", fmt.Errorf("where: %w", err)
		}
		if i == 0 {
			b.WriteString("\nWHERE ")
		} else {
			b.WriteString("\nAND ")
		}
		b.WriteString(s)
	}

	if terms := sel.OrderBy(); len(terms) > 0 {
		parts := make([]string, len(terms))
		for i, t := range terms {
			parts[i] = t.Column.String()
			if t.Desc {
				parts[i] += " DESC"
			}
		}
		b.WriteString("\nORDER BY ")
		b.WriteString(strings.Join(parts, ", "))
	}

	if sel.Limit < 0 {
		return "", fmt.Errorf("negative row limit %d", sel.Limit)
	}
	if sel.Limit > 0 {
		fmt.Fprintf(&b, "\nFETCH FIRST %d ROWS ONLY", sel.Limit)
	}
	return b.String(), nil
}

func table(name, alias string) string {
	if alias == "" {
		return name
	}
	return name + " " + alias
}

// conjunction renders predicates joined by AND without outer parentheses.
func (r *renderer) conjunction(preds []queryir.Predicate) (string, error) {
	if len(preds) == 0 {
		return "1=1", nil
	}
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		s, err := r.predicate(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " AND "), nil
}

func (r *renderer) predicate(p queryir.Predicate) (string, error) {
	switch pred := p.(type) {
	case queryir.Compare:
		left, err := r.operand(pred.Left)
		if err != nil {
			return "", err
		}
		right, err := r.operand(pred.Right)
		if err != nil {
			return "", err
		}
		return left + " " + pred.Op.SQL() + " " + right, nil

	case queryir.IsNull:
		s, err := r.operand(pred.Operand)
		if err != nil {
			return "", err
		}
		if pred.Not {
			return s + " IS NOT NULL", nil
		}
		return s + " IS NULL", nil

	case queryir.Exists:
		where, err := r.conjunction(pred.Where)
		if err != nil {
			return "", err
		}
		kw := "EXISTS"
		if pred.Not {
			kw = "NOT EXISTS"
		}
		return fmt.Sprintf("%s (SELECT 1 FROM %s WHERE %s)", kw, table(pred.Table, pred.Alias), where), nil

	case queryir.In:
		if len(pred.Values) == 0 {
			return "", fmt.Errorf("empty IN list")
		}
		left, err := r.operand(pred.Left)
		if err != nil {
			return "", err
		}
		vals := make([]string, 0, len(pred.Values))
		for _, v := range pred.Values {
			s, err := r.operand(v)
			if err != nil {
				return "", err
			}
			vals = append(vals, s)
		}
		kw := " IN ("
		if pred.Not {
			kw = " NOT IN ("
		}
		return left + kw + strings.Join(vals, ", ") + ")", nil

	case queryir.And:
		if len(pred.Predicates) == 0 {
			return "1=1", nil
		}
		s, err := r.conjunction(pred.Predicates)
		if err != nil {
			return "", err
		}
		if len(pred.Predicates) == 1 {
			return s, nil
		}
		return "(" + s + ")", nil

	case queryir.Or:
		if len(pred.Predicates) == 0 {
			return "1=0", nil
		}
		parts := make([]string, 0, len(pred.Predicates))
		for _, sub := range pred.Predicates {
			s, err := r.predicate(sub)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil

	case queryir.Raw:
		return pred.SQL, nil

	default:
		return "", fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func (r *renderer) operand(o queryir.Operand) (string, error) {
	switch op := o.(type) {
	case queryir.Column:
		return op.String(), nil

	case queryir.Bind:
		param, err := bindValue(op.Value)
		if err != nil {
			return "", err
		}
		r.n++
		name := BindPrefix + strconv.Itoa(r.n)
		r.params[name] = param
		return ":" + name, nil

	case queryir.Lit:
		return op.SQL, nil

	case queryir.Expr:
		var b strings.Builder
		next := 0
		for _, ch := range op.Template {
			if ch != '?' {
				b.WriteRune(ch)
				continue
			}
			if next >= len(op.Args) {
				return "", fmt.Errorf("template %q: not enough args", op.Template)
			}
			s, err := r.operand(op.Args[next])
			if err != nil {
				return "", err
			}
			b.WriteString(s)
			next++
		}
		if next != len(op.Args) {
			return "", fmt.Errorf("template %q: %d unused args", op.Template, len(op.Args)-next)
		}
		return b.String(), nil

	case queryir.Sub:
		col, err := r.operand(op.Column)
		if err != nil {
			return "", err
		}
		where, err := r.conjunction(op.Where)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(SELECT %s FROM %s WHERE %s)", col, table(op.Table, op.Alias), where), nil

	default:
		return "", fmt.Errorf("unsupported operand type: %T", o)
	}
}

// bindValue accepts the scalar kinds a CompiledQuery may carry.
func bindValue(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case int64:
		return val, nil
	case int:
		return int64(val), nil
	default:
		return nil, fmt.Errorf("unsupported bind value type: %T", v)
	}
}
