package suite

import (
	"fmt"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/subsel/internal/ir"
)

// CompileError is a selection file error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{Field: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return err
}

// ParseCUE compiles CUE source and extracts its selections.
func ParseCUE(filename string, src []byte) ([]Selection, error) {
	v := cuecontext.New().CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	root := v.LookupPath(cue.ParsePath("selection"))
	if !root.Exists() {
		return nil, &CompileError{Field: "selection", Message: "no selection struct found", Pos: v.Pos()}
	}
	iter, err := root.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var out []Selection
	for iter.Next() {
		sel, err := compileSelection(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

func compileSelection(name string, v cue.Value) (Selection, error) {
	sel := Selection{Name: name}

	if d := v.LookupPath(cue.ParsePath("description")); d.Exists() {
		s, err := d.String()
		if err != nil {
			return sel, formatCUEError(err)
		}
		sel.Description = s
	}

	if r := v.LookupPath(cue.ParsePath("rows")); r.Exists() {
		n, err := r.Int64()
		if err != nil {
			return sel, formatCUEError(err)
		}
		sel.Rows = int(n)
	}

	if u := v.LookupPath(cue.ParsePath("user")); u.Exists() {
		sel.User = &ir.User{}
		if err := u.Decode(sel.User); err != nil {
			return sel, &CompileError{Field: name + ".user", Message: err.Error(), Pos: u.Pos()}
		}
	}

	if s := v.LookupPath(cue.ParsePath("subject")); s.Exists() {
		sel.Subject = &ir.Subject{}
		if err := s.Decode(sel.Subject); err != nil {
			return sel, &CompileError{Field: name + ".subject", Message: err.Error(), Pos: s.Pos()}
		}
	}

	c := v.LookupPath(cue.ParsePath("criteria"))
	if !c.Exists() {
		return sel, &CompileError{Field: name, Message: "criteria is required", Pos: v.Pos()}
	}
	crit, err := compileCriteria(name, c)
	if err != nil {
		return sel, err
	}
	sel.Criteria = crit
	return sel, nil
}

// compileCriteria accepts a struct of key: value fields, or a list of
// single-field structs.
func compileCriteria(name string, v cue.Value) ([]ir.Criterion, error) {
	switch v.IncompleteKind() {
	case cue.StructKind:
		return criteriaFields(name, v)
	case cue.ListKind:
		list, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var out []ir.Criterion
		for list.Next() {
			crit, err := criteriaFields(name, list.Value())
			if err != nil {
				return nil, err
			}
			if len(crit) != 1 {
				return nil, &CompileError{Field: name + ".criteria", Message: "list entries must have exactly one field", Pos: list.Value().Pos()}
			}
			out = append(out, crit...)
		}
		return out, nil
	default:
		return nil, &CompileError{Field: name + ".criteria", Message: "criteria must be a struct or a list", Pos: v.Pos()}
	}
}

func criteriaFields(name string, v cue.Value) ([]ir.Criterion, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, &CompileError{Field: name + ".criteria", Message: err.Error(), Pos: v.Pos()}
	}
	var out []ir.Criterion
	for iter.Next() {
		key := iter.Label()
		value, err := scalar(iter.Value())
		if err != nil {
			return nil, &CompileError{Field: name + ".criteria." + key, Message: err.Error(), Pos: iter.Value().Pos()}
		}
		out = append(out, ir.C(key, value))
	}
	return out, nil
}

// scalar renders a string, number or bool criterion value as text.
func scalar(v cue.Value) (string, error) {
	switch v.Kind() {
	case cue.StringKind:
		return v.String()
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return "", err
		}
		if b {
			return "yes", nil
		}
		return "no", nil
	default:
		return "", fmt.Errorf("value must be a string, integer or bool, got %v", v.Kind())
	}
}
