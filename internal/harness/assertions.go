package harness

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/subsel/internal/ir"
)

// joinPattern matches a join clause and captures the joined table.
var joinPattern = regexp.MustCompile(`(?m)^(?:INNER|LEFT OUTER) JOIN (\S+) `)

// AssertionError is returned when an assertion fails.
// It includes the query text to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Query    string // Compiled text, empty if compilation failed
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if e.Query != "" {
		fmt.Fprintf(&buf, "\nQuery:\n%s\n", e.Query)
	}
	return buf.String()
}

// assertError checks that compilation failed with the expected kind and key.
func assertError(result *Result, a Assertion) error {
	if result.CompileError == nil {
		return &AssertionError{
			Type:     AssertError,
			Expected: fmt.Sprintf("compile error of kind %s", a.Kind),
			Actual:   "query compiled",
			Query:    result.Query.Text,
		}
	}

	kind := ir.KindOf(result.CompileError)
	if string(kind) != a.Kind {
		return &AssertionError{
			Type:     AssertError,
			Expected: fmt.Sprintf("kind %s", a.Kind),
			Actual:   fmt.Sprintf("kind %q: %v", kind, result.CompileError),
		}
	}

	if a.Key != "" {
		var ce *ir.CriterionError
		if !errors.As(result.CompileError, &ce) || ce.Key != a.Key {
			return &AssertionError{
				Type:     AssertError,
				Expected: fmt.Sprintf("error on key %q", a.Key),
				Actual:   result.CompileError.Error(),
			}
		}
	}
	return nil
}

// compiled returns the query, or an assertion failure when there is none.
func compiled(result *Result, a Assertion) (*ir.CompiledQuery, error) {
	if result.Query == nil {
		return nil, &AssertionError{
			Type:     a.Type,
			Expected: "query compiled",
			Actual:   fmt.Sprintf("compile error: %v", result.CompileError),
		}
	}
	return result.Query, nil
}

func assertContains(result *Result, a Assertion) error {
	q, err := compiled(result, a)
	if err != nil {
		return err
	}
	found := strings.Contains(q.Text, a.Fragment)
	if a.Type == AssertContains && !found {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("text containing %q", a.Fragment),
			Actual:   "not found",
			Query:    q.Text,
		}
	}
	if a.Type == AssertNotContains && found {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("text without %q", a.Fragment),
			Actual:   "found",
			Query:    q.Text,
		}
	}
	return nil
}

func assertParam(result *Result, a Assertion) error {
	q, err := compiled(result, a)
	if err != nil {
		return err
	}
	v, ok := q.Params[a.Name]
	if !ok {
		return &AssertionError{
			Type:     AssertParam,
			Expected: fmt.Sprintf("bind %s", a.Name),
			Actual:   fmt.Sprintf("binds %v", q.ParamNames()),
			Query:    q.Text,
		}
	}
	if got := fmt.Sprint(v); got != a.Value {
		return &AssertionError{
			Type:     AssertParam,
			Expected: fmt.Sprintf("%s = %s", a.Name, a.Value),
			Actual:   fmt.Sprintf("%s = %s", a.Name, got),
			Query:    q.Text,
		}
	}
	return nil
}

func assertParamCount(result *Result, a Assertion) error {
	q, err := compiled(result, a)
	if err != nil {
		return err
	}
	if len(q.Params) != a.Count {
		return &AssertionError{
			Type:     AssertParamCount,
			Expected: fmt.Sprintf("%d binds", a.Count),
			Actual:   fmt.Sprintf("%d binds", len(q.Params)),
			Query:    q.Text,
		}
	}
	return nil
}

// assertJoinCount counts top-level join lines naming the table.
func assertJoinCount(result *Result, a Assertion) error {
	q, err := compiled(result, a)
	if err != nil {
		return err
	}
	count := 0
	for _, m := range joinPattern.FindAllStringSubmatch(q.Text, -1) {
		if m[1] == a.Table {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertJoinCount,
			Expected: fmt.Sprintf("%d joins of %s", a.Count, a.Table),
			Actual:   fmt.Sprintf("%d joins", count),
			Query:    q.Text,
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string

	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertError:
			err = assertError(result, a)
		case AssertContains, AssertNotContains:
			err = assertContains(result, a)
		case AssertParam:
			err = assertParam(result, a)
		case AssertParamCount:
			err = assertParamCount(result, a)
		case AssertJoinCount:
			err = assertJoinCount(result, a)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}
		if err != nil {
			failures = append(failures, err.Error())
		}
	}

	// A compile failure nobody expected is always reported.
	if result.CompileError != nil && !expectsError(assertions) {
		failures = append(failures, fmt.Sprintf("unexpected compile error: %v", result.CompileError))
	}
	return failures
}

func expectsError(assertions []Assertion) bool {
	for _, a := range assertions {
		if a.Type == AssertError {
			return true
		}
	}
	return false
}
