package ir

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes compile failures.
type ErrorKind string

const (
	// ErrUnknownCriteriaKey indicates a label that is not in the key registry.
	ErrUnknownCriteriaKey ErrorKind = "UNKNOWN_CRITERIA_KEY"

	// ErrUnsupportedModifier indicates negation or a comparator that the key or
	// value does not accept, including negation of a null value.
	ErrUnsupportedModifier ErrorKind = "UNSUPPORTED_MODIFIER"

	// ErrMissingContext indicates an "unchanged" or user-relative value used
	// without the Subject or User it needs.
	ErrMissingContext ErrorKind = "MISSING_CONTEXT"

	// ErrUnresolvableDomainValue indicates a label unknown to a domain vocabulary.
	ErrUnresolvableDomainValue ErrorKind = "UNRESOLVABLE_DOMAIN_VALUE"

	// ErrUnparseableDate indicates a date expression that matches no rule.
	ErrUnparseableDate ErrorKind = "UNPARSEABLE_DATE"

	// ErrArityViolation indicates a single-valued key supplied more than once.
	ErrArityViolation ErrorKind = "ARITY_VIOLATION"

	// ErrInvalidOptions indicates bad compile options (e.g. a negative row count).
	ErrInvalidOptions ErrorKind = "INVALID_OPTIONS"
)

// CriterionError is the single error type returned by a failed compile.
// It names the criterion at fault so failures are traceable without
// inspecting compiler state.
type CriterionError struct {
	// Kind identifies the error category.
	Kind ErrorKind

	// Key is the criteria key label as supplied by the caller.
	Key string

	// Value is the raw criterion value as supplied by the caller.
	Value string

	// Message is a human-readable description.
	Message string

	// Err is an optional underlying cause.
	Err error
}

// Error implements the error interface.
func (e *CriterionError) Error() string {
	switch {
	case e.Key != "" && e.Value != "":
		return fmt.Sprintf("%s: %s (key=%q, value=%q)", e.Kind, e.Message, e.Key, e.Value)
	case e.Key != "":
		return fmt.Sprintf("%s: %s (key=%q)", e.Kind, e.Message, e.Key)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *CriterionError) Unwrap() error {
	return e.Err
}

// NewError creates a CriterionError without criterion details.
// The compiler stamps Key and Value when the error leaves a handler.
func NewError(kind ErrorKind, format string, args ...any) *CriterionError {
	return &CriterionError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsKind reports whether err is a CriterionError of the given kind.
// Uses errors.As to handle wrapped errors.
func IsKind(err error, kind ErrorKind) bool {
	var ce *CriterionError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

// KindOf returns the kind of a CriterionError, or "" for any other error.
func KindOf(err error) ErrorKind {
	var ce *CriterionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// UnknownCriteriaKey creates the error for an unregistered label.
func UnknownCriteriaKey(label string) *CriterionError {
	return &CriterionError{
		Kind:    ErrUnknownCriteriaKey,
		Key:     label,
		Message: "criteria key is not recognised",
	}
}

// UnresolvableDomainValue creates the error for a label unknown to a domain.
func UnresolvableDomainValue(domain, label string) *CriterionError {
	return &CriterionError{
		Kind:    ErrUnresolvableDomainValue,
		Value:   label,
		Message: fmt.Sprintf("%q is not a recognised %s", label, domain),
	}
}

// UnparseableDate creates the error for a date expression matching no rule.
func UnparseableDate(expression string) *CriterionError {
	return &CriterionError{
		Kind:    ErrUnparseableDate,
		Value:   expression,
		Message: fmt.Sprintf("cannot interpret %q as a date", expression),
	}
}
