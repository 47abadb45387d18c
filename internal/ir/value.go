package ir

import "fmt"

// ResolvedValue is a sealed interface representing the result of resolving a
// criterion value against a domain vocabulary or a date expression.
// Only Concrete, Null, NotNull and Unchanged implement it, so every fragment
// builder consumes resolver output through the same exhaustive type switch.
type ResolvedValue interface {
	resolvedValue() // Sealed - only these types implement it
}

// Concrete carries a resolved identifier or expression.
// Domain resolvers produce Concrete[int64] (lookup ids) or Concrete[string]
// (code values); the date resolver produces its own expression type.
type Concrete[T any] struct {
	Value T
}

func (Concrete[T]) resolvedValue() {}

// Null requests an IS NULL check.
type Null struct{}

func (Null) resolvedValue() {}

// NotNull requests an IS NOT NULL check.
type NotNull struct{}

func (NotNull) resolvedValue() {}

// Unchanged requests comparison against the caller-supplied previous value
// for the same field (see Subject).
type Unchanged struct{}

func (Unchanged) resolvedValue() {}

// NewConcrete creates a Concrete value.
func NewConcrete[T any](v T) Concrete[T] {
	return Concrete[T]{Value: v}
}

// IsNull reports whether v is the Null sentinel.
func IsNull(v ResolvedValue) bool {
	_, ok := v.(Null)
	return ok
}

// IsSentinel reports whether v is one of Null, NotNull or Unchanged.
func IsSentinel(v ResolvedValue) bool {
	switch v.(type) {
	case Null, NotNull, Unchanged:
		return true
	default:
		return false
	}
}

// Describe renders a resolved value for diagnostics.
func Describe(v ResolvedValue) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case Null:
		return "null"
	case NotNull:
		return "not null"
	case Unchanged:
		return "unchanged"
	case Concrete[int64]:
		return fmt.Sprintf("%d", val.Value)
	case Concrete[string]:
		return fmt.Sprintf("%q", val.Value)
	default:
		return fmt.Sprintf("%v", v)
	}
}
