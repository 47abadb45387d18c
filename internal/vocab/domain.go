package vocab

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/subsel/internal/ir"
)

// ID constrains the identifier types a Domain can resolve to.
type ID interface {
	int64 | string
}

// Sentinels selects which symbolic labels a domain accepts.
type Sentinels uint8

const (
	AllowNull Sentinels = 1 << iota
	AllowNotNull
	AllowUnchanged

	AllowNullable = AllowNull | AllowNotNull
	AllowAll      = AllowNullable | AllowUnchanged
)

const (
	labelNull      = "null"
	labelNotNull   = "not null"
	labelUnchanged = "unchanged"
)

// Entry maps one label to an identifier. Several entries may share an
// identifier to provide aliases.
type Entry[T ID] struct {
	Label string
	Value T
}

// Domain is an immutable label-to-identifier table.
type Domain[T ID] struct {
	name      string
	sentinels Sentinels
	entries   []Entry[T]
	index     map[string]T
}

func newDomain[T ID](name string, sentinels Sentinels, entries ...Entry[T]) *Domain[T] {
	d := &Domain[T]{
		name:      name,
		sentinels: sentinels,
		entries:   entries,
		index:     make(map[string]T, len(entries)),
	}
	for _, e := range entries {
		d.index[normalize(e.Label)] = e.Value
	}
	return d
}

// Name identifies the domain in errors and in the vocabulary store.
func (d *Domain[T]) Name() string {
	return d.name
}

// Sentinels returns the symbolic labels the domain accepts.
func (d *Domain[T]) Sentinels() Sentinels {
	return d.sentinels
}

// Resolve maps label to a Concrete identifier or a sentinel.
func (d *Domain[T]) Resolve(label string) (ir.ResolvedValue, error) {
	key := normalize(label)
	switch key {
	case labelNull:
		if d.sentinels&AllowNull != 0 {
			return ir.Null{}, nil
		}
	case labelNotNull:
		if d.sentinels&AllowNotNull != 0 {
			return ir.NotNull{}, nil
		}
	case labelUnchanged:
		if d.sentinels&AllowUnchanged != 0 {
			return ir.Unchanged{}, nil
		}
	}
	if v, ok := d.index[key]; ok {
		return ir.NewConcrete(v), nil
	}
	return nil, ir.UnresolvableDomainValue(d.name, strings.TrimSpace(label))
}

// Lookup returns the identifier for a non-sentinel label.
func (d *Domain[T]) Lookup(label string) (T, bool) {
	v, ok := d.index[normalize(label)]
	return v, ok
}

// Labels returns the labels in table order, aliases included.
func (d *Domain[T]) Labels() []string {
	out := make([]string, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.Label
	}
	return out
}

// with returns a copy of d where label maps to v.
func (d *Domain[T]) with(label string, v T) *Domain[T] {
	entries := make([]Entry[T], 0, len(d.entries)+1)
	replaced := false
	for _, e := range d.entries {
		if normalize(e.Label) == normalize(label) {
			e.Value = v
			replaced = true
		}
		entries = append(entries, e)
	}
	if !replaced {
		entries = append(entries, Entry[T]{Label: label, Value: v})
	}
	return newDomain(d.name, d.sentinels, entries...)
}

func normalize(label string) string {
	return cases.Fold().String(strings.Join(strings.Fields(label), " "))
}

// YesNo resolves a yes/no flag.
func YesNo(label string) (bool, error) {
	switch normalize(label) {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	default:
		return false, ir.UnresolvableDomainValue("yes/no value", strings.TrimSpace(label))
	}
}
