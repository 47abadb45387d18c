package criteria

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/subsel/internal/ir"
)

// Registry resolves free-text labels to catalogue keys.
//
// Both indices are built once; lookups never mutate the registry, so a
// Registry is safe for concurrent use.
type Registry struct {
	infos  []Info
	exact  map[string]Key
	folded map[string]Key
}

var defaultRegistry = NewRegistry()

// Default returns the registry built from the package catalogue.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry builds a registry over the full catalogue.
func NewRegistry() *Registry {
	r := &Registry{
		infos:  make([]Info, 0, len(catalogue)),
		exact:  make(map[string]Key, len(catalogue)),
		folded: make(map[string]Key, len(catalogue)),
	}
	for _, info := range catalogue {
		r.infos = append(r.infos, info)
		r.exact[info.Description] = info.Key
		r.folded[fold(info.Description)] = info.Key
	}
	return r
}

// Resolve returns the catalogue entry for label.
// The exact index is tried first, then the case-folded index.
func (r *Registry) Resolve(label string) (Info, error) {
	if k, ok := r.exact[label]; ok {
		return catalogue[k], nil
	}
	if k, ok := r.folded[fold(label)]; ok {
		return catalogue[k], nil
	}
	return Info{}, ir.UnknownCriteriaKey(label)
}

// All returns every entry in catalogue order.
func (r *Registry) All() []Info {
	out := make([]Info, len(r.infos))
	copy(out, r.infos)
	return out
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	return len(r.infos)
}

// fold normalizes a label for case-insensitive comparison.
// A Caser carries state, so one is created per call.
func fold(label string) string {
	s := strings.Join(strings.Fields(label), " ")
	return cases.Fold().String(norm.NFC.String(s))
}
