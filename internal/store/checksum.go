package store

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/vocab"
)

// Checksum identifies a set of overrides by content. Row order does not
// matter; a later row for the same domain and label wins, as in an import.
func Checksum(rows []vocab.Override) (string, error) {
	latest := make(map[[2]string]int64, len(rows))
	for _, o := range rows {
		latest[[2]string{o.Domain, o.Label}] = o.ID
	}
	keys := make([][2]string, 0, len(latest))
	for k := range latest {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b [2]string) int {
		if c := cmp.Compare(a[0], b[0]); c != 0 {
			return c
		}
		return cmp.Compare(a[1], b[1])
	})

	list := make([]any, len(keys))
	for i, k := range keys {
		list[i] = map[string]any{"domain": k[0], "label": k[1], "id": latest[k]}
	}
	sum, err := ir.HashCanonical(ir.DomainVocabulary, list)
	if err != nil {
		return "", fmt.Errorf("checksum: %w", err)
	}
	return sum, nil
}
