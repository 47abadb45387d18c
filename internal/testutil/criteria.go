package testutil

import "github.com/roach88/subsel/internal/ir"

// Criteria builds an ordered criteria list from key, value pairs.
// Panics on an odd number of arguments.
func Criteria(pairs ...string) []ir.Criterion {
	if len(pairs)%2 != 0 {
		panic("testutil.Criteria: odd number of arguments")
	}
	out := make([]ir.Criterion, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, ir.C(pairs[i], pairs[i+1]))
	}
	return out
}
