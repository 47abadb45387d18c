package testutil

import "fmt"

// SequentialIDs generates predictable trace ids: prefix-1, prefix-2, ...
//
// This enables golden comparison of CLI output that carries a trace id.
type SequentialIDs struct {
	prefix string
	n      int
}

// NewSequentialIDs creates a generator. An empty prefix defaults to "trace".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "trace"
	}
	return &SequentialIDs{prefix: prefix}
}

// Generate returns the next id.
func (g *SequentialIDs) Generate() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
