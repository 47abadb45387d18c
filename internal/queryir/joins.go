package queryir

import (
	"fmt"
	"strconv"
)

// Relation identifies a joinable relation.
type Relation struct {
	// Name is the relation's identity, e.g. "latest episode".
	Name string
	// Ordinal distinguishes repeated instances of one relation kind.
	// Zero means the relation is not ordinal.
	Ordinal int
	// Alias is the preferred alias. Ordinal relations append the ordinal.
	Alias string
}

// ID returns the identity used for deduplication.
func (r Relation) ID() string {
	if r.Ordinal == 0 {
		return r.Name
	}
	return r.Name + "#" + strconv.Itoa(r.Ordinal)
}

// Joins records the joins of one query. It is not safe for concurrent use;
// each compile call owns its own instance.
type Joins struct {
	order   []string
	byID    map[string]*Join
	aliases map[string]bool
}

// NewJoins creates an empty registry with the given aliases already taken.
func NewJoins(reserved ...string) *Joins {
	j := &Joins{
		byID:    make(map[string]*Join),
		aliases: make(map[string]bool),
	}
	for _, a := range reserved {
		if a != "" {
			j.aliases[a] = true
		}
	}
	return j
}

// Ensure returns the alias for rel, joining it first if needed.
// build is called at most once per relation identity, with the allocated
// alias; its Alias field is overwritten with that alias.
func (j *Joins) Ensure(rel Relation, build func(alias string) Join) string {
	if existing, ok := j.byID[rel.ID()]; ok {
		return existing.Alias
	}
	alias := j.allocate(rel)
	join := build(alias)
	join.Alias = alias
	j.byID[rel.ID()] = &join
	j.order = append(j.order, rel.ID())
	return alias
}

// Alias returns the alias of an already joined relation.
func (j *Joins) Alias(rel Relation) (string, bool) {
	if existing, ok := j.byID[rel.ID()]; ok {
		return existing.Alias, true
	}
	return "", false
}

// Has reports whether rel has been joined.
func (j *Joins) Has(rel Relation) bool {
	_, ok := j.byID[rel.ID()]
	return ok
}

// Reserve allocates a unique alias that is not attached to any join,
// for correlated subqueries.
func (j *Joins) Reserve(preferred string) string {
	return j.allocate(Relation{Alias: preferred})
}

// List returns the joins in first-requested order.
func (j *Joins) List() []Join {
	out := make([]Join, 0, len(j.order))
	for _, id := range j.order {
		out = append(out, *j.byID[id])
	}
	return out
}

// Len returns the number of joins.
func (j *Joins) Len() int {
	return len(j.order)
}

// Count returns how many joins target table.
func (j *Joins) Count(table string) int {
	n := 0
	for _, id := range j.order {
		if j.byID[id].Table == table {
			n++
		}
	}
	return n
}

func (j *Joins) allocate(rel Relation) string {
	base := rel.Alias
	if base == "" {
		base = "t"
	}
	if rel.Ordinal > 0 {
		base += strconv.Itoa(rel.Ordinal)
	}
	alias := base
	for n := 2; j.aliases[alias]; n++ {
		alias = fmt.Sprintf("%s_%d", base, n)
	}
	j.aliases[alias] = true
	return alias
}
