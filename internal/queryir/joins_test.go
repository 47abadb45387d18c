package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func episodeJoin(alias string) Join {
	return Join{
		Table: "ep_subject_episode_t",
		On:    []Predicate{Eq(Col(alias, "screening_subject_id"), Col("ss", "screening_subject_id"))},
	}
}

func TestJoins_EnsureIdempotent(t *testing.T) {
	j := NewJoins("ss")
	rel := Relation{Name: "latest episode", Alias: "ep"}

	calls := 0
	build := func(alias string) Join {
		calls++
		return episodeJoin(alias)
	}

	first := j.Ensure(rel, build)
	second := j.Ensure(rel, build)

	assert.Equal(t, "ep", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "build must run once per relation")
	assert.Equal(t, 1, j.Len())
}

func TestJoins_OrdinalRelationsAreDistinct(t *testing.T) {
	j := NewJoins("ss")
	first := j.Ensure(Relation{Name: "diagnostic test", Ordinal: 1, Alias: "xt"}, episodeJoin)
	second := j.Ensure(Relation{Name: "diagnostic test", Ordinal: 2, Alias: "xt"}, episodeJoin)

	assert.Equal(t, "xt1", first)
	assert.Equal(t, "xt2", second)
	assert.Equal(t, 2, j.Len())
	assert.Equal(t, "diagnostic test#2", Relation{Name: "diagnostic test", Ordinal: 2}.ID())
}

func TestJoins_AliasCollision(t *testing.T) {
	j := NewJoins("ss")
	a := j.Ensure(Relation{Name: "one", Alias: "x"}, episodeJoin)
	b := j.Ensure(Relation{Name: "two", Alias: "x"}, episodeJoin)
	c := j.Ensure(Relation{Name: "three", Alias: "ss"}, episodeJoin)

	assert.Equal(t, "x", a)
	assert.Equal(t, "x_2", b)
	assert.Equal(t, "ss_2", c, "reserved FROM alias is never reused")
}

func TestJoins_ListOrderAndAliasOverwrite(t *testing.T) {
	j := NewJoins()
	j.Ensure(Relation{Name: "b", Alias: "b"}, func(string) Join {
		return Join{Table: "b_t", Alias: "ignored"}
	})
	j.Ensure(Relation{Name: "a", Alias: "a"}, func(string) Join {
		return Join{Table: "a_t"}
	})

	list := j.List()
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Alias)
	assert.Equal(t, "a", list[1].Alias)
	assert.Equal(t, 1, j.Count("a_t"))
	assert.Equal(t, 0, j.Count("c_t"))
}

func TestJoins_AliasLookup(t *testing.T) {
	j := NewJoins()
	rel := Relation{Name: "kit", Alias: "tk"}
	_, ok := j.Alias(rel)
	assert.False(t, ok)
	assert.False(t, j.Has(rel))

	j.Ensure(rel, episodeJoin)
	alias, ok := j.Alias(rel)
	assert.True(t, ok)
	assert.Equal(t, "tk", alias)
}

func TestJoins_Reserve(t *testing.T) {
	j := NewJoins("ss")
	assert.Equal(t, "ev", j.Reserve("ev"))
	assert.Equal(t, "ev_2", j.Reserve("ev"))
	assert.Equal(t, 0, j.Len(), "reserved aliases are not joins")
}

func TestSelect_OrderByFromJoins(t *testing.T) {
	sel := NewSelect(Table{Name: "screening_subject_t", Alias: "ss"})
	sel.Joins.Ensure(Relation{Name: "kit", Alias: "tk"}, func(alias string) Join {
		return Join{Table: "tk_items_t", OrderBy: []OrderTerm{{Column: Col(alias, "kitid"), Desc: true}}}
	})
	sel.Joins.Ensure(Relation{Name: "episode", Alias: "ep"}, episodeJoin)

	assert.Equal(t, []OrderTerm{{Column: Col("tk", "kitid"), Desc: true}}, sel.OrderBy())
}
