package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComparator_SQL(t *testing.T) {
	cases := map[Comparator]string{
		EQ: "=",
		NE: "!=",
		LT: "<",
		LE: "<=",
		GT: ">",
		GE: ">=",
	}
	for cmp, want := range cases {
		assert.Equal(t, want, cmp.SQL(), cmp.String())
	}
	assert.Equal(t, "?", Comparator(99).SQL())
}

func TestComparator_Negate(t *testing.T) {
	assert.Equal(t, NE, EQ.Negate())
	assert.Equal(t, EQ, NE.Negate())
	assert.Equal(t, GT, GT.Negate(), "ordering comparators are not negated")
}

func TestComparator_Flip(t *testing.T) {
	assert.Equal(t, GT, LT.Flip())
	assert.Equal(t, LT, GT.Flip())
	assert.Equal(t, GE, LE.Flip())
	assert.Equal(t, LE, GE.Flip())
	assert.Equal(t, EQ, EQ.Flip())
	assert.Equal(t, NE, NE.Flip())
}

func TestComparator_IsEquality(t *testing.T) {
	assert.True(t, EQ.IsEquality())
	assert.True(t, NE.IsEquality())
	assert.False(t, GE.IsEquality())
}
