package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvedValue_SealedSwitch(t *testing.T) {
	values := []ResolvedValue{
		NewConcrete(int64(4006)),
		NewConcrete("ABNORMAL"),
		Null{},
		NotNull{},
		Unchanged{},
	}

	var kinds []string
	for _, v := range values {
		switch v.(type) {
		case Concrete[int64]:
			kinds = append(kinds, "id")
		case Concrete[string]:
			kinds = append(kinds, "code")
		case Null:
			kinds = append(kinds, "null")
		case NotNull:
			kinds = append(kinds, "not null")
		case Unchanged:
			kinds = append(kinds, "unchanged")
		}
	}
	assert.Equal(t, []string{"id", "code", "null", "not null", "unchanged"}, kinds)
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(Null{}))
	assert.False(t, IsNull(NotNull{}))
	assert.False(t, IsNull(NewConcrete(int64(1))))
}

func TestIsSentinel(t *testing.T) {
	assert.True(t, IsSentinel(Null{}))
	assert.True(t, IsSentinel(NotNull{}))
	assert.True(t, IsSentinel(Unchanged{}))
	assert.False(t, IsSentinel(NewConcrete(int64(1))))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "4006", Describe(NewConcrete(int64(4006))))
	assert.Equal(t, `"NORMAL"`, Describe(NewConcrete("NORMAL")))
	assert.Equal(t, "null", Describe(Null{}))
	assert.Equal(t, "not null", Describe(NotNull{}))
	assert.Equal(t, "unchanged", Describe(Unchanged{}))
	assert.Equal(t, "<nil>", Describe(nil))
}
