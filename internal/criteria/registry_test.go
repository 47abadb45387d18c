package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/subsel/internal/ir"
)

func TestRegistry_ResolveExact(t *testing.T) {
	info, err := Default().Resolve("screening status")
	require.NoError(t, err)
	assert.Equal(t, ScreeningStatus, info.Key)
	assert.True(t, info.AllowNegation)
	assert.False(t, info.AllowMultipleValues)
}

func TestRegistry_ResolveCaseInsensitive(t *testing.T) {
	tests := []string{
		"NHS Number",
		"  nhs number  ",
		"Nhs   NUMBER",
	}
	for _, label := range tests {
		t.Run(label, func(t *testing.T) {
			info, err := Default().Resolve(label)
			require.NoError(t, err)
			assert.Equal(t, NHSNumber, info.Key)
		})
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	_, err := Default().Resolve("invalid key")
	require.Error(t, err)
	assert.True(t, ir.IsKind(err, ir.ErrUnknownCriteriaKey))

	var ce *ir.CriterionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "invalid key", ce.Key)
}

func TestRegistry_DescriptionsUnique(t *testing.T) {
	seen := make(map[string]Key)
	for _, info := range Default().All() {
		f := fold(info.Description)
		prev, dup := seen[f]
		assert.False(t, dup, "%q collides with %v", info.Description, prev)
		seen[f] = info.Key
	}
	assert.Equal(t, int(keyCount), Default().Len())
}

func TestRegistry_AllInCatalogueOrder(t *testing.T) {
	all := Default().All()
	require.Len(t, all, int(keyCount))
	for i, info := range all {
		assert.Equal(t, Key(i), info.Key)
		assert.NotEmpty(t, info.Description, "key %d has no description", i)
	}

	// Mutating the returned slice must not leak into the registry.
	all[0].Description = "changed"
	assert.Equal(t, "nhs number", Default().All()[0].Description)
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "subject age (y/d)", SubjectAgeYearsDays.String())
	assert.Equal(t, "unknown key", Key(-1).String())
	assert.Equal(t, "unknown key", keyCount.String())
}

func TestKeys(t *testing.T) {
	keys := Keys()
	require.Len(t, keys, int(keyCount))
	assert.Equal(t, NHSNumber, keys[0])
	assert.Equal(t, HasExistingSurveillanceReviewCase, keys[len(keys)-1])
}
