package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/subsel/internal/vocab"
)

func TestLoadOverrides_Empty(t *testing.T) {
	s := createTestStore(t)

	got, err := s.LoadOverrides(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadOverrides_Ordered(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.ImportOverrides(ctx, "test", []vocab.Override{
		{Domain: "screening status", Label: "Recall", ID: 3},
		{Domain: "gender", Label: "Male", ID: 1},
		{Domain: "screening status", Label: "Call", ID: 2},
	})
	require.NoError(t, err)

	got, err := s.LoadOverrides(ctx)
	require.NoError(t, err)
	assert.Equal(t, []vocab.Override{
		{Domain: "gender", Label: "Male", ID: 1},
		{Domain: "screening status", Label: "Call", ID: 2},
		{Domain: "screening status", Label: "Recall", ID: 3},
	}, got)
}

func TestVocabulary_AppliesOverrides(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.ImportOverrides(ctx, "test", []vocab.Override{
		{Domain: "screening status", Label: "Surveillance", ID: 9006},
		{Domain: "screening status", Label: "Local Pilot", ID: 9100},
	})
	require.NoError(t, err)

	set, err := s.Vocabulary(ctx, vocab.Default())
	require.NoError(t, err)

	id, ok := set.ScreeningStatus.Lookup("surveillance")
	require.True(t, ok)
	assert.Equal(t, int64(9006), id)

	id, ok = set.ScreeningStatus.Lookup("Local Pilot")
	require.True(t, ok)
	assert.Equal(t, int64(9100), id)

	base, _ := vocab.Default().ScreeningStatus.Lookup("Surveillance")
	assert.Equal(t, int64(4006), base, "base set must not change")
}

func TestChecksum(t *testing.T) {
	a := []vocab.Override{
		{Domain: "gender", Label: "Male", ID: 1},
		{Domain: "episode type", Label: "FOBT", ID: 2},
	}
	b := []vocab.Override{a[1], a[0]}

	sa, err := Checksum(a)
	require.NoError(t, err)
	sb, err := Checksum(b)
	require.NoError(t, err)
	assert.Equal(t, sa, sb)
	assert.Len(t, sa, 64)

	sc, err := Checksum(append(b, vocab.Override{Domain: "gender", Label: "Male", ID: 5}))
	require.NoError(t, err)
	assert.NotEqual(t, sa, sc)
}
