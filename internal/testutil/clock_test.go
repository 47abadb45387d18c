package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/subsel/internal/ir"
)

func TestFixedClock_IsFrozen(t *testing.T) {
	clock := NewFixedClock(2024, time.March, 15)
	want := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, want, clock.Now())
	assert.Equal(t, want, clock.Now())
}

func TestFixedClock_AdvanceAndSet(t *testing.T) {
	clock := NewFixedClock(2024, time.March, 15)

	clock.Advance(48 * time.Hour)
	assert.Equal(t, 17, clock.Now().Day())

	clock.Set(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2000, clock.Now().Year())
}

func TestFixedClock_ThreadSafe(t *testing.T) {
	clock := NewFixedClock(2024, time.January, 1)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clock.Advance(time.Hour)
			_ = clock.Now()
		}()
	}
	wg.Wait()

	assert.Equal(t, time.Date(2024, time.January, 3, 2, 0, 0, 0, time.UTC), clock.Now())
}

func TestSequentialIDs(t *testing.T) {
	g := NewSequentialIDs("")
	assert.Equal(t, "trace-1", g.Generate())
	assert.Equal(t, "trace-2", g.Generate())

	g = NewSequentialIDs("cli")
	assert.Equal(t, "cli-1", g.Generate())
}

func TestCriteria(t *testing.T) {
	got := Criteria("screening status", "Call", "subject age", "> 60")
	require.Len(t, got, 2)
	assert.Equal(t, ir.C("screening status", "Call"), got[0])
	assert.Equal(t, ir.C("subject age", "> 60"), got[1])

	assert.Empty(t, Criteria())
	assert.Panics(t, func() { Criteria("odd") })
}
