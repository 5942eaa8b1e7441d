package quiz

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_SmallRoster(t *testing.T) {
	roster := []string{"Alice", "Bob", "Carol"}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		q, err := Compose(roster, "Bob", rng)
		require.NoError(t, err)

		assert.Len(t, q.Options, 3)
		assert.Equal(t, "Bob", q.Options[q.CorrectIndex])
		assert.ElementsMatch(t, roster, q.Options)
	}
}

func TestCompose_TwelveMembers(t *testing.T) {
	roster := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		q, err := Compose(roster, "F", rng)
		require.NoError(t, err)

		assert.Len(t, q.Options, MaxOptions)
		assert.GreaterOrEqual(t, q.CorrectIndex, 0)
		assert.Less(t, q.CorrectIndex, MaxOptions-1)
		assert.Equal(t, "F", q.Options[q.CorrectIndex])

		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			assert.False(t, seen[opt], "duplicate option %q", opt)
			seen[opt] = true
			assert.Contains(t, roster, opt)
		}
	}
}

func TestCompose_IndexNeverInLastSlot(t *testing.T) {
	roster := make([]string, 30)
	for i := range roster {
		roster[i] = string(rune('a' + i))
	}
	rng := rand.New(rand.NewSource(7))

	positions := make(map[int]int)
	for i := 0; i < 1000; i++ {
		q, err := Compose(roster, roster[0], rng)
		require.NoError(t, err)
		positions[q.CorrectIndex]++
	}

	// Every slot in [0, MaxOptions-1) should be hit, the last one never.
	assert.Zero(t, positions[MaxOptions-1])
	for i := 0; i < MaxOptions-1; i++ {
		assert.Positive(t, positions[i], "index %d never drawn", i)
	}
}

func TestCompose_TargetNotInRoster(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := Compose([]string{"Alice", "Bob"}, "Mallory", rng)
	assert.Error(t, err)
}

func TestCompose_TwoMembers(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		q, err := Compose([]string{"Alice", "Bob"}, "Alice", rng)
		require.NoError(t, err)
		assert.Len(t, q.Options, 2)
		assert.Equal(t, "Alice", q.Options[q.CorrectIndex])
	}
}

func TestCompose_DoesNotMutateRoster(t *testing.T) {
	roster := []string{"Alice", "Bob", "Carol", "Dan"}
	rng := rand.New(rand.NewSource(9))
	_, err := Compose(roster, "Carol", rng)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dan"}, roster)
}
