package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsValid(t *testing.T) {
	t.Parallel()

	s := New()
	assert.Len(t, s, 26)
	assert.True(t, Valid(s))
	assert.False(t, Valid("not-a-ulid"))
}

func TestGeneratorMonotonicWithinMillisecond(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	g := NewSeeded(42, func() time.Time { return fixed })

	ids := make([]string, 50)
	for i := range ids {
		ids[i] = g.New()
	}

	require.True(t, sort.StringsAreSorted(ids))
	seen := map[string]bool{}
	for _, s := range ids {
		assert.False(t, seen[s], "duplicate id %s", s)
		seen[s] = true
	}
}

func TestGeneratorSeededIsReproducible(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	a := NewSeeded(7, func() time.Time { return fixed })
	b := NewSeeded(7, func() time.Time { return fixed })

	assert.Equal(t, a.New(), b.New())
}
