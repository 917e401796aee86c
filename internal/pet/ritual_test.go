package pet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRitualEffectBase(t *testing.T) {
	d, completed := RitualEffect(RitualAlhamdulillah, 1)
	assert.False(t, completed)
	assert.Equal(t, Delta{Health: 0.5, Spirituality: 0.5, Energy: 0.5, Happiness: 1}, d)
}

func TestRitualEffectUnknownName(t *testing.T) {
	d, completed := RitualEffect("La ilaha illallah", 33)
	assert.True(t, completed)
	assert.Equal(t, All(3.5), d)
}

func TestRitualEffectSetCompletion(t *testing.T) {
	d, completed := RitualEffect(RitualSubhanallah, 33)
	require.True(t, completed)
	assert.Equal(t, Delta{Health: 3.5, Spirituality: 6, Energy: 3.5, Happiness: 3.5}, d)
}

func TestRitualEffectOnlyMultiplesOfSetSize(t *testing.T) {
	var sets []int
	for n := 1; n <= 100; n++ {
		if _, completed := RitualEffect(RitualAllahuAkbar, n); completed {
			sets = append(sets, n)
		}
	}
	assert.Equal(t, []int{33, 66, 99}, sets)
}

func TestDesignatedStat(t *testing.T) {
	tests := map[string]Stat{
		RitualSubhanallah:    Spirituality,
		RitualAlhamdulillah:  Happiness,
		RitualAllahuAkbar:    Energy,
		RitualAstaghfirullah: Health,
	}
	for name, want := range tests {
		got, ok := DesignatedStat(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := DesignatedStat("unknown")
	assert.False(t, ok)
}

func TestNewRitualCountsSeedsCanonical(t *testing.T) {
	rc := NewRitualCounts()
	assert.Len(t, rc, 4)
	for _, name := range CanonicalRituals {
		assert.Equal(t, 0, rc[name])
	}

	c := rc.Clone()
	c[RitualSubhanallah] = 5
	assert.Equal(t, 0, rc[RitualSubhanallah])
}
