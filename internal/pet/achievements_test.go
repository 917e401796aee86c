package pet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageFor(t *testing.T) {
	assert.Equal(t, StageNewborn, StageFor(0))
	assert.Equal(t, StageGrowing, StageFor(6))
	assert.Equal(t, StageMature, StageFor(23))
	assert.Equal(t, StageElder, StageFor(24))
}

func TestAchievements(t *testing.T) {
	got := Achievements(Stats{Health: 50, Spirituality: 80, Energy: 10, Happiness: 100}, 12)
	assert.Equal(t, []string{"Spiritual Guide", "Good Health", "Blissful", "Mature Soul"}, got)
}

func TestAchievementsNone(t *testing.T) {
	assert.Empty(t, Achievements(Uniform(20), 0))
}

func TestAchievementsMastery(t *testing.T) {
	got := Achievements(Uniform(100), 30)
	assert.Contains(t, got, MasteryTitle)
	assert.Contains(t, got, "Wise Elder")
	assert.Contains(t, got, "Boundless Energy")
}
