package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAchievementUnlockedSingle(t *testing.T) {
	push := AchievementUnlocked("42", []string{"First Steps"}, 10)

	assert.Equal(t, "user-42", push.Topic)
	assert.Equal(t, "Achievement unlocked", push.Title)
	assert.Equal(t, "First Steps (+10 Zen Coins)", push.Body)
	assert.Equal(t, "achievement", push.Data["type"])
	assert.Equal(t, PriorityHigh, push.Priority)
}

func TestAchievementUnlockedMany(t *testing.T) {
	push := AchievementUnlocked("42", []string{"First Steps", "Three Day Flow"}, 35)

	assert.Equal(t, "2 achievements unlocked", push.Title)
	assert.Equal(t, "First Steps,Three Day Flow", push.Data["achievements"])
}
