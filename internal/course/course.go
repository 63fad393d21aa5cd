package course

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelMaster       Level = "master"
)

type Course struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Description      string    `json:"description" db:"description"`
	Level            Level     `json:"level" db:"level"`
	ZenCoinReward    int       `json:"zen_coin_reward" db:"zen_coin_reward"`
	DurationMinutes  int       `json:"duration_minutes" db:"duration_minutes"`
	BreathingPattern string    `json:"breathing_pattern" db:"breathing_pattern"`
	Prerequisites    []string  `json:"prerequisites" db:"prerequisites"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	SortOrder        int       `json:"-" db:"sort_order"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

type Completion struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	CourseID       uuid.UUID `json:"course_id" db:"course_id"`
	ZenCoinsEarned int       `json:"zen_coins_earned" db:"zen_coins_earned"`
	CompletedAt    time.Time `json:"completed_at" db:"completed_at"`
}

type CompletionResponse struct {
	Completion
	CourseName           string   `json:"course_name"`
	AchievementsUnlocked []string `json:"achievements_unlocked"`
}

// Slug is the encoding prerequisites use to name a course.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// Available keeps the active courses whose prerequisites all appear in
// completed, a set of slugs.
func Available(courses []Course, completed map[string]bool) []Course {
	available := []Course{}
	for _, c := range courses {
		if !c.IsActive {
			continue
		}
		if prerequisitesMet(c.Prerequisites, completed) {
			available = append(available, c)
		}
	}
	return available
}

func prerequisitesMet(prerequisites []string, completed map[string]bool) bool {
	for _, p := range prerequisites {
		if !completed[p] {
			return false
		}
	}
	return true
}

// CompletedSlugs maps completed course names to their slug set.
func CompletedSlugs(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[Slug(n)] = true
	}
	return set
}
