package session

import (
	"time"

	"github.com/google/uuid"
)

type BreathingSession struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	Intention       string    `json:"intention" db:"intention"`
	PatternName     string    `json:"pattern_name" db:"pattern_name"`
	CyclesCompleted int       `json:"cycles_completed" db:"cycles_completed"`
	DurationSeconds int       `json:"duration_seconds" db:"duration_seconds"`
	ZenCoinsEarned  int       `json:"zen_coins_earned" db:"zen_coins_earned"`
	CreatedAt       time.Time `json:"timestamp" db:"created_at"`
}

type CreateSessionRequest struct {
	UserID          string `json:"user_id"`
	Intention       string `json:"intention"`
	PatternName     string `json:"pattern_name"`
	CyclesCompleted int    `json:"cycles_completed"`
	DurationSeconds int    `json:"duration_seconds"`
}

type CreateSessionResponse struct {
	BreathingSession
	ConsecutiveDays      int      `json:"consecutive_days"`
	AchievementsUnlocked []string `json:"achievements_unlocked"`
}
