package mood

import (
	"time"

	"github.com/google/uuid"
)

type Mood string

const (
	VeryHappy Mood = "very_happy"
	Happy     Mood = "happy"
	Calm      Mood = "calm"
	Peaceful  Mood = "peaceful"
	Neutral   Mood = "neutral"
	Anxious   Mood = "anxious"
	Stressed  Mood = "stressed"
	Sad       Mood = "sad"
)

var moods = map[Mood]bool{
	VeryHappy: true,
	Happy:     true,
	Calm:      true,
	Peaceful:  true,
	Neutral:   true,
	Anxious:   true,
	Stressed:  true,
	Sad:       true,
}

func (m Mood) Valid() bool {
	return moods[m]
}

type Entry struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	Mood           Mood       `json:"mood" db:"mood"`
	Notes          *string    `json:"notes" db:"notes"`
	SessionID      *uuid.UUID `json:"session_id" db:"session_id"`
	ZenCoinsEarned int        `json:"zen_coins_earned" db:"zen_coins_earned"`
	CreatedAt      time.Time  `json:"timestamp" db:"created_at"`
}

type CreateEntryRequest struct {
	UserID    string  `json:"user_id"`
	Mood      Mood    `json:"mood"`
	Notes     *string `json:"notes,omitempty"`
	SessionID *string `json:"session_id,omitempty"`
}

type CreateEntryResponse struct {
	Entry
	AchievementsUnlocked []string `json:"achievements_unlocked"`
}
