package ledger

import (
	"time"

	"github.com/google/uuid"
)

type Reason string

const (
	ReasonBreathingSession Reason = "breathing_session"
	ReasonMoodDiary        Reason = "mood_diary"
	ReasonCourseCompletion Reason = "course_completion"
	ReasonAchievement      Reason = "achievement"
	ReasonReferral         Reason = "referral"
	ReasonAdminAward       Reason = "admin_award"
)

// Entry is an immutable record of a balance change.
type Entry struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	UserID      uuid.UUID      `json:"user_id" db:"user_id"`
	Amount      int            `json:"amount" db:"amount"`
	Reason      Reason         `json:"reason" db:"reason"`
	Description string         `json:"description" db:"description"`
	Metadata    map[string]any `json:"metadata" db:"metadata"`
	CreatedAt   time.Time      `json:"timestamp" db:"created_at"`
}

type Award struct {
	UserID      uuid.UUID
	Amount      int
	Reason      Reason
	Description string
	Metadata    map[string]any
}

type AwardRequest struct {
	UserID      string         `json:"user_id"`
	Amount      int            `json:"amount"`
	Reason      Reason         `json:"reason,omitempty"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
