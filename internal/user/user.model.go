package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   string     `json:"id"`
	Username             string     `json:"username"`
	Email                *string    `json:"email"`
	ZenCoins             int        `json:"zen_coins"`
	TotalSessions        int        `json:"total_sessions"`
	ConsecutiveDays      int        `json:"consecutive_days"`
	LastPracticeDate     *time.Time `json:"last_practice_date"`
	AchievementsUnlocked []string   `json:"achievements_unlocked"`
	ReferralCode         string     `json:"referral_code"`
	ReferredBy           *string    `json:"referred_by"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type Balance struct {
	UserID   string `json:"user_id"`
	ZenCoins int    `json:"zen_coins"`
}

// NewReferralCode returns an 8 character upper-case code.
func NewReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
