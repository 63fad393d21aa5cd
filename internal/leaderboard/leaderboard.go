package leaderboard

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type LeaderboardEntry struct {
	UserID          string `json:"user_id" db:"id"`
	Username        string `json:"username" db:"username"`
	ZenCoins        int    `json:"zen_coins" db:"zen_coins"`
	TotalSessions   int    `json:"total_sessions" db:"total_sessions"`
	ConsecutiveDays int    `json:"consecutive_days" db:"consecutive_days"`
	Rank            int    `json:"rank" db:"rank"`
}

// ClampLimit applies the default to non-positive limits and caps the rest.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Rank numbers entries from 1 in their current order.
func Rank(entries []LeaderboardEntry) []LeaderboardEntry {
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
