package achievement

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Achievement struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	Name          string      `json:"name" db:"name"`
	Description   string      `json:"description" db:"description"`
	Icon          string      `json:"icon" db:"icon"`
	ZenCoinReward int         `json:"zen_coin_reward" db:"zen_coin_reward"`
	Requirement   Requirement `json:"-" db:"requirement"`
	Repeatable    bool        `json:"is_repeatable" db:"is_repeatable"`
	SortOrder     int         `json:"-" db:"sort_order"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}

// MarshalJSON flattens the requirement into "type" and "requirement" keys.
func (a Achievement) MarshalJSON() ([]byte, error) {
	type plain Achievement

	req, err := MarshalRequirement(a.Requirement)
	if err != nil {
		return nil, err
	}

	return json.Marshal(struct {
		plain
		Type        Kind            `json:"type"`
		Requirement json.RawMessage `json:"requirement"`
	}{
		plain:       plain(a),
		Type:        a.Requirement.Kind(),
		Requirement: req,
	})
}

// Counters is the snapshot of a user's activity that requirements are checked against.
type Counters struct {
	TotalSessions    int
	ConsecutiveDays  int
	CompletedCourses int
	MoodEntries      int
	Referrals        int
	PracticedToday   bool
}

// Evaluate returns, in catalog order, the achievements earned by counters
// that are not already unlocked. Repeatable achievements are returned
// every time their requirement holds.
func Evaluate(catalog []Achievement, unlocked []string, c Counters) []Achievement {
	have := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		have[id] = true
	}

	earned := []Achievement{}
	for _, a := range catalog {
		if have[a.ID.String()] && !a.Repeatable {
			continue
		}
		if Satisfied(a.Requirement, c) {
			earned = append(earned, a)
		}
	}

	return earned
}
