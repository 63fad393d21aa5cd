package achievement

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withIDs(catalog []Achievement) []Achievement {
	for i := range catalog {
		catalog[i].ID = uuid.New()
		catalog[i].SortOrder = i
	}
	return catalog
}

func names(achievements []Achievement) []string {
	out := []string{}
	for _, a := range achievements {
		out = append(out, a.Name)
	}
	return out
}

func TestSatisfied(t *testing.T) {
	tests := []struct {
		name     string
		req      Requirement
		counters Counters
		want     bool
	}{
		{"sessions reached", DailyPractice{Sessions: 1}, Counters{TotalSessions: 1}, true},
		{"sessions short", DailyPractice{Sessions: 10}, Counters{TotalSessions: 9}, false},
		{"daily practiced today", DailyPractice{Daily: true}, Counters{PracticedToday: true}, true},
		{"daily not practiced", DailyPractice{Daily: true}, Counters{TotalSessions: 50}, false},
		{"streak reached", ConsecutiveDays{Days: 3}, Counters{ConsecutiveDays: 3}, true},
		{"streak short", ConsecutiveDays{Days: 7}, Counters{ConsecutiveDays: 6}, false},
		{"course reached", CourseCompletion{Courses: 1}, Counters{CompletedCourses: 2}, true},
		{"course short", CourseCompletion{Courses: 1}, Counters{}, false},
		{"mood reached", MoodDiary{Entries: 5}, Counters{MoodEntries: 5}, true},
		{"mood short", MoodDiary{Entries: 5}, Counters{MoodEntries: 4}, false},
		{"referral reached", FriendReferral{Referrals: 1}, Counters{Referrals: 1}, true},
		{"referral short", FriendReferral{Referrals: 1}, Counters{}, false},
		{"nil requirement", nil, Counters{TotalSessions: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Satisfied(tt.req, tt.counters))
		})
	}
}

func TestEvaluateFirstSession(t *testing.T) {
	catalog := withIDs(DefaultCatalog())

	earned := Evaluate(catalog, nil, Counters{TotalSessions: 1, ConsecutiveDays: 1, PracticedToday: true})

	assert.Equal(t, []string{"First Steps"}, names(earned))
}

func TestEvaluateSkipsUnlocked(t *testing.T) {
	catalog := withIDs(DefaultCatalog())
	counters := Counters{TotalSessions: 1, ConsecutiveDays: 1}

	first := Evaluate(catalog, nil, counters)
	require.Len(t, first, 1)

	second := Evaluate(catalog, []string{first[0].ID.String()}, counters)
	assert.Empty(t, second)
}

func TestEvaluateRepeatable(t *testing.T) {
	catalog := withIDs([]Achievement{
		{Name: "Daily Calm", Requirement: DailyPractice{Daily: true}, Repeatable: true},
		{Name: "First Steps", Requirement: DailyPractice{Sessions: 1}},
	})
	unlocked := []string{catalog[0].ID.String(), catalog[1].ID.String()}

	earned := Evaluate(catalog, unlocked, Counters{TotalSessions: 3, PracticedToday: true})

	assert.Equal(t, []string{"Daily Calm"}, names(earned))
}

func TestEvaluateKeepsCatalogOrder(t *testing.T) {
	catalog := withIDs(DefaultCatalog())

	earned := Evaluate(catalog, nil, Counters{
		TotalSessions:    10,
		ConsecutiveDays:  3,
		CompletedCourses: 1,
		MoodEntries:      5,
		Referrals:        1,
	})

	assert.Equal(t, []string{
		"First Steps",
		"Dedicated Breather",
		"Three Day Flow",
		"Course Explorer",
		"Mood Tracker",
		"Zen Ambassador",
	}, names(earned))
}

func TestRequirementRoundTrip(t *testing.T) {
	for _, req := range []Requirement{
		DailyPractice{Sessions: 10},
		DailyPractice{Daily: true},
		ConsecutiveDays{Days: 7},
		CourseCompletion{Courses: 3},
		MoodDiary{Entries: 5},
		FriendReferral{Referrals: 2},
	} {
		data, err := MarshalRequirement(req)
		require.NoError(t, err)

		decoded, err := UnmarshalRequirement(data)
		require.NoError(t, err)
		assert.Equal(t, req, decoded)
	}
}

func TestUnmarshalRequirementErrors(t *testing.T) {
	_, err := UnmarshalRequirement([]byte(`{"type":"meditation_minutes","minutes":30}`))
	assert.Error(t, err)

	_, err = UnmarshalRequirement([]byte(`not json`))
	assert.Error(t, err)

	_, err = MarshalRequirement(nil)
	assert.Error(t, err)
}

func TestAchievementJSON(t *testing.T) {
	a := Achievement{
		ID:            uuid.New(),
		Name:          "Weekly Warrior",
		ZenCoinReward: 75,
		Requirement:   ConsecutiveDays{Days: 7},
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "Weekly Warrior", body["name"])
	assert.Equal(t, "consecutive_days", body["type"])
	assert.Equal(t, float64(75), body["zen_coin_reward"])
	assert.Equal(t, map[string]any{"type": "consecutive_days", "days": float64(7)}, body["requirement"])
}
