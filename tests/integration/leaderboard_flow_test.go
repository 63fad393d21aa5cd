package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restorativeLandsAPI/internal/cache"
	"restorativeLandsAPI/internal/leaderboard"
	"restorativeLandsAPI/internal/ledger"
	"restorativeLandsAPI/internal/mood"
	"restorativeLandsAPI/internal/user"
	"restorativeLandsAPI/services"
	"restorativeLandsAPI/tests/helpers"
)

type recordingCache struct {
	entries []leaderboard.LeaderboardEntry
	sets    int
}

func (c *recordingCache) Get(ctx context.Context) ([]leaderboard.LeaderboardEntry, error) {
	if c.entries == nil {
		return nil, cache.ErrMiss
	}
	return c.entries, nil
}

func (c *recordingCache) Set(ctx context.Context, entries []leaderboard.LeaderboardEntry) error {
	c.entries = entries
	c.sets++
	return nil
}

// seedRanking creates three users whose balances outrank anyone else in the
// database, richest first.
func seedRanking(t *testing.T, a *app) []*user.User {
	ctx := context.Background()

	var ranked []*user.User
	for _, coins := range []int{3_000_000, 2_000_000, 1_000_000} {
		u := helpers.CreateTestUser(t, a.users, nil)
		_, err := a.rewards.Award(ctx, &ledger.AwardRequest{UserID: u.ID, Amount: coins, Description: "leaderboard seed"})
		require.NoError(t, err)
		ranked = append(ranked, u)
	}
	return ranked
}

func TestLeaderboardOrdersByBalance(t *testing.T) {
	a := setup(t)
	ranked := seedRanking(t, a)

	entries, err := services.NewLeaderboardService(a.pool, nil).GetLeaderboard(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i, u := range ranked {
		assert.Equal(t, u.ID, entries[i].UserID)
		assert.Equal(t, u.Username, entries[i].Username)
		assert.Equal(t, i+1, entries[i].Rank)
	}
	assert.Equal(t, 3_000_000, entries[0].ZenCoins)
}

func TestLeaderboardClampsLimit(t *testing.T) {
	a := setup(t)
	for i := 0; i < leaderboard.MaxLimit+1; i++ {
		helpers.CreateTestUser(t, a.users, nil)
	}

	entries, err := services.NewLeaderboardService(a.pool, nil).GetLeaderboard(context.Background(), 500)
	require.NoError(t, err)
	assert.Len(t, entries, leaderboard.MaxLimit)
	assert.Equal(t, leaderboard.MaxLimit, entries[len(entries)-1].Rank)
}

func TestLeaderboardFillsCacheOnMiss(t *testing.T) {
	a := setup(t)
	ranked := seedRanking(t, a)
	ctx := context.Background()

	rc := &recordingCache{}
	svc := services.NewLeaderboardService(a.pool, rc)

	first, err := svc.GetLeaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, ranked[0].ID, first[0].UserID)
	assert.Equal(t, 1, rc.sets)
	require.NotEmpty(t, rc.entries)
	assert.LessOrEqual(t, len(rc.entries), leaderboard.MaxLimit)
	assert.Equal(t, ranked[0].ID, rc.entries[0].UserID)

	second, err := svc.GetLeaderboard(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, rc.sets, "second read is served from the cache")
	require.Len(t, second, 3)
	assert.Equal(t, ranked[2].ID, second[2].UserID)
}

func TestMoodDiaryUnlocksMoodTracker(t *testing.T) {
	a := setup(t)
	ctx := context.Background()
	u := helpers.CreateTestUser(t, a.users, nil)

	for i := 1; i <= 5; i++ {
		resp, err := a.moods.CreateEntry(ctx, &mood.CreateEntryRequest{UserID: u.ID, Mood: mood.Peaceful})
		require.NoError(t, err)
		assert.Equal(t, services.MoodEntryReward, resp.ZenCoinsEarned)

		if i < 5 {
			assert.Empty(t, resp.AchievementsUnlocked, "entry %d", i)
		} else {
			assert.Equal(t, []string{"Mood Tracker"}, resp.AchievementsUnlocked)
		}
	}

	balance, err := a.rewards.GetBalance(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 5*services.MoodEntryReward+25, balance.ZenCoins)

	entries, err := a.moods.GetEntries(ctx, u.ID, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}
