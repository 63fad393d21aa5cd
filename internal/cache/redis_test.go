package cache

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restorativeLandsAPI/internal/leaderboard"
)

func setupRedis(t *testing.T) *LeaderboardCache {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set, skipping redis test")
	}

	client, err := Connect(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() {
		client.Del(context.Background(), leaderboardKey)
		client.Close()
	})

	return NewLeaderboardCache(client)
}

func TestLeaderboardCacheRoundTrip(t *testing.T) {
	c := setupRedis(t)
	ctx := context.Background()

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrMiss)

	entries := []leaderboard.LeaderboardEntry{{UserID: "a", Username: "river", ZenCoins: 40, Rank: 1}}
	require.NoError(t, c.Set(ctx, entries))

	cached, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, cached)
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not a url")
	assert.Error(t, err)
}
