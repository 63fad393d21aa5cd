package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"restorativeLandsAPI/internal/leaderboard"
)

const (
	leaderboardKey = "leaderboard:top"
	leaderboardTTL = 30 * time.Second
)

// ErrMiss is returned when the key is absent or unreadable.
var ErrMiss = errors.New("cache miss")

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// LeaderboardCache keeps the top of the leaderboard for a short TTL. It
// always stores the longest list so any smaller limit is a prefix of it.
type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{client: client}
}

func (c *LeaderboardCache) Get(ctx context.Context) ([]leaderboard.LeaderboardEntry, error) {
	val, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}

	var entries []leaderboard.LeaderboardEntry
	if err := json.Unmarshal(val, &entries); err != nil {
		return nil, ErrMiss
	}
	return entries, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, entries []leaderboard.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, leaderboardKey, data, leaderboardTTL).Err()
}
