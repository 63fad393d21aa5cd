package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"restorativeLandsAPI/internal/cache"
	"restorativeLandsAPI/internal/leaderboard"
	"restorativeLandsAPI/internal/logger"
)

type LeaderboardCache interface {
	Get(ctx context.Context) ([]leaderboard.LeaderboardEntry, error)
	Set(ctx context.Context, entries []leaderboard.LeaderboardEntry) error
}

type LeaderboardService struct {
	db    *pgxpool.Pool
	cache LeaderboardCache
}

// NewLeaderboardService reads straight from Postgres when cache is nil.
func NewLeaderboardService(db *pgxpool.Pool, cache LeaderboardCache) *LeaderboardService {
	return &LeaderboardService{db: db, cache: cache}
}

// GetLeaderboard returns the top users by balance with 1-based ranks.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]leaderboard.LeaderboardEntry, error) {
	limit = leaderboard.ClampLimit(limit)

	if s.cache != nil {
		entries, err := s.cache.Get(ctx)
		if err == nil {
			return head(entries, limit), nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn("leaderboard cache read failed", "err", err)
		}
	}

	entries, err := s.query(ctx, leaderboard.MaxLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, entries); err != nil {
			logger.Warn("leaderboard cache write failed", "err", err)
		}
	}

	return head(entries, limit), nil
}

func (s *LeaderboardService) query(ctx context.Context, limit int) ([]leaderboard.LeaderboardEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, username, zen_coins, total_sessions, consecutive_days
		FROM users
		ORDER BY zen_coins DESC, created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []leaderboard.LeaderboardEntry{}
	for rows.Next() {
		var e leaderboard.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.ZenCoins, &e.TotalSessions, &e.ConsecutiveDays); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leaderboard.Rank(entries), nil
}

func head(entries []leaderboard.LeaderboardEntry, limit int) []leaderboard.LeaderboardEntry {
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
