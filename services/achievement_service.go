package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restorativeLandsAPI/internal/achievement"
	"restorativeLandsAPI/internal/ledger"
	"restorativeLandsAPI/internal/logger"
	"restorativeLandsAPI/internal/notification"
	"restorativeLandsAPI/internal/streak"
)

type AchievementService struct {
	db         *pgxpool.Pool
	catalog    []achievement.Achievement
	dispatcher *NotificationDispatcher
	now        func() time.Time
}

// NewAchievementService takes the catalog as loaded at startup; it is never
// reloaded. dispatcher may be nil.
func NewAchievementService(db *pgxpool.Pool, catalog []achievement.Achievement, dispatcher *NotificationDispatcher) *AchievementService {
	return &AchievementService{
		db:         db,
		catalog:    append([]achievement.Achievement(nil), catalog...),
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

func (s *AchievementService) GetAll() []achievement.Achievement {
	return append([]achievement.Achievement{}, s.catalog...)
}

// GetUnlocked returns the catalog entries the user has unlocked, in catalog order.
func (s *AchievementService) GetUnlocked(ctx context.Context, id string) ([]achievement.Achievement, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}

	var unlocked []string
	err = s.db.QueryRow(ctx, `SELECT achievements_unlocked FROM users WHERE id = $1`, userID).Scan(&unlocked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get unlocked achievements: %w", err)
	}

	have := make(map[string]bool, len(unlocked))
	for _, u := range unlocked {
		have[u] = true
	}

	result := []achievement.Achievement{}
	for _, a := range s.catalog {
		if have[a.ID.String()] {
			result = append(result, a)
		}
	}
	return result, nil
}

// Evaluate checks the user's counters against the catalog in its own
// transaction and returns what was newly unlocked.
func (s *AchievementService) Evaluate(ctx context.Context, id string) ([]achievement.Achievement, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}

	var earned []achievement.Achievement
	rtx, err := withRewardTx(ctx, s.db, func(rtx *rewardTx) error {
		earned, err = s.evaluate(ctx, rtx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(rtx)
	return earned, nil
}

// evaluate locks the profile row, so concurrent evaluations for one user
// serialize and a non-repeatable achievement is awarded once.
func (s *AchievementService) evaluate(ctx context.Context, rtx *rewardTx, userID uuid.UUID) ([]achievement.Achievement, error) {
	var (
		counters     achievement.Counters
		lastPractice *time.Time
		unlocked     []string
		referralCode string
	)

	err := rtx.QueryRow(ctx, `
		SELECT total_sessions, consecutive_days, last_practice_date, achievements_unlocked, referral_code
		FROM users
		WHERE id = $1
		FOR UPDATE
	`, userID).Scan(
		&counters.TotalSessions,
		&counters.ConsecutiveDays,
		&lastPractice,
		&unlocked,
		&referralCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}

	err = rtx.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM course_completions WHERE user_id = $1),
			(SELECT COUNT(*) FROM mood_diary_entries WHERE user_id = $1),
			(SELECT COUNT(*) FROM users WHERE referred_by = $2)
	`, userID, referralCode).Scan(
		&counters.CompletedCourses,
		&counters.MoodEntries,
		&counters.Referrals,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count user activity: %w", err)
	}
	counters.PracticedToday = streak.PracticedOn(lastPractice, s.now())

	earned := achievement.Evaluate(s.catalog, unlocked, counters)
	for _, a := range earned {
		_, err := rtx.Exec(ctx, `
			UPDATE users
			SET achievements_unlocked = array_append(achievements_unlocked, $1::text)
			WHERE id = $2 AND NOT ($1::text = ANY(achievements_unlocked))
		`, a.ID.String(), userID)
		if err != nil {
			return nil, fmt.Errorf("failed to unlock achievement %s: %w", a.Name, err)
		}

		_, err = rtx.award(ctx, ledger.Award{
			UserID:      userID,
			Amount:      a.ZenCoinReward,
			Reason:      ledger.ReasonAchievement,
			Description: "Achievement unlocked: " + a.Name,
			Metadata: map[string]any{
				"achievement_id":   a.ID.String(),
				"achievement_name": a.Name,
			},
		})
		if err != nil {
			return nil, err
		}
	}

	if len(earned) > 0 {
		rtx.unlocked[userID] = append(rtx.unlocked[userID], earned...)
	}
	return earned, nil
}

// publish queues unlock pushes for a committed transaction.
func (s *AchievementService) publish(rtx *rewardTx) {
	if s.dispatcher == nil {
		return
	}

	for userID, list := range rtx.unlocked {
		coins := 0
		for _, a := range list {
			coins += a.ZenCoinReward
		}
		if !s.dispatcher.Dispatch(notification.AchievementUnlocked(userID.String(), achievementNames(list), coins)) {
			logger.Warn("unlock push not queued", "user_id", userID)
		}
	}
}
