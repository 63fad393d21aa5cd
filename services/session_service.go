package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"restorativeLandsAPI/internal/ledger"
	"restorativeLandsAPI/internal/session"
	"restorativeLandsAPI/internal/streak"
)

const (
	SessionReward       = 10
	DefaultSessionLimit = 20
)

type SessionService struct {
	db           *pgxpool.Pool
	achievements *AchievementService
	now          func() time.Time
}

func NewSessionService(db *pgxpool.Pool, achievements *AchievementService) *SessionService {
	return &SessionService{db: db, achievements: achievements, now: time.Now}
}

// LogSession records a breathing session, pays the session reward, advances
// the streak and evaluates achievements as one transaction.
func (s *SessionService) LogSession(ctx context.Context, req *session.CreateSessionRequest) (*session.CreateSessionResponse, error) {
	userID, err := parseUserID(req.UserID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.PatternName) == "" {
		return nil, fmt.Errorf("%w: pattern_name is required", ErrInvalidInput)
	}
	if req.CyclesCompleted < 0 || req.DurationSeconds < 0 {
		return nil, fmt.Errorf("%w: cycles and duration cannot be negative", ErrInvalidInput)
	}

	now := s.now().UTC()
	resp := &session.CreateSessionResponse{
		BreathingSession: session.BreathingSession{
			ID:              uuid.New(),
			UserID:          userID,
			Intention:       req.Intention,
			PatternName:     req.PatternName,
			CyclesCompleted: req.CyclesCompleted,
			DurationSeconds: req.DurationSeconds,
			ZenCoinsEarned:  SessionReward,
			CreatedAt:       now,
		},
	}

	rtx, err := withRewardTx(ctx, s.db, func(rtx *rewardTx) error {
		var (
			current      int
			lastPractice *time.Time
		)
		err := rtx.QueryRow(ctx, `
			SELECT consecutive_days, last_practice_date FROM users WHERE id = $1 FOR UPDATE
		`, userID).Scan(&current, &lastPractice)
		if err != nil {
			return userLookupError(err)
		}

		resp.ConsecutiveDays = streak.Next(lastPractice, now, current)

		_, err = rtx.Exec(ctx, `
			UPDATE users
			SET total_sessions = total_sessions + 1,
				consecutive_days = $2,
				last_practice_date = $3,
				updated_at = NOW()
			WHERE id = $1
		`, userID, resp.ConsecutiveDays, now)
		if err != nil {
			return fmt.Errorf("failed to update streak: %w", err)
		}

		bs := resp.BreathingSession
		_, err = rtx.Exec(ctx, `
			INSERT INTO breathing_sessions (id, user_id, intention, pattern_name, cycles_completed, duration_seconds, zen_coins_earned, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, bs.ID, bs.UserID, bs.Intention, bs.PatternName, bs.CyclesCompleted, bs.DurationSeconds, bs.ZenCoinsEarned, bs.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to save breathing session: %w", err)
		}

		_, err = rtx.award(ctx, ledger.Award{
			UserID:      userID,
			Amount:      SessionReward,
			Reason:      ledger.ReasonBreathingSession,
			Description: "Breathing session: " + bs.PatternName,
			Metadata: map[string]any{
				"session_id":       bs.ID.String(),
				"pattern_name":     bs.PatternName,
				"cycles_completed": bs.CyclesCompleted,
			},
		})
		if err != nil {
			return err
		}

		earned, err := s.achievements.evaluate(ctx, rtx, userID)
		if err != nil {
			return err
		}
		resp.AchievementsUnlocked = achievementNames(earned)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.achievements.publish(rtx)
	return resp, nil
}

// GetSessions returns the user's most recent sessions, newest first.
func (s *SessionService) GetSessions(ctx context.Context, id string, limit int) ([]session.BreathingSession, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSessionLimit
	}

	if err := ensureUser(ctx, s.db, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, intention, pattern_name, cycles_completed, duration_seconds, zen_coins_earned, created_at
		FROM breathing_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []session.BreathingSession{}
	for rows.Next() {
		var bs session.BreathingSession
		err := rows.Scan(&bs.ID, &bs.UserID, &bs.Intention, &bs.PatternName, &bs.CyclesCompleted, &bs.DurationSeconds, &bs.ZenCoinsEarned, &bs.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, bs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
