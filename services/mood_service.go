package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"restorativeLandsAPI/internal/ledger"
	"restorativeLandsAPI/internal/mood"
)

const (
	MoodEntryReward  = 5
	DefaultMoodLimit = 30
)

type MoodService struct {
	db           *pgxpool.Pool
	achievements *AchievementService
}

func NewMoodService(db *pgxpool.Pool, achievements *AchievementService) *MoodService {
	return &MoodService{db: db, achievements: achievements}
}

func (s *MoodService) CreateEntry(ctx context.Context, req *mood.CreateEntryRequest) (*mood.CreateEntryResponse, error) {
	userID, err := parseUserID(req.UserID)
	if err != nil {
		return nil, err
	}
	if !req.Mood.Valid() {
		return nil, fmt.Errorf("%w: unknown mood %q", ErrInvalidInput, req.Mood)
	}

	resp := &mood.CreateEntryResponse{
		Entry: mood.Entry{
			ID:             uuid.New(),
			UserID:         userID,
			Mood:           req.Mood,
			Notes:          req.Notes,
			ZenCoinsEarned: MoodEntryReward,
			CreatedAt:      time.Now().UTC(),
		},
	}
	if req.SessionID != nil && *req.SessionID != "" {
		sessionID, err := uuid.Parse(*req.SessionID)
		if err != nil {
			return nil, fmt.Errorf("%w: session_id is not a valid id", ErrInvalidInput)
		}
		resp.SessionID = &sessionID
	}

	rtx, err := withRewardTx(ctx, s.db, func(rtx *rewardTx) error {
		if err := ensureUser(ctx, rtx, userID); err != nil {
			return err
		}

		e := resp.Entry
		_, err := rtx.Exec(ctx, `
			INSERT INTO mood_diary_entries (id, user_id, mood, notes, session_id, zen_coins_earned, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, e.ID, e.UserID, e.Mood, e.Notes, e.SessionID, e.ZenCoinsEarned, e.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
				return fmt.Errorf("%w: unknown session_id", ErrInvalidInput)
			}
			return fmt.Errorf("failed to save mood entry: %w", err)
		}

		_, err = rtx.award(ctx, ledger.Award{
			UserID:      userID,
			Amount:      MoodEntryReward,
			Reason:      ledger.ReasonMoodDiary,
			Description: "Mood diary entry: " + string(e.Mood),
			Metadata: map[string]any{
				"entry_id": e.ID.String(),
				"mood":     string(e.Mood),
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

func (s *MoodService) GetEntries(ctx context.Context, id string, limit int) ([]mood.Entry, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultMoodLimit
	}

	if err := ensureUser(ctx, s.db, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, mood, notes, session_id, zen_coins_earned, created_at
		FROM mood_diary_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	entries := []mood.Entry{}
	for rows.Next() {
		var e mood.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Mood, &e.Notes, &e.SessionID, &e.ZenCoinsEarned, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
