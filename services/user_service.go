package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"restorativeLandsAPI/internal/ledger"
	"restorativeLandsAPI/internal/logger"
	"restorativeLandsAPI/internal/user"
)

const (
	ReferralBonus = 50

	uniqueViolation        = "23505"
	foreignKeyViolation    = "23503"
	referralCodeAttempts   = 5
	referralCodeConstraint = "users_referral_code_key"
)

type UserService struct {
	db           *pgxpool.Pool
	achievements *AchievementService
}

func NewUserService(db *pgxpool.Pool, achievements *AchievementService) *UserService {
	return &UserService{db: db, achievements: achievements}
}

const userColumns = `id, username, email, zen_coins, total_sessions, consecutive_days, last_practice_date,
	achievements_unlocked, referral_code, referred_by, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.ZenCoins,
		&u.TotalSessions,
		&u.ConsecutiveDays,
		&u.LastPracticeDate,
		&u.AchievementsUnlocked,
		&u.ReferralCode,
		&u.ReferredBy,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// CreateUser inserts a profile with a fresh referral code. When referred_by
// names another profile's code, that referrer earns the referral bonus and
// has its achievements evaluated in the same transaction.
func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	var referredBy *string
	if req.ReferredBy != nil {
		if code := strings.ToUpper(strings.TrimSpace(*req.ReferredBy)); code != "" {
			referredBy = &code
		}
	}

	for attempt := 1; ; attempt++ {
		created, err := s.createUser(ctx, username, req.Email, referredBy)
		if err == nil {
			return created, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation &&
			pgErr.ConstraintName == referralCodeConstraint && attempt < referralCodeAttempts {
			logger.Warn("referral code collision, retrying", "attempt", attempt)
			continue
		}
		return nil, err
	}
}

func (s *UserService) createUser(ctx context.Context, username string, email, referredBy *string) (*user.User, error) {
	var created *user.User

	rtx, err := withRewardTx(ctx, s.db, func(rtx *rewardTx) error {
		now := time.Now().UTC()

		var err error
		created, err = scanUser(rtx.QueryRow(ctx, `
			INSERT INTO users (id, username, email, referral_code, referred_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+userColumns,
			uuid.New(), username, email, user.NewReferralCode(), referredBy, now,
		))
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		if referredBy == nil {
			return nil
		}

		var referrerID uuid.UUID
		err = rtx.QueryRow(ctx, `
			SELECT id FROM users WHERE referral_code = $1 AND id <> $2 FOR UPDATE
		`, *referredBy, created.ID).Scan(&referrerID)
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Debug("unknown referral code", "code", *referredBy)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to find referrer: %w", err)
		}

		_, err = rtx.award(ctx, ledger.Award{
			UserID:      referrerID,
			Amount:      ReferralBonus,
			Reason:      ledger.ReasonReferral,
			Description: "Friend joined with your referral code: " + username,
			Metadata: map[string]any{
				"referred_user_id": created.ID,
			},
		})
		if err != nil {
			return err
		}

		_, err = s.achievements.evaluate(ctx, rtx, referrerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.achievements.publish(rtx)
	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*user.User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// UpdateUser changes the username and email only. Balance, counters and
// achievements move through reward actions alone.
func (s *UserService) UpdateUser(ctx context.Context, id string, req *user.UpdateUserRequest) (*user.User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && strings.TrimSpace(*req.Username) == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
	}

	u, err := scanUser(s.db.QueryRow(ctx, `
		UPDATE users
		SET username = COALESCE($2, username),
			email = COALESCE($3, email),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		userID, req.Username, req.Email,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}
