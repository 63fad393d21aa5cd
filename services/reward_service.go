package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restorativeLandsAPI/internal/ledger"
	"restorativeLandsAPI/internal/user"
)

const DefaultTransactionLimit = 50

type RewardService struct {
	db *pgxpool.Pool
}

func NewRewardService(db *pgxpool.Pool) *RewardService {
	return &RewardService{db: db}
}

// Award applies a manual balance change. Reason defaults to admin_award.
func (s *RewardService) Award(ctx context.Context, req *ledger.AwardRequest) (*ledger.Entry, error) {
	userID, err := parseUserID(req.UserID)
	if err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = ledger.ReasonAdminAward
	}

	var entry *ledger.Entry
	_, err = withRewardTx(ctx, s.db, func(rtx *rewardTx) error {
		entry, err = rtx.award(ctx, ledger.Award{
			UserID:      userID,
			Amount:      req.Amount,
			Reason:      reason,
			Description: req.Description,
			Metadata:    req.Metadata,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *RewardService) GetBalance(ctx context.Context, id string) (*user.Balance, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}

	balance := &user.Balance{UserID: userID.String()}
	err = s.db.QueryRow(ctx, `SELECT zen_coins FROM users WHERE id = $1`, userID).Scan(&balance.ZenCoins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return balance, nil
}

// GetTransactions returns the user's ledger, newest first.
func (s *RewardService) GetTransactions(ctx context.Context, id string, limit int) ([]ledger.Entry, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}

	if err := ensureUser(ctx, s.db, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, amount, reason, description, metadata, created_at
		FROM zen_coin_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	entries := []ledger.Entry{}
	for rows.Next() {
		var e ledger.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Reason, &e.Description, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ensureUser returns ErrUserNotFound unless the profile exists.
func ensureUser(ctx context.Context, q rowQuerier, userID uuid.UUID) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}
