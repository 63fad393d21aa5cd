package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restorativeLandsAPI/internal/achievement"
	"restorativeLandsAPI/internal/ledger"
)

// rowQuerier is satisfied by *pgxpool.Pool and pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// rewardTx is a transaction that remembers the awards and unlocks made in
// it, so metrics and notifications only fire for committed work.
type rewardTx struct {
	pgx.Tx
	awarded  []*ledger.Entry
	unlocked map[uuid.UUID][]achievement.Achievement
}

func withRewardTx(ctx context.Context, db *pgxpool.Pool, fn func(rtx *rewardTx) error) (*rewardTx, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rtx := &rewardTx{
		Tx:       tx,
		unlocked: make(map[uuid.UUID][]achievement.Achievement),
	}
	if err := fn(rtx); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	rtx.recordMetrics()
	return rtx, nil
}

// award credits a.Amount to the user's balance and appends the matching
// ledger entry. Both writes share the transaction.
func (rtx *rewardTx) award(ctx context.Context, a ledger.Award) (*ledger.Entry, error) {
	tag, err := rtx.Exec(ctx, `
		UPDATE users
		SET zen_coins = zen_coins + $1, updated_at = NOW()
		WHERE id = $2
	`, a.Amount, a.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrUserNotFound
	}

	metadata := a.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("invalid award metadata: %w", err)
	}

	entry := &ledger.Entry{
		ID:          uuid.New(),
		UserID:      a.UserID,
		Amount:      a.Amount,
		Reason:      a.Reason,
		Description: a.Description,
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC(),
	}

	_, err = rtx.Exec(ctx, `
		INSERT INTO zen_coin_transactions (id, user_id, amount, reason, description, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.UserID, entry.Amount, entry.Reason, entry.Description, metadataJSON, entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	rtx.awarded = append(rtx.awarded, entry)
	return entry, nil
}

func (rtx *rewardTx) recordMetrics() {
	for _, e := range rtx.awarded {
		switch {
		case e.Amount > 0:
			zenCoinsAwarded.WithLabelValues(string(e.Reason)).Add(float64(e.Amount))
		case e.Amount < 0:
			zenCoinsDebited.WithLabelValues(string(e.Reason)).Add(float64(-e.Amount))
		}
	}
	for _, list := range rtx.unlocked {
		for _, a := range list {
			achievementsUnlocked.WithLabelValues(a.Name).Inc()
		}
	}
}

// userLookupError maps a missing profile row to ErrUserNotFound.
func userLookupError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}
	return fmt.Errorf("failed to lock user: %w", err)
}

func achievementNames(list []achievement.Achievement) []string {
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Name)
	}
	return names
}
