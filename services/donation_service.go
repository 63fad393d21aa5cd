package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"restorativeLandsAPI/internal/donation"
	"restorativeLandsAPI/internal/logger"
)

// DonationService runs the demo checkout. No payment provider is contacted.
type DonationService struct {
	db *pgxpool.Pool
}

func NewDonationService(db *pgxpool.Pool) *DonationService {
	return &DonationService{db: db}
}

// ResolveAmount applies the package override, then requires whole cents
// and the [1, 500] bound, so the checked amount is exactly what is stored.
func ResolveAmount(req *donation.CreateSessionRequest) (decimal.Decimal, error) {
	amount, ok := donation.ResolveAmount(req.PackageID, req.Amount)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown package %q", ErrInvalidInput, req.PackageID)
	}
	if !donation.WholeCents(amount) {
		return decimal.Zero, fmt.Errorf("%w: amount cannot have more than 2 decimal places", ErrInvalidInput)
	}
	if !donation.ValidAmount(amount) {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

func (s *DonationService) CreateSession(ctx context.Context, req *donation.CreateSessionRequest) (*donation.CheckoutSessionResponse, error) {
	amount, err := ResolveAmount(req)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.OriginURL) == "" {
		return nil, fmt.Errorf("%w: origin_url is required", ErrInvalidInput)
	}

	packageID := req.PackageID
	if packageID == "" {
		packageID = donation.CustomPackage
	}
	metadata, err := json.Marshal(map[string]any{
		"package_id": packageID,
		"source":     "demo_checkout",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}

	sessionID := donation.NewSessionID()
	_, err = s.db.Exec(ctx, `
		INSERT INTO donation_sessions (id, session_id, amount, currency, status, payment_status, donor_name, donor_email, metadata, created_at)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9, $10)
	`,
		uuid.New(),
		sessionID,
		amount.StringFixed(2),
		donation.DefaultCurrency,
		donation.StatusPending,
		donation.PaymentUnpaid,
		req.DonorName,
		req.DonorEmail,
		metadata,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create donation session: %w", err)
	}

	logger.Info("donation session created", "session_id", sessionID, "amount", amount.StringFixed(2))

	return &donation.CheckoutSessionResponse{
		URL:       donation.CheckoutURL(req.OriginURL, sessionID, amount),
		SessionID: sessionID,
	}, nil
}

const donationColumns = `id, session_id, amount::text, currency, status, payment_status, donor_name, donor_email, metadata, created_at, completed_at`

func scanDonation(row pgx.Row) (*donation.Session, error) {
	var (
		d      donation.Session
		amount string
	)
	err := row.Scan(
		&d.ID,
		&d.SessionID,
		&amount,
		&d.Currency,
		&d.Status,
		&d.PaymentStatus,
		&d.DonorName,
		&d.DonorEmail,
		&d.Metadata,
		&d.CreatedAt,
		&d.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to read donation session: %w", err)
	}

	d.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	return &d, nil
}

func (s *DonationService) GetStatus(ctx context.Context, sessionID string) (*donation.StatusResponse, error) {
	d, err := scanDonation(s.db.QueryRow(ctx, `SELECT `+donationColumns+` FROM donation_sessions WHERE session_id = $1`, sessionID))
	if err != nil {
		return nil, err
	}

	status := d.StatusResponse()
	return &status, nil
}

// Confirm marks the session paid. Confirming a completed session returns
// it unchanged.
func (s *DonationService) Confirm(ctx context.Context, sessionID string) (*donation.Session, error) {
	d, err := scanDonation(s.db.QueryRow(ctx, `
		UPDATE donation_sessions
		SET status = $2,
			payment_status = $3,
			completed_at = COALESCE(completed_at, NOW())
		WHERE session_id = $1
		RETURNING `+donationColumns,
		sessionID, donation.StatusComplete, donation.PaymentPaid,
	))
	if err != nil {
		return nil, err
	}

	logger.Info("donation confirmed", "session_id", sessionID, "amount", d.Amount.StringFixed(2))
	return d, nil
}

// ExpirePending marks checkouts still pending after ttl as expired. A late
// confirm still completes them.
func (s *DonationService) ExpirePending(ctx context.Context, ttl time.Duration) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE donation_sessions
		SET status = $1
		WHERE status = $2 AND created_at < $3
	`, donation.StatusExpired, donation.StatusPending, time.Now().UTC().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to expire donation sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}
