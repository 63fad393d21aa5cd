package donation

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

type PaymentStatus string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
	StatusExpired  Status = "expired"

	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"

	DefaultCurrency = "usd"
)

var (
	MinAmount = decimal.NewFromInt(1)
	MaxAmount = decimal.NewFromInt(500)
)

type Session struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	SessionID     string          `json:"session_id" db:"session_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Currency      string          `json:"currency" db:"currency"`
	Status        Status          `json:"status" db:"status"`
	PaymentStatus PaymentStatus   `json:"payment_status" db:"payment_status"`
	DonorName     *string         `json:"donor_name" db:"donor_name"`
	DonorEmail    *string         `json:"donor_email" db:"donor_email"`
	Metadata      map[string]any  `json:"metadata" db:"metadata"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	CompletedAt   *time.Time      `json:"completed_at" db:"completed_at"`
}

type CreateSessionRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	OriginURL  string          `json:"origin_url"`
	PackageID  string          `json:"package_id,omitempty"`
	DonorName  *string         `json:"donor_name,omitempty"`
	DonorEmail *string         `json:"donor_email,omitempty"`
}

type CheckoutSessionResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type StatusResponse struct {
	SessionID     string        `json:"session_id"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	AmountTotal   int64         `json:"amount_total"`
	Currency      string        `json:"currency"`
}

// ValidAmount reports whether amount is within the custom donation bounds.
func ValidAmount(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(MinAmount) && amount.LessThanOrEqual(MaxAmount)
}

// WholeCents reports whether amount has at most two decimal places.
func WholeCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(2))
}

// Cents converts a currency amount to minor units.
func Cents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// NewSessionID returns an external-facing checkout session id.
func NewSessionID() string {
	return "cs_demo_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// CheckoutURL builds the synthetic checkout link handed back to the client.
func CheckoutURL(originURL, sessionID string, amount decimal.Decimal) string {
	q := url.Values{}
	q.Set("session_id", sessionID)
	q.Set("amount", amount.StringFixed(2))
	return fmt.Sprintf("%s/donation/checkout?%s", strings.TrimRight(originURL, "/"), q.Encode())
}

func (s *Session) StatusResponse() StatusResponse {
	return StatusResponse{
		SessionID:     s.SessionID,
		Status:        s.Status,
		PaymentStatus: s.PaymentStatus,
		AmountTotal:   Cents(s.Amount),
		Currency:      s.Currency,
	}
}
