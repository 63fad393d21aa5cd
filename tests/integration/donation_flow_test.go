package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restorativeLandsAPI/internal/donation"
	"restorativeLandsAPI/services"
	"restorativeLandsAPI/tests/helpers"
)

func TestDonationCheckoutAndConfirm(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	ctx := context.Background()
	donations := services.NewDonationService(pool)

	checkout, err := donations.CreateSession(ctx, &donation.CreateSessionRequest{
		Amount:    decimal.NewFromInt(99),
		PackageID: "medium",
		OriginURL: "https://lands.example.com/",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM donation_sessions WHERE session_id = $1`, checkout.SessionID)
	})
	assert.Contains(t, checkout.URL, "https://lands.example.com/donation/checkout?")

	pending, err := donations.GetStatus(ctx, checkout.SessionID)
	require.NoError(t, err)
	assert.Equal(t, donation.StatusPending, pending.Status)
	assert.Equal(t, donation.PaymentUnpaid, pending.PaymentStatus)
	assert.Equal(t, int64(1500), pending.AmountTotal, "package price overrides the requested amount")

	first, err := donations.Confirm(ctx, checkout.SessionID)
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)

	second, err := donations.Confirm(ctx, checkout.SessionID)
	require.NoError(t, err)
	assert.True(t, first.CompletedAt.Equal(*second.CompletedAt), "confirm is idempotent")

	done, err := donations.GetStatus(ctx, checkout.SessionID)
	require.NoError(t, err)
	assert.Equal(t, donation.StatusComplete, done.Status)
	assert.Equal(t, donation.PaymentPaid, done.PaymentStatus)
}

func TestExpirePendingDonations(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	ctx := context.Background()
	donations := services.NewDonationService(pool)

	create := func() string {
		checkout, err := donations.CreateSession(ctx, &donation.CreateSessionRequest{
			Amount:    decimal.NewFromInt(20),
			OriginURL: "https://lands.example.com",
		})
		require.NoError(t, err)
		t.Cleanup(func() {
			_, _ = pool.Exec(context.Background(), `DELETE FROM donation_sessions WHERE session_id = $1`, checkout.SessionID)
		})
		return checkout.SessionID
	}

	stale := create()
	fresh := create()

	_, err := pool.Exec(ctx, `UPDATE donation_sessions SET created_at = NOW() - INTERVAL '48 hours' WHERE session_id = $1`, stale)
	require.NoError(t, err)

	n, err := donations.ExpirePending(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	expired, err := donations.GetStatus(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, donation.StatusExpired, expired.Status)
	assert.Equal(t, donation.PaymentUnpaid, expired.PaymentStatus)

	pending, err := donations.GetStatus(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, donation.StatusPending, pending.Status, "sessions inside the ttl stay pending")

	again, err := donations.ExpirePending(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, again, "expired sessions are not touched twice")

	late, err := donations.Confirm(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, donation.StatusComplete, late.Status)
	assert.Equal(t, donation.PaymentPaid, late.PaymentStatus)
	assert.NotNil(t, late.CompletedAt)
}

func TestDonationUnknownSession(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	donations := services.NewDonationService(pool)

	_, err := donations.GetStatus(context.Background(), "cs_demo_missing")
	assert.ErrorIs(t, err, services.ErrDonationNotFound)

	_, err = donations.Confirm(context.Background(), "cs_demo_missing")
	assert.ErrorIs(t, err, services.ErrDonationNotFound)
}
