package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restorativeLandsAPI/internal/donation"
)

func TestResolveAmount(t *testing.T) {
	tests := []struct {
		name    string
		req     donation.CreateSessionRequest
		want    string
		wantErr error
	}{
		{"custom in range", donation.CreateSessionRequest{Amount: decimal.RequireFromString("42.50")}, "42.5", nil},
		{"package overrides amount", donation.CreateSessionRequest{Amount: decimal.NewFromInt(99), PackageID: "large"}, "30", nil},
		{"lower bound", donation.CreateSessionRequest{Amount: decimal.NewFromInt(1)}, "1", nil},
		{"below minimum", donation.CreateSessionRequest{Amount: decimal.RequireFromString("0.99")}, "", ErrInvalidAmount},
		{"above maximum", donation.CreateSessionRequest{Amount: decimal.RequireFromString("500.01")}, "", ErrInvalidAmount},
		{"sub-cent digits", donation.CreateSessionRequest{Amount: decimal.RequireFromString("1.004")}, "", ErrInvalidInput},
		{"unknown package", donation.CreateSessionRequest{Amount: decimal.NewFromInt(10), PackageID: "platinum"}, "", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAmount(&tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestCreateSessionValidatesBeforeStorage(t *testing.T) {
	svc := NewDonationService(nil)

	_, err := svc.CreateSession(context.Background(), &donation.CreateSessionRequest{
		Amount:    decimal.RequireFromString("1.004"),
		OriginURL: "https://zen.example.com",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateSession(context.Background(), &donation.CreateSessionRequest{
		Amount:    decimal.NewFromInt(750),
		OriginURL: "https://zen.example.com",
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateSession(context.Background(), &donation.CreateSessionRequest{
		Amount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
