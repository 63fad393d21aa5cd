package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"restorativeLandsAPI/internal/status"
)

const statusCheckLimit = 1000

type StatusService struct {
	db *pgxpool.Pool
}

func NewStatusService(db *pgxpool.Pool) *StatusService {
	return &StatusService{db: db}
}

func (s *StatusService) CreateCheck(ctx context.Context, req *status.CreateCheckRequest) (*status.Check, error) {
	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return nil, fmt.Errorf("%w: client_name is required", ErrInvalidInput)
	}

	check := &status.Check{
		ID:         uuid.New(),
		ClientName: name,
		Timestamp:  time.Now().UTC(),
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO status_checks (id, client_name, created_at) VALUES ($1, $2, $3)
	`, check.ID, check.ClientName, check.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to save status check: %w", err)
	}

	return check, nil
}

func (s *StatusService) GetChecks(ctx context.Context) ([]status.Check, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, client_name, created_at
		FROM status_checks
		ORDER BY created_at DESC
		LIMIT $1
	`, statusCheckLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query status checks: %w", err)
	}
	defer rows.Close()

	checks := []status.Check{}
	for rows.Next() {
		var c status.Check
		if err := rows.Scan(&c.ID, &c.ClientName, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan status check: %w", err)
		}
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return checks, nil
}
