package status

import (
	"time"

	"github.com/google/uuid"
)

type Check struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ClientName string    `json:"client_name" db:"client_name"`
	Timestamp  time.Time `json:"timestamp" db:"created_at"`
}

type CreateCheckRequest struct {
	ClientName string `json:"client_name"`
}
