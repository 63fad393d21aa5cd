package services

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrDonationNotFound = errors.New("donation session not found")
	ErrAlreadyCompleted = errors.New("course already completed")
	ErrInvalidAmount    = errors.New("donation amount must be between 1 and 500")
	ErrInvalidInput     = errors.New("invalid input")
)

// parseUserID maps malformed ids to ErrUserNotFound: no profile can have one.
func parseUserID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrUserNotFound
	}
	return parsed, nil
}
