package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager signs and validates session tokens.
type TokenManager interface {
	GenerateSessionToken(sessionID uuid.UUID, expiresAt time.Time) (string, error)
	ParseSessionToken(token string) (uuid.UUID, error)
}
