package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore is the credential store.
type UserStore interface {
	// GetByUsername returns ErrNotFound when no user has the username.
	GetByUsername(ctx context.Context, username string) (User, error)
	// Create returns ErrUsernameConflict when the username is taken.
	Create(ctx context.Context, username string, passwordHash []byte) (User, error)
}

// User represents a registered account.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// LoginParams contains credentials presented at login. CurrentToken is the
// session token the client already holds, if any; it is revoked when the
// login fails.
type LoginParams struct {
	Username     string
	Password     string
	CurrentToken string
}
