package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore persists issued sessions so they can be invalidated.
type SessionStore interface {
	Create(ctx context.Context, record SessionRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (SessionRecord, error)
	Revoke(ctx context.Context, id uuid.UUID) error
}

// SessionRecord is the persisted form of an issued session.
type SessionRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Username  string
	TokenHash []byte
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Session is the login state of one client context. The zero value is
// logged out.
type Session struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	loggedIn bool
	username string
}

// NewLoggedInSession returns an authenticated session for username.
func NewLoggedInSession(id, userID uuid.UUID, username string) Session {
	s := Session{ID: id, UserID: userID}
	s.SetLoggedIn(username)
	return s
}

// SetLoggedIn transitions the session to authenticated as username.
func (s *Session) SetLoggedIn(username string) {
	s.loggedIn = true
	s.username = username
}

// Clear transitions the session to logged out.
func (s *Session) Clear() {
	*s = Session{}
}

// IsLoggedIn reports whether a principal is authenticated.
func (s Session) IsLoggedIn() bool {
	return s.loggedIn
}

// CurrentUser returns the authenticated username, if any.
func (s Session) CurrentUser() (string, bool) {
	if !s.loggedIn {
		return "", false
	}
	return s.username, true
}

// IssuedSession is returned to the client after a successful login.
type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
	User      User
}
