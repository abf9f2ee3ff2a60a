package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/archia-server/internal/logger"
	"github.com/dtroode/archia-server/internal/model"
	"github.com/dtroode/archia-server/internal/telemetry"
)

// Session issues, resolves and revokes login sessions. The signed token
// carries only the session id; the persisted record decides validity.
type Session struct {
	manager model.TokenManager
	store   model.SessionStore
	ttl     time.Duration
	logger  *logger.Logger
	now     func() time.Time
}

func NewSession(manager model.TokenManager, store model.SessionStore, ttl time.Duration, logger *logger.Logger) *Session {
	return &Session{
		manager: manager,
		store:   store,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// Issue creates a session for user and returns its bearer token.
func (s *Session) Issue(ctx context.Context, user model.User) (model.IssuedSession, error) {
	now := s.now()
	id := uuid.New()
	expiresAt := now.Add(s.ttl)

	token, err := s.manager.GenerateSessionToken(id, expiresAt)
	if err != nil {
		return model.IssuedSession{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	record := model.SessionRecord{
		ID:        id,
		UserID:    user.ID,
		Username:  user.Username,
		TokenHash: hashToken(token),
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}
	if err := s.store.Create(ctx, record); err != nil {
		return model.IssuedSession{}, fmt.Errorf("failed to persist session: %w", err)
	}

	return model.IssuedSession{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      model.User{ID: user.ID, Username: user.Username, CreatedAt: user.CreatedAt},
	}, nil
}

// Resolve returns the logged-in Session for token. Any token that does not
// map to a live session yields ErrUnauthenticated; storage failures are
// returned as they are.
func (s *Session) Resolve(ctx context.Context, token string) (model.Session, error) {
	ctx, span := telemetry.StartSpan(ctx, "session.resolve", trace.WithAttributes(
		attribute.String("layer", "service"),
	))
	defer span.End()

	if token == "" {
		return model.Session{}, model.ErrUnauthenticated
	}

	id, err := s.manager.ParseSessionToken(token)
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: %w", model.ErrUnauthenticated, err)
	}

	record, err := s.store.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, fmt.Errorf("%w: session %s not found", model.ErrUnauthenticated, id)
	}
	if err != nil {
		span.RecordError(err)
		return model.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	if err := validateRecord(record, hashToken(token), s.now()); err != nil {
		s.logger.Debug("Session service: rejected session",
			"session_id", id,
			"reason", err.Error())
		return model.Session{}, fmt.Errorf("%w: %w", model.ErrUnauthenticated, err)
	}

	span.SetAttributes(attribute.Bool("session.valid", true))
	return model.NewLoggedInSession(record.ID, record.UserID, record.Username), nil
}

// Revoke invalidates the session identified by token.
func (s *Session) Revoke(ctx context.Context, token string) error {
	id, err := s.manager.ParseSessionToken(token)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrUnauthenticated, err)
	}
	if err := s.store.Revoke(ctx, id); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.logger.Info("Session service: session revoked",
		"session_id", id)
	return nil
}

func hashToken(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rec model.SessionRecord, presentedHash []byte, now time.Time) error {
	if rec.RevokedAt != nil {
		return model.ErrSessionRevoked
	}
	if now.After(rec.ExpiresAt) {
		return model.ErrSessionExpired
	}
	if subtle.ConstantTimeCompare(rec.TokenHash, presentedHash) != 1 {
		return model.ErrSessionMismatch
	}
	return nil
}
