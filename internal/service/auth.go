package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/archia-server/internal/logger"
	"github.com/dtroode/archia-server/internal/metrics"
	"github.com/dtroode/archia-server/internal/model"
	"github.com/dtroode/archia-server/internal/telemetry"
)

// dummyPassword is hashed once per Auth so that logins for unknown users
// spend the same bcrypt time as logins with a wrong password.
const dummyPassword = "archia-unknown-user"

type Auth struct {
	userStore  model.UserStore
	sessions   *Session
	bcryptCost int
	dummyHash  []byte
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	sessions *Session,
	bcryptCost int,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Auth {
	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), bcryptCost)
	if err != nil {
		logger.Warn("Auth service: failed to prepare dummy hash", "error", err.Error())
	}

	return &Auth{
		userStore:  userStore,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
		metrics:    metrics,
		logger:     logger,
	}
}

// Register creates an account. Uniqueness is decided by the store.
func (a *Auth) Register(ctx context.Context, username, password string) (model.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "service"),
		attribute.String("username", username),
	))
	defer span.End()

	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	if err := validateCredentials(username, password); err != nil {
		a.metrics.AuthAttempt("register", "invalid")
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		a.metrics.AuthAttempt("register", "invalid")
		return model.User{}, model.NewValidationError("password", "must be at most 72 bytes")
	}
	if err != nil {
		span.RecordError(err)
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, username, hash)
	if errors.Is(err, model.ErrUsernameConflict) {
		a.metrics.AuthAttempt("register", "conflict")
		a.logger.Info("Auth service: username already taken",
			"username", username)
		return model.User{}, model.ErrUsernameConflict
	}
	if err != nil {
		span.RecordError(err)
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.metrics.AuthAttempt("register", "success")
	a.logger.Info("Auth service: user registration completed successfully",
		"username", username,
		"user_id", user.ID)
	span.AddEvent("user.registered")

	user.PasswordHash = nil
	return user, nil
}

// Login verifies credentials and issues a session. An unknown username and a
// wrong password both return ErrInvalidCredentials. On failure the session
// the client presented, if any, is revoked.
func (a *Auth) Login(ctx context.Context, params model.LoginParams) (model.IssuedSession, error) {
	ctx, span := telemetry.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "service"),
		attribute.String("username", params.Username),
	))
	defer span.End()

	a.logger.Debug("Auth service: starting user login",
		"username", params.Username)

	user, err := a.authenticate(ctx, params.Username, params.Password)
	if errors.Is(err, model.ErrInvalidCredentials) {
		span.SetAttributes(attribute.Bool("auth.success", false))
		a.metrics.AuthAttempt("login", "invalid_credentials")
		a.clearPresentedSession(ctx, params.CurrentToken)
		return model.IssuedSession{}, err
	}
	if err != nil {
		span.RecordError(err)
		return model.IssuedSession{}, err
	}

	issued, err := a.sessions.Issue(ctx, user)
	if err != nil {
		span.RecordError(err)
		a.logger.Error("Auth service: failed to issue session",
			"username", params.Username,
			"error", err.Error())
		return model.IssuedSession{}, fmt.Errorf("failed to issue session: %w", err)
	}

	span.SetAttributes(attribute.Bool("auth.success", true))
	a.metrics.AuthAttempt("login", "success")
	a.logger.Info("Auth service: login completed successfully",
		"username", user.Username,
		"user_id", user.ID)

	return issued, nil
}

// Logout revokes the session behind token.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if err := a.sessions.Revoke(ctx, token); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

func (a *Auth) authenticate(ctx context.Context, username, password string) (model.User, error) {
	if username == "" || password == "" {
		return model.User{}, model.ErrInvalidCredentials
	}

	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
		return model.User{}, model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return model.User{}, model.ErrInvalidCredentials
	}

	return user, nil
}

func (a *Auth) clearPresentedSession(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := a.sessions.Revoke(ctx, token); err != nil && !errors.Is(err, model.ErrUnauthenticated) {
		a.logger.Warn("Auth service: failed to clear session after failed login",
			"error", err.Error())
	}
}

func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return model.NewValidationError("username", "must not be empty")
	}
	if password == "" {
		return model.NewValidationError("password", "must not be empty")
	}
	return nil
}
