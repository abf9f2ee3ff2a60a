package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/archia-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var user model.User
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`

	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by username: %w", classify(err))
	}

	return user, nil
}

// Create relies on the users_username_key constraint so that concurrent
// registrations of one username produce exactly one row.
func (r *UserRepository) Create(ctx context.Context, username string, passwordHash []byte) (model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO users (username, password_hash)
			  VALUES ($1, $2)
			  RETURNING id, username, password_hash, created_at`

	var saved model.User
	err := r.db.QueryRow(ctx, query, username, passwordHash).Scan(
		&saved.ID, &saved.Username, &saved.PasswordHash, &saved.CreatedAt,
	)
	if err != nil {
		if _, ok := constraintViolation(err, codeUniqueViolation); ok {
			return model.User{}, model.ErrUsernameConflict
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", classify(err))
	}

	return saved, nil
}
