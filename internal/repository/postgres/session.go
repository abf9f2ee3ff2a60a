package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/archia-server/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, record model.SessionRecord) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `
        INSERT INTO sessions (id, user_id, username, token_hash, issued_at, expires_at, revoked_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query,
		record.ID, record.UserID, record.Username, record.TokenHash,
		record.IssuedAt, record.ExpiresAt, record.RevokedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", classify(err))
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (model.SessionRecord, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `
        SELECT id, user_id, username, token_hash, issued_at, expires_at, revoked_at
        FROM sessions WHERE id = $1
    `
	var rec model.SessionRecord
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.UserID, &rec.Username, &rec.TokenHash,
		&rec.IssuedAt, &rec.ExpiresAt, &rec.RevokedAt,
	)
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("failed to get session by id: %w", classify(err))
	}
	return rec, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `UPDATE sessions SET revoked_at = NOW() WHERE id = $1 AND revoked_at IS NULL`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to revoke session: %w", classify(err))
	}
	return nil
}
