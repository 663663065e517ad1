package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"calories/internal/domain"
)

const sessionColumns = "token, user_id, user_agent, ip, expires_at, created_at"

// SessionRepo stores login sessions in the sessions table of a DB.
type SessionRepo struct {
	db *DB
}

var _ domain.SessionRepository = (*SessionRepo)(nil)

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create stores a session bound to the client that opened it.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	return r.exec(ctx,
		"INSERT INTO sessions ("+sessionColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		token, userID, userAgent, ip, expiresAt.UTC(), time.Now().UTC())
}

// GetByToken returns the session for token, or nil, nil when none exists.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE token = $1", token,
	).Scan(&s.Token, &s.UserID, &s.UserAgent, &s.IP, &s.ExpiresAt, &s.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &s, nil
}

// Delete removes a session. Unknown tokens are not an error.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	return r.exec(ctx, "DELETE FROM sessions WHERE token = $1", token)
}

// DeleteExpired purges every session past its expiry.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	return r.exec(ctx, "DELETE FROM sessions WHERE expires_at < $1", time.Now().UTC())
}

func (r *SessionRepo) exec(ctx context.Context, query string, args ...any) error {
	_, err := r.db.sql.ExecContext(ctx, query, args...)
	return err
}
