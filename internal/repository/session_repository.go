package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"saathi/internal/domain"
	"saathi/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

type sqlxSessionRepository struct {
	db *sqlx.DB
}

func NewSQLXSessionRepository(db *sqlx.DB) domain.SessionRepository {
	return &sqlxSessionRepository{db: db}
}

func (r *sqlxSessionRepository) CreateSession(ctx context.Context, s *domain.Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, provider, expires_at, created_at) VALUES (:1, :2, :3, :4, :5)`,
		s.ID, s.UserID, s.Provider, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession returns (nil, nil) for an unknown id.
func (r *sqlxSessionRepository) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var m models.Session
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m,
		`SELECT id, user_id, provider, expires_at, created_at FROM sessions WHERE id = :1`, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &domain.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		Provider:  m.Provider,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *sqlxSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM sessions WHERE id = :1`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions that expired at or before now.
func (r *sqlxSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= :1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return res.RowsAffected()
}
