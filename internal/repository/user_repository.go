package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"saathi/internal/domain"
	"saathi/internal/repository/models"
	"saathi/internal/util"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, password_hash, google_id, first_name, last_name, role, provider,
	profile_picture_url, points, pref_notifications, pref_theme, pref_language,
	last_active_at, created_at, updated_at`

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:                m.ID,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash.String,
		GoogleID:          m.GoogleID.String,
		FirstName:         m.FirstName.String,
		LastName:          m.LastName.String,
		Role:              m.Role,
		Provider:          m.Provider,
		ProfilePictureURL: m.ProfilePictureURL.String,
		Points:            m.Points,
		Preferences: domain.Preferences{
			Notifications: m.PrefNotifications == 1,
			Theme:         m.PrefTheme,
			Language:      m.PrefLanguage,
		},
		LastActiveAt: util.NullTimeToPtr(m.LastActiveAt),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	var lastActive sql.NullTime
	if u.LastActiveAt != nil {
		lastActive = util.TimeToNullTime(*u.LastActiveAt)
	}
	return &models.User{
		ID:                u.ID,
		Email:             u.Email,
		PasswordHash:      util.StringToNullString(u.PasswordHash),
		GoogleID:          util.StringToNullString(u.GoogleID),
		FirstName:         util.StringToNullString(u.FirstName),
		LastName:          util.StringToNullString(u.LastName),
		Role:              u.Role,
		Provider:          u.Provider,
		ProfilePictureURL: util.StringToNullString(u.ProfilePictureURL),
		Points:            u.Points,
		PrefNotifications: util.BoolToNumber(u.Preferences.Notifications),
		PrefTheme:         u.Preferences.Theme,
		PrefLanguage:      u.Preferences.Language,
		LastActiveAt:      lastActive,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

// isUniqueViolation reports an ORA-00001 unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ORA-00001")
}

// CreateUser inserts a new user. A duplicate email or Google ID yields a
// CONFLICT domain error.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m := fromDomainUser(user)

	query := `INSERT INTO users (id, email, password_hash, google_id, first_name, last_name, role, provider,
	              profile_picture_url, points, pref_notifications, pref_theme, pref_language,
	              last_active_at, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14, :15, :16)`

	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.ID, m.Email, m.PasswordHash, m.GoogleID, m.FirstName, m.LastName, m.Role, m.Provider,
		m.ProfilePictureURL, m.Points, m.PrefNotifications, m.PrefTheme, m.PrefLanguage,
		m.LastActiveAt, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("User already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *sqlxUserRepository) getOne(ctx context.Context, column, value string) (*domain.User, error) {
	var m models.User
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s = :1", userColumns, column)
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return toDomainUser(&m), nil
}

// GetUserByID retrieves a user by their internal ID.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getOne(ctx, "id", userID)
}

// GetUserByEmail matches the lowercased, trimmed address.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
}

// GetUserByGoogleID retrieves a user by their Google ID.
func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.getOne(ctx, "google_id", googleID)
}

// UpdateUser writes the mutable profile fields.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	m := fromDomainUser(user)

	query := `UPDATE users SET
	              google_id = :1,
	              first_name = :2,
	              last_name = :3,
	              profile_picture_url = :4,
	              points = :5,
	              pref_notifications = :6,
	              pref_theme = :7,
	              pref_language = :8,
	              updated_at = :9
	          WHERE id = :10`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.GoogleID, m.FirstName, m.LastName, m.ProfilePictureURL, m.Points,
		m.PrefNotifications, m.PrefTheme, m.PrefLanguage, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError("User not found")
	}
	return nil
}

// TouchLastActive records a sign-in.
func (r *sqlxUserRepository) TouchLastActive(ctx context.Context, userID string, at time.Time) error {
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		"UPDATE users SET last_active_at = :1 WHERE id = :2", at, userID)
	if err != nil {
		return fmt.Errorf("failed to update last active: %w", err)
	}
	return nil
}
