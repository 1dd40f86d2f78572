package models

import (
	"database/sql"
	"time"
)

// User is a row of the USERS table.
type User struct {
	ID                string         `db:"ID"` // ULID
	Email             string         `db:"EMAIL"`
	PasswordHash      sql.NullString `db:"PASSWORD_HASH"` // NULL for Google accounts
	GoogleID          sql.NullString `db:"GOOGLE_ID"`
	FirstName         sql.NullString `db:"FIRST_NAME"`
	LastName          sql.NullString `db:"LAST_NAME"`
	Role              string         `db:"ROLE"`
	Provider          string         `db:"PROVIDER"`
	ProfilePictureURL sql.NullString `db:"PROFILE_PICTURE_URL"`
	Points            int            `db:"POINTS"`
	PrefNotifications int            `db:"PREF_NOTIFICATIONS"` // 0 or 1
	PrefTheme         string         `db:"PREF_THEME"`
	PrefLanguage      string         `db:"PREF_LANGUAGE"`
	LastActiveAt      sql.NullTime   `db:"LAST_ACTIVE_AT"`
	CreatedAt         time.Time      `db:"CREATED_AT"`
	UpdatedAt         time.Time      `db:"UPDATED_AT"`
}

// Session is a row of the SESSIONS table. ID is the refresh token's jti.
type Session struct {
	ID        string    `db:"ID"`
	UserID    string    `db:"USER_ID"`
	Provider  string    `db:"PROVIDER"`
	ExpiresAt time.Time `db:"EXPIRES_AT"`
	CreatedAt time.Time `db:"CREATED_AT"`
}

// QuizAttempt is a row of the QUIZ_ATTEMPTS table.
type QuizAttempt struct {
	ID             string          `db:"ID"`
	UserID         string          `db:"USER_ID"`
	SourceType     string          `db:"SOURCE_TYPE"`
	TotalQuestions int             `db:"TOTAL_QUESTIONS"`
	CorrectCount   int             `db:"CORRECT_COUNT"`
	Score          float64         `db:"SCORE"`
	Results        QuestionResults `db:"RESULTS"` // JSON in a CLOB
	AttemptedAt    time.Time       `db:"ATTEMPTED_AT"`
}
