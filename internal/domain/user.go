package domain

import (
	"context"
	"strings"
	"time"
)

const (
	RoleStudent = "student"

	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
)

// Preferences are the user-editable settings shown on the profile page.
type Preferences struct {
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme"`
	Language      string `json:"language"`
}

func DefaultPreferences() Preferences {
	return Preferences{Notifications: true, Theme: "dark", Language: "en"}
}

// User represents a domain user object
type User struct {
	ID                string
	Email             string
	PasswordHash      string
	GoogleID          string
	FirstName         string
	LastName          string
	Role              string
	Provider          string
	ProfilePictureURL string
	Points            int
	Preferences       Preferences
	LastActiveAt      *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewUser creates a student account with default preferences.
func NewUser(email, firstName, lastName, provider string) *User {
	now := time.Now()
	return &User{
		Email:       strings.ToLower(strings.TrimSpace(email)),
		FirstName:   firstName,
		LastName:    lastName,
		Role:        RoleStudent,
		Provider:    provider,
		Preferences: DefaultPreferences(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SplitName splits a display name into the first word and the remainder.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// Session is a server-side record of an issued refresh token.
type Session struct {
	ID        string
	UserID    string
	Provider  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// UserRepository defines the interface for user data persistence.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	TouchLastActive(ctx context.Context, userID string, at time.Time) error
}

// SessionRepository persists sessions backing refresh tokens.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
