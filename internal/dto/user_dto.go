package dto

import (
	"time"

	"saathi/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// GoogleUserInfo holds user information obtained from Google.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

// AuthClaims defines the custom claims for JWT. The registered ID (jti)
// carries the session ID.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// RegisterRequest is the credentials sign-up body.
// @Description Request body for creating an account with email and password
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

// LoginRequest is the credentials sign-in body.
// @Description Request body for signing in with email and password
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse represents the response containing access and refresh tokens.
// @Description Response body for authentication tokens
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenRequest represents the request body for refreshing a token.
// @Description Request body for refreshing JWT tokens
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Profile DTOs ---

// ProfileResponse is the signed-in user's profile.
// @Description User profile and preferences
type ProfileResponse struct {
	ID                string             `json:"id"`
	Email             string             `json:"email"`
	FirstName         string             `json:"firstName"`
	LastName          string             `json:"lastName"`
	Role              string             `json:"role"`
	Provider          string             `json:"provider"`
	Points            int                `json:"points"`
	ProfilePictureURL string             `json:"profilePicture,omitempty"`
	Preferences       domain.Preferences `json:"preferences"`
	LastActiveAt      *time.Time         `json:"lastActive,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

func NewProfileResponse(u *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Role:              u.Role,
		Provider:          u.Provider,
		Points:            u.Points,
		ProfilePictureURL: u.ProfilePictureURL,
		Preferences:       u.Preferences,
		LastActiveAt:      u.LastActiveAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

// PreferencesRequest holds optional preference updates; nil fields keep
// their stored value.
type PreferencesRequest struct {
	Notifications *bool   `json:"notifications"`
	Theme         *string `json:"theme" validate:"omitempty,oneof=dark light system"`
	Language      *string `json:"language" validate:"omitempty,min=2,max=10"`
}

// UpdateProfileRequest is the body of PUT /api/users/me.
// @Description Request body for updating the profile
type UpdateProfileRequest struct {
	FirstName   *string             `json:"firstName" validate:"omitempty,notblank,max=100"`
	LastName    *string             `json:"lastName" validate:"omitempty,max=100"`
	Preferences *PreferencesRequest `json:"preferences"`
}

// PhotoResponse returns the stored profile picture URL.
type PhotoResponse struct {
	ProfilePictureURL string `json:"profilePicture"`
}

// --- Pagination DTOs ---

// Pagination defines parameters for paginated requests.
// These are typically query parameters.
type Pagination struct {
	Limit  int `query:"limit"`  // Number of items per page
	Offset int `query:"offset"` // Number of items to skip
	Page   int `query:"page"`   // Page number (alternative to offset)
}

// Normalize applies the default limit and converts Page into Offset.
func (p *Pagination) Normalize(defaultLimit, maxLimit int) {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Page > 0 {
		p.Offset = (p.Page - 1) * p.Limit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PaginationInfo defines pagination details for responses.
type PaginationInfo struct {
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}

func NewPaginationInfo(total int64, p Pagination) PaginationInfo {
	info := PaginationInfo{TotalItems: total, Limit: p.Limit, Offset: p.Offset}
	if p.Limit > 0 {
		info.CurrentPage = p.Offset/p.Limit + 1
		info.TotalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return info
}

// --- Dashboard DTOs ---

// QuizAttemptItem represents a single graded quiz in a list.
type QuizAttemptItem struct {
	ID             string                  `json:"id"`
	SourceType     string                  `json:"sourceType"`
	TotalQuestions int                     `json:"totalQuestions"`
	CorrectCount   int                     `json:"correctCount"`
	Score          float64                 `json:"score"`
	Results        []domain.QuestionResult `json:"results"`
	AttemptedAt    time.Time               `json:"attemptedAt"`
}

// QuizAttemptsResponse is the response for listing user quiz attempts.
type QuizAttemptsResponse struct {
	Attempts       []QuizAttemptItem `json:"attempts"`
	PaginationInfo PaginationInfo    `json:"pagination_info"`
}

// MaterialResponse is one entry of the study-material library.
type MaterialResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Input     string    `json:"input,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewMaterialResponse(m *domain.StudyMaterial) MaterialResponse {
	return MaterialResponse{
		ID:        m.ID,
		Kind:      string(m.Kind),
		Title:     m.Title,
		Input:     m.Input,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

type MaterialsResponse struct {
	Materials []MaterialResponse `json:"materials"`
}
