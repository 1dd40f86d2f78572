package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"saathi/internal/config"
	"saathi/internal/domain"
	"saathi/internal/dto"
	"saathi/internal/logger"
	"saathi/internal/util"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokenTypeAccess   = "access"
	tokenTypeRefresh  = "refresh"

	MsgMissingCredentials = "Please provide email and password"
	MsgNoUserWithEmail    = "No user found with this email"
	MsgInvalidPassword    = "Invalid password"
	MsgSessionRevoked     = "Session expired or revoked"
)

var (
	ErrInvalidAuthState      = errors.New("invalid oauth state")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (*dto.TokenResponse, *domain.User, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, sessionID string) error
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type authServiceImpl struct {
	userRepo     domain.UserRepository
	sessionRepo  domain.SessionRepository
	txManager    domain.TransactionManager
	oauth2Config *oauth2.Config
	userInfoURL  string
	jwtCfg       config.JWTConfig
	bcryptCost   int
	now          func() time.Time
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	txManager domain.TransactionManager,
	jwtCfg config.JWTConfig,
	oauthCfg config.GoogleOAuthConfig,
) (AuthService, error) {
	if len(jwtCfg.SecretKey) < 32 {
		return nil, errors.New("jwt secret key must be at least 32 bytes long")
	}

	return &authServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		txManager:   txManager,
		oauth2Config: &oauth2.Config{
			ClientID:     oauthCfg.ClientID,
			ClientSecret: oauthCfg.ClientSecret,
			RedirectURL:  oauthCfg.RedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
		jwtCfg:      jwtCfg,
		bcryptCost:  bcrypt.DefaultCost,
		now:         time.Now,
	}, nil
}

// Register creates a credentials account and its first session in one
// transaction.
func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to hash password", err)
	}

	var tokens *dto.TokenResponse
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.userRepo.GetUserByEmail(ctx, req.Email)
		if err != nil {
			return domain.NewInternalError("Failed to look up user", err)
		}
		if existing != nil {
			return domain.NewConflictError("User already exists")
		}

		user := domain.NewUser(req.Email, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), domain.ProviderCredentials)
		user.PasswordHash = string(hash)
		now := s.now()
		user.LastActiveAt = &now
		if err := s.userRepo.CreateUser(ctx, user); err != nil {
			return err
		}

		tokens, err = s.issueTokens(ctx, user, domain.ProviderCredentials)
		if err != nil {
			return err
		}
		logger.Get().Info("New user registered", zap.String("userID", user.ID), zap.String("email", user.Email))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, domain.NewInvalidInputError(MsgMissingCredentials)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError(MsgNoUserWithEmail)
	}
	if user.PasswordHash == "" {
		return nil, domain.NewUnauthorizedError(MsgInvalidPassword)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError(MsgInvalidPassword)
	}

	if err := s.userRepo.TouchLastActive(ctx, user.ID, s.now()); err != nil {
		logger.Get().Warn("Failed to update last active time", zap.String("userID", user.ID), zap.Error(err))
	}

	tokens, err := s.issueTokens(ctx, user, domain.ProviderCredentials)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("User logged in with credentials", zap.String("userID", user.ID))
	return tokens, nil
}

func (s *authServiceImpl) GetGoogleLoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (*dto.TokenResponse, *domain.User, error) {
	appLogger := logger.Get()
	if receivedState == "" || receivedState != expectedState {
		return nil, nil, domain.NewError(domain.CodeUnauthorized, "Invalid OAuth state", ErrInvalidAuthState)
	}

	googleToken, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, nil, domain.NewUpstreamError("Failed to exchange authorization code", fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err))
	}

	userInfo, err := s.fetchGoogleUser(ctx, googleToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.upsertGoogleUser(ctx, userInfo)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, user, domain.ProviderGoogle)
	if err != nil {
		return nil, nil, err
	}
	appLogger.Info("User logged in via Google OAuth", zap.String("userID", user.ID), zap.String("email", user.Email))
	return tokens, user, nil
}

func (s *authServiceImpl) fetchGoogleUser(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error) {
	var userInfo dto.GoogleUserInfo
	resp, err := resty.NewWithClient(s.oauth2Config.Client(ctx, token)).R().
		SetContext(ctx).
		SetResult(&userInfo).
		Get(s.userInfoURL)
	if err != nil {
		return nil, domain.NewUpstreamError("Failed to fetch Google profile", fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err))
	}
	if resp.IsError() {
		return nil, domain.NewUpstreamError("Failed to fetch Google profile", fmt.Errorf("%w: status %d", ErrFailedToGetUserInfo, resp.StatusCode()))
	}
	if userInfo.ID == "" || userInfo.Email == "" {
		return nil, domain.NewUpstreamError("Google profile is incomplete", ErrFailedToGetUserInfo)
	}
	return &userInfo, nil
}

// upsertGoogleUser finds the account by Google ID, then by email (linking a
// credentials account), and creates one otherwise.
func (s *authServiceImpl) upsertGoogleUser(ctx context.Context, info *dto.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.GetUserByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		user, err = s.userRepo.GetUserByEmail(ctx, info.Email)
		if err != nil {
			return nil, domain.NewInternalError("Failed to look up user", err)
		}
	}

	now := s.now()
	if user == nil {
		first, last := info.GivenName, info.FamilyName
		if first == "" {
			first, last = domain.SplitName(info.Name)
		}
		user = domain.NewUser(info.Email, first, last, domain.ProviderGoogle)
		user.GoogleID = info.ID
		user.ProfilePictureURL = info.Picture
		user.LastActiveAt = &now
		if err := s.userRepo.CreateUser(ctx, user); err != nil {
			return nil, err
		}
		logger.Get().Info("New user created via Google OAuth", zap.String("userID", user.ID), zap.String("email", user.Email))
		return user, nil
	}

	user.GoogleID = info.ID
	if user.ProfilePictureURL == "" {
		user.ProfilePictureURL = info.Picture
	}
	user.LastActiveAt = &now
	user.UpdatedAt = now
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// issueTokens records a session and signs an access/refresh pair whose jti
// is the session ID.
func (s *authServiceImpl) issueTokens(ctx context.Context, user *domain.User, provider string) (*dto.TokenResponse, error) {
	now := s.now()
	session := &domain.Session{
		ID:        util.NewULID(),
		UserID:    user.ID,
		Provider:  provider,
		ExpiresAt: now.Add(s.jwtCfg.RefreshTokenTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, domain.NewInternalError("Failed to create session", err)
	}

	accessToken, err := s.createJWT(user.ID, session.ID, s.jwtCfg.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create access token", err)
	}
	refreshToken, err := s.createJWT(user.ID, session.ID, s.jwtCfg.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create refresh token", err)
	}
	return &dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authServiceImpl) createJWT(userID, sessionID string, ttl time.Duration, tokenType string) (string, error) {
	now := s.now()
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}

func tokenSnippet(token string) string {
	return token[:min(len(token), 20)] + "..."
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.SecretKey), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
			return nil, domain.NewError(domain.CodeUnauthorized, "Token has expired", fmt.Errorf("%w: %v", ErrInvalidJWTToken, err))
		}
		appLogger.Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		return nil, domain.NewError(domain.CodeUnauthorized, "Invalid token", fmt.Errorf("%w: %v", ErrInvalidJWTToken, err))
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, domain.NewError(domain.CodeUnauthorized, "Invalid token", ErrInvalidJWTToken)
}

// RefreshToken rotates the session: the old one is deleted and a new pair
// is issued.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error) {
	appLogger := logger.Get()
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, domain.NewUnauthorizedError("Not a refresh token")
	}

	var tokens *dto.TokenResponse
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		session, err := s.sessionRepo.GetSession(ctx, claims.ID)
		if err != nil {
			return domain.NewInternalError("Failed to load session", err)
		}
		if session == nil || session.UserID != claims.UserID || session.Expired(s.now()) {
			return domain.NewUnauthorizedError(MsgSessionRevoked)
		}

		user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
		if err != nil {
			return domain.NewInternalError("Failed to look up user", err)
		}
		if user == nil {
			appLogger.Error("User not found for refresh token", zap.String("userID", claims.UserID))
			return domain.NewNotFoundError(fmt.Sprintf("User %s not found for refresh token", claims.UserID))
		}

		if err := s.sessionRepo.DeleteSession(ctx, session.ID); err != nil {
			return domain.NewInternalError("Failed to rotate session", err)
		}
		tokens, err = s.issueTokens(ctx, user, session.Provider)
		return err
	})
	if err != nil {
		return nil, err
	}

	appLogger.Info("JWT token refreshed", zap.String("userID", claims.UserID))
	return tokens, nil
}

// Logout revokes the session named by the access token's jti.
func (s *authServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		return domain.NewInternalError("Failed to revoke session", err)
	}
	return nil
}

func (s *authServiceImpl) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessionRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, domain.NewInternalError("Failed to purge expired sessions", err)
	}
	return n, nil
}
