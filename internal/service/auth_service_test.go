package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"saathi/internal/config"
	"saathi/internal/domain"
	"saathi/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

var testJWTConfig = config.JWTConfig{
	SecretKey:       "testsecretkeydontuseinproduction32bytes!",
	AccessTokenTTL:  15 * time.Minute,
	RefreshTokenTTL: 7 * 24 * time.Hour,
}

type authFixture struct {
	users    *MockUserRepository
	sessions *MockSessionRepository
	svc      AuthService
	impl     *authServiceImpl
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{users: new(MockUserRepository), sessions: new(MockSessionRepository)}
	svc, err := NewAuthService(f.users, f.sessions, &MockTransactionManager{}, testJWTConfig, config.GoogleOAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8090/api/auth/google/callback",
	})
	require.NoError(t, err)
	f.svc = svc
	f.impl = svc.(*authServiceImpl)
	f.impl.bcryptCost = bcrypt.MinCost
	return f
}

func hashPassword(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestNewAuthService_ShortSecret(t *testing.T) {
	_, err := NewAuthService(nil, nil, nil, config.JWTConfig{SecretKey: "short"}, config.GoogleOAuthConfig{})
	assert.Error(t, err)
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, nil).Once()
	f.users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@example.com" &&
			u.Role == domain.RoleStudent &&
			u.Provider == domain.ProviderCredentials &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")) == nil
	})).Return(nil).Once()
	f.sessions.On("CreateSession", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil).Once()

	tokens, err := f.svc.Register(context.Background(), dto.RegisterRequest{
		Email: "new@example.com", Password: "s3cret-pass", FirstName: "Asha", LastName: "Rao",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := f.svc.ValidateJWT(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-created", claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.NotEmpty(t, claims.ID)
	f.users.AssertExpectations(t)
	f.sessions.AssertExpectations(t)
}

func TestAuthService_Register_Conflict(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetUserByEmail", mock.Anything, "taken@example.com").Return(&domain.User{ID: "u1"}, nil).Once()

	_, err := f.svc.Register(context.Background(), dto.RegisterRequest{Email: "taken@example.com", Password: "s3cret-pass", FirstName: "A"})

	assertDomainCode(t, err, domain.CodeConflict)
	f.users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	hash := hashPassword(t, "correct-horse")

	tests := []struct {
		name    string
		req     dto.LoginRequest
		setup   func(f *authFixture)
		code    domain.ErrorCode
		message string
	}{
		{
			name:    "MissingFields",
			req:     dto.LoginRequest{Email: "a@example.com"},
			code:    domain.CodeInvalidInput,
			message: MsgMissingCredentials,
		},
		{
			name: "UnknownEmail",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "x"},
			setup: func(f *authFixture) {
				f.users.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)
			},
			code:    domain.CodeUnauthorized,
			message: MsgNoUserWithEmail,
		},
		{
			name: "WrongPassword",
			req:  dto.LoginRequest{Email: "a@example.com", Password: "wrong"},
			setup: func(f *authFixture) {
				f.users.On("GetUserByEmail", mock.Anything, "a@example.com").Return(&domain.User{ID: "u1", PasswordHash: hash}, nil)
			},
			code:    domain.CodeUnauthorized,
			message: MsgInvalidPassword,
		},
		{
			name: "GoogleOnlyAccount",
			req:  dto.LoginRequest{Email: "g@example.com", Password: "anything"},
			setup: func(f *authFixture) {
				f.users.On("GetUserByEmail", mock.Anything, "g@example.com").Return(&domain.User{ID: "u2", GoogleID: "g-1"}, nil)
			},
			code:    domain.CodeUnauthorized,
			message: MsgInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}
			_, err := f.svc.Login(context.Background(), tt.req)
			domainErr := assertDomainCode(t, err, tt.code)
			assert.Equal(t, tt.message, domainErr.Message)
		})
	}

	t.Run("Success", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("GetUserByEmail", mock.Anything, "a@example.com").Return(&domain.User{ID: "u1", PasswordHash: hash}, nil).Once()
		f.users.On("TouchLastActive", mock.Anything, "u1", mock.AnythingOfType("time.Time")).Return(nil).Once()
		f.sessions.On("CreateSession", mock.Anything, mock.MatchedBy(func(s *domain.Session) bool {
			return s.UserID == "u1" && s.Provider == domain.ProviderCredentials
		})).Return(nil).Once()

		tokens, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "a@example.com", Password: "correct-horse"})

		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		f.users.AssertExpectations(t)
		f.sessions.AssertExpectations(t)
	})
}

func TestAuthService_ValidateJWT(t *testing.T) {
	f := newAuthFixture(t)

	token, err := f.impl.createJWT("u1", "s1", time.Minute, tokenTypeAccess)
	require.NoError(t, err)
	claims, err := f.svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "s1", claims.ID)

	expired, err := f.impl.createJWT("u1", "s1", -time.Minute, tokenTypeAccess)
	require.NoError(t, err)
	_, err = f.svc.ValidateJWT(context.Background(), expired)
	domainErr := assertDomainCode(t, err, domain.CodeUnauthorized)
	assert.Equal(t, "Token has expired", domainErr.Message)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	_, err = f.svc.ValidateJWT(context.Background(), "not.a.jwt")
	assertDomainCode(t, err, domain.CodeUnauthorized)
}

func TestAuthService_RefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	refresh, err := f.impl.createJWT("u1", "s1", time.Hour, tokenTypeRefresh)
	require.NoError(t, err)

	f.sessions.On("GetSession", mock.Anything, "s1").Return(&domain.Session{
		ID: "s1", UserID: "u1", Provider: domain.ProviderGoogle, ExpiresAt: time.Now().Add(time.Hour),
	}, nil).Once()
	f.users.On("GetUserByID", mock.Anything, "u1").Return(&domain.User{ID: "u1"}, nil).Once()
	f.sessions.On("DeleteSession", mock.Anything, "s1").Return(nil).Once()
	f.sessions.On("CreateSession", mock.Anything, mock.MatchedBy(func(s *domain.Session) bool {
		return s.ID != "s1" && s.Provider == domain.ProviderGoogle
	})).Return(nil).Once()

	tokens, err := f.svc.RefreshToken(context.Background(), refresh)

	require.NoError(t, err)
	claims, err := f.svc.ValidateJWT(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
	assert.NotEqual(t, "s1", claims.ID)
	f.sessions.AssertExpectations(t)
}

func TestAuthService_RefreshToken_Rejections(t *testing.T) {
	t.Run("AccessTokenUsed", func(t *testing.T) {
		f := newAuthFixture(t)
		access, _ := f.impl.createJWT("u1", "s1", time.Hour, tokenTypeAccess)

		_, err := f.svc.RefreshToken(context.Background(), access)

		assertDomainCode(t, err, domain.CodeUnauthorized)
	})

	t.Run("SessionRevoked", func(t *testing.T) {
		f := newAuthFixture(t)
		refresh, _ := f.impl.createJWT("u1", "s1", time.Hour, tokenTypeRefresh)
		f.sessions.On("GetSession", mock.Anything, "s1").Return(nil, nil).Once()

		_, err := f.svc.RefreshToken(context.Background(), refresh)

		domainErr := assertDomainCode(t, err, domain.CodeUnauthorized)
		assert.Equal(t, MsgSessionRevoked, domainErr.Message)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		f := newAuthFixture(t)
		refresh, _ := f.impl.createJWT("user123", "s1", time.Hour, tokenTypeRefresh)
		f.sessions.On("GetSession", mock.Anything, "s1").Return(&domain.Session{ID: "s1", UserID: "user123", ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()
		f.users.On("GetUserByID", mock.Anything, "user123").Return(nil, nil).Once()

		_, err := f.svc.RefreshToken(context.Background(), refresh)

		assertDomainCode(t, err, domain.CodeNotFound)
	})

	t.Run("RepoError", func(t *testing.T) {
		f := newAuthFixture(t)
		refresh, _ := f.impl.createJWT("user123", "s1", time.Hour, tokenTypeRefresh)
		repoErr := errors.New("some database connection error")
		f.sessions.On("GetSession", mock.Anything, "s1").Return(nil, repoErr).Once()

		_, err := f.svc.RefreshToken(context.Background(), refresh)

		assertDomainCode(t, err, domain.CodeInternal)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestAuthService_LogoutAndPurge(t *testing.T) {
	f := newAuthFixture(t)
	f.sessions.On("DeleteSession", mock.Anything, "s1").Return(nil).Once()
	f.sessions.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(4), nil).Once()

	require.NoError(t, f.svc.Logout(context.Background(), "s1"))
	require.NoError(t, f.svc.Logout(context.Background(), ""))
	n, err := f.svc.PurgeExpiredSessions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	f.sessions.AssertExpectations(t)
}

func TestAuthService_GetGoogleLoginURL(t *testing.T) {
	f := newAuthFixture(t)

	u := f.svc.GetGoogleLoginURL("state-123")

	assert.Contains(t, u, "state=state-123")
	assert.Contains(t, u, "client_id=client-id")
}

func newGoogleStub(t *testing.T, info dto.GoogleUserInfo) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "google-access",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer google-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(info)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func pointAtStub(f *authFixture, srv *httptest.Server) {
	f.impl.oauth2Config.Endpoint = oauth2.Endpoint{
		AuthURL:   srv.URL + "/auth",
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	f.impl.userInfoURL = srv.URL + "/userinfo"
}

func TestAuthService_HandleGoogleCallback_CreatesUser(t *testing.T) {
	srv := newGoogleStub(t, dto.GoogleUserInfo{ID: "g-42", Email: "Priya@Example.com", Name: "Priya Sharma Iyer", Picture: "https://img/p.png"})
	f := newAuthFixture(t)
	pointAtStub(f, srv)

	f.users.On("GetUserByGoogleID", mock.Anything, "g-42").Return(nil, nil).Once()
	f.users.On("GetUserByEmail", mock.Anything, "Priya@Example.com").Return(nil, nil).Once()
	f.users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.GoogleID == "g-42" &&
			u.Email == "priya@example.com" &&
			u.FirstName == "Priya" &&
			u.LastName == "Sharma Iyer" &&
			u.Provider == domain.ProviderGoogle &&
			u.ProfilePictureURL == "https://img/p.png"
	})).Return(nil).Once()
	f.sessions.On("CreateSession", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil).Once()

	tokens, user, err := f.svc.HandleGoogleCallback(context.Background(), "auth-code", "st", "st")

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, "user-created", user.ID)
	f.users.AssertExpectations(t)
}

func TestAuthService_HandleGoogleCallback_LinksExistingAccount(t *testing.T) {
	srv := newGoogleStub(t, dto.GoogleUserInfo{ID: "g-7", Email: "a@example.com", Name: "A B", Picture: "https://img/a.png"})
	f := newAuthFixture(t)
	pointAtStub(f, srv)

	existing := &domain.User{ID: "u1", Email: "a@example.com", ProfilePictureURL: "/uploads/avatars/u1/x.png"}
	f.users.On("GetUserByGoogleID", mock.Anything, "g-7").Return(nil, nil).Once()
	f.users.On("GetUserByEmail", mock.Anything, "a@example.com").Return(existing, nil).Once()
	f.users.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == "u1" && u.GoogleID == "g-7" && u.ProfilePictureURL == "/uploads/avatars/u1/x.png" && u.LastActiveAt != nil
	})).Return(nil).Once()
	f.sessions.On("CreateSession", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil).Once()

	_, user, err := f.svc.HandleGoogleCallback(context.Background(), "auth-code", "st", "st")

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	f.users.AssertExpectations(t)
}

func TestAuthService_HandleGoogleCallback_StateMismatch(t *testing.T) {
	f := newAuthFixture(t)

	_, _, err := f.svc.HandleGoogleCallback(context.Background(), "code", "a", "b")

	assertDomainCode(t, err, domain.CodeUnauthorized)
	assert.ErrorIs(t, err, ErrInvalidAuthState)
}

func TestAuthService_HandleGoogleCallback_IncompleteProfile(t *testing.T) {
	srv := newGoogleStub(t, dto.GoogleUserInfo{ID: "g-1"})
	f := newAuthFixture(t)
	pointAtStub(f, srv)

	_, _, err := f.svc.HandleGoogleCallback(context.Background(), "code", "st", "st")

	assertDomainCode(t, err, domain.CodeUpstreamError)
	assert.ErrorIs(t, err, ErrFailedToGetUserInfo)
}
