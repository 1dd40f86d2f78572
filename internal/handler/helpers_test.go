package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"saathi/internal/domain"
	"saathi/internal/dto"
	"saathi/internal/handler"
	"saathi/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testUserID    = "user123"
	testSessionID = "session-1"
	testToken     = "valid-access-token"
)

type testDeps struct {
	auth       *MockAuthService
	generator  *MockGeneratorService
	content    *MockContentService
	calculator *MockCalculatorService
	users      *MockUserService
	checks     map[string]handler.HealthCheck
}

func newTestDeps() *testDeps {
	auth := &MockAuthService{}
	auth.ValidateJWTFunc = func(_ context.Context, token string) (*dto.AuthClaims, error) {
		if token != testToken {
			return nil, domain.NewUnauthorizedError("Invalid token")
		}
		return &dto.AuthClaims{
			UserID:    testUserID,
			TokenType: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        testSessionID,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}, nil
	}
	return &testDeps{
		auth:       auth,
		generator:  &MockGeneratorService{},
		content:    &MockContentService{},
		calculator: &MockCalculatorService{},
		users:      &MockUserService{},
		checks:     map[string]handler.HealthCheck{},
	}
}

func (d *testDeps) app() *fiber.App {
	vm := middleware.NewValidationMiddleware()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(app, handler.Handlers{
		Auth:       handler.NewAuthHandler(d.auth, vm),
		Generator:  handler.NewGeneratorHandler(d.generator, d.content, vm),
		Content:    handler.NewContentHandler(d.content, vm),
		Calculator: handler.NewCalculatorHandler(d.calculator, vm),
		User:       handler.NewUserHandler(d.users, vm),
		Health:     handler.NewHealthHandler(d.checks),
	}, d.auth, vm, nil)
	return app
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func authed(req *http.Request) *http.Request {
	req.Header.Set(middleware.AuthorizationHeader, middleware.BearerSchema+testToken)
	return req
}

// multipartRequest builds a form with one file under field plus extra values.
func multipartRequest(t *testing.T, target, field, filename string, data []byte, values map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	if field != "" {
		fw, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decodeError(t *testing.T, body []byte) middleware.ErrorResponse {
	t.Helper()
	var er middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	return er
}
