package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"saathi/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestCalculatorHandler(t *testing.T) {
	deps := newTestDeps()
	deps.calculator.EvaluateFunc = func(_ context.Context, userID string, req dto.CalculatorRequest) (*dto.CalculatorResponse, error) {
		return &dto.CalculatorResponse{Expression: req.Expression, Result: "4", AngleMode: "deg", Memory: float64(len(userID))}, nil
	}
	deps.calculator.HistoryFunc = func(_ context.Context, userID string) (*dto.HistoryResponse, error) {
		return &dto.HistoryResponse{History: []string{"2+2 = 4"}}, nil
	}
	cleared := ""
	deps.calculator.ClearFunc = func(_ context.Context, userID string) error {
		cleared = userID
		return nil
	}
	app := deps.app()

	resp, body := do(t, app, jsonRequest(t, http.MethodPost, "/api/calculator/evaluate", dto.CalculatorRequest{Expression: "2+2"}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"expression":"2+2","result":"4","memory":0,"angleMode":"deg"}`, string(body))

	resp, _ = do(t, app, jsonRequest(t, http.MethodPost, "/api/calculator/evaluate", dto.CalculatorRequest{Expression: "1", AngleMode: "grad"}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/calculator/history", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = do(t, app, authed(httptest.NewRequest(http.MethodGet, "/api/calculator/history", nil)))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"history":["2+2 = 4"],"memory":0}`, string(body))

	resp, _ = do(t, app, authed(httptest.NewRequest(http.MethodDelete, "/api/calculator/history", nil)))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, testUserID, cleared)
}
