package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"saathi/internal/cache"
	"saathi/internal/calculator"
	"saathi/internal/domain"
	"saathi/internal/dto"
	"saathi/internal/logger"

	"go.uber.org/zap"
)

const (
	historySize = 10
	memoryField = "memory"
)

// CalculatorService evaluates expressions and keeps the memory register and
// history tape of signed-in users in the cache. Anonymous callers carry
// their memory in the request.
type CalculatorService interface {
	Evaluate(ctx context.Context, userID string, req dto.CalculatorRequest) (*dto.CalculatorResponse, error)
	History(ctx context.Context, userID string) (*dto.HistoryResponse, error)
	Clear(ctx context.Context, userID string) error
}

type calculatorServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

func NewCalculatorService(c domain.Cache, ttl time.Duration) CalculatorService {
	return &calculatorServiceImpl{cache: c, ttl: ttl}
}

func historyKey(userID string) string {
	return cache.GenerateCacheKey("calculator", "history", userID)
}

func stateKey(userID string) string {
	return cache.GenerateCacheKey("calculator", "state", userID)
}

func (s *calculatorServiceImpl) persistent(userID string) bool {
	return userID != "" && s.cache != nil
}

func (s *calculatorServiceImpl) Evaluate(ctx context.Context, userID string, req dto.CalculatorRequest) (*dto.CalculatorResponse, error) {
	mode := calculator.ParseAngleMode(req.AngleMode)

	memory, err := s.loadMemory(ctx, userID, req.Memory)
	if err != nil {
		return nil, err
	}

	if req.MemoryOp != "" {
		op := calculator.MemoryOp(req.MemoryOp)
		if !op.Valid() {
			return nil, domain.NewInvalidInputError("Unknown memory operation")
		}
		state, err := calculator.ApplyMemory(calculator.State{Display: req.Expression, Memory: memory}, op, mode)
		if err != nil {
			return nil, domain.NewInvalidInputError(err.Error())
		}
		if state.Memory != memory {
			if err := s.storeMemory(ctx, userID, state.Memory); err != nil {
				return nil, err
			}
		}
		return &dto.CalculatorResponse{
			Expression: req.Expression,
			Result:     state.Display,
			Memory:     state.Memory,
			AngleMode:  string(mode),
		}, nil
	}

	if strings.TrimSpace(req.Expression) == "" {
		return nil, domain.NewInvalidInputError("Expression is required")
	}

	result := calculator.Evaluate(req.Expression, mode)
	if result != calculator.ErrorDisplay && s.persistent(userID) {
		s.pushHistory(ctx, userID, calculator.HistoryEntry(strings.TrimSpace(req.Expression), result))
	}

	return &dto.CalculatorResponse{
		Expression: req.Expression,
		Result:     result,
		Memory:     memory,
		AngleMode:  string(mode),
	}, nil
}

// pushHistory never fails the evaluation; a lost history line is only logged.
func (s *calculatorServiceImpl) pushHistory(ctx context.Context, userID, entry string) {
	key := historyKey(userID)
	if err := s.cache.LPush(ctx, key, entry); err != nil {
		logger.Get().Warn("Failed to push calculator history", zap.String("userID", userID), zap.Error(err))
		return
	}
	if err := s.cache.LTrim(ctx, key, 0, historySize-1); err != nil {
		logger.Get().Warn("Failed to trim calculator history", zap.String("userID", userID), zap.Error(err))
	}
	if s.ttl > 0 {
		if err := s.cache.Expire(ctx, key, s.ttl); err != nil {
			logger.Get().Warn("Failed to set calculator history expiry", zap.String("userID", userID), zap.Error(err))
		}
	}
}

func (s *calculatorServiceImpl) loadMemory(ctx context.Context, userID string, fromRequest *float64) (float64, error) {
	if !s.persistent(userID) {
		if fromRequest != nil {
			return *fromRequest, nil
		}
		return 0, nil
	}
	raw, err := s.cache.HGet(ctx, stateKey(userID), memoryField)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return 0, nil
		}
		return 0, domain.NewInternalError("Failed to load calculator memory", err)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Get().Warn("Discarding unreadable calculator memory", zap.String("userID", userID), zap.String("value", raw))
		return 0, nil
	}
	return v, nil
}

func (s *calculatorServiceImpl) storeMemory(ctx context.Context, userID string, v float64) error {
	if !s.persistent(userID) {
		return nil
	}
	key := stateKey(userID)
	if err := s.cache.HSet(ctx, key, memoryField, strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
		return domain.NewInternalError("Failed to store calculator memory", err)
	}
	if s.ttl > 0 {
		if err := s.cache.Expire(ctx, key, s.ttl); err != nil {
			logger.Get().Warn("Failed to set calculator memory expiry", zap.String("userID", userID), zap.Error(err))
		}
	}
	return nil
}

// History returns the tape newest first together with the memory register.
func (s *calculatorServiceImpl) History(ctx context.Context, userID string) (*dto.HistoryResponse, error) {
	if !s.persistent(userID) {
		return &dto.HistoryResponse{History: []string{}}, nil
	}
	entries, err := s.cache.LRange(ctx, historyKey(userID), 0, historySize-1)
	if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
		return nil, domain.NewInternalError("Failed to load calculator history", err)
	}
	if entries == nil {
		entries = []string{}
	}
	memory, err := s.loadMemory(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	return &dto.HistoryResponse{History: entries, Memory: memory}, nil
}

// Clear is the AC key: history and memory are both dropped.
func (s *calculatorServiceImpl) Clear(ctx context.Context, userID string) error {
	if !s.persistent(userID) {
		return nil
	}
	for _, key := range []string{historyKey(userID), stateKey(userID)} {
		if err := s.cache.Delete(ctx, key); err != nil {
			return domain.NewInternalError("Failed to clear calculator state", err)
		}
	}
	return nil
}
