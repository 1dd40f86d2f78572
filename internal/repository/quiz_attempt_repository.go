package repository

import (
	"context"
	"fmt"
	"time"

	"saathi/internal/domain"
	"saathi/internal/repository/models"
	"saathi/internal/util"

	"github.com/jmoiron/sqlx"
)

const defaultAttemptPageSize = 10

// sqlxQuizAttemptRepository implements domain.QuizAttemptRepository using sqlx.
type sqlxQuizAttemptRepository struct {
	db *sqlx.DB
}

func NewSQLXQuizAttemptRepository(db *sqlx.DB) domain.QuizAttemptRepository {
	return &sqlxQuizAttemptRepository{db: db}
}

func toDomainQuizAttempt(m *models.QuizAttempt) domain.QuizAttempt {
	results := []domain.QuestionResult(m.Results)
	if results == nil {
		results = []domain.QuestionResult{}
	}
	return domain.QuizAttempt{
		ID:             m.ID,
		UserID:         m.UserID,
		SourceType:     m.SourceType,
		TotalQuestions: m.TotalQuestions,
		CorrectCount:   m.CorrectCount,
		Score:          m.Score,
		Results:        results,
		AttemptedAt:    m.AttemptedAt,
	}
}

// CreateAttempt inserts a graded quiz. ID and AttemptedAt are filled in when
// empty.
func (r *sqlxQuizAttemptRepository) CreateAttempt(ctx context.Context, a *domain.QuizAttempt) error {
	if a.ID == "" {
		a.ID = util.NewULID()
	}
	if a.AttemptedAt.IsZero() {
		a.AttemptedAt = time.Now()
	}

	results, err := models.QuestionResults(a.Results).Value()
	if err != nil {
		return fmt.Errorf("failed to encode attempt results: %w", err)
	}

	query := `INSERT INTO quiz_attempts (id, user_id, source_type, total_questions, correct_count, score, results, attempted_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`
	_, err = GetExecutor(ctx, r.db).ExecContext(ctx, query,
		a.ID, a.UserID, a.SourceType, a.TotalQuestions, a.CorrectCount, a.Score, results, a.AttemptedAt)
	if err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	return nil
}

// ListByUser returns one page of attempts, newest first, and the total count.
func (r *sqlxQuizAttemptRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.QuizAttempt, int, error) {
	if limit <= 0 {
		limit = defaultAttemptPageSize
	}
	if offset < 0 {
		offset = 0
	}
	exec := GetExecutor(ctx, r.db)

	var total int
	if err := exec.GetContext(ctx, &total, `SELECT COUNT(*) FROM quiz_attempts WHERE user_id = :1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count quiz attempts: %w", err)
	}
	if total == 0 {
		return []domain.QuizAttempt{}, 0, nil
	}

	// Oracle pagination: ROW_NUMBER window with positional bounds.
	query := `SELECT id, user_id, source_type, total_questions, correct_count, score, results, attempted_at FROM (
	              SELECT qa.*, ROW_NUMBER() OVER (ORDER BY qa.attempted_at DESC) AS rn
	              FROM quiz_attempts qa WHERE qa.user_id = :1
	          ) WHERE rn > :2 AND rn <= :3`

	var rows []models.QuizAttempt
	if err := exec.SelectContext(ctx, &rows, query, userID, offset, offset+limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list quiz attempts: %w", err)
	}

	attempts := make([]domain.QuizAttempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, toDomainQuizAttempt(&rows[i]))
	}
	return attempts, total, nil
}
