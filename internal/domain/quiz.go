package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultQuizQuestions = 5
	MinQuizQuestions     = 1
	MaxQuizQuestions     = 50
)

// QuizQuestion is one multiple choice question parsed from model output.
// Options keep their "A." to "D." prefixes.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

var (
	optionLine   = regexp.MustCompile(`^[A-D]\.`)
	answerLetter = regexp.MustCompile(`^([A-D])`)
)

// ClampQuestionCount bounds n to the supported range, treating 0 as the default.
func ClampQuestionCount(n int) int {
	switch {
	case n == 0:
		return DefaultQuizQuestions
	case n < MinQuizQuestions:
		return MinQuizQuestions
	case n > MaxQuizQuestions:
		return MaxQuizQuestions
	}
	return n
}

// ParseQuestions reads the "Question N / A.-D. / **Answer:**" layout and
// keeps only complete questions: four options and an answer.
func ParseQuestions(raw string) []QuizQuestion {
	var (
		out     []QuizQuestion
		current *QuizQuestion
	)
	flush := func() {
		if current != nil && len(current.Options) == 4 && current.Answer != "" {
			out = append(out, *current)
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		bare := strings.TrimSpace(strings.TrimLeft(trimmed, "*# "))

		switch {
		case strings.HasPrefix(bare, "Question"):
			flush()
			current = &QuizQuestion{Question: strings.TrimSpace(strings.ReplaceAll(bare, "**", ""))}
		case current == nil:
			continue
		case optionLine.MatchString(trimmed):
			current.Options = append(current.Options, trimmed)
		case strings.HasPrefix(trimmed, "**Answer:**"):
			current.Answer = strings.TrimSpace(strings.TrimPrefix(trimmed, "**Answer:**"))
		case strings.HasPrefix(bare, "Answer:"):
			current.Answer = strings.TrimSpace(strings.TrimPrefix(bare, "Answer:"))
		}
	}
	flush()
	return out
}

// AnswerLetter returns the leading A-D letter of an answer, or the trimmed
// answer itself when it has none.
func AnswerLetter(answer string) string {
	answer = strings.TrimSpace(answer)
	if m := answerLetter.FindStringSubmatch(answer); m != nil {
		return m[1]
	}
	return answer
}

type QuestionResult struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

type GradeResult struct {
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Percentage float64          `json:"percentage"`
	Results    []QuestionResult `json:"results"`
}

// GradeQuiz compares answers[i] with questions[i] by answer letter. Every
// question must have a non-blank answer.
func GradeQuiz(questions []QuizQuestion, answers []string) (*GradeResult, error) {
	if len(questions) == 0 {
		return nil, NewInvalidInputError("No questions to grade")
	}
	if len(answers) != len(questions) {
		return nil, NewInvalidInputError("Please answer all questions")
	}
	for _, a := range answers {
		if strings.TrimSpace(a) == "" {
			return nil, NewInvalidInputError("Please answer all questions")
		}
	}

	res := &GradeResult{Total: len(questions), Results: make([]QuestionResult, 0, len(questions))}
	for i, q := range questions {
		correct := AnswerLetter(answers[i]) == AnswerLetter(q.Answer)
		if correct {
			res.Score++
		}
		res.Results = append(res.Results, QuestionResult{
			Question:      q.Question,
			UserAnswer:    answers[i],
			CorrectAnswer: q.Answer,
			IsCorrect:     correct,
		})
	}
	res.Percentage = float64(res.Score) * 100 / float64(res.Total)
	return res, nil
}

// QuizAttempt is a graded quiz recorded for a signed-in user.
type QuizAttempt struct {
	ID             string
	UserID         string
	SourceType     string
	TotalQuestions int
	CorrectCount   int
	Score          float64
	Results        []QuestionResult
	AttemptedAt    time.Time
}

type QuizAttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]QuizAttempt, int, error)
}
