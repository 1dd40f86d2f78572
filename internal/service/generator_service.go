package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"saathi/internal/cache"
	"saathi/internal/domain"
	"saathi/internal/dto"
	"saathi/internal/logger"
	"saathi/internal/scrape"

	"go.uber.org/zap"
)

const (
	MsgLLMNotConfigured = "GOOGLE_API_KEY not configured"
	MsgNoValidQuestions = "Failed to generate valid questions. Please try again with different content."
	MsgNotFoundInDoc    = "I cannot find this information in the document"

	documentContextRunes = 15000
	materialTitleRunes   = 80
	statusSuccess        = "success"
)

// GeneratorService backs the AI learning tools. userID is empty for
// anonymous callers; signed-in callers get their artefacts saved.
type GeneratorService interface {
	Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error)
	DocumentChat(ctx context.Context, req dto.DocumentChatRequest) (*dto.DocumentChatResponse, error)
	Roadmap(ctx context.Context, userID string, req dto.RoadmapRequest) (*dto.RoadmapResponse, error)
	Notes(ctx context.Context, userID string, req dto.NotesRequest) (*dto.NotesResponse, error)
	Quiz(ctx context.Context, userID string, req dto.QuizGenerateRequest) (*dto.QuizResponse, error)
	QuizFromURL(ctx context.Context, userID string, req dto.QuizURLRequest) (*dto.QuizResponse, error)
	Grade(ctx context.Context, userID string, req dto.GradeRequest) (*domain.GradeResult, error)
}

type generatorServiceImpl struct {
	llm       domain.TextGenerator
	quizModel string
	results   ResultCacheService
	content   ContentService
	materials domain.MaterialRepository
	attempts  domain.QuizAttemptRepository
}

// NewGeneratorService wires the generator. llm may be nil when no provider
// is configured; every generating call then fails with a 503.
func NewGeneratorService(
	llm domain.TextGenerator,
	quizModel string,
	results ResultCacheService,
	content ContentService,
	materials domain.MaterialRepository,
	attempts domain.QuizAttemptRepository,
) GeneratorService {
	return &generatorServiceImpl{
		llm:       llm,
		quizModel: quizModel,
		results:   results,
		content:   content,
		materials: materials,
		attempts:  attempts,
	}
}

func (s *generatorServiceImpl) generate(ctx context.Context, kind, prompt string, opts ...domain.GenerateOption) (string, error) {
	if s.llm == nil {
		return "", domain.NewLLMServiceError(MsgLLMNotConfigured, nil)
	}
	model := domain.ApplyGenerateOptions(opts...).Model
	return s.results.Resolve(ctx, kind, cache.Fingerprint(model, prompt), func(ctx context.Context) (string, error) {
		out, err := s.llm.Generate(ctx, prompt, opts...)
		if err != nil {
			logger.Get().Error("Text generation failed", zap.String("kind", kind), zap.Error(err))
			if errors.Is(err, context.Canceled) {
				return "", err
			}
			return "", domain.NewLLMServiceError("Failed to generate content", err)
		}
		return out, nil
	})
}

// Chat forwards the prompt verbatim.
func (s *generatorServiceImpl) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, domain.NewInvalidInputError("Prompt is required")
	}
	out, err := s.generate(ctx, "chat", req.Prompt)
	if err != nil {
		return nil, err
	}
	return &dto.ChatResponse{Message: out}, nil
}

func (s *generatorServiceImpl) DocumentChat(ctx context.Context, req dto.DocumentChatRequest) (*dto.DocumentChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.DocumentText) == "" {
		return nil, domain.NewInvalidInputError("Message and document text are required")
	}
	out, err := s.generate(ctx, "document_chat", DocumentChatPrompt(req.DocumentText, req.Message))
	if err != nil {
		return nil, err
	}
	return &dto.DocumentChatResponse{Response: out, Status: statusSuccess}, nil
}

func (s *generatorServiceImpl) Roadmap(ctx context.Context, userID string, req dto.RoadmapRequest) (*dto.RoadmapResponse, error) {
	subject, level := strings.TrimSpace(req.Domain), strings.TrimSpace(req.Difficulty)
	if subject == "" || level == "" {
		return nil, domain.NewInvalidInputError("Domain and difficulty are required")
	}
	out, err := s.generate(ctx, "roadmap", RoadmapPrompt(subject, level))
	if err != nil {
		return nil, err
	}
	html, err := RenderMarkdown(out)
	if err != nil {
		return nil, err
	}
	s.saveMaterial(ctx, userID, domain.MaterialRoadmap, fmt.Sprintf("%s roadmap (%s)", subject, level), subject, out)
	return &dto.RoadmapResponse{Roadmap: out, HTML: html, Status: statusSuccess}, nil
}

// Notes generates topic notes directly, or content notes from text, a web
// page or already extracted PDF text.
func (s *generatorServiceImpl) Notes(ctx context.Context, userID string, req dto.NotesRequest) (*dto.NotesResponse, error) {
	var prompt, title, input string
	switch req.InputType {
	case "topic":
		topic := strings.TrimSpace(req.Topic)
		if topic == "" {
			return nil, domain.NewInvalidInputError("Please provide valid input")
		}
		prompt, title, input = TopicNotesPrompt(topic), "Notes on "+topic, topic
	case "url":
		url := strings.TrimSpace(req.URL)
		if !scrape.ValidURL(url) {
			return nil, domain.NewInvalidInputError("Please enter a valid URL starting with http:// or https://")
		}
		page, err := s.content.ExtractURL(ctx, url)
		if err != nil {
			return nil, err
		}
		prompt, title, input = ContentNotesPrompt(page.Text), url, url
	case "text", "pdf":
		text := strings.TrimSpace(req.Text)
		if text == "" {
			return nil, domain.NewInvalidInputError("No content found to generate notes from")
		}
		prompt, title, input = ContentNotesPrompt(text), truncateRunes(text, materialTitleRunes), ""
	default:
		return nil, domain.NewInvalidInputError("Please provide valid input")
	}

	out, err := s.generate(ctx, "notes", prompt)
	if err != nil {
		return nil, err
	}
	html, err := RenderMarkdown(out)
	if err != nil {
		return nil, err
	}
	s.saveMaterial(ctx, userID, domain.MaterialNotes, title, input, out)
	return &dto.NotesResponse{Notes: out, HTML: html}, nil
}

func (s *generatorServiceImpl) Quiz(ctx context.Context, userID string, req dto.QuizGenerateRequest) (*dto.QuizResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, domain.NewInvalidInputError("No content provided")
	}
	return s.quiz(ctx, userID, req.Text, req.NumQuestions, truncateRunes(req.Text, materialTitleRunes))
}

// QuizFromURL builds a quiz from the whole body text of a page.
func (s *generatorServiceImpl) QuizFromURL(ctx context.Context, userID string, req dto.QuizURLRequest) (*dto.QuizResponse, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, domain.NewInvalidInputError("No URL provided")
	}
	text, err := s.content.PageBodyText(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewInvalidInputError("No content provided")
	}
	return s.quiz(ctx, userID, text, req.NumQuestions, req.URL)
}

func (s *generatorServiceImpl) quiz(ctx context.Context, userID, text string, numQuestions int, title string) (*dto.QuizResponse, error) {
	n := domain.ClampQuestionCount(numQuestions)
	var opts []domain.GenerateOption
	if s.quizModel != "" {
		opts = append(opts, domain.WithModel(s.quizModel))
	}
	raw, err := s.generate(ctx, "quiz", QuizPrompt(text, n), opts...)
	if err != nil {
		return nil, err
	}
	items := domain.ParseQuestions(raw)
	if len(items) == 0 {
		logger.Get().Warn("Model output had no parsable questions", zap.Int("rawLength", len(raw)))
		return nil, domain.NewLLMServiceError(MsgNoValidQuestions, nil)
	}
	s.saveMaterial(ctx, userID, domain.MaterialQuiz, title, "", raw)
	return &dto.QuizResponse{Questions: raw, Items: items}, nil
}

// Grade scores the answers and records the attempt for signed-in users.
func (s *generatorServiceImpl) Grade(ctx context.Context, userID string, req dto.GradeRequest) (*domain.GradeResult, error) {
	res, err := domain.GradeQuiz(req.Questions, req.Answers)
	if err != nil {
		return nil, err
	}
	if userID != "" && s.attempts != nil {
		source := req.SourceType
		if source == "" {
			source = "text"
		}
		attempt := &domain.QuizAttempt{
			UserID:         userID,
			SourceType:     source,
			TotalQuestions: res.Total,
			CorrectCount:   res.Score,
			Score:          res.Percentage,
			Results:        res.Results,
		}
		if err := s.attempts.CreateAttempt(ctx, attempt); err != nil {
			logger.Get().Error("Failed to record quiz attempt", zap.String("userID", userID), zap.Error(err))
			return nil, domain.NewInternalError("Failed to record quiz attempt", err)
		}
	}
	return res, nil
}

func (s *generatorServiceImpl) saveMaterial(ctx context.Context, userID string, kind domain.MaterialKind, title, input, content string) {
	if userID == "" || s.materials == nil {
		return
	}
	m := &domain.StudyMaterial{UserID: userID, Kind: kind, Title: title, Input: input, Content: content}
	if err := s.materials.Save(ctx, m); err != nil {
		logger.Get().Warn("Failed to save study material", zap.String("userID", userID), zap.String("kind", string(kind)), zap.Error(err))
	}
}

func truncateRunes(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
