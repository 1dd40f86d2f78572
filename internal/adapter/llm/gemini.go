package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saathi/internal/domain"
	"saathi/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// contentGenerator is the slice of genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements domain.TextGenerator with the Google GenAI SDK.
type GeminiGenerator struct {
	models  contentGenerator
	model   string
	timeout time.Duration
}

// NewGeminiGenerator creates a client for the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiGenerator{models: client.Models, model: model, timeout: timeout}, nil
}

// Generate sends a single user turn and returns the concatenated text parts.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, opts ...domain.GenerateOption) (string, error) {
	o := domain.ApplyGenerateOptions(opts...)
	model := g.model
	if o.Model != "" {
		model = o.Model
	}

	var cfg *genai.GenerateContentConfig
	if o.Temperature != nil {
		cfg = &genai.GenerateContentConfig{Temperature: genai.Ptr(float32(*o.Temperature))}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.models.GenerateContent(ctx, model, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, cfg)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Get().Error("Gemini request timed out", zap.String("model", model), zap.Error(err))
			return "", fmt.Errorf("gemini request timed out: %w", err)
		}
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := StripThinking(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
