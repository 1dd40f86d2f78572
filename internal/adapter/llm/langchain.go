package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"saathi/internal/domain"
	"saathi/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// LangChainGenerator adapts any LangChainGo model to domain.TextGenerator.
type LangChainGenerator struct {
	model   llms.Model
	name    string
	timeout time.Duration
}

func NewLangChainGenerator(model llms.Model, name string, timeout time.Duration) *LangChainGenerator {
	return &LangChainGenerator{model: model, name: name, timeout: timeout}
}

// NewOllamaGenerator talks to a local Ollama server.
func NewOllamaGenerator(serverURL, model string, timeout time.Duration) (*LangChainGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo Ollama client: %w", err)
	}
	return NewLangChainGenerator(llm, "ollama", timeout), nil
}

// NewOpenAIGenerator uses the OpenAI chat completions API.
func NewOpenAIGenerator(apiKey, model string, timeout time.Duration) (*LangChainGenerator, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo OpenAI client: %w", err)
	}
	return NewLangChainGenerator(llm, "openai", timeout), nil
}

func (g *LangChainGenerator) Generate(ctx context.Context, prompt string, opts ...domain.GenerateOption) (string, error) {
	o := domain.ApplyGenerateOptions(opts...)

	var callOpts []llms.CallOption
	if o.Model != "" {
		callOpts = append(callOpts, llms.WithModel(o.Model))
	}
	if o.Temperature != nil {
		callOpts = append(callOpts, llms.WithTemperature(*o.Temperature))
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, callOpts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Get().Error("LLM request timed out", zap.String("provider", g.name), zap.Error(err))
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	text := StripThinking(response)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
