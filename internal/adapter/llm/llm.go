// Package llm holds the text generation adapters: Gemini through the GenAI
// SDK, Ollama and OpenAI through LangChainGo.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"saathi/internal/config"
	"saathi/internal/domain"
)

var (
	// ErrNotConfigured means the selected provider has no credentials.
	ErrNotConfigured = errors.New("llm provider not configured")
	ErrEmptyResponse = errors.New("llm returned an empty response")
)

// New builds the generator selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (domain.TextGenerator, error) {
	var (
		gen domain.TextGenerator
		err error
	)
	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		var g *GeminiGenerator
		g, err = NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Timeout)
		gen = g
	case "ollama":
		var g *LangChainGenerator
		g, err = NewOllamaGenerator(cfg.Ollama.ServerURL, cfg.Ollama.Model, cfg.Timeout)
		gen = g
	case "openai":
		var g *LangChainGenerator
		g, err = NewOpenAIGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.Timeout)
		gen = g
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
	if err != nil {
		// Return an untyped nil interface on error.
		return nil, err
	}
	return gen, nil
}

// StripThinking removes a leading <think>...</think> block emitted by
// reasoning models and trims the rest.
func StripThinking(s string) string {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "<think>")
	if start == -1 {
		return s
	}
	end := strings.Index(s, "</think>")
	if end == -1 || end < start {
		return s
	}
	return strings.TrimSpace(s[:start] + s[end+len("</think>"):])
}
