package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("APP_SERVER_PORT", "9191")
	t.Setenv("APP_LLM_PROVIDER", "ollama")
	t.Setenv("APP_SCRAPE_TIMEOUT", "3s")
	t.Setenv("GOOGLE_API_KEY", "gemini-key")
	t.Setenv("MONGODB_URI", "mongodb://mongo:27017")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, 3*time.Second, cfg.Scrape.Timeout)
	assert.Equal(t, "gemini-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
	assert.Equal(t, "learning_platform", cfg.Mongo.Database)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Gemini.Model)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Gemini.QuizModel)
	assert.Empty(t, cfg.LLM.QuizModel())
	assert.Equal(t, int64(2*1024*1024), cfg.Uploads.MaxPhotoBytes)
}

func TestLLMConfig_QuizModel(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"gemini", "gemini-1.5-flash"},
		{"Gemini", "gemini-1.5-flash"},
		{"ollama", ""},
		{"openai", ""},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := LLMConfig{Provider: tt.provider, Gemini: GeminiConfig{QuizModel: "gemini-1.5-flash"}}
			assert.Equal(t, tt.want, cfg.QuizModel())
		})
	}
}

func TestConfig_GetDSN(t *testing.T) {
	cfg := &Config{DB: DBConfig{Host: "db", Port: 1521, User: "saathi", Password: "pw", DBName: "FREEPDB1"}}
	assert.Equal(t, "oracle://saathi:pw@db:1521/FREEPDB1", cfg.GetDSN())
}
