package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DB          DBConfig
	Mongo       MongoConfig
	Server      ServerConfig
	Logger      LoggerConfig
	LLM         LLMConfig
	Redis       RedisConfig
	JWT         JWTConfig
	GoogleOAuth GoogleOAuthConfig
	CacheTTLs   CacheTTLConfig
	Scrape      ScrapeConfig
	Uploads     UploadsConfig
	Jobs        JobsConfig
	RateLimit   RateLimitConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type MongoConfig struct {
	URI      string
	Database string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimitMB  int
	AllowOrigins string
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LLMConfig selects the text generation backend. Provider is one of
// "gemini", "ollama" or "openai".
type LLMConfig struct {
	Provider string
	Timeout  time.Duration
	Gemini   GeminiConfig
	Ollama   OllamaConfig
	OpenAI   OpenAIConfig
}

// QuizModel is the per-call model override for quiz generation. Only the
// Gemini backend has one; other providers keep their configured model.
func (c LLMConfig) QuizModel() string {
	if !strings.EqualFold(c.Provider, "gemini") {
		return ""
	}
	return c.Gemini.QuizModel
}

type GeminiConfig struct {
	APIKey    string
	Model     string
	QuizModel string
}

type OllamaConfig struct {
	ServerURL string
	Model     string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type CacheTTLConfig struct {
	Generation        time.Duration
	URLExtract        time.Duration
	CalculatorHistory time.Duration
}

type ScrapeConfig struct {
	Timeout   time.Duration
	UserAgent string
}

type UploadsConfig struct {
	Dir           string
	PublicPrefix  string
	MaxPhotoBytes int64
}

type JobsConfig struct {
	SessionPurgeSpec string
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.body_limit_mb", 10)
	v.SetDefault("server.allow_origins", "*")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.gemini.model", "gemini-2.0-flash")
	v.SetDefault("llm.gemini.quiz_model", "gemini-1.5-flash")
	v.SetDefault("llm.ollama.server_url", "http://localhost:11434")
	v.SetDefault("llm.ollama.model", "qwen3:0.6b")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("mongo.database", "learning_platform")
	v.SetDefault("jwt.access_token_ttl", "1h")
	v.SetDefault("jwt.refresh_token_ttl", "720h")
	v.SetDefault("cache_ttls.generation", "24h")
	v.SetDefault("cache_ttls.url_extract", "1h")
	v.SetDefault("cache_ttls.calculator_history", "720h")
	v.SetDefault("scrape.timeout", "10s")
	v.SetDefault("scrape.user_agent", defaultUserAgent)
	v.SetDefault("uploads.dir", "./uploads")
	v.SetDefault("uploads.public_prefix", "/uploads")
	v.SetDefault("uploads.max_photo_bytes", 2*1024*1024)
	v.SetDefault("jobs.session_purge_spec", "@every 1h")
	v.SetDefault("rate_limit.max", 30)
	v.SetDefault("rate_limit.window", "1m")
}

// LoadConfig reads config.yaml, .env files and APP_* environment variables.
// A missing config file is not an error; defaults and the environment are
// enough to boot the server.
func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)

	// Environment names used by the web frontend deployment.
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		cfg.LLM.Gemini.APIKey = key
	}
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		cfg.Mongo.URI = uri
	}
	if id := os.Getenv("GOOGLE_CLIENT_ID"); id != "" {
		cfg.GoogleOAuth.ClientID = id
	}
	if secret := os.Getenv("GOOGLE_CLIENT_SECRET"); secret != "" {
		cfg.GoogleOAuth.ClientSecret = secret
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.LLM.OpenAI.APIKey = key
	}

	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("mongo.uri"),
			Database: v.GetString("mongo.database"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			BodyLimitMB:  v.GetInt("server.body_limit_mb"),
			AllowOrigins: v.GetString("server.allow_origins"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		LLM: LLMConfig{
			Provider: v.GetString("llm.provider"),
			Timeout:  v.GetDuration("llm.timeout"),
			Gemini: GeminiConfig{
				APIKey:    v.GetString("llm.gemini.api_key"),
				Model:     v.GetString("llm.gemini.model"),
				QuizModel: v.GetString("llm.gemini.quiz_model"),
			},
			Ollama: OllamaConfig{
				ServerURL: v.GetString("llm.ollama.server_url"),
				Model:     v.GetString("llm.ollama.model"),
			},
			OpenAI: OpenAIConfig{
				APIKey: v.GetString("llm.openai.api_key"),
				Model:  v.GetString("llm.openai.model"),
			},
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey:       v.GetString("jwt.secret_key"),
			AccessTokenTTL:  v.GetDuration("jwt.access_token_ttl"),
			RefreshTokenTTL: v.GetDuration("jwt.refresh_token_ttl"),
		},
		GoogleOAuth: GoogleOAuthConfig{
			ClientID:     v.GetString("google_oauth.client_id"),
			ClientSecret: v.GetString("google_oauth.client_secret"),
			RedirectURL:  v.GetString("google_oauth.redirect_url"),
		},
		CacheTTLs: CacheTTLConfig{
			Generation:        v.GetDuration("cache_ttls.generation"),
			URLExtract:        v.GetDuration("cache_ttls.url_extract"),
			CalculatorHistory: v.GetDuration("cache_ttls.calculator_history"),
		},
		Scrape: ScrapeConfig{
			Timeout:   v.GetDuration("scrape.timeout"),
			UserAgent: v.GetString("scrape.user_agent"),
		},
		Uploads: UploadsConfig{
			Dir:           v.GetString("uploads.dir"),
			PublicPrefix:  v.GetString("uploads.public_prefix"),
			MaxPhotoBytes: v.GetInt64("uploads.max_photo_bytes"),
		},
		Jobs: JobsConfig{
			SessionPurgeSpec: v.GetString("jobs.session_purge_spec"),
		},
		RateLimit: RateLimitConfig{
			Max:    v.GetInt("rate_limit.max"),
			Window: v.GetDuration("rate_limit.window"),
		},
	}
}

// GetDSN builds a go-ora connection URL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
