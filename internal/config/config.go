package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	LLM        LLMConfig
	Voice      VoiceConfig
	Transcribe TranscribeConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
}

type LLMConfig struct {
	OpenAIKey        string
	OpenAIBaseURL    string // default: Groq's OpenAI-compatible endpoint
	AnthropicKey     string
	DefaultProvider  string
	DefaultModel     string
	FallbackProvider string
	EmbeddingModel   string
	MaxRetries       int
}

type VoiceConfig struct {
	Enabled          bool
	EngineBaseURL    string        // override for the Google Translate TTS endpoint
	CacheMaxEntries  int           // in-memory audio cache bound
	CacheTTL         time.Duration // Redis tier TTL; 0 keeps entries forever
	SynthesisTimeout time.Duration
}

type TranscribeConfig struct {
	APIKey  string
	BaseURL string // default: Groq's OpenAI-compatible endpoint
	Model   string // default: "whisper-large-v3"
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxRetries, err := getEnvInt("LLM_MAX_RETRIES", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_RETRIES: %w", err)
	}

	cacheEntries, err := getEnvInt("VOICE_CACHE_MAX_ENTRIES", 512)
	if err != nil {
		return nil, fmt.Errorf("invalid VOICE_CACHE_MAX_ENTRIES: %w", err)
	}

	cacheTTL, err := getEnvDuration("VOICE_CACHE_TTL", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid VOICE_CACHE_TTL: %w", err)
	}

	synthTimeout, err := getEnvDuration("VOICE_SYNTHESIS_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid VOICE_SYNTHESIS_TIMEOUT: %w", err)
	}

	groqKey := getEnv("GROQ_API_KEY", "")

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		LLM: LLMConfig{
			OpenAIKey:        getEnv("LLM_OPENAI_API_KEY", groqKey),
			OpenAIBaseURL:    getEnv("LLM_OPENAI_BASE_URL", "https://api.groq.com/openai/v1"),
			AnthropicKey:     getEnv("ANTHROPIC_API_KEY", ""),
			DefaultProvider:  getEnv("LLM_DEFAULT_PROVIDER", "openai"),
			DefaultModel:     getEnv("LLM_DEFAULT_MODEL", "llama-3.3-70b-versatile"),
			FallbackProvider: getEnv("LLM_FALLBACK_PROVIDER", ""),
			EmbeddingModel:   getEnv("LLM_EMBEDDING_MODEL", "text-embedding-3-small"),
			MaxRetries:       maxRetries,
		},
		Voice: VoiceConfig{
			Enabled:          getEnvBool("VOICE_TTS_ENABLED", true),
			EngineBaseURL:    getEnv("VOICE_TTS_BASE_URL", ""),
			CacheMaxEntries:  cacheEntries,
			CacheTTL:         cacheTTL,
			SynthesisTimeout: synthTimeout,
		},
		Transcribe: TranscribeConfig{
			APIKey:  getEnv("TRANSCRIBE_API_KEY", groqKey),
			BaseURL: getEnv("TRANSCRIBE_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:   getEnv("TRANSCRIBE_MODEL", "whisper-large-v3"),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.LLM.OpenAIKey == "" && c.LLM.AnthropicKey == "" {
		missing = append(missing, "GROQ_API_KEY (or LLM_OPENAI_API_KEY / ANTHROPIC_API_KEY)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}
