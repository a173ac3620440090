package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/scamper-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":5000"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LLM provider used by the technique agents
	LLMCfg LLMConfig `envPrefix:"LLM_"`

	// SCAMPER orchestration
	ScamperCfg ScamperConfig `envPrefix:"SCAMPER_"`

	// Web form (consumes the SCAMPER API over HTTP)
	WebCfg WebConfig `envPrefix:"WEB_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds

	// Upper bound for one analysis started from the chat
	AnalysisTimeout time.Duration `env:"ANALYSIS_TIMEOUT" envDefault:"180s"`
	// Idle conversations are forgotten after StateTTL
	StateTTL        time.Duration `env:"STATE_TTL" envDefault:"24h"`
}

type LLMConfig struct {
	// openai (any OpenAI-compatible endpoint, Gemini included) or ollama
	Provider    string               `env:"PROVIDER" envDefault:"openai"`
	APIKey      string               `env:"API_KEY"`
	BaseURL     string               `env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	Model       string               `env:"MODEL" envDefault:"gemini-1.5-flash"`
	Temperature float32              `env:"TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int                  `env:"MAX_TOKENS" envDefault:"1000"`
	Timeout     time.Duration        `env:"TIMEOUT" envDefault:"30s"`
	Retry       pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type ScamperConfig struct {
	MaxIdeasPerTechnique    int  `env:"MAX_IDEAS_PER_TECHNIQUE" envDefault:"3"`
	EnableParallelExecution bool `env:"ENABLE_PARALLEL_EXECUTION" envDefault:"true"`
}

type WebConfig struct {
	HTTPClientConfig
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"110s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"API_URL" envDefault:"http://localhost:5000"`
}

// ClientConfig configures the terminal client
type ClientConfig struct {
	LogLevel string           `env:"LOG_LEVEL" envDefault:"warn"`
	HTTP     HTTPClientConfig `envPrefix:"CLIENT_"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	loadEnvFile(*envFlag)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadClientConfig reads the terminal client configuration. Flags are parsed by the caller.
func LoadClientConfig(environment string) (*ClientConfig, error) {
	loadEnvFile(environment)

	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFile(environment string) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}
}

func validateConfig(cfg *Config) error {
	var errors []string

	switch strings.ToLower(cfg.LLMCfg.Provider) {
	case "openai":
		if cfg.LLMCfg.APIKey == "" && !cfg.EnableMocks {
			errors = append(errors, "LLM_API_KEY is required for the openai provider (or set ENABLE_MOCKS=true)")
		}
	case "ollama":
	default:
		errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be openai or ollama, got %q", cfg.LLMCfg.Provider))
	}

	if cfg.LLMCfg.Temperature < 0 || cfg.LLMCfg.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("LLM_TEMPERATURE must be between 0 and 2, got %.2f", cfg.LLMCfg.Temperature))
	}

	if cfg.LLMCfg.MaxTokens < 1 {
		errors = append(errors, fmt.Sprintf("LLM_MAX_TOKENS must be positive, got %d", cfg.LLMCfg.MaxTokens))
	}

	if cfg.ScamperCfg.MaxIdeasPerTechnique < 1 || cfg.ScamperCfg.MaxIdeasPerTechnique > 10 {
		errors = append(errors, fmt.Sprintf("SCAMPER_MAX_IDEAS_PER_TECHNIQUE must be between 1 and 10, got %d", cfg.ScamperCfg.MaxIdeasPerTechnique))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if cfg.TelegramCfg.StateTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("TELEGRAM_STATE_TTL must be at least 1m, got %s", cfg.TelegramCfg.StateTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
