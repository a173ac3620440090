package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/scamper-backend/internal/config"
	"github.com/futig/scamper-backend/internal/entity"
	"go.uber.org/zap"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderMock   = "mock"
)

// Client sends a single prompt to a language model and returns its answer
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Provider() string
}

// New builds the configured provider wrapped with retries. Mocks win over the
// configured provider when enabled.
func New(cfg config.LLMConfig, enableMocks bool, logger *zap.Logger) (Client, error) {
	params := entity.GenerationParams{
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}

	var (
		client Client
		err    error
	)

	provider := strings.ToLower(cfg.Provider)
	if enableMocks {
		provider = ProviderMock
	}

	switch provider {
	case ProviderOpenAI:
		client = NewOpenAIClient(cfg, params)
	case ProviderOllama:
		client, err = NewOllamaClient(cfg, params)
	case ProviderMock:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("llm client created",
		zap.String("provider", provider),
		zap.String("model", cfg.Model),
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("timeout", cfg.Timeout),
	)

	return NewRetryingClient(client, cfg.Retry), nil
}
