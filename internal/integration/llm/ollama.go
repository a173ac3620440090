package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/futig/scamper-backend/internal/config"
	"github.com/futig/scamper-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// OllamaClient uses the native Ollama chat API
type OllamaClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
	params  entity.GenerationParams
}

func NewOllamaClient(cfg config.LLMConfig, params entity.GenerationParams) (*OllamaClient, error) {
	// api.NewClient expects the server root, without the OpenAI-compatible /v1 suffix
	baseURL := strings.TrimSuffix(strings.TrimSuffix(cfg.BaseURL, "/"), "/v1")

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse ollama base url %q: %w", baseURL, err)
	}

	return &OllamaClient{
		client:  api.NewClient(parsedURL, &http.Client{Timeout: cfg.Timeout}),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		params:  params,
	}, nil
}

func (c *OllamaClient) Provider() string {
	return ProviderOllama
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		llmRequestsTotal.WithLabelValues(ProviderOllama, c.model, statusError).Inc()
		return "", fmt.Errorf("%w: empty prompt", entity.ErrGenerationFailed)
	}

	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
		Options: map[string]any{
			"temperature": c.params.Temperature,
			"num_predict": c.params.MaxTokens,
		},
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	var resp api.ChatResponse
	err := c.client.Chat(ctx, req, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	if err != nil {
		observeRequest(ProviderOllama, c.model, statusError, started)
		return "", fmt.Errorf("%w: %w", entity.ErrGenerationFailed, err)
	}

	if strings.TrimSpace(resp.Message.Content) == "" {
		observeRequest(ProviderOllama, c.model, statusEmptyResponse, started)
		return "", entity.ErrEmptyCompletion
	}

	observeRequest(ProviderOllama, c.model, statusSuccess, started)
	observeUsage(ProviderOllama, c.model, resp.PromptEvalCount, resp.EvalCount)

	ctxzap.Debug(ctx, "ollama answer received",
		zap.Duration("duration", time.Since(started)),
		zap.Int("length", len(resp.Message.Content)),
	)

	return resp.Message.Content, nil
}
