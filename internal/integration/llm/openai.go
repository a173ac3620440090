package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/futig/scamper-backend/internal/config"
	"github.com/futig/scamper-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint,
// Gemini's included
type OpenAIClient struct {
	client *openaigo.Client
	model  string
	params entity.GenerationParams
}

func NewOpenAIClient(cfg config.LLMConfig, params entity.GenerationParams) *OpenAIClient {
	openaiConfig := openaigo.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		openaiConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	openaiConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAIClient{
		client: openaigo.NewClientWithConfig(openaiConfig),
		model:  cfg.Model,
		params: params,
	}
}

func (c *OpenAIClient) Provider() string {
	return ProviderOpenAI
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		llmRequestsTotal.WithLabelValues(ProviderOpenAI, c.model, statusError).Inc()
		return "", fmt.Errorf("%w: empty prompt", entity.ErrGenerationFailed)
	}

	started := time.Now()
	ctxzap.Debug(ctx, "sending prompt to openai-compatible endpoint",
		zap.String("model", c.model),
		zap.Int("prompt_bytes", len(prompt)),
	)

	resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model: c.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.params.Temperature,
		MaxTokens:   c.params.MaxTokens,
	})
	if err != nil {
		observeRequest(ProviderOpenAI, c.model, statusError, started)
		return "", fmt.Errorf("%w: %w", entity.ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		observeRequest(ProviderOpenAI, c.model, statusEmptyResponse, started)
		return "", entity.ErrEmptyCompletion
	}

	observeRequest(ProviderOpenAI, c.model, statusSuccess, started)
	observeUsage(ProviderOpenAI, c.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	text := resp.Choices[0].Message.Content
	ctxzap.Debug(ctx, "completion received",
		zap.Duration("duration", time.Since(started)),
		zap.Int("length", len(text)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return text, nil
}
