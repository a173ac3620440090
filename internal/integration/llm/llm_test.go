package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/futig/scamper-backend/internal/config"
	"github.com/futig/scamper-backend/internal/entity"
	pkgRetry "github.com/futig/scamper-backend/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type flakyClient struct {
	failures int
	calls    int
	err      error
}

func (f *flakyClient) Provider() string { return "flaky" }

func (f *flakyClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", f.err
	}
	return "1. ok", nil
}

var fastRetry = pkgRetry.RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestRetryingClientRecovers(t *testing.T) {
	next := &flakyClient{failures: 2, err: entity.ErrEmptyCompletion}
	client := NewRetryingClient(next, fastRetry)

	text, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "1. ok", text)
	assert.Equal(t, 3, next.calls)
}

func TestRetryingClientGivesUp(t *testing.T) {
	next := &flakyClient{failures: 10, err: entity.ErrGenerationFailed}
	client := NewRetryingClient(next, fastRetry)

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, entity.ErrGenerationFailed)
	assert.Equal(t, 3, next.calls)
}

func TestRetryingClientStopsOnCanceledContext(t *testing.T) {
	next := &flakyClient{failures: 10, err: context.Canceled}
	client := NewRetryingClient(next, fastRetry)

	_, err := client.Generate(context.Background(), "prompt")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, next.calls)
}

func TestMockClient(t *testing.T) {
	m := NewMockClient()

	ideas, err := m.Generate(context.Background(), "Aplica SCAMPER\nProblema: reuniones largas\n")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(ideas, "reuniones largas"))

	summary, err := m.Generate(context.Background(), "ideas...\n"+SummaryMarker)
	require.NoError(t, err)
	assert.Contains(t, summary, "MOCK")
}

func TestNewSelectsProvider(t *testing.T) {
	cfg := config.LLMConfig{Provider: "OpenAI", Model: "m", MaxTokens: 10, Retry: fastRetry}

	c, err := New(cfg, false, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, c.Provider())

	c, err = New(cfg, true, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, c.Provider())

	cfg.Provider = "bard"
	_, err = New(cfg, false, zap.NewNop())
	assert.ErrorIs(t, err, entity.ErrUnknownProvider)
}

func TestOpenAIClientGenerate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"1. Idea"}}],"usage":{"prompt_tokens":10,"completion_tokens":3,"total_tokens":13}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(config.LLMConfig{
		APIKey:  "secret",
		BaseURL: srv.URL + "/",
		Model:   "gemini-1.5-flash",
		Timeout: 5 * time.Second,
	}, entity.GenerationParams{Temperature: 0.7, MaxTokens: 1000})

	text, err := client.Generate(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, "1. Idea", text)
	assert.Equal(t, "gemini-1.5-flash", got["model"])
	assert.EqualValues(t, 1000, got["max_tokens"])
}

func TestOpenAIClientEmptyAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(config.LLMConfig{BaseURL: srv.URL, Model: "m"}, entity.GenerationParams{})

	_, err := client.Generate(context.Background(), "hola")
	assert.ErrorIs(t, err, entity.ErrEmptyCompletion)

	_, err = client.Generate(context.Background(), "  ")
	assert.ErrorIs(t, err, entity.ErrGenerationFailed)
}

func TestOllamaClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, false, req["stream"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"1. Local"},"done":true,"prompt_eval_count":5,"eval_count":2}`))
	}))
	defer srv.Close()

	client, err := NewOllamaClient(config.LLMConfig{BaseURL: srv.URL + "/v1/", Model: "llama3", Timeout: 5 * time.Second}, entity.GenerationParams{MaxTokens: 100})
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, "1. Local", text)
}
