package llm

import (
	"context"
	"errors"

	"github.com/avast/retry-go/v4"
	pkgRetry "github.com/futig/scamper-backend/internal/pkg/retry"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// RetryingClient retries failed generations of the wrapped client
type RetryingClient struct {
	next Client
	cfg  pkgRetry.RetryConfig
}

func NewRetryingClient(next Client, cfg pkgRetry.RetryConfig) *RetryingClient {
	return &RetryingClient{next: next, cfg: cfg}
}

func (c *RetryingClient) Provider() string {
	return c.next.Provider()
}

func (c *RetryingClient) Generate(ctx context.Context, prompt string) (string, error) {
	return pkgRetry.Do(ctx, c.cfg, func(ctx context.Context) (string, error) {
		text, err := c.next.Generate(ctx, prompt)
		if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return "", pkgRetry.Permanent(err)
		}
		return text, err
	}, retry.OnRetry(func(n uint, err error) {
		llmRetriesTotal.WithLabelValues(c.next.Provider()).Inc()
		ctxzap.Warn(ctx, "llm generation failed, retrying",
			zap.Uint("attempt", n+1),
			zap.Error(err),
		)
	}))
}
