package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 3
	defaultMaxDelay = 2 * time.Second
	defaultDelay    = 200 * time.Millisecond
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay    time.Duration `env:"DELAY" envDefault:"200ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(rc.Attempts),
		retry.MaxDelay(rc.MaxDelay),
		retry.Delay(rc.Delay),
	}
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}

// Permanent marks an error that must not be retried
func Permanent(err error) error {
	return retry.Unrecoverable(err)
}

// Do runs fn until it succeeds, returns a permanent error, the attempts are
// exhausted or ctx is done. The last error is returned unwrapped.
func Do[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error), opts ...retry.Option) (T, error) {
	if cfg.Attempts == 0 {
		cfg = *DefaultRetryConfig()
	}

	options := append(cfg.ToRetryOptions(),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	options = append(options, opts...)

	return retry.DoWithData(func() (T, error) {
		return fn(ctx)
	}, options...)
}
