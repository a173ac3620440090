package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts uint) RetryConfig {
	return RetryConfig{Attempts: attempts, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastConfig(3), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("flaky")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDoReturnsLastError(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(2), func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("down")
	})

	require.EqualError(t, err, "down")
	assert.Equal(t, 2, calls)
}

func TestDoStopsOnPermanentError(t *testing.T) {
	sentinel := errors.New("bad request")
	calls := 0
	_, err := Do(context.Background(), fastConfig(5), func(ctx context.Context) (int, error) {
		calls++
		return 0, Permanent(sentinel)
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestDoUsesDefaultsForZeroConfig(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), RetryConfig{}, func(ctx context.Context) (int, error) {
		calls++
		return 1, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
