package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStorage_GetSetDelete(t *testing.T) {
	c := NewCacheStorage(time.Hour, time.Hour)
	ctx := context.Background()

	_, err := c.Get(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Set(ctx, &ChatState{UserID: 7, Step: StepAskProblem}))
	s, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, StepAskProblem, s.Step)

	// Get returns a copy
	s.Step = StepIdle
	again, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, StepAskProblem, again.Step)

	require.NoError(t, c.Delete(ctx, 7))
	assert.Zero(t, c.Len())
}

func TestCacheStorage_TTLSparesProcessing(t *testing.T) {
	c := NewCacheStorage(20*time.Millisecond, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &ChatState{UserID: 1, Step: StepAskContext}))
	require.NoError(t, c.Set(ctx, &ChatState{UserID: 2, Step: StepProcessing}))

	require.Eventually(t, func() bool {
		_, err := c.Get(ctx, 1)
		return err == ErrNotFound
	}, time.Second, 5*time.Millisecond)

	_, err := c.Get(ctx, 2)
	assert.NoError(t, err)
}

func TestCacheStorage_Expire(t *testing.T) {
	c := NewCacheStorage(time.Hour, time.Hour)
	ctx := context.Background()
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, c.Set(ctx, &ChatState{UserID: 1, Step: StepAskProblem, UpdatedAt: old}))
	require.NoError(t, c.Set(ctx, &ChatState{UserID: 2, Step: StepProcessing, UpdatedAt: old}))
	require.NoError(t, c.Set(ctx, &ChatState{UserID: 3, Step: StepAskProblem, UpdatedAt: old.Add(48 * time.Hour)}))

	assert.Equal(t, 1, c.Expire(old.Add(time.Hour)))
	assert.Equal(t, 2, c.Len())
}
