package middleware

import (
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []string
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		r.sent = append(r.sent, m.Text)
	}
	return tgbotapi.Message{}, nil
}

func (r *recordingSender) texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...)
}

func messageUpdate(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: userID},
		Text: text,
	}}
}

func TestRateLimiter_BurstThenRefill(t *testing.T) {
	sender := &recordingSender{}
	rl := NewRateLimiterMiddleware(60, 3, zap.NewNop(), sender)
	t.Cleanup(rl.Close)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(1, 1), "request %d", i)
	}
	assert.False(t, rl.Allow(1, 1))
	assert.False(t, rl.Allow(1, 1))
	assert.Len(t, sender.texts(), 1, "one warning per interval")

	// other users have their own bucket
	assert.True(t, rl.Allow(2, 2))

	// 60/min refills one token per second
	now = now.Add(time.Second)
	assert.True(t, rl.Allow(1, 1))
	assert.False(t, rl.Allow(1, 1))
}

func TestRateLimiter_RemoveInactive(t *testing.T) {
	rl := NewRateLimiterMiddleware(20, 5, zap.NewNop(), &recordingSender{})
	t.Cleanup(rl.Close)

	now := time.Now()
	rl.now = func() time.Time { return now }
	rl.Allow(1, 1)

	now = now.Add(2 * inactiveThreshold)
	rl.Allow(2, 2)
	rl.removeInactive()

	assert.Len(t, rl.limits, 1)
	assert.Contains(t, rl.limits, int64(2))
}

type orderMiddleware struct {
	name string
	log  *[]string
}

func (m orderMiddleware) Handle(u tgbotapi.Update, next func(tgbotapi.Update)) {
	*m.log = append(*m.log, m.name)
	next(u)
}

func TestChain_Order(t *testing.T) {
	var log []string
	h := Chain(func(tgbotapi.Update) { log = append(log, "handler") },
		orderMiddleware{"first", &log},
		orderMiddleware{"second", &log},
	)
	h(tgbotapi.Update{})

	assert.Equal(t, []string{"first", "second", "handler"}, log)
}

func TestRecovery_NotifiesChat(t *testing.T) {
	sender := &recordingSender{}
	mw := NewRecoveryMiddleware(zap.NewNop(), sender)

	require.NotPanics(t, func() {
		mw.Handle(messageUpdate(9, "hola"), func(tgbotapi.Update) { panic("boom") })
	})
	assert.Equal(t, []string{MsgPanic}, sender.texts())
}

func TestRateLimiter_PassesUnknownUpdates(t *testing.T) {
	rl := NewRateLimiterMiddleware(1, 1, zap.NewNop(), &recordingSender{})
	t.Cleanup(rl.Close)

	calls := 0
	for i := 0; i < 3; i++ {
		rl.Handle(tgbotapi.Update{UpdateID: i}, func(tgbotapi.Update) { calls++ })
	}
	assert.Equal(t, 3, calls)
}
