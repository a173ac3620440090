package handlers

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram typing action expires after 5 seconds
const typingInterval = 4 * time.Second

// TypingNotifier sends periodic "typing" actions to show bot activity
type TypingNotifier struct {
	bot    API
	chatID int64
	done   chan struct{}
	once   sync.Once
	logger *zap.Logger
}

// NewTypingNotifier creates a new typing indicator
func NewTypingNotifier(bot API, chatID int64, logger *zap.Logger) *TypingNotifier {
	return &TypingNotifier{
		bot:    bot,
		chatID: chatID,
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Start sends a typing action now and then every typingInterval until Stop
// is called or ctx is done
func (t *TypingNotifier) Start(ctx context.Context) {
	t.send()

	go func() {
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.send()
			case <-t.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops sending typing indicators. It is safe to call more than once.
func (t *TypingNotifier) Stop() {
	t.once.Do(func() { close(t.done) })
}

func (t *TypingNotifier) send() {
	action := tgbotapi.NewChatAction(t.chatID, tgbotapi.ChatTyping)
	if _, err := t.bot.Request(action); err != nil {
		t.logger.Warn("failed to send typing action",
			zap.Error(err),
			zap.Int64("chat_id", t.chatID),
		)
	}
}
