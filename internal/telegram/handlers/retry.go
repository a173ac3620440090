package handlers

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	pkgRetry "github.com/futig/scamper-backend/internal/pkg/retry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Results are expensive to regenerate, so their delivery is retried
var criticalSendRetry = pkgRetry.RetryConfig{
	Attempts: 3,
	Delay:    time.Second,
	MaxDelay: 3 * time.Second,
}

// sendCriticalMessage sends a message that must be delivered, retrying on
// transport errors
func sendCriticalMessage(
	ctx context.Context,
	bot API,
	chatID int64,
	text string,
	markup interface{},
) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	_, err := pkgRetry.Do(ctx, criticalSendRetry, func(context.Context) (tgbotapi.Message, error) {
		return bot.Send(msg)
	}, retry.OnRetry(func(n uint, err error) {
		ctxzap.Warn(ctx, "failed to send message, retrying",
			zap.Error(err),
			zap.Uint("attempt", n+1),
			zap.Int64("chat_id", chatID),
		)
	}))
	if err != nil {
		ctxzap.Error(ctx, "failed to send message after all retries",
			zap.Error(err),
			zap.Uint("max_retries", criticalSendRetry.Attempts),
			zap.Int64("chat_id", chatID),
		)
	}
	return err
}
