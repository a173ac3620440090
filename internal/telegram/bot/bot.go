package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/futig/scamper-backend/internal/config"
	"github.com/futig/scamper-backend/internal/telegram/handlers"
	"github.com/futig/scamper-backend/internal/telegram/keyboard"
	"github.com/futig/scamper-backend/internal/telegram/middleware"
	"github.com/futig/scamper-backend/internal/telegram/render"
	"github.com/futig/scamper-backend/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const stateCleanupInterval = 10 * time.Minute

// Client is the Telegram Bot API surface the bot needs.
// *tgbotapi.BotAPI implements it.
type Client interface {
	handlers.API
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot represents the Telegram bot
type Bot struct {
	api          Client
	cfg          *config.TelegramConfig
	stateManager *state.Manager
	handlers     map[string]handlers.Handler
	keyboard     *keyboard.Builder
	sender       *handlers.MessageSender
	logger       *zap.Logger
	rateLimitMW  *middleware.RateLimiterMiddleware
	chain        middleware.HandlerFunc

	// ctx of running handlers, cancelled when Stop gives up waiting
	ctx      context.Context
	cancel   context.CancelFunc
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	api Client,
	cfg *config.TelegramConfig,
	stateManager *state.Manager,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *Bot {
	b := &Bot{
		api:          api,
		cfg:          cfg,
		stateManager: stateManager,
		handlers:     make(map[string]handlers.Handler),
		keyboard:     kb,
		sender:       handlers.NewMessageSender(api, logger),
		logger:       logger,
		stopChan:     make(chan struct{}),
	}
	b.ctx, b.cancel = context.WithCancel(context.Background())

	// Rate limiter first, then logging, then recovery around the actual handler
	b.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)
	b.chain = middleware.Chain(b.handleUpdate,
		b.rateLimitMW,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewRecoveryMiddleware(logger, api),
	)

	return b
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	updates := b.api.GetUpdatesChan(u)

	go b.processUpdates(ctx, updates)
	go b.expireStates()

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	b.stopOnce.Do(func() {
		close(b.stopChan)
		b.api.StopReceivingUpdates()
		b.rateLimitMW.Close()
	})
	defer b.cancel()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return errors.New("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates, each in its own goroutine
func (b *Bot) processUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			b.logger.Info("stop signal received, stopping update processing")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.chain(u)
			}(update)
		}
	}
}

// expireStates forgets conversations idle for longer than StateTTL
func (b *Bot) expireStates() {
	ticker := time.NewTicker(stateCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			if n := b.stateManager.ExpireIdle(b.cfg.StateTTL); n > 0 {
				b.logger.Debug("expired idle conversations", zap.Int("count", n))
			}
		}
	}
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(b.ctx, b.logger)

	switch {
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	userID := message.From.ID
	chatID := message.Chat.ID

	s, err := b.stateManager.Get(ctx, userID)
	if err != nil {
		ctxzap.Error(ctx, "failed to get chat state",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		b.sendError(chatID, render.ErrGeneric)
		return
	}
	ctx = state.ContextWith(ctx, s)

	switch s.Step {
	case state.StepIdle:
		b.sendMessage(chatID, render.MsgNoSession, b.keyboard.StartKeyboard())
		return
	case state.StepProcessing:
		b.sendMessage(chatID, render.MsgStillProcessing, nil)
		return
	}

	handler, exists := b.handlers[string(s.Step)]
	if !exists {
		ctxzap.Warn(ctx, "no handler for state",
			zap.String("state", string(s.Step)),
			zap.Int64("user_id", userID),
		)
		b.sendError(chatID, render.ErrInvalidState)
		return
	}

	msg := &handlers.Message{
		ChatID:    chatID,
		UserID:    userID,
		MessageID: message.MessageID,
		Text:      message.Text,
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("state", string(s.Step)),
			zap.Int64("user_id", userID),
		)
		b.sendError(chatID, render.ErrGeneric)
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.sendMessage(message.Chat.ID, render.MsgWelcome, b.keyboard.StartKeyboard())
	case "help":
		b.sendMessage(message.Chat.ID, render.MsgHelp, nil)
	case "cancel":
		b.handleCancelCommand(ctx, message)
	default:
		b.sendError(message.Chat.ID, render.ErrUnknownCommand)
	}
}

// handleCancelCommand asks for confirmation first; a second /cancel confirms
func (b *Bot) handleCancelCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	s, err := b.stateManager.Get(ctx, userID)
	if err != nil {
		ctxzap.Error(ctx, "failed to get chat state", zap.Error(err))
		b.sendError(chatID, render.ErrGeneric)
		return
	}

	if s.Step == state.StepIdle {
		b.sendMessage(chatID, render.MsgNoSession, nil)
		return
	}

	if !s.PendingCancel {
		if _, err := b.stateManager.Update(ctx, userID, func(s *state.ChatState) {
			s.PendingCancel = true
		}); err != nil {
			ctxzap.Error(ctx, "failed to set pending cancel", zap.Error(err))
			b.sendError(chatID, render.ErrGeneric)
			return
		}
		b.sendMessage(chatID, render.MsgCancelConfirm, b.keyboard.ConfirmCancelKeyboard())
		return
	}

	if err := b.stateManager.Reset(ctx, userID); err != nil {
		ctxzap.Error(ctx, "failed to reset chat state",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
	}
	b.sendMessage(chatID, render.MsgSessionFinished, nil)
}

// handleCallbackQuery handles callback button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.answerCallback(query.ID, "")
		return
	}

	if _, err := keyboard.ParseCallback(query.Data); err != nil {
		ctxzap.Error(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", query.Data),
		)
		b.answerCallback(query.ID, "❌ Datos no válidos")
		return
	}

	handler, exists := b.handlers[handlers.HandlerStateCallback]
	if !exists {
		ctxzap.Warn(ctx, "callback handler not registered")
		b.answerCallback(query.ID, "❌ Acción no disponible")
		return
	}

	// Answer right away so Telegram does not consider the query stale;
	// results arrive as regular chat messages
	b.answerCallback(query.ID, "⏳ Procesando...")

	msg := &handlers.Message{
		ChatID:       query.Message.Chat.ID,
		UserID:       query.From.ID,
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "callback handler error",
			zap.Error(err),
			zap.Int64("user_id", msg.UserID),
		)
		b.sendError(msg.ChatID, render.ErrGeneric)
	}
}

// sendMessage sends a message to chat
func (b *Bot) sendMessage(chatID int64, text string, replyMarkup interface{}) {
	_ = b.sender.Send(chatID, text, replyMarkup)
}

// sendError sends an error message
func (b *Bot) sendError(chatID int64, text string) {
	b.sendMessage(chatID, text, nil)
}

// answerCallback answers a callback query
func (b *Bot) answerCallback(callbackID string, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

// RegisterHandler registers a handler for a state
func (b *Bot) RegisterHandler(handler handlers.Handler) error {
	name := handler.GetState()
	if !handlers.IsValidState(name) {
		return fmt.Errorf("invalid handler state %q", name)
	}

	b.handlers[name] = handler
	b.logger.Debug("handler registered", zap.String("state", name))
	return nil
}

// API returns the bot API client (for handlers)
func (b *Bot) API() Client {
	return b.api
}

// StateManager returns the state manager (for handlers)
func (b *Bot) StateManager() *state.Manager {
	return b.stateManager
}

// Keyboard returns the keyboard builder (for handlers)
func (b *Bot) Keyboard() *keyboard.Builder {
	return b.keyboard
}

// Config returns the bot config (for handlers)
func (b *Bot) Config() *config.TelegramConfig {
	return b.cfg
}
