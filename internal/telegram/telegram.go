package telegram

import (
	"context"
	"fmt"

	"github.com/futig/scamper-backend/internal/config"
	"github.com/futig/scamper-backend/internal/pkg/formatter"
	"github.com/futig/scamper-backend/internal/telegram/bot"
	"github.com/futig/scamper-backend/internal/telegram/handlers"
	"github.com/futig/scamper-backend/internal/telegram/keyboard"
	"github.com/futig/scamper-backend/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot authorizes against the Bot API and wires the conversation handlers
func NewBot(
	cfg *config.TelegramConfig,
	analyzer handlers.Analyzer,
	formatters *formatter.Factory,
	storage state.Storage,
	logger *zap.Logger,
) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return newBot(api, cfg, analyzer, formatters, storage, logger)
}

func newBot(
	api bot.Client,
	cfg *config.TelegramConfig,
	analyzer handlers.Analyzer,
	formatters *formatter.Factory,
	storage state.Storage,
	logger *zap.Logger,
) (*bot.Bot, error) {
	b := bot.New(api, cfg, state.NewManager(storage), keyboard.NewBuilder(), logger)

	if err := registerHandlers(b, analyzer, formatters, logger); err != nil {
		return nil, fmt.Errorf("register handlers: %w", err)
	}

	logger.Info("telegram bot initialized successfully")
	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, analyzer handlers.Analyzer, formatters *formatter.Factory, logger *zap.Logger) error {
	api := b.API()
	stateManager := b.StateManager()
	kb := b.Keyboard()

	runner := handlers.NewAnalysisRunner(api, stateManager, analyzer, kb, b.Config().AnalysisTimeout, logger)

	all := []handlers.Handler{
		// Button clicks
		handlers.NewCallbackHandler(api, stateManager, runner, formatters, kb, logger),
		// ASK_PROBLEM
		handlers.NewProblemHandler(api, stateManager, kb, logger),
		// ASK_CONTEXT
		handlers.NewContextHandler(api, runner, logger),
		// SHOW_RESULTS
		handlers.NewResultsHandler(api, stateManager, kb, logger),
	}

	for _, h := range all {
		if err := b.RegisterHandler(h); err != nil {
			return err
		}
	}

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", len(all)),
	)
	return nil
}
