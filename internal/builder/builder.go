package builder

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/scamper-backend/internal/agent"
	"github.com/futig/scamper-backend/internal/api"
	scamperapi "github.com/futig/scamper-backend/internal/api/scamper"
	webapi "github.com/futig/scamper-backend/internal/api/web"
	"github.com/futig/scamper-backend/internal/config"
	"github.com/futig/scamper-backend/internal/form"
	"github.com/futig/scamper-backend/internal/integration/common"
	"github.com/futig/scamper-backend/internal/integration/llm"
	"github.com/futig/scamper-backend/internal/pkg/formatter"
	pkgLogger "github.com/futig/scamper-backend/internal/pkg/logger"
	"github.com/futig/scamper-backend/internal/pkg/validator"
	"github.com/futig/scamper-backend/internal/telegram"
	"github.com/futig/scamper-backend/internal/telegram/state"
	"github.com/futig/scamper-backend/internal/usecase/scamper"
	"go.uber.org/zap"
)

// Longer than the router timeout so the handler, not the server, answers
// slow analyses
const serverWriteTimeout = 200 * time.Second

const stateJanitorInterval = 5 * time.Minute

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkgLogger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	scamperUC, err := buildScamperUsecase(cfg, logger)
	if err != nil {
		return nil, err
	}

	// The form page talks to the API over HTTP, like the browser script did
	formConnector := common.NewAPIConnector(cfg.WebCfg.HTTPClientConfig, common.ClientWebForm, logger)
	formHandler := form.NewHandler(form.NewClient(formConnector), form.NewRenderer())

	scamperHandler := scamperapi.NewHandler(scamperUC, validator.New(), formatter.NewFactory())
	webHandler := webapi.NewHandler(formHandler)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(scamperHandler, webHandler, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot. The bot runs the
// analysis in process.
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkgLogger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.TelegramCfg.BotToken == "" {
		return nil, nil, errors.New("TELEGRAM_BOT_TOKEN is required to run the bot")
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	scamperUC, err := buildScamperUsecase(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	storage := state.NewCacheStorage(cfg.TelegramCfg.StateTTL, stateJanitorInterval)
	bot, err := telegram.NewBot(&cfg.TelegramCfg, scamperUC, formatter.NewFactory(), storage, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

// buildScamperUsecase wires the LLM client, the seven technique agents and the
// orchestrator
func buildScamperUsecase(cfg *config.Config, logger *zap.Logger) (*scamper.ScamperUsecase, error) {
	llmClient, err := llm.New(cfg.LLMCfg, cfg.EnableMocks, logger)
	if err != nil {
		return nil, fmt.Errorf("setup llm client: %w", err)
	}
	logger.Info("LLM client initialized",
		zap.String("provider", llmClient.Provider()),
		zap.String("model", cfg.LLMCfg.Model),
		zap.Bool("mocks", cfg.EnableMocks),
	)

	agents := agent.NewAll(llmClient, cfg.ScamperCfg.MaxIdeasPerTechnique)
	techniqueAgents := make([]scamper.TechniqueAgent, 0, len(agents))
	for _, a := range agents {
		techniqueAgents = append(techniqueAgents, a)
	}

	uc := scamper.NewUsecase(techniqueAgents, llmClient, cfg.ScamperCfg, logger)
	logger.Info("Use cases initialized",
		zap.Int("agents", len(techniqueAgents)),
		zap.Bool("parallel", cfg.ScamperCfg.EnableParallelExecution),
	)

	return uc, nil
}
