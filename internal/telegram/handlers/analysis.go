package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/futig/scamper-backend/internal/form"
	"github.com/futig/scamper-backend/internal/pkg/logger"
	"github.com/futig/scamper-backend/internal/telegram/keyboard"
	"github.com/futig/scamper-backend/internal/telegram/render"
	"github.com/futig/scamper-backend/internal/telegram/state"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AnalysisRunner runs the analysis of the problem a user entered and posts
// the rendered results to the chat. It is shared by the context message and
// the "skip context" button.
type AnalysisRunner struct {
	BaseHandler
	bot          API
	stateManager *state.Manager
	analyzer     Analyzer
	renderer     *form.Renderer
	keyboard     *keyboard.Builder
	timeout      time.Duration
	logger       *zap.Logger
}

// NewAnalysisRunner creates a runner. A zero timeout means the analysis is
// bounded only by the caller's context.
func NewAnalysisRunner(
	bot API,
	stateManager *state.Manager,
	analyzer Analyzer,
	kb *keyboard.Builder,
	timeout time.Duration,
	logger *zap.Logger,
) *AnalysisRunner {
	return &AnalysisRunner{
		BaseHandler: BaseHandler{
			messageSender: NewMessageSender(bot, logger),
		},
		bot:          bot,
		stateManager: stateManager,
		analyzer:     analyzer,
		renderer:     form.NewRenderer(),
		keyboard:     kb,
		timeout:      timeout,
		logger:       logger,
	}
}

// Run analyzes the pending problem of msg.UserID with problemContext, which
// may be empty. Failures are reported to the chat; the returned error is
// only for logging.
func (r *AnalysisRunner) Run(ctx context.Context, msg *Message, problemContext string) error {
	runID := uuid.NewString()
	s, err := r.stateManager.BeginProcessing(ctx, msg.UserID, runID)
	if err != nil {
		r.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	ctx = logger.AddFields(ctx, zap.String("chat_run_id", runID), zap.Int64("user_id", msg.UserID))
	ctx = logger.WithAction(ctx, "telegram.analyze")

	input := entity.UserInput{Problem: s.Problem}
	if problemContext != "" {
		input.Context = &problemContext
	}

	r.sendMessage(msg.ChatID, render.MsgProcessing, nil)

	typing := NewTypingNotifier(r.bot, msg.ChatID, r.logger)
	typing.Start(ctx)
	resp, err := r.analyze(ctx, input)
	typing.Stop()

	if err != nil {
		current, abortErr := r.stateManager.AbortProcessing(ctx, msg.UserID, runID)
		if abortErr != nil {
			ctxzap.Error(ctx, "failed to restore chat state", zap.Error(abortErr))
		}
		if !current {
			ctxzap.Info(ctx, "analysis failed after the conversation changed", zap.Error(err))
			return nil
		}
		r.HandleError(ctx, msg.ChatID, err)
		r.sendMessage(msg.ChatID, render.MsgAskContext, r.keyboard.SkipContextKeyboard())
		return nil
	}

	current, err := r.stateManager.FinishProcessing(ctx, msg.UserID, runID, resp)
	if err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	if !current {
		ctxzap.Info(ctx, "conversation changed during analysis, results discarded")
		return nil
	}

	if err := r.publish(ctx, msg.ChatID, resp); err != nil {
		ctxzap.Error(ctx, "failed to publish results", zap.Error(err))
		r.sendMessage(msg.ChatID, render.ErrGeneric, nil)
		return nil
	}

	r.sendMessage(msg.ChatID, render.MsgResultReady, r.keyboard.ResultKeyboard())
	return nil
}

func (r *AnalysisRunner) analyze(ctx context.Context, input entity.UserInput) (*entity.ScamperResponse, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	resp, err := r.analyzer.Analyze(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	return resp, nil
}

// publish renders resp the same way the web form does and sends it
func (r *AnalysisRunner) publish(ctx context.Context, chatID int64, resp *entity.ScamperResponse) error {
	payload, err := form.PayloadFromResponse(resp)
	if err != nil {
		return fmt.Errorf("build payload: %w", err)
	}

	messages, err := render.Results(r.renderer.Render(payload))
	if err != nil {
		return err
	}

	for _, text := range messages {
		if err := sendCriticalMessage(ctx, r.bot, chatID, text, nil); err != nil {
			return fmt.Errorf("send results: %w", err)
		}
	}

	ctxzap.Info(ctx, "results delivered",
		zap.Int("messages", len(messages)),
		zap.Int("ideas", resp.TotalIdeas()),
	)
	return nil
}
