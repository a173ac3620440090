package handlers

import (
	"context"
	"fmt"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/futig/scamper-backend/internal/pkg/formatter"
	"github.com/futig/scamper-backend/internal/telegram/keyboard"
	"github.com/futig/scamper-backend/internal/telegram/render"
	"github.com/futig/scamper-backend/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// exportBaseName is the file name of exported results, without extension
const exportBaseName = "scamper-ideas"

// CallbackHandler handles all callback button clicks
type CallbackHandler struct {
	BaseHandler
	stateManager *state.Manager
	runner       *AnalysisRunner
	formatters   *formatter.Factory
	keyboard     *keyboard.Builder
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(
	bot API,
	stateManager *state.Manager,
	runner *AnalysisRunner,
	formatters *formatter.Factory,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateCallback, // Special state for callbacks
			messageSender: NewMessageSender(bot, logger),
		},
		stateManager: stateManager,
		runner:       runner,
		formatters:   formatters,
		keyboard:     kb,
	}
}

// Handle routes callback queries to appropriate actions
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		return fmt.Errorf("parse callback: %w", err)
	}

	ctxzap.Info(ctx, "handling callback",
		zap.String("action", data.Action),
		zap.String("value", data.Value),
		zap.Int64("user_id", msg.UserID),
	)

	switch data.Action {
	case keyboard.ActionFlow:
		return h.handleFlow(ctx, msg, data.Value)
	case keyboard.ActionDownload:
		return h.handleDownload(ctx, msg, data.Value)
	case keyboard.ActionConfirm:
		return h.handleConfirmation(ctx, msg, data.Value)
	default:
		ctxzap.Warn(ctx, "unknown callback action",
			zap.String("action", data.Action),
		)
		return fmt.Errorf("unknown action: %s", data.Action)
	}
}

func (h *CallbackHandler) handleFlow(ctx context.Context, msg *Message, value string) error {
	switch value {
	case keyboard.FlowStart, keyboard.FlowAgain:
		return startProblem(ctx, h.stateManager, &h.BaseHandler, msg)
	case keyboard.FlowSkipContext:
		return h.runner.Run(ctx, msg, "")
	case keyboard.FlowFinish:
		return finish(ctx, h.stateManager, &h.BaseHandler, msg)
	default:
		return fmt.Errorf("unknown action value: %s", value)
	}
}

// handleDownload sends the last results as a document
func (h *CallbackHandler) handleDownload(ctx context.Context, msg *Message, format string) error {
	resultFormat, err := entity.ParseResultFormat(format)
	if err != nil {
		ctxzap.Warn(ctx, "invalid download format parameter", zap.String("format", format))
		h.sendMessage(msg.ChatID, render.ErrInvalidFormat, nil)
		return nil
	}

	s, err := h.stateManager.Get(ctx, msg.UserID)
	if err != nil {
		return fmt.Errorf("get chat state: %w", err)
	}
	if s.LastResponse == nil {
		h.sendMessage(msg.ChatID, render.ErrNoResult, nil)
		return nil
	}

	fmtr, err := h.formatters.Create(resultFormat)
	if err != nil {
		ctxzap.Error(ctx, "format not implemented", zap.Error(err))
		h.sendMessage(msg.ChatID, render.ErrInvalidFormat, nil)
		return nil
	}

	data, err := fmtr.Format(s.LastResponse)
	if err != nil {
		ctxzap.Error(ctx, "failed to format result", zap.Error(err))
		h.sendMessage(msg.ChatID, render.ErrExportFailed, nil)
		return nil
	}

	if err := h.messageSender.SendDocument(msg.ChatID, exportBaseName+fmtr.FileExtension(), data); err != nil {
		h.sendMessage(msg.ChatID, render.ErrExportFailed, nil)
	}
	return nil
}

// handleConfirmation completes or aborts a pending /cancel
func (h *CallbackHandler) handleConfirmation(ctx context.Context, msg *Message, value string) error {
	switch value {
	case keyboard.ConfirmCancel:
		return finish(ctx, h.stateManager, &h.BaseHandler, msg)
	case keyboard.ConfirmContinue:
		if _, err := h.stateManager.Update(ctx, msg.UserID, func(s *state.ChatState) {
			s.PendingCancel = false
		}); err != nil {
			return fmt.Errorf("clear pending cancel: %w", err)
		}
		h.sendMessage(msg.ChatID, render.MsgContinue, nil)
		return nil
	default:
		return fmt.Errorf("unknown confirmation: %s", value)
	}
}
