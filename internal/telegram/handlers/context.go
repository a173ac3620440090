package handlers

import (
	"context"
	"strings"

	"github.com/futig/scamper-backend/internal/telegram/render"
	"go.uber.org/zap"
)

// ContextHandler handles ASK_CONTEXT state
type ContextHandler struct {
	BaseHandler
	runner *AnalysisRunner
}

// NewContextHandler creates a new context handler
func NewContextHandler(bot API, runner *AnalysisRunner, logger *zap.Logger) *ContextHandler {
	return &ContextHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateAskContext,
			messageSender: NewMessageSender(bot, logger),
		},
		runner: runner,
	}
}

// Handle takes the message text as context and starts the analysis
func (h *ContextHandler) Handle(ctx context.Context, msg *Message) error {
	problemContext := strings.TrimSpace(msg.Text)
	if problemContext == "" {
		h.sendMessage(msg.ChatID, render.MsgTextOnly, nil)
		return nil
	}

	return h.runner.Run(ctx, msg, problemContext)
}
