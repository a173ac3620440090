package handlers

import (
	"context"
	"fmt"

	"github.com/futig/scamper-backend/internal/form"
	"github.com/futig/scamper-backend/internal/telegram/keyboard"
	"github.com/futig/scamper-backend/internal/telegram/render"
	"github.com/futig/scamper-backend/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ProblemHandler handles ASK_PROBLEM state
type ProblemHandler struct {
	BaseHandler
	stateManager *state.Manager
	keyboard     *keyboard.Builder
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(
	bot API,
	stateManager *state.Manager,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *ProblemHandler {
	return &ProblemHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateAskProblem,
			messageSender: NewMessageSender(bot, logger),
		},
		stateManager: stateManager,
		keyboard:     kb,
	}
}

// Handle validates the problem statement the same way the web form does and
// asks for the optional context
func (h *ProblemHandler) Handle(ctx context.Context, msg *Message) error {
	if msg.Text == "" {
		h.sendMessage(msg.ChatID, render.MsgTextOnly, nil)
		return nil
	}

	problem, err := form.ValidateProblem(msg.Text)
	if err != nil {
		// Stay in ASK_PROBLEM until a valid problem arrives
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	ctxzap.Info(ctx, "problem received",
		zap.Int64("user_id", msg.UserID),
		zap.Int("length", len([]rune(problem))),
	)

	if _, err := h.stateManager.Update(ctx, msg.UserID, func(s *state.ChatState) {
		s.Step = state.StepAskContext
		s.Problem = problem
		s.PendingCancel = false
	}); err != nil {
		return fmt.Errorf("save problem: %w", err)
	}

	h.sendMessage(msg.ChatID, render.MsgAskContext, h.keyboard.SkipContextKeyboard())
	return nil
}
