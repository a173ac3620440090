package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/scamper-backend/internal/telegram/keyboard"
	"github.com/futig/scamper-backend/internal/telegram/render"
	"github.com/futig/scamper-backend/internal/telegram/state"
	"go.uber.org/zap"
)

// ResultsHandler handles SHOW_RESULTS state, answering the "analyze another
// problem? (s/n)" question typed as text
type ResultsHandler struct {
	BaseHandler
	stateManager *state.Manager
	keyboard     *keyboard.Builder
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(
	bot API,
	stateManager *state.Manager,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *ResultsHandler {
	return &ResultsHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateShowResults,
			messageSender: NewMessageSender(bot, logger),
		},
		stateManager: stateManager,
		keyboard:     kb,
	}
}

func (h *ResultsHandler) Handle(ctx context.Context, msg *Message) error {
	switch answer := strings.ToLower(strings.TrimSpace(msg.Text)); answer {
	case "s", "si", "sí", "y", "yes":
		return startProblem(ctx, h.stateManager, &h.BaseHandler, msg)
	case "n", "no":
		return finish(ctx, h.stateManager, &h.BaseHandler, msg)
	default:
		h.sendMessage(msg.ChatID, render.MsgResultReady, h.keyboard.ResultKeyboard())
		return nil
	}
}

// startProblem opens a new conversation and asks for the problem
func startProblem(ctx context.Context, sm *state.Manager, h *BaseHandler, msg *Message) error {
	if err := sm.StartConversation(ctx, msg.UserID); err != nil {
		if errors.Is(err, state.ErrBusy) {
			h.HandleError(ctx, msg.ChatID, err)
			return nil
		}
		return fmt.Errorf("start conversation: %w", err)
	}
	h.sendMessage(msg.ChatID, render.MsgAskProblem, nil)
	return nil
}

// finish forgets the conversation and says goodbye
func finish(ctx context.Context, sm *state.Manager, h *BaseHandler, msg *Message) error {
	if err := sm.Reset(ctx, msg.UserID); err != nil {
		return fmt.Errorf("reset conversation: %w", err)
	}
	h.sendMessage(msg.ChatID, render.MsgSessionFinished, nil)
	return nil
}
