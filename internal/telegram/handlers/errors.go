package handlers

import (
	"context"
	"errors"

	"github.com/futig/scamper-backend/internal/form"
	"github.com/futig/scamper-backend/internal/telegram/render"
	"github.com/futig/scamper-backend/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

// String returns string representation of error severity
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// HandlerError represents a structured error with user message and logging info
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
}

// classifyHandlerError analyzes an error and returns a HandlerError with appropriate severity and messages
func classifyHandlerError(err error) *HandlerError {
	if err == nil {
		return &HandlerError{
			UserMessage: render.ErrGeneric,
			LogMessage:  "unknown error",
			Severity:    SeverityWarning,
		}
	}

	var formErr *form.Error
	switch {
	case errors.As(err, &formErr) && formErr.Kind == form.KindValidation:
		return &HandlerError{
			Err:         err,
			UserMessage: "❌ " + formErr.Message,
			LogMessage:  "invalid problem",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, state.ErrBusy):
		return &HandlerError{
			Err:         err,
			UserMessage: render.MsgStillProcessing,
			LogMessage:  "analysis already running",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, state.ErrNoProblem):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrInvalidState,
			LogMessage:  "no problem to analyze",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, context.Canceled):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrGeneric,
			LogMessage:  "operation cancelled",
			Severity:    SeverityWarning,
		}
	}

	return &HandlerError{
		Err:         err,
		UserMessage: render.ClassifyError(err),
		LogMessage:  "handler error",
		Severity:    SeverityError,
	}
}

// HandleError provides centralized error handling for all handlers
// It logs the error with appropriate severity and sends a user-friendly message
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err)

	switch handlerErr.Severity {
	case SeverityError:
		ctxzap.Error(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	default:
		ctxzap.Warn(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	}

	h.sendMessage(chatID, handlerErr.UserMessage, nil)
}
