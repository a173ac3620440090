package form

import (
	"context"
	"errors"
	"strings"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Submitter sends one validated request to the SCAMPER API
type Submitter interface {
	Submit(ctx context.Context, req entity.ScamperRequest) (*Payload, error)
}

// Handler runs one form submission: validate, post, render
type Handler struct {
	submitter Submitter
	renderer  *Renderer
}

func NewHandler(submitter Submitter, renderer *Renderer) *Handler {
	return &Handler{
		submitter: submitter,
		renderer:  renderer,
	}
}

// Submit validates the input and, when valid, sends a single request and
// renders its answer. Invalid input never reaches the submitter.
func (h *Handler) Submit(ctx context.Context, problem, problemContext string) View {
	view := h.submit(ctx, problem, problemContext)
	view.Problem = problem
	view.Context = problemContext
	return view
}

func (h *Handler) submit(ctx context.Context, problem, problemContext string) View {
	trimmed, err := ValidateProblem(problem)
	if err != nil {
		ctxzap.Debug(ctx, "form input rejected", zap.Error(err))
		return h.renderer.RenderError(messageOf(err))
	}

	payload, err := h.submitter.Submit(ctx, entity.ScamperRequest{
		Problem: trimmed,
		Context: strings.TrimSpace(problemContext),
	})
	if err != nil {
		ctxzap.Error(ctx, "error fetching SCAMPER results", zap.Error(err))
		return h.renderer.RenderError(messageOf(err))
	}

	view := h.renderer.Render(payload)
	if payload.Skipped > 0 {
		ctxzap.Debug(ctx, "skipped malformed result entries", zap.Int("skipped", payload.Skipped))
	}
	return view
}

func messageOf(err error) string {
	var formErr *Error
	if errors.As(err, &formErr) && formErr.Message != "" {
		return formErr.Message
	}
	return entity.MsgFormConnection
}
