package scamper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/futig/scamper-backend/internal/pkg/formatter"
	"github.com/futig/scamper-backend/internal/pkg/logger"
	"github.com/futig/scamper-backend/internal/pkg/response"
	"github.com/futig/scamper-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

const exportFileName = "scamper-ideas"

type Handler struct {
	usecase   ScamperUsecase
	validator *validator.Validator
	formatter *formatter.Factory
}

func NewHandler(
	usecase ScamperUsecase,
	validator *validator.Validator,
	formatter *formatter.Factory,
) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
		formatter: formatter,
	}
}

// Analyze handles POST /api/scamper - run every technique agent on a problem
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Analyze")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		ctxzap.Warn(ctx, "failed to read request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, entity.MsgInvalidRequestBody)
		return
	}

	input, err := h.validator.ValidateScamperRequest(body)
	if err != nil {
		var verr *validator.Error
		if !errors.As(err, &verr) {
			verr = &validator.Error{Message: entity.MsgInvalidRequestBody, Err: err}
		}
		ctxzap.Warn(ctx, "request rejected", zap.Error(err))
		response.Error(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctxzap.Info(ctx, "analyzing problem",
		zap.Int("problem_length", len(input.Problem)),
		zap.Bool("has_context", input.Context != nil),
	)

	result, err := h.usecase.Analyze(ctx, *input)
	if err != nil {
		ctxzap.Error(ctx, "failed to analyze problem", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, entity.MsgProcessingFailed)
		return
	}

	response.Success(w, result)
}

// Status handles GET /api/scamper/status - describe the orchestrator and agents
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.usecase.Status())
}

// AgentsHealth handles GET /api/scamper/agents/health - probe every agent
func (h *Handler) AgentsHealth(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AgentsHealth")

	health, err := h.usecase.CheckAgents(ctx)
	if err != nil {
		ctxzap.Error(ctx, "failed to check agents", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, entity.MsgProcessingFailed)
		return
	}

	healthy := 0
	for _, a := range health {
		if a.Healthy {
			healthy++
		}
	}

	response.Success(w, map[string]any{
		"healthy_agents": healthy,
		"total_agents":   len(health),
		"agents":         health,
	})
}

// Export handles POST /api/scamper/export?format=markdown|pdf|docx - render a
// previously returned result as a document
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Export")

	format, err := entity.ParseResultFormat(r.URL.Query().Get("format"))
	if err != nil {
		ctxzap.Warn(ctx, "invalid format parameter", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx = logger.AddFields(ctx, zap.String("format", string(format)))

	var result entity.ScamperResponse
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&result); err != nil {
		ctxzap.Warn(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, entity.MsgInvalidRequestBody)
		return
	}

	fmtr, err := h.formatter.Create(format)
	if err != nil {
		ctxzap.Error(ctx, "format not implemented", zap.Error(err))
		response.Error(w, http.StatusNotImplemented, err.Error())
		return
	}

	document, err := fmtr.Format(&result)
	if err != nil {
		ctxzap.Error(ctx, "failed to format result", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, entity.MsgProcessingFailed)
		return
	}

	ctxzap.Info(ctx, "result exported", zap.Int("bytes", len(document)))
	response.Attachment(w, fmtr.ContentType(), exportFileName+fmtr.FileExtension(), document)
}
