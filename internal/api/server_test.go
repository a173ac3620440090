package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	scamperapi "github.com/futig/scamper-backend/internal/api/scamper"
	webapi "github.com/futig/scamper-backend/internal/api/web"
	"github.com/futig/scamper-backend/internal/entity"
	"github.com/futig/scamper-backend/internal/form"
	"github.com/futig/scamper-backend/internal/pkg/formatter"
	"github.com/futig/scamper-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubUsecase struct{}

func (stubUsecase) Analyze(context.Context, entity.UserInput) (*entity.ScamperResponse, error) {
	return &entity.ScamperResponse{}, nil
}

func (stubUsecase) Status() *entity.SystemStatus {
	return &entity.SystemStatus{OrchestratorName: "Orchestrator", TotalAgents: 7}
}

func (stubUsecase) CheckAgents(context.Context) ([]entity.AgentHealth, error) {
	return nil, nil
}

type stubForms struct{}

func (stubForms) Submit(context.Context, string, string) form.View {
	return form.View{}
}

func TestSetupRouter(t *testing.T) {
	router := SetupRouter(
		scamperapi.NewHandler(stubUsecase{}, validator.New(), formatter.NewFactory()),
		webapi.NewHandler(stubForms{}),
		zap.NewNop(),
	)

	tests := []struct {
		method, target string
		wantStatus     int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/scamper/status", http.StatusOK},
		{http.MethodGet, "/docs/swagger.yaml", http.StatusOK},
		{http.MethodOptions, "/api/scamper", http.StatusNoContent},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set("Origin", "http://localhost:3000")
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
				req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Client")
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestSetupRouter_PreflightAllowsClientHeader(t *testing.T) {
	router := SetupRouter(
		scamperapi.NewHandler(stubUsecase{}, validator.New(), formatter.NewFactory()),
		webapi.NewHandler(stubForms{}),
		zap.NewNop(),
	)

	req := httptest.NewRequest(http.MethodOptions, "/api/scamper/export", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-Client")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers")), "x-client")
	assert.Contains(t, rec.Header().Get("Vary"), "Origin")
}
