package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futig/scamper-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewAPIConnector_SendsClientHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ClientCLI, r.Header.Get("X-Client"))
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := config.HTTPClientConfig{
		RequestTimeout:        time.Second,
		ConnTimeout:           time.Second,
		KeepAlive:             time.Second,
		IdleConnTimeout:       time.Second,
		ResponseHeaderTimeout: time.Second,
		Token:                 "tkn",
		Url:                   srv.URL,
	}

	c := NewAPIConnector(cfg, ClientCLI, zap.NewNop())
	require.NoError(t, c.DoRequest(context.Background(), http.MethodGet, "/health", nil, nil))
}
