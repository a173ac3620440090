package common

import (
	"github.com/futig/scamper-backend/internal/config"
	pkgHTTP "github.com/futig/scamper-backend/pkg/http"
	"go.uber.org/zap"
)

// Client names sent in the X-Client header so API logs tell the surfaces apart
const (
	ClientWebForm = "scamper-web"
	ClientCLI     = "scamper-cli"
)

// NewAPIConnector builds a connector to the SCAMPER API for the named client
func NewAPIConnector(cfg config.HTTPClientConfig, client string, logger *zap.Logger) *pkgHTTP.Connector {
	return pkgHTTP.NewConnector(
		&pkgHTTP.ConnectorConfig{
			Logger:  logger.With(zap.String("client", client)),
			BaseURL: cfg.Url,
		},
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithHeaders(map[string]string{"X-Client": client}, client != ""),
		pkgHTTP.WithAuthToken(cfg.Token),
		pkgHTTP.WithRequestLogging(),
	)
}
