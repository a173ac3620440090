package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/scamper-backend/internal/entity"
	pkghttp "github.com/futig/scamper-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ScamperEndpoint is the API path the form posts to
const ScamperEndpoint = "/api/scamper"

// Client posts problems to the SCAMPER API. It sends exactly one request per
// call and never retries.
type Client struct {
	connector *pkghttp.Connector
}

func NewClient(connector *pkghttp.Connector) *Client {
	return &Client{connector: connector}
}

// Submit sends the request and decodes the answer. Every failure is an *Error
// of kind KindRequest carrying the message to display.
func (c *Client) Submit(ctx context.Context, req entity.ScamperRequest) (*Payload, error) {
	var body json.RawMessage
	err := c.connector.DoRequest(ctx, http.MethodPost, ScamperEndpoint, req, &body)
	if err != nil {
		return nil, classify(ctx, err)
	}

	if len(body) == 0 {
		return nil, requestError(entity.MsgFormConnection, errors.New("empty response body"))
	}

	payload, err := DecodePayload(body)
	if err != nil {
		ctxzap.Warn(ctx, "scamper response is not valid JSON", zap.Error(err))
		return nil, requestError(entity.MsgFormConnection, err)
	}
	if !payload.HasResults {
		ctxzap.Warn(ctx, "scamper response has no results array")
		return nil, requestError(entity.MsgFormNoValidResults, entity.ErrNoValidResults)
	}

	return payload, nil
}

func classify(ctx context.Context, err error) *Error {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		msg := httpErr.JSONField("error")
		if msg == "" {
			msg = fmt.Sprintf(entity.MsgFormServerStatus, httpErr.StatusCode)
		}
		ctxzap.Warn(ctx, "scamper API returned an error status",
			zap.Int("status", httpErr.StatusCode),
			zap.String("message", msg),
		)
		return requestError(msg, err)
	}

	ctxzap.Error(ctx, "scamper API request failed", zap.Error(err))
	return requestError(entity.MsgFormConnection, err)
}
