package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ligasur/arena-console/pkg/config"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
)

type tokenKey struct{}

// WithToken stores the operator's bearer token for forwarding upstream.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom extracts the forwarded bearer token, if any.
func TokenFrom(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey{}).(string); ok {
		return v
	}
	return ""
}

// Client is the typed REST client for the upstream platform API. The
// platform owns all persistence and heavy computation; the console only
// reads snapshots and submits decisions through it.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient constructs a platform client.
func NewClient(cfg config.PlatformConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode platform payload")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build platform request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "platform unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read platform response")
	}

	if resp.StatusCode >= 400 {
		return c.asError(method, path, resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode platform response")
	}
	return nil
}

// asError surfaces the server-provided message when one is available.
func (c *Client) asError(method, path string, status int, raw []byte) error {
	message := ""
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Error != nil && env.Error.Message != "" {
			message = env.Error.Message
		} else if env.Detail != "" {
			message = env.Detail
		}
	}

	c.logger.Warn("platform request failed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
	)

	switch {
	case status == http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, message)
	case status == http.StatusUnauthorized:
		return appErrors.Clone(appErrors.ErrUnauthorized, message)
	case status == http.StatusForbidden:
		return appErrors.Clone(appErrors.ErrForbidden, message)
	case status == http.StatusConflict:
		return appErrors.Clone(appErrors.ErrConflict, message)
	case status >= 400 && status < 500:
		if message == "" {
			message = fmt.Sprintf("platform rejected the request (%d)", status)
		}
		return appErrors.New(appErrors.ErrValidation.Code, status, message)
	default:
		if message == "" {
			message = fmt.Sprintf("platform request failed (%d)", status)
		}
		return appErrors.Clone(appErrors.ErrUpstream, message)
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
