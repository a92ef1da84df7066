package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/Adda-Baaj/login-apitest/internal/logger"
)

// RequestIDHeader carries a per-call correlation id.
const RequestIDHeader = "X-Request-ID"

// Options tunes the underlying session.
type Options struct {
	Timeout   time.Duration
	Transport http.RoundTripper
	Logger    logger.Logger
}

// APIClient posts to endpoints under a fixed base URL over one reusable resty session.
type APIClient struct {
	baseURL string
	client  *resty.Client
	log     logger.Logger
}

// NewAPIClient creates a client. Trailing slashes are stripped from baseURL.
func NewAPIClient(baseURL string, opts Options) (*APIClient, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, errors.New("base url must not be empty")
	}

	log := logger.Ensure(opts.Logger)
	return &APIClient{
		baseURL: base,
		client:  newRestyBaseClient(opts, log),
		log:     log,
	}, nil
}

// newRestyBaseClient creates the shared resty.Client. Retries stay disabled.
func newRestyBaseClient(opts Options, log logger.Logger) *resty.Client {
	c := resty.New()
	c.SetLogger(log)
	c.SetRetryCount(0)
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.Transport != nil {
		c.SetTransport(opts.Transport)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *APIClient) BaseURL() string { return c.baseURL }

// URL joins the base URL and endpoint with exactly one slash.
func (c *APIClient) URL(endpoint string) string {
	return c.baseURL + "/" + strings.Trim(endpoint, "/")
}

// Post sends body to endpoint. Maps and structs are sent as JSON, []byte and
// string are sent verbatim. Transport failures are logged and returned; the
// response is returned as-is for any status code.
func (c *APIClient) Post(ctx context.Context, endpoint string, body any) (*Response, error) {
	target := c.URL(endpoint)
	reqID := uuid.NewString()

	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(RequestIDHeader, reqID)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Post(target)
	if err != nil {
		c.log.ErrorObj("request failed", "request_error", map[string]any{
			"method":     http.MethodPost,
			"url":        target,
			"request_id": reqID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("post %s: %w", target, err)
	}

	c.log.DebugObj("request completed", "request", map[string]any{
		"url":         target,
		"request_id":  reqID,
		"status_code": resp.StatusCode(),
		"elapsed_ms":  resp.Time().Milliseconds(),
	})
	return newResponse(resp.StatusCode(), resp.Header(), resp.Body()), nil
}
