package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/miy4x/shigezane-admin/internal/logging"
)

const DefaultTimeout = 30 * time.Second

// Request describes one backend call. Body is JSON-encoded when non-nil.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Transport performs a request and decodes the envelope's data into out.
// out may be nil when the caller does not need the payload.
type Transport interface {
	Do(ctx context.Context, req Request, out any) error
}

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	AccessToken() string
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

// HTTPClient is the JSON-over-HTTP Transport.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     logging.Logger
}

type Option func(*HTTPClient)

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// WithHTTPClient replaces the underlying *http.Client, e.g. in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) Do(ctx context.Context, r Request, out any) error {
	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if tok := c.tokens.AccessToken(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", r.Method, "path", r.Path, "error", err)
		return mapTransportError(r, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return mapTransportError(r, err)
	}
	c.logger.Debug(ctx, "request done", "method", r.Method, "path", r.Path,
		"status", resp.StatusCode, "elapsed", time.Since(started))

	return decodeEnvelope(r, resp.StatusCode, raw, out)
}

func decodeEnvelope(r Request, status int, raw []byte, out any) error {
	// 204 and other bodiless successes carry nothing to unwrap.
	if status < http.StatusBadRequest && len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if status >= http.StatusBadRequest || decodeErr != nil || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = genericMessage(status)
		}
		if status < http.StatusBadRequest && decodeErr != nil {
			msg = "malformed response"
		}
		return &RequestError{
			Kind:       ErrorResponse,
			Method:     r.Method,
			Path:       r.Path,
			StatusCode: status,
			Message:    msg,
			Err:        decodeErr,
		}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &RequestError{
			Kind:       ErrorResponse,
			Method:     r.Method,
			Path:       r.Path,
			StatusCode: status,
			Message:    "malformed response data",
			Err:        err,
		}
	}
	return nil
}

func genericMessage(status int) string {
	if text := http.StatusText(status); text != "" && status >= http.StatusBadRequest {
		return fmt.Sprintf("request failed: %d %s", status, text)
	}
	return "request failed"
}

func mapTransportError(r Request, err error) error {
	re := &RequestError{Kind: NoResponse, Method: r.Method, Path: r.Path, Err: err}

	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		re.Timeout = true
	}
	return re
}
