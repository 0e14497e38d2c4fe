package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrCancelled marks a request that was aborted through its context.
// Callers are expected to substitute a fallback value rather than treat it
// as a failure; Fetch does that automatically.
var ErrCancelled = errors.New("request cancelled")

// BackendError carries the human-readable message the backend placed in the
// error field of its response envelope. It is intended for direct display.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// Request describes a single backend call: method, path relative to the
// base URL, optional query parameters, and an optional body that is
// serialized inside the {"data": ...} envelope.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// envelope is the tagged union every backend response decodes into. A
// response carrying both fields is a backend contract violation; by
// convention the error takes precedence.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// Client wraps http.Client with base URL handling and the envelope policy
// shared by every operation: unwrap data, surface backend errors, and
// report cancellation as ErrCancelled instead of a transport failure.
type Client struct {
	baseURL string
	client  *http.Client
	headers http.Header
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, client *http.Client, logger *slog.Logger) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = "http://localhost:5001"
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if client == nil {
		client = &http.Client{Timeout: timeoutOrDefault(timeout)}
	} else if timeout > 0 {
		client.Timeout = timeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	return &Client{baseURL: trimmed, client: client, headers: headers, logger: logger}
}

// Do executes the described request and returns the raw data field of the
// response envelope.
//
// A 204 response resolves to nil without reading the body. A response whose
// envelope carries a non-empty error resolves to *BackendError regardless
// of HTTP status. A request aborted through ctx resolves to ErrCancelled.
// Every other failure is logged with its diagnostics and returned as-is.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		c.logger.Error("api request build failed", slog.String("method", req.Method), slog.String("path", req.Path), slog.Any("error", err))
		return nil, err
	}

	c.logger.Debug("api request", slog.String("method", httpReq.Method), slog.String("url", httpReq.URL.String()))

	res, err := c.client.Do(httpReq)
	if err != nil {
		if cancelled(ctx, err) {
			c.logger.Debug("api request cancelled", slog.String("method", httpReq.Method), slog.String("url", httpReq.URL.String()))
			return nil, ErrCancelled
		}
		c.logger.Error("api request failed", slog.String("method", httpReq.Method), slog.String("url", httpReq.URL.String()), slog.Any("error", err))
		return nil, err
	}
	defer res.Body.Close()

	c.logger.Debug("api response", slog.Int("status", res.StatusCode), slog.String("url", httpReq.URL.String()))

	if res.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		if cancelled(ctx, err) {
			c.logger.Debug("api response read cancelled", slog.String("url", httpReq.URL.String()))
			return nil, ErrCancelled
		}
		c.logger.Error("api response decode failed", slog.Int("status", res.StatusCode), slog.String("url", httpReq.URL.String()), slog.Any("error", err))
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if strings.TrimSpace(env.Error) != "" {
		return nil, &BackendError{Message: env.Error}
	}

	return env.Data, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(envelopeBody{Data: req.Body})
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}
	if len(req.Query) > 0 {
		httpReq.URL.RawQuery = req.Query.Encode()
	}
	for key, values := range c.headers {
		for _, value := range values {
			httpReq.Header.Set(key, value)
		}
	}
	return httpReq, nil
}

type envelopeBody struct {
	Data any `json:"data"`
}

// cancelled reports whether the failure was a deliberate abort. Deadline
// expiry is not cancellation: timeouts surface as regular errors.
func cancelled(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled)
}

// Fetch runs the request through c and unmarshals the data field into T.
// Cancellation resolves to the supplied fallback with a nil error, keeping
// aborted requests invisible to rendering code.
func Fetch[T any](ctx context.Context, c *Client, req Request, fallback T) (T, error) {
	var zero T

	raw, err := c.Do(ctx, req)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return fallback, nil
		}
		return zero, err
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return zero, nil
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		c.logger.Error("api data decode failed", slog.String("path", req.Path), slog.Any("error", err))
		return zero, fmt.Errorf("decode data: %w", err)
	}
	return out, nil
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 10 * time.Second
	}
	return value
}
