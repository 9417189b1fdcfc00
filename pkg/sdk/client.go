package sdk

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

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds a single backend call when the caller's context has no deadline.
const DefaultTimeout = 10 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Client provides typed access to the booking backend's REST API.
// Every method decodes the {success, data, message} envelope exactly once.
type Client struct {
	http           *http.Client
	baseURL        string
	authenticated  bool
	timeout        time.Duration
	logger         *slog.Logger
	onUnauthorized func()
}

// ClientOptions configures SDK client construction.
type ClientOptions struct {
	HTTPClient     *http.Client
	TokenSource    oauth2.TokenSource
	Timeout        time.Duration
	Logger         *slog.Logger
	OnUnauthorized func()
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithHTTPClient overrides the base HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *ClientOptions) {
		opts.HTTPClient = client
	}
}

// WithTokenSource attaches a bearer token to every request.
func WithTokenSource(source oauth2.TokenSource) ClientOption {
	return func(opts *ClientOptions) {
		opts.TokenSource = source
	}
}

// WithToken is WithTokenSource for a fixed bearer token.
func WithToken(token string) ClientOption {
	return WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
}

// WithTimeout sets the per-call timeout applied when the context has no deadline.
// Zero disables it.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(opts *ClientOptions) {
		opts.Timeout = timeout
	}
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(opts *ClientOptions) {
		opts.Logger = logger
	}
}

// WithUnauthorizedHandler registers a callback run when the backend answers
// 401 to a request made with a token.
func WithUnauthorizedHandler(fn func()) ClientOption {
	return func(opts *ClientOptions) {
		opts.OnUnauthorized = fn
	}
}

// NewClient creates a client for the API rooted at baseURL (for example
// "http://localhost:8080/api").
func NewClient(baseURL string, optFns ...ClientOption) *Client {
	opts := ClientOptions{Timeout: DefaultTimeout}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	httpClient := opts.HTTPClient
	if opts.TokenSource != nil {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, opts.HTTPClient)
		httpClient = oauth2.NewClient(ctx, opts.TokenSource)
	}

	return &Client{
		http:           httpClient,
		baseURL:        strings.TrimRight(baseURL, "/"),
		authenticated:  opts.TokenSource != nil,
		timeout:        opts.Timeout,
		logger:         opts.Logger,
		onUnauthorized: opts.OnUnauthorized,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Authenticated reports whether requests carry a bearer token.
func (c *Client) Authenticated() bool {
	return c.authenticated
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
}

type response struct {
	status int
	body   []byte
}

func (c *Client) send(ctx context.Context, req request) (*response, error) {
	endpoint, err := url.JoinPath(c.baseURL, req.path)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var payload io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", req.path, err)
		}
		payload = bytes.NewReader(data)
	}

	ctx, cancel := ensureTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", req.path, err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Debug("backend request failed",
			"method", req.method, "path", req.path, "request_id", requestID, "error", err)
		return nil, &NetworkError{Op: req.method, URL: req.path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Op: req.method, URL: req.path, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("backend request",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started))

	return &response{status: resp.StatusCode, body: body}, nil
}

// call performs req and converts the envelope into T or an error.
func call[T any](ctx context.Context, c *Client, req request) (T, error) {
	var zero T

	resp, err := c.send(ctx, req)
	if err != nil {
		return zero, err
	}

	if resp.status == http.StatusUnauthorized && c.authenticated {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return zero, ErrSessionExpired
	}

	res, err := decodeResult[T](resp.body)
	if err != nil {
		if resp.status >= http.StatusBadRequest {
			return zero, &APIError{StatusCode: resp.status}
		}
		return zero, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	if !res.IsOk() {
		return zero, &APIError{StatusCode: resp.status, Message: res.Message()}
	}
	if resp.status >= http.StatusBadRequest {
		return zero, &APIError{StatusCode: resp.status, Message: res.Message()}
	}
	return res.Data(), nil
}

// discard is the payload type for endpoints whose data member is ignored.
type discard = json.RawMessage

func ensureTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, ok := ctx.Deadline(); ok || timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, timeout)
}

func isAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
