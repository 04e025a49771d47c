// Package api is the HTTP/JSON client for the authentication service, the
// word store and the quiz server.
package api

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

	"golang.org/x/oauth2"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client talks to the vocabulary backend. A Client is immutable; use
// WithAccessToken to derive an authenticated copy.
type Client struct {
	baseURL string
	base    *http.Client
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client (useful for tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.base = hc }
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the structured logger for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithToken attaches a bearer access token to every request.
func WithToken(access string) Option {
	return func(c *Client) { c.token = access }
}

// New creates a Client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		base:    http.DefaultClient,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = c.buildHTTPClient()
	return c
}

// WithAccessToken returns a copy of c that authenticates as access.
func (c *Client) WithAccessToken(access string) *Client {
	cp := *c
	cp.token = access
	cp.http = cp.buildHTTPClient()
	return &cp
}

// Authenticated reports whether the client carries an access token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) buildHTTPClient() *http.Client {
	if c.token == "" {
		return &http.Client{Transport: c.base.Transport, Timeout: c.timeout}
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token, TokenType: "Bearer"})
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.base)
	hc := oauth2.NewClient(ctx, src)
	hc.Timeout = c.timeout
	return hc
}

// do issues one request and decodes a 2xx JSON body into out (when non-nil).
// schema, when non-nil, is checked against the body before decoding.
func (c *Client) do(ctx context.Context, op Op, method, path string, query url.Values, body, out any, schema *Schema) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("%s: %w", op, err)
		}
		c.logger.Warn("request failed", "op", string(op), "method", method, "path", path, "error", err)
		return &ConnectivityError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &ConnectivityError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("request",
		"op", string(op),
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rerr := &RequestError{Op: op, Status: resp.StatusCode, Message: extractMessage(raw)}
		c.logger.Warn("request rejected", "op", string(op), "status", resp.StatusCode, "message", rerr.Message)
		return rerr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := validateBody(schema, raw); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}
	return nil
}
