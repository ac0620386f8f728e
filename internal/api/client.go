// Package api provides a REST client for the media publish backend.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
)

const (
	DefaultEndpoint = "http://127.0.0.1:5409"
	userAgent       = "mpp-cli/dev"

	// codeOK is the envelope code the backend uses for success.
	codeOK = 200
)

// Client is a publish backend API client.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint sets a custom API base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = strings.TrimRight(endpoint, "/") }
}

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger enables request/response logging at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new publish API client.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the base URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// envelope is the JSON wrapper around every backend response.
type envelope struct {
	Code int             `json:"code"`
	Msg  *string         `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// Get sends a GET request to path with the given query and returns the
// envelope's data field.
func (c *Client) Get(path string, query url.Values) (json.RawMessage, error) {
	target := c.endpoint + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.do(http.MethodGet, target, nil)
}

// Post sends body as JSON to path and returns the envelope's data field.
func (c *Client) Post(path string, body any) (json.RawMessage, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, exitcode.General("marshaling request", err)
	}
	return c.do(http.MethodPost, c.endpoint+path, bodyBytes)
}

func (c *Client) do(method, target string, body []byte) (json.RawMessage, error) {
	c.logger.Debug("request", zap.String("method", method), zap.String("url", target),
		zap.String("body", truncate(string(body), 2000)))

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return nil, exitcode.General("creating request", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, exitcode.General("API request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exitcode.General("reading response", err)
	}

	c.logger.Debug("response", zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("body", truncate(string(respBody), 2000)))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, exitcode.Auth("authentication failed; check your API token", nil)
	}

	var env envelope
	decodeErr := json.Unmarshal(respBody, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && env.message() != "" {
			return nil, exitcode.Generalf("API returned HTTP %d: %s", resp.StatusCode, env.message())
		}
		return nil, exitcode.Generalf("API returned HTTP %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	if decodeErr != nil {
		return nil, exitcode.General("parsing API response", decodeErr)
	}
	if env.Code != codeOK {
		return nil, &APIError{Code: env.Code, Message: env.message()}
	}
	return env.Data, nil
}

func (e envelope) message() string {
	if e.Msg == nil {
		return ""
	}
	return *e.Msg
}

// APIError is a response whose envelope code is not success.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned code %d", e.Code)
	}
	return fmt.Sprintf("backend returned code %d: %s", e.Code, e.Message)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
