package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/subha54820/Scam-Shield/internal/model"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "ScamShield-Go"

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 10 << 20
)

// Sessions provides the current session. The client calls Get once per
// request and never writes back.
type Sessions interface {
	Get(ctx context.Context) (model.Session, bool)
}

// authMode says whether an endpoint sends the session token.
type authMode int

const (
	// authNone never sends a token.
	authNone authMode = iota
	// authOptional sends the token when a session exists.
	authOptional
	// authRequired fails with ErrLoginRequired when there is no session.
	authRequired
)

// Client calls the ScamShield backend.
type Client struct {
	baseURL    string
	sessions   Sessions
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger. Requests are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the backend at baseURL.
// A blank baseURL falls back to DefaultBaseURL. sessions may be nil, in which
// case the client behaves as if nobody is signed in.
func NewClient(baseURL string, sessions Sessions, opts ...Option) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		sessions:   sessions,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  DefaultUserAgent,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Copy so the caller's client keeps its own transport.
	hc := *c.httpClient
	hc.Transport = &headerInjectingTransport{
		base:      hc.Transport,
		userAgent: c.userAgent,
		logger:    c.logger,
	}
	c.httpClient = &hc

	return c
}

// BaseURL returns the backend origin without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns the full URL of an API path: <base>/api<path>.
func (c *Client) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + "/api" + path
}

// request describes one API call.
type request struct {
	method   string
	path     string
	query    string
	auth     authMode
	fallback string

	// jsonBody is encoded as the request body when not nil.
	jsonBody any

	// body and contentType are used for non-JSON bodies.
	body        io.Reader
	contentType string

	// expectJSON rejects responses whose Content-Type is not JSON.
	expectJSON bool
}

// errorBody is the failure shape the backend uses.
type errorBody struct {
	Error any `json:"error"`
}

// do performs req and decodes a successful response into out (which may be nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	var token string
	if req.auth != authNone {
		sess, ok := c.session(ctx)
		if ok {
			token = sess.Token
		} else if req.auth == authRequired {
			return ErrLoginRequired
		}
	}

	body := req.body
	contentType := req.contentType
	if req.jsonBody != nil {
		data, err := json.Marshal(req.jsonBody)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	target := c.URL(req.path)
	if req.query != "" {
		target += "?" + req.query
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("request failed", "method", req.method, "path", req.path, "error", err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &TransportError{Err: err}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	if req.expectJSON && !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return c.nonJSONError(resp.StatusCode, ok, data)
	}

	if !ok {
		return newStatusError(resp.StatusCode, serverMessage(data), req.fallback)
	}

	if out == nil || !json.Valid(data) {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Keep whatever decoded; the records are pass-through.
		c.logger.Debug("response did not match expected shape", "path", req.path, "error", err)
	}
	return nil
}

// session asks the provider for the current session.
func (c *Client) session(ctx context.Context) (model.Session, bool) {
	if c.sessions == nil {
		return model.Session{}, false
	}
	sess, ok := c.sessions.Get(ctx)
	if !ok || sess.Token == "" {
		return model.Session{}, false
	}
	return sess, true
}

// serverMessage extracts a non-empty string "error" field, or "".
func serverMessage(data []byte) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil {
		return ""
	}
	if s, ok := eb.Error.(string); ok {
		return s
	}
	return ""
}

// nonJSONError classifies a response that should have been JSON.
func (c *Client) nonJSONError(status int, ok bool, data []byte) error {
	if bytes.HasPrefix(data, []byte("<")) {
		if title := pageTitle(data); title != "" {
			c.logger.Debug("server returned an HTML page", "status", status, "title", title)
		}
		return ErrErrorPage
	}
	if ok {
		return ErrInvalidResponse
	}
	return requestFailed(status)
}

// pageQuery builds the page/limit query, replacing values below 1 with the defaults.
func pageQuery(page, limit int) string {
	page, limit = model.NormalizePage(page, limit)
	return fmt.Sprintf("page=%d&limit=%d", page, limit)
}
