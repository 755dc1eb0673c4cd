// Package api is the typed client for the studydesk REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/logger"
)

const defaultHTTPTimeout = 30 * time.Second

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the backend origin, e.g. "https://desk.example.com".
	// Paths are appended as "/api/...".
	BaseURL string
	// Token is sent as a bearer token when non-empty.
	Token string
	// HTTPClient is used for all requests. If nil, a client with a 30s timeout is used.
	HTTPClient *http.Client
	// Logger is used for request logging. If nil, the "API" component logger is used.
	Logger *slog.Logger
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.ConfigInvalid("api base URL is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.ConfigInvalid(fmt.Sprintf("invalid api base URL %q", cfg.BaseURL))
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	log := cfg.Logger
	if log == nil {
		log = logger.ComponentLogger("API")
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
		log:        log,
	}, nil
}

// errorBody is the shape of the backend's error responses.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// newRequest builds a request with auth and request-id headers.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do sends req and returns the response for any 2xx status. Non-2xx
// responses are drained and turned into typed errors.
func (c *Client) do(op errors.Op, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", "op", op, "method", req.Method, "path", req.URL.Path, "error", err)
		return nil, errors.RequestFailed(op, err)
	}
	c.log.Debug("request",
		"op", op,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"requestID", req.Header.Get("X-Request-ID"),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	var eb errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if len(data) > 0 {
		_ = json.Unmarshal(data, &eb)
	}
	msg := eb.Message
	if msg == "" {
		msg = eb.Error
	}
	return nil, errors.StatusError(op, resp.StatusCode, msg)
}

// doJSON sends an optional JSON body and decodes the response into out
// when out is non-nil.
func (c *Client) doJSON(ctx context.Context, op errors.Op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.E(op, errors.KindInvalid, "failed to encode request", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return errors.E(op, errors.KindInvalid, "failed to create request", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.do(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.E(op, errors.KindNetwork, "failed to parse response", err)
	}
	return nil
}

// escape makes an id safe to splice into a path segment.
func escape(id string) string {
	return url.PathEscape(id)
}
