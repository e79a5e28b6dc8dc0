// Package client is the storefront's HTTP access layer. It owns the bearer
// token plumbing: every request carries the stored token, and any 401 clears
// the token and publishes a single unauthenticated signal instead of letting
// each caller handle session expiry on its own.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tai160903/viet-coffee-server/internal/auth"
)

const defaultTimeout = 10 * time.Second

// TokenSource stores the session token between requests.
type TokenSource interface {
	Token() string
	Set(token string)
	Clear()
}

// MemoryTokenSource keeps the token in memory; good enough for a single
// storefront session and for tests.
type MemoryTokenSource struct {
	token string
}

func (m *MemoryTokenSource) Token() string    { return m.token }
func (m *MemoryTokenSource) Set(token string) { m.token = token }
func (m *MemoryTokenSource) Clear()           { m.token = "" }

// APIError carries the status code and server message of a failed call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL   string
	http      *http.Client
	tokens    TokenSource
	broadcast *auth.UnauthenticatedBroadcast
}

func New(baseURL string, tokens TokenSource, broadcast *auth.UnauthenticatedBroadcast, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		tokens:    tokens,
		broadcast: broadcast,
	}
}

// Do sends one request and decodes the response body into out (when out is
// non-nil). A 401 clears the stored token and notifies the broadcast before
// returning the error.
func (c *Client) Do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("client: failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Clear()
		c.broadcast.Notify()

		log.Warn().Str("path", path).Msg("client: session rejected, token cleared")

		return &APIError{StatusCode: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: failed to decode response: %w", err)
	}

	return nil
}

func serverMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Error == "" {
		return "request failed"
	}

	return payload.Error
}
