package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/chirpterm/domain"
	"github.com/CrestNiraj12/chirpterm/infra/auth"
)

const maxErrorBody = 512

// Error is a non-2xx answer from the API.
type Error struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Client is a thin HTTP wrapper for the chirp REST API.
// It handles base URL construction, optional bearer token injection and
// request ids.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
	log           *zap.Logger
}

// NewClient creates an API client. tp may be nil for anonymous access; a
// zero timeout leaves requests bounded only by their context.
func NewClient(baseURL string, tp auth.TokenProvider, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:       baseURL,
		tokenProvider: tp,
		http:          &http.Client{Timeout: timeout},
		log:           log,
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// PostJSON performs a POST request with v encoded as the JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, v any) ([]byte, error) {
	var body io.Reader
	if v != nil {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	return c.do(ctx, http.MethodPost, path, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", requestID))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Method: method, Path: path, Status: resp.StatusCode, Body: truncate(string(data), maxErrorBody)}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, apiErr)
		case http.StatusNotFound:
			return nil, fmt.Errorf("%w: %w", domain.ErrNotFound, apiErr)
		}
		return nil, apiErr
	}

	return data, nil
}

// token returns the stored bearer token or "" for anonymous requests.
func (c *Client) token() string {
	if c.tokenProvider == nil {
		return ""
	}
	token, err := c.tokenProvider.AccessToken()
	if err != nil {
		if !errors.Is(err, auth.ErrNoToken) {
			c.log.Debug("no usable token", zap.Error(err))
		}
		return ""
	}
	return token
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
