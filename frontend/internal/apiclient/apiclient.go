package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/forumstate/shared/api"
	internal_errors "github.com/itchan-dev/forumstate/shared/errors"
	"github.com/itchan-dev/forumstate/shared/middleware/metrics"
	"golang.org/x/time/rate"
)

// Sanitizer cleans HTML received from the backend.
type Sanitizer interface {
	Sanitize(html string) string
}

// APIClient struct handles all communication with the backend API.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client

	limiter   *rate.Limiter
	sanitizer Sanitizer
	transport http.RoundTripper

	mu    sync.RWMutex
	token string
}

type Option func(*APIClient)

func WithTimeout(d time.Duration) Option {
	return func(c *APIClient) { c.HttpClient.Timeout = d }
}

// WithRateLimit caps outgoing requests at rps with the given burst. rps <= 0 disables the cap.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *APIClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithSanitizer(s Sanitizer) Option {
	return func(c *APIClient) { c.sanitizer = s }
}

func WithTransport(rt http.RoundTripper) Option {
	return func(c *APIClient) { c.transport = rt }
}

// New creates a new client for interacting with the backend.
func New(baseURL string, opts ...Option) *APIClient {
	c := &APIClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HttpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.HttpClient.Transport = metrics.Transport(c.transport)
	return c
}

// PutAccessToken sets the bearer token attached to every following request.
// An empty token logs the client out.
func (c *APIClient) PutAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *APIClient) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do is the single, unified helper for making API requests.
func (c *APIClient) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("request not sent: %w", err)
		}
	}

	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.accessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}

// call sends one request and unwraps the response envelope into T.
// Non-success responses become *errors.ErrorWithStatusCode carrying the backend message.
func call[T any](ctx context.Context, c *APIClient, method, path string, payload any) (T, error) {
	var zero T
	resp, err := c.do(ctx, method, path, payload)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	var env api.Envelope[T]
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode >= http.StatusBadRequest || (decodeErr == nil && env.Status != "" && env.Status != api.StatusSuccess) {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = fmt.Sprintf("backend returned status %d", resp.StatusCode)
		}
		return zero, &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: resp.StatusCode}
	}
	if decodeErr != nil {
		return zero, fmt.Errorf("cannot decode backend response: %w", decodeErr)
	}
	return env.Data, nil
}

func (c *APIClient) sanitize(html string) string {
	if c.sanitizer == nil {
		return html
	}
	return c.sanitizer.Sanitize(html)
}
