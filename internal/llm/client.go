package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client generates text from a prompt.
type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
	// Model returns the model identifier sent with every request.
	Model() string
}

// Request is one text-generation call.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int
}

// Response is the generated text and the tokens it consumed.
type Response struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Config selects and configures a provider.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	MaxTokens   int
	RateLimit   int // requests per minute; zero disables throttling
	Temperature float64
}

// DefaultTimeout bounds every HTTP call to a provider.
const DefaultTimeout = 60 * time.Second

// Provider failure classes. *APIError unwraps to one of these when the status code identifies it.
var (
	ErrAuth        = errors.New("authentication failed")
	ErrRateLimited = errors.New("rate limited")
	ErrEmptyOutput = errors.New("empty completion")
)

// APIError is a non-success response from a provider.
type APIError struct {
	Provider   string
	Body       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// Unwrap maps the status code onto ErrAuth or ErrRateLimited.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}

// Cause names the failure class of err for user-facing messages.
func Cause(err error) string {
	var apiErr *APIError
	switch {
	case errors.Is(err, ErrAuth):
		return "authentication"
	case errors.Is(err, ErrRateLimited):
		return "rate limit"
	case errors.Is(err, ErrEmptyOutput):
		return "empty response"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("HTTP %d", apiErr.StatusCode)
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	return "request failed"
}

// Close releases resources held by clients that own any, such as a rate limiter.
func Close(c Client) error {
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
