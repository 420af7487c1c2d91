package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// rateLimiter implements a simple token bucket rate limiter.
type rateLimiter struct {
	stopCh    chan struct{}
	tokens    int
	capacity  int
	mu        sync.Mutex
	closeOnce sync.Once
}

// newRateLimiter creates a new rate limiter with the specified requests per minute.
func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}

	rl := &rateLimiter{
		tokens:   requestsPerMinute,
		capacity: requestsPerMinute,
		stopCh:   make(chan struct{}),
	}
	go rl.refill(time.Minute / time.Duration(requestsPerMinute))
	return rl
}

// wait blocks until a token is available or the context is canceled.
func (rl *rateLimiter) wait(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if rl.tryAcquire() {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("rate limiter canceled: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// tryAcquire attempts to acquire a token without blocking.
func (rl *rateLimiter) tryAcquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}
	return false
}

func (rl *rateLimiter) refill(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			if rl.tokens < rl.capacity {
				rl.tokens++
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *rateLimiter) close() {
	rl.closeOnce.Do(func() { close(rl.stopCh) })
}

// RateLimitedClient throttles a Client to a fixed number of requests per minute
// within this process.
type RateLimitedClient struct {
	next    Client
	limiter *rateLimiter
}

// NewRateLimitedClient wraps next. Call Close to stop the refill goroutine.
func NewRateLimitedClient(next Client, requestsPerMinute int) *RateLimitedClient {
	return &RateLimitedClient{
		next:    next,
		limiter: newRateLimiter(requestsPerMinute),
	}
}

// Generate waits for a token, then delegates.
func (c *RateLimitedClient) Generate(ctx context.Context, req Request) (Response, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return Response{}, err
	}
	return c.next.Generate(ctx, req)
}

// Model returns the wrapped client's model.
func (c *RateLimitedClient) Model() string {
	return c.next.Model()
}

// Close stops the limiter.
func (c *RateLimitedClient) Close() error {
	c.limiter.close()
	return nil
}
