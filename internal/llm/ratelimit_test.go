package llm

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient records calls and returns a fixed response.
type stubClient struct {
	err   error
	resp  Response
	calls atomic.Int32
}

func (s *stubClient) Generate(context.Context, Request) (Response, error) {
	s.calls.Add(1)
	return s.resp, s.err
}

func (s *stubClient) Model() string { return "stub-model" }

func TestRateLimiter(t *testing.T) {
	t.Run("context cancellation", func(t *testing.T) {
		rl := newRateLimiter(1)
		defer rl.close()

		require.NoError(t, rl.wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() {
			done <- rl.wait(ctx)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		err := <-done
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, err.Error(), "rate limiter canceled")
	})

	t.Run("tryAcquire", func(t *testing.T) {
		rl := newRateLimiter(5)
		defer rl.close()

		for i := 0; i < 5; i++ {
			assert.True(t, rl.tryAcquire(), "Expected tryAcquire to succeed for attempt %d", i+1)
		}
		assert.False(t, rl.tryAcquire(), "Expected tryAcquire to fail after tokens exhausted")
	})

	t.Run("default rate limit", func(t *testing.T) {
		rl := newRateLimiter(0)
		defer rl.close()

		for i := 0; i < 50; i++ {
			require.True(t, rl.tryAcquire(), "Expected default rate limit to allow many requests")
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		rl := newRateLimiter(100)
		defer rl.close()
		ctx := context.Background()

		var acquired atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					if err := rl.wait(ctx); err == nil {
						acquired.Add(1)
					}
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(100), acquired.Load())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		rl := newRateLimiter(10)
		rl.close()
		rl.close()
	})
}

func TestRateLimitedClient(t *testing.T) {
	stub := &stubClient{resp: Response{Text: "ok"}}
	client := NewRateLimitedClient(stub, 2)
	defer func() { _ = client.Close() }()

	assert.Equal(t, "stub-model", client.Model())

	for i := 0; i < 2; i++ {
		resp, err := client.Generate(context.Background(), Request{Prompt: "p"})
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Text)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Generate(ctx, Request{Prompt: "p"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(2), stub.calls.Load())
}

func TestClose(t *testing.T) {
	t.Run("stops the limiter of a rate-limited client", func(t *testing.T) {
		client := NewRateLimitedClient(&stubClient{}, 10)

		require.NoError(t, Close(client))

		select {
		case <-client.limiter.stopCh:
		default:
			t.Fatal("limiter still running after Close")
		}
		require.NoError(t, Close(client))
	})

	t.Run("plain client is a no-op", func(t *testing.T) {
		assert.NoError(t, Close(&stubClient{}))
	})
}
