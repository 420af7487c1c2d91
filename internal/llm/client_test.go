package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Unwrap(t *testing.T) {
	tests := []struct {
		want   error
		status int
	}{
		{status: http.StatusUnauthorized, want: ErrAuth},
		{status: http.StatusForbidden, want: ErrAuth},
		{status: http.StatusTooManyRequests, want: ErrRateLimited},
		{status: http.StatusInternalServerError, want: nil},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &APIError{Provider: "OpenAI", StatusCode: tt.status, Body: "x"})
			if tt.want == nil {
				assert.False(t, errors.Is(err, ErrAuth))
				assert.False(t, errors.Is(err, ErrRateLimited))
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCause(t *testing.T) {
	assert.Equal(t, "timeout", Cause(fmt.Errorf("call: %w", context.DeadlineExceeded)))
	assert.Equal(t, "request failed", Cause(errors.New("connection refused")))
	assert.Equal(t, "HTTP 500", Cause(&APIError{StatusCode: 500}))
}
