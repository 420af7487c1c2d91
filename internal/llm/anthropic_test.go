package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnthropicClient(t *testing.T) {
	_, err := newAnthropicClient(Config{})
	require.Error(t, err)

	client, err := newAnthropicClient(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, anthropicDefaultModel, client.Model())
}

func TestAnthropicClient_Generate(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"content": [{"type": "text", "text": "Resumo "}, {"type": "text", "text": "pronto."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 80, "output_tokens": 12}
		}`))
	}))
	defer server.Close()

	client, err := newAnthropicClient(Config{APIKey: "test-key", BaseURL: server.URL, Model: "claude-test"})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), Request{System: "sys", Prompt: "resuma"})
	require.NoError(t, err)
	assert.Equal(t, Response{Text: "Resumo pronto.", InputTokens: 80, OutputTokens: 12}, resp)

	assert.Equal(t, "claude-test", got["model"])
	assert.Equal(t, "sys", got["system"])
	assert.EqualValues(t, anthropicFallbackMaxTokens, got["max_tokens"])
}

func TestAnthropicClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	client, err := newAnthropicClient(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), Request{Prompt: "p"})
	assert.ErrorIs(t, err, ErrRateLimited)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Anthropic", apiErr.Provider)
	assert.Contains(t, apiErr.Body, "rate_limit_error")
}
