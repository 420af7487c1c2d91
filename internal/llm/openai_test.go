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

func TestNewOpenAIClient(t *testing.T) {
	tests := []struct {
		name      string
		wantModel string
		config    Config
		wantErr   bool
	}{
		{
			name:      "valid config",
			config:    Config{APIKey: "test-key"},
			wantModel: openAIDefaultModel,
		},
		{
			name:    "missing API key",
			config:  Config{APIKey: ""},
			wantErr: true,
		},
		{
			name:      "custom model and settings",
			config:    Config{APIKey: "test-key", Model: "gpt-4o", Temperature: 0.5, MaxTokens: 200},
			wantModel: "gpt-4o",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newOpenAIClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, client.Model())
		})
	}
}

func TestOpenAIClient_Generate(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Vendas cresceram.  "}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 30, "total_tokens": 150}
		}`))
	}))
	defer server.Close()

	client, err := newOpenAIClient(Config{APIKey: "test-key", BaseURL: server.URL + "/v1/"})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), Request{System: "sys", Prompt: "resuma", MaxTokens: 1000})
	require.NoError(t, err)
	assert.Equal(t, Response{Text: "Vendas cresceram.", InputTokens: 120, OutputTokens: 30}, resp)

	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.EqualValues(t, 1000, got["max_tokens"])
	messages, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "resuma", messages[1].(map[string]any)["content"])
}

func TestOpenAIClient_Errors(t *testing.T) {
	tests := []struct {
		wantIs     error
		name       string
		body       string
		wantCause  string
		statusCode int
	}{
		{name: "unauthorized", statusCode: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`, wantIs: ErrAuth, wantCause: "authentication"},
		{name: "forbidden", statusCode: http.StatusForbidden, body: `{}`, wantIs: ErrAuth, wantCause: "authentication"},
		{name: "rate limited", statusCode: http.StatusTooManyRequests, body: `{}`, wantIs: ErrRateLimited, wantCause: "rate limit"},
		{name: "server error", statusCode: http.StatusBadGateway, body: `upstream`, wantCause: "HTTP 502"},
		{name: "no choices", statusCode: http.StatusOK, body: `{"choices": []}`, wantIs: ErrEmptyOutput, wantCause: "empty response"},
		{name: "blank content", statusCode: http.StatusOK, body: `{"choices": [{"message": {"content": "   "}}]}`, wantIs: ErrEmptyOutput, wantCause: "empty response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := newOpenAIClient(Config{APIKey: "k", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = client.Generate(context.Background(), Request{Prompt: "p"})
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			assert.Equal(t, tt.wantCause, Cause(err))
		})
	}
}
