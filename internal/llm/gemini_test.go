package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"), r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Boa semana."}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 40, "candidatesTokenCount": 6, "totalTokenCount": 46}
		}`))
	}))
	defer server.Close()

	client, err := newGeminiClient(context.Background(), Config{APIKey: "k", BaseURL: server.URL, Model: "gemini-test"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-test", client.Model())

	resp, err := client.Generate(context.Background(), Request{Prompt: "resuma", MaxTokens: 100})
	require.NoError(t, err)
	assert.Equal(t, Response{Text: "Boa semana.", InputTokens: 40, OutputTokens: 6}, resp)
}

func TestGeminiClient_MapsAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	client, err := newGeminiClient(context.Background(), Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, "rate limit", Cause(err))
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := newGeminiClient(context.Background(), Config{})
	assert.Error(t, err)
}
