package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name      string
		wantModel string
		config    Config
		wantErr   bool
	}{
		{name: "default provider is openai", config: Config{APIKey: "k"}, wantModel: openAIDefaultModel},
		{name: "anthropic", config: Config{Provider: "Anthropic", APIKey: "k"}, wantModel: anthropicDefaultModel},
		{name: "gemini", config: Config{Provider: "gemini", APIKey: "k"}, wantModel: geminiDefaultModel},
		{name: "unknown provider", config: Config{Provider: "llama", APIKey: "k"}, wantErr: true},
		{name: "missing key", config: Config{Provider: "openai"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(context.Background(), tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, client.Model())
		})
	}
}

func TestNewClient_RateLimit(t *testing.T) {
	client, err := NewClient(context.Background(), Config{APIKey: "k", RateLimit: 30})
	require.NoError(t, err)

	limited, ok := client.(*RateLimitedClient)
	require.True(t, ok)
	assert.Equal(t, openAIDefaultModel, limited.Model())
	require.NoError(t, limited.Close())
}
