package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	openAIBaseURL      = "https://api.openai.com/v1"
	openAIDefaultModel = "gpt-4o-mini"
)

// openAIClient implements Client for the OpenAI chat completions API.
type openAIClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
}

// newOpenAIClient creates a new OpenAI API client.
func newOpenAIClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = openAIDefaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openAIBaseURL
	}

	return &openAIClient{
		apiKey:      cfg.APIKey,
		model:       model,
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  newHTTPClient(cfg.Timeout),
	}, nil
}

func (c *openAIClient) Model() string {
	return c.model
}

// Generate sends one chat completion request.
func (c *openAIClient) Generate(ctx context.Context, req Request) (Response, error) {
	messages := make([]map[string]string, 0, 2)
	if req.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.Prompt})

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	requestBody := map[string]any{
		"model":    c.model,
		"messages": messages,
	}
	if maxTokens > 0 {
		requestBody["max_tokens"] = maxTokens
	}
	if c.temperature > 0 {
		requestBody["temperature"] = c.temperature
	}

	var response openAIResponse
	err := postJSON(ctx, c.httpClient, "OpenAI", c.baseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + c.apiKey}, requestBody, &response)
	if err != nil {
		return Response{}, err
	}

	if len(response.Choices) == 0 {
		return Response{}, fmt.Errorf("no completion choices returned: %w", ErrEmptyOutput)
	}

	text := strings.TrimSpace(response.Choices[0].Message.Content)
	if text == "" {
		return Response{}, ErrEmptyOutput
	}

	return Response{
		Text:         text,
		InputTokens:  response.Usage.PromptTokens,
		OutputTokens: response.Usage.CompletionTokens,
	}, nil
}

// openAIResponse represents the OpenAI API response structure.
type openAIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
		Index        int    `json:"index"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}
