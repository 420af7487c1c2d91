// Package llm provides text-generation clients for the sales summary.
// It supports OpenAI, Anthropic and Gemini behind one Client interface and
// maps provider failures onto ErrAuth, ErrRateLimited and *APIError.
package llm
