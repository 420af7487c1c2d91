package model

import "time"

// TokenUsage counts the tokens consumed by one text-generation call.
type TokenUsage struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

// AnalysisCacheEntry stores a generated summary keyed by the hash of the data it describes.
type AnalysisCacheEntry struct {
	CreatedAt  time.Time
	ID         string
	OwnerID    string
	DataHash   string
	PromptText string
	ResultText string
	Model      string
	TokenUsage TokenUsage
}
