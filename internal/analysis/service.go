package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/Veraticus/bizmetrics/internal/common"
	"github.com/Veraticus/bizmetrics/internal/llm"
	"github.com/Veraticus/bizmetrics/internal/model"
)

// DefaultMaxTokens bounds the length of a generated summary.
const DefaultMaxTokens = 1000

// Request selects the range to analyze.
type Request struct {
	OwnerID      string
	DateFrom     string
	DateTo       string
	ForceRefresh bool
}

// Result is a generated or cached analysis.
type Result struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Text        string           `json:"text"`
	Model       string           `json:"model"`
	DataHash    string           `json:"data_hash"`
	TokenUsage  model.TokenUsage `json:"token_usage"`
	Cached      bool             `json:"cached"`
}

// Service generates analyses and serves repeated requests for unchanged data from the cache.
type Service struct {
	deps      Deps
	prompts   *PromptBuilder
	logger    *slog.Logger
	maxTokens int
	topN      int
}

// Option configures a Service.
type Option func(*Service)

// WithMaxTokens overrides DefaultMaxTokens.
func WithMaxTokens(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

// WithLogger sets the logger used for analysis events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates an analysis service.
func NewService(deps Deps, opts ...Option) (*Service, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}

	prompts, err := NewPromptBuilder()
	if err != nil {
		return nil, err
	}

	s := &Service{
		deps:      deps,
		prompts:   prompts,
		maxTokens: DefaultMaxTokens,
		topN:      analytics.DefaultTopProducts,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = common.LoggerOrDefault(s.logger)
	return s, nil
}

// Analyze returns a summary of the requested range. Unless ForceRefresh is set, a previous
// analysis of identical data is returned without calling the model. A failed or empty
// generation is a KindExternalService error and nothing is cached.
func (s *Service) Analyze(ctx context.Context, req Request) (*Result, error) {
	r := analytics.Range{OwnerID: req.OwnerID, DateFrom: req.DateFrom, DateTo: req.DateTo}

	summary, err := s.deps.Summaries.Summary(ctx, r, s.topN)
	if err != nil {
		return nil, err
	}

	hash, err := HashSummary(summary)
	if err != nil {
		return nil, err
	}

	if !req.ForceRefresh {
		entry, err := s.deps.Store.GetLatestAnalysis(ctx, req.OwnerID, hash)
		if err != nil {
			return nil, fmt.Errorf("failed to look up cached analysis: %w", err)
		}
		if entry != nil {
			s.logger.Debug("Serving cached analysis", "owner_id", req.OwnerID, "hash", hash)
			return resultFromEntry(entry, true), nil
		}
	}

	prompt, err := s.prompts.Build(summary)
	if err != nil {
		return nil, err
	}

	resp, err := s.deps.LLMClient.Generate(ctx, llm.Request{
		System:    systemPrompt,
		Prompt:    prompt,
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		s.logger.Warn("Analysis generation failed", "owner_id", req.OwnerID, "cause", llm.Cause(err), "error", err)
		return nil, common.ExternalService(fmt.Sprintf("analysis generation failed: %s", llm.Cause(err)), err)
	}
	if resp.Text == "" {
		return nil, common.ExternalService("analysis generation failed: empty response", llm.ErrEmptyOutput)
	}

	entry := &model.AnalysisCacheEntry{
		OwnerID:    req.OwnerID,
		DataHash:   hash,
		PromptText: prompt,
		ResultText: resp.Text,
		Model:      s.deps.LLMClient.Model(),
		TokenUsage: model.TokenUsage{Input: resp.InputTokens, Output: resp.OutputTokens},
	}
	if err := s.deps.Store.SaveAnalysis(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	s.logger.Info("Generated analysis",
		"owner_id", req.OwnerID,
		"hash", hash,
		"model", entry.Model,
		"tokens_in", resp.InputTokens,
		"tokens_out", resp.OutputTokens,
		"forced", req.ForceRefresh)

	return resultFromEntry(entry, false), nil
}

func resultFromEntry(entry *model.AnalysisCacheEntry, cached bool) *Result {
	return &Result{
		Text:        entry.ResultText,
		Cached:      cached,
		Model:       entry.Model,
		DataHash:    entry.DataHash,
		TokenUsage:  entry.TokenUsage,
		GeneratedAt: entry.CreatedAt,
	}
}
