// Package analysis produces natural-language summaries of a sales range and
// caches them by the hash of the data they describe.
package analysis

import (
	"context"
	"fmt"

	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/Veraticus/bizmetrics/internal/llm"
	"github.com/Veraticus/bizmetrics/internal/service"
)

// SummaryProvider computes the aggregation snapshot an analysis describes.
// *analytics.Engine satisfies it.
type SummaryProvider interface {
	Summary(ctx context.Context, r analytics.Range, topN int) (*analytics.Summary, error)
}

// Deps contains all dependencies required by the analysis service.
type Deps struct {
	// Store persists generated analyses.
	Store service.AnalysisStore
	// Summaries computes the data being analyzed.
	Summaries SummaryProvider
	// LLMClient generates the text.
	LLMClient llm.Client
}

// Validate ensures all required dependencies are provided.
func (d *Deps) Validate() error {
	if d.Store == nil {
		return fmt.Errorf("analysis store dependency is required")
	}
	if d.Summaries == nil {
		return fmt.Errorf("summary provider dependency is required")
	}
	if d.LLMClient == nil {
		return fmt.Errorf("LLM client dependency is required")
	}
	return nil
}
