package analysis

import (
	"context"
	"fmt"

	"github.com/Veraticus/bizmetrics/internal/common"
	"github.com/Veraticus/bizmetrics/internal/service"
)

// History bounds.
const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 50
)

// History returns the owner's most recent analyses, newest first. A zero limit
// uses DefaultHistoryLimit.
func (s *Service) History(ctx context.Context, ownerID string, limit int) ([]Result, error) {
	return History(ctx, s.deps.Store, ownerID, limit)
}

// History reads past analyses straight from store, for callers with no model configured.
func History(ctx context.Context, store service.AnalysisStore, ownerID string, limit int) ([]Result, error) {
	if ownerID == "" {
		return nil, common.Validation("owner is required")
	}
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit < 1 || limit > MaxHistoryLimit {
		return nil, common.Validation("limit must be between 1 and %d, got %d", MaxHistoryLimit, limit)
	}

	entries, err := store.ListAnalyses(ctx, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	results := make([]Result, len(entries))
	for i := range entries {
		results[i] = *resultFromEntry(&entries[i], true)
	}
	return results, nil
}
