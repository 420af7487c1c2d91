package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/bizmetrics/internal/analytics"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard until the user quits or ctx is canceled.
func Run(ctx context.Context, source SummarySource, r analytics.Range, opts ...Option) error {
	if source == nil {
		return fmt.Errorf("summary source is required")
	}
	if err := r.Validate(); err != nil {
		return err
	}

	p := tea.NewProgram(New(ctx, source, r, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
