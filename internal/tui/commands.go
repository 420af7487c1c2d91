package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// loadSummary computes the summary off the update loop.
func (m Model) loadSummary() tea.Cmd {
	source, r, topN, timeout := m.config.Source, m.config.Range, m.config.TopN, m.config.LoadTimeout
	parent := m.ctx

	return func() tea.Msg {
		if source == nil {
			return summaryLoadedMsg{err: fmt.Errorf("summary source not configured")}
		}

		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		summary, err := source.Summary(ctx, r, topN)
		return summaryLoadedMsg{summary: summary, err: err}
	}
}
