package tui

import "github.com/Veraticus/bizmetrics/internal/analytics"

type summaryLoadedMsg struct {
	err     error
	summary *analytics.Summary
}
