package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// ImportProgress draws a progress bar as sales are inserted.
type ImportProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	mu     sync.Mutex
}

// NewImportProgress creates a progress display writing to w (stderr when nil).
func NewImportProgress(w io.Writer) *ImportProgress {
	if w == nil {
		w = os.Stderr
	}
	return &ImportProgress{writer: w}
}

// Update records that inserted of total sales are stored. The bar is created on
// the first call, once the total is known.
func (p *ImportProgress) Update(inserted, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.writer),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Importing sales...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				_, _ = fmt.Fprintln(p.writer)
			}),
		)
	}
	_ = p.bar.Set(inserted)
}

// Inserted returns the last reported count, or zero before any update.
func (p *ImportProgress) Inserted() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil {
		return 0
	}
	return int(p.bar.State().CurrentNum)
}
