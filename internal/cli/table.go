package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders rows of text in aligned columns.
type Table struct {
	right   map[int]bool
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, right: make(map[int]bool)}
}

// AlignRight right-aligns the given columns, typically amounts.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// AddRow appends a row. Missing cells render empty and extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render lays out the table.
func (t *Table) Render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	lines := make([]string, 0, len(t.rows)+1)
	lines = append(lines, t.renderRow(t.headers, widths, TableHeaderStyle))
	for _, row := range t.rows {
		lines = append(lines, t.renderRow(row, widths, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}

func (t *Table) renderRow(cells []string, widths []int, base lipgloss.Style) string {
	rendered := make([]string, len(cells))
	for i, cell := range cells {
		style := TableCellStyle.Inherit(base)
		if t.right[i] {
			style = MoneyStyle.Inherit(style)
		}
		style = style.Width(widths[i] + 2)
		rendered[i] = style.Render(cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
