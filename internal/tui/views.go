package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/bizmetrics/internal/analysis"
	"github.com/Veraticus/bizmetrics/internal/common"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// barWidth is the length of the longest weekday bar.
const barWidth = 30

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader(), m.renderTabs(), m.renderBody(), m.help.View(m.keymap)}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("📊 Sales dashboard")
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", m.theme.Subtitle.Render(periodLabel(m.config.Range.DateFrom, m.config.Range.DateTo)))
}

func (m Model) renderTabs() string {
	tabs := make([]string, tabCount)
	for i := range tabCount {
		style := m.theme.Tab
		if Tab(i) == m.tab {
			style = m.theme.ActiveTab
		}
		tabs[i] = style.Render(Tab(i).String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m Model) renderBody() string {
	switch {
	case m.loading:
		return m.spinner.View() + " " + m.theme.Subtitle.Render("Loading sales...")
	case m.lastError != nil:
		return m.renderError()
	case m.summary == nil:
		return ""
	case m.tab == TabOverview:
		return m.renderOverview()
	}
	return m.table.View()
}

func (m Model) renderError() string {
	if common.IsKind(m.lastError, common.KindNoData) {
		return m.theme.StatusInfo.Render("No sales in this period. Import a CSV and press r to reload.")
	}
	return m.theme.StatusError.Render("Error: " + m.lastError.Error())
}

func (m Model) renderOverview() string {
	k := m.summary.KPIs

	cards := []string{
		m.card("Revenue", analysis.FormatBRL(k.TotalRevenue)),
		m.card("Orders", fmt.Sprintf("%d", k.OrderCount)),
		m.card("Average ticket", analysis.FormatBRL(k.AverageOrderValue)),
	}
	second := []string{
		m.card("Active days", fmt.Sprintf("%d", k.ActiveDays)),
		m.card("Orders per day", k.AverageOrdersPerDay.StringFixed(1)),
		m.card("Top product", fmt.Sprintf("%s (%d)", k.TopProduct.Name, k.TopProduct.Quantity)),
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		lipgloss.JoinHorizontal(lipgloss.Top, second...),
		"",
		m.renderWeekdayBars(),
	)
}

func (m Model) card(label, value string) string {
	return m.theme.Card.Render(m.theme.Subtitle.Render(label) + "\n" + m.theme.CardValue.Render(value))
}

// renderWeekdayBars draws revenue per weekday scaled to the best day.
func (m Model) renderWeekdayBars() string {
	peak := decimal.Zero
	for _, w := range m.summary.Weekdays {
		if w.Revenue.GreaterThan(peak) {
			peak = w.Revenue
		}
	}

	var b strings.Builder
	for _, w := range m.summary.Weekdays {
		n := 0
		if peak.IsPositive() {
			n = int(w.Revenue.Mul(decimal.NewFromInt(barWidth)).Div(peak).Round(0).IntPart())
		}
		fmt.Fprintf(&b, "%-8s %s %s\n", w.Name, m.theme.Bar.Render(strings.Repeat("█", n)+strings.Repeat(" ", barWidth-n)), analysis.FormatBRL(w.Revenue))
	}
	return strings.TrimRight(b.String(), "\n")
}

func periodLabel(from, to string) string {
	switch {
	case from != "" && to != "":
		return analysis.FormatDate(from) + " to " + analysis.FormatDate(to)
	case from != "":
		return "since " + analysis.FormatDate(from)
	case to != "":
		return "until " + analysis.FormatDate(to)
	}
	return "all time"
}
