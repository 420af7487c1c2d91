// Package tui is an interactive terminal dashboard over a sales summary.
package tui

import (
	"context"
	"strconv"

	"github.com/Veraticus/bizmetrics/internal/analysis"
	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/Veraticus/bizmetrics/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// Tab is one view of the dashboard.
type Tab int

// Dashboard tabs, in display order.
const (
	TabOverview Tab = iota
	TabDaily
	TabProducts
	TabWeekdays
	tabCount
)

var tabTitles = [tabCount]string{"Overview", "Daily", "Products", "Weekdays"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "unknown"
	}
	return tabTitles[t]
}

// chromeHeight is the rows taken by the header, tabs and help line.
const chromeHeight = 8

// Model holds the dashboard state.
type Model struct {
	ctx       context.Context
	lastError error
	summary   *analytics.Summary
	theme     themes.Theme
	config    Config
	keymap    KeyMap
	help      help.Model
	spinner   spinner.Model
	table     table.Model
	tab       Tab
	width     int
	height    int
	loading   bool
	quitting  bool
}

// New creates a dashboard model that reads from source.
func New(ctx context.Context, source SummarySource, r analytics.Range, opts ...Option) Model {
	cfg := defaultConfig()
	cfg.Source = source
	cfg.Range = r
	for _, opt := range opts {
		opt(&cfg)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Theme.Bar

	styles := table.DefaultStyles()
	styles.Selected = cfg.Theme.Selected

	m := Model{
		ctx:     ctx,
		config:  cfg,
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		table:   table.New(table.WithFocused(true), table.WithStyles(styles)),
		width:   cfg.Width,
		height:  cfg.Height,
		loading: true,
	}
	m.resize()
	return m
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSummary())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case summaryLoadedMsg:
		m.loading = false
		m.summary = msg.summary
		m.lastError = msg.err
		m.rebuildTable()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil

	case key.Matches(msg, m.keymap.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadSummary())

	case key.Matches(msg, m.keymap.NextTab):
		m.tab = (m.tab + 1) % tabCount
		m.rebuildTable()
		return m, nil

	case key.Matches(msg, m.keymap.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.rebuildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// ActiveTab returns the tab being shown.
func (m Model) ActiveTab() Tab {
	return m.tab
}

// Err returns the error of the last load, if any.
func (m Model) Err() error {
	return m.lastError
}

func (m *Model) resize() {
	m.help.Width = m.width
	m.table.SetWidth(max(m.width-4, 20))
	m.table.SetHeight(max(m.height-chromeHeight, 3))
}

// rebuildTable loads the active tab's rows into the table.
func (m *Model) rebuildTable() {
	m.table.SetRows(nil)
	if m.summary == nil {
		return
	}

	var (
		cols []table.Column
		rows []table.Row
	)
	s := m.summary

	switch m.tab {
	case TabDaily:
		cols = []table.Column{{Title: "Date", Width: 12}, {Title: "Revenue", Width: 18}, {Title: "Orders", Width: 8}}
		for _, d := range s.DailyRevenue {
			rows = append(rows, table.Row{analysis.FormatDate(d.Date), analysis.FormatBRL(d.Revenue), strconv.Itoa(d.Orders)})
		}
	case TabProducts:
		cols = []table.Column{{Title: "#", Width: 3}, {Title: "Product", Width: 30}, {Title: "Revenue", Width: 18}, {Title: "Orders", Width: 8}}
		for i, p := range s.TopProducts {
			rows = append(rows, table.Row{strconv.Itoa(i + 1), p.Name, analysis.FormatBRL(p.Revenue), strconv.Itoa(p.Orders)})
		}
	case TabWeekdays:
		cols = []table.Column{{Title: "Weekday", Width: 10}, {Title: "Revenue", Width: 18}, {Title: "Orders", Width: 8}}
		for _, w := range s.Weekdays {
			rows = append(rows, table.Row{w.Name, analysis.FormatBRL(w.Revenue), strconv.Itoa(w.Orders)})
		}
	default:
		return
	}

	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.GotoTop()
}
