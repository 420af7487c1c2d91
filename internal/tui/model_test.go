package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/Veraticus/bizmetrics/internal/common"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	err     error
	summary *analytics.Summary
	calls   int
	lastTop int
}

func (f *fakeSource) Summary(_ context.Context, _ analytics.Range, topN int) (*analytics.Summary, error) {
	f.calls++
	f.lastTop = topN
	return f.summary, f.err
}

func testSummary() *analytics.Summary {
	return &analytics.Summary{
		Range: analytics.Range{DateFrom: "2024-03-01", DateTo: "2024-03-31"},
		KPIs: analytics.KPIs{
			TotalRevenue:        decimal.RequireFromString("1294.90"),
			AverageOrderValue:   decimal.RequireFromString("431.63"),
			AverageOrdersPerDay: decimal.RequireFromString("1.5"),
			TopProduct:          analytics.TopProduct{Name: "Café", Quantity: 2, Revenue: decimal.RequireFromString("95.00")},
			OrderCount:          3,
			ActiveDays:          2,
		},
		DailyRevenue: []analytics.DailyRevenue{
			{Date: "2024-03-01", Revenue: decimal.RequireFromString("95.00"), Orders: 2},
			{Date: "2024-03-02", Revenue: decimal.RequireFromString("1199.90"), Orders: 1},
		},
		TopProducts: []analytics.ProductStat{
			{Name: "Notebook", Revenue: decimal.RequireFromString("1199.90"), Orders: 1},
			{Name: "Café", Revenue: decimal.RequireFromString("95.00"), Orders: 2},
		},
		Weekdays: []analytics.WeekdayStat{
			{Name: "Sexta", Weekday: 5, Revenue: decimal.RequireFromString("95.00"), Orders: 2},
			{Name: "Sábado", Weekday: 6, Revenue: decimal.RequireFromString("1199.90"), Orders: 1},
		},
	}
}

var testRange = analytics.Range{OwnerID: "loja", DateFrom: "2024-03-01", DateTo: "2024-03-31"}

// loaded returns a model that has received the result of its first load.
func loaded(t *testing.T, src *fakeSource) Model {
	t.Helper()
	m := New(context.Background(), src, testRange, WithSize(120, 40), WithTopN(3))
	updated, _ := m.Update(m.loadSummary()())
	return updated.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_LoadingView(t *testing.T) {
	m := New(context.Background(), &fakeSource{summary: testSummary()}, testRange)
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Loading sales")
}

func TestModel_Overview(t *testing.T) {
	src := &fakeSource{summary: testSummary()}
	m := loaded(t, src)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, 3, src.lastTop)
	assert.NoError(t, m.Err())

	view := m.View()
	assert.Contains(t, view, "R$ 1.294,90")
	assert.Contains(t, view, "Café (2)")
	assert.Contains(t, view, "Sábado")
	assert.Contains(t, view, "01/03/2024 to 31/03/2024")
}

func TestModel_TabNavigation(t *testing.T) {
	m := loaded(t, &fakeSource{summary: testSummary()})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabDaily, m.ActiveTab())
	assert.Contains(t, m.View(), "02/03/2024")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabProducts, m.ActiveTab())
	assert.Contains(t, m.View(), "Notebook")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabWeekdays, m.ActiveTab())
	assert.Contains(t, m.View(), "Sexta")
}

func TestModel_NoData(t *testing.T) {
	m := loaded(t, &fakeSource{err: common.NoData("no sales")})

	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "No sales in this period")
}

func TestModel_LoadError(t *testing.T) {
	m := loaded(t, &fakeSource{err: errors.New("database is locked")})
	assert.Contains(t, m.View(), "database is locked")
}

func TestModel_Refresh(t *testing.T) {
	src := &fakeSource{err: common.NoData("no sales")}
	m := loaded(t, src)

	src.err = nil
	src.summary = testSummary()

	m, cmd := press(t, m, runes("r"))
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Loading sales")

	// A second refresh while loading is ignored.
	_, again := press(t, m, runes("r"))
	assert.Nil(t, again)

	updated, _ := m.Update(m.loadSummary()())
	m = updated.(Model)
	assert.NoError(t, m.Err())
	assert.Equal(t, 2, src.calls)
	assert.Contains(t, m.View(), "R$ 1.294,90")
}

func TestModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := loaded(t, &fakeSource{summary: testSummary()})
		m, cmd := press(t, m, msg)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	}
}

func TestModel_NilSource(t *testing.T) {
	m := New(context.Background(), nil, testRange)
	msg := m.loadSummary()()
	loadedMsg, ok := msg.(summaryLoadedMsg)
	require.True(t, ok)
	assert.Error(t, loadedMsg.err)
}

func TestRun_Validation(t *testing.T) {
	assert.Error(t, Run(context.Background(), nil, testRange))

	err := Run(context.Background(), &fakeSource{}, analytics.Range{})
	assert.True(t, common.IsKind(err, common.KindValidation))
}

func TestTabString(t *testing.T) {
	assert.Equal(t, "Overview", TabOverview.String())
	assert.Equal(t, "Weekdays", TabWeekdays.String())
	assert.Equal(t, "unknown", Tab(99).String())
}
