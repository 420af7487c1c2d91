package sheets

import (
	"testing"

	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestSummaryRows(t *testing.T) {
	rows := SummaryRows(testSummary())

	require.GreaterOrEqual(t, len(rows), 8)
	assert.Equal(t, []any{"Período", "2024-03-01 a 2024-03-31"}, rows[1])
	assert.Equal(t, []any{"Faturamento total", 1294.90}, rows[2])
	assert.Equal(t, []any{"Pedidos", 3}, rows[3])
	assert.Equal(t, []any{"Produto mais vendido", "Café", 2, 95.0}, rows[7])

	assert.Contains(t, rows, []any{"2024-03-02", 1199.90, 1})
	assert.Contains(t, rows, []any{"Notebook", 1199.90, 1})
	assert.Contains(t, rows, []any{"Sábado", 1199.90, 1})

	// header + 7 indicators + 3 sections of (blank + header) + 6 data rows
	assert.Len(t, rows, 1+7+2*3+6)
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		name string
		want string
		r    analytics.Range
	}{
		{name: "both bounds", r: analytics.Range{DateFrom: "2024-01-01", DateTo: "2024-01-31"}, want: "2024-01-01 a 2024-01-31"},
		{name: "from only", r: analytics.Range{DateFrom: "2024-01-01"}, want: "desde 2024-01-01"},
		{name: "to only", r: analytics.Range{DateTo: "2024-01-31"}, want: "até 2024-01-31"},
		{name: "unbounded", want: "todo o histórico"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, periodLabel(tt.r))
		})
	}
}
