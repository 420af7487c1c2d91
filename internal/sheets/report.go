package sheets

import (
	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/shopspring/decimal"
)

// SummaryRows lays summary out as sheet rows: headline indicators, then the
// daily series, top products and weekday sections, separated by blank rows.
func SummaryRows(summary *analytics.Summary) [][]any {
	k := summary.KPIs
	rows := [][]any{
		{"Resumo de Vendas"},
		{"Período", periodLabel(summary.Range)},
		{"Faturamento total", money(k.TotalRevenue)},
		{"Pedidos", k.OrderCount},
		{"Ticket médio", money(k.AverageOrderValue)},
		{"Dias com vendas", k.ActiveDays},
		{"Pedidos por dia", k.AverageOrdersPerDay.InexactFloat64()},
		{"Produto mais vendido", k.TopProduct.Name, k.TopProduct.Quantity, money(k.TopProduct.Revenue)},
		{},
		{"Data", "Faturamento", "Pedidos"},
	}

	for _, d := range summary.DailyRevenue {
		rows = append(rows, []any{d.Date, money(d.Revenue), d.Orders})
	}

	rows = append(rows, []any{}, []any{"Produto", "Faturamento", "Pedidos"})
	for _, p := range summary.TopProducts {
		rows = append(rows, []any{p.Name, money(p.Revenue), p.Orders})
	}

	rows = append(rows, []any{}, []any{"Dia da semana", "Faturamento", "Pedidos"})
	for _, w := range summary.Weekdays {
		rows = append(rows, []any{w.Name, money(w.Revenue), w.Orders})
	}
	return rows
}

// money renders an amount as a plain number so the sheet can format and sum it.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func periodLabel(r analytics.Range) string {
	switch {
	case r.DateFrom != "" && r.DateTo != "":
		return r.DateFrom + " a " + r.DateTo
	case r.DateFrom != "":
		return "desde " + r.DateFrom
	case r.DateTo != "":
		return "até " + r.DateTo
	}
	return "todo o histórico"
}
