package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/Veraticus/bizmetrics/internal/common"
	"github.com/Veraticus/bizmetrics/internal/model"
	"github.com/shopspring/decimal"
)

// WeekdayNames maps time.Weekday (Sunday=0) to its display name.
var WeekdayNames = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

// TopProduct is the product sold most often in a range.
type TopProduct struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
}

// KPIs are the headline indicators of a range.
type KPIs struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	AverageOrderValue   decimal.Decimal `json:"average_order_value"`
	AverageOrdersPerDay decimal.Decimal `json:"average_orders_per_day"`
	TopProduct          TopProduct      `json:"top_product"`
	OrderCount          int             `json:"order_count"`
	ActiveDays          int             `json:"active_days"`
}

// DailyRevenue is the revenue of one calendar date.
type DailyRevenue struct {
	Revenue decimal.Decimal `json:"revenue"`
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
}

// ProductStat is the revenue of one product.
type ProductStat struct {
	Revenue decimal.Decimal `json:"revenue"`
	Name    string          `json:"name"`
	Orders  int             `json:"orders"`
}

// WeekdayStat is the revenue of one day of the week.
type WeekdayStat struct {
	Revenue decimal.Decimal `json:"revenue"`
	Name    string          `json:"name"`
	Weekday int             `json:"weekday"`
	Orders  int             `json:"orders"`
}

// Summary is every aggregation of one range.
type Summary struct {
	Range        Range          `json:"range"`
	KPIs         KPIs           `json:"kpis"`
	DailyRevenue []DailyRevenue `json:"daily_revenue"`
	TopProducts  []ProductStat  `json:"top_products"`
	Weekdays     []WeekdayStat  `json:"weekdays"`
}

// group accumulates sales under a key, remembering first-seen order.
type group struct {
	revenue decimal.Decimal
	key     string
	count   int
}

func groupBy(sales []model.SaleRecord, key func(model.SaleRecord) string) []*group {
	index := make(map[string]*group)
	var ordered []*group
	for _, s := range sales {
		k := key(s)
		g, ok := index[k]
		if !ok {
			g = &group{key: k, revenue: decimal.Zero}
			index[k] = g
			ordered = append(ordered, g)
		}
		g.revenue = g.revenue.Add(s.Amount)
		g.count++
	}
	return ordered
}

// ComputeKPIs aggregates sales in the order given. Ties for the top product go to the
// product seen first.
func ComputeKPIs(sales []model.SaleRecord) (*KPIs, error) {
	if len(sales) == 0 {
		return nil, common.NoData("no sales in the selected range")
	}

	total := decimal.Zero
	days := make(map[string]struct{})
	for _, s := range sales {
		total = total.Add(s.Amount)
		days[s.Date] = struct{}{}
	}

	var top *group
	for _, g := range groupBy(sales, func(s model.SaleRecord) string { return s.ProductName }) {
		if top == nil || g.count > top.count {
			top = g
		}
	}

	orders := decimal.NewFromInt(int64(len(sales)))
	activeDays := decimal.NewFromInt(int64(len(days)))

	return &KPIs{
		TotalRevenue:        model.RoundMoney(total),
		OrderCount:          len(sales),
		AverageOrderValue:   model.RoundMoney(total.Div(orders)),
		ActiveDays:          len(days),
		AverageOrdersPerDay: orders.Div(activeDays).Round(1),
		TopProduct: TopProduct{
			Name:     top.key,
			Quantity: top.count,
			Revenue:  model.RoundMoney(top.revenue),
		},
	}, nil
}

// ComputeDailyRevenue groups sales by date, ascending. Dates without sales are omitted.
func ComputeDailyRevenue(sales []model.SaleRecord) []DailyRevenue {
	groups := groupBy(sales, func(s model.SaleRecord) string { return s.Date })
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].key < groups[j].key })

	out := make([]DailyRevenue, len(groups))
	for i, g := range groups {
		out[i] = DailyRevenue{Date: g.key, Revenue: model.RoundMoney(g.revenue), Orders: g.count}
	}
	return out
}

// ComputeTopProducts returns up to n products by revenue, descending. Equal revenues
// keep first-seen order.
func ComputeTopProducts(sales []model.SaleRecord, n int) []ProductStat {
	groups := groupBy(sales, func(s model.SaleRecord) string { return s.ProductName })
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].revenue.GreaterThan(groups[j].revenue) })

	if n < len(groups) {
		groups = groups[:n]
	}
	out := make([]ProductStat, len(groups))
	for i, g := range groups {
		out[i] = ProductStat{Name: g.key, Revenue: model.RoundMoney(g.revenue), Orders: g.count}
	}
	return out
}

// ComputeWeekdayDistribution groups sales by day of week, Sunday first.
func ComputeWeekdayDistribution(sales []model.SaleRecord) ([]WeekdayStat, error) {
	var (
		revenue [7]decimal.Decimal
		orders  [7]int
	)
	for _, s := range sales {
		d, err := time.Parse(model.DateLayout, s.Date)
		if err != nil {
			return nil, fmt.Errorf("sale %s has invalid date %q: %w", s.ID, s.Date, err)
		}
		wd := d.Weekday()
		revenue[wd] = revenue[wd].Add(s.Amount)
		orders[wd]++
	}

	var out []WeekdayStat
	for wd := range orders {
		if orders[wd] == 0 {
			continue
		}
		out = append(out, WeekdayStat{
			Weekday: wd,
			Name:    WeekdayNames[wd],
			Revenue: model.RoundMoney(revenue[wd]),
			Orders:  orders[wd],
		})
	}
	return out, nil
}
